package session

import "strings"

// LoginPath is where a client without a usable session is sent.
const LoginPath = "/pos/login"

type State int

const (
	Pending State = iota
	Authenticated
	Unauthenticated
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Authenticated:
		return "authenticated"
	case Unauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// Decision is the routing outcome for a snapshot. Target is empty while
// Pending.
type Decision struct {
	State  State
	Target string
}

// Decide never routes before hydration has completed, whatever staff the
// snapshot carries. Landing pages that are not local paths count as absent.
func Decide(snap Snapshot) Decision {
	if !snap.HasHydrated {
		return Decision{State: Pending}
	}
	if snap.Staff != nil {
		if lp := snap.Staff.MainAccessRole.LandingPage; lp != nil && isLocalPath(*lp) {
			return Decision{State: Authenticated, Target: *lp}
		}
	}
	return Decision{State: Unauthenticated, Target: LoginPath}
}

// isLocalPath accepts "/x" but rejects absolute URLs and paths whose second
// character is a slash or backslash.
func isLocalPath(p string) bool {
	if !strings.HasPrefix(p, "/") || (len(p) > 1 && (p[1] == '/' || p[1] == '\\')) {
		return false
	}
	return !strings.ContainsAny(p, "\r\n")
}
