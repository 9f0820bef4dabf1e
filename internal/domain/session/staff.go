package session

// Staff is the authenticated POS operator held by a session.
type Staff struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	MainAccessRole AccessRole `json:"mainAccessRole"`
}

type AccessRole struct {
	Name string `json:"name"`
	// LandingPage is the route the role starts on. Nil means the role has
	// no POS surface and the staff member is sent to login.
	LandingPage *string `json:"landingPage"`
}

// Snapshot is the state observed by subscribers of a Store.
type Snapshot struct {
	Staff       *Staff
	HasHydrated bool
}
