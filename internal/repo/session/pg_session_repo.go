package session_repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"RestaurantPOS/internal/domain/session"
	"RestaurantPOS/pkg/postgres"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

const sessionsTable = "staff_sessions"

func NewPgSessionRepo(pg *postgres.Postgres) session.Repo {
	return &repo{db: pg.Pool, builder: pg.Builder, now: time.Now}
}

type repo struct {
	db      postgres.Executor
	builder squirrel.StatementBuilderType
	now     func() time.Time
}

func (r *repo) Load(ctx context.Context, token string) (*session.Staff, error) {
	query, args, err := r.builder.
		Select("staff_id", "staff_name", "role_name", "landing_page").
		From(sessionsTable).
		Where(squirrel.Eq{"token": token}).
		Where(squirrel.Gt{"expires_at": r.now()}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select query: %w", err)
	}

	var staff session.Staff
	err = r.db.QueryRow(ctx, query, args...).Scan(
		&staff.ID,
		&staff.Name,
		&staff.MainAccessRole.Name,
		&staff.MainAccessRole.LandingPage,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	return &staff, nil
}

func (r *repo) Save(ctx context.Context, token string, staff session.Staff, ttl time.Duration) error {
	now := r.now()

	query, args, err := r.builder.Insert(sessionsTable).
		Columns("token", "staff_id", "staff_name", "role_name", "landing_page", "created_at", "expires_at").
		Values(token, staff.ID, staff.Name, staff.MainAccessRole.Name, staff.MainAccessRole.LandingPage, now, now.Add(ttl)).
		Suffix("ON CONFLICT (token) DO UPDATE SET " +
			"staff_id = EXCLUDED.staff_id, " +
			"staff_name = EXCLUDED.staff_name, " +
			"role_name = EXCLUDED.role_name, " +
			"landing_page = EXCLUDED.landing_page, " +
			"expires_at = EXCLUDED.expires_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert query: %w", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (r *repo) Delete(ctx context.Context, token string) error {
	query, args, err := r.builder.Delete(sessionsTable).
		Where(squirrel.Eq{"token": token}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete query: %w", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
