//go:build integration
// +build integration

package testinfra

import (
	"context"
	"fmt"
	"sync"
)

type TestSuite struct {
	Postgres *PostgresContainer
	Redis    *RedisContainer
}

type SuiteOptions struct {
	WithRedis bool
}

// NewTestSuite starts the requested containers in parallel.
func NewTestSuite(ctx context.Context, opts SuiteOptions) (*TestSuite, error) {
	suite := &TestSuite{}
	var wg sync.WaitGroup
	errCh := make(chan error, 2)

	wg.Add(1)
	go func() {
		defer wg.Done()
		pg, err := NewPostgres(ctx)
		if err != nil {
			errCh <- fmt.Errorf("postgres: %w", err)
			return
		}
		suite.Postgres = pg
	}()

	if opts.WithRedis {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r, err := NewRedis(ctx)
			if err != nil {
				errCh <- fmt.Errorf("redis: %w", err)
				return
			}
			suite.Redis = r
		}()
	}

	wg.Wait()
	close(errCh)

	if err, ok := <-errCh; ok {
		suite.Cleanup(ctx)
		return nil, err
	}
	return suite, nil
}

func (s *TestSuite) Cleanup(ctx context.Context) {
	if s.Postgres != nil {
		s.Postgres.Cleanup(ctx)
	}
	if s.Redis != nil {
		s.Redis.Cleanup(ctx)
	}
}
