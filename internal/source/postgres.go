package source

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Adithya-Monish-Kumar-K/people-search/pkg/config"
	apperrors "github.com/Adithya-Monish-Kumar-K/people-search/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/people-search/pkg/resilience"
	"github.com/lib/pq"
)

// Postgres loads records from the first column of Query. NULL rows become
// empty records so that numbering follows the result set.
type Postgres struct {
	DB    *sql.DB
	Query string
	Retry config.RetryConfig
}

func (p Postgres) Name() string {
	return "postgres"
}

func (p Postgres) Load(ctx context.Context) ([]string, error) {
	var lines []string
	retryCfg := resilience.RetryConfig{
		MaxAttempts:  p.Retry.MaxAttempts,
		InitialDelay: p.Retry.InitialDelay,
		MaxDelay:     p.Retry.MaxDelay,
	}
	err := resilience.Retry(ctx, "load people", retryCfg, func(ctx context.Context) error {
		var err error
		lines, err = p.query(ctx)
		if isPermanent(err) {
			return resilience.Permanent(err)
		}
		return err
	})
	if err != nil {
		return nil, apperrors.Newf(apperrors.ErrSourceUnavailable, apperrors.ExitUnavailable, "loading people from postgres: %v", err)
	}
	return lines, nil
}

func (p Postgres) query(ctx context.Context) ([]string, error) {
	rows, err := p.DB.QueryContext(ctx, p.Query)
	if err != nil {
		return nil, fmt.Errorf("querying people: %w", err)
	}
	defer rows.Close()

	lines := make([]string, 0, 64)
	for rows.Next() {
		var line sql.NullString
		if err := rows.Scan(&line); err != nil {
			return nil, fmt.Errorf("scanning person row: %w", err)
		}
		lines = append(lines, line.String)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating person rows: %w", err)
	}
	return lines, nil
}

// isPermanent reports server errors that a retry cannot fix: bad SQL, missing
// relations and permission problems (SQLSTATE classes 42 and 28).
func isPermanent(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	switch pqErr.Code.Class() {
	case "42", "28":
		return true
	}
	return false
}
