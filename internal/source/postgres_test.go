package source

import (
	"context"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"testing"
	"time"

	"github.com/Adithya-Monish-Kumar-K/people-search/pkg/config"
	"github.com/Adithya-Monish-Kumar-K/people-search/pkg/postgres"
	"github.com/lib/pq"
)

func TestIsPermanent(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain", fmt.Errorf("dial tcp: refused"), false},
		{"undefined table", &pq.Error{Code: "42P01"}, true},
		{"wrapped syntax error", fmt.Errorf("querying people: %w", &pq.Error{Code: "42601"}), true},
		{"auth failure", &pq.Error{Code: "28P01"}, true},
		{"admin shutdown", &pq.Error{Code: "57P01"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isPermanent(tt.err); got != tt.want {
				t.Errorf("isPermanent() = %v, want %v", got, tt.want)
			}
		})
	}
}

// skipIfNoPostgres skips the test when PostgreSQL is unavailable.
func skipIfNoPostgres(t *testing.T) *postgres.Client {
	t.Helper()
	port, err := strconv.Atoi(envOrDefault("TEST_POSTGRES_PORT", "5432"))
	if err != nil {
		t.Fatal(err)
	}
	cfg := config.PostgresConfig{
		Host:            envOrDefault("TEST_POSTGRES_HOST", "localhost"),
		Port:            port,
		Database:        envOrDefault("TEST_POSTGRES_DB", "people_test"),
		User:            envOrDefault("TEST_POSTGRES_USER", "people"),
		Password:        envOrDefault("TEST_POSTGRES_PASSWORD", "localdev"),
		SSLMode:         "disable",
		MaxOpenConns:    2,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Minute,
	}
	client, err := postgres.New(context.Background(), cfg)
	if err != nil {
		t.Skipf("skipping: postgres unavailable: %v", err)
	}
	t.Cleanup(func() { client.Close() })
	return client
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func TestPostgresLoad(t *testing.T) {
	client := skipIfNoPostgres(t)
	src := Postgres{
		DB:    client.DB,
		Query: "SELECT data FROM (VALUES (1, 'Mary Smith'), (2, NULL), (3, 'John  Smith')) AS p(id, data) ORDER BY id",
	}
	got, err := src.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"Mary Smith", "", "John  Smith"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Load() = %q, want %q", got, want)
	}
}

func TestPostgresLoadBadQueryIsNotRetried(t *testing.T) {
	client := skipIfNoPostgres(t)
	src := Postgres{
		DB:    client.DB,
		Query: "SELECT data FROM table_that_does_not_exist",
		Retry: config.RetryConfig{MaxAttempts: 5, InitialDelay: time.Hour},
	}
	start := time.Now()
	if _, err := src.Load(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if time.Since(start) > time.Minute {
		t.Error("permanent error was retried")
	}
}
