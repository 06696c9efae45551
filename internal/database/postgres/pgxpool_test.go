package postgres

import (
	"context"
	"strings"
	"testing"

	"talent-match/internal/config"
)

func TestDSN(t *testing.T) {
	dsn := DSN(config.DatabaseConfig{
		DBHost:     " db ",
		DBPort:     "5432",
		DBUser:     "match",
		DBPassword: "pw",
		DBName:     "talent",
		DBSSLMode:  "disable",
	})
	want := "host=db port=5432 user=match password=pw dbname=talent sslmode=disable"
	if dsn != want {
		t.Fatalf("got %q, want %q", dsn, want)
	}
	if strings.Contains(dsn, "  ") {
		t.Fatalf("unexpected double space in %q", dsn)
	}
}

func TestNilPool(t *testing.T) {
	var p *Pool
	if err := p.Ping(context.Background()); err == nil {
		t.Fatalf("expected error from nil pool")
	}
	if err := p.Close(); err != nil {
		t.Fatalf("Close on nil pool: %v", err)
	}
	if err := p.QueryRow(context.Background(), "SELECT 1").Scan(); err == nil {
		t.Fatalf("expected error from nil row")
	}
}
