package postgres

import (
	"testing"

	"resume-builder/internal/config"
)

func TestDSN(t *testing.T) {
	got := DSN(config.DatabaseConfig{
		DBHost:     " localhost ",
		DBPort:     "5432",
		DBName:     "resumes",
		DBUser:     "app",
		DBPassword: "s3cret",
	})
	want := "host=localhost port=5432 user=app password=s3cret dbname=resumes sslmode=disable"
	if got != want {
		t.Fatalf("got %q\nwant %q", got, want)
	}
}

func TestQuoteValue(t *testing.T) {
	cases := map[string]string{
		"":           "''",
		"plain":      "plain",
		"with space": "'with space'",
		`it's`:       `'it\'s'`,
		`back\slash`: `'back\\slash'`,
	}
	for in, want := range cases {
		if got := quoteValue(in); got != want {
			t.Fatalf("quoteValue(%q) = %q, want %q", in, got, want)
		}
	}
}
