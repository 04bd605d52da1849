package model

import (
	"os"
	"testing"

	"github.com/google/uuid"
)

// requireDatabase skips tests that need a live Postgres instance
func requireDatabase(t *testing.T) {
	t.Helper()

	if os.Getenv("QRNG_PG_DSN") == "" {
		t.Skip("QRNG_PG_DSN not set; skipping database test")
	}
}

func randomUsername() string {
	return "test-" + uuid.New().String()
}
