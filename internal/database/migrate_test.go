package database

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrations_ArePaired(t *testing.T) {
	entries, err := fs.ReadDir(migrationsFS, "migrations")
	require.NoError(t, err)

	ups := map[string]bool{}
	downs := map[string]bool{}
	for _, e := range entries {
		name := e.Name()
		switch {
		case strings.HasSuffix(name, ".up.sql"):
			ups[strings.TrimSuffix(name, ".up.sql")] = true
		case strings.HasSuffix(name, ".down.sql"):
			downs[strings.TrimSuffix(name, ".down.sql")] = true
		}
	}

	assert.Len(t, ups, 4)
	assert.Equal(t, ups, downs)
}

func TestEmbeddedMigrations_DeclareConstraintsUsedByRepositories(t *testing.T) {
	users, err := fs.ReadFile(migrationsFS, "migrations/000001_create_users.up.sql")
	require.NoError(t, err)
	assert.Contains(t, string(users), "users_email_key")
	assert.Contains(t, string(users), "users_username_lower_key ON users (LOWER(username))")

	for _, f := range []string{
		"migrations/000002_create_mathmode_sessions.up.sql",
		"migrations/000003_create_snake_sessions.up.sql",
		"migrations/000004_create_typemaster_sessions.up.sql",
	} {
		body, err := fs.ReadFile(migrationsFS, f)
		require.NoError(t, err)
		assert.Contains(t, string(body), "REFERENCES users(id) ON DELETE CASCADE", f)
	}
}
