package migrations

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	entries, err := fs.ReadDir(migrationFiles, "sql")
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	ups := map[string]bool{}
	downs := map[string]bool{}
	for _, e := range entries {
		name := e.Name()
		switch {
		case strings.HasSuffix(name, ".up.sql"):
			ups[strings.TrimSuffix(name, ".up.sql")] = true
		case strings.HasSuffix(name, ".down.sql"):
			downs[strings.TrimSuffix(name, ".down.sql")] = true
		default:
			t.Errorf("unexpected file %s", name)
		}
	}
	assert.Equal(t, ups, downs)
}

func TestSchemaDeclaresUniquenessConstraints(t *testing.T) {
	schema, err := fs.ReadFile(migrationFiles, "sql/000001_init_schema.up.sql")
	require.NoError(t, err)

	for _, constraint := range []string{
		"accounts_email_key",
		"refresh_tokens_token_key",
		"relations_pair_key",
		"friend_requests_pending_pair_key",
		"PRIMARY KEY (post_id, account_id)",
		"PRIMARY KEY (meeting_id, profile_id)",
	} {
		assert.Contains(t, string(schema), constraint)
	}
}

func TestEmbeddedSourceStartsAtFirstVersion(t *testing.T) {
	src, err := embeddedSource()
	require.NoError(t, err)
	defer src.Close()

	first, err := src.First()
	require.NoError(t, err)
	assert.Equal(t, uint(1), first)
}
