package dberrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestConstraintClassification(t *testing.T) {
	dup := fmt.Errorf("insert account: %w", &pgconn.PgError{Code: "23505", ConstraintName: "accounts_email_key"})
	fk := &pgconn.PgError{Code: "23503", ConstraintName: "posts_quoted_post_id_fkey"}

	tcases := []struct {
		name       string
		err        error
		constraint string
		duplicate  bool
		unique     bool
		foreignKey bool
	}{
		{"matching unique constraint", dup, "accounts_email_key", true, true, false},
		{"other unique constraint", dup, "relations_pair_key", false, true, false},
		{"foreign key", fk, "posts_quoted_post_id_fkey", false, false, true},
		{"plain error", errors.New("boom"), "accounts_email_key", false, false, false},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.duplicate, IsDuplicateConstraintError(tc.err, tc.constraint))
			assert.Equal(t, tc.unique, IsUniqueViolation(tc.err))
			assert.Equal(t, tc.foreignKey, IsForeignKeyViolation(tc.err, tc.constraint))
		})
	}

	assert.True(t, IsForeignKeyViolation(fk, ""))
}
