package convert

import (
	"bytes"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

// Single-line statements come out as a script SQLite accepts.
func TestConvertedScriptLoadsIntoSQLite(t *testing.T) {
	dump := `SET client_encoding = 'UTF8';
CREATE TABLE public.users (id SERIAL PRIMARY KEY, email VARCHAR(255) NOT NULL, active BOOLEAN DEFAULT TRUE, created_at TIMESTAMP WITHOUT TIME ZONE);
CREATE INDEX users_email_idx ON public.users (email);
-- Data for Name: users
INSERT INTO public.users VALUES (1, 'ann@example.com', TRUE, '2024-01-01 00:00:00');
INSERT INTO public.users VALUES (2, 'bob@example.com', FALSE, NULL);
SELECT pg_catalog.setval('public.users_id_seq', 2, true);
`
	res := New(Options{Progress: &bytes.Buffer{}}).Convert(dump)
	require.Len(t, res.Statements, 4)

	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "converted.db"))
	require.NoError(t, err)
	defer db.Close()

	for _, stmt := range res.Statements {
		_, err := db.Exec(stmt)
		require.NoError(t, err, stmt)
	}

	var active int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM users WHERE active = 1`).Scan(&active))
	assert.Equal(t, 1, active)

	var email string
	require.NoError(t, db.QueryRow(`SELECT email FROM users WHERE id = 2`).Scan(&email))
	assert.Equal(t, "bob@example.com", email)

	_, err = db.Exec(`INSERT INTO users (email) VALUES ('cy@example.com')`)
	require.NoError(t, err)
	var id int
	require.NoError(t, db.QueryRow(`SELECT id FROM users WHERE email = 'cy@example.com'`).Scan(&id))
	assert.Equal(t, 3, id)
}
