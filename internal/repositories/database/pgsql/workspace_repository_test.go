package pgsql

import (
	"os"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

// Every column the membership queries name must exist in the schema, or
// membership reads and inserts fail at runtime for every workspace operation.
func TestMembershipQueriesMatchMigration(t *testing.T) {
	sqlBytes, err := os.ReadFile("../../../../migrations/000001_create_initial_tables.up.sql")
	require.NoError(t, err)

	match := regexp.MustCompile(`(?s)CREATE TABLE memberships \((.*?)\);`).FindStringSubmatch(string(sqlBytes))
	require.Len(t, match, 2, "memberships table not found in migration")
	table := match[1]

	for _, col := range regexp.MustCompile(`m\.(\w+)`).FindAllStringSubmatch(FULL_MEMBERSHIP_SELECT_QUERY, -1) {
		require.Contains(t, table, col[1], "membership select references a column the schema does not define")
	}
	// AddMembership's insert column list.
	for _, col := range []string{"membership_id", "user_id", "workspace_id", "role", "joined_at"} {
		require.Contains(t, table, col)
	}
	require.Contains(t, table, "PRIMARY KEY (user_id, workspace_id)")
}
