package store

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestQueryAddSearch(t *testing.T) {
	t.Run("terms are ANDed groups of ORs", func(t *testing.T) {
		q := &query{}
		q.addSearch("Fresh  Mart", "s.name", "s.address")
		require.Equal(t,
			" WHERE (s.name ILIKE $1 OR s.address ILIKE $1) AND (s.name ILIKE $2 OR s.address ILIKE $2)",
			q.whereClause())
		require.Equal(t, []any{"%Fresh%", "%Mart%"}, q.args)
	})

	t.Run("blank search adds nothing", func(t *testing.T) {
		q := &query{}
		q.addSearch("   ", "name")
		require.Empty(t, q.whereClause())
		require.Empty(t, q.args)
	})

	t.Run("wildcards are escaped", func(t *testing.T) {
		q := &query{}
		q.addSearch(`50%_off\`, "name")
		require.Equal(t, []any{`%50\%\_off\\%`}, q.args)
	})

	t.Run("combined with equality", func(t *testing.T) {
		q := &query{}
		q.addSearch("alice", "name", "email", "address")
		q.addEq("role", "store_owner")
		require.Equal(t,
			" WHERE (name ILIKE $1 OR email ILIKE $1 OR address ILIKE $1) AND role = $2",
			q.whereClause())
		require.Equal(t, []any{"%alice%", "store_owner"}, q.args)
	})
}

func TestOrderBy(t *testing.T) {
	cases := []struct {
		by, order string
		allowed   map[string]string
		want      string
	}{
		{"email", "desc", userSortColumns, " ORDER BY email DESC"},
		{"role", "ASC", userSortColumns, " ORDER BY role ASC"},
		{"password_hash", "asc", userSortColumns, " ORDER BY name ASC"},
		{"email", "sideways", userSortColumns, " ORDER BY name ASC"},
		{"", "", userSortColumns, " ORDER BY name ASC"},
		{"average_rating", "desc", storeSortColumns, " ORDER BY average_rating DESC"},
		{"name; DROP TABLE stores", "asc", storeSortColumns, " ORDER BY s.name ASC"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, orderBy(tc.by, tc.order, tc.allowed), "%s %s", tc.by, tc.order)
	}
}
