package psqlbuilder

import (
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectUsesDollarPlaceholders(t *testing.T) {
	query, args, err := Select("id").
		From("leads").
		Where(squirrel.Eq{"status": "New"}).
		Where(ILike("email", "bond")).
		ToSql()

	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM leads WHERE status = $1 AND email ILIKE $2", query)
	assert.Equal(t, []interface{}{"New", "%bond%"}, args)
}
