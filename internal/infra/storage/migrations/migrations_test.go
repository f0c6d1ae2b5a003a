package migrations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestList(t *testing.T) {
	migrations, err := List()
	require.NoError(t, err)
	require.NotEmpty(t, migrations)

	assert.Equal(t, "001_init", migrations[0].Version)
	assert.Contains(t, migrations[0].SQL, "CREATE TABLE IF NOT EXISTS bookings")
	assert.Contains(t, migrations[0].SQL, "uq_bookings_active_slot")
}
