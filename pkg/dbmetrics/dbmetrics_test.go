package dbmetrics

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeTx struct{ DBExecutor }

func (fakeTx) Commit() error   { return nil }
func (fakeTx) Rollback() error { return nil }

func TestGetExecutor(t *testing.T) {
	def := Wrap(&sql.DB{}, nil)
	ctx := context.Background()

	assert.False(t, IsInTransaction(ctx))
	assert.Same(t, def, GetExecutor(ctx, def))

	tx := fakeTx{}
	txCtx := WithTx(ctx, tx)
	assert.True(t, IsInTransaction(txCtx))
	assert.Equal(t, tx, GetExecutor(txCtx, def))
}

func TestOperation(t *testing.T) {
	assert.Equal(t, "select", Operation("SELECT id FROM leads"))
	assert.Equal(t, "insert", Operation("\n  INSERT INTO bookings"))
	assert.Equal(t, "unknown", Operation("   "))
}
