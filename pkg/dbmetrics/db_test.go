package dbmetrics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_operationOf(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{name: "select", query: "SELECT id FROM booking_sessions", want: "select"},
		{name: "leading whitespace", query: "\n  UPDATE booking_sessions SET state = $1", want: "update"},
		{name: "empty", query: "   ", want: "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, operationOf(tt.query))
		})
	}
}

func Test_GetExecutor_withoutTx(t *testing.T) {
	db := Wrap(nil)
	ctx := context.Background()

	assert.False(t, IsInTransaction(ctx))
	assert.Same(t, db, GetExecutor(ctx, db))
}

func Test_GetExecutor_withTx(t *testing.T) {
	tx := &SqlTxWrapper{}
	ctx := WithTx(context.Background(), tx)

	assert.True(t, IsInTransaction(ctx))
	assert.Same(t, tx, GetExecutor(ctx, Wrap(nil)))
}
