package credential

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	var store Store = NewMemoryStore()

	_, ok := store.Load(ctx)
	assert.False(t, ok)

	assert.Equal(t, "memory", store.Location())

	require.NoError(t, store.Save(ctx, "\tsk-mem "))
	value, ok := store.Load(ctx)
	assert.True(t, ok)
	assert.Equal(t, "sk-mem", value)
}
