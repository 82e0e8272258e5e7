package condcache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BaSui01/condcache/testutil"
	"github.com/BaSui01/condcache/testutil/mocks"
)

func TestNewRegistry(t *testing.T) {
	r, err := NewRegistry()
	require.NoError(t, err)
	assert.Len(t, r.Classes(), 3)
}

func TestFacadeConstructors(t *testing.T) {
	ctx := testutil.TestContext(t)
	clip := mocks.NewClip()

	single := NewCLIPTextEncodeCached()
	conds, err := single.Encode(ctx, clip, "hello", 10)
	require.NoError(t, err)
	assert.Len(t, conds, 1)

	flux := NewFluxTextEncodeCached()
	conds, err = flux.Encode(ctx, clip, "a", "b", 3.5, 10)
	require.NoError(t, err)
	assert.Len(t, conds, 1)

	simple := NewFluxTextEncode()
	conds, err = simple.Encode(ctx, clip, "a", "b", 3.5)
	require.NoError(t, err)
	assert.Len(t, conds, 1)
}
