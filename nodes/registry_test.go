package nodes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Defaults(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, RegisterDefaults(r))

	// 字典序："CLIPTextEncodeFlux" 的大写 L 排在 "Caching..." 的小写 a 之前
	assert.Equal(t, []string{
		ClassFluxTextEncode,
		ClassCLIPTextEncodeCached,
		ClassFluxTextEncodeCached,
	}, r.Classes())

	node, err := r.New(ClassFluxTextEncodeCached)
	require.NoError(t, err)
	_, ok := node.(*FluxTextEncodeCached)
	assert.True(t, ok)
}

func TestRegistry_DuplicateClass(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, RegisterDefaults(r))

	err := r.Register(ClassFluxTextEncode, func(opts ...Option) Node { return NewFluxTextEncode(opts...) })
	assert.ErrorContains(t, err, "already registered")
}

func TestRegistry_UnknownClass(t *testing.T) {
	r := NewRegistry()

	_, err := r.New("NoSuchNode")
	assert.ErrorContains(t, err, "unknown node class")

	_, err = r.Spec("NoSuchNode")
	assert.Error(t, err)
}

func TestRegistry_Spec(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, RegisterDefaults(r))

	spec, err := r.Spec(ClassCLIPTextEncodeCached)
	require.NoError(t, err)
	assert.Equal(t, "Caching CLIP Text Encode", spec.DisplayName)
}
