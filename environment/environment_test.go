package environment

import (
	"testing"

	"github.com/Daniel-Iofin/simpleScript/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSearchesParentChain(t *testing.T) {
	root := New()
	root.Define("x", &object.Integer{Value: 1})
	child := NewEnclosed(NewEnclosed(root))

	val, ok := child.Get("x")
	require.True(t, ok)
	assert.Equal(t, int64(1), val.(*object.Integer).Value)

	_, ok = child.Get("missing")
	assert.False(t, ok)
}

func TestDefineShadowsOuterBinding(t *testing.T) {
	root := New()
	root.Define("x", &object.Integer{Value: 1})
	child := NewEnclosed(root)
	child.Define("x", &object.Integer{Value: 2})

	inner, _ := child.Get("x")
	assert.Equal(t, int64(2), inner.(*object.Integer).Value)

	outer, _ := root.Get("x")
	assert.Equal(t, int64(1), outer.(*object.Integer).Value)
}

func TestSetRebindsNearestEnclosingFrame(t *testing.T) {
	root := New()
	root.Define("x", &object.Integer{Value: 1})
	child := NewEnclosed(root)

	found := child.Set("x", &object.Integer{Value: 9})
	assert.True(t, found)

	// The rebinding happened in root, not in child.
	assert.NotContains(t, child.store, "x")
	val, _ := root.Get("x")
	assert.Equal(t, int64(9), val.(*object.Integer).Value)
}

func TestSetOnUnboundNameCreatesTopLevelBinding(t *testing.T) {
	root := New()
	child := NewEnclosed(NewEnclosed(root))

	found := child.Set("fresh", &object.Integer{Value: 7})
	assert.False(t, found)

	val, ok := root.Get("fresh")
	require.True(t, ok)
	assert.Equal(t, int64(7), val.(*object.Integer).Value)
}
