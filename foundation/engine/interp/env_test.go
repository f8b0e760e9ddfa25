package interp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvShadowing(t *testing.T) {
	root := NewRootEnv(map[string]Value{"x": 1.0, "y": 2.0})
	child := NewEnv(root)
	child.Define("x", 10.0)

	v, ok := child.Lookup("x")
	assert.True(t, ok)
	assert.Equal(t, 10.0, v)

	v, ok = child.Lookup("y")
	assert.True(t, ok)
	assert.Equal(t, 2.0, v, "misses fall through to the parent")

	v, _ = root.Lookup("x")
	assert.Equal(t, 1.0, v, "definitions never touch ancestors")

	_, ok = child.Lookup("z")
	assert.False(t, ok)

	assert.True(t, child.Has("x"))
	assert.False(t, child.Has("y"))
	assert.Same(t, root, child.Parent())
	assert.Nil(t, root.Parent())
	assert.Equal(t, 1, child.Depth())
	assert.Equal(t, 0, root.Depth())
	assert.Equal(t, []string{"x", "y"}, root.Names())
}

func TestThunkHelpers(t *testing.T) {
	v, err := Force(Constant("x"))
	assert.NoError(t, err)
	assert.Equal(t, "x", v)

	v, err = Force(4.0)
	assert.NoError(t, err)
	assert.Equal(t, 4.0, v)

	assert.Equal(t, 1.0, Arg([]Value{1.0}, 0))
	assert.True(t, IsMissing(Arg([]Value{1.0}, 1)))
}
