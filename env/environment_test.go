package env

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/axel-lang/axel/objects"
)

func TestEnvironment_SetAndGet(t *testing.T) {
	e := New()
	_, ok := e.Get("x")
	assert.False(t, ok)

	e.Set("x", &objects.Integer{Value: 5})
	v, ok := e.Get("x")
	assert.True(t, ok)
	assert.Equal(t, int32(5), v.(*objects.Integer).Value)
}

func TestEnvironment_SetOverwrites(t *testing.T) {
	e := New()
	e.Set("x", &objects.Integer{Value: 1})
	e.Set("x", &objects.Integer{Value: 2})
	v, _ := e.Get("x")
	assert.Equal(t, int32(2), v.(*objects.Integer).Value)
}

func TestEnvironment_DeleteRemovesBinding(t *testing.T) {
	e := New()
	e.Set("a", objects.TRUE)
	e.Delete("a")
	_, ok := e.Get("a")
	assert.False(t, ok)
}

func TestEnvironment_ParameterShadowsThenUnshadowsOnDelete(t *testing.T) {
	// Models the function-call contract of spec.md §4.3.3: a parameter
	// temporarily overwrites an outer binding, then deletion on return
	// leaves the name unbound again (the outer value is not restored).
	e := New()
	e.Set("n", &objects.Integer{Value: 100})
	e.Set("n", &objects.Integer{Value: 1}) // simulate binding the formal param
	v, _ := e.Get("n")
	assert.Equal(t, int32(1), v.(*objects.Integer).Value)

	e.Delete("n")
	_, ok := e.Get("n")
	assert.False(t, ok)
}

func TestEnvironment_Has(t *testing.T) {
	e := New()
	assert.False(t, e.Has("x"))
	e.Set("x", objects.FALSE)
	assert.True(t, e.Has("x"))
}
