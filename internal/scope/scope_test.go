package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lis05/cotton/internal/nameid"
	"github.com/lis05/cotton/internal/object"
)

func obj() *object.Object {
	return object.NewInstanceObject(object.NewInstance(object.KindInteger, 0), nil)
}

func TestScopeGetLocal(t *testing.T) {
	names := nameid.New()
	x := names.Intern("x")

	m := NewMaster()
	v := obj()
	m.AddVariable(x, v)

	got, ok := m.Get(x)
	assert.True(t, ok)
	assert.Same(t, v, got)
}

func TestScopeGetFallsThroughPrevWhenAllowed(t *testing.T) {
	names := nameid.New()
	x := names.Intern("x")

	master := NewMaster()
	outer := New(master, master, true)
	v := obj()
	outer.AddVariable(x, v)

	inner := New(outer, master, true)
	got, ok := inner.Get(x)
	assert.True(t, ok)
	assert.Same(t, v, got)
}

func TestScopeGetBlockedByCanAccessPrev(t *testing.T) {
	names := nameid.New()
	x := names.Intern("x")

	master := NewMaster()
	outer := New(master, master, true)
	outer.AddVariable(x, obj())

	// A function-call frame refuses to see outer's locals, but still
	// reaches master once.
	callFrame := New(outer, master, false)
	_, ok := callFrame.Get(x)
	assert.False(t, ok, "function-call frame must not see its caller's locals")

	y := names.Intern("y")
	mv := obj()
	master.AddVariable(y, mv)
	got, ok := callFrame.Get(y)
	assert.True(t, ok, "function-call frame still reaches its master")
	assert.Same(t, mv, got)
}

func TestScopeSetRebindsOuterFrame(t *testing.T) {
	names := nameid.New()
	x := names.Intern("x")

	master := NewMaster()
	outer := New(master, master, true)
	outer.AddVariable(x, obj())

	inner := New(outer, master, true)
	replacement := obj()
	inner.Set(x, replacement)

	// Set must have rebound the existing outer binding, not shadowed it
	// locally.
	_, localOk := inner.Local(x)
	assert.False(t, localOk)
	got, ok := outer.Local(x)
	assert.True(t, ok)
	assert.Same(t, replacement, got)
}

func TestScopeSetCreatesLocalWhenUnresolved(t *testing.T) {
	names := nameid.New()
	x := names.Intern("x")

	master := NewMaster()
	s := New(master, master, true)
	v := obj()
	s.Set(x, v)

	got, ok := s.Local(x)
	assert.True(t, ok)
	assert.Same(t, v, got)
}

func TestScopeHideRemovesFirstMatchOnly(t *testing.T) {
	names := nameid.New()
	x := names.Intern("x")

	master := NewMaster()
	master.AddVariable(x, obj())

	outer := New(master, master, true)
	outer.AddVariable(x, obj())

	inner := New(outer, master, true)

	removed := inner.Hide(x)
	assert.True(t, removed)

	// outer's binding for x is gone, but master's is untouched: hide()
	// does not cascade past the first frame where it found a match.
	_, outerOk := outer.Local(x)
	assert.False(t, outerOk)
	_, masterOk := master.Local(x)
	assert.True(t, masterOk)
}

func TestScopeHideReportsFalseWhenNotFound(t *testing.T) {
	names := nameid.New()
	x := names.Intern("x")

	master := NewMaster()
	s := New(master, master, true)
	assert.False(t, s.Hide(x))
}

func TestScopeBindingsCopiesCurrentFrameOnly(t *testing.T) {
	names := nameid.New()
	x := names.Intern("x")
	y := names.Intern("y")

	master := NewMaster()
	master.AddVariable(y, obj())

	s := New(master, master, true)
	v := obj()
	s.AddVariable(x, v)

	bindings := s.Bindings()
	assert.Len(t, bindings, 1)
	assert.Same(t, v, bindings[x])

	// Mutating the returned map must not affect the scope itself.
	delete(bindings, x)
	_, ok := s.Local(x)
	assert.True(t, ok)
}

func TestScopeArgumentsRoundTrip(t *testing.T) {
	master := NewMaster()
	s := New(master, master, false)
	args := []*object.Object{obj(), obj()}
	s.SetArguments(args)
	assert.Equal(t, args, s.Arguments())
}
