package rt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lis05/cotton/internal/object"
	"github.com/lis05/cotton/internal/rt"
)

func TestMakeInstanceAndTypeObject(t *testing.T) {
	r := rt.New()

	inst := r.Make(r.Builtin.Integer, true)
	assert.True(t, inst.IsInstance)
	assert.Equal(t, int64(0), inst.Instance.Int)

	typeObj := r.Make(r.Builtin.Integer, false)
	assert.False(t, typeObj.IsInstance)
}

func TestCopyElidesForSingleUseObjects(t *testing.T) {
	r := rt.New()
	inst := r.Make(r.Builtin.Integer, true)
	assert.True(t, inst.SingleUse)

	cp := r.Copy(inst)
	assert.Same(t, inst, cp, "a fresh single-use object must be returned as-is")
}

func TestCopyDuplicatesAfterSpreadMultiUse(t *testing.T) {
	r := rt.New()
	inst := r.Make(r.Builtin.Integer, true)
	inst.Instance.Int = 5
	inst.SpreadMultiUse()

	cp := r.Copy(inst)
	assert.NotSame(t, inst, cp)
	assert.Equal(t, int64(5), cp.Instance.Int)

	cp.Instance.Int = 9
	assert.Equal(t, int64(5), inst.Instance.Int, "copies of Integer must not alias the source Instance")
}

func TestSignalErrorPanicsAndRecoverReportsKind(t *testing.T) {
	r := rt.New()

	var rerr *rt.Error
	func() {
		defer rt.Recover(&rerr)
		r.SignalError(object.ErrUserError, "boom")
	}()

	require.NotNil(t, rerr)
	assert.Equal(t, object.ErrUserError, rerr.Kind)
	assert.Contains(t, rerr.Error(), "boom")
}

func TestRecoverRepanicsUnrelatedPanics(t *testing.T) {
	defer func() {
		r := recover()
		assert.Equal(t, "not a runtime error", r)
	}()

	var rerr *rt.Error
	defer rt.Recover(&rerr)
	panic("not a runtime error")
}

func TestScopeFramePushPopRestoresPrevious(t *testing.T) {
	r := rt.New()
	master := r.Scope()

	child := r.NewScopeFrame(true)
	assert.Same(t, child, r.Scope())
	assert.NotSame(t, master, r.Scope())

	r.PopScopeFrame()
	assert.Same(t, master, r.Scope())
}

func TestPopScopeFrameNeverPopsTheMasterFrame(t *testing.T) {
	r := rt.New()
	master := r.Scope()

	r.PopScopeFrame()
	assert.Same(t, master, r.Scope(), "popping with only the master frame on the stack must be a no-op")
}

func TestGlobalsRoundTrip(t *testing.T) {
	r := rt.New()
	id := r.Names().Intern("answer")

	assert.False(t, r.CheckGlobal(id))

	v := r.Make(r.Builtin.Integer, true)
	v.Instance.Int = 42
	r.SetGlobal(id, v)

	assert.True(t, r.CheckGlobal(id))
	assert.Same(t, v, r.GetGlobal(id))

	r.RemoveGlobal(id)
	assert.False(t, r.CheckGlobal(id))
}

func TestGCCollectsObjectsNoLongerRooted(t *testing.T) {
	r := rt.New()

	id := r.Names().Intern("temp")
	obj := r.Make(r.Builtin.Integer, true)
	r.MasterScope().AddVariable(id, obj)

	before := r.GC().Stats()
	assert.GreaterOrEqual(t, before.Objects, 1)

	r.MasterScope().RemoveVariable(id)
	r.GC().RunCycle(r)

	after := r.GC().Stats()
	assert.Less(t, after.Objects, before.Objects, "an object no longer reachable from any root must be swept")
}

func TestGCHoldKeepsObjectAliveAcrossACycle(t *testing.T) {
	r := rt.New()

	id := r.Names().Intern("temp")
	obj := r.Make(r.Builtin.Integer, true)
	r.MasterScope().AddVariable(id, obj)
	r.GC().Hold(obj)
	r.MasterScope().RemoveVariable(id)

	before := r.GC().Stats()
	r.GC().RunCycle(r)
	after := r.GC().Stats()
	assert.Equal(t, before.Objects, after.Objects, "a held object must survive a cycle even when unreachable from any root")
}
