package builtins_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lis05/cotton/internal/builtins"
	"github.com/lis05/cotton/internal/nameid"
	"github.com/lis05/cotton/internal/object"
	"github.com/lis05/cotton/internal/rt"
)

func TestRecordFieldsPrepopulatedWithNothing(t *testing.T) {
	r := rt.New()
	x := r.Names().Intern("x")
	y := r.Names().Intern("y")
	recType := builtins.NewRecordType(r.Names().Intern("Point"), []nameid.ID{x, y}, r.Builtin.Nothing)

	inst := r.Make(recType, true)
	assert.Len(t, inst.Instance.Fields, 2)
	assert.Same(t, r.Builtin.Nothing, inst.Instance.Fields[x].Type)
	assert.Same(t, r.Builtin.Nothing, inst.Instance.Fields[y].Type)
}

func TestRecordCopySharesFieldObjectsButNotFieldMap(t *testing.T) {
	r := rt.New()
	x := r.Names().Intern("x")
	recType := builtins.NewRecordType(r.Names().Intern("Box"), []nameid.ID{x}, r.Builtin.Nothing)

	inst := r.Make(recType, true)
	v := r.Make(r.Builtin.Integer, true)
	v.Instance.Int = 42
	inst.Instance.Fields[x] = v

	dup := r.Copy(inst)
	assert.Same(t, v, dup.Instance.Fields[x], "record copy shares field Objects")

	dup.Instance.Fields[x] = r.Make(r.Builtin.Integer, true)
	assert.Same(t, v, inst.Instance.Fields[x], "mutating the copy's field map must not affect the original's")
}

func TestRecordEqualityHasNoDefaultAndFallsBackToMagicMethod(t *testing.T) {
	r := rt.New()
	recType := builtins.NewRecordType(r.Names().Intern("Empty"), nil, r.Builtin.Nothing)

	a := r.Make(recType, true)
	b := r.Make(recType, true)

	var rerr *rt.Error
	func() {
		defer rt.Recover(&rerr)
		r.RunBinaryOperator(object.OpEqual, a, b, true)
	}()
	assert.NotNil(t, rerr, "a record type with no __eq__ method must not support == by default")
	assert.Equal(t, object.ErrOperatorNotSupported, rerr.Kind)

	eqID := r.MagicID(object.MagicEqual)
	eqFn := r.Make(r.Builtin.Function, true)
	eqFn.Instance.Func = &object.FuncData{
		Kind: object.FuncNative,
		Native: func(args []*object.Object, rr object.Runtime, matters bool) *object.Object {
			return rr.(*rt.Runtime).ProtectedBoolean(true)
		},
	}
	recType.AddMethod(eqID, eqFn)

	result := r.RunBinaryOperator(object.OpEqual, a, b, true)
	assert.True(t, result.Instance.Bool)
}
