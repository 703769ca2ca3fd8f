package builtins

import "github.com/lis05/cotton/internal/object"

// Deps bundles the canonical types a builtin type's operators need to
// reference each other (e.g. comparisons return Booleans). Populated
// incrementally by InstallAll as each type is constructed, then handed to
// every constructor so cross-type references are always valid.
type Deps struct {
	Nothing   *object.Type
	Boolean   *object.Type
	Integer   *object.Type
	Real      *object.Type
	Character *object.Type
	String    *object.Type
	Array     *object.Type
	Function  *object.Type
}

// NewNothingType constructs the Nothing type: a single-valued type used
// for uninitialized record fields and absent returns.
func NewNothingType(d *Deps) *object.Type {
	t := object.NewType(object.KindNothing)
	t.IsBuiltin = true

	t.Create = func(rt object.Runtime) *object.Instance {
		return object.NewInstance(object.KindNothing, 0)
	}
	t.Copy = func(obj *object.Object, rt object.Runtime) *object.Object {
		return rt.Make(t, true)
	}
	t.UserRepr = func(obj *object.Object, rt object.Runtime) string {
		return "nothing"
	}

	t.SetBinary(object.OpEqual, func(self, arg *object.Object, rt object.Runtime, matters bool) *object.Object {
		return boolObj(rt, d.Boolean, arg.Type == t)
	})
	t.SetBinary(object.OpNotEqual, func(self, arg *object.Object, rt object.Runtime, matters bool) *object.Object {
		return boolObj(rt, d.Boolean, arg.Type != t)
	})

	return t
}
