package rt

import (
	"github.com/lis05/cotton/internal/builtins"
	"github.com/lis05/cotton/internal/object"
)

// installBuiltinTypes constructs the nine canonical types via package
// builtins, registers a canonical type object for each, and binds their
// names (Nothing, Boolean, Integer, Real, Character, String, Array,
// Function) into the master scope so Cotton source can reference them
// directly (e.g. `if (typeof(x) == Integer)`).
func installBuiltinTypes(rt *Runtime) {
	d := builtins.InstallAll()

	rt.Builtin = BuiltinTypes{
		Nothing:    d.Nothing,
		Boolean:    d.Boolean,
		Integer:    d.Integer,
		Real:       d.Real,
		Character:  d.Character,
		String:     d.String,
		Array:      d.Array,
		Function:   d.Function,
		RecordKind: object.KindRecord,
	}

	bind := func(t *object.Type, name string) {
		obj := rt.Make(t, false)
		obj.CanModify = false
		rt.RegisterTypeObject(t, obj)
		rt.MasterScope().AddVariable(rt.names.Intern(name), obj)
	}
	bind(d.Nothing, "Nothing")
	bind(d.Boolean, "Boolean")
	bind(d.Integer, "Integer")
	bind(d.Real, "Real")
	bind(d.Character, "Character")
	bind(d.String, "String")
	bind(d.Array, "Array")
	bind(d.Function, "Function")
}

// makeProtectedNothing constructs the process-lifetime Nothing singleton,
// returned by every operation that produces "no value" so they can share
// one immutable instance instead of allocating repeatedly.
func (rt *Runtime) makeProtectedNothing() *object.Object {
	obj := rt.Make(rt.Builtin.Nothing, true)
	obj.CanModify = false
	obj.SingleUse = false
	return obj
}

// makeProtectedBoolean constructs one of the two process-lifetime Boolean
// singletons.
func (rt *Runtime) makeProtectedBoolean(v bool) *object.Object {
	obj := rt.Make(rt.Builtin.Boolean, true)
	obj.Instance.Bool = v
	obj.CanModify = false
	obj.SingleUse = false
	return obj
}
