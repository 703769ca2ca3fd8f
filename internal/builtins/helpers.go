// Package builtins implements the nine canonical Cotton types and their
// operator/method vtables: Boolean, Integer, Real, Character, String,
// Array, Nothing, Function, and the Record kind used by user-defined
// types. This is the "built-in type kernel" component of the runtime
// specification (§2, row 5).
package builtins

import "github.com/lis05/cotton/internal/object"

func typeName(t *object.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.Kind.String()
}

func wrongType(rt object.Runtime, self *object.Object, want object.Kind) {
	rt.SignalError(object.ErrTypeMismatch, "expected "+want.String()+", got "+typeName(self.Type))
}

func requireKind(rt object.Runtime, obj *object.Object, kind object.Kind) {
	if obj == nil || !obj.IsInstance || obj.Instance == nil || obj.Instance.Kind != kind {
		rt.SignalError(object.ErrTypeMismatch, "expected an instance of "+kind.String())
	}
}

// boolObj builds an instance object wrapping a Go bool, used by operators
// that need to synthesize a fresh Boolean result outside of rt.Make (vtable
// code only has the object.Runtime interface, which is enough: Make is
// part of it).
func boolObj(rt object.Runtime, boolType *object.Type, v bool) *object.Object {
	obj := rt.Make(boolType, true)
	obj.Instance.Bool = v
	return obj
}
