package builtins

import "github.com/lis05/cotton/internal/object"

// caller is satisfied by *rt.Runtime. Declared locally rather than
// imported to avoid a package cycle (package rt imports package
// builtins to install the canonical types).
type caller interface {
	CallFunction(fn *object.Object, args []*object.Object, matters bool) *object.Object
}

// NewFunctionType constructs the Function type: callable only, sharing
// its FuncData on copy since a function value's code and closing
// environment never change after construction.
func NewFunctionType(d *Deps) *object.Type {
	t := object.NewType(object.KindFunction)
	t.IsBuiltin = true

	t.Create = func(rt object.Runtime) *object.Instance {
		return object.NewInstance(object.KindFunction, 0)
	}
	t.Copy = func(obj *object.Object, rt object.Runtime) *object.Object {
		out := rt.Make(t, true)
		out.Instance.Func = obj.Instance.Func
		return out
	}
	t.UserRepr = func(obj *object.Object, rt object.Runtime) string {
		if obj.Instance.Func != nil && obj.Instance.Func.HasName {
			return "<function " + rt.Names().String(obj.Instance.Func.Name) + ">"
		}
		return "<function>"
	}

	t.Call = func(self *object.Object, args []*object.Object, rt object.Runtime, matters bool) *object.Object {
		requireKind(rt, self, object.KindFunction)
		if c, ok := rt.(caller); ok {
			return c.CallFunction(self, args, matters)
		}
		if self.Instance.Func.Kind == object.FuncNative {
			return self.Instance.Func.Native(args, rt, matters)
		}
		rt.SignalError(object.ErrInternalError, "runtime does not support calling user-defined functions here")
		return nil
	}

	return t
}
