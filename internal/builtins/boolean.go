package builtins

import "github.com/lis05/cotton/internal/object"

// NewBooleanType constructs the Boolean type: not, and, or, equality, and
// string representation.
func NewBooleanType(d *Deps) *object.Type {
	t := object.NewType(object.KindBoolean)
	t.IsBuiltin = true

	t.Create = func(rt object.Runtime) *object.Instance {
		return object.NewInstance(object.KindBoolean, 1)
	}
	t.Copy = func(obj *object.Object, rt object.Runtime) *object.Object {
		out := rt.Make(t, true)
		out.Instance.Bool = obj.Instance.Bool
		return out
	}
	t.UserRepr = func(obj *object.Object, rt object.Runtime) string {
		if obj.Instance.Bool {
			return "true"
		}
		return "false"
	}

	t.SetUnary(object.OpNot, func(self *object.Object, rt object.Runtime, matters bool) *object.Object {
		requireKind(rt, self, object.KindBoolean)
		return boolObj(rt, t, !self.Instance.Bool)
	})

	t.SetBinary(object.OpAnd, func(self, arg *object.Object, rt object.Runtime, matters bool) *object.Object {
		requireKind(rt, self, object.KindBoolean)
		requireKind(rt, arg, object.KindBoolean)
		return boolObj(rt, t, self.Instance.Bool && arg.Instance.Bool)
	})
	t.SetBinary(object.OpOr, func(self, arg *object.Object, rt object.Runtime, matters bool) *object.Object {
		requireKind(rt, self, object.KindBoolean)
		requireKind(rt, arg, object.KindBoolean)
		return boolObj(rt, t, self.Instance.Bool || arg.Instance.Bool)
	})
	t.SetBinary(object.OpEqual, func(self, arg *object.Object, rt object.Runtime, matters bool) *object.Object {
		requireKind(rt, self, object.KindBoolean)
		return boolObj(rt, t, arg.Instance != nil && arg.Instance.Kind == object.KindBoolean && arg.Instance.Bool == self.Instance.Bool)
	})
	t.SetBinary(object.OpNotEqual, func(self, arg *object.Object, rt object.Runtime, matters bool) *object.Object {
		requireKind(rt, self, object.KindBoolean)
		eq := arg.Instance != nil && arg.Instance.Kind == object.KindBoolean && arg.Instance.Bool == self.Instance.Bool
		return boolObj(rt, t, !eq)
	})

	return t
}
