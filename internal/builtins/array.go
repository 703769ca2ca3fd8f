package builtins

import "github.com/lis05/cotton/internal/object"

// NewArrayType constructs the Array type. Arrays are reference types:
// Copy duplicates the outer Instance but shares the element Objects, so
// two copies of an array observe each other's in-place element mutations
// (see the Instance.Arr field doc).
func NewArrayType(d *Deps) *object.Type {
	t := object.NewType(object.KindArray)
	t.IsBuiltin = true

	t.Create = func(rt object.Runtime) *object.Instance {
		return object.NewInstance(object.KindArray, 0)
	}
	t.Copy = func(obj *object.Object, rt object.Runtime) *object.Object {
		out := rt.Make(t, true)
		out.Instance.Arr = append([]*object.Object(nil), obj.Instance.Arr...)
		return out
	}
	t.UserRepr = func(obj *object.Object, rt object.Runtime) string {
		s := "["
		for i, el := range obj.Instance.Arr {
			if i > 0 {
				s += ", "
			}
			if el.Type.UserRepr != nil {
				s += el.Type.UserRepr(el, rt)
			}
		}
		return s + "]"
	}

	t.SetBinary(object.OpAdd, func(self, arg *object.Object, rt object.Runtime, matters bool) *object.Object {
		requireKind(rt, self, object.KindArray)
		requireKind(rt, arg, object.KindArray)
		out := rt.Make(t, true)
		out.Instance.Arr = append(append([]*object.Object(nil), self.Instance.Arr...), arg.Instance.Arr...)
		return out
	})
	t.SetBinary(object.OpEqual, func(self, arg *object.Object, rt object.Runtime, matters bool) *object.Object {
		requireKind(rt, self, object.KindArray)
		return boolObj(rt, d.Boolean, self.Instance == arg.Instance)
	})
	t.SetBinary(object.OpNotEqual, func(self, arg *object.Object, rt object.Runtime, matters bool) *object.Object {
		requireKind(rt, self, object.KindArray)
		return boolObj(rt, d.Boolean, self.Instance != arg.Instance)
	})

	t.Index = func(self *object.Object, args []*object.Object, rt object.Runtime, matters bool) *object.Object {
		requireKind(rt, self, object.KindArray)
		if len(args) != 1 {
			rt.SignalError(object.ErrArityMismatch, "array indexing takes exactly one argument")
		}
		requireKind(rt, args[0], object.KindInteger)
		idx := args[0].Instance.Int
		arr := self.Instance.Arr
		if idx < 0 || idx >= int64(len(arr)) {
			rt.SignalError(object.ErrOutOfBounds, "array index out of bounds")
		}
		return arr[idx]
	}

	return t
}
