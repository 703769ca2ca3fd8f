package builtins

import (
	"strings"

	"github.com/lis05/cotton/internal/object"
)

// NewStringType constructs the String type: concatenation, integer
// repetition, lexicographic comparison, and rune indexing.
func NewStringType(d *Deps) *object.Type {
	t := object.NewType(object.KindString)
	t.IsBuiltin = true

	t.Create = func(rt object.Runtime) *object.Instance {
		return object.NewInstance(object.KindString, 0)
	}
	t.Copy = func(obj *object.Object, rt object.Runtime) *object.Object {
		out := rt.Make(t, true)
		out.Instance.Str = obj.Instance.Str
		return out
	}
	t.UserRepr = func(obj *object.Object, rt object.Runtime) string {
		return obj.Instance.Str
	}

	strObj := func(rt object.Runtime, v string) *object.Object {
		out := rt.Make(t, true)
		out.Instance.Str = v
		return out
	}

	t.SetBinary(object.OpAdd, func(self, arg *object.Object, rt object.Runtime, matters bool) *object.Object {
		requireKind(rt, self, object.KindString)
		requireKind(rt, arg, object.KindString)
		return strObj(rt, self.Instance.Str+arg.Instance.Str)
	})
	t.SetBinary(object.OpMult, func(self, arg *object.Object, rt object.Runtime, matters bool) *object.Object {
		requireKind(rt, self, object.KindString)
		requireKind(rt, arg, object.KindInteger)
		n := arg.Instance.Int
		if n < 0 {
			rt.SignalError(object.ErrDomainError, "string repeat count must be non-negative")
		}
		return strObj(rt, strings.Repeat(self.Instance.Str, int(n)))
	})

	cmp := func(slot object.BinarySlot, pred func(c int) bool) {
		t.SetBinary(slot, func(self, arg *object.Object, rt object.Runtime, matters bool) *object.Object {
			requireKind(rt, self, object.KindString)
			requireKind(rt, arg, object.KindString)
			return boolObj(rt, d.Boolean, pred(strings.Compare(self.Instance.Str, arg.Instance.Str)))
		})
	}
	cmp(object.OpLess, func(c int) bool { return c < 0 })
	cmp(object.OpLessEq, func(c int) bool { return c <= 0 })
	cmp(object.OpGreater, func(c int) bool { return c > 0 })
	cmp(object.OpGreaterEq, func(c int) bool { return c >= 0 })
	t.SetBinary(object.OpEqual, func(self, arg *object.Object, rt object.Runtime, matters bool) *object.Object {
		requireKind(rt, self, object.KindString)
		eq := arg.Instance != nil && arg.Instance.Kind == object.KindString && arg.Instance.Str == self.Instance.Str
		return boolObj(rt, d.Boolean, eq)
	})
	t.SetBinary(object.OpNotEqual, func(self, arg *object.Object, rt object.Runtime, matters bool) *object.Object {
		requireKind(rt, self, object.KindString)
		eq := arg.Instance != nil && arg.Instance.Kind == object.KindString && arg.Instance.Str == self.Instance.Str
		return boolObj(rt, d.Boolean, !eq)
	})

	t.Index = func(self *object.Object, args []*object.Object, rt object.Runtime, matters bool) *object.Object {
		requireKind(rt, self, object.KindString)
		if len(args) != 1 {
			rt.SignalError(object.ErrArityMismatch, "string indexing takes exactly one argument")
		}
		requireKind(rt, args[0], object.KindInteger)
		runes := []rune(self.Instance.Str)
		idx := args[0].Instance.Int
		if idx < 0 || idx >= int64(len(runes)) {
			rt.SignalError(object.ErrOutOfBounds, "string index out of bounds")
		}
		out := rt.Make(d.Character, true)
		out.Instance.Char = runes[idx]
		return out
	}

	return t
}
