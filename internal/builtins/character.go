package builtins

import "github.com/lis05/cotton/internal/object"

// NewCharacterType constructs the Character type: a single rune with
// integer-offset arithmetic (char + int -> char, char - char -> int) and
// ordering comparisons, mirroring C's char-as-small-integer treatment in
// the original implementation.
func NewCharacterType(d *Deps) *object.Type {
	t := object.NewType(object.KindCharacter)
	t.IsBuiltin = true

	t.Create = func(rt object.Runtime) *object.Instance {
		return object.NewInstance(object.KindCharacter, 4)
	}
	t.Copy = func(obj *object.Object, rt object.Runtime) *object.Object {
		out := rt.Make(t, true)
		out.Instance.Char = obj.Instance.Char
		return out
	}
	t.UserRepr = func(obj *object.Object, rt object.Runtime) string {
		return string(obj.Instance.Char)
	}

	charObj := func(rt object.Runtime, v rune) *object.Object {
		out := rt.Make(t, true)
		out.Instance.Char = v
		return out
	}

	t.SetBinary(object.OpAdd, func(self, arg *object.Object, rt object.Runtime, matters bool) *object.Object {
		requireKind(rt, self, object.KindCharacter)
		requireKind(rt, arg, object.KindInteger)
		return charObj(rt, self.Instance.Char+rune(arg.Instance.Int))
	})
	t.SetBinary(object.OpSub, func(self, arg *object.Object, rt object.Runtime, matters bool) *object.Object {
		requireKind(rt, self, object.KindCharacter)
		if arg.Instance != nil && arg.Instance.Kind == object.KindCharacter {
			out := rt.Make(d.Integer, true)
			out.Instance.Int = int64(self.Instance.Char - arg.Instance.Char)
			return out
		}
		requireKind(rt, arg, object.KindInteger)
		return charObj(rt, self.Instance.Char-rune(arg.Instance.Int))
	})

	cmp := func(slot object.BinarySlot, pred func(a, b rune) bool) {
		t.SetBinary(slot, func(self, arg *object.Object, rt object.Runtime, matters bool) *object.Object {
			requireKind(rt, self, object.KindCharacter)
			requireKind(rt, arg, object.KindCharacter)
			return boolObj(rt, d.Boolean, pred(self.Instance.Char, arg.Instance.Char))
		})
	}
	cmp(object.OpLess, func(a, b rune) bool { return a < b })
	cmp(object.OpLessEq, func(a, b rune) bool { return a <= b })
	cmp(object.OpGreater, func(a, b rune) bool { return a > b })
	cmp(object.OpGreaterEq, func(a, b rune) bool { return a >= b })
	t.SetBinary(object.OpEqual, func(self, arg *object.Object, rt object.Runtime, matters bool) *object.Object {
		requireKind(rt, self, object.KindCharacter)
		eq := arg.Instance != nil && arg.Instance.Kind == object.KindCharacter && arg.Instance.Char == self.Instance.Char
		return boolObj(rt, d.Boolean, eq)
	})
	t.SetBinary(object.OpNotEqual, func(self, arg *object.Object, rt object.Runtime, matters bool) *object.Object {
		requireKind(rt, self, object.KindCharacter)
		eq := arg.Instance != nil && arg.Instance.Kind == object.KindCharacter && arg.Instance.Char == self.Instance.Char
		return boolObj(rt, d.Boolean, !eq)
	})

	return t
}
