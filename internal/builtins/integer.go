package builtins

import (
	"strconv"

	"github.com/lis05/cotton/internal/object"
)

// NewIntegerType constructs the Integer type: the full arithmetic,
// bitwise, and comparison operator set, grounded in the original
// implementation's integer builtin (inc/dec mutate the receiver in place,
// matching C-like semantics: prefix forms return the receiver, postfix
// forms return a new Integer holding the old value).
func NewIntegerType(d *Deps) *object.Type {
	t := object.NewType(object.KindInteger)
	t.IsBuiltin = true

	t.Create = func(rt object.Runtime) *object.Instance {
		return object.NewInstance(object.KindInteger, 8)
	}
	t.Copy = func(obj *object.Object, rt object.Runtime) *object.Object {
		out := rt.Make(t, true)
		out.Instance.Int = obj.Instance.Int
		return out
	}
	t.UserRepr = func(obj *object.Object, rt object.Runtime) string {
		return strconv.FormatInt(obj.Instance.Int, 10)
	}

	intObj := func(rt object.Runtime, v int64) *object.Object {
		out := rt.Make(t, true)
		out.Instance.Int = v
		return out
	}

	t.SetUnary(object.OpPostInc, func(self *object.Object, rt object.Runtime, matters bool) *object.Object {
		requireKind(rt, self, object.KindInteger)
		old := self.Instance.Int
		self.Instance.Int++
		return intObj(rt, old)
	})
	t.SetUnary(object.OpPostDec, func(self *object.Object, rt object.Runtime, matters bool) *object.Object {
		requireKind(rt, self, object.KindInteger)
		old := self.Instance.Int
		self.Instance.Int--
		return intObj(rt, old)
	})
	t.SetUnary(object.OpPreInc, func(self *object.Object, rt object.Runtime, matters bool) *object.Object {
		requireKind(rt, self, object.KindInteger)
		self.Instance.Int++
		return self
	})
	t.SetUnary(object.OpPreDec, func(self *object.Object, rt object.Runtime, matters bool) *object.Object {
		requireKind(rt, self, object.KindInteger)
		self.Instance.Int--
		return self
	})
	t.SetUnary(object.OpPositive, func(self *object.Object, rt object.Runtime, matters bool) *object.Object {
		requireKind(rt, self, object.KindInteger)
		return intObj(rt, self.Instance.Int)
	})
	t.SetUnary(object.OpNegative, func(self *object.Object, rt object.Runtime, matters bool) *object.Object {
		requireKind(rt, self, object.KindInteger)
		return intObj(rt, -self.Instance.Int)
	})
	t.SetUnary(object.OpInverse, func(self *object.Object, rt object.Runtime, matters bool) *object.Object {
		requireKind(rt, self, object.KindInteger)
		return intObj(rt, ^self.Instance.Int)
	})

	requireInt := func(rt object.Runtime, self, arg *object.Object) {
		requireKind(rt, self, object.KindInteger)
		requireKind(rt, arg, object.KindInteger)
	}

	t.SetBinary(object.OpMult, func(self, arg *object.Object, rt object.Runtime, matters bool) *object.Object {
		requireInt(rt, self, arg)
		return intObj(rt, self.Instance.Int*arg.Instance.Int)
	})
	t.SetBinary(object.OpDiv, func(self, arg *object.Object, rt object.Runtime, matters bool) *object.Object {
		requireInt(rt, self, arg)
		if arg.Instance.Int == 0 {
			rt.SignalError(object.ErrDivisionByZero, "integer division by zero")
		}
		return intObj(rt, self.Instance.Int/arg.Instance.Int)
	})
	t.SetBinary(object.OpRem, func(self, arg *object.Object, rt object.Runtime, matters bool) *object.Object {
		requireInt(rt, self, arg)
		if arg.Instance.Int == 0 {
			rt.SignalError(object.ErrDivisionByZero, "integer remainder by zero")
		}
		return intObj(rt, self.Instance.Int%arg.Instance.Int)
	})
	t.SetBinary(object.OpRShift, func(self, arg *object.Object, rt object.Runtime, matters bool) *object.Object {
		requireInt(rt, self, arg)
		return intObj(rt, self.Instance.Int>>uint(arg.Instance.Int))
	})
	t.SetBinary(object.OpLShift, func(self, arg *object.Object, rt object.Runtime, matters bool) *object.Object {
		requireInt(rt, self, arg)
		return intObj(rt, self.Instance.Int<<uint(arg.Instance.Int))
	})
	t.SetBinary(object.OpAdd, func(self, arg *object.Object, rt object.Runtime, matters bool) *object.Object {
		requireInt(rt, self, arg)
		return intObj(rt, self.Instance.Int+arg.Instance.Int)
	})
	t.SetBinary(object.OpSub, func(self, arg *object.Object, rt object.Runtime, matters bool) *object.Object {
		requireInt(rt, self, arg)
		return intObj(rt, self.Instance.Int-arg.Instance.Int)
	})
	t.SetBinary(object.OpBitAnd, func(self, arg *object.Object, rt object.Runtime, matters bool) *object.Object {
		requireInt(rt, self, arg)
		return intObj(rt, self.Instance.Int&arg.Instance.Int)
	})
	t.SetBinary(object.OpBitXor, func(self, arg *object.Object, rt object.Runtime, matters bool) *object.Object {
		requireInt(rt, self, arg)
		return intObj(rt, self.Instance.Int^arg.Instance.Int)
	})
	t.SetBinary(object.OpBitOr, func(self, arg *object.Object, rt object.Runtime, matters bool) *object.Object {
		requireInt(rt, self, arg)
		return intObj(rt, self.Instance.Int|arg.Instance.Int)
	})

	cmp := func(slot object.BinarySlot, pred func(a, b int64) bool) {
		t.SetBinary(slot, func(self, arg *object.Object, rt object.Runtime, matters bool) *object.Object {
			requireInt(rt, self, arg)
			return boolObj(rt, d.Boolean, pred(self.Instance.Int, arg.Instance.Int))
		})
	}
	cmp(object.OpLess, func(a, b int64) bool { return a < b })
	cmp(object.OpLessEq, func(a, b int64) bool { return a <= b })
	cmp(object.OpGreater, func(a, b int64) bool { return a > b })
	cmp(object.OpGreaterEq, func(a, b int64) bool { return a >= b })
	t.SetBinary(object.OpEqual, func(self, arg *object.Object, rt object.Runtime, matters bool) *object.Object {
		requireKind(rt, self, object.KindInteger)
		eq := arg.Instance != nil && arg.Instance.Kind == object.KindInteger && arg.Instance.Int == self.Instance.Int
		return boolObj(rt, d.Boolean, eq)
	})
	t.SetBinary(object.OpNotEqual, func(self, arg *object.Object, rt object.Runtime, matters bool) *object.Object {
		requireKind(rt, self, object.KindInteger)
		eq := arg.Instance != nil && arg.Instance.Kind == object.KindInteger && arg.Instance.Int == self.Instance.Int
		return boolObj(rt, d.Boolean, !eq)
	})

	return t
}
