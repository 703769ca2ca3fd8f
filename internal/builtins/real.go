package builtins

import (
	"strconv"

	"github.com/lis05/cotton/internal/object"
)

// NewRealType constructs the Real type: floating-point arithmetic and
// comparisons. Real has no bitwise slots; division by zero yields +/-Inf
// or NaN per IEEE 754 rather than signalling, matching float semantics.
func NewRealType(d *Deps) *object.Type {
	t := object.NewType(object.KindReal)
	t.IsBuiltin = true

	t.Create = func(rt object.Runtime) *object.Instance {
		return object.NewInstance(object.KindReal, 8)
	}
	t.Copy = func(obj *object.Object, rt object.Runtime) *object.Object {
		out := rt.Make(t, true)
		out.Instance.Real = obj.Instance.Real
		return out
	}
	t.UserRepr = func(obj *object.Object, rt object.Runtime) string {
		return strconv.FormatFloat(obj.Instance.Real, 'g', -1, 64)
	}

	realObj := func(rt object.Runtime, v float64) *object.Object {
		out := rt.Make(t, true)
		out.Instance.Real = v
		return out
	}

	t.SetUnary(object.OpPositive, func(self *object.Object, rt object.Runtime, matters bool) *object.Object {
		requireKind(rt, self, object.KindReal)
		return realObj(rt, self.Instance.Real)
	})
	t.SetUnary(object.OpNegative, func(self *object.Object, rt object.Runtime, matters bool) *object.Object {
		requireKind(rt, self, object.KindReal)
		return realObj(rt, -self.Instance.Real)
	})

	requireReal := func(rt object.Runtime, self, arg *object.Object) {
		requireKind(rt, self, object.KindReal)
		requireKind(rt, arg, object.KindReal)
	}

	t.SetBinary(object.OpMult, func(self, arg *object.Object, rt object.Runtime, matters bool) *object.Object {
		requireReal(rt, self, arg)
		return realObj(rt, self.Instance.Real*arg.Instance.Real)
	})
	t.SetBinary(object.OpDiv, func(self, arg *object.Object, rt object.Runtime, matters bool) *object.Object {
		requireReal(rt, self, arg)
		return realObj(rt, self.Instance.Real/arg.Instance.Real)
	})
	t.SetBinary(object.OpAdd, func(self, arg *object.Object, rt object.Runtime, matters bool) *object.Object {
		requireReal(rt, self, arg)
		return realObj(rt, self.Instance.Real+arg.Instance.Real)
	})
	t.SetBinary(object.OpSub, func(self, arg *object.Object, rt object.Runtime, matters bool) *object.Object {
		requireReal(rt, self, arg)
		return realObj(rt, self.Instance.Real-arg.Instance.Real)
	})

	cmp := func(slot object.BinarySlot, pred func(a, b float64) bool) {
		t.SetBinary(slot, func(self, arg *object.Object, rt object.Runtime, matters bool) *object.Object {
			requireReal(rt, self, arg)
			return boolObj(rt, d.Boolean, pred(self.Instance.Real, arg.Instance.Real))
		})
	}
	cmp(object.OpLess, func(a, b float64) bool { return a < b })
	cmp(object.OpLessEq, func(a, b float64) bool { return a <= b })
	cmp(object.OpGreater, func(a, b float64) bool { return a > b })
	cmp(object.OpGreaterEq, func(a, b float64) bool { return a >= b })
	t.SetBinary(object.OpEqual, func(self, arg *object.Object, rt object.Runtime, matters bool) *object.Object {
		requireKind(rt, self, object.KindReal)
		eq := arg.Instance != nil && arg.Instance.Kind == object.KindReal && arg.Instance.Real == self.Instance.Real
		return boolObj(rt, d.Boolean, eq)
	})
	t.SetBinary(object.OpNotEqual, func(self, arg *object.Object, rt object.Runtime, matters bool) *object.Object {
		requireKind(rt, self, object.KindReal)
		eq := arg.Instance != nil && arg.Instance.Kind == object.KindReal && arg.Instance.Real == self.Instance.Real
		return boolObj(rt, d.Boolean, !eq)
	})

	return t
}
