package evaluator

import (
	"github.com/lis05/cotton/internal/astshim"
	"github.com/lis05/cotton/internal/object"
	"github.com/lis05/cotton/internal/rt"
)

var unarySlots = map[astshim.OpId]object.UnarySlot{
	astshim.OpPostIncr:   object.OpPostInc,
	astshim.OpPostDecr:   object.OpPostDec,
	astshim.OpPreIncr:    object.OpPreInc,
	astshim.OpPreDecr:    object.OpPreDec,
	astshim.OpUnaryPlus:  object.OpPositive,
	astshim.OpUnaryMinus: object.OpNegative,
	astshim.OpNot:        object.OpNot,
	astshim.OpInverse:    object.OpInverse,
}

var binarySlots = map[astshim.OpId]object.BinarySlot{
	astshim.OpMult:       object.OpMult,
	astshim.OpDiv:        object.OpDiv,
	astshim.OpRem:        object.OpRem,
	astshim.OpRShift:     object.OpRShift,
	astshim.OpLShift:     object.OpLShift,
	astshim.OpAdd:        object.OpAdd,
	astshim.OpSub:        object.OpSub,
	astshim.OpLess:       object.OpLess,
	astshim.OpLessEq:     object.OpLessEq,
	astshim.OpGreater:    object.OpGreater,
	astshim.OpGreaterEq:  object.OpGreaterEq,
	astshim.OpEqual:      object.OpEqual,
	astshim.OpNotEqual:   object.OpNotEqual,
	astshim.OpBitAnd:     object.OpBitAnd,
	astshim.OpBitXor:     object.OpBitXor,
	astshim.OpBitOr:      object.OpBitOr,
	astshim.OpAnd:        object.OpAnd,
	astshim.OpOr:         object.OpOr,
}

// compoundSlots maps a compound-assignment operator to the binary slot it
// reduces to: `x += y` evaluates to `x = x + y`. x is evaluated once for
// its current value and once more by storeLValue to store the result.
var compoundSlots = map[astshim.OpId]object.BinarySlot{
	astshim.OpAddAssign:  object.OpAdd,
	astshim.OpSubAssign:  object.OpSub,
	astshim.OpMultAssign: object.OpMult,
	astshim.OpDivAssign:  object.OpDiv,
	astshim.OpRemAssign:  object.OpRem,
}

func (e *Evaluator) evalOperator(n *astshim.Operator, matters bool) *object.Object {
	switch n.ID {
	case astshim.OpAt:
		v := e.EvalExpr(n.First, matters)
		e.rt.SetFlags(e.rt.Flags() | rt.FlagDirectPass)
		return v

	case astshim.OpDot:
		return e.evalDot(n)

	case astshim.OpCall:
		callee := e.EvalExpr(n.First, true)
		args := e.evalArgList(n.Second)
		return e.rt.RunCall(callee, args, matters)

	case astshim.OpIndex:
		target := e.EvalExpr(n.First, true)
		args := e.evalArgList(n.Second)
		return e.rt.RunIndex(target, args, matters)

	case astshim.OpComma:
		// Result is the leftmost operand; the tail runs only for its
		// side effects. Hold it across evaluating the tail so a GC cycle
		// triggered there can't sweep it before it's returned.
		first := e.EvalExpr(n.First, matters)
		e.rt.GC().Hold(first)
		e.EvalExpr(n.Second, false)
		e.rt.GC().Release(first)
		return first

	case astshim.OpAssign:
		return e.evalAssign(n.First, n.Second)

	case astshim.OpAnd, astshim.OpOr:
		return e.evalLogical(n, matters)
	}

	if slot, ok := compoundSlots[n.ID]; ok {
		return e.evalCompoundAssign(n.First, slot, n.Second)
	}

	if slot, ok := unarySlots[n.ID]; ok {
		self := e.EvalExpr(n.First, true)
		return e.rt.RunUnaryOperator(slot, self, matters)
	}

	if slot, ok := binarySlots[n.ID]; ok {
		self := e.EvalExpr(n.First, true)
		arg := e.EvalExpr(n.Second, true)
		return e.rt.RunBinaryOperator(slot, self, arg, matters)
	}

	e.rt.SignalError(object.ErrInternalError, "unhandled operator id")
	return nil
}

// evalLogical short-circuits And/Or when the left operand is a plain
// Boolean; any other left-hand type falls through to the normal
// (non-short-circuiting) binary dispatch so a magic __land__/__lor__
// method still sees both operands.
func (e *Evaluator) evalLogical(n *astshim.Operator, matters bool) *object.Object {
	lhs := e.EvalExpr(n.First, true)
	slot := binarySlots[n.ID]
	if lhs.IsInstance && lhs.Instance != nil && lhs.Instance.Kind == object.KindBoolean {
		if n.ID == astshim.OpAnd && !lhs.Instance.Bool {
			return e.rt.ProtectedBoolean(false)
		}
		if n.ID == astshim.OpOr && lhs.Instance.Bool {
			return e.rt.ProtectedBoolean(true)
		}
		rhs := e.EvalExpr(n.Second, true)
		return e.rt.RunBinaryOperator(slot, lhs, rhs, matters)
	}
	rhs := e.EvalExpr(n.Second, true)
	return e.rt.RunBinaryOperator(slot, lhs, rhs, matters)
}

func (e *Evaluator) evalDot(n *astshim.Operator) *object.Object {
	recv := e.EvalExpr(n.First, true)
	id, ok := e.internIdent(n.Second)
	if !ok {
		e.rt.SignalError(object.ErrInternalError, "malformed field/method reference")
	}
	if recv.IsInstance && recv.Instance != nil && recv.Instance.Kind == object.KindRecord {
		if f, ok := recv.Instance.Fields[id]; ok {
			return f
		}
	}
	if fn, ok := recv.Type.Method(id); ok {
		return e.bindMethod(fn, recv)
	}
	e.rt.SignalError(object.ErrFieldNotFound, "no such field or method: "+e.rt.Names().String(id))
	return nil
}

// bindMethod wraps fn (an unbound method Function) and recv into a fresh
// native Function object, so `.`, used outside of a call, yields an
// ordinary callable value.
func (e *Evaluator) bindMethod(fn, recv *object.Object) *object.Object {
	bound := e.rt.Make(e.rt.Builtin.Function, true)
	bound.Instance.Func = &object.FuncData{
		Kind: object.FuncNative,
		Native: func(args []*object.Object, r object.Runtime, matters bool) *object.Object {
			return e.rt.CallFunction(fn, append([]*object.Object{recv}, args...), matters)
		},
	}
	return bound
}

// evalArgList flattens a right-leaning COMMA chain (or nil, for zero
// arguments) into an evaluated argument slice.
func (e *Evaluator) evalArgList(x astshim.Expr) []*object.Object {
	if x == nil {
		return nil
	}
	var out []*object.Object
	for {
		if op, ok := x.(*astshim.Operator); ok && op.ID == astshim.OpComma {
			out = append(out, e.rt.Copy(e.EvalExpr(op.First, true)))
			x = op.Second
			continue
		}
		out = append(out, e.rt.Copy(e.EvalExpr(x, true)))
		return out
	}
}
