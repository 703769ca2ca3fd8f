package evaluator

import (
	"github.com/lis05/cotton/internal/astshim"
	"github.com/lis05/cotton/internal/object"
	"github.com/lis05/cotton/internal/rt"
)

// evalAssign evaluates `target = rhs`. The DirectPass flag, set by a
// preceding `@rhs`, elides the usual defensive copy so the bound name
// aliases the producing expression's object instead of a copy of it.
func (e *Evaluator) evalAssign(target, rhs astshim.Expr) *object.Object {
	val := e.EvalExpr(rhs, true)
	if e.rt.Flags().Has(rt.FlagDirectPass) {
		e.rt.SetFlags(e.rt.Flags() &^ rt.FlagDirectPass)
	} else {
		val = e.rt.Copy(val)
	}
	e.storeLValue(target, val)
	return val
}

// evalCompoundAssign evaluates `target OP= rhs` by resolving target's
// current value once, running the reduced binary operator, and storing
// the result back through the same lvalue.
func (e *Evaluator) evalCompoundAssign(target astshim.Expr, slot object.BinarySlot, rhs astshim.Expr) *object.Object {
	cur := e.EvalExpr(target, true)
	arg := e.EvalExpr(rhs, true)
	result := e.rt.RunBinaryOperator(slot, cur, arg, true)
	e.storeLValue(target, e.rt.Copy(result))
	return result
}

// storeLValue binds val at the location target denotes: a plain
// identifier (current scope chain), a `.field` (record field), or an
// `[index]` (array element; Strings and other non-Array indexables are
// immutable and signal AssignmentToImmutable).
//
// In every case the existing Object at that location is mutated in
// place via AssignTo rather than having its slot pointer replaced: other
// names, array elements, and record fields may already share that exact
// Object (via `@` direct-pass, array/record copy-on-assign sharing
// elements, and so on), and those aliases must observe the new value
// too. Only when the identifier has no existing binding is a fresh one
// created, since there is nothing yet to mutate.
func (e *Evaluator) storeLValue(target astshim.Expr, val *object.Object) {
	switch n := target.(type) {
	case *astshim.Atom:
		id, ok := e.internIdent(n)
		if !ok {
			e.rt.SignalError(object.ErrInternalError, "invalid assignment target")
		}
		if existing, found := e.rt.Scope().Get(id); found {
			if !existing.CanModify {
				e.rt.SignalError(object.ErrAssignmentToImmutable, "object is not modifiable")
			}
			existing.AssignTo(val)
			return
		}
		e.rt.Scope().AddVariable(id, val)

	case *astshim.Operator:
		switch n.ID {
		case astshim.OpDot:
			recv := e.EvalExpr(n.First, true)
			id, ok := e.internIdent(n.Second)
			if !ok {
				e.rt.SignalError(object.ErrInternalError, "invalid field assignment target")
			}
			if !recv.IsInstance || recv.Instance == nil || recv.Instance.Kind != object.KindRecord {
				e.rt.SignalError(object.ErrTypeMismatch, "field assignment requires a record instance")
			}
			if !recv.CanModify {
				e.rt.SignalError(object.ErrAssignmentToImmutable, "object is not modifiable")
			}
			field, ok := recv.Instance.Fields[id]
			if !ok {
				e.rt.SignalError(object.ErrFieldNotFound, "no such field: "+e.rt.Names().String(id))
			}
			if !field.CanModify {
				e.rt.SignalError(object.ErrAssignmentToImmutable, "field is not modifiable")
			}
			field.AssignTo(val)

		case astshim.OpIndex:
			container := e.EvalExpr(n.First, true)
			args := e.evalArgList(n.Second)
			if len(args) != 1 {
				e.rt.SignalError(object.ErrArityMismatch, "index assignment takes exactly one index")
			}
			e.storeIndex(container, args[0], val)

		default:
			e.rt.SignalError(object.ErrInternalError, "invalid assignment target")
		}

	default:
		e.rt.SignalError(object.ErrInternalError, "invalid assignment target")
	}
}

func (e *Evaluator) storeIndex(container, index, val *object.Object) {
	if !container.IsInstance || container.Instance == nil || container.Instance.Kind != object.KindArray {
		e.rt.SignalError(object.ErrAssignmentToImmutable, "only Array elements can be assigned by index")
	}
	if !container.CanModify {
		e.rt.SignalError(object.ErrAssignmentToImmutable, "array is not modifiable")
	}
	if !index.IsInstance || index.Instance == nil || index.Instance.Kind != object.KindInteger {
		e.rt.SignalError(object.ErrTypeMismatch, "array index must be an Integer")
	}
	idx := index.Instance.Int
	arr := container.Instance.Arr
	if idx < 0 || idx >= int64(len(arr)) {
		e.rt.SignalError(object.ErrOutOfBounds, "array index out of bounds")
	}
	elem := arr[idx]
	if !elem.CanModify {
		e.rt.SignalError(object.ErrAssignmentToImmutable, "array element is not modifiable")
	}
	elem.AssignTo(val)
}
