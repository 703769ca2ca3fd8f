package rt

import (
	"github.com/lis05/cotton/internal/nameid"
	"github.com/lis05/cotton/internal/object"
)

// UserCallHook invokes a user-defined (non-native) function instance. It
// is wired up by package evaluator at interpreter construction time,
// since walking a function body is the evaluator's job, not the
// orchestrator's; keeping the hook here rather than importing evaluator
// avoids an import cycle.
type UserCallHook func(fn *object.Object, args []*object.Object, matters bool) *object.Object

// SetUserCallHook installs the callback used to invoke user-defined
// functions on this Runtime. Called once by package evaluator's
// constructor, scoped per-interpreter so multiple Runtimes never share
// state.
func (rt *Runtime) SetUserCallHook(hook UserCallHook) { rt.userCallHook = hook }

// RunUnaryOperator resolves and invokes the unary operator slot on
// self.Type. Falls back to the slot's magic method if the vtable slot is
// absent. Signals OperatorNotSupported if neither exists.
func (rt *Runtime) RunUnaryOperator(slot object.UnarySlot, self *object.Object, matters bool) *object.Object {
	rt.verifyValid(self, CtxArea)
	if op := self.Type.Unary(slot); op != nil {
		return op(self, rt, matters)
	}
	magic := object.UnarySlotMagic[slot]
	if fn, ok := self.Type.Method(rt.MagicID(magic)); ok {
		return rt.CallFunction(fn, []*object.Object{self}, matters)
	}
	rt.SignalError(object.ErrOperatorNotSupported, "unary operator not supported by type "+rt.typeDebugName(self.Type))
	return nil
}

// RunBinaryOperator resolves and invokes the binary operator slot on
// self.Type, falling back to self's magic method, then to arg's magic
// method (the reflected fallback described in SPEC_FULL.md), before
// signalling OperatorNotSupported.
func (rt *Runtime) RunBinaryOperator(slot object.BinarySlot, self, arg *object.Object, matters bool) *object.Object {
	rt.verifyValid(self, CtxArea)
	rt.verifyValid(arg, CtxSub0)

	if op := self.Type.Binary(slot); op != nil {
		return op(self, arg, rt, matters)
	}
	magic := object.BinarySlotMagic[slot]
	if fn, ok := self.Type.Method(rt.MagicID(magic)); ok {
		return rt.CallFunction(fn, []*object.Object{self, arg}, matters)
	}
	if fn, ok := arg.Type.Method(rt.MagicID(magic)); ok {
		return rt.CallFunction(fn, []*object.Object{self, arg}, matters)
	}
	rt.SignalError(object.ErrOperatorNotSupported, "binary operator not supported between "+rt.typeDebugName(self.Type)+" and "+rt.typeDebugName(arg.Type))
	return nil
}

// RunCall resolves and invokes the Call nary slot on self.Type.
func (rt *Runtime) RunCall(self *object.Object, args []*object.Object, matters bool) *object.Object {
	rt.verifyValid(self, CtxArea)
	if self.Type.Call != nil {
		return self.Type.Call(self, args, rt, matters)
	}
	if fn, ok := self.Type.Method(rt.MagicID(object.MagicCall)); ok {
		return rt.CallFunction(fn, append([]*object.Object{self}, args...), matters)
	}
	rt.SignalError(object.ErrOperatorNotSupported, "type is not callable: "+rt.typeDebugName(self.Type))
	return nil
}

// RunIndex resolves and invokes the Index nary slot on self.Type.
func (rt *Runtime) RunIndex(self *object.Object, args []*object.Object, matters bool) *object.Object {
	rt.verifyValid(self, CtxArea)
	if self.Type.Index != nil {
		return self.Type.Index(self, args, rt, matters)
	}
	if fn, ok := self.Type.Method(rt.MagicID(object.MagicIndex)); ok {
		return rt.CallFunction(fn, append([]*object.Object{self}, args...), matters)
	}
	rt.SignalError(object.ErrOperatorNotSupported, "type is not indexable: "+rt.typeDebugName(self.Type))
	return nil
}

// RunMethod resolves self.Type.Methods[id], which must be a Function
// instance object, and invokes it with args prefixed by self.
func (rt *Runtime) RunMethod(id nameid.ID, self *object.Object, args []*object.Object, matters bool) *object.Object {
	rt.verifyValid(self, CtxArea)
	fn, ok := self.Type.Method(id)
	if !ok {
		rt.SignalError(object.ErrMethodNotFound, "no such method: "+rt.names.String(id))
	}
	if !rt.IsInstanceObject(fn, rt.Builtin.Function) {
		rt.SignalError(object.ErrTypeMismatch, "method table entry is not a function: "+rt.names.String(id))
	}
	return rt.CallFunction(fn, append([]*object.Object{self}, args...), matters)
}

// CallFunction invokes a Function instance object (native or user-defined)
// with the given argument list.
func (rt *Runtime) CallFunction(fn *object.Object, args []*object.Object, matters bool) *object.Object {
	rt.verifyValid(fn, CtxArea)
	if !rt.IsInstanceObject(fn, rt.Builtin.Function) {
		rt.SignalError(object.ErrTypeMismatch, "value is not callable")
	}
	data := fn.Instance.Func
	switch data.Kind {
	case object.FuncNative:
		return data.Native(args, rt, matters)
	case object.FuncUser:
		if rt.userCallHook == nil {
			rt.SignalError(object.ErrInternalError, "no evaluator installed to run user-defined functions")
		}
		return rt.userCallHook(fn, args, matters)
	default:
		rt.SignalError(object.ErrInternalError, "unknown function kind")
		return nil
	}
}
