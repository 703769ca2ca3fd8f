package rt

import "github.com/lis05/cotton/internal/object"

// Make constructs a new object of type t. If asInstance, t.Create builds a
// fresh Instance first; otherwise a type object is built directly. The
// result is registered with the GC immediately and marked SingleUse.
// Implements object.Runtime. Signals ObjectCreationError if t cannot
// create.
func (rt *Runtime) Make(t *object.Type, asInstance bool) *object.Object {
	if t == nil {
		rt.SignalError(object.ErrObjectCreation, "cannot make an object of a nil type")
	}

	if !asInstance {
		obj := object.NewTypeObject(t)
		rt.gc.Track(obj)
		return obj
	}

	if t.Create == nil {
		rt.SignalError(object.ErrObjectCreation, "type cannot create instances: "+rt.typeDebugName(t))
	}
	inst := t.Create(rt)
	if inst == nil {
		rt.SignalError(object.ErrObjectCreation, "type.Create returned nil: "+rt.typeDebugName(t))
	}
	rt.gc.TrackInstance(inst)
	obj := object.NewInstanceObject(inst, t)
	rt.gc.Track(obj)
	return obj
}

// Copy returns a copy of obj. If obj.SingleUse, the elision described in
// the runtime specification §4.4.2 applies: obj is returned unchanged.
// Otherwise t.Copy performs the per-type deep/shallow copy.
func (rt *Runtime) Copy(obj *object.Object) *object.Object {
	rt.verifyValid(obj, CtxArea)
	if obj.SingleUse {
		return obj
	}
	if !obj.IsInstance {
		// Type objects are never duplicated: the type registry owns a
		// single canonical Object per Type.
		return obj
	}
	cp := obj.Type.Copy(obj, rt)
	cp.SingleUse = true
	return cp
}

func (rt *Runtime) typeDebugName(t *object.Type) string {
	if t.IsBuiltin {
		return t.Kind.String()
	}
	if name, ok := rt.names.Lookup(t.NameID); ok {
		return name
	}
	return "<anonymous record type>"
}
