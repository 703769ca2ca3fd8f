package rt

import (
	"github.com/lis05/cotton/internal/nameid"
	"github.com/lis05/cotton/internal/object"
)

// CheckGlobal reports whether a global variable with id exists.
func (rt *Runtime) CheckGlobal(id nameid.ID) bool {
	_, ok := rt.globals[id]
	return ok
}

// GetGlobal returns the global bound to id, signalling NameNotFound if
// absent.
func (rt *Runtime) GetGlobal(id nameid.ID) *object.Object {
	obj, ok := rt.globals[id]
	if !ok {
		rt.SignalError(object.ErrNameNotFound, "no such global: "+rt.names.String(id))
	}
	return obj
}

// SetGlobal binds id to obj in the globals map.
func (rt *Runtime) SetGlobal(id nameid.ID, obj *object.Object) {
	rt.globals[id] = obj
}

// RemoveGlobal removes id from the globals map, if present.
func (rt *Runtime) RemoveGlobal(id nameid.ID) {
	delete(rt.globals, id)
}

// RegisterTypeObject associates obj (a type object) with t in the
// type-object registry, so later lookups by Type find their canonical
// Object representation.
func (rt *Runtime) RegisterTypeObject(t *object.Type, obj *object.Object) {
	rt.typeObjects[t] = obj
}

// TypeObject returns the registered type object for t, or the protected
// Nothing singleton if none is registered. Implements object.Runtime.
func (rt *Runtime) TypeObject(t *object.Type) *object.Object {
	if obj, ok := rt.typeObjects[t]; ok {
		return obj
	}
	return rt.protectedNothing
}

// ProtectedNothing returns the process-lifetime Nothing singleton.
func (rt *Runtime) ProtectedNothing() *object.Object { return rt.protectedNothing }

// ProtectedBoolean returns the process-lifetime Boolean singleton for val.
func (rt *Runtime) ProtectedBoolean(val bool) *object.Object {
	if val {
		return rt.protectedTrue
	}
	return rt.protectedFalse
}
