// Package object implements Cotton's unified value model: the Object/
// Instance/Type triad described in the runtime specification. Every Cotton
// value is an Object; an Object is either a type object (is_instance ==
// false, representing a type itself) or an instance object (is_instance ==
// true, holding data via an Instance).
//
// This package is intentionally decoupled from the orchestrating Runtime:
// operator and lifecycle hooks are expressed against the small Runtime
// interface below rather than a concrete type, so the built-in type kernel
// and the orchestrator can live in separate packages without an import
// cycle.
package object

import "github.com/lis05/cotton/internal/nameid"

// Runtime is the subset of orchestrator behavior that Types need in order
// to create, copy, and dispatch operators on their instances. The concrete
// implementation lives in package rt.
type Runtime interface {
	// Make constructs a new object of the given type, instance or type
	// object depending on asInstance.
	Make(t *Type, asInstance bool) *Object

	// SignalError raises a runtime error tagged with kind, aborting the
	// current evaluation by panicking (package rt panics with a signal
	// value carrying an *rt.Error, converted back by rt.Recover). Never
	// returns.
	SignalError(kind ErrorKind, message string)

	// Names exposes the runtime's name interner.
	Names() *nameid.Table

	// TypeObject returns the registered type object for t, or the
	// protected Nothing singleton if none is registered.
	TypeObject(t *Type) *Object
}

// ErrorKind enumerates the abstract error kinds from the error taxonomy.
// Concrete construction and formatting lives in package rt; the kind is
// defined here so operator bodies (which only have a Runtime interface)
// can still signal precisely typed errors.
type ErrorKind int

const (
	ErrInvalidObject ErrorKind = iota
	ErrTypeMismatch
	ErrOperatorNotSupported
	ErrMethodNotFound
	ErrFieldNotFound
	ErrNameNotFound
	ErrArityMismatch
	ErrAssignmentToImmutable
	ErrOutOfBounds
	ErrDivisionByZero
	ErrDomainError
	ErrImportError
	ErrUserError
	ErrInternalError
	ErrObjectCreation
)

// Object is the universal value.
type Object struct {
	ID int64

	// IsInstance is true for instance objects (hold data via Instance),
	// false for type objects (represent the type itself).
	IsInstance bool

	// Instance is present iff IsInstance.
	Instance *Instance

	// Type is always present; identifies the object's type.
	Type *Type

	// GCMark is flipped by the tracing collector during mark/sweep.
	GCMark bool

	// CanModify being false means assignment to this object fails. Used
	// to protect literal caches and builtin type bindings.
	CanModify bool

	// SingleUse hints that the object was just produced and has not yet
	// been bound to a named variable, so copy() may elide a defensive
	// copy.
	SingleUse bool
}

var nextObjectID int64

func nextOID() int64 {
	nextObjectID++
	return nextObjectID
}

// NewInstanceObject wraps inst in a new instance object of type t.
func NewInstanceObject(inst *Instance, t *Type) *Object {
	return &Object{
		ID:         nextOID(),
		IsInstance: true,
		Instance:   inst,
		Type:       t,
		CanModify:  true,
		SingleUse:  true,
	}
}

// NewTypeObject wraps t itself as a type object.
func NewTypeObject(t *Type) *Object {
	return &Object{
		ID:         nextOID(),
		IsInstance: false,
		Type:       t,
		CanModify:  true,
		SingleUse:  true,
	}
}

// SpreadMultiUse clears the single-use hint, used when an object gets
// bound to a named variable.
func (o *Object) SpreadMultiUse() {
	o.SingleUse = false
}

// AssignTo overwrites o's contents with src's, preserving o's identity
// (ID). Every existing alias of o — another name, an array slot, a
// record field — observes the new value immediately, since none of them
// hold src itself, only the Object pointer o. Mirrors the original
// runtime's Object::assignTo.
func (o *Object) AssignTo(src *Object) {
	id := o.ID
	*o = *src
	o.ID = id
	o.SpreadMultiUse()
}

// GCReachable returns every entity directly reachable from o: its type,
// and if present its instance.
func (o *Object) GCReachable() (objects []*Object, instances []*Instance, types []*Type) {
	types = append(types, o.Type)
	if o.IsInstance && o.Instance != nil {
		instances = append(instances, o.Instance)
	}
	return
}
