package rt

import "github.com/lis05/cotton/internal/object"

// IsValidObject reports whether obj is non-nil and has a type.
func (rt *Runtime) IsValidObject(obj *object.Object) bool {
	return obj != nil && obj.Type != nil
}

// IsTypeObject reports whether obj is a valid type object, optionally of
// the given type (nil matches any type).
func (rt *Runtime) IsTypeObject(obj *object.Object, t *object.Type) bool {
	if !rt.IsValidObject(obj) || obj.IsInstance {
		return false
	}
	return t == nil || obj.Type == t
}

// IsInstanceObject reports whether obj is a valid instance object,
// optionally of the given type (nil matches any type).
func (rt *Runtime) IsInstanceObject(obj *object.Object, t *object.Type) bool {
	if !rt.IsValidObject(obj) || !obj.IsInstance {
		return false
	}
	return t == nil || obj.Type == t
}

// IsOfType reports whether obj (instance or type object) is of type t.
func (rt *Runtime) IsOfType(obj *object.Object, t *object.Type) bool {
	return rt.IsValidObject(obj) && obj.Type == t
}

func (rt *Runtime) verifyValid(obj *object.Object, ctx ContextID) {
	if !rt.IsValidObject(obj) {
		rt.SignalErrorAt(object.ErrInvalidObject, "invalid object", rt.TextArea(ctx))
	}
}

// VerifyIsValidObject signals InvalidObject if obj is not valid.
func (rt *Runtime) VerifyIsValidObject(obj *object.Object, ctx ContextID) {
	rt.verifyValid(obj, ctx)
}

// VerifyIsTypeObject signals TypeMismatch if obj is not a type object of t.
func (rt *Runtime) VerifyIsTypeObject(obj *object.Object, t *object.Type, ctx ContextID) {
	rt.verifyValid(obj, ctx)
	if !rt.IsTypeObject(obj, t) {
		rt.SignalErrorAt(object.ErrTypeMismatch, "expected a type object", rt.TextArea(ctx))
	}
}

// VerifyIsInstanceObject signals TypeMismatch if obj is not an instance
// object of t.
func (rt *Runtime) VerifyIsInstanceObject(obj *object.Object, t *object.Type, ctx ContextID) {
	rt.verifyValid(obj, ctx)
	if !rt.IsInstanceObject(obj, t) {
		rt.SignalErrorAt(object.ErrTypeMismatch, "expected an instance object", rt.TextArea(ctx))
	}
}

// VerifyIsOfType signals TypeMismatch if obj is not of type t.
func (rt *Runtime) VerifyIsOfType(obj *object.Object, t *object.Type, ctx ContextID) {
	rt.verifyValid(obj, ctx)
	if !rt.IsOfType(obj, t) {
		rt.SignalErrorAt(object.ErrTypeMismatch, "object is not of the expected type", rt.TextArea(ctx))
	}
}
