package rt

import (
	"github.com/lis05/cotton/internal/astshim"
	"github.com/lis05/cotton/internal/object"
)

// RootObjects implements gc.RootProvider: every object directly reachable
// as a GC root without being referenced from another tracked object —
// scope-bound variables in every frame on the live call stack, globals,
// registered type objects, cached literals, and the three protected
// singletons.
//
// Only frames on the live scope stack are walked. A Function's defining
// scope (FuncData.DefiningEnv) is not a root once that frame has been
// popped, so the variables of an escaped closure's popped defining frame
// are not kept alive through the closure.
func (rt *Runtime) RootObjects() []*object.Object {
	var out []*object.Object
	for _, s := range rt.scopeStack {
		out = append(out, s.Variables()...)
	}
	for _, o := range rt.globals {
		out = append(out, o)
	}
	for _, o := range rt.typeObjects {
		out = append(out, o)
	}
	for _, o := range rt.literals {
		out = append(out, o)
	}
	if rt.protectedNothing != nil {
		out = append(out, rt.protectedNothing, rt.protectedTrue, rt.protectedFalse)
	}
	return out
}

// RootTypes implements gc.RootProvider: the nine canonical types are
// always roots (record types are reachable via their type objects, which
// RootObjects already covers through typeObjects).
func (rt *Runtime) RootTypes() []*object.Type {
	out := make([]*object.Type, 0, 8)
	for t := range rt.typeObjects {
		out = append(out, t)
	}
	b := rt.Builtin
	return append(out, b.Nothing, b.Boolean, b.Integer, b.Real, b.Character, b.String, b.Array, b.Function)
}

// PingGC asks the collector whether a cycle should run now. Called by
// the evaluator after each iteration of a while or for loop, per the
// runtime specification's GC trigger design.
func (rt *Runtime) PingGC() { rt.gc.Ping(rt) }

// CachedLiteral returns the object cached for tok, if any. Keyed by the
// token's address, which is stable for the lifetime of the AST it
// belongs to.
func (rt *Runtime) CachedLiteral(tok *astshim.Token) (*object.Object, bool) {
	o, ok := rt.literals[tok]
	return o, ok
}

// SetCachedLiteral caches obj for reuse by later evaluations of the same
// literal token, and registers it as a GC root via RootObjects.
func (rt *Runtime) SetCachedLiteral(tok *astshim.Token, obj *object.Object) {
	rt.literals[tok] = obj
}
