// Package rt implements the Runtime: the orchestrator described in the
// runtime specification §4.4. It materialises Objects (GC-tracked),
// resolves operators via Type vtables, and threads execution flags,
// globals, and the error-context stack through evaluation.
package rt

import (
	"io"
	"os"

	"github.com/lis05/cotton/internal/astshim"
	"github.com/lis05/cotton/internal/gc"
	"github.com/lis05/cotton/internal/nameid"
	"github.com/lis05/cotton/internal/object"
	"github.com/lis05/cotton/internal/scope"
)

// BuiltinTypes holds the nine canonical types with fixed, well-known
// identities.
type BuiltinTypes struct {
	Function  *object.Type
	Nothing   *object.Type
	Boolean   *object.Type
	Integer   *object.Type
	Real      *object.Type
	Character *object.Type
	String    *object.Type
	Array     *object.Type
	// RecordKind is not a single type: every `type` definition allocates
	// its own *object.Type with Kind == object.KindRecord. This field
	// names the canonical *kind*, useful for isOfKind-style checks.
	RecordKind object.Kind
}

// Runtime is the central orchestrator threaded through every evaluation
// call.
type Runtime struct {
	names *nameid.Table

	gc *gc.GC

	scopeStack []*scope.Scope

	globals      map[nameid.ID]*object.Object
	typeObjects  map[*object.Type]*object.Object
	literals     map[*astshim.Token]*object.Object
	magicNameIDs map[string]nameid.ID

	protectedNothing *object.Object
	protectedTrue    *object.Object
	protectedFalse   *object.Object

	Builtin BuiltinTypes

	flags ExecFlags

	contexts []ErrorContext

	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader
	Args   []string
	Env    map[string]string

	// ModulePath governs shared-library and source-import resolution
	// (SPEC_FULL.md, mirroring COTTON_SHARED_LIBRARIES_PATH /
	// COTTON_CTN_MODULES_PATH).
	ModulePath string

	// Unrestricted gates non-sandboxed stdlib symbols (system, exit,
	// sleep, loadlibrary/sharedlibrary).
	Unrestricted bool

	// importing tracks source-import paths currently being loaded, for
	// cycle detection (mirrors the teacher's rdir map[string]bool).
	importing map[string]bool
	// imported caches already-loaded source-import results by path.
	imported map[string]*object.Object

	userCallHook UserCallHook
}

// Option configures a new Runtime.
type Option func(*Runtime)

// WithStrategy overrides the GC trigger strategy.
func WithStrategy(s gc.Strategy) Option {
	return func(rt *Runtime) { rt.gc = gc.New(s) }
}

// WithStdio redirects standard streams.
func WithStdio(in io.Reader, out, err io.Writer) Option {
	return func(rt *Runtime) {
		if in != nil {
			rt.Stdin = in
		}
		if out != nil {
			rt.Stdout = out
		}
		if err != nil {
			rt.Stderr = err
		}
	}
}

// New constructs a Runtime with the nine canonical builtin types
// registered and the three protected singletons created.
func New(opts ...Option) *Runtime {
	rt := &Runtime{
		names:        nameid.New(),
		gc:           gc.New(nil),
		globals:      map[nameid.ID]*object.Object{},
		typeObjects:  map[*object.Type]*object.Object{},
		literals:     map[*astshim.Token]*object.Object{},
		magicNameIDs: map[string]nameid.ID{},
		Stdout:       os.Stdout,
		Stderr:       os.Stderr,
		Stdin:        os.Stdin,
		Env:          map[string]string{},
		importing:    map[string]bool{},
		imported:     map[string]*object.Object{},
	}
	master := scope.NewMaster()
	rt.scopeStack = []*scope.Scope{master}

	for _, o := range opts {
		o(rt)
	}

	installBuiltinTypes(rt)
	rt.protectedNothing = rt.makeProtectedNothing()
	rt.protectedTrue = rt.makeProtectedBoolean(true)
	rt.protectedFalse = rt.makeProtectedBoolean(false)

	return rt
}

// Names returns this runtime's name interner.
func (rt *Runtime) Names() *nameid.Table { return rt.names }

// GC returns the garbage collector.
func (rt *Runtime) GC() *gc.GC { return rt.gc }

// Scope returns the currently active scope frame.
func (rt *Runtime) Scope() *scope.Scope { return rt.scopeStack[len(rt.scopeStack)-1] }

// MasterScope returns the top-level global frame.
func (rt *Runtime) MasterScope() *scope.Scope { return rt.scopeStack[0] }

// NewScopeFrame pushes a fresh scope frame chained to the current one.
func (rt *Runtime) NewScopeFrame(canAccessPrev bool) *scope.Scope {
	cur := rt.Scope()
	s := scope.New(cur, cur.Master(), canAccessPrev)
	rt.scopeStack = append(rt.scopeStack, s)
	return s
}

// NewFunctionCallFrame pushes a frame for a user-defined function call:
// prev is the caller frame, master is the master of the function's
// defining frame, can_access_prev starts false, is_function_call is set.
func (rt *Runtime) NewFunctionCallFrame(definingMaster *scope.Scope) *scope.Scope {
	cur := rt.Scope()
	s := scope.New(cur, definingMaster, false)
	s.SetIsFunctionCall(true)
	rt.scopeStack = append(rt.scopeStack, s)
	return s
}

// PopScopeFrame pops the topmost scope frame. Guaranteed to run on every
// exit path (including errors) by evaluator-level defer/recover.
func (rt *Runtime) PopScopeFrame() {
	if len(rt.scopeStack) <= 1 {
		return
	}
	rt.scopeStack = rt.scopeStack[:len(rt.scopeStack)-1]
}

// MagicID interns a magic method name, caching the resulting id.
func (rt *Runtime) MagicID(name string) nameid.ID {
	if id, ok := rt.magicNameIDs[name]; ok {
		return id
	}
	id := rt.names.Intern(name)
	rt.magicNameIDs[name] = id
	return id
}
