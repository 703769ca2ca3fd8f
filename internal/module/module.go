// Package module implements Cotton's two load kinds, mirrored from the
// original implementation's shared-library and source-import entry
// points: loading a compiled Go plugin that registers native functions,
// and importing another Cotton source file as a namespace of its
// top-level bindings. Both resolve against Runtime.ModulePath and are
// reachable only through the internal/stdlib loadlibrary/sharedlibrary/
// load natives.
package module

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"plugin"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/mod/semver"
	"golang.org/x/sync/singleflight"

	"github.com/lis05/cotton/internal/astshim"
	"github.com/lis05/cotton/internal/builtins"
	"github.com/lis05/cotton/internal/nameid"
	"github.com/lis05/cotton/internal/object"
	"github.com/lis05/cotton/internal/rt"
)

// CurrentABI is the shared-library ABI version this build of the
// runtime implements. A plugin whose CottonModuleABI symbol reports a
// different major version is refused.
const CurrentABI = "v1.0.0"

// Parser turns source text into a statement list, supplied by the
// embedder (see cotton.Options.Parser). Declared as a type alias so
// cotton.Parser values, which have the identical underlying function
// type, are assignable here without a conversion.
type Parser = func(src, filename string) ([]astshim.Stmt, error)

// EvalProgramFunc runs a parsed statement list against the Runtime's
// current scope frame. Supplied by package evaluator at wiring time
// (see cotton.New), since walking statements is the evaluator's job.
type EvalProgramFunc = func(stmts []astshim.Stmt)

// RegisterFunc is the symbol a shared-library plugin exports under the
// name "CottonRegister": given the loading Runtime, it returns the
// native functions the library contributes, keyed by the name they are
// bound under in the returned namespace.
type RegisterFunc = func(*rt.Runtime) map[string]object.NativeFn

// Loader resolves and loads both module kinds against one Runtime. One
// Loader is constructed per interpreter instance (see package cotton),
// matching the Runtime's own per-instance lifetime.
type Loader struct {
	rt     *rt.Runtime
	parser Parser
	eval   EvalProgramFunc

	sharedFlight singleflight.Group
	mu           sync.Mutex
	sharedCache  map[string]*object.Object
}

// NewLoader constructs a Loader. parser may be nil if the embedder
// never intends to use load(); LoadSource then reports a configuration
// error instead of panicking on a nil dereference.
func NewLoader(runtime *rt.Runtime, parser Parser) *Loader {
	return &Loader{
		rt:          runtime,
		parser:      parser,
		sharedCache: map[string]*object.Object{},
	}
}

// SetEvalProgram wires the evaluator's statement-list runner in, closing
// the rt/evaluator/module three-way wiring the same way
// Runtime.SetUserCallHook closes the rt/evaluator cycle.
func (l *Loader) SetEvalProgram(eval EvalProgramFunc) { l.eval = eval }

func moduleName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// searchPaths enumerates candidate files for name: as given, and with
// ext appended if name carries no extension of its own, across every
// directory in Runtime.ModulePath (os.PathListSeparator-joined, mirroring
// COTTON_CTN_MODULES_PATH/COTTON_SHARED_LIBRARIES_PATH) plus the current
// directory as a final fallback.
func (l *Loader) searchPaths(name, ext string) []string {
	add := func(out []string, p string) []string {
		out = append(out, p)
		if filepath.Ext(p) == "" {
			out = append(out, p+ext)
		}
		return out
	}

	if filepath.IsAbs(name) {
		return add(nil, name)
	}

	var out []string
	for _, dir := range filepath.SplitList(l.rt.ModulePath) {
		if dir == "" {
			continue
		}
		out = add(out, filepath.Join(dir, name))
	}
	out = add(out, name)
	return out
}

func firstExisting(paths []string) (string, error) {
	for _, p := range paths {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, nil
		}
	}
	return "", fmt.Errorf("not found (searched %s)", strings.Join(paths, ", "))
}

// LoadSource imports path as a Cotton source file and returns a record
// instance whose fields are the file's top-level bindings, the way the
// original implementation's loader turns an imported file into a usable
// namespace value. Repeated imports of the same resolved path are
// cached; an import currently in progress for the same path signals
// ImportError (cycle detection), mirroring the teacher's own rdir
// map[string]bool guard against recursive parses.
func (l *Loader) LoadSource(path string) *object.Object {
	full, err := firstExisting(l.searchPaths(path, ".ctn"))
	if err != nil {
		l.rt.WrapPlumbingError(object.ErrImportError, "resolving import "+path, err)
	}

	if cached, ok := l.rt.CachedImport(full); ok {
		return cached
	}
	if !l.rt.BeginImport(full) {
		l.rt.SignalError(object.ErrImportError, "import cycle detected: "+full)
	}
	defer l.rt.EndImport(full)

	data, err := os.ReadFile(full)
	if err != nil {
		l.rt.WrapPlumbingError(object.ErrImportError, "reading module "+full, err)
	}
	if l.parser == nil {
		l.rt.SignalError(object.ErrInternalError, "no Parser configured for source imports")
	}
	stmts, perr := l.parser(string(data), full)
	if perr != nil {
		l.rt.SignalError(object.ErrImportError, "parsing "+full+": "+perr.Error())
	}
	if l.eval == nil {
		l.rt.SignalError(object.ErrInternalError, "no evaluator installed for source imports")
	}

	// A fresh function-call-shaped frame gives the imported file its own
	// top-level namespace: it cannot see the importer's locals
	// (can_access_prev starts false), and its own master is the global
	// frame, so declarations inside it behave like ordinary top-level
	// Cotton code.
	frame := l.rt.NewFunctionCallFrame(l.rt.MasterScope())
	l.eval(stmts)
	bindings := frame.Bindings()
	l.rt.PopScopeFrame()

	ns := l.namespace(moduleName(full), bindings)
	l.rt.CacheImport(full, ns)
	return ns
}

// LoadSharedLibrary loads a compiled Go plugin and returns a record
// instance namespacing the native functions it registers. Gated by
// Runtime.Unrestricted: a shared library runs arbitrary Go code in the
// host process, the same trust boundary the teacher gates os/exec-shaped
// symbols behind. Concurrent or repeated loads of the same resolved path
// are deduplicated via singleflight, since loadlibrary/sharedlibrary may
// be invoked from multiple EvalPath calls running concurrently in a host
// embedding several interpreters (not from Cotton-level concurrency,
// which does not exist per the runtime's single-threaded execution
// model).
func (l *Loader) LoadSharedLibrary(path string) *object.Object {
	if !l.rt.Unrestricted {
		l.rt.SignalError(object.ErrUserError, "loadlibrary() requires unrestricted mode")
	}
	full, err := firstExisting(l.searchPaths(path, ".so"))
	if err != nil {
		l.rt.WrapPlumbingError(object.ErrImportError, "resolving shared library "+path, err)
	}

	l.mu.Lock()
	if cached, ok := l.sharedCache[full]; ok {
		l.mu.Unlock()
		return cached
	}
	l.mu.Unlock()

	v, err, _ := l.sharedFlight.Do(full, func() (interface{}, error) {
		return l.openSharedLibrary(full)
	})
	if err != nil {
		l.rt.WrapPlumbingError(object.ErrImportError, "loading shared library "+full, err)
	}
	ns := v.(*object.Object)

	l.mu.Lock()
	l.sharedCache[full] = ns
	l.mu.Unlock()
	return ns
}

func (l *Loader) openSharedLibrary(path string) (*object.Object, error) {
	p, err := plugin.Open(path)
	if err != nil {
		return nil, err
	}

	abiSym, err := p.Lookup("CottonModuleABI")
	if err != nil {
		return nil, fmt.Errorf("missing CottonModuleABI symbol: %w", err)
	}
	abi, ok := abiSym.(*string)
	if !ok {
		return nil, errors.New("CottonModuleABI has an unexpected type, want *string")
	}
	if !semver.IsValid(*abi) || semver.Major(*abi) != semver.Major(CurrentABI) {
		return nil, fmt.Errorf("incompatible module ABI %s (runtime is %s)", *abi, CurrentABI)
	}

	regSym, err := p.Lookup("CottonRegister")
	if err != nil {
		return nil, fmt.Errorf("missing CottonRegister symbol: %w", err)
	}
	register, ok := regSym.(RegisterFunc)
	if !ok {
		return nil, errors.New("CottonRegister has an unexpected signature")
	}

	natives := register(l.rt)
	bindings := make(map[nameid.ID]*object.Object, len(natives)+1)
	for name, fn := range natives {
		obj := l.rt.Make(l.rt.Builtin.Function, true)
		obj.Instance.Func = &object.FuncData{Kind: object.FuncNative, Native: fn}
		obj.CanModify = false
		bindings[l.rt.Names().Intern(name)] = obj
	}
	// Each load gets its own diagnostic id, distinguishing loadlibrary
	// calls against the same path at different times without reusing the
	// monotonic Object/Instance/Type id counters.
	bindings[l.rt.Names().Intern("__instance_id__")] = l.stringField(uuid.New().String())

	return l.namespace(moduleName(path), bindings), nil
}

// namespace builds a one-off record instance whose fields are bindings,
// reusing the record-type machinery that backs user `type` definitions
// rather than inventing a separate value shape for loaded modules.
func (l *Loader) namespace(name string, bindings map[nameid.ID]*object.Object) *object.Object {
	fields := make([]nameid.ID, 0, len(bindings))
	for id := range bindings {
		fields = append(fields, id)
	}
	t := builtins.NewRecordType(l.rt.Names().Intern(name), fields, l.rt.Builtin.Nothing)
	obj := l.rt.Make(t, true)
	for id, v := range bindings {
		obj.Instance.Fields[id] = v
	}
	obj.CanModify = false
	return obj
}

func (l *Loader) stringField(s string) *object.Object {
	obj := l.rt.Make(l.rt.Builtin.String, true)
	obj.Instance.Str = s
	obj.CanModify = false
	return obj
}
