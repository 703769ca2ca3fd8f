// Package stdlib registers Cotton's native global functions: object
// construction (make, copy), the reflection/introspection family
// (typeof, is, hasfield, hasmethod, istypeobj, isinsobj), the
// scope/global utilities (getglobal, setglobal, checkglobal,
// removeglobal, lockscope, unlockscope, hide), the calling-frame
// argument family (argc, argv, argg), diagnostics (error, assert, print
// family, read family), the small numeric helpers (min, max, abs), the
// module loaders (loadlibrary, sharedlibrary, load), and the OS-facing
// wrappers gated by Runtime.Unrestricted (system, exit, sleep).
// Grounded in the original implementation's builtin function table,
// reshaped into Go closures over *rt.Runtime the way the teacher's
// interpreter wires its own native builtins into a single install pass.
//
// Native functions are declared against the object.NativeFn signature
// (object.Runtime interface) for consistency with the builtin type
// kernel, but since package stdlib already depends on package rt to
// register itself, each native simply type-asserts back to *rt.Runtime
// rather than inventing narrower capability interfaces.
package stdlib

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
	"unicode"

	"github.com/lis05/cotton/internal/module"
	"github.com/lis05/cotton/internal/object"
	"github.com/lis05/cotton/internal/rt"
)

// Register installs every native function, plus the module loaders
// bound to loader, into the runtime's master scope.
func Register(runtime *rt.Runtime, loader *module.Loader) {
	in := bufio.NewReader(runtime.Stdin)

	all := natives()
	all["loadlibrary"] = nativeLoadLibrary(loader)
	all["sharedlibrary"] = nativeLoadLibrary(loader)
	all["load"] = nativeLoad(loader)
	all["read"] = nativeRead(in)
	all["readln"] = nativeReadLine(in)
	all["readraw"] = nativeReadLine(in)

	for name, fn := range all {
		obj := runtime.Make(runtime.Builtin.Function, true)
		obj.Instance.Func = &object.FuncData{Kind: object.FuncNative, Native: fn}
		obj.CanModify = false
		runtime.MasterScope().AddVariable(runtime.Names().Intern(name), obj)
	}
}

func natives() map[string]object.NativeFn {
	return map[string]object.NativeFn{
		"make":         nativeMake,
		"copy":         nativeCopy,
		"typeof":       nativeTypeof,
		"is":           nativeIs,
		"hasfield":     nativeHasField,
		"hasmethod":    nativeHasMethod,
		"istypeobj":    nativeIsTypeObj,
		"isinsobj":     nativeIsInsObj,
		"getglobal":    nativeGetGlobal,
		"setglobal":    nativeSetGlobal,
		"checkglobal":  nativeCheckGlobal,
		"removeglobal": nativeRemoveGlobal,
		"lockscope":    nativeLockScope,
		"unlockscope":  nativeUnlockScope,
		"hide":         nativeHide,
		"error":        nativeError,
		"assert":       nativeAssert,
		"print":        nativePrint,
		"println":      nativePrintln,
		"printf":       nativePrintf,
		"printraw":     nativePrint,
		"min":          nativeMin,
		"max":          nativeMax,
		"abs":          nativeAbs,
		"argc":         nativeArgc,
		"argv":         nativeArgv,
		"argg":         nativeArgg,
		"system":       nativeSystem,
		"exit":         nativeExit,
		"sleep":        nativeSleep,
		"fork": func(args []*object.Object, r object.Runtime, matters bool) *object.Object {
			r.SignalError(object.ErrUserError, "fork() is not supported: this runtime executes a single synchronous thread")
			return nil
		},
	}
}

func rtOf(r object.Runtime) *rt.Runtime { return r.(*rt.Runtime) }

func nativeMake(args []*object.Object, r object.Runtime, matters bool) *object.Object {
	if len(args) != 1 && len(args) != 2 {
		r.SignalError(object.ErrArityMismatch, "make() takes a type and an optional instance-flag")
	}
	if args[0].IsInstance {
		r.SignalError(object.ErrTypeMismatch, "make() expects a type object")
	}
	asInstance := true
	if len(args) == 2 {
		if !args[1].IsInstance || args[1].Instance.Kind != object.KindBoolean {
			r.SignalError(object.ErrTypeMismatch, "make() expects a Boolean instance-flag")
		}
		asInstance = args[1].Instance.Bool
	}
	return r.Make(args[0].Type, asInstance)
}

func nativeCopy(args []*object.Object, r object.Runtime, matters bool) *object.Object {
	requireArgc(r, args, 1)
	return rtOf(r).Copy(args[0])
}

func requireArgc(r object.Runtime, args []*object.Object, n int) {
	if len(args) != n {
		r.SignalError(object.ErrArityMismatch, fmt.Sprintf("expected %d argument(s), got %d", n, len(args)))
	}
}

func asString(obj *object.Object) (string, bool) {
	if obj.IsInstance && obj.Instance != nil && obj.Instance.Kind == object.KindString {
		return obj.Instance.Str, true
	}
	return "", false
}

func nativeTypeof(args []*object.Object, r object.Runtime, matters bool) *object.Object {
	requireArgc(r, args, 1)
	return r.TypeObject(args[0].Type)
}

func nativeIs(args []*object.Object, r object.Runtime, matters bool) *object.Object {
	requireArgc(r, args, 2)
	if args[1].IsInstance {
		r.SignalError(object.ErrTypeMismatch, "is() expects a type object as its second argument")
	}
	return rtOf(r).ProtectedBoolean(args[0].Type == args[1].Type)
}

func nativeHasField(args []*object.Object, r object.Runtime, matters bool) *object.Object {
	requireArgc(r, args, 2)
	name, ok := asString(args[1])
	if !ok {
		r.SignalError(object.ErrTypeMismatch, "hasfield() expects a String field name")
	}
	present := false
	if args[0].IsInstance && args[0].Instance.Kind == object.KindRecord {
		_, present = args[0].Instance.Fields[r.Names().Intern(name)]
	}
	return rtOf(r).ProtectedBoolean(present)
}

func nativeHasMethod(args []*object.Object, r object.Runtime, matters bool) *object.Object {
	requireArgc(r, args, 2)
	name, ok := asString(args[1])
	if !ok {
		r.SignalError(object.ErrTypeMismatch, "hasmethod() expects a String method name")
	}
	return rtOf(r).ProtectedBoolean(args[0].Type.HasMethod(r.Names().Intern(name)))
}

func nativeIsTypeObj(args []*object.Object, r object.Runtime, matters bool) *object.Object {
	requireArgc(r, args, 1)
	return rtOf(r).ProtectedBoolean(!args[0].IsInstance)
}

func nativeIsInsObj(args []*object.Object, r object.Runtime, matters bool) *object.Object {
	requireArgc(r, args, 1)
	return rtOf(r).ProtectedBoolean(args[0].IsInstance)
}

func nativeGetGlobal(args []*object.Object, r object.Runtime, matters bool) *object.Object {
	requireArgc(r, args, 1)
	name, ok := asString(args[0])
	if !ok {
		r.SignalError(object.ErrTypeMismatch, "getglobal() expects a String name")
	}
	return rtOf(r).GetGlobal(r.Names().Intern(name))
}

func nativeSetGlobal(args []*object.Object, r object.Runtime, matters bool) *object.Object {
	requireArgc(r, args, 2)
	name, ok := asString(args[0])
	if !ok {
		r.SignalError(object.ErrTypeMismatch, "setglobal() expects a String name")
	}
	rr := rtOf(r)
	rr.SetGlobal(rr.Names().Intern(name), rr.Copy(args[1]))
	return args[1]
}

func nativeCheckGlobal(args []*object.Object, r object.Runtime, matters bool) *object.Object {
	requireArgc(r, args, 1)
	name, ok := asString(args[0])
	if !ok {
		r.SignalError(object.ErrTypeMismatch, "checkglobal() expects a String name")
	}
	return rtOf(r).ProtectedBoolean(rtOf(r).CheckGlobal(r.Names().Intern(name)))
}

func nativeRemoveGlobal(args []*object.Object, r object.Runtime, matters bool) *object.Object {
	requireArgc(r, args, 1)
	name, ok := asString(args[0])
	if !ok {
		r.SignalError(object.ErrTypeMismatch, "removeglobal() expects a String name")
	}
	rtOf(r).RemoveGlobal(r.Names().Intern(name))
	return args[0]
}

func nativeLockScope(args []*object.Object, r object.Runtime, matters bool) *object.Object {
	requireArgc(r, args, 0)
	rtOf(r).Scope().SetCanAccessPrev(false)
	return rtOf(r).ProtectedNothing()
}

func nativeUnlockScope(args []*object.Object, r object.Runtime, matters bool) *object.Object {
	requireArgc(r, args, 0)
	rtOf(r).Scope().SetCanAccessPrev(true)
	return rtOf(r).ProtectedNothing()
}

// nativeHide deletes the named variable from the first frame in which
// the scope chain's lookup algorithm would find it, without cascading
// into master beyond that single frame (the resolution recorded for the
// open question in spec.md §9).
func nativeHide(args []*object.Object, r object.Runtime, matters bool) *object.Object {
	requireArgc(r, args, 1)
	name, ok := asString(args[0])
	if !ok {
		r.SignalError(object.ErrTypeMismatch, "hide() expects a String name")
	}
	found := rtOf(r).Scope().Hide(r.Names().Intern(name))
	return rtOf(r).ProtectedBoolean(found)
}

func nativeError(args []*object.Object, r object.Runtime, matters bool) *object.Object {
	requireArgc(r, args, 1)
	msg, _ := asString(args[0])
	r.SignalError(object.ErrUserError, msg)
	return nil
}

func nativeAssert(args []*object.Object, r object.Runtime, matters bool) *object.Object {
	if len(args) < 1 || len(args) > 2 {
		r.SignalError(object.ErrArityMismatch, "assert() takes a condition and an optional message")
	}
	cond := args[0]
	if !cond.IsInstance || cond.Instance.Kind != object.KindBoolean {
		r.SignalError(object.ErrTypeMismatch, "assert() condition must be a Boolean")
	}
	if !cond.Instance.Bool {
		msg := "assertion failed"
		if len(args) == 2 {
			if s, ok := asString(args[1]); ok {
				msg = s
			}
		}
		r.SignalError(object.ErrUserError, msg)
	}
	return rtOf(r).ProtectedNothing()
}

func repr(obj *object.Object, r object.Runtime) string {
	if obj.Type.UserRepr != nil {
		return obj.Type.UserRepr(obj, r)
	}
	return "<object>"
}

func nativePrint(args []*object.Object, r object.Runtime, matters bool) *object.Object {
	w := rtOf(r).Stdout
	for i, a := range args {
		if i > 0 {
			fmt.Fprint(w, " ")
		}
		fmt.Fprint(w, repr(a, r))
	}
	return rtOf(r).ProtectedNothing()
}

func nativePrintln(args []*object.Object, r object.Runtime, matters bool) *object.Object {
	nativePrint(args, r, matters)
	fmt.Fprintln(rtOf(r).Stdout)
	return rtOf(r).ProtectedNothing()
}

func numericValue(o *object.Object) (float64, bool) {
	if !o.IsInstance || o.Instance == nil {
		return 0, false
	}
	switch o.Instance.Kind {
	case object.KindInteger:
		return float64(o.Instance.Int), true
	case object.KindReal:
		return o.Instance.Real, true
	default:
		return 0, false
	}
}

func reduceNumeric(args []*object.Object, r object.Runtime, wantMax bool) *object.Object {
	if len(args) == 0 {
		r.SignalError(object.ErrArityMismatch, "expects at least one argument")
	}
	bestVal, ok := numericValue(args[0])
	if !ok {
		r.SignalError(object.ErrTypeMismatch, "expects Integer or Real arguments")
	}
	best := args[0]
	for _, a := range args[1:] {
		v, ok := numericValue(a)
		if !ok {
			r.SignalError(object.ErrTypeMismatch, "expects Integer or Real arguments")
		}
		if (wantMax && v > bestVal) || (!wantMax && v < bestVal) {
			best, bestVal = a, v
		}
	}
	return best
}

func nativeMin(args []*object.Object, r object.Runtime, matters bool) *object.Object {
	return reduceNumeric(args, r, false)
}

func nativeMax(args []*object.Object, r object.Runtime, matters bool) *object.Object {
	return reduceNumeric(args, r, true)
}

// nativeArgc and nativeArgv expose the calling function frame's full
// positional argument list, for variadic-style user functions. They
// read the current scope frame, which is the calling function's frame
// since natives don't push a scope frame of their own.
func nativeArgc(args []*object.Object, r object.Runtime, matters bool) *object.Object {
	requireArgc(r, args, 0)
	out := r.Make(rtOf(r).Builtin.Integer, true)
	out.Instance.Int = int64(len(rtOf(r).Scope().Arguments()))
	return out
}

func nativeArgv(args []*object.Object, r object.Runtime, matters bool) *object.Object {
	requireArgc(r, args, 1)
	if !args[0].IsInstance || args[0].Instance.Kind != object.KindInteger {
		r.SignalError(object.ErrTypeMismatch, "argv() expects an Integer index")
	}
	frameArgs := rtOf(r).Scope().Arguments()
	idx := args[0].Instance.Int
	if idx < 0 || idx >= int64(len(frameArgs)) {
		r.SignalError(object.ErrOutOfBounds, "argv() index out of bounds")
	}
	return frameArgs[idx]
}

// nativeArgg returns the calling frame's full positional argument list as
// an Array, for user functions that want to forward or inspect their
// variadic tail in one shot instead of indexing one at a time with argv.
func nativeArgg(args []*object.Object, r object.Runtime, matters bool) *object.Object {
	requireArgc(r, args, 0)
	rr := rtOf(r)
	out := rr.Make(rr.Builtin.Array, true)
	out.Instance.Arr = append([]*object.Object(nil), rr.Scope().Arguments()...)
	return out
}

func nativeAbs(args []*object.Object, r object.Runtime, matters bool) *object.Object {
	requireArgc(r, args, 1)
	if !args[0].IsInstance {
		r.SignalError(object.ErrTypeMismatch, "abs() expects an Integer or Real")
	}
	switch args[0].Instance.Kind {
	case object.KindInteger:
		v := args[0].Instance.Int
		if v < 0 {
			v = -v
		}
		out := r.Make(args[0].Type, true)
		out.Instance.Int = v
		return out
	case object.KindReal:
		v := args[0].Instance.Real
		if v < 0 {
			v = -v
		}
		out := r.Make(args[0].Type, true)
		out.Instance.Real = v
		return out
	default:
		r.SignalError(object.ErrTypeMismatch, "abs() expects an Integer or Real")
		return nil
	}
}

// nativePrintf formats args[1:] according to a String format template
// using fmt-style verbs (%s uses each argument's UserRepr rather than Go's
// own formatting, so records and builtins print the same way print()
// does), writing through Runtime.Stdout.
func nativePrintf(args []*object.Object, r object.Runtime, matters bool) *object.Object {
	if len(args) == 0 {
		r.SignalError(object.ErrArityMismatch, "printf() expects a format String")
	}
	format, ok := asString(args[0])
	if !ok {
		r.SignalError(object.ErrTypeMismatch, "printf() expects a format String")
	}
	rendered := make([]interface{}, len(args)-1)
	for i, a := range args[1:] {
		rendered[i] = repr(a, r)
	}
	fmt.Fprintf(rtOf(r).Stdout, format, rendered...)
	return rtOf(r).ProtectedNothing()
}

// readToken reads the next whitespace-delimited token from in, the way
// the original's read() scans stdin one token at a time rather than one
// line at a time.
func readToken(in *bufio.Reader) (string, error) {
	var b strings.Builder
	for {
		ch, _, err := in.ReadRune()
		if err != nil {
			if b.Len() > 0 {
				return b.String(), nil
			}
			return "", err
		}
		if unicode.IsSpace(ch) {
			if b.Len() > 0 {
				return b.String(), nil
			}
			continue
		}
		b.WriteRune(ch)
	}
}

func nativeRead(in *bufio.Reader) object.NativeFn {
	return func(args []*object.Object, r object.Runtime, matters bool) *object.Object {
		requireArgc(r, args, 0)
		tok, err := readToken(in)
		if err != nil {
			rtOf(r).WrapPlumbingError(object.ErrInternalError, "read()", err)
		}
		out := r.Make(rtOf(r).Builtin.String, true)
		out.Instance.Str = tok
		return out
	}
}

func nativeReadLine(in *bufio.Reader) object.NativeFn {
	return func(args []*object.Object, r object.Runtime, matters bool) *object.Object {
		requireArgc(r, args, 0)
		line, err := in.ReadString('\n')
		if err != nil && line == "" {
			rtOf(r).WrapPlumbingError(object.ErrInternalError, "readln()", err)
		}
		line = strings.TrimRight(line, "\r\n")
		out := r.Make(rtOf(r).Builtin.String, true)
		out.Instance.Str = line
		return out
	}
}

func nativeLoadLibrary(loader *module.Loader) object.NativeFn {
	return func(args []*object.Object, r object.Runtime, matters bool) *object.Object {
		requireArgc(r, args, 1)
		path, ok := asString(args[0])
		if !ok {
			r.SignalError(object.ErrTypeMismatch, "loadlibrary() expects a String path")
		}
		return loader.LoadSharedLibrary(path)
	}
}

func nativeLoad(loader *module.Loader) object.NativeFn {
	return func(args []*object.Object, r object.Runtime, matters bool) *object.Object {
		requireArgc(r, args, 1)
		path, ok := asString(args[0])
		if !ok {
			r.SignalError(object.ErrTypeMismatch, "load() expects a String path")
		}
		return loader.LoadSource(path)
	}
}

// nativeSystem runs cmd through the host shell, gated by Unrestricted
// exactly as the teacher gates its own os/exec-shaped symbols, returning
// the child process's exit code as an Integer.
func nativeSystem(args []*object.Object, r object.Runtime, matters bool) *object.Object {
	requireArgc(r, args, 1)
	rr := rtOf(r)
	if !rr.Unrestricted {
		r.SignalError(object.ErrUserError, "system() requires unrestricted mode")
	}
	cmdline, ok := asString(args[0])
	if !ok {
		r.SignalError(object.ErrTypeMismatch, "system() expects a String command")
	}
	cmd := exec.Command("/bin/sh", "-c", cmdline)
	cmd.Stdout = rr.Stdout
	cmd.Stderr = rr.Stderr
	cmd.Stdin = rr.Stdin

	var exitErr *exec.ExitError
	if err := cmd.Run(); err != nil && !errors.As(err, &exitErr) {
		rr.WrapPlumbingError(object.ErrInternalError, "system(): "+cmdline, err)
	}

	out := r.Make(rr.Builtin.Integer, true)
	out.Instance.Int = int64(cmd.ProcessState.ExitCode())
	return out
}

// nativeExit terminates the host process immediately, gated by
// Unrestricted since it bypasses any cleanup a library embedder relies
// on.
func nativeExit(args []*object.Object, r object.Runtime, matters bool) *object.Object {
	requireArgc(r, args, 1)
	rr := rtOf(r)
	if !rr.Unrestricted {
		r.SignalError(object.ErrUserError, "exit() requires unrestricted mode")
	}
	if !args[0].IsInstance || args[0].Instance.Kind != object.KindInteger {
		r.SignalError(object.ErrTypeMismatch, "exit() expects an Integer status code")
	}
	os.Exit(int(args[0].Instance.Int))
	return nil
}

// nativeSleep blocks the calling goroutine for ms milliseconds, gated by
// Unrestricted like system and exit.
func nativeSleep(args []*object.Object, r object.Runtime, matters bool) *object.Object {
	requireArgc(r, args, 1)
	if !rtOf(r).Unrestricted {
		r.SignalError(object.ErrUserError, "sleep() requires unrestricted mode")
	}
	ms, ok := numericValue(args[0])
	if !ok {
		r.SignalError(object.ErrTypeMismatch, "sleep() expects an Integer or Real number of milliseconds")
	}
	time.Sleep(time.Duration(ms * float64(time.Millisecond)))
	return rtOf(r).ProtectedNothing()
}
