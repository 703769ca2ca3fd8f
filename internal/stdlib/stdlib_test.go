package stdlib_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lis05/cotton/internal/astshim"
	"github.com/lis05/cotton/internal/evaluator"
	"github.com/lis05/cotton/internal/module"
	"github.com/lis05/cotton/internal/object"
	"github.com/lis05/cotton/internal/rt"
	"github.com/lis05/cotton/internal/stdlib"
)

func newRuntime(stdout *bytes.Buffer) *rt.Runtime {
	r, _ := newRuntimeWithEvaluator(stdout)
	return r
}

func newRuntimeWithEvaluator(stdout *bytes.Buffer) (*rt.Runtime, *evaluator.Evaluator) {
	var opts []rt.Option
	if stdout != nil {
		opts = append(opts, rt.WithStdio(strings.NewReader(""), stdout, stdout))
	}
	r := rt.New(opts...)
	ev := evaluator.New(r)
	loader := module.NewLoader(r, nil)
	loader.SetEvalProgram(ev.EvalProgram)
	stdlib.Register(r, loader)
	return r, ev
}

func callNative(t *testing.T, r *rt.Runtime, name string, args ...*object.Object) *object.Object {
	t.Helper()
	fn, ok := r.MasterScope().Get(r.Names().Intern(name))
	require.True(t, ok, "native %q must be registered", name)
	return r.CallFunction(fn, args, true)
}

func mustCallNative(t *testing.T, r *rt.Runtime, name string, args ...*object.Object) (result *object.Object, rerr *rt.Error) {
	t.Helper()
	func() {
		defer rt.Recover(&rerr)
		result = callNative(t, r, name, args...)
	}()
	return
}

func strObj(r *rt.Runtime, s string) *object.Object {
	o := r.Make(r.Builtin.String, true)
	o.Instance.Str = s
	return o
}

func intObj(r *rt.Runtime, v int64) *object.Object {
	o := r.Make(r.Builtin.Integer, true)
	o.Instance.Int = v
	return o
}

func TestNativeTypeofAndIs(t *testing.T) {
	r := newRuntime(nil)

	typeObj := callNative(t, r, "typeof", intObj(r, 1))
	assert.False(t, typeObj.IsInstance)

	result := callNative(t, r, "is", intObj(r, 1), typeObj)
	assert.True(t, result.Instance.Bool)
}

func TestNativeMakeAndCopy(t *testing.T) {
	r := newRuntime(nil)

	typeObj := r.TypeObject(r.Builtin.Integer)
	made := callNative(t, r, "make", typeObj)
	assert.True(t, made.IsInstance)
	assert.Equal(t, int64(0), made.Instance.Int)

	made.Instance.Int = 9
	made.SingleUse = false
	copied := callNative(t, r, "copy", made)
	assert.NotSame(t, made, copied)
	assert.Equal(t, int64(9), copied.Instance.Int)
}

func TestNativeGlobalsRoundTrip(t *testing.T) {
	r := newRuntime(nil)

	name := strObj(r, "counter")
	callNative(t, r, "setglobal", name, intObj(r, 41))

	present := callNative(t, r, "checkglobal", name)
	assert.True(t, present.Instance.Bool)

	got := callNative(t, r, "getglobal", name)
	assert.Equal(t, int64(41), got.Instance.Int)

	callNative(t, r, "removeglobal", name)
	present = callNative(t, r, "checkglobal", name)
	assert.False(t, present.Instance.Bool)
}

func TestNativeHideDeletesFirstMatchOnly(t *testing.T) {
	r := newRuntime(nil)

	x := r.Names().Intern("x")
	r.MasterScope().AddVariable(x, intObj(r, 1))
	inner := r.NewScopeFrame(true)
	inner.AddVariable(x, intObj(r, 2))
	defer r.PopScopeFrame()

	result := callNative(t, r, "hide", strObj(r, "x"))
	assert.True(t, result.Instance.Bool)

	_, innerOk := inner.Local(x)
	assert.False(t, innerOk)
	_, masterOk := r.MasterScope().Local(x)
	assert.True(t, masterOk)
}

func TestNativeAssertFailureSignalsUserError(t *testing.T) {
	r := newRuntime(nil)

	_, rerr := mustCallNative(t, r, "assert", r.ProtectedBoolean(false), strObj(r, "boom"))
	require.NotNil(t, rerr)
	assert.Equal(t, object.ErrUserError, rerr.Kind)
	assert.Contains(t, rerr.Message, "boom")
}

func TestNativeMinMaxAbs(t *testing.T) {
	r := newRuntime(nil)

	min := callNative(t, r, "min", intObj(r, 5), intObj(r, -2), intObj(r, 9))
	assert.Equal(t, int64(-2), min.Instance.Int)

	max := callNative(t, r, "max", intObj(r, 5), intObj(r, -2), intObj(r, 9))
	assert.Equal(t, int64(9), max.Instance.Int)

	abs := callNative(t, r, "abs", intObj(r, -7))
	assert.Equal(t, int64(7), abs.Instance.Int)
}

func TestNativePrintWritesReprToStdout(t *testing.T) {
	var out bytes.Buffer
	r := newRuntime(&out)

	callNative(t, r, "println", strObj(r, "hi"), intObj(r, 3))
	assert.Equal(t, "hi 3\n", out.String())
}

func TestNativePrintfUsesUserRepr(t *testing.T) {
	var out bytes.Buffer
	r := newRuntime(&out)

	callNative(t, r, "printf", strObj(r, "%s=%s\n"), strObj(r, "x"), intObj(r, 3))
	assert.Equal(t, "x=3\n", out.String())
}

func TestNativeArgcArgvArgg(t *testing.T) {
	r, ev := newRuntimeWithEvaluator(nil)

	fnBody := astshim.NewBlock(astshim.Span{}, true, []astshim.Stmt{
		astshim.NewExprStmt(astshim.Span{}, astshim.NewOperator(astshim.Span{}, astshim.OpAssign,
			astshim.NewAtom(astshim.Span{}, astshim.Token{Kind: astshim.TokIdentifier, Ident: "n"}),
			astshim.NewOperator(astshim.Span{}, astshim.OpCall,
				astshim.NewAtom(astshim.Span{}, astshim.Token{Kind: astshim.TokIdentifier, Ident: "argc"}), nil, astshim.Token{}))),
		astshim.NewReturn(astshim.Span{}, astshim.NewOperator(astshim.Span{}, astshim.OpCall,
			astshim.NewAtom(astshim.Span{}, astshim.Token{Kind: astshim.TokIdentifier, Ident: "argg"}), nil, astshim.Token{})),
	})
	fnDef := astshim.NewFuncDef(astshim.Span{}, "variadic", nil, fnBody)
	ev.EvalStmt(astshim.NewExprStmt(astshim.Span{}, fnDef))

	fn, ok := r.Scope().Get(r.Names().Intern("variadic"))
	require.True(t, ok)

	result := r.CallFunction(fn, []*object.Object{intObj(r, 1), intObj(r, 2), intObj(r, 3)}, true)
	assert.Equal(t, object.KindArray, result.Instance.Kind)
	assert.Len(t, result.Instance.Arr, 3)
	assert.Equal(t, int64(2), result.Instance.Arr[1].Instance.Int)
}
