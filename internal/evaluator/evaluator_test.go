package evaluator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lis05/cotton/internal/astshim"
	"github.com/lis05/cotton/internal/evaluator"
	"github.com/lis05/cotton/internal/object"
	"github.com/lis05/cotton/internal/rt"
)

// Hand-built AST nodes stand in for the lexer/parser the runtime does not
// implement; see astshim's package doc.

func ident(name string) *astshim.Atom {
	return astshim.NewAtom(astshim.Span{}, astshim.Token{Kind: astshim.TokIdentifier, Ident: name})
}

func intLit(v string) *astshim.Atom {
	return astshim.NewAtom(astshim.Span{}, astshim.Token{Kind: astshim.TokInteger, Text: v})
}

func boolLit(v string) *astshim.Atom {
	return astshim.NewAtom(astshim.Span{}, astshim.Token{Kind: astshim.TokBoolean, Text: v})
}

func op(id astshim.OpId, first, second astshim.Expr) *astshim.Operator {
	return astshim.NewOperator(astshim.Span{}, id, first, second, astshim.Token{})
}

func assign(target, value astshim.Expr) *astshim.Operator {
	return op(astshim.OpAssign, target, value)
}

func setup() (*rt.Runtime, *evaluator.Evaluator) {
	r := rt.New()
	ev := evaluator.New(r)
	return r, ev
}

func TestEvalAssignAndArithmetic(t *testing.T) {
	r, ev := setup()

	// x = 1 + 2
	ev.EvalStmt(astshim.NewExprStmt(astshim.Span{}, assign(ident("x"), op(astshim.OpAdd, intLit("1"), intLit("2")))))

	x, ok := r.Scope().Get(r.Names().Intern("x"))
	assert.True(t, ok)
	assert.Equal(t, int64(3), x.Instance.Int)
}

func TestEvalWhileLoop(t *testing.T) {
	r, ev := setup()

	// i = 0; while (i < 5) { i = i + 1 }
	ev.EvalStmt(astshim.NewExprStmt(astshim.Span{}, assign(ident("i"), intLit("0"))))
	body := astshim.NewBlock(astshim.Span{}, false, []astshim.Stmt{
		astshim.NewExprStmt(astshim.Span{}, assign(ident("i"), op(astshim.OpAdd, ident("i"), intLit("1")))),
	})
	cond := op(astshim.OpLess, ident("i"), intLit("5"))
	ev.EvalStmt(astshim.NewWhile(astshim.Span{}, cond, body))

	i, ok := r.Scope().Get(r.Names().Intern("i"))
	assert.True(t, ok)
	assert.Equal(t, int64(5), i.Instance.Int)
}

func TestEvalWhileBreak(t *testing.T) {
	r, ev := setup()

	ev.EvalStmt(astshim.NewExprStmt(astshim.Span{}, assign(ident("i"), intLit("0"))))
	body := astshim.NewBlock(astshim.Span{}, false, []astshim.Stmt{
		astshim.NewExprStmt(astshim.Span{}, assign(ident("i"), op(astshim.OpAdd, ident("i"), intLit("1")))),
		astshim.NewIf(astshim.Span{}, op(astshim.OpEqual, ident("i"), intLit("3")), astshim.NewBreak(astshim.Span{}), nil),
	})
	cond := boolLit("true")
	ev.EvalStmt(astshim.NewWhile(astshim.Span{}, cond, body))

	i, _ := r.Scope().Get(r.Names().Intern("i"))
	assert.Equal(t, int64(3), i.Instance.Int)
}

func TestEvalIfElse(t *testing.T) {
	r, ev := setup()

	thenBranch := astshim.NewExprStmt(astshim.Span{}, assign(ident("x"), intLit("1")))
	elseBranch := astshim.NewExprStmt(astshim.Span{}, assign(ident("x"), intLit("2")))
	ev.EvalStmt(astshim.NewIf(astshim.Span{}, boolLit("false"), thenBranch, elseBranch))

	x, _ := r.Scope().Get(r.Names().Intern("x"))
	assert.Equal(t, int64(2), x.Instance.Int)
}

func TestEvalFunctionCallWithClosure(t *testing.T) {
	r, ev := setup()

	// n = 10
	// func addN(x) { return x + n }
	// result = addN(5)
	ev.EvalStmt(astshim.NewExprStmt(astshim.Span{}, assign(ident("n"), intLit("10"))))

	fnDef := astshim.NewFuncDef(astshim.Span{}, "addN", []string{"x"},
		astshim.NewBlock(astshim.Span{}, true, []astshim.Stmt{
			astshim.NewReturn(astshim.Span{}, op(astshim.OpAdd, ident("x"), ident("n"))),
		}))
	ev.EvalStmt(astshim.NewExprStmt(astshim.Span{}, fnDef))

	call := op(astshim.OpCall, ident("addN"), intLit("5"))
	ev.EvalStmt(astshim.NewExprStmt(astshim.Span{}, assign(ident("result"), call)))

	result, ok := r.Scope().Get(r.Names().Intern("result"))
	assert.True(t, ok)
	assert.Equal(t, int64(15), result.Instance.Int)
}

func TestEvalFunctionCallDoesNotSeeCallersLocals(t *testing.T) {
	r, ev := setup()

	fnDef := astshim.NewFuncDef(astshim.Span{}, "readSecret", nil,
		astshim.NewBlock(astshim.Span{}, true, []astshim.Stmt{
			astshim.NewReturn(astshim.Span{}, ident("secret")),
		}))
	ev.EvalStmt(astshim.NewExprStmt(astshim.Span{}, fnDef))

	// "secret" only exists as a local in this block, never in master scope,
	// so the call must fail to resolve it (lexical, not dynamic, scoping).
	block := astshim.NewBlock(astshim.Span{}, false, []astshim.Stmt{
		astshim.NewExprStmt(astshim.Span{}, assign(ident("secret"), intLit("1"))),
		astshim.NewExprStmt(astshim.Span{}, op(astshim.OpCall, ident("readSecret"), nil)),
	})

	var rerr *rt.Error
	func() {
		defer rt.Recover(&rerr)
		ev.EvalStmt(block)
	}()
	assert.NotNil(t, rerr)
	assert.Equal(t, object.ErrNameNotFound, rerr.Kind)
}

func TestEvalRecordFieldAssignAndDot(t *testing.T) {
	r, ev := setup()

	typeDef := astshim.NewTypeDef(astshim.Span{}, "Point", []string{"x", "y"}, nil)
	ev.EvalStmt(astshim.NewExprStmt(astshim.Span{}, typeDef))

	// Construction goes through make(), exactly as Cotton source code
	// would call it; there is no special call-a-type-object syntax.
	pointType, ok := r.Scope().Get(r.Names().Intern("Point"))
	require.True(t, ok)
	instance := r.Make(pointType.Type, true)
	r.Scope().AddVariable(r.Names().Intern("p"), instance)

	setX := astshim.NewExprStmt(astshim.Span{}, assign(op(astshim.OpDot, ident("p"), ident("x")), intLit("7")))
	ev.EvalStmt(setX)

	p, ok := r.Scope().Get(r.Names().Intern("p"))
	assert.True(t, ok)
	xField := p.Instance.Fields[r.Names().Intern("x")]
	assert.Equal(t, int64(7), xField.Instance.Int)
}

func TestEvalCompoundAssign(t *testing.T) {
	r, ev := setup()

	ev.EvalStmt(astshim.NewExprStmt(astshim.Span{}, assign(ident("x"), intLit("10"))))
	ev.EvalStmt(astshim.NewExprStmt(astshim.Span{}, op(astshim.OpAddAssign, ident("x"), intLit("5"))))

	x, _ := r.Scope().Get(r.Names().Intern("x"))
	assert.Equal(t, int64(15), x.Instance.Int)
}

func TestEvalDirectPassAliasObservesLaterAssignment(t *testing.T) {
	r, ev := setup()

	// a = 1; b = @a; b = 42; a must now read 42.
	ev.EvalStmt(astshim.NewExprStmt(astshim.Span{}, assign(ident("a"), intLit("1"))))
	directA := op(astshim.OpAt, ident("a"), nil)
	ev.EvalStmt(astshim.NewExprStmt(astshim.Span{}, assign(ident("b"), directA)))
	ev.EvalStmt(astshim.NewExprStmt(astshim.Span{}, assign(ident("b"), intLit("42"))))

	a, ok := r.Scope().Get(r.Names().Intern("a"))
	assert.True(t, ok)
	assert.Equal(t, int64(42), a.Instance.Int, "assigning through an @-aliased name must mutate the shared object")
}

func TestEvalArrayElementAssignIsVisibleThroughOtherCopies(t *testing.T) {
	r, ev := setup()

	// Array literals are out of scope for the evaluator (see astshim's
	// package doc); build the array at the Go level, as make() would.
	arr := r.Make(r.Builtin.Array, true)
	arr.Instance.Arr = []*object.Object{r.Make(r.Builtin.Integer, true), r.Make(r.Builtin.Integer, true), r.Make(r.Builtin.Integer, true)}
	arr.Instance.Arr[0].Instance.Int = 1
	arr.Instance.Arr[1].Instance.Int = 2
	arr.Instance.Arr[2].Instance.Int = 3
	r.Scope().AddVariable(r.Names().Intern("a"), arr)

	ev.EvalStmt(astshim.NewExprStmt(astshim.Span{}, assign(ident("b"), ident("a"))))

	index0 := op(astshim.OpIndex, ident("b"), intLit("0"))
	ev.EvalStmt(astshim.NewExprStmt(astshim.Span{}, assign(index0, intLit("99"))))

	a, ok := r.Scope().Get(r.Names().Intern("a"))
	assert.True(t, ok)
	assert.Equal(t, int64(99), a.Instance.Arr[0].Instance.Int, "b[0] = 99 must mutate the array element a shares with b")
}
