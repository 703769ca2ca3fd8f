// Package evaluator implements the tree-walking evaluator described in the
// runtime specification §4.5: it consumes astshim nodes and drives the
// Runtime's object model, scope chain, and execution-flag word. It also
// closes the Runtime<->evaluator cycle by installing itself as the
// Runtime's UserCallHook.
package evaluator

import (
	"strconv"

	"github.com/lis05/cotton/internal/astshim"
	"github.com/lis05/cotton/internal/nameid"
	"github.com/lis05/cotton/internal/object"
	"github.com/lis05/cotton/internal/rt"
)

// Evaluator walks an AST against one Runtime. One Evaluator is built per
// interpreter instance (see package cotton), mirroring the Runtime's own
// per-instance lifetime.
type Evaluator struct {
	rt *rt.Runtime

	returnValue *object.Object
}

// New builds an Evaluator bound to runtime and installs it as the
// runtime's user-call hook, so Function instances of FuncUser kind route
// back through Call.
func New(runtime *rt.Runtime) *Evaluator {
	e := &Evaluator{rt: runtime}
	runtime.SetUserCallHook(e.callUserFunction)
	return e
}

// EvalProgram evaluates a top-level sequence of statements in the
// runtime's current scope frame (the master scope at top level).
func (e *Evaluator) EvalProgram(stmts []astshim.Stmt) {
	for _, s := range stmts {
		e.EvalStmt(s)
		if e.rt.Flags() != rt.FlagNone {
			return
		}
	}
}

// EvalStmt evaluates one statement, threading control-flow flags on the
// Runtime rather than returning them (runtime specification §4.4.6).
func (e *Evaluator) EvalStmt(s astshim.Stmt) {
	switch n := s.(type) {
	case *astshim.Block:
		e.evalBlock(n)
	case *astshim.ExprStmt:
		e.EvalExpr(n.X, false)
	case *astshim.If:
		e.evalIf(n)
	case *astshim.While:
		e.evalWhile(n)
	case *astshim.For:
		e.evalFor(n)
	case *astshim.Continue:
		e.rt.SetFlags(e.rt.Flags() | rt.FlagContinue)
	case *astshim.Break:
		e.rt.SetFlags(e.rt.Flags() | rt.FlagBreak)
	case *astshim.Return:
		if n.Value != nil {
			e.returnValue = e.rt.Copy(e.EvalExpr(n.Value, true))
		} else {
			e.returnValue = e.rt.ProtectedNothing()
		}
		e.rt.SetFlags(e.rt.Flags() | rt.FlagReturn)
	default:
		e.rt.SignalError(object.ErrInternalError, "unknown statement node")
	}
}

func (e *Evaluator) evalBlock(n *astshim.Block) {
	if !n.Unscoped {
		e.rt.NewScopeFrame(true)
		defer e.rt.PopScopeFrame()
	}
	for _, s := range n.List {
		e.EvalStmt(s)
		if e.rt.Flags() != rt.FlagNone {
			return
		}
	}
}

func (e *Evaluator) evalIf(n *astshim.If) {
	cond := e.requireBoolean(e.EvalExpr(n.Cond, true))
	if cond {
		e.EvalStmt(n.Body)
		return
	}
	if n.Else != nil {
		e.EvalStmt(n.Else)
	}
}

func (e *Evaluator) evalWhile(n *astshim.While) {
	for {
		if !e.requireBoolean(e.EvalExpr(n.Cond, true)) {
			return
		}
		e.EvalStmt(n.Body)
		if e.consumeLoopFlags() {
			return
		}
		e.rt.PingGC()
	}
}

func (e *Evaluator) evalFor(n *astshim.For) {
	e.rt.NewScopeFrame(true)
	defer e.rt.PopScopeFrame()

	if n.Init != nil {
		e.EvalExpr(n.Init, false)
	}
	for {
		if n.Cond != nil && !e.requireBoolean(e.EvalExpr(n.Cond, true)) {
			return
		}
		e.EvalStmt(n.Body)
		if e.consumeLoopFlags() {
			return
		}
		if n.Step != nil {
			e.EvalExpr(n.Step, false)
		}
		e.rt.PingGC()
	}
}

// consumeLoopFlags inspects the flag word after a loop body runs: Break
// ends the loop (flag cleared, reports true); Continue is cleared and the
// loop proceeds (reports false); Return is left set so it keeps
// propagating up to the enclosing call frame (reports true).
func (e *Evaluator) consumeLoopFlags() (stop bool) {
	f := e.rt.Flags()
	if f.Has(rt.FlagReturn) {
		return true
	}
	if f.Has(rt.FlagBreak) {
		e.rt.SetFlags(f &^ rt.FlagBreak)
		return true
	}
	if f.Has(rt.FlagContinue) {
		e.rt.SetFlags(f &^ rt.FlagContinue)
		return false
	}
	return false
}

func (e *Evaluator) requireBoolean(obj *object.Object) bool {
	if obj == nil || !obj.IsInstance || obj.Instance.Kind != object.KindBoolean {
		e.rt.SignalError(object.ErrTypeMismatch, "condition must be a Boolean")
	}
	return obj.Instance.Bool
}

// EvalExpr evaluates an expression node. matters controls whether the
// result is used for its value (true) or only its side effects (false),
// per the runtime specification's call/operator protocol.
func (e *Evaluator) EvalExpr(x astshim.Expr, matters bool) *object.Object {
	switch n := x.(type) {
	case *astshim.Atom:
		return e.evalAtom(n)
	case *astshim.ParExpr:
		return e.EvalExpr(n.X, matters)
	case *astshim.Operator:
		return e.evalOperator(n, matters)
	case *astshim.FuncDef:
		return e.evalFuncDef(n)
	case *astshim.TypeDef:
		return e.evalTypeDef(n)
	default:
		e.rt.SignalError(object.ErrInternalError, "unknown expression node")
		return nil
	}
}

func (e *Evaluator) evalAtom(n *astshim.Atom) *object.Object {
	if n.Tok.Kind == astshim.TokIdentifier {
		id := e.rt.Names().Intern(n.Tok.Ident)
		obj, ok := e.rt.Scope().Get(id)
		if !ok {
			e.rt.SignalError(object.ErrNameNotFound, "undefined name: "+n.Tok.Ident)
		}
		return obj
	}

	if cached, ok := e.rt.CachedLiteral(&n.Tok); ok {
		return cached
	}
	obj := e.buildLiteral(n.Tok)
	obj.CanModify = false
	// The cache must never be handed out as a copy-elision candidate: if
	// it were, the first assignment to use this token would bind its
	// variable directly to the cached Object (no copy made), and a later
	// in-place assignment through that variable would corrupt every other
	// use of the same literal. Matches the protected Nothing/Boolean
	// singletons, which set this for the same reason.
	obj.SingleUse = false
	e.rt.SetCachedLiteral(&n.Tok, obj)
	return obj
}

func (e *Evaluator) buildLiteral(tok astshim.Token) *object.Object {
	switch tok.Kind {
	case astshim.TokNothing:
		return e.rt.ProtectedNothing()
	case astshim.TokBoolean:
		v, err := strconv.ParseBool(tok.Text)
		if err != nil {
			e.rt.SignalError(object.ErrInternalError, "malformed boolean literal: "+tok.Text)
		}
		return e.rt.ProtectedBoolean(v)
	case astshim.TokInteger:
		v, err := strconv.ParseInt(tok.Text, 0, 64)
		if err != nil {
			e.rt.SignalError(object.ErrInternalError, "malformed integer literal: "+tok.Text)
		}
		obj := e.rt.Make(e.rt.Builtin.Integer, true)
		obj.Instance.Int = v
		return obj
	case astshim.TokReal:
		v, err := strconv.ParseFloat(tok.Text, 64)
		if err != nil {
			e.rt.SignalError(object.ErrInternalError, "malformed real literal: "+tok.Text)
		}
		obj := e.rt.Make(e.rt.Builtin.Real, true)
		obj.Instance.Real = v
		return obj
	case astshim.TokCharacter:
		r := []rune(tok.Text)
		if len(r) != 1 {
			e.rt.SignalError(object.ErrInternalError, "malformed character literal: "+tok.Text)
		}
		obj := e.rt.Make(e.rt.Builtin.Character, true)
		obj.Instance.Char = r[0]
		return obj
	case astshim.TokString:
		obj := e.rt.Make(e.rt.Builtin.String, true)
		obj.Instance.Str = tok.Text
		return obj
	default:
		e.rt.SignalError(object.ErrInternalError, "unknown token literal kind")
		return nil
	}
}

// internIdent interns the bare-identifier name carried by an Atom node,
// used where a name is a syntactic label (a DOT field name, a function
// parameter) rather than a value-producing expression.
func (e *Evaluator) internIdent(x astshim.Expr) (nameid.ID, bool) {
	atom, ok := x.(*astshim.Atom)
	if !ok || atom.Tok.Kind != astshim.TokIdentifier {
		return 0, false
	}
	return e.rt.Names().Intern(atom.Tok.Ident), true
}
