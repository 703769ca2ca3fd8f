package evaluator

import (
	"github.com/lis05/cotton/internal/astshim"
	"github.com/lis05/cotton/internal/builtins"
	"github.com/lis05/cotton/internal/nameid"
	"github.com/lis05/cotton/internal/object"
	"github.com/lis05/cotton/internal/rt"
	"github.com/lis05/cotton/internal/scope"
)

// evalFuncDef builds a Function instance object of FuncUser kind,
// capturing the current scope frame as its defining environment (the
// lexical closure), and binds it into the current frame if named.
func (e *Evaluator) evalFuncDef(n *astshim.FuncDef) *object.Object {
	fn := e.buildFunction(n, e.rt.Scope())
	if n.Name != "" {
		id := e.rt.Names().Intern(n.Name)
		fn.CanModify = false
		e.rt.Scope().AddVariable(id, fn)
	}
	return fn
}

func (e *Evaluator) buildFunction(n *astshim.FuncDef, definingEnv *scope.Scope) *object.Object {
	params := make([]nameid.ID, len(n.Params))
	for i, p := range n.Params {
		params[i] = e.rt.Names().Intern(p)
	}
	fn := e.rt.Make(e.rt.Builtin.Function, true)
	data := &object.FuncData{
		Kind:        object.FuncUser,
		Params:      params,
		Body:        n.Body,
		DefiningEnv: definingEnv,
	}
	if n.Name != "" {
		data.Name = e.rt.Names().Intern(n.Name)
		data.HasName = true
	}
	fn.Instance.Func = data
	return fn
}

// evalTypeDef builds a record Type from a `type` definition: one
// *object.Type with a method table populated from the definition's
// method bodies and a declaration-ordered field list used to
// pre-populate new instances with Nothing. The type object is bound
// into the current frame under its name.
func (e *Evaluator) evalTypeDef(n *astshim.TypeDef) *object.Object {
	nameID := e.rt.Names().Intern(n.Name)
	fieldIDs := make([]nameid.ID, len(n.Fields))
	for i, f := range n.Fields {
		fieldIDs[i] = e.rt.Names().Intern(f)
	}

	t := builtins.NewRecordType(nameID, fieldIDs, e.rt.Builtin.Nothing)
	typeObj := e.rt.Make(t, false)
	e.rt.RegisterTypeObject(t, typeObj)

	for _, m := range n.Methods {
		methodID := e.rt.Names().Intern(m.Name)
		fn := e.buildFunction(m, e.rt.Scope())
		t.AddMethod(methodID, fn)
	}

	typeObj.CanModify = false
	e.rt.Scope().AddVariable(nameID, typeObj)
	return typeObj
}

// callUserFunction is installed on the Runtime as the UserCallHook: it
// pushes a function-call frame chained to the function's defining
// environment (not the caller's frame, per the lexical-scoping rule in
// the runtime specification §4.3), binds parameters positionally, stores
// the full argument list for argc/argv/argg, runs the body, and
// extracts the Return flag's value.
func (e *Evaluator) callUserFunction(fn *object.Object, args []*object.Object, matters bool) *object.Object {
	data := fn.Instance.Func
	master, _ := data.DefiningEnv.(*scope.Scope)
	frame := e.rt.NewFunctionCallFrame(master)
	defer e.rt.PopScopeFrame()

	frame.SetArguments(args)
	for i, p := range data.Params {
		if i < len(args) {
			frame.AddVariable(p, args[i])
		} else {
			frame.AddVariable(p, e.rt.ProtectedNothing())
		}
	}

	body, ok := data.Body.(astshim.Stmt)
	if !ok {
		e.rt.SignalError(object.ErrInternalError, "function body is not a statement")
	}

	savedReturn := e.returnValue
	e.returnValue = nil
	e.EvalStmt(body)
	result := e.returnValue
	e.returnValue = savedReturn

	if e.rt.Flags().Has(rt.FlagReturn) {
		e.rt.SetFlags(e.rt.Flags() &^ rt.FlagReturn)
	}
	if result == nil {
		result = e.rt.ProtectedNothing()
	}
	return result
}
