package builtins

// InstallAll constructs the nine canonical types in dependency order
// (Boolean before anything that returns one, Integer/Character before
// String's indexing, and so on) and returns the populated Deps.
func InstallAll() *Deps {
	d := &Deps{}
	d.Nothing = NewNothingType(d)
	d.Boolean = NewBooleanType(d)
	d.Integer = NewIntegerType(d)
	d.Real = NewRealType(d)
	d.Character = NewCharacterType(d)
	d.String = NewStringType(d)
	d.Array = NewArrayType(d)
	d.Function = NewFunctionType(d)
	return d
}
