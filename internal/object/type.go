package object

import "github.com/lis05/cotton/internal/nameid"

// UnaryOp is a unary operator slot: postfix ++/--, prefix ++/--/+/-/!/~.
type UnaryOp func(self *Object, rt Runtime, matters bool) *Object

// BinaryOp is a binary operator slot.
type BinaryOp func(self, arg *Object, rt Runtime, matters bool) *Object

// NaryOp is a variadic operator slot: call and index.
type NaryOp func(self *Object, args []*Object, rt Runtime, matters bool) *Object

// UnarySlot names the eight unary operator vtable slots.
type UnarySlot int

const (
	OpPostInc UnarySlot = iota
	OpPostDec
	OpPreInc
	OpPreDec
	OpPositive
	OpNegative
	OpNot
	OpInverse
	numUnarySlots
)

// BinarySlot names the eighteen binary operator vtable slots.
type BinarySlot int

const (
	OpMult BinarySlot = iota
	OpDiv
	OpRem
	OpRShift
	OpLShift
	OpAdd
	OpSub
	OpLess
	OpLessEq
	OpGreater
	OpGreaterEq
	OpEqual
	OpNotEqual
	OpBitAnd
	OpBitXor
	OpBitOr
	OpAnd
	OpOr
	numBinarySlots
)

// Type is the vtable for a Cotton type: the nine canonical builtins plus
// any number of user-defined record types.
type Type struct {
	ID     int64
	GCMark bool

	// NameID is set for record types (the identifier the type was
	// declared under); builtins leave it unset (IsBuiltin is used
	// instead to identify them).
	NameID    nameid.ID
	IsBuiltin bool
	Kind      Kind // which canonical instance kind this type creates

	unary  [numUnarySlots]UnaryOp
	binary [numBinarySlots]BinaryOp
	Call   NaryOp
	Index  NaryOp

	Methods map[nameid.ID]*Object

	// Fields lists, in declaration order, the instance-field NameIds used
	// to pre-populate new record instances with Nothing. Builtins leave
	// this nil.
	Fields []nameid.ID

	// Create constructs a fresh Instance for this type.
	Create func(rt Runtime) *Instance

	// Copy deep/shallow-copies obj's instance per this type's semantics.
	Copy func(obj *Object, rt Runtime) *Object

	// UserRepr renders obj for printing/diagnostics.
	UserRepr func(obj *Object, rt Runtime) string
}

var nextTypeID int64

func nextTID() int64 {
	nextTypeID++
	return nextTypeID
}

// NewType allocates a Type with a fresh id and an empty method table.
func NewType(kind Kind) *Type {
	return &Type{
		ID:      nextTID(),
		Kind:    kind,
		Methods: map[nameid.ID]*Object{},
	}
}

// SetUnary installs the operator adapter for slot s.
func (t *Type) SetUnary(s UnarySlot, op UnaryOp) { t.unary[s] = op }

// Unary returns the operator adapter for slot s, or nil if unset.
func (t *Type) Unary(s UnarySlot) UnaryOp { return t.unary[s] }

// SetBinary installs the operator adapter for slot s.
func (t *Type) SetBinary(s BinarySlot, op BinaryOp) { t.binary[s] = op }

// Binary returns the operator adapter for slot s, or nil if unset.
func (t *Type) Binary(s BinarySlot) BinaryOp { return t.binary[s] }

// AddMethod registers a method (an instance object of the Function type)
// under name id.
func (t *Type) AddMethod(id nameid.ID, fn *Object) {
	t.Methods[id] = fn
}

// Method returns the method registered under id, if any.
func (t *Type) Method(id nameid.ID) (*Object, bool) {
	fn, ok := t.Methods[id]
	return fn, ok
}

// HasMethod reports whether a method is registered under id.
func (t *Type) HasMethod(id nameid.ID) bool {
	_, ok := t.Methods[id]
	return ok
}

// GCReachable returns every Object directly reachable from this Type's
// vtable: its methods.
func (t *Type) GCReachable() []*Object {
	out := make([]*Object, 0, len(t.Methods))
	for _, m := range t.Methods {
		out = append(out, m)
	}
	return out
}
