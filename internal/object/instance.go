package object

import "github.com/lis05/cotton/internal/nameid"

// Kind discriminates the closed set of built-in instance variants plus the
// one open variant, Record, used for user-defined types.
type Kind int

const (
	KindNothing Kind = iota
	KindBoolean
	KindInteger
	KindReal
	KindCharacter
	KindString
	KindArray
	KindFunction
	KindRecord
)

func (k Kind) String() string {
	switch k {
	case KindNothing:
		return "Nothing"
	case KindBoolean:
		return "Boolean"
	case KindInteger:
		return "Integer"
	case KindReal:
		return "Real"
	case KindCharacter:
		return "Character"
	case KindString:
		return "String"
	case KindArray:
		return "Array"
	case KindFunction:
		return "Function"
	case KindRecord:
		return "Record"
	default:
		return "?"
	}
}

// FuncKind distinguishes native (Go) functions from user-defined Cotton
// functions sharing the same Function instance shape.
type FuncKind int

const (
	FuncNative FuncKind = iota
	FuncUser
)

// NativeFn is the calling convention for native functions: built-ins and
// functions registered by loaded shared libraries.
type NativeFn func(args []*Object, rt Runtime, matters bool) *Object

// FuncData is the payload of a Function instance. Exactly one of Native or
// the user-fields applies, selected by Kind.
type FuncData struct {
	Kind FuncKind

	Native NativeFn

	// User-defined function fields.
	Params       []nameid.ID
	Body         interface{} // astshim.Stmt, kept as interface{} to avoid an import cycle
	DefiningEnv  interface{} // *scope.Scope of the defining lexical frame
	Name         nameid.ID
	HasName      bool
}

// Instance carries the variant data of an instance object.
type Instance struct {
	ID       int64
	GCMark   bool
	ByteSize int64
	Kind     Kind

	Bool bool
	Int  int64
	Real float64
	Char rune
	Str  string

	// Array elements. Arrays are reference types: copying an Object whose
	// instance is an Array duplicates the outer Instance but shares the
	// element Objects (see spec §8 test #5).
	Arr []*Object

	// Record fields, ordered insertion doesn't matter: lookup is by name.
	Fields map[nameid.ID]*Object

	Func *FuncData
}

var nextInstanceID int64

func nextIID() int64 {
	nextInstanceID++
	return nextInstanceID
}

// NewInstance allocates an Instance of the given kind with a fresh id.
func NewInstance(kind Kind, byteSize int64) *Instance {
	return &Instance{ID: nextIID(), Kind: kind, ByteSize: byteSize}
}

// GCReachable returns every Object directly reachable from the instance's
// payload: array elements and record fields. A function's DefiningEnv
// is opaque here (to avoid a package cycle) and is not returned; package
// gc does not walk it either.
func (in *Instance) GCReachable() []*Object {
	switch in.Kind {
	case KindArray:
		return append([]*Object(nil), in.Arr...)
	case KindRecord:
		out := make([]*Object, 0, len(in.Fields))
		for _, v := range in.Fields {
			out = append(out, v)
		}
		return out
	default:
		return nil
	}
}
