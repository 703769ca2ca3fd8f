package builtins

import (
	"github.com/lis05/cotton/internal/nameid"
	"github.com/lis05/cotton/internal/object"
)

// NewRecordType constructs a user-defined type created by a `type`
// definition. Unlike the nine canonical types, a record type carries no
// built-in operators: every operator it supports comes from an
// explicitly declared magic method, resolved by the reflected fallback
// in the orchestrator's RunBinaryOperator/RunUnaryOperator. Field order
// is preserved so new instances are pre-populated with Nothing in
// declaration order.
func NewRecordType(name nameid.ID, fields []nameid.ID, nothing *object.Type) *object.Type {
	t := object.NewType(object.KindRecord)
	t.NameID = name
	t.Fields = append([]nameid.ID(nil), fields...)

	t.Create = func(rt object.Runtime) *object.Instance {
		in := object.NewInstance(object.KindRecord, 0)
		in.Fields = make(map[nameid.ID]*object.Object, len(t.Fields))
		for _, f := range t.Fields {
			in.Fields[f] = rt.Make(nothing, true)
		}
		return in
	}
	t.Copy = func(obj *object.Object, rt object.Runtime) *object.Object {
		out := rt.Make(t, true)
		out.Instance.Fields = make(map[nameid.ID]*object.Object, len(obj.Instance.Fields))
		for k, v := range obj.Instance.Fields {
			out.Instance.Fields[k] = v
		}
		return out
	}
	t.UserRepr = func(obj *object.Object, rt object.Runtime) string {
		return "<" + rt.Names().String(name) + " instance>"
	}

	return t
}
