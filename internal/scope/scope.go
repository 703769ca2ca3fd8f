// Package scope implements Cotton's lexical scope chain: frame chaining
// with a distinguished master frame, and controlled cross-frame access at
// function call boundaries, per the runtime specification §4.3.
package scope

import (
	"github.com/lis05/cotton/internal/nameid"
	"github.com/lis05/cotton/internal/object"
)

// Scope is a node in a doubly-linked frame chain.
type Scope struct {
	prev   *Scope
	master *Scope

	variables map[nameid.ID]*object.Object
	arguments []*object.Object

	canAccessPrev  bool
	isFunctionCall bool
}

// NewMaster creates the outermost scope of a lexical region: its own
// master, with no previous frame.
func NewMaster() *Scope {
	s := &Scope{variables: map[nameid.ID]*object.Object{}, canAccessPrev: true}
	s.master = s
	return s
}

// New creates a scope frame chained to prev, with the given master and
// access policy.
func New(prev, master *Scope, canAccessPrev bool) *Scope {
	return &Scope{
		prev:          prev,
		master:        master,
		variables:     map[nameid.ID]*object.Object{},
		canAccessPrev: canAccessPrev,
	}
}

// Prev returns the caller/enclosing frame.
func (s *Scope) Prev() *Scope { return s.prev }

// Master returns the outermost scope of this lexical region.
func (s *Scope) Master() *Scope { return s.master }

// CanAccessPrev reports whether lookups fall through to Prev.
func (s *Scope) CanAccessPrev() bool { return s.canAccessPrev }

// SetCanAccessPrev toggles fallthrough to Prev; used by the unlockscope/
// lockscope standard library functions.
func (s *Scope) SetCanAccessPrev(v bool) { s.canAccessPrev = v }

// IsFunctionCall reports whether this frame was installed for a function
// call (as opposed to a block or loop iteration).
func (s *Scope) IsFunctionCall() bool { return s.isFunctionCall }

// SetIsFunctionCall marks this frame as a function-call frame.
func (s *Scope) SetIsFunctionCall(v bool) { s.isFunctionCall = v }

// Arguments returns the positional argument list stored on this frame
// (populated for function-call frames; backs argc/argv/argg).
func (s *Scope) Arguments() []*object.Object { return s.arguments }

// SetArguments stores the full argument list on this frame.
func (s *Scope) SetArguments(args []*object.Object) { s.arguments = args }

// AddVariable always writes to the current frame, spreading multi-use on
// the bound object.
func (s *Scope) AddVariable(id nameid.ID, obj *object.Object) {
	obj.SpreadMultiUse()
	s.variables[id] = obj
}

// Set rebinds id wherever the lookup algorithm already finds it (so
// assignment to an outer variable mutates that outer frame, not a new
// local shadow), falling back to creating it in the current frame if it
// resolves nowhere.
func (s *Scope) Set(id nameid.ID, obj *object.Object) {
	cur := s
	for {
		if _, ok := cur.variables[id]; ok {
			obj.SpreadMultiUse()
			cur.variables[id] = obj
			return
		}
		if cur.canAccessPrev && cur.prev != nil {
			cur = cur.prev
			continue
		}
		if cur.master != nil && cur.master != cur {
			if _, ok := cur.master.variables[id]; ok {
				obj.SpreadMultiUse()
				cur.master.variables[id] = obj
				return
			}
		}
		break
	}
	s.AddVariable(id, obj)
}

// RemoveVariable removes a variable from the current frame only.
func (s *Scope) RemoveVariable(id nameid.ID) {
	delete(s.variables, id)
}

// Hide deletes id from the first frame in which the lookup algorithm
// would find it (current frame, then the prev chain, then master),
// without cascading further once a frame is found. Reports whether a
// binding was found and removed. Backs the hide() stdlib function.
func (s *Scope) Hide(id nameid.ID) bool {
	cur := s
	for {
		if _, ok := cur.variables[id]; ok {
			delete(cur.variables, id)
			return true
		}
		if cur.canAccessPrev && cur.prev != nil {
			cur = cur.prev
			continue
		}
		if cur.master != nil && cur.master != cur {
			if _, ok := cur.master.variables[id]; ok {
				delete(cur.master.variables, id)
				return true
			}
		}
		return false
	}
}

// Local returns the variable bound in exactly this frame, without walking
// the chain.
func (s *Scope) Local(id nameid.ID) (*object.Object, bool) {
	obj, ok := s.variables[id]
	return obj, ok
}

// Query reports whether id resolves anywhere reachable from s, following
// the lookup algorithm in runtime specification §4.3.
func (s *Scope) Query(id nameid.ID) bool {
	_, ok := s.Get(id)
	return ok
}

// Get resolves id following the lookup algorithm:
//  1. search the current frame;
//  2. if absent and CanAccessPrev, advance to Prev and repeat;
//  3. once a frame refuses to pass through to Prev, try its Master once,
//     then stop.
func (s *Scope) Get(id nameid.ID) (*object.Object, bool) {
	cur := s
	for {
		if obj, ok := cur.variables[id]; ok {
			return obj, true
		}
		if cur.canAccessPrev && cur.prev != nil {
			cur = cur.prev
			continue
		}
		if cur.master != nil && cur.master != cur {
			if obj, ok := cur.master.variables[id]; ok {
				return obj, true
			}
		}
		return nil, false
	}
}

// Variables returns every Object bound in exactly this frame. Used by the
// GC root walk.
func (s *Scope) Variables() []*object.Object {
	out := make([]*object.Object, 0, len(s.variables))
	for _, v := range s.variables {
		out = append(out, v)
	}
	return out
}

// Bindings returns a copy of the name-to-object map bound in exactly
// this frame. Used by package module to turn a loaded source file's
// top-level frame into a namespace record's field set.
func (s *Scope) Bindings() map[nameid.ID]*object.Object {
	out := make(map[nameid.ID]*object.Object, len(s.variables))
	for k, v := range s.variables {
		out[k] = v
	}
	return out
}
