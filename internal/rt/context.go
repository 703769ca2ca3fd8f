package rt

import "github.com/lis05/cotton/internal/astshim"

// ErrorContext is one frame of the error-context stack, per runtime
// specification §4.4.5: an area spanning the whole construct being
// evaluated, plus named sub-areas (e.g. call arguments).
type ErrorContext struct {
	Area     astshim.Span
	SubAreas []astshim.Span
}

// ContextID selects a part of the current context for error reporting.
type ContextID int

const (
	CtxArea ContextID = -1
	CtxSub0 ContextID = 0
	CtxSub1 ContextID = 1
	CtxSub2 ContextID = 2
	CtxSub3 ContextID = 3
)

// PushContext pushes a new error context with the given area.
func (rt *Runtime) PushContext(area astshim.Span) {
	rt.contexts = append(rt.contexts, ErrorContext{Area: area})
}

// PopContext pops the topmost error context.
func (rt *Runtime) PopContext() {
	if len(rt.contexts) == 0 {
		return
	}
	rt.contexts = rt.contexts[:len(rt.contexts)-1]
}

// CurrentContext returns a pointer to the topmost error context, so
// callers can append sub-areas (e.g. while building a call's argument
// list).
func (rt *Runtime) CurrentContext() *ErrorContext {
	if len(rt.contexts) == 0 {
		return nil
	}
	return &rt.contexts[len(rt.contexts)-1]
}

// TextArea returns the selected span from the current context.
func (rt *Runtime) TextArea(id ContextID) astshim.Span {
	ctx := rt.CurrentContext()
	if ctx == nil {
		return astshim.Span{}
	}
	if id == CtxArea {
		return ctx.Area
	}
	i := int(id)
	if i < 0 || i >= len(ctx.SubAreas) {
		return ctx.Area
	}
	return ctx.SubAreas[i]
}

func (rt *Runtime) currentSpan() astshim.Span {
	return rt.TextArea(CtxArea)
}

// contextTrace walks the context stack from oldest to newest, recording a
// span at each frame whose area differs from its parent's, for the
// "Error occurred here" trace described in §4.4.5. Formatting into text
// is delegated to an external reporting collaborator; this just collects
// the spans.
func (rt *Runtime) contextTrace() []astshim.Span {
	var trace []astshim.Span
	var parent astshim.Span
	failing := rt.currentSpan()
	for i, ctx := range rt.contexts {
		if i > 0 && ctx.Area == parent {
			continue
		}
		if ctx.Area == failing {
			continue
		}
		trace = append(trace, ctx.Area)
		parent = ctx.Area
	}
	return trace
}
