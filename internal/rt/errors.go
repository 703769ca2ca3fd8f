package rt

import (
	"fmt"
	"strings"

	"github.com/lis05/cotton/internal/astshim"
	"github.com/lis05/cotton/internal/object"
	pkgerrors "github.com/pkg/errors"
)

// Error is a Cotton runtime error: an abstract Kind from the taxonomy in
// the runtime specification §7, a message, and a primary source span.
// Rendering file:line:col and surrounding source is delegated to an
// external reporting collaborator; Error only carries what that
// collaborator needs.
type Error struct {
	Kind    object.ErrorKind
	Message string
	Span    astshim.Span
	// Trace holds the "Error occurred here" frames collected while
	// unwinding the error-context stack, oldest first.
	Trace []astshim.Span
	// cause wraps an underlying Go error for plumbing failures (I/O,
	// shared-library loading) so their stack trace survives to the top
	// level via github.com/pkg/errors.
	cause error
}

func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", e.Kind.String(), e.Message)
	if e.cause != nil {
		fmt.Fprintf(&b, ": %v", e.cause)
	}
	return b.String()
}

// Unwrap exposes the wrapped cause, if any, to errors.Is/As.
func (e *Error) Unwrap() error { return e.cause }

// panicSignal is what SignalError panics with; evaluator-level recover
// sites type-assert for it specifically so unrelated panics (programmer
// bugs) still crash loudly instead of being swallowed, matching the
// "InternalError is fatal" policy of §7.
type panicSignal struct{ err *Error }

// SignalError raises a runtime error tagged with kind, attaching the
// current error-context stack as a trace, and aborts the current
// evaluation by panicking. Implements object.Runtime. Never returns.
func (rt *Runtime) SignalError(kind object.ErrorKind, message string) {
	e := &Error{Kind: kind, Message: message, Span: rt.currentSpan(), Trace: rt.contextTrace()}
	panic(panicSignal{e})
}

// SignalErrorAt is like SignalError but with an explicit span, used when
// the error concerns a sub-area (e.g. one argument) of the current
// context rather than its whole area.
func (rt *Runtime) SignalErrorAt(kind object.ErrorKind, message string, span astshim.Span) {
	e := &Error{Kind: kind, Message: message, Span: span, Trace: rt.contextTrace()}
	panic(panicSignal{e})
}

// WrapPlumbingError wraps a failing Go stdlib/ecosystem call (I/O, shared
// library loading) as an ImportError/InternalError, preserving cause and
// stack via github.com/pkg/errors, and signals it.
func (rt *Runtime) WrapPlumbingError(kind object.ErrorKind, context string, cause error) {
	wrapped := pkgerrors.Wrap(cause, context)
	e := &Error{Kind: kind, Message: context, Span: rt.currentSpan(), Trace: rt.contextTrace(), cause: wrapped}
	panic(panicSignal{e})
}

// Recover should be deferred at every top-level entry point (Eval,
// EvalPath, a native-function call boundary that must not let Cotton
// errors escape as Go panics). It converts a panicSignal into a returned
// *Error and re-panics anything else.
func Recover(errp **Error) {
	if r := recover(); r != nil {
		if sig, ok := r.(panicSignal); ok {
			*errp = sig.err
			return
		}
		panic(r)
	}
}
