package rt

// ExecFlags is the execution-flag word carried on the Runtime across
// evaluator calls, per the runtime specification §4.4.6. Every evaluator
// result is paired with this word.
type ExecFlags uint8

const (
	FlagNone       ExecFlags = 0
	FlagContinue   ExecFlags = 1 << 0
	FlagBreak      ExecFlags = 1 << 1
	FlagReturn     ExecFlags = 1 << 2
	FlagDirectPass ExecFlags = 1 << 3
)

// Flags returns the current execution flag word.
func (rt *Runtime) Flags() ExecFlags { return rt.flags }

// SetFlags overwrites the execution flag word.
func (rt *Runtime) SetFlags(f ExecFlags) { rt.flags = f }

// ClearFlags resets the execution flag word to FlagNone.
func (rt *Runtime) ClearFlags() { rt.flags = FlagNone }

// Has reports whether f is set in the flag word.
func (f ExecFlags) Has(bit ExecFlags) bool { return f&bit != 0 }
