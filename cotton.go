// Package cotton is the embedding API for the Cotton runtime: construct
// an interpreter with Options, feed it a parsed program, and read back
// results or errors. Shaped after the teacher interpreter's
// Options/New/Eval*/REPL surface, adapted to Cotton's object model.
package cotton

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/lis05/cotton/internal/astshim"
	"github.com/lis05/cotton/internal/evaluator"
	"github.com/lis05/cotton/internal/gc"
	"github.com/lis05/cotton/internal/module"
	"github.com/lis05/cotton/internal/object"
	"github.com/lis05/cotton/internal/rt"
	"github.com/lis05/cotton/internal/stdlib"
)

// Parser turns source text into a statement list. Lexing and parsing are
// external collaborators the runtime does not implement (see package
// astshim); embedders supply one via Options.Parser. Without one,
// EvalString/EvalPath/REPL report a configuration error rather than
// attempting to interpret raw text.
type Parser func(src, filename string) ([]astshim.Stmt, error)

// Options configures a new Cotton interpreter.
type Options struct {
	// Standard input, output, and error streams. Default to os.Stdin,
	// os.Stdout, os.Stderr.
	Stdin          io.Reader
	Stdout, Stderr io.Writer

	// Args is exposed to running programs as command-line arguments.
	// Defaults to os.Args.
	Args []string

	// Env seeds the runtime's Env map (key=value pairs, split at the
	// first '='). No standard-library function reads it.
	Env []string

	// Unrestricted allows non-sandboxed stdlib symbols (system, exit,
	// sleep, loadlibrary/sharedlibrary). Defaults to false.
	Unrestricted bool

	// ModulePath governs shared-library and source-import resolution.
	ModulePath string

	// Strategy overrides the GC trigger strategy. Defaults to
	// gc.NewDefaultStrategy().
	Strategy gc.Strategy

	// Parser supplies source-text parsing for EvalString/EvalPath/REPL.
	Parser Parser
}

// Cotton is one interpreter instance: a Runtime, its Evaluator, and the
// registered standard library, all scoped to this instance only.
type Cotton struct {
	rt     *rt.Runtime
	eval   *evaluator.Evaluator
	parser Parser
}

// New constructs a Cotton interpreter with the nine canonical types and
// standard library installed.
func New(options Options) *Cotton {
	var opts []rt.Option
	if options.Strategy != nil {
		opts = append(opts, rt.WithStrategy(options.Strategy))
	}
	opts = append(opts, rt.WithStdio(options.Stdin, options.Stdout, options.Stderr))

	runtime := rt.New(opts...)

	if options.Args != nil {
		runtime.Args = options.Args
	} else {
		runtime.Args = os.Args
	}
	for _, kv := range options.Env {
		for i := 0; i < len(kv); i++ {
			if kv[i] == '=' {
				runtime.Env[kv[:i]] = kv[i+1:]
				break
			}
		}
	}
	runtime.Unrestricted = options.Unrestricted
	runtime.ModulePath = options.ModulePath

	ev := evaluator.New(runtime)

	loader := module.NewLoader(runtime, module.Parser(options.Parser))
	loader.SetEvalProgram(ev.EvalProgram)
	stdlib.Register(runtime, loader)

	return &Cotton{rt: runtime, eval: ev, parser: options.Parser}
}

// Runtime exposes the underlying orchestrator for embedders who need
// direct access (registering additional native functions, inspecting
// globals).
func (c *Cotton) Runtime() *rt.Runtime { return c.rt }

// EvalProgram runs a pre-parsed statement list to completion and
// reports any signalled runtime error.
func (c *Cotton) EvalProgram(stmts []astshim.Stmt) (err *rt.Error) {
	defer rt.Recover(&err)
	c.rt.ClearFlags()
	c.eval.EvalProgram(stmts)
	return nil
}

// EvalString parses src with the configured Parser and runs it.
func (c *Cotton) EvalString(src string) (err *rt.Error) {
	if c.parser == nil {
		return &rt.Error{Kind: object.ErrInternalError, Message: "no Parser configured in Options"}
	}
	stmts, perr := c.parser(src, "<string>")
	if perr != nil {
		return &rt.Error{Kind: object.ErrInternalError, Message: perr.Error()}
	}
	return c.EvalProgram(stmts)
}

// EvalPath reads and evaluates the file at path.
func (c *Cotton) EvalPath(path string) (err *rt.Error) {
	data, ioerr := os.ReadFile(path)
	if ioerr != nil {
		return &rt.Error{Kind: object.ErrImportError, Message: ioerr.Error()}
	}
	if c.parser == nil {
		return &rt.Error{Kind: object.ErrInternalError, Message: "no Parser configured in Options"}
	}
	stmts, perr := c.parser(string(data), path)
	if perr != nil {
		return &rt.Error{Kind: object.ErrInternalError, Message: perr.Error()}
	}
	return c.EvalProgram(stmts)
}

// REPL reads statements from Stdin one line at a time, evaluating each
// and printing errors without aborting the session.
func (c *Cotton) REPL() error {
	if c.parser == nil {
		return fmt.Errorf("no Parser configured in Options")
	}
	scanner := bufio.NewScanner(c.rt.Stdin)
	for {
		fmt.Fprint(c.rt.Stdout, "> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := scanner.Text()
		if line == "" {
			continue
		}
		stmts, perr := c.parser(line, "<repl>")
		if perr != nil {
			fmt.Fprintln(c.rt.Stderr, perr)
			continue
		}
		if err := c.EvalProgram(stmts); err != nil {
			fmt.Fprintln(c.rt.Stderr, err.Error())
		}
	}
}
