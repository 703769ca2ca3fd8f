package module_test

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"

	"github.com/lis05/cotton/internal/astshim"
	"github.com/lis05/cotton/internal/evaluator"
	"github.com/lis05/cotton/internal/module"
	"github.com/lis05/cotton/internal/rt"
)

// testParser understands exactly one statement shape, "name = <int>",
// one per line: enough to prove LoadSource's frame isolation and caching
// without pulling in a real lexer/parser (out of scope for this module).
func testParser(src, filename string) ([]astshim.Stmt, error) {
	var stmts []astshim.Stmt
	for _, line := range strings.Split(src, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		name := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		if _, err := strconv.ParseInt(value, 10, 64); err != nil {
			continue
		}
		target := astshim.NewAtom(astshim.Span{}, astshim.Token{Kind: astshim.TokIdentifier, Ident: name})
		lit := astshim.NewAtom(astshim.Span{}, astshim.Token{Kind: astshim.TokInteger, Text: value})
		assign := astshim.NewOperator(astshim.Span{}, astshim.OpAssign, target, lit, astshim.Token{})
		stmts = append(stmts, astshim.NewExprStmt(astshim.Span{}, assign))
	}
	return stmts, nil
}

func newTestLoader(t *testing.T, modpath string) (*rt.Runtime, *module.Loader) {
	t.Helper()
	r := rt.New()
	ev := evaluator.New(r)
	r.ModulePath = modpath
	loader := module.NewLoader(r, testParser)
	loader.SetEvalProgram(ev.EvalProgram)
	return r, loader
}

func writeFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	archive := txtar.Parse([]byte(`
-- mathconsts.ctn --
pi = 3
tau = 6
`))
	for _, f := range archive.Files {
		path := filepath.Join(dir, f.Name)
		require.NoError(t, os.WriteFile(path, f.Data, 0o644))
	}
	return dir
}

func TestLoadSourceBuildsNamespaceFromTopLevelBindings(t *testing.T) {
	dir := writeFixture(t)
	r, loader := newTestLoader(t, dir)

	ns := loader.LoadSource("mathconsts")
	require.True(t, ns.IsInstance)

	pi := ns.Instance.Fields[r.Names().Intern("pi")]
	require.NotNil(t, pi)
	assert.Equal(t, int64(3), pi.Instance.Int)

	tau := ns.Instance.Fields[r.Names().Intern("tau")]
	require.NotNil(t, tau)
	assert.Equal(t, int64(6), tau.Instance.Int)
}

func TestLoadSourceIsCachedAcrossCalls(t *testing.T) {
	dir := writeFixture(t)
	_, loader := newTestLoader(t, dir)

	first := loader.LoadSource("mathconsts")
	second := loader.LoadSource("mathconsts")
	assert.Same(t, first, second)
}

func TestLoadSourceSignalsImportErrorWhenMissing(t *testing.T) {
	dir := t.TempDir()
	_, loader := newTestLoader(t, dir)

	var rerr *rt.Error
	func() {
		defer rt.Recover(&rerr)
		loader.LoadSource("doesnotexist")
	}()
	require.NotNil(t, rerr)
}

func TestLoadSourceNamespaceIsNotModifiable(t *testing.T) {
	dir := writeFixture(t)
	_, loader := newTestLoader(t, dir)

	ns := loader.LoadSource("mathconsts")
	assert.False(t, ns.CanModify)
}

func TestLoadSharedLibraryRequiresUnrestricted(t *testing.T) {
	r, loader := newTestLoader(t, t.TempDir())
	r.Unrestricted = false

	var rerr *rt.Error
	func() {
		defer rt.Recover(&rerr)
		loader.LoadSharedLibrary("whatever")
	}()
	require.NotNil(t, rerr)
}
