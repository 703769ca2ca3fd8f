package builtins_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lis05/cotton/internal/object"
	"github.com/lis05/cotton/internal/rt"
)

func intOf(r *rt.Runtime, v int64) *object.Object {
	o := r.Make(r.Builtin.Integer, true)
	o.Instance.Int = v
	return o
}

func TestIntegerArithmetic(t *testing.T) {
	r := rt.New()

	sum := r.RunBinaryOperator(object.OpAdd, intOf(r, 2), intOf(r, 3), true)
	assert.Equal(t, int64(5), sum.Instance.Int)

	diff := r.RunBinaryOperator(object.OpSub, intOf(r, 7), intOf(r, 2), true)
	assert.Equal(t, int64(5), diff.Instance.Int)

	quot := r.RunBinaryOperator(object.OpDiv, intOf(r, 9), intOf(r, 2), true)
	assert.Equal(t, int64(4), quot.Instance.Int)
}

func TestIntegerDivisionByZeroSignalsError(t *testing.T) {
	r := rt.New()

	var rerr *rt.Error
	func() {
		defer rt.Recover(&rerr)
		r.RunBinaryOperator(object.OpDiv, intOf(r, 1), intOf(r, 0), true)
	}()

	assert.NotNil(t, rerr)
	assert.Equal(t, object.ErrDivisionByZero, rerr.Kind)
}

func TestIntegerPreIncMutatesInPlace(t *testing.T) {
	r := rt.New()
	x := intOf(r, 1)
	result := r.RunUnaryOperator(object.OpPreInc, x, true)
	assert.Same(t, x, result)
	assert.Equal(t, int64(2), x.Instance.Int)
}

func TestIntegerPostIncReturnsOldValue(t *testing.T) {
	r := rt.New()
	x := intOf(r, 1)
	result := r.RunUnaryOperator(object.OpPostInc, x, true)
	assert.Equal(t, int64(1), result.Instance.Int)
	assert.Equal(t, int64(2), x.Instance.Int)
}

func TestIntegerEqualityAcrossMismatchedKind(t *testing.T) {
	r := rt.New()
	s := r.Make(r.Builtin.String, true)
	s.Instance.Str = "1"

	result := r.RunBinaryOperator(object.OpEqual, intOf(r, 1), s, true)
	assert.False(t, result.Instance.Bool)
}
