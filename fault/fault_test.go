package fault_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/stringnet/fault"
)

func TestCatch_ReturnsInvariantFault(t *testing.T) {
	err := fault.Catch(func() {
		fault.Invariant("walk.Close", "walker did not return to start", "start", "(0,0)", "cur", "(1,0)")
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, fault.ErrInternal)

	f, ok := fault.As(err)
	require.True(t, ok)
	assert.Equal(t, fault.KindInvariant, f.Kind)
	assert.Equal(t, "walk.Close", f.Op)
	v, ok := f.Field("cur")
	assert.True(t, ok)
	assert.Equal(t, "(1,0)", v)
	assert.Contains(t, err.Error(), "fault: invariant: walk.Close: walker did not return to start (start=(0,0), cur=(1,0))")
}

func TestCatch_NoFault(t *testing.T) {
	assert.NoError(t, fault.Catch(func() {}))
}

func TestRecover_RepanicsForeignValues(t *testing.T) {
	assert.PanicsWithValue(t, "boom", func() {
		_ = fault.Catch(func() { panic("boom") })
	})
}

func TestPrecondition_KindAndOddFields(t *testing.T) {
	err := fault.Catch(func() {
		fault.Precondition("lattice.PointReal", "negative coordinate", "x", -1, "dangling")
	})
	f, ok := fault.As(err)
	require.True(t, ok)
	assert.Equal(t, fault.KindPrecondition, f.Kind)
	assert.Equal(t, "precondition", f.Kind.String())
	v, ok := f.Field("dangling")
	assert.True(t, ok)
	assert.Nil(t, v)
}

func TestFault_StackTrace(t *testing.T) {
	f := fault.New(fault.KindInvariant, "op", "msg")
	assert.NotEmpty(t, f.StackTrace())
	verbose := fmt.Sprintf("%+v", f)
	assert.True(t, strings.HasPrefix(verbose, "fault: invariant: op: msg"))
	assert.Greater(t, len(strings.Split(verbose, "\n")), 1)
}

func TestAs_ForeignError(t *testing.T) {
	_, ok := fault.As(errors.New("plain"))
	assert.False(t, ok)
	wrapped := fmt.Errorf("run: %w", fault.New(fault.KindPrecondition, "op", "msg"))
	_, ok = fault.As(wrapped)
	assert.True(t, ok)
	assert.ErrorIs(t, wrapped, fault.ErrInternal)
}
