package operations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	r := NewRegistry()

	require.NoError(t, r.Register(CleanStep{}))
	require.NoError(t, r.Register(failingStep{}))
	require.NoError(t, r.Register(panicStep{}))

	assert.Equal(t, 3, r.Count())
	assert.Equal(t, []string{StepIDClean, "fail", "explode"}, r.ListIDs())

	step, err := r.Get("fail")
	require.NoError(t, err)
	assert.Equal(t, "Fail", step.Name())

	_, err = r.Get("missing")
	assert.Error(t, err)
}

func TestRegistry_RejectsInvalidSteps(t *testing.T) {
	r := NewRegistry()

	assert.Error(t, r.Register(nil))
	require.NoError(t, r.Register(CleanStep{}))
	assert.Error(t, r.Register(CleanStep{}), "duplicate ID")
	assert.Equal(t, 1, r.Count())
}

func TestNewPipeline_RegistersStepsInOrder(t *testing.T) {
	p := NewPipeline(testConfig(t), nil, WithRenderer(nil))

	assert.Equal(t, []string{StepIDLoad, StepIDClean, StepIDAggregate, StepIDBenford}, p.Registry().ListIDs())
}
