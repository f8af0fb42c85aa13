package attendance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intp(v int) *int { return &v }

func TestEvaluateCapacityUnbounded(t *testing.T) {
	for _, max := range []*int{nil, intp(0), intp(-3)} {
		cap := EvaluateCapacity(12, max)
		assert.False(t, cap.HasMaxLimit)
		assert.False(t, cap.IsAtMaxCapacity)
		assert.Nil(t, cap.SpotsRemaining)
		assert.Equal(t, CapacityUnder, cap.Signal)
	}
}

func TestEvaluateCapacityUnder(t *testing.T) {
	cap := EvaluateCapacity(2, intp(10))
	assert.True(t, cap.HasMaxLimit)
	assert.False(t, cap.IsAtMaxCapacity)
	require.NotNil(t, cap.SpotsRemaining)
	assert.Equal(t, 8, *cap.SpotsRemaining)
	assert.Equal(t, CapacityUnder, cap.Signal)
}

func TestEvaluateCapacityNear(t *testing.T) {
	cap := EvaluateCapacity(8, intp(10))
	assert.False(t, cap.IsAtMaxCapacity)
	assert.Equal(t, CapacityNear, cap.Signal)
}

func TestEvaluateCapacityFull(t *testing.T) {
	cap := EvaluateCapacity(10, intp(10))
	assert.True(t, cap.IsAtMaxCapacity)
	require.NotNil(t, cap.SpotsRemaining)
	assert.Zero(t, *cap.SpotsRemaining)
	assert.Equal(t, CapacityFull, cap.Signal)
}

func TestEvaluateCapacityOver(t *testing.T) {
	// Over-enrollment can exist when a limit was lowered after the fact;
	// spots never go negative.
	cap := EvaluateCapacity(13, intp(10))
	assert.True(t, cap.IsAtMaxCapacity)
	assert.Zero(t, *cap.SpotsRemaining)
	assert.Equal(t, CapacityFull, cap.Signal)
}

func TestEvaluateCapacityOneSpotLeft(t *testing.T) {
	cap := EvaluateCapacity(4, intp(5))
	assert.False(t, cap.IsAtMaxCapacity)
	assert.Equal(t, 1, *cap.SpotsRemaining)
	assert.Equal(t, CapacityNear, cap.Signal)
}
