package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMean(t *testing.T) {
	assert.Equal(t, 0.0, mean(nil))
	assert.InDelta(t, 2.0, mean([]float64{1, 2, 3}), 1e-9)
}

func TestMedian(t *testing.T) {
	assert.Equal(t, 0.0, median(nil))
	assert.InDelta(t, 2.0, median([]float64{3, 1, 2}), 1e-9)
	assert.InDelta(t, 2.5, median([]float64{4, 1, 2, 3}), 1e-9)

	// input order is preserved
	vals := []float64{3, 1, 2}
	median(vals)
	assert.Equal(t, []float64{3, 1, 2}, vals)
}

func TestStddev(t *testing.T) {
	assert.Equal(t, 0.0, stddev(nil))
	assert.Equal(t, 0.0, stddev([]float64{5}))
	assert.InDelta(t, 1.0, stddev([]float64{1, 2, 3}), 1e-9)
}
