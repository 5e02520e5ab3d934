package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/temirov/repostats/internal/types"
)

func TestTotalsAdd(t *testing.T) {
	left := types.Totals{Lines: 4, Words: 3, Files: 2}
	right := types.Totals{Lines: 1, Words: 0, Files: 1}

	assert.Equal(t, types.Totals{Lines: 5, Words: 3, Files: 3}, left.Add(right))
	assert.Equal(t, left.Add(right), right.Add(left))
	assert.Equal(t, left, left.Add(types.Totals{}))
}

func TestIsSupportedDenominator(t *testing.T) {
	testCases := []struct {
		mode     string
		expected bool
	}{
		{mode: types.DenominatorGlobal, expected: true},
		{mode: types.DenominatorDirectory, expected: true},
		{mode: "", expected: false},
		{mode: "Global", expected: false},
	}
	for _, testCase := range testCases {
		assert.Equal(t, testCase.expected, types.IsSupportedDenominator(testCase.mode), testCase.mode)
	}
}
