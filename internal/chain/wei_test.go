package chain

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEthExactSmallestUnit(t *testing.T) {
	// One attowei of precision must survive: no float anywhere.
	wei, err := ParseEth("0.000000000000000001")
	require.NoError(t, err)
	assert.Equal(t, "1", wei.String())
}

func TestParseEth(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"0", "0"},
		{"1", "1000000000000000000"},
		{"0.05", "50000000000000000"},
		{"0.5", "500000000000000000"},
		{"1.5", "1500000000000000000"},
		{"42.000000000000000001", "42000000000000000001"},
		{".25", "250000000000000000"},
		{"2.", "2000000000000000000"},
		{" 3 ", "3000000000000000000"},
	}

	for _, tt := range tests {
		wei, err := ParseEth(tt.input)
		require.NoError(t, err, "input %q", tt.input)
		assert.Equal(t, tt.expected, wei.String(), "input %q", tt.input)
	}
}

func TestParseEthPadsFraction(t *testing.T) {
	// "05" is five hundredths, not 5 wei.
	wei, err := ParseEth("0.05")
	require.NoError(t, err)

	expected := new(big.Int).Exp(big.NewInt(10), big.NewInt(16), nil)
	expected.Mul(expected, big.NewInt(5))
	assert.Equal(t, expected.String(), wei.String())
}

func TestParseEthRejects(t *testing.T) {
	inputs := []string{
		"",
		"-1",
		"-0.5",
		"1.0000000000000000001", // 19 decimal places
		"abc",
		"1.2.3",
		"1,5",
		"0x10",
	}

	for _, input := range inputs {
		_, err := ParseEth(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestWeiToDisplay(t *testing.T) {
	wei, err := ParseEth("1.5")
	require.NoError(t, err)
	assert.InDelta(t, 1.5, WeiToDisplay(wei), 1e-12)

	assert.Zero(t, WeiToDisplay(nil))
}
