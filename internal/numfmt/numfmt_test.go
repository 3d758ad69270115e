package numfmt

import (
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		text  string
		value int64
	}){
		{"1470", 1470},
		{"1_470", 1470},
		{"0x5be", 1470},
		{"0b101", 5},
		{"2^10", 1024},
		{"2^3*5", 40},
		{" 3^2 * 5^2 ", 225},
		{"2^0x3", 8},
		{"1", 1},
		{"0", 0},
	}

	for _, entry := range table {
		n, err := Parse(entry.text)
		assert.NoError(err, entry.text)
		if err == nil {
			assert.Equal(entry.value, n.Int64(), entry.text)
		}
	}
}

func TestParse_Errors(t *testing.T) {
	assert := assert.New(t)

	for _, text := range []string{"", "x", "2^", "^3", "2**3", "b58:", "b58:0OIl"} {
		_, err := Parse(text)
		var perr ErrParse
		assert.True(errors.As(err, &perr), text)
	}

	_, err := Parse("-5")
	assert.True(errors.Is(err, ErrNegative))
}

func TestParse_TooLarge(t *testing.T) {
	assert := assert.New(t)

	for _, text := range []string{"2^99999999999", "3^0x1_0000_0000_0000_0000", "4^0x2000001", "7*2^99999999999"} {
		n, err := Parse(text)
		assert.Nil(n, text)
		assert.True(errors.Is(err, ErrTooLarge), text)
	}

	for _, text := range []string{"1^99999999999", "0^99999999999", "4^0x100"} {
		n, err := Parse(text)
		assert.NoError(err, text)
		assert.True(n.BitLen() <= MAX_BITS, text)
	}
}

func TestFormat(t *testing.T) {
	assert := assert.New(t)

	n := big.NewInt(1470)
	assert.Equal("1470", Format(n, STYLE_DECIMAL))
	assert.Equal("0x5be", Format(n, STYLE_HEX))

	for _, style := range []Style{STYLE_DECIMAL, STYLE_HEX, STYLE_BASE58} {
		back, err := Parse(Format(n, style))
		assert.NoError(err)
		assert.Equal(0, n.Cmp(back))
	}
}

func TestFormat_Huge(t *testing.T) {
	require := require.New(t)

	n, err := Parse("2^300*3^10")
	require.NoError(err)

	expected := new(big.Int).Lsh(big.NewInt(59049), 300)
	require.Equal(0, expected.Cmp(n))

	back, err := Parse(Format(n, STYLE_BASE58))
	require.NoError(err)
	require.Equal(0, n.Cmp(back))
}

func TestParseStyle(t *testing.T) {
	assert := assert.New(t)

	style, ok := ParseStyle("b58")
	assert.True(ok)
	assert.Equal(STYLE_BASE58, style)

	style, ok = ParseStyle("")
	assert.True(ok)
	assert.Equal(STYLE_DECIMAL, style)

	_, ok = ParseStyle("octal")
	assert.False(ok)
}
