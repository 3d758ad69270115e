// Package numfmt reads and writes arbitrary-precision natural numbers.
//
// Accepted notations:
//
//	1470             decimal (underscores allowed)
//	0x5be            hex, and the other Go integer literal prefixes
//	b58:Ar           base58 of the big-endian bytes
//	2^300*3^10       products of powers of the above
package numfmt

import (
	"errors"
	"math/big"
	"strings"

	"github.com/mr-tron/base58"

	"github.com/ezrec/urm/translate"
)

var f = translate.From

// Style is an output notation.
type Style int

const (
	STYLE_DECIMAL = Style(0)
	STYLE_HEX     = Style(1)
	STYLE_BASE58  = Style(2)
)

const base58Prefix = "b58:"

// MAX_BITS is the largest bit length Parse will produce.
const MAX_BITS = 1 << 26

var (
	ErrNegative = errors.New(f("negative number"))
	ErrTooLarge = errors.New(f("number exceeds %d bits", MAX_BITS))
)

type ErrParse string

func (err ErrParse) Error() string {
	return f("'%v' is not a number", string(err))
}

// Parse reads a natural number.
func Parse(text string) (n *big.Int, err error) {
	text = strings.Join(strings.Fields(text), "")
	if len(text) == 0 {
		err = ErrParse(text)
		return
	}

	n = big.NewInt(1)
	for _, term := range strings.Split(text, "*") {
		var value *big.Int
		value, err = parsePower(term)
		if err != nil {
			n = nil
			return
		}
		n.Mul(n, value)
		if n.BitLen() > MAX_BITS {
			n = nil
			err = ErrTooLarge
			return
		}
	}

	return
}

func parsePower(term string) (value *big.Int, err error) {
	base, exp, ok := strings.Cut(term, "^")

	value, err = parseLiteral(base)
	if err != nil || !ok {
		return
	}

	power, err := parseLiteral(exp)
	if err != nil {
		value = nil
		return
	}

	// base^power has at least (bits(base)-1)*power+1 bits.
	bits := int64(value.BitLen() - 1)
	if bits > 0 && (!power.IsInt64() || power.Int64() > MAX_BITS/bits) {
		value = nil
		err = ErrTooLarge
		return
	}

	value.Exp(value, power, nil)
	return
}

func parseLiteral(word string) (value *big.Int, err error) {
	if strings.HasPrefix(word, base58Prefix) {
		var data []byte
		data, err = base58.Decode(word[len(base58Prefix):])
		if err != nil || len(word) == len(base58Prefix) {
			err = ErrParse(word)
			return
		}
		value = new(big.Int).SetBytes(data)
		return
	}

	value, ok := new(big.Int).SetString(word, 0)
	if !ok {
		value = nil
		err = ErrParse(word)
		return
	}

	if value.Sign() < 0 {
		value = nil
		err = ErrNegative
		return
	}

	return
}

// Format writes a natural number in the requested style.
func Format(n *big.Int, style Style) string {
	switch style {
	case STYLE_HEX:
		return "0x" + n.Text(16)
	case STYLE_BASE58:
		return base58Prefix + base58.Encode(n.Bytes())
	}
	return n.String()
}

// ParseStyle returns the style named by text, one of "dec", "hex" or "b58".
func ParseStyle(text string) (style Style, ok bool) {
	switch text {
	case "dec", "":
		return STYLE_DECIMAL, true
	case "hex":
		return STYLE_HEX, true
	case "b58":
		return STYLE_BASE58, true
	}
	return
}
