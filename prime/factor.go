package prime

import (
	"math/big"
	"sort"
	"strings"
)

var (
	bigOne = big.NewInt(1)
	bigTwo = big.NewInt(2)
)

// Factor is a single prime power of a factorization.
type Factor struct {
	Prime    *big.Int
	Exponent int
}

// Factorization is a prime power decomposition, primes strictly ascending.
type Factorization []Factor

// Factorize computes the prime factorization of n by trial division.
// The factorization of 1 is empty.
func Factorize(n *big.Int) (fact Factorization, err error) {
	if n.Sign() <= 0 {
		err = ErrNotPositive
		return
	}

	rem := new(big.Int).Set(n)

	if tz := rem.TrailingZeroBits(); tz > 0 {
		fact = append(fact, Factor{Prime: big.NewInt(2), Exponent: int(tz)})
		rem.Rsh(rem, tz)
	}

	candidate := big.NewInt(3)
	square := new(big.Int)
	for square.Mul(candidate, candidate).Cmp(rem) <= 0 {
		exponent := divideOut(rem, candidate)
		if exponent > 0 {
			fact = append(fact, Factor{Prime: new(big.Int).Set(candidate), Exponent: exponent})
		}
		candidate.Add(candidate, bigTwo)
	}

	if rem.Cmp(bigOne) > 0 {
		fact = append(fact, Factor{Prime: rem, Exponent: 1})
	}

	return
}

// divideOut removes every factor p from rem, returning the multiplicity.
// Division is by p, p^2, p^4, ... and then back down, so large exponents
// cost a logarithmic number of divisions.
func divideOut(rem, p *big.Int) (exponent int) {
	q, r := new(big.Int), new(big.Int)

	powers := []*big.Int{p}
	for {
		last := powers[len(powers)-1]
		q.QuoRem(rem, last, r)
		if r.Sign() != 0 {
			break
		}
		rem.Set(q)
		exponent += 1 << (len(powers) - 1)
		powers = append(powers, new(big.Int).Mul(last, last))
	}

	// What is left has multiplicity below 2^(len(powers)-1).
	for n := len(powers) - 2; n >= 0; n-- {
		q.QuoRem(rem, powers[n], r)
		if r.Sign() == 0 {
			rem.Set(q)
			exponent += 1 << n
		}
	}

	return
}

// Largest returns the largest prime factor, or nil for an empty factorization.
func (fact Factorization) Largest() *big.Int {
	if len(fact) == 0 {
		return nil
	}
	return fact[len(fact)-1].Prime
}

// Exponent returns the exponent of p, zero if p is not a factor.
func (fact Factorization) Exponent(p *big.Int) int {
	n := sort.Search(len(fact), func(i int) bool {
		return fact[i].Prime.Cmp(p) >= 0
	})
	if n < len(fact) && fact[n].Prime.Cmp(p) == 0 {
		return fact[n].Exponent
	}
	return 0
}

// Has returns true if p divides the factored number.
func (fact Factorization) Has(p *big.Int) bool {
	return fact.Exponent(p) > 0
}

// Product multiplies the factorization back into an integer.
func (fact Factorization) Product() *big.Int {
	product := big.NewInt(1)
	power := new(big.Int)
	for _, pf := range fact {
		power.Exp(pf.Prime, big.NewInt(int64(pf.Exponent)), nil)
		product.Mul(product, power)
	}
	return product
}

// String renders the factorization as "2^3 * 5".
func (fact Factorization) String() string {
	if len(fact) == 0 {
		return "1"
	}

	terms := make([]string, 0, len(fact))
	for _, pf := range fact {
		term := pf.Prime.String()
		if pf.Exponent != 1 {
			term += "^" + big.NewInt(int64(pf.Exponent)).String()
		}
		terms = append(terms, term)
	}

	return strings.Join(terms, " * ")
}
