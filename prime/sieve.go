package prime

import (
	"math/big"
)

const (
	DefaultSieveLimit = 1 << 26 // Largest bound a zero Sieve will materialize.
)

// Sieve generates primes with the sieve of Eratosthenes.
type Sieve struct {
	Limit int // Largest bound accepted; zero selects DefaultSieveLimit.
}

func (sv Sieve) limit() int {
	if sv.Limit <= 0 {
		return DefaultSieveLimit
	}
	return sv.Limit
}

// PrimesUpTo returns the ascending primes less than or equal to bound.
func (sv Sieve) PrimesUpTo(bound *big.Int) (primes []*big.Int, err error) {
	if bound.Cmp(big.NewInt(2)) < 0 {
		return
	}

	if !bound.IsInt64() || bound.Int64() > int64(sv.limit()) {
		err = &ErrSieveBound{Bound: new(big.Int).Set(bound), Limit: sv.limit()}
		return
	}

	for _, p := range sieve(int(bound.Int64())) {
		primes = append(primes, big.NewInt(int64(p)))
	}

	return
}

// First returns the first count primes in ascending order.
func (sv Sieve) First(count int) (primes []*big.Int, err error) {
	if count <= 0 {
		return
	}

	// Grow the bound until enough primes are covered.
	bound := 16
	for {
		if bound > sv.limit() {
			bound = sv.limit()
		}
		all := sieve(bound)
		if len(all) >= count {
			for _, p := range all[:count] {
				primes = append(primes, big.NewInt(int64(p)))
			}
			return
		}
		if bound == sv.limit() {
			err = &ErrSieveBound{Bound: big.NewInt(int64(bound) + 1), Limit: sv.limit()}
			return
		}
		bound *= 2
	}
}

// sieve returns the primes <= last. Only odd candidates are examined.
func sieve(last int) (primes []int) {
	if last < 2 {
		return
	}

	composite := make([]bool, last+1)
	primes = append(primes, 2)

	for i := 3; i <= last; i += 2 {
		if composite[i] {
			continue
		}
		primes = append(primes, i)
		if i <= last/i {
			for j := i * i; j <= last; j += i << 1 {
				composite[j] = true
			}
		}
	}

	return
}
