// Package urm decodes, validates and assembles programs for an unlimited
// register machine (URM) whose programs and inputs are natural numbers.
//
// A program number n = 2^c1 * 3^c2 * 5^c3 * ... assigns the exponent of the
// i-th prime to state i. Each exponent c is itself an instruction code:
//
//	2^register * 5^next                 increment register, goto next
//	2^register * 3 * 5^nonzero * 7^zero decrement register or branch on zero
//
// State 0 is the halt state. The number of states is the index of the
// largest prime factor of n; primes below it that do not divide n name
// invalid states, which is only an error when another state refers to them.
//
// A register tuple m = 3^v1 * 5^v2 * 7^v3 * ... assigns the exponent of the
// i-th odd prime to register i.
package urm
