// Package prime implements the exact integer number theory used to decode
// register machine programs: a sieve of Eratosthenes and trial division
// factorization over arbitrary-precision integers.
//
// No floating point value is ever used. Exponents returned by Factorize are
// bounded by the bit length of the factored number, so they always fit an int.
package prime
