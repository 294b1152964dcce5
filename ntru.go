/*
Package ntru is a pure Go implementation of the NTRUEncrypt public-key encryption scheme
(EESS #1 / IEEE 1363.1) with SVES padding, covering the standard ternary and product-form
parameter sets.

The module is organized as follows:

  - ring: arithmetic in Z_q[x]/(x^N - 1), sparse ternary and product-form polynomials,
    inversion modulo 2, 3 and q, and the packed encoding of polynomials.
  - digest: the hash functions selectable by parameter sets.
  - random: randomness providers, from the operating system to seeded deterministic generators.
  - ntru: parameters, key generation, key encoding, encryption and decryption.
  - cmd/ntru: a command line interface to the above.
*/
package ntru
