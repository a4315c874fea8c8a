// Package params validates scrypt cost-parameter objects.
//
// A candidate arrives from the host as a loosely-typed map and must carry
// three numeric fields N (work factor), r (block size) and p
// (parallelization). Validation checks shape and type only; range checking
// (power-of-two N, the N*r*p memory bound) is deliberately left to the
// native routine, which reports its own status codes for excessive
// parameters.
package params
