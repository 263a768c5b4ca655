// Package bigmath is the arbitrary-precision scalar layer underneath the
// Taylor recurrences.
//
// Scalars are *big.Float values rounded to nearest-even. Exp, Log and Pow
// are delegated to github.com/ALTree/bigfloat; circular, hyperbolic and
// inverse functions are evaluated here by argument reduction and series.
// Every function returns a result with the precision of its argument.
package bigmath
