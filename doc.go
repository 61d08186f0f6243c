// Package texcalc compiles LaTeX math markup into numeric functions.
//
// The accepted markup is a small subset of LaTeX: decimal numbers, \pi,
// single-letter variables, + and -, \cdot or \times for explicit
// multiplication, ^ for powers, \frac{num}{den}, \sqrt{x}, { } groups,
// \left( \right) parentheses, and \left| \right| absolute values. Terms
// written next to each other are multiplied, so "2ab" is the same as
// "2\cdot a\cdot b". An expression may begin with "y=" to name what it
// defines.
//
// Compile an expression once and call it for many inputs:
//
//	f, err := texcalc.Compile(`\frac{-b+\sqrt{b^2-4\cdot a\cdot c}}{2\cdot a}`)
//	...
//	f.Params()           // [a b c]
//	x, err := f.Call(2, -9, 3)
//
// Parameters are always in sorted order, regardless of where variables first
// appear. Evaluation follows IEEE float64 arithmetic and never fails for
// numeric reasons; division by zero or the square root of a negative number
// produce infinities or NaN.
package texcalc
