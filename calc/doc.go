// Package calc implements the dimension expressions used in bamboo
// configuration files.
//
// A dimension expression is a number with an optional unit, followed by any
// number of colon-separated steps that each apply one operator to the running
// result: "100%:-50px:*2" is "take all of the basis, subtract 50 pixels, then
// double it". Steps apply strictly left to right; there are no brackets and no
// precedence. Percentages are always taken of the basis, even in later steps.
//
// Parse an expression once and evaluate it for as many bases as you like. A
// Calculation is never modified after parsing, so it is safe to share between
// goroutines.
//
package calc
