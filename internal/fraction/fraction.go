package fraction

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrZeroDenominator is returned when a fraction would be built with a zero
// denominator. Operations on an invalid Fraction panic with this error.
var ErrZeroDenominator = errors.New("fraction: zero denominator")

// Fraction is an immutable numerator/denominator pair.
// It is not kept in lowest terms; call Simplify for that.
//
// The zero value has a zero denominator and is invalid. Build fractions
// with New or MustNew.
type Fraction struct {
	num int64
	den int64
}

// New returns num/den with the sign carried on the numerator.
func New(num, den int64) (Fraction, error) {
	if den == 0 {
		return Fraction{}, ErrZeroDenominator
	}
	if den < 0 {
		num, den = -num, -den
	}
	return Fraction{num: num, den: den}, nil
}

// MustNew is like New but panics on a zero denominator.
func MustNew(num, den int64) Fraction {
	f, err := New(num, den)
	if err != nil {
		panic(err)
	}
	return f
}

// Num returns the numerator.
func (f Fraction) Num() int64 { return f.num }

// Den returns the denominator.
func (f Fraction) Den() int64 { return f.den }

// IsValid reports whether f has a non-zero denominator.
func (f Fraction) IsValid() bool { return f.den != 0 }

// String renders f as "num/den" with no mixed-number or sign rewriting.
func (f Fraction) String() string {
	return fmt.Sprintf("%d/%d", f.num, f.den)
}

// Simplify returns f in lowest terms. A zero numerator gives 0/1.
func (f Fraction) Simplify() Fraction {
	f.mustValid()
	g := GCD(abs(f.num), abs(f.den))
	return Fraction{num: f.num / g, den: f.den / g}
}

// Add returns f + g in lowest terms.
func (f Fraction) Add(g Fraction) Fraction {
	f.mustValid()
	g.mustValid()
	return Fraction{
		num: f.num*g.den + g.num*f.den,
		den: f.den * g.den,
	}.Simplify()
}

// Sub returns f - g in lowest terms.
func (f Fraction) Sub(g Fraction) Fraction {
	f.mustValid()
	g.mustValid()
	return Fraction{
		num: f.num*g.den - g.num*f.den,
		den: f.den * g.den,
	}.Simplify()
}

// Equals simplifies both sides and compares the parts exactly.
func (f Fraction) Equals(g Fraction) bool {
	a, b := f.Simplify(), g.Simplify()
	return a.num == b.num && a.den == b.den
}

// IsLowestTerms reports whether num and den share no factor other than 1.
func (f Fraction) IsLowestTerms() bool {
	f.mustValid()
	return GCD(abs(f.num), abs(f.den)) == 1
}

func (f Fraction) mustValid() {
	if f.den == 0 {
		panic(ErrZeroDenominator)
	}
}

// GCD returns the greatest common divisor of a and b.
// Both a and b must be non-negative. GCD(a, 0) == a.
func GCD(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// Simplify returns f in lowest terms.
func Simplify(f Fraction) Fraction { return f.Simplify() }

// Add returns f1 + f2 in lowest terms.
func Add(f1, f2 Fraction) Fraction { return f1.Add(f2) }

// Subtract returns f1 - f2 in lowest terms.
func Subtract(f1, f2 Fraction) Fraction { return f1.Sub(f2) }

// Equals reports whether f1 and f2 are the same rational number.
func Equals(f1, f2 Fraction) bool { return f1.Equals(f2) }

// Format renders f as "num/den".
func Format(f Fraction) string { return f.String() }

// Parse reads "a/b" (or a bare integer "a", read as a/1).
// Surrounding whitespace is ignored.
func Parse(s string) (Fraction, error) {
	s = strings.TrimSpace(s)
	numStr, denStr, found := strings.Cut(s, "/")
	if !found {
		denStr = "1"
	}
	num, err := strconv.ParseInt(strings.TrimSpace(numStr), 10, 64)
	if err != nil {
		return Fraction{}, fmt.Errorf("invalid numerator in %q: %w", s, err)
	}
	den, err := strconv.ParseInt(strings.TrimSpace(denStr), 10, 64)
	if err != nil {
		return Fraction{}, fmt.Errorf("invalid denominator in %q: %w", s, err)
	}
	return New(num, den)
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
