package samples

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
)

// Mode selects the primality strategy used by PrintPrimes.
type Mode string

const (
	// ModeTrial is trial division up to the square root. Correct for every x.
	ModeTrial Mode = "trial"
	// ModeParity replays the fixture's own loop shape: trial divisors in [2, x>>1)
	// with the addition-based divisibility test. It classifies 4 as prime,
	// exactly as the fixture does.
	ModeParity Mode = "parity"
)

// ErrInvalidMode is returned by ParseMode for unknown strategy names.
var ErrInvalidMode = errors.New("invalid primes mode")

// Modes lists the accepted strategies.
var Modes = []Mode{ModeTrial, ModeParity}

// ParseMode maps a name to a Mode. The empty string selects ModeTrial.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeTrial:
		return ModeTrial, nil
	case ModeParity:
		return ModeParity, nil
	}
	return "", fmt.Errorf("%w: %q (valid: %v)", ErrInvalidMode, s, Modes)
}

// PrimesHeader is the first line PrintPrimes writes.
func PrimesHeader(start, end int) string {
	return fmt.Sprintf("Primes from %d to %d:", start, end)
}

// PrintPrimes writes the header and then every prime in [start, end], one
// per line. An inverted range writes the header only.
func PrintPrimes(w io.Writer, start, end int, mode Mode) error {
	isPrime := IsPrime
	if mode == ModeParity {
		isPrime = IsPrimeParity
	}

	c := NewConsole(w)
	if mode == ModeParity {
		writeHeaderByChar(c, start, end)
	} else {
		c.Print(PrimesHeader(start, end))
		c.Println()
	}

	for i := start; i <= end; i++ {
		if isPrime(i) {
			c.PrintlnInt(i)
		}
		if i == end {
			break
		}
	}
	return c.Flush()
}

// writeHeaderByChar emits the header through the char overload the way the
// fixture does, one call per character.
func writeHeaderByChar(c *Console, start, end int) {
	for _, r := range "Primes from " {
		c.PrintChar(r)
	}
	c.PrintInt(start)
	for _, r := range " to " {
		c.PrintChar(r)
	}
	c.PrintInt(end)
	c.PrintlnChar(':')
}

// IsPrime reports whether x is prime using trial division.
func IsPrime(x int) bool {
	if x < 2 {
		return false
	}
	for i := 2; i <= x/i; i++ {
		if x%i == 0 {
			return false
		}
	}
	return true
}

// IsPrimeParity is the fixture's primality check, loop bound included.
func IsPrimeParity(x int) bool {
	for i := 2; i < x>>1; i++ {
		if IsDivisible(x, i) {
			return false
		}
	}
	return x >= 2
}

// IsDivisible reports whether divisor evenly divides dividend by stepping
// from divisor in increments of divisor until reaching or passing dividend.
// A non-positive divisor only divides itself.
func IsDivisible(dividend, divisor int) bool {
	if divisor <= 0 {
		return dividend == divisor
	}
	i := divisor
	for i < dividend {
		if i > math.MaxInt-divisor {
			return false
		}
		i += divisor
	}
	return i == dividend
}
