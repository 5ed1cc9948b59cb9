package samples

import (
	"io"
	"strconv"
)

// FizzBuzz writes one line per integer in [start, end]. An inverted range
// writes nothing.
func FizzBuzz(w io.Writer, start, end int) error {
	c := NewConsole(w)
	for i := start; i <= end; i++ {
		if i%3 == 0 {
			c.Print("Fizz")
		}
		if i%5 == 0 {
			c.Print("Buzz")
		}
		if i%3 != 0 && i%5 != 0 {
			c.PrintInt(i)
		}
		c.Println()
		// end may be math.MaxInt
		if i == end {
			break
		}
	}
	return c.Flush()
}

// FizzBuzzLine returns the text FizzBuzz prints for i, without the newline.
func FizzBuzzLine(i int) string {
	switch {
	case i%15 == 0:
		return "FizzBuzz"
	case i%3 == 0:
		return "Fizz"
	case i%5 == 0:
		return "Buzz"
	}
	return strconv.Itoa(i)
}
