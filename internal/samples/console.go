// Package samples reproduces the java-compiler fixture programs (FizzBuzz and
// the prime printer) and the console surface they write through.
package samples

import (
	"bufio"
	"io"
	"strconv"
)

// Console mirrors the System.out print/println overloads the fixtures call.
// Writes are buffered. The first write error sticks and every later call
// becomes a no-op; Flush reports it.
type Console struct {
	w   *bufio.Writer
	err error
}

// NewConsole wraps w.
func NewConsole(w io.Writer) *Console {
	return &Console{w: bufio.NewWriter(w)}
}

// Print writes s with no line terminator.
func (c *Console) Print(s string) {
	if c.err != nil {
		return
	}
	_, c.err = c.w.WriteString(s)
}

// PrintInt writes the decimal form of n.
func (c *Console) PrintInt(n int) {
	c.Print(strconv.Itoa(n))
}

// PrintChar writes a single character.
func (c *Console) PrintChar(r rune) {
	if c.err != nil {
		return
	}
	_, c.err = c.w.WriteRune(r)
}

// Println terminates the current line.
func (c *Console) Println() {
	if c.err != nil {
		return
	}
	c.err = c.w.WriteByte('\n')
}

// PrintlnInt writes the decimal form of n and ends the line.
func (c *Console) PrintlnInt(n int) {
	c.PrintInt(n)
	c.Println()
}

// PrintlnChar writes a single character and ends the line.
func (c *Console) PrintlnChar(r rune) {
	c.PrintChar(r)
	c.Println()
}

// Flush pushes buffered output to the underlying writer and returns the
// first error seen by any write.
func (c *Console) Flush() error {
	if c.err != nil {
		return c.err
	}
	c.err = c.w.Flush()
	return c.err
}
