package samples

import (
	"bytes"
	"errors"
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lines(s string) []string {
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

func TestFizzBuzz_OneToFifteen(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FizzBuzz(&buf, 1, 15))

	want := []string{"1", "2", "Fizz", "4", "Buzz", "Fizz", "7", "8", "Fizz", "Buzz", "11", "Fizz", "13", "14", "FizzBuzz"}
	if diff := cmp.Diff(want, lines(buf.String())); diff != "" {
		t.Errorf("FizzBuzz(1, 15) mismatch (-want +got):\n%s", diff)
	}
}

func TestFizzBuzz_OneToHundred(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FizzBuzz(&buf, 1, 100))

	got := lines(buf.String())
	require.Len(t, got, 100)
	for i := 1; i <= 100; i++ {
		var want string
		switch {
		case i%3 == 0 && i%5 == 0:
			want = "FizzBuzz"
		case i%3 == 0:
			want = "Fizz"
		case i%5 == 0:
			want = "Buzz"
		default:
			want = strconv.Itoa(i)
		}
		assert.Equal(t, want, got[i-1], "line for %d", i)
		assert.Equal(t, want, FizzBuzzLine(i), "FizzBuzzLine(%d)", i)
	}
}

func TestFizzBuzz_InvertedRange(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FizzBuzz(&buf, 10, 1))
	assert.Empty(t, buf.String())
}

func TestFizzBuzz_NonPositive(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FizzBuzz(&buf, -3, 0))
	assert.Equal(t, []string{"Fizz", "-2", "-1", "FizzBuzz"}, lines(buf.String()))
}

func TestFizzBuzz_EndAtMaxInt(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FizzBuzz(&buf, math.MaxInt-1, math.MaxInt))
	assert.Len(t, lines(buf.String()), 2)
}

func TestPrintPrimes_OneToTen(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintPrimes(&buf, 1, 10, ModeTrial))
	assert.Equal(t, "Primes from 1 to 10:\n2\n3\n5\n7\n", buf.String())
}

func TestPrintPrimes_ParityReproducesFixture(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintPrimes(&buf, 1, 10, ModeParity))
	// The fixture's divisor range for 4 is [2, 2), so 4 is reported.
	assert.Equal(t, "Primes from 1 to 10:\n2\n3\n4\n5\n7\n", buf.String())
}

func TestPrintPrimes_HeaderIdenticalAcrossModes(t *testing.T) {
	var trial, parity bytes.Buffer
	require.NoError(t, PrintPrimes(&trial, -7, -9, ModeTrial))
	require.NoError(t, PrintPrimes(&parity, -7, -9, ModeParity))
	assert.Equal(t, "Primes from -7 to -9:\n", trial.String())
	assert.Equal(t, trial.String(), parity.String())
}

func TestIsPrime_OneToThirty(t *testing.T) {
	primes := map[int]bool{2: true, 3: true, 5: true, 7: true, 11: true, 13: true, 17: true, 19: true, 23: true, 29: true}
	for x := 1; x <= 30; x++ {
		assert.Equal(t, primes[x], IsPrime(x), "IsPrime(%d)", x)
	}
}

func TestIsPrimeParity_AgreesWithTrialExceptFour(t *testing.T) {
	for x := -5; x <= 500; x++ {
		if x == 4 {
			assert.True(t, IsPrimeParity(x))
			assert.False(t, IsPrime(x))
			continue
		}
		assert.Equal(t, IsPrime(x), IsPrimeParity(x), "x=%d", x)
	}
}

func TestIsDivisible(t *testing.T) {
	tests := []struct {
		dividend, divisor int
		want              bool
	}{
		{10, 2, true},
		{10, 3, false},
		{7, 7, true},
		{3, 7, false},
		{0, 0, true},
		{5, 0, false},
		{-4, -2, false},
		{math.MaxInt, math.MaxInt - 1, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsDivisible(tt.dividend, tt.divisor), "IsDivisible(%d, %d)", tt.dividend, tt.divisor)
	}
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, ModeTrial, m)

	m, err = ParseMode(" Parity ")
	require.NoError(t, err)
	assert.Equal(t, ModeParity, m)

	_, err = ParseMode("sieve")
	assert.True(t, errors.Is(err, ErrInvalidMode))
}

func TestRoutines_Idempotent(t *testing.T) {
	run := func() string {
		var buf bytes.Buffer
		require.NoError(t, FizzBuzz(&buf, 1, 100))
		require.NoError(t, PrintPrimes(&buf, 1, 120, ModeParity))
		return buf.String()
	}
	assert.Equal(t, run(), run())
}

type failingWriter struct{ n int }

func (f *failingWriter) Write(p []byte) (int, error) {
	f.n++
	return 0, errors.New("disk full")
}

func TestConsole_StickyError(t *testing.T) {
	fw := &failingWriter{}
	err := FizzBuzz(fw, 1, 10000)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Equal(t, 1, fw.n)
}

func TestConsole_Overloads(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf)
	c.Print("a")
	c.PrintChar('b')
	c.PrintInt(-3)
	c.Println()
	c.PrintlnInt(42)
	c.PrintlnChar('z')
	require.NoError(t, c.Flush())
	assert.Equal(t, "ab-3\n42\nz\n", buf.String())
}
