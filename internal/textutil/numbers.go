package textutil

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// ParseInt reads a leading base-10 integer from value. Leading whitespace and
// an optional sign are accepted; trailing characters after the digits are
// ignored ("12 eps" parses as 12). It returns nil when no digits are found or
// when the digits overflow int; such counts are treated as missing.
func ParseInt(value string) *int {
	s := strings.TrimLeftFunc(value, unicode.IsSpace)
	end := scanSign(s, 0)
	digitsEnd := scanDigits(s, end)
	if digitsEnd == end {
		return nil
	}
	n, err := strconv.Atoi(s[:digitsEnd])
	if err != nil {
		return nil
	}
	return &n
}

// ParseFloat reads a leading decimal number from value, ignoring trailing
// text ("7.25/10" parses as 7.25). It returns nil for empty input, input
// without leading digits, NaN, or values that overflow float64.
func ParseFloat(value string) *float64 {
	s := strings.TrimSpace(value)
	end := scanSign(s, 0)
	intEnd := scanDigits(s, end)
	digits := intEnd - end
	end = intEnd
	if end < len(s) && s[end] == '.' {
		fracEnd := scanDigits(s, end+1)
		digits += fracEnd - end - 1
		end = fracEnd
	}
	if digits == 0 {
		return nil
	}
	if end < len(s) && (s[end] == 'e' || s[end] == 'E') {
		expStart := scanSign(s, end+1)
		if expEnd := scanDigits(s, expStart); expEnd > expStart {
			end = expEnd
		}
	}
	n, err := strconv.ParseFloat(s[:end], 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return nil
	}
	return &n
}

func scanSign(s string, i int) int {
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		return i + 1
	}
	return i
}

func scanDigits(s string, i int) int {
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return i
}
