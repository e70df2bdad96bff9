package textnorm

import "strconv"

// cardinal word tables cover everything a spoken-script digit run plausibly
// needs (years, slide numbers, counts); anything astronomically large falls
// back to per-digit spelling rather than failing.
var ones = [...]string{
	"zero", "one", "two", "three", "four", "five", "six", "seven", "eight", "nine",
	"ten", "eleven", "twelve", "thirteen", "fourteen", "fifteen",
	"sixteen", "seventeen", "eighteen", "nineteen",
}

var tens = [...]string{
	"", "", "twenty", "thirty", "forty", "fifty", "sixty", "seventy", "eighty", "ninety",
}

var scales = [...]string{"", "thousand", "million", "billion", "trillion", "quadrillion", "quintillion"}

// cardinalWords spells out a non-negative integer given as a decimal digit
// string. Hyphens that would normally join compound numbers ("twenty-one")
// are rendered as spaces directly, since the caller always collapses them
// afterward anyway.
func cardinalWords(digits string) string {
	n, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		return spellDigitwise(digits)
	}
	if n == 0 {
		return "zero"
	}

	groups := make([]uint64, 0, len(scales))
	for n > 0 {
		groups = append(groups, n%1000)
		n /= 1000
	}

	var words []string
	for i := len(groups) - 1; i >= 0; i-- {
		g := groups[i]
		if g == 0 {
			continue
		}
		words = append(words, spellUnder1000(g)...)
		if i > 0 && i < len(scales) {
			words = append(words, scales[i])
		}
	}
	if len(words) == 0 {
		return "zero"
	}
	return joinWords(words)
}

func spellUnder1000(n uint64) []string {
	var words []string
	if n >= 100 {
		words = append(words, ones[n/100], "hundred")
		n %= 100
	}
	if n >= 20 {
		words = append(words, tens[n/10])
		if n%10 != 0 {
			words = append(words, ones[n%10])
		}
	} else if n > 0 {
		words = append(words, ones[n])
	}
	return words
}

func joinWords(words []string) string {
	out := words[0]
	for _, w := range words[1:] {
		out += " " + w
	}
	return out
}

// spellDigitwise handles digit runs too large for uint64 (pathological
// input) by spelling each digit individually rather than erroring.
func spellDigitwise(digits string) string {
	words := make([]string, 0, len(digits))
	for _, r := range digits {
		d := int(r - '0')
		if d < 0 || d > 9 {
			continue
		}
		words = append(words, ones[d])
	}
	if len(words) == 0 {
		return ""
	}
	return joinWords(words)
}
