// Package expand implements shell-style brace expansion for the paths typed
// into the picker.
//
// A value such as "src/{api,web}/index.ts" fans out into one path per
// alternative. Numeric and single-letter sequences ("{1..3}", "{a..c}",
// "{01..10..2}") are supported, groups may nest, and several groups in one
// value produce their cartesian product. Anything that is not a well-formed
// group is kept literally, so Expand never fails.
package expand

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

const (
	// MaxSequence bounds the number of values a single sequence group may
	// produce. Larger sequences are kept literally.
	MaxSequence = 1000

	// MaxPaths bounds the number of paths one value may expand to. Values
	// expanding to more are kept literally.
	MaxPaths = 1000
)

var (
	numericSeq = regexp.MustCompile(`^(-?\d+)\.\.(-?\d+)(?:\.\.(-?\d+))?$`)
	letterSeq  = regexp.MustCompile(`^([a-zA-Z])\.\.([a-zA-Z])(?:\.\.(-?\d+))?$`)
)

// Expand returns every path described by raw, in order. A value without a
// brace group expands to itself, as does one expanding to more than
// MaxPaths paths.
func Expand(raw string) []string {
	out, ok := expand(raw)
	if !ok {
		return []string{raw}
	}
	return out
}

func expand(raw string) ([]string, bool) {
	start, end, parts := firstGroup(raw)
	if start < 0 {
		return []string{raw}, true
	}

	suffixes, ok := expand(raw[end+1:])
	if !ok {
		return nil, false
	}

	var heads []string
	for _, part := range parts {
		expanded, ok := expand(part)
		if !ok || len(heads)+len(expanded) > MaxPaths {
			return nil, false
		}
		heads = append(heads, expanded...)
	}
	if len(heads)*len(suffixes) > MaxPaths {
		return nil, false
	}

	prefix := raw[:start]
	out := make([]string, 0, len(heads)*len(suffixes))
	for _, head := range heads {
		for _, tail := range suffixes {
			out = append(out, prefix+head+tail)
		}
	}
	return out, true
}

// firstGroup locates the leftmost expandable group. It returns the byte
// offsets of its braces and the alternatives it stands for, or start -1.
func firstGroup(s string) (start, end int, parts []string) {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
			continue
		case '{':
		default:
			continue
		}

		j := matchingBrace(s, i)
		if j < 0 {
			continue
		}
		body := s[i+1 : j]
		if alts := splitTopLevel(body); len(alts) > 1 {
			return i, j, alts
		}
		if seq, ok := sequence(body); ok {
			return i, j, seq
		}
	}
	return -1, -1, nil
}

// matchingBrace returns the index of the brace closing the one at open, or
// -1 when it is unbalanced.
func matchingBrace(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// splitTopLevel splits body on commas that are not nested in another group.
func splitTopLevel(body string) []string {
	var parts []string
	depth, last := 0, 0
	for i := 0; i < len(body); i++ {
		switch body[i] {
		case '\\':
			i++
		case '{':
			depth++
		case '}':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, body[last:i])
				last = i + 1
			}
		}
	}
	return append(parts, body[last:])
}

func sequence(body string) ([]string, bool) {
	if m := numericSeq.FindStringSubmatch(body); m != nil {
		return numericSequence(m[1], m[2], m[3])
	}
	if m := letterSeq.FindStringSubmatch(body); m != nil {
		return letterSequence(m[1][0], m[2][0], m[3])
	}
	return nil, false
}

func numericSequence(from, to, step string) ([]string, bool) {
	a, errA := strconv.Atoi(from)
	b, errB := strconv.Atoi(to)
	if errA != nil || errB != nil {
		return nil, false
	}
	inc, ok := parseStep(step)
	if !ok {
		return nil, false
	}

	width := 0
	if padded(from) || padded(to) {
		width = max(len(from), len(to))
	}

	values := stepRange(a, b, inc)
	if values == nil {
		return nil, false
	}
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = pad(v, width)
	}
	return out, true
}

func letterSequence(from, to byte, step string) ([]string, bool) {
	inc, ok := parseStep(step)
	if !ok {
		return nil, false
	}
	values := stepRange(int(from), int(to), inc)
	if values == nil {
		return nil, false
	}
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(rune(v))
	}
	return out, true
}

func parseStep(step string) (int, bool) {
	if step == "" {
		return 1, true
	}
	n, err := strconv.Atoi(step)
	if err != nil || n == 0 || n == math.MinInt {
		return 0, false
	}
	if n < 0 {
		n = -n
	}
	return n, true
}

// stepRange walks from a towards b inclusive. It returns nil when the range
// exceeds MaxSequence. The distance is taken in uint64 so ranges spanning
// the whole int domain cannot wrap.
func stepRange(a, b, step int) []int {
	var span uint64
	if a <= b {
		span = uint64(b) - uint64(a)
	} else {
		span = uint64(a) - uint64(b)
	}
	if span/uint64(step) >= MaxSequence {
		return nil
	}
	count := span/uint64(step) + 1

	out := make([]int, count)
	for i := range out {
		if a <= b {
			out[i] = a + i*step
		} else {
			out[i] = a - i*step
		}
	}
	return out
}

func padded(n string) bool {
	n = strings.TrimPrefix(n, "-")
	return len(n) > 1 && n[0] == '0'
}

func pad(v, width int) string {
	if width == 0 {
		return strconv.Itoa(v)
	}
	digits := strconv.Itoa(v)
	if v < 0 {
		digits = digits[1:]
		width--
	}
	if n := width - len(digits); n > 0 {
		digits = strings.Repeat("0", n) + digits
	}
	if v < 0 {
		return "-" + digits
	}
	return digits
}
