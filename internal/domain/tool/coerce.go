package tool

import "strconv"

// CoerceParams maps raw form strings to typed values before dispatch.
// Policy, per entry, in order:
//
//	(a) empty string      → entry dropped (the tool sees no value at all)
//	(b) only ASCII digits → int
//	(c) exactly one '.' and digits everywhere else → float64
//	(d) anything else     → the string unchanged
//
// Deliberately lossy and locale-naive: no negative numbers, no exponent
// notation, no locale decimal separators. Downstream tools in the existing
// demo flows expect exactly this behavior, so do not "fix" it here.
func CoerceParams(raw map[string]string) map[string]any {
	out := make(map[string]any, len(raw))
	for key, val := range raw {
		if val == "" {
			continue
		}
		if isDigits(val) {
			// Values beyond int64 stay strings; far outside demo territory.
			if n, err := strconv.ParseInt(val, 10, 64); err == nil {
				out[key] = n
				continue
			}
		}
		if f, ok := parseSimpleFloat(val); ok {
			out[key] = f
			continue
		}
		out[key] = val
	}
	return out
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// parseSimpleFloat accepts strings with exactly one '.' whose remaining
// characters are all digits ("3.0", "5.", ".5").
func parseSimpleFloat(s string) (float64, bool) {
	dots := 0
	digits := 0
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] == '.':
			dots++
		case s[i] >= '0' && s[i] <= '9':
			digits++
		default:
			return 0, false
		}
	}
	if dots != 1 || digits == 0 {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
