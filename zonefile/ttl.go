package zonefile

// unitSeconds maps a TTL lexer unit byte (case folded to lower) to its
// multiplier, matching the original strtottl()'s s/m/h/d/w groups.
var unitSeconds = map[byte]int64{
	's': 1,
	'm': 60,
	'h': 60 * 60,
	'd': 60 * 60 * 24,
	'w': 60 * 60 * 24 * 7,
}

// ParseTTL parses a "1w2d3h"-style duration string into seconds,
// matching original_source/zparser.c's strtottl byte-for-byte: a leading
// sign is honored once, each [digits][unit] group contributes
// digits*unit to the running total and then resets, a bare trailing
// numeric run with no unit is added as seconds, and the first character
// that isn't a digit, unit, sign, space or tab ends the scan. end is the
// byte offset of that first unrecognized character (or len(s) if the
// whole string was consumed). Overflow of the accumulated seconds value
// is not detected here — see SPEC_FULL.md §9 for where it is.
func ParseTTL(s string) (seconds int64, end int) {
	var (
		sign    int64 = 1
		signSet bool
		group   int64
		total   int64
	)

	i := 0
	for ; i < len(s); i++ {
		c := s[i]
		switch {
		case c == ' ' || c == '\t':
			continue
		case c == '-':
			if signSet {
				total += group
				return sign * total, i
			}
			sign, signSet = -1, true
		case c == '+':
			if signSet {
				total += group
				return sign * total, i
			}
			sign, signSet = 1, true
		case c >= '0' && c <= '9':
			group = group*10 + int64(c-'0')
		case isTTLUnit(c):
			total += group * unitSeconds[lowerByte(c)]
			group = 0
		default:
			total += group
			return sign * total, i
		}
	}
	total += group
	return sign * total, i
}

func isTTLUnit(c byte) bool {
	_, ok := unitSeconds[lowerByte(c)]
	return ok
}

func lowerByte(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}
