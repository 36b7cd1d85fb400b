package zonefile

import (
	"encoding/base64"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// DecodeBase64Tokens decodes each token independently with standard
// base64 and concatenates the results, matching original_source/
// zparser.c's zparser_conv_b64, which calls __b64_pton once per
// remaining token and appends into one buffer. The result is bounded to
// MAXRDATAELEMSIZE.
func DecodeBase64Tokens(tokens []string) ([]byte, error) {
	var out []byte
	for _, tok := range tokens {
		decoded, err := base64.StdEncoding.DecodeString(tok)
		if err != nil {
			return nil, errors.Wrap(err, "invalid base64")
		}
		out = append(out, decoded...)
		if len(out) > MAXRDATAELEMSIZE {
			return nil, errors.Errorf("base64 field exceeds %d bytes", MAXRDATAELEMSIZE)
		}
	}
	return out, nil
}

// LOCRDLEN is the fixed wire length of LOC RDATA, RFC 1876 §3.
const LOCRDLEN = 16

// EncodeLOC re-joins the remaining tokens with single spaces (matching
// zrdata_loc's re-concatenation before loc_aton) and parses RFC 1876 §3
// textual LOC syntax:
//
//	d1 [m1 [s1]] {"N"|"S"} d2 [m2 [s2]] {"E"|"W"} alt["m"] [siz["m"] [hp["m"] [vp["m"]]]]
//
// into the fixed 16-byte wire layout: VERSION, SIZE, HORIZ PRE, VERT PRE,
// LATITUDE, LONGITUDE, ALTITUDE.
func EncodeLOC(tokens []string) ([]byte, error) {
	joined := strings.Join(tokens, " ")
	if len(joined) > ZBUFSIZE {
		return nil, errors.Errorf("LOC record exceeds %d bytes", ZBUFSIZE)
	}
	fields := strings.Fields(joined)

	lat, fields, err := parseLOCAngle(fields, 'N', 'S')
	if err != nil {
		return nil, errors.Wrap(err, "LOC latitude")
	}
	lon, fields, err := parseLOCAngle(fields, 'E', 'W')
	if err != nil {
		return nil, errors.Wrap(err, "LOC longitude")
	}
	if len(fields) == 0 {
		return nil, errors.New("LOC record missing altitude")
	}
	alt, err := parseLOCAltitude(fields[0])
	if err != nil {
		return nil, errors.Wrap(err, "LOC altitude")
	}
	fields = fields[1:]

	size := byte(0x12)    // default 1m
	horizPre := byte(0x16) // default 10000m
	vertPre := byte(0x13)  // default 10m
	if len(fields) > 0 {
		if size, err = parseLOCPrecision(fields[0]); err != nil {
			return nil, errors.Wrap(err, "LOC size")
		}
		fields = fields[1:]
	}
	if len(fields) > 0 {
		if horizPre, err = parseLOCPrecision(fields[0]); err != nil {
			return nil, errors.Wrap(err, "LOC horizontal precision")
		}
		fields = fields[1:]
	}
	if len(fields) > 0 {
		if vertPre, err = parseLOCPrecision(fields[0]); err != nil {
			return nil, errors.Wrap(err, "LOC vertical precision")
		}
		fields = fields[1:]
	}
	if len(fields) > 0 {
		return nil, errors.Errorf("unexpected trailing LOC tokens: %v", fields)
	}

	out := make([]byte, LOCRDLEN)
	out[0] = 0 // VERSION
	out[1] = size
	out[2] = horizPre
	out[3] = vertPre
	putUint32(out[4:8], lat)
	putUint32(out[8:12], lon)
	putUint32(out[12:16], alt)
	return out, nil
}

// parseLOCAngle consumes "d [m [s]] {pos|neg}" from the front of fields
// and returns the RFC 1876 encoded 32-bit value (2^31 + milliarcseconds,
// negative for the "neg" hemisphere letter). The hemisphere letter may
// either be its own token ("54 N") or suffixed directly onto the last
// numeric component ("54N"), both of which appear in real master files.
func parseLOCAngle(fields []string, pos, neg byte) (uint32, []string, error) {
	var deg, min int
	var sec float64
	var hemi byte

	n := 0
	vals := [3]float64{}
	for n < 3 && n < len(fields) {
		f := fields[n]
		last := f[len(f)-1]
		isHemiByte := (last|0x20) == (pos|0x20) || (last|0x20) == (neg|0x20)
		if len(f) == 1 && isHemiByte {
			// standalone hemisphere token ("54 N"): stop consuming
			// numerics, leave it for the check below.
			break
		}
		if isHemiByte {
			// hemisphere suffixed onto the last numeric component ("54N").
			hemi = last
			v, err := strconv.ParseFloat(f[:len(f)-1], 64)
			if err != nil {
				return 0, nil, errors.Errorf("invalid angle component %q", f)
			}
			vals[n] = v
			n++
			break
		}
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return 0, nil, errors.Errorf("invalid angle component %q", f)
		}
		vals[n] = v
		n++
	}
	if hemi == 0 {
		if n >= len(fields) {
			return 0, nil, errors.New("missing hemisphere letter")
		}
		next := fields[n]
		if len(next) != 1 || ((next[0]|0x20) != (pos|0x20) && (next[0]|0x20) != (neg|0x20)) {
			return 0, nil, errors.Errorf("expected hemisphere letter, got %q", next)
		}
		hemi = next[0]
		n++
	}
	deg = int(vals[0])
	if n >= 2 {
		min = int(vals[1])
	}
	if n >= 3 {
		sec = vals[2]
	}

	milliarcsec := (int64(deg)*3600+int64(min)*60)*1000 + int64(sec*1000)
	const base = uint32(1) << 31
	if (hemi | 0x20) == (neg | 0x20) {
		return base - uint32(milliarcsec), fields[n:], nil
	}
	return base + uint32(milliarcsec), fields[n:], nil
}

func parseLOCAltitude(tok string) (uint32, error) {
	tok = strings.TrimSuffix(tok, "m")
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, errors.Errorf("invalid altitude %q", tok)
	}
	// RFC 1876 §3: altitude base is -100000.00m, resolution 1cm.
	cm := int64(v*100) + 10000000
	if cm < 0 {
		return 0, errors.New("altitude out of range")
	}
	return uint32(cm), nil
}

// parseLOCPrecision encodes a size/precision token ("10000.00m", "2m",
// "0.1m") into the mantissa<<4|exponent byte RFC 1876 §3 uses for SIZE,
// HORIZ PRE, and VERT PRE, representing mantissa * 10^exponent
// centimeters.
func parseLOCPrecision(tok string) (byte, error) {
	tok = strings.TrimSuffix(tok, "m")
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil || v < 0 {
		return 0, errors.Errorf("invalid precision %q", tok)
	}
	cm := uint64(v*100 + 0.5)
	exponent := 0
	for cm >= 10 && exponent < 9 {
		cm /= 10
		exponent++
	}
	if cm > 9 {
		cm = 9
	}
	return byte(cm<<4) | byte(exponent), nil
}

func putUint32(b []byte, v uint32) {
	b[0] = byte(v >> 24)
	b[1] = byte(v >> 16)
	b[2] = byte(v >> 8)
	b[3] = byte(v)
}
