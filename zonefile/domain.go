package zonefile

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/net/idna"
)

// RootName is the wire-format encoding of the DNS root, a single zero
// length octet.
var RootName = []byte{0}

// idnaProfile mirrors the lenient ToASCII conversion zone tooling expects:
// it accepts names that are already ASCII unchanged and only transcodes
// genuinely non-ASCII labels, rather than rejecting punctuation that's
// legal in a master file but not in a strict IDNA2008 profile.
var idnaProfile = idna.New(
	idna.MapForLookup(),
	idna.Transitional(true),
)

// EncodeName converts a textual domain name, relative to origin (itself
// already wire-format bytes), into canonical wire-format: a sequence of
// length-prefixed labels terminated by a zero length octet.
//
// "@" denotes the origin itself. A name ending in an unescaped "." is
// taken as fully qualified and origin is ignored. \DDD and \X escapes
// (RFC 1035 §5.1) are unescaped before length counting. Non-ASCII labels
// are converted with IDNA ToASCII before encoding.
func EncodeName(text string, origin []byte) ([]byte, error) {
	if text == "@" {
		if origin == nil {
			return nil, errors.New("no origin set for \"@\"")
		}
		return origin, nil
	}

	labelsText, fqdn, err := splitLabels(text)
	if err != nil {
		return nil, err
	}

	var out []byte
	for _, raw := range labelsText {
		label, err := unescapeLabel(raw)
		if err != nil {
			return nil, err
		}
		if requiresIDNA(label) {
			ascii, err := idnaProfile.ToASCII(label)
			if err != nil {
				return nil, errors.Wrapf(err, "idna conversion of label %q", label)
			}
			label = ascii
		}
		if len(label) > MaxLabelLen {
			return nil, errors.Errorf("label %q exceeds %d bytes", label, MaxLabelLen)
		}
		out = append(out, byte(len(label)))
		out = append(out, label...)
	}

	if !fqdn {
		if origin == nil {
			return nil, errors.New("relative name with no origin set")
		}
		out = append(out, origin...)
	} else {
		out = append(out, 0)
	}

	if len(out) > MaxDNameLen {
		return nil, errors.Errorf("domain name exceeds %d bytes", MaxDNameLen)
	}
	return out, nil
}

func requiresIDNA(label string) bool {
	for i := 0; i < len(label); i++ {
		if label[i] >= 0x80 {
			return true
		}
	}
	return false
}

// splitLabels splits text on unescaped '.', reporting whether the name
// was fully qualified (ended in an unescaped '.'). The root name "." is
// reported as fully qualified with no labels.
func splitLabels(text string) (labels []string, fqdn bool, err error) {
	if text == "" {
		return nil, false, errors.New("empty domain name")
	}
	if text == "." {
		return nil, true, nil
	}

	var cur strings.Builder
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case c == '\\' && i+1 < len(text):
			cur.WriteByte(c)
			i++
			cur.WriteByte(text[i])
			if text[i] >= '0' && text[i] <= '9' {
				// \DDD: copy the next two digits verbatim too.
				for j := 0; j < 2 && i+1 < len(text) && text[i+1] >= '0' && text[i+1] <= '9'; j++ {
					i++
					cur.WriteByte(text[i])
				}
			}
		case c == '.':
			labels = append(labels, cur.String())
			cur.Reset()
			if i == len(text)-1 {
				fqdn = true
			}
		default:
			cur.WriteByte(c)
		}
	}
	if !fqdn {
		labels = append(labels, cur.String())
	}
	return labels, fqdn, nil
}

// unescapeLabel resolves RFC 1035 §5.1 escapes within a single label:
// \DDD is a literal byte given in decimal, \X (X not a digit) is the
// literal byte X.
func unescapeLabel(raw string) (string, error) {
	if !strings.ContainsRune(raw, '\\') {
		return raw, nil
	}
	var out strings.Builder
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c != '\\' {
			out.WriteByte(c)
			continue
		}
		if i+1 >= len(raw) {
			return "", errors.New("trailing backslash in domain name")
		}
		i++
		if raw[i] >= '0' && raw[i] <= '9' {
			if i+2 >= len(raw) {
				return "", errors.New("incomplete \\DDD escape in domain name")
			}
			n, err := strconv.Atoi(raw[i : i+3])
			if err != nil || n > 255 {
				return "", errors.Errorf("invalid \\DDD escape %q", raw[i:i+3])
			}
			out.WriteByte(byte(n))
			i += 2
			continue
		}
		out.WriteByte(raw[i])
	}
	return out.String(), nil
}

// DecodeName reads one wire-format domain name starting at offset off in
// msg and returns its dotted-decimal text form (no name compression is
// supported — this parser only ever produces uncompressed names itself,
// but mkarpa/mkkea read back names it just produced).
func DecodeName(msg []byte, off int) (string, int, error) {
	var labels []string
	start := off
	for {
		if off >= len(msg) {
			return "", 0, errors.New("truncated domain name")
		}
		n := int(msg[off])
		if n == 0 {
			off++
			break
		}
		if n > MaxLabelLen {
			return "", 0, errors.Errorf("label length %d exceeds %d", n, MaxLabelLen)
		}
		off++
		if off+n > len(msg) {
			return "", 0, errors.New("truncated domain name label")
		}
		labels = append(labels, string(msg[off:off+n]))
		off += n
	}
	if len(labels) == 0 {
		return ".", off, nil
	}
	if off-start > MaxDNameLen {
		return "", 0, errors.Errorf("domain name exceeds %d bytes", MaxDNameLen)
	}
	return strings.Join(labels, ".") + ".", off, nil
}
