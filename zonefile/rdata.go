package zonefile

import (
	"net"
	"strconv"

	"github.com/pkg/errors"
)

// Field is one length-prefixed RDATA element; a Record's RDATA on the
// wire is the concatenation of every Field's Bytes, in order.
type Field struct {
	Bytes []byte
}

// field wraps raw bytes as one RDATA element, rejecting anything larger
// than MAXRDATAELEMSIZE. A Field stores no separate length prefix: its
// length is len(Bytes), and the record's wire RDLENGTH is the sum of
// those lengths.
func field(b []byte) (Field, error) {
	if len(b) > MAXRDATAELEMSIZE {
		return Field{}, errors.Errorf("rdata field of %d bytes exceeds %d", len(b), MAXRDATAELEMSIZE)
	}
	return Field{Bytes: b}, nil
}

// assembleRDATA dispatches on type and consumes tokens per the type
// recipes in spec.md §4.5 / SPEC_FULL.md §6.7, themselves taken directly
// from original_source/zparser.c's zrdata() switch. It returns the
// ordered field list, or an error if the type is unsupported or the
// tokens don't match the recipe.
func assembleRDATA(t uint16, tokens []string, origin []byte) ([]Field, error) {
	switch t {
	case TypeA:
		return recipe(tokens, ipv4Field)
	case TypeNS, TypeMD, TypeMF, TypeCNAME, TypeMB, TypeMG, TypeMR, TypePTR:
		return recipe(tokens, dnameFieldFn(origin))
	case TypeMINFO, TypeRP:
		return recipe(tokens, dnameFieldFn(origin), dnameFieldFn(origin))
	case TypeMX, TypeAFSDB:
		return recipe(tokens, shortField, dnameFieldFn(origin))
	case TypeSOA:
		return recipe(tokens, dnameFieldFn(origin), dnameFieldFn(origin), longField, longField, longField, longField, longField)
	case TypeTXT:
		return assembleTXT(tokens)
	case TypeHINFO:
		return recipe(tokens, textField, textField)
	case TypeAAAA:
		return recipe(tokens, ipv6Field)
	case TypeSRV:
		return recipe(tokens, shortField, shortField, shortField, dnameFieldFn(origin))
	case TypeNAPTR:
		return recipe(tokens, shortField, shortField, textField, textField, textField, dnameFieldFn(origin))
	case TypeSIG:
		return assembleSIG(tokens, origin)
	case TypeLOC:
		return assembleLOC(tokens)
	case TypeNULL:
		if len(tokens) != 0 {
			return nil, errors.New("no rdata allowed for NULL resource record")
		}
		return nil, nil
	default:
		return nil, errors.Errorf("don't know how to parse type %s", TypeName(t))
	}
}

// fieldFn consumes some number of leading tokens and returns a Field plus
// the unconsumed remainder.
type fieldFn func(tokens []string) (Field, []string, error)

// recipe runs a fixed sequence of fieldFns left to right, erroring if
// tokens run out early or are left over at the end.
func recipe(tokens []string, fns ...fieldFn) ([]Field, error) {
	fields := make([]Field, 0, len(fns))
	for _, fn := range fns {
		if len(tokens) == 0 {
			return nil, errors.Errorf("expected %d field(s), got %d", len(fns), len(fields))
		}
		f, rest, err := fn(tokens)
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
		tokens = rest
	}
	if len(tokens) != 0 {
		return nil, errors.Errorf("unexpected trailing rdata tokens: %v", tokens)
	}
	return fields, nil
}

func byteField(tokens []string) (Field, []string, error) {
	n, err := strconv.ParseUint(tokens[0], 10, 8)
	if err != nil {
		return Field{}, nil, errors.Wrapf(err, "invalid byte value %q", tokens[0])
	}
	f, err := field([]byte{byte(n)})
	return f, tokens[1:], err
}

func shortField(tokens []string) (Field, []string, error) {
	n, err := strconv.ParseUint(tokens[0], 10, 16)
	if err != nil {
		return Field{}, nil, errors.Wrapf(err, "invalid short value %q", tokens[0])
	}
	f, err := field([]byte{byte(n >> 8), byte(n)})
	return f, tokens[1:], err
}

func longField(tokens []string) (Field, []string, error) {
	n, err := strconv.ParseUint(tokens[0], 10, 32)
	if err != nil {
		return Field{}, nil, errors.Wrapf(err, "invalid long value %q", tokens[0])
	}
	b := make([]byte, 4)
	putUint32(b, uint32(n))
	f, err := field(b)
	return f, tokens[1:], err
}

func ipv4Field(tokens []string) (Field, []string, error) {
	ip := net.ParseIP(tokens[0])
	if ip == nil {
		return Field{}, nil, errors.Errorf("invalid ip address %q", tokens[0])
	}
	v4 := ip.To4()
	if v4 == nil {
		return Field{}, nil, errors.Errorf("invalid ip address %q: not IPv4", tokens[0])
	}
	f, err := field(v4)
	return f, tokens[1:], err
}

func ipv6Field(tokens []string) (Field, []string, error) {
	ip := net.ParseIP(tokens[0])
	if ip == nil {
		return Field{}, nil, errors.Errorf("invalid ip address %q", tokens[0])
	}
	if ip.To4() != nil {
		return Field{}, nil, errors.Errorf("invalid ip address %q: not IPv6", tokens[0])
	}
	f, err := field(ip.To16())
	return f, tokens[1:], err
}

func dnameFieldFn(origin []byte) fieldFn {
	return func(tokens []string) (Field, []string, error) {
		wire, err := EncodeName(tokens[0], origin)
		if err != nil {
			return Field{}, nil, errors.Wrapf(err, "invalid domain name %q", tokens[0])
		}
		f, err := field(wire)
		return f, tokens[1:], err
	}
}

func textField(tokens []string) (Field, []string, error) {
	s := tokens[0]
	if len(s) > 255 {
		return Field{}, nil, errors.Errorf("character-string %q exceeds 255 bytes", s)
	}
	b := make([]byte, 0, len(s)+1)
	b = append(b, byte(len(s)))
	b = append(b, s...)
	f, err := field(b)
	return f, tokens[1:], err
}

// assembleTXT is greedy: every remaining token becomes its own
// <character-string> field, matching original_source/zparser.c's
// zrdata() TXT case, which loops zrdata_text() until tokens run out.
func assembleTXT(tokens []string) ([]Field, error) {
	if len(tokens) == 0 {
		return nil, errors.New("TXT record requires at least one string")
	}
	var fields []Field
	for len(tokens) > 0 {
		f, rest, err := textField(tokens)
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
		tokens = rest
	}
	return fields, nil
}

// assembleSIG runs a fixed recipe up through the signer name, then the
// signature itself consumes every remaining token as base64, matching
// the original's "if(!zrdata_dname(z)) return 0; return zrdata_b64(z);"
func assembleSIG(tokens []string, origin []byte) ([]Field, error) {
	fns := []fieldFn{shortField, byteField, byteField, longField, longField, longField, shortField, dnameFieldFn(origin)}
	var fields []Field
	for _, fn := range fns {
		if len(tokens) == 0 {
			return nil, errors.Errorf("SIG record requires %d fixed field(s) plus a signature", len(fns))
		}
		f, rest, err := fn(tokens)
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
		tokens = rest
	}
	if len(tokens) == 0 {
		return nil, errors.New("SIG record missing signature")
	}
	sig, err := DecodeBase64Tokens(tokens)
	if err != nil {
		return nil, errors.Wrap(err, "SIG signature")
	}
	f, err := field(sig)
	if err != nil {
		return nil, err
	}
	return append(fields, f), nil
}

// assembleLOC hands every remaining token to EncodeLOC, which
// re-concatenates them with spaces before parsing, since LOC's textual
// form is whitespace-delimited in a way the tokenizer has already split.
func assembleLOC(tokens []string) ([]Field, error) {
	if len(tokens) == 0 {
		return nil, errors.New("LOC record requires a location")
	}
	b, err := EncodeLOC(tokens)
	if err != nil {
		return nil, err
	}
	f, err := field(b)
	if err != nil {
		return nil, err
	}
	return []Field{f}, nil
}
