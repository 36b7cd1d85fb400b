package zonefile

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Record is a decoded resource record: owner name and type/class/ttl per
// spec.md §3, with RDATA already split into wire-format length-prefixed
// fields. Records are owned by the Session during yield and are
// invalidated by the next NextRecord call — copy Owner/Fields if you
// need them to outlive it.
type Record struct {
	Owner []byte
	Type  uint16
	Class uint16
	TTL   uint32
	Fields []Field
}

// RDLength is the record's on-wire RDLENGTH: the sum of every field's
// payload length, len(Bytes). A Field stores no separate length prefix.
func (r *Record) RDLength() int {
	n := 0
	for _, f := range r.Fields {
		n += len(f.Bytes)
	}
	return n
}

// Session owns one open zone file (and, transitively, the chain of
// $INCLUDEd child sessions currently active beneath it). It is the Go
// analogue of original_source/zparser.c's struct zparser, generalized
// from wfd3-zone-tools' *Parser, which buffered an entire zone into
// memory; Session instead yields one Record at a time.
type Session struct {
	path   string
	file   *os.File
	reader *lineReader

	ttl    uint32
	class  uint16
	origin []byte

	prevOwner []byte

	child           *Session
	includeDepth    int
	maxIncludeDepth int

	errors       int
	includeLines int

	logger logrus.FieldLogger
}

// Open starts a new parsing Session for path, with the given default
// TTL, default class, and origin (text, relative to the DNS root).
func Open(path string, ttl uint32, class uint16, origin string) (*Session, error) {
	// An empty origin string means "the DNS root", the same sentinel
	// the CLI drivers pass when no origin was given (zparser when its
	// optional origin argument is omitted; mkarpa and mkkea always);
	// EncodeName itself requires a
	// non-empty name (it has no notion of "unset"), so the root is
	// special-cased here rather than in every caller.
	if origin == "" {
		origin = "."
	}
	rootOrigin, err := EncodeName(origin, RootName)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid origin %q", origin)
	}
	return openWithOrigin(path, ttl, class, rootOrigin, 0, DefaultMaxIncludeDepth)
}

func openWithOrigin(path string, ttl uint32, class uint16, origin []byte, depth, maxDepth int) (*Session, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	return &Session{
		path:            path,
		file:            f,
		reader:          newLineReader(f),
		ttl:             ttl,
		class:           class,
		origin:          origin,
		includeDepth:    depth,
		maxIncludeDepth: maxDepth,
	}, nil
}

// SetLogger overrides the logrus logger this session (and any session it
// opens via $INCLUDE) uses for diagnostics. The default is
// logrus.StandardLogger().
func (s *Session) SetLogger(l logrus.FieldLogger) {
	s.logger = l
}

// Errors returns the running count of record-level and lexical errors
// seen so far, including those accumulated from exhausted $INCLUDE
// children. A non-zero count does not mean the stream has ended.
func (s *Session) Errors() int { return s.errors }

// Lines returns the running count of physical lines consumed so far,
// including those consumed by exhausted $INCLUDE children.
func (s *Session) Lines() int { return s.reader.lineno + s.includeLines }

// Close releases the session's file handle, first closing any $INCLUDE
// child that is still active (NextRecord returns records from an open
// child before the child is exhausted, so a caller can close a Session
// mid-include).
func (s *Session) Close() error {
	if s.child != nil {
		s.child.Close()
		s.child = nil
	}
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}

// NextRecord returns the next Record in file order, descending into and
// exhausting any open $INCLUDE child first. It returns (nil, nil) at a
// clean end of file and (nil, err) on a fatal lexical or resource-limit
// error, at which point the session should be closed by the caller.
// Record-level errors (directive, header, RDATA) are not returned: they
// are logged, counted, and the parser moves on to the next record.
func (s *Session) NextRecord() (*Record, error) {
	for {
		if s.child != nil {
			rec, err := s.child.NextRecord()
			if err != nil {
				// The child hit a fatal error; absorb its counts, log,
				// and resume the parent rather than propagating — an
				// included file's lexical mishap doesn't invalidate the
				// file that included it. Capture the child's path/line
				// before closing and clearing it: s.child is nil after
				// that point, and the diagnostic below needs the
				// child's identity, not the parent's.
				childPath := s.child.path
				childLine := s.child.reader.lineno
				s.errors += s.child.errors
				s.includeLines += s.child.Lines()
				s.child.Close()
				s.child = nil
				s.logError(&ParseError{Class: ErrLexical, File: childPath, Line: childLine, Err: err})
				continue
			}
			if rec != nil {
				return rec, nil
			}
			s.errors += s.child.errors
			s.includeLines += s.child.Lines()
			s.child.Close()
			s.child = nil
			continue
		}

		tokens, err := s.reader.nextRecord()
		if err != nil {
			class := ErrLexical
			if isLimitError(err) {
				class = ErrResourceLimit
			}
			pe := &ParseError{Class: class, File: s.path, Line: s.reader.lineno, Err: err}
			s.errors++
			s.logError(pe)
			return nil, pe
		}
		if tokens == nil {
			return nil, nil
		}

		rec, perr := s.processTokens(tokens)
		if perr != nil {
			s.errors++
			s.logError(perr)
			if perr.Class.Fatal() {
				return nil, perr
			}
			continue
		}
		if rec == nil {
			continue
		}
		s.prevOwner = append([]byte(nil), rec.Owner...)
		return rec, nil
	}
}

// processTokens implements C6: directive dispatch, then owner/ttl/class/
// type header resolution, then handing the remaining tokens to C7. A nil
// Record with a nil error means "a directive was handled, try again";
// a nil Record with a non-nil error means "discard this record".
func (s *Session) processTokens(tokens []string) (*Record, *ParseError) {
	if len(tokens[0]) > 0 && tokens[0][0] == '$' {
		if err := s.handleDirective(tokens); err != nil {
			return nil, &ParseError{Class: ErrDirective, File: s.path, Line: s.reader.lineno, Err: err}
		}
		return nil, nil
	}

	owner, rest, err := s.resolveOwner(tokens)
	if err != nil {
		return nil, &ParseError{Class: ErrHeader, File: s.path, Line: s.reader.lineno, Err: err}
	}

	ttl, class, typ, rdataTokens, err := s.resolveHeader(rest)
	if err != nil {
		return nil, &ParseError{Class: ErrHeader, File: s.path, Line: s.reader.lineno, Err: err}
	}

	fields, err := assembleRDATA(typ, rdataTokens, s.origin)
	if err != nil {
		return nil, &ParseError{Class: ErrRDATA, File: s.path, Line: s.reader.lineno, Err: err}
	}
	if len(fields) > MAXRDATALEN {
		err := errors.Errorf("rdata has %d fields, exceeds %d", len(fields), MAXRDATALEN)
		return nil, &ParseError{Class: ErrResourceLimit, File: s.path, Line: s.reader.lineno, Err: err}
	}
	rec := &Record{Owner: owner, Type: typ, Class: class, TTL: ttl, Fields: fields}
	if rec.RDLength() > MAXRDLENGTH {
		err := errors.Errorf("rdlength %d exceeds %d", rec.RDLength(), MAXRDLENGTH)
		return nil, &ParseError{Class: ErrResourceLimit, File: s.path, Line: s.reader.lineno, Err: err}
	}
	return rec, nil
}

// resolveOwner implements spec.md §4.4 step 2.
func (s *Session) resolveOwner(tokens []string) ([]byte, []string, error) {
	if tokens[0] == blankToken {
		if s.prevOwner == nil {
			return nil, nil, errors.New("no previous owner name for indented record")
		}
		return s.prevOwner, tokens[1:], nil
	}
	owner, err := EncodeName(tokens[0], s.origin)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "invalid owner name %q", tokens[0])
	}
	return owner, tokens[1:], nil
}

// resolveHeader implements spec.md §4.4 step 3: TTL and class may
// appear in any order before the type, which ends the header.
func (s *Session) resolveHeader(tokens []string) (ttl uint32, class uint16, typ uint16, rdata []string, err error) {
	ttl, class = s.ttl, s.class

	// Mirrors original_source/zparser.c's header loop exactly: a
	// digit-led token is always a TTL and a recognized class name is
	// always a class, either of which may repeat (last one wins) and
	// keeps the scan going; the first token that is neither is the
	// type, and the scan stops there unconditionally — it never
	// revisits a digit-led token as a TTL once RDATA has started, which
	// is what lets numeric RDATA (an MX preference, an SOA serial) sit
	// immediately after the type token without being mistaken for a
	// second TTL.
	i := 0
	for ; i < len(tokens); i++ {
		tok := tokens[i]
		if len(tok) > 0 && tok[0] >= '0' && tok[0] <= '9' {
			seconds, end := ParseTTL(tok)
			if end != len(tok) {
				return 0, 0, 0, nil, errors.Errorf("invalid ttl %q", tok)
			}
			if seconds < 0 || seconds > int64(^uint32(0)) {
				return 0, 0, 0, nil, errors.Errorf("ttl %q out of range", tok)
			}
			ttl = uint32(seconds)
			continue
		}
		if c := ClassByName(tok); c != 0 {
			class = c
			continue
		}
		typ = TypeByName(tok)
		i++
		break
	}

	if typ == 0 {
		return 0, 0, 0, nil, errors.New("missing or unrecognized record type")
	}
	if !hasRDATAAssembler(typ) {
		return 0, 0, 0, nil, errors.Errorf("don't know how to parse this type: %s", TypeName(typ))
	}
	return ttl, class, typ, tokens[i:], nil
}

func isLimitError(err error) bool {
	type limiter interface{ limitError() }
	_, ok := errors.Cause(err).(limiter)
	return ok
}

var _ io.Closer = (*Session)(nil)
