package zonefile

import (
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// handleDirective implements C6's directive dispatch: $TTL, $ORIGIN,
// $INCLUDE, and $GENERATE, mirroring original_source/zparser.c's
// parse_directive and wfd3-zone-tools/zoneparser/directives.go's
// handleDirective, generalized from string records to a session that
// tracks wire-format defaults instead.
func (s *Session) handleDirective(tokens []string) error {
	switch strings.ToUpper(tokens[0]) {
	case "$TTL":
		return s.directiveTTL(tokens[1:])
	case "$ORIGIN":
		return s.directiveOrigin(tokens[1:])
	case "$INCLUDE":
		return s.directiveInclude(tokens[1:])
	case "$GENERATE":
		return errors.New("$GENERATE is recognized but not implemented")
	default:
		return errors.Errorf("unknown directive %q", tokens[0])
	}
}

func (s *Session) directiveTTL(args []string) error {
	if len(args) != 1 {
		return errors.Errorf("$TTL takes exactly one argument, got %d", len(args))
	}
	seconds, end := ParseTTL(args[0])
	if end != len(args[0]) {
		return errors.Errorf("invalid $TTL value %q", args[0])
	}
	if seconds < 0 || seconds > int64(^uint32(0)) {
		return errors.Errorf("$TTL value %q out of range", args[0])
	}
	s.ttl = uint32(seconds)
	return nil
}

func (s *Session) directiveOrigin(args []string) error {
	if len(args) != 1 {
		return errors.Errorf("$ORIGIN takes exactly one argument, got %d", len(args))
	}
	origin, err := EncodeName(args[0], s.origin)
	if err != nil {
		return errors.Wrapf(err, "invalid $ORIGIN %q", args[0])
	}
	s.origin = origin
	// A fresh $ORIGIN invalidates owner-name inheritance: the previous
	// owner was relative to the old origin's interpretation of "@" and
	// any unqualified suffix, and this implementation doesn't retain the
	// text form needed to re-resolve it against the new one.
	s.prevOwner = nil
	return nil
}

// directiveInclude implements $INCLUDE <path> [origin]. The included
// path is resolved relative to the directory of the file doing the
// including, matching original_source/zparser.c's zopen() behavior for
// relative include paths.
func (s *Session) directiveInclude(args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return errors.Errorf("$INCLUDE takes one or two arguments, got %d", len(args))
	}
	if s.includeDepth+1 >= s.maxIncludeDepth {
		return errors.Errorf("$INCLUDE nesting exceeds %d levels", s.maxIncludeDepth)
	}

	includeOrigin := s.origin
	if len(args) == 2 {
		origin, err := EncodeName(args[1], s.origin)
		if err != nil {
			return errors.Wrapf(err, "invalid $INCLUDE origin %q", args[1])
		}
		includeOrigin = origin
	}

	path := args[0]
	if !filepath.IsAbs(path) {
		path = filepath.Join(filepath.Dir(s.path), path)
	}

	child, err := openWithOrigin(path, s.ttl, s.class, includeOrigin, s.includeDepth+1, s.maxIncludeDepth)
	if err != nil {
		return errors.Wrapf(err, "$INCLUDE %q", args[0])
	}
	child.SetLogger(s.logger)
	s.child = child
	return nil
}
