package zonefile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	origin := mustOrigin(t, "example.com.")
	return &Session{
		path:            "<test>",
		ttl:             3600,
		class:           ClassIN,
		origin:          origin,
		maxIncludeDepth: DefaultMaxIncludeDepth,
	}
}

func TestDirectiveTTL(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.handleDirective([]string{"$TTL", "2h"}))
	assert.EqualValues(t, 7200, s.ttl)
}

func TestDirectiveTTLWrongArgCount(t *testing.T) {
	s := newTestSession(t)
	assert.Error(t, s.handleDirective([]string{"$TTL"}))
	assert.Error(t, s.handleDirective([]string{"$TTL", "1h", "extra"}))
}

func TestDirectiveTTLTrailingGarbage(t *testing.T) {
	s := newTestSession(t)
	assert.Error(t, s.handleDirective([]string{"$TTL", "1hxyz"}))
}

func TestDirectiveOrigin(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.handleDirective([]string{"$ORIGIN", "sub.example.com."}))
	name, _, err := DecodeName(s.origin, 0)
	require.NoError(t, err)
	assert.Equal(t, "sub.example.com.", name)
}

func TestDirectiveOriginClearsPrevOwner(t *testing.T) {
	s := newTestSession(t)
	s.prevOwner = []byte{1, 'a', 0}
	require.NoError(t, s.handleDirective([]string{"$ORIGIN", "sub.example.com."}))
	assert.Nil(t, s.prevOwner)
}

func TestUnknownDirective(t *testing.T) {
	s := newTestSession(t)
	err := s.handleDirective([]string{"$BOGUS", "x"})
	assert.Error(t, err)
}

func TestGenerateDirectiveRecognizedNotImplemented(t *testing.T) {
	s := newTestSession(t)
	err := s.handleDirective([]string{"$GENERATE", "1-5", "host-$", "A", "192.0.2.$"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not implemented")
}

func TestDirectiveIncludeWrongArgCount(t *testing.T) {
	s := newTestSession(t)
	assert.Error(t, s.handleDirective([]string{"$INCLUDE"}))
	assert.Error(t, s.handleDirective([]string{"$INCLUDE", "a", "b", "c"}))
}
