package zonefile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustOrigin(t *testing.T, text string) []byte {
	t.Helper()
	wire, err := EncodeName(text, RootName)
	require.NoError(t, err)
	return wire
}

func TestEncodeNameFQDN(t *testing.T) {
	wire, err := EncodeName("www.example.com.", nil)
	require.NoError(t, err)
	assert.Equal(t, []byte{3, 'w', 'w', 'w', 7, 'e', 'x', 'a', 'm', 'p', 'l', 'e', 3, 'c', 'o', 'm', 0}, wire)
}

func TestEncodeNameRelative(t *testing.T) {
	origin := mustOrigin(t, "example.com.")
	wire, err := EncodeName("www", origin)
	require.NoError(t, err)

	name, _, err := DecodeName(wire, 0)
	require.NoError(t, err)
	assert.Equal(t, "www.example.com.", name)
}

func TestEncodeNameAtSign(t *testing.T) {
	origin := mustOrigin(t, "example.com.")
	wire, err := EncodeName("@", origin)
	require.NoError(t, err)
	assert.Equal(t, origin, wire)
}

func TestEncodeNameRequiresOrigin(t *testing.T) {
	_, err := EncodeName("www", nil)
	assert.Error(t, err)
}

func TestEncodeNameEscapes(t *testing.T) {
	wire, err := EncodeName(`a\.b.example.com.`, nil)
	require.NoError(t, err)
	name, _, err := DecodeName(wire, 0)
	require.NoError(t, err)
	assert.Equal(t, "a.b.example.com.", name)
}

func TestEncodeNameIDNA(t *testing.T) {
	origin := mustOrigin(t, ".")
	wire, err := EncodeName("café", origin)
	require.NoError(t, err)
	name, _, err := DecodeName(wire, 0)
	require.NoError(t, err)
	assert.Contains(t, name, "xn--")
}

func TestDecodeNameRoot(t *testing.T) {
	name, off, err := DecodeName(RootName, 0)
	require.NoError(t, err)
	assert.Equal(t, ".", name)
	assert.Equal(t, 1, off)
}

func TestDecodeNameTruncated(t *testing.T) {
	_, _, err := DecodeName([]byte{3, 'w', 'w'}, 0)
	assert.Error(t, err)
}
