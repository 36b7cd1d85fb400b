package zonefile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeBase64Tokens(t *testing.T) {
	// "foo" + "bar" base64-encoded independently, then concatenated.
	out, err := DecodeBase64Tokens([]string{"Zm9v", "YmFy"})
	require.NoError(t, err)
	assert.Equal(t, []byte("foobar"), out)
}

func TestDecodeBase64TokensInvalid(t *testing.T) {
	_, err := DecodeBase64Tokens([]string{"not-base64!!"})
	assert.Error(t, err)
}

func TestEncodeLOC(t *testing.T) {
	// RFC 1876 §4 example: 42 21 54 N 71 06 18 W -24m 30m
	b, err := EncodeLOC([]string{"42", "21", "54", "N", "71", "06", "18", "W", "-24m", "30m"})
	require.NoError(t, err)
	require.Len(t, b, LOCRDLEN)
	assert.Equal(t, byte(0), b[0]) // VERSION
}

func TestEncodeLOCMissingAltitude(t *testing.T) {
	_, err := EncodeLOC([]string{"42", "21", "54", "N", "71", "06", "18", "W"})
	assert.Error(t, err)
}

func TestEncodeLOCDefaultsToOneMeter(t *testing.T) {
	b, err := EncodeLOC([]string{"42", "N", "71", "W", "0m"})
	require.NoError(t, err)
	assert.Equal(t, byte(0x12), b[1]) // SIZE default
	assert.Equal(t, byte(0x16), b[2]) // HORIZ PRE default
	assert.Equal(t, byte(0x13), b[3]) // VERT PRE default
}
