package zonefile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssembleRDATA_SOA(t *testing.T) {
	origin := mustOrigin(t, "example.com.")
	fields, err := assembleRDATA(TypeSOA, []string{"ns", "root", "1", "2", "3", "4", "5"}, origin)
	require.NoError(t, err)
	require.Len(t, fields, 7)
	assert.Equal(t, []byte{0, 0, 0, 1}, fields[2].Bytes)
	assert.Equal(t, []byte{0, 0, 0, 5}, fields[6].Bytes)
}

func TestAssembleRDATA_SRV(t *testing.T) {
	origin := mustOrigin(t, "example.com.")
	fields, err := assembleRDATA(TypeSRV, []string{"10", "20", "5060", "sip"}, origin)
	require.NoError(t, err)
	require.Len(t, fields, 4)
	assert.Equal(t, []byte{0, 10}, fields[0].Bytes)
	assert.Equal(t, []byte{0, 20}, fields[1].Bytes)
	assert.Equal(t, []byte{0x13, 0xC4}, fields[2].Bytes)
}

func TestAssembleRDATA_NAPTR(t *testing.T) {
	origin := mustOrigin(t, "example.com.")
	fields, err := assembleRDATA(TypeNAPTR, []string{
		"100", "10", "u", "E2U+sip", `!^.*$!sip:info@example.com!`, ".",
	}, origin)
	require.NoError(t, err)
	require.Len(t, fields, 6)
	assert.Equal(t, []byte{0, 100}, fields[0].Bytes)
	assert.EqualValues(t, 1, fields[2].Bytes[0])
	assert.Equal(t, "u", string(fields[2].Bytes[1:]))
}

func TestAssembleRDATA_SIG(t *testing.T) {
	origin := mustOrigin(t, "example.com.")
	fields, err := assembleRDATA(TypeSIG, []string{
		"1", "5", "2", "3600", "4102444800", "3599942400", "12345", "example.com.", "Zm9v",
	}, origin)
	require.NoError(t, err)
	require.Len(t, fields, 9)
	assert.Equal(t, []byte("foo"), fields[8].Bytes)
}

func TestAssembleRDATA_MissingFieldsErrors(t *testing.T) {
	_, err := assembleRDATA(TypeMX, []string{"10"}, RootName)
	assert.Error(t, err)
}

func TestAssembleRDATA_TrailingTokensError(t *testing.T) {
	_, err := assembleRDATA(TypeA, []string{"192.0.2.1", "extra"}, RootName)
	assert.Error(t, err)
}

func TestAssembleRDATA_UnsupportedType(t *testing.T) {
	_, err := assembleRDATA(TypeKEY, []string{"256", "3", "5", "Zm9v"}, RootName)
	assert.Error(t, err)
}

func TestAssembleRDATA_NULLWithTokensErrors(t *testing.T) {
	_, err := assembleRDATA(TypeNULL, []string{"1"}, RootName)
	assert.Error(t, err)
}

func TestAssembleRDATA_TXTEmptyErrors(t *testing.T) {
	_, err := assembleRDATA(TypeTXT, nil, RootName)
	assert.Error(t, err)
}

func TestAssembleRDATA_HINFO(t *testing.T) {
	fields, err := assembleRDATA(TypeHINFO, []string{"PC", "LINUX"}, RootName)
	require.NoError(t, err)
	require.Len(t, fields, 2)
	assert.Equal(t, "PC", string(fields[0].Bytes[1:]))
	assert.Equal(t, "LINUX", string(fields[1].Bytes[1:]))
}

func TestByteShortLongFieldOverflowRejected(t *testing.T) {
	_, _, err := byteField([]string{"256"})
	assert.Error(t, err)
	_, _, err = shortField([]string{"65536"})
	assert.Error(t, err)
	_, _, err = longField([]string{"4294967296"})
	assert.Error(t, err)
}
