package zonefile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassByName(t *testing.T) {
	assert.Equal(t, ClassIN, ClassByName("in"))
	assert.Equal(t, ClassIN, ClassByName("IN"))
	assert.EqualValues(t, 0, ClassByName("nope"))
}

func TestTypeByName(t *testing.T) {
	assert.Equal(t, TypeA, TypeByName("a"))
	assert.Equal(t, TypeAAAA, TypeByName("AAAA"))
	assert.Equal(t, uint16(999), TypeByName("TYPE999"))
	assert.Equal(t, uint16(999), TypeByName("type999"))
	assert.EqualValues(t, 0, TypeByName("bogus"))
}

func TestTypeName(t *testing.T) {
	assert.Equal(t, "A", TypeName(TypeA))
	assert.Equal(t, "TYPE999", TypeName(999))
}

func TestHasRDATAAssembler(t *testing.T) {
	assert.True(t, hasRDATAAssembler(TypeA))
	assert.True(t, hasRDATAAssembler(TypeSOA))
	assert.False(t, hasRDATAAssembler(TypeKEY))
	assert.False(t, hasRDATAAssembler(TypeWKS))
	assert.False(t, hasRDATAAssembler(999))
}
