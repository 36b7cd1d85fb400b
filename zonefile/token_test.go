package zonefile

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineReaderBasicTokens(t *testing.T) {
	lr := newLineReader(strings.NewReader("foo 3600 IN A 192.0.2.1\n"))
	tokens, err := lr.nextRecord()
	require.NoError(t, err)
	assert.Equal(t, []string{"foo", "3600", "IN", "A", "192.0.2.1"}, tokens)
}

func TestLineReaderLeadingWhitespaceSignalsBlankToken(t *testing.T) {
	lr := newLineReader(strings.NewReader("  A 192.0.2.1\n"))
	tokens, err := lr.nextRecord()
	require.NoError(t, err)
	require.NotEmpty(t, tokens)
	assert.Equal(t, blankToken, tokens[0])
}

func TestLineReaderComment(t *testing.T) {
	lr := newLineReader(strings.NewReader("foo A 192.0.2.1 ; a comment (with parens)\n"))
	tokens, err := lr.nextRecord()
	require.NoError(t, err)
	assert.Equal(t, []string{"foo", "A", "192.0.2.1"}, tokens)
}

func TestLineReaderParenMultiLine(t *testing.T) {
	lr := newLineReader(strings.NewReader("foo SOA ns root (\n  1 2 3 4 5 )\n"))
	tokens, err := lr.nextRecord()
	require.NoError(t, err)
	assert.Equal(t, []string{"foo", "SOA", "ns", "root", "1", "2", "3", "4", "5"}, tokens)
}

func TestLineReaderNestedParensError(t *testing.T) {
	lr := newLineReader(strings.NewReader("foo SOA ns root ( 1 ( 2 ) )\n"))
	_, err := lr.nextRecord()
	assert.Error(t, err)
}

func TestLineReaderUnbalancedCloseParenError(t *testing.T) {
	lr := newLineReader(strings.NewReader("foo A 192.0.2.1 )\n"))
	_, err := lr.nextRecord()
	assert.Error(t, err)
}

func TestLineReaderEmptyRecordsSkipped(t *testing.T) {
	lr := newLineReader(strings.NewReader("\n\n\nfoo A 192.0.2.1\n"))
	tokens, err := lr.nextRecord()
	require.NoError(t, err)
	assert.Equal(t, []string{"foo", "A", "192.0.2.1"}, tokens)
}

func TestLineReaderCleanEOF(t *testing.T) {
	lr := newLineReader(strings.NewReader(""))
	tokens, err := lr.nextRecord()
	require.NoError(t, err)
	assert.Nil(t, tokens)
}

func TestLineReaderTruncatedLineIsResourceLimit(t *testing.T) {
	lr := newLineReader(strings.NewReader(strings.Repeat("a", ZBUFSIZE+10)))
	_, err := lr.nextRecord()
	require.Error(t, err)
	assert.True(t, isLimitError(err))
}

func TestLineReaderTooManyTokensIsResourceLimit(t *testing.T) {
	tokens := make([]string, MAXTOKENSLEN+1)
	for i := range tokens {
		tokens[i] = "x"
	}
	lr := newLineReader(strings.NewReader(strings.Join(tokens, " ") + "\n"))
	_, err := lr.nextRecord()
	require.Error(t, err)
	assert.True(t, isLimitError(err))
}

// TestLineReaderEmptyQuoteEmitsEmptyToken matches
// original_source/zparser.c's zaddtoken, which emits a zero-length
// token when a quote pair closes on an empty string: "" is itself a
// <character-string>, distinct from no token at all.
func TestLineReaderEmptyQuoteEmitsEmptyToken(t *testing.T) {
	lr := newLineReader(strings.NewReader("foo TXT \"\"\n"))
	tokens, err := lr.nextRecord()
	require.NoError(t, err)
	assert.Equal(t, []string{"foo", "TXT", ""}, tokens)
}

func TestLineReaderQuoteInsideParens(t *testing.T) {
	lr := newLineReader(strings.NewReader("foo TXT ( \"hello\" )\n"))
	tokens, err := lr.nextRecord()
	require.NoError(t, err)
	assert.Equal(t, []string{"foo", "TXT", "hello"}, tokens)
}
