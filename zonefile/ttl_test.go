package zonefile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTTL(t *testing.T) {
	cases := []struct {
		in      string
		seconds int64
		end     int
	}{
		{"3600", 3600, 4},
		{"1h", 3600, 2},
		{"1w2d3h", 7*86400 + 2*86400 + 3*3600, 6},
		{"2H", 7200, 2},
		{"-1h", -3600, 3},
		{"+30m", 1800, 4},
		{"10xyz", 10, 2},
		{"5m extra", 300, 3},
	}
	for _, c := range cases {
		seconds, end := ParseTTL(c.in)
		assert.Equal(t, c.seconds, seconds, "input %q", c.in)
		assert.Equal(t, c.end, end, "input %q", c.in)
	}
}
