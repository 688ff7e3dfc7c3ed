package headers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLine(t *testing.T) {
	// Test: valid header
	name, value, err := ParseLine("Host: localhost:4221")
	require.NoError(t, err)
	assert.Equal(t, "Host", name)
	assert.Equal(t, "localhost:4221", value)

	// Test: empty value is allowed
	name, value, err = ParseLine("X-Empty: ")
	require.NoError(t, err)
	assert.Equal(t, "X-Empty", name)
	assert.Equal(t, "", value)

	// Test: case is preserved
	name, _, err = ParseLine("user-AGENT: x")
	require.NoError(t, err)
	assert.Equal(t, "user-AGENT", name)

	// Test: colon inside the value
	_, value, err = ParseLine("Referer: http://a:1/b")
	require.NoError(t, err)
	assert.Equal(t, "http://a:1/b", value)
}

func TestParseLineRejects(t *testing.T) {
	for _, line := range []string{
		"Host:x",
		"Host:  x",
		"Host x",
		": x",
		"",
	} {
		_, _, err := ParseLine(line)
		require.Error(t, err, "line %q", line)
		assert.ErrorIs(t, err, ErrMalformedHeader, "line %q", line)
	}
}

func TestSetLastWriteWins(t *testing.T) {
	h := NewHeaders()
	h.Set("Accept", "text/html")
	h.Set("Accept", "text/plain")

	v, ok := h.Get("Accept")
	require.True(t, ok)
	assert.Equal(t, "text/plain", v)

	_, ok = h.Get("accept")
	assert.False(t, ok)
}

func TestForEachOrdered(t *testing.T) {
	h := Headers{"b": "2", "a": "1", "c": "3"}
	var got []string
	h.ForEach(func(n, v string) {
		got = append(got, n+"="+v)
	})
	assert.Equal(t, []string{"a=1", "b=2", "c=3"}, got)
}
