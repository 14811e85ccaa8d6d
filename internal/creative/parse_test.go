package creative

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResultFencedMatchesUnfenced(t *testing.T) {
	plain, err := ParseResult(remoteDoc)
	require.NoError(t, err)

	for name, text := range map[string]string{
		"json fence": "```json\n" + remoteDoc + "\n```",
		"bare fence": "```\n" + remoteDoc + "\n```",
		"with prose": "Here is your campaign:\n```json\n" + remoteDoc + "\n```\nEnjoy!",
		"no fence":   "Sure! " + remoteDoc,
		"whitespace": "\n\n  " + remoteDoc + "  \n",
	} {
		t.Run(name, func(t *testing.T) {
			got, err := ParseResult(text)
			require.NoError(t, err)
			assert.Equal(t, plain, got)
		})
	}
}

func TestParseResultErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"prose", "I cannot help with that."},
		{"truncated", `{"strategy": {"approach": "rational"`},
		{"missing key", `{"strategy": {}, "veo3": {}, "nanoBanana": {}}`},
		{"null key", `{"strategy": {}, "veo3": {}, "nanoBanana": {}, "copy": null}`},
		{"wrong type", `{"strategy": {}, "veo3": {}, "nanoBanana": {}, "copy": {"headlines": "one"}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseResult(tt.text)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformed))
		})
	}
}

func TestTransportErrorMessage(t *testing.T) {
	err := &TransportError{StatusCode: 529, Err: errors.New("overloaded")}
	assert.Equal(t, "provider returned status 529: overloaded", err.Error())

	err = &TransportError{Err: errors.New("dial tcp: refused")}
	assert.Equal(t, "provider request failed: dial tcp: refused", err.Error())
}
