package pretty

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestNeedsRFC2047 covers testable property 8's gate: ASCII-clean strings
// never need encoding, non-ASCII and literal "=?" always do.
func TestNeedsRFC2047(t *testing.T) {
	assert.False(t, needsRFC2047("Jane Doe"))
	assert.True(t, needsRFC2047("Zoë Bell"))
	assert.True(t, needsRFC2047("looks =?encoded?= already"))
	assert.True(t, needsRFC2047("esc\x1bape"))
}

// TestEncodeRFC2047SpaceIsEscaped pins down commit.c's one deliberate
// deviation from quoted-printable: space becomes "=20", never "_".
func TestEncodeRFC2047SpaceIsEscaped(t *testing.T) {
	got := encodeRFC2047("Zoë Bell", "utf-8")
	assert.Equal(t, "=?utf-8?q?Zo=C3=AB=20Bell?=", got)
	assert.NotContains(t, got, "_")
}

// TestEncodeRFC2047NoOpWhenClean is testable property 8's other half: a
// clean string round-trips through encodeRFC2047 unchanged.
func TestEncodeRFC2047NoOpWhenClean(t *testing.T) {
	assert.Equal(t, "Jane Doe", encodeRFC2047("Jane Doe", "utf-8"))
}

// TestRFC2047RoundTrip is testable property 8: decodeRFC2047(encodeRFC2047(s))
// recovers the original string for any input that needed encoding.
func TestRFC2047RoundTrip(t *testing.T) {
	cases := []string{
		"Zoë Bell",
		"日本語 author",
		"plain with spaces only",
		"mix of =? and non-ascii \xc3\xa9",
	}
	for _, s := range cases {
		encoded := encodeRFC2047(s, "utf-8")
		if !needsRFC2047(s) {
			assert.Equal(t, s, encoded)
			continue
		}
		decoded, ok := decodeRFC2047(encoded)
		assert.True(t, ok, "decodeRFC2047(%q) should succeed", encoded)
		assert.Equal(t, s, decoded)
	}
}

func TestDecodeRFC2047RejectsForeignForms(t *testing.T) {
	_, ok := decodeRFC2047("not encoded at all")
	assert.False(t, ok)

	_, ok = decodeRFC2047("=?utf-8?b?not-q-encoding?=")
	assert.False(t, ok)
}
