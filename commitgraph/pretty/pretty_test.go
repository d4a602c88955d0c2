package pretty_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cg "github.com/antgroup/commitgraph/commitgraph"
	"github.com/antgroup/commitgraph/commitgraph/pretty"
	"github.com/antgroup/commitgraph/internal/gconfig"
)

type stubAbbreviator struct{ n int }

func (s stubAbbreviator) Abbreviate(id cg.Hash, minLen int) string {
	return id.String()[:s.n]
}

func testHash(b byte) cg.Hash {
	s := ""
	for i := 0; i < 40; i++ {
		s += string("0123456789abcdef"[(int(b)+i)%16])
	}
	return cg.NewHash(s)
}

func testCommit(subject, body string) *cg.Commit {
	h := &cg.Handle{ID: testHash(1)}
	c := &cg.Commit{
		Handle:    h,
		Tree:      testHash(2),
		Author:    cg.Person{Name: "Jane Doe", Email: "jane@example.com", When: 1700000000, TZ: "+0000"},
		Committer: cg.Person{Name: "Jane Doe", Email: "jane@example.com", When: 1700000100, TZ: "+0000"},
	}
	h.Commit = c
	if body != "" {
		c.Message = []byte(subject + "\n\n" + body + "\n")
	} else {
		c.Message = []byte(subject + "\n")
	}
	return c
}

func baseRenderer() pretty.Renderer {
	return pretty.Renderer{
		Abbreviate:      stubAbbreviator{n: 7},
		Dates:           pretty.NormalDateFormatter{},
		AuthorDateStyle: cg.DateNormal,
	}
}

// TestPrintOneline is scenario S5: pretty_print(ONELINE) on a subject-only
// commit renders just the subject, no trailing newline.
func TestPrintOneline(t *testing.T) {
	c := testCommit("Fix bug", "")
	out, err := pretty.Print(c, pretty.Options{
		Format:   pretty.ONELINE,
		Renderer: baseRenderer(),
	})
	require.NoError(t, err)
	assert.Equal(t, "Fix bug", out)
}

// TestPrintEmailNonASCIIAuthor is scenario S6: a non-ASCII author name
// forces an RFC 2047-encoded From: header, and the non-ASCII message
// forces a Q-encoded subject and a MIME preamble ahead of the body.
func TestPrintEmailNonASCIIAuthor(t *testing.T) {
	c := testCommit("Fix bug (Zoë)", "Body paragraph.")
	c.Author.Name = "Zoë Bell"

	out, err := pretty.Print(c, pretty.Options{
		Format:   pretty.EMAIL,
		Renderer: baseRenderer(),
		Subject:  "Subject: ",
	})
	require.NoError(t, err)

	assert.Contains(t, out, "From: =?utf-8?q?Zo=C3=AB=20Bell?= <jane@example.com>")
	assert.Contains(t, out, "MIME-Version: 1.0")
	assert.Contains(t, out, "Content-Type: text/plain; charset=utf-8")
	assert.Contains(t, out, "Subject: =?utf-8?q?Fix=20bug=20(Zo=C3=AB)?=")
	assert.Contains(t, out, "Body paragraph.")
}

// TestPrintEmailASCIISkipsMIME confirms the MIME preamble is only emitted
// when the body actually needs it.
func TestPrintEmailASCIISkipsMIME(t *testing.T) {
	c := testCommit("Fix bug", "Body paragraph.")
	out, err := pretty.Print(c, pretty.Options{
		Format:   pretty.EMAIL,
		Renderer: baseRenderer(),
		Subject:  "Subject: ",
	})
	require.NoError(t, err)
	assert.NotContains(t, out, "MIME-Version")
	assert.Contains(t, out, "Subject: Fix bug")
}

// TestPrintEmailEmptyBodyKeepsSeparatorBlank guards spec.md §4.I step 5's
// EMAIL rule: right-trimming an empty body must not merge the header/MIME
// block into the (absent) body — a blank line has to survive so a caller
// appending body text later still finds the separator, mirroring
// commit.c's beginning_of_body restore in pretty_print_commit.
func TestPrintEmailEmptyBodyKeepsSeparatorBlank(t *testing.T) {
	c := testCommit("Subject only email", "")

	out, err := pretty.Print(c, pretty.Options{
		Format:   pretty.EMAIL,
		Renderer: baseRenderer(),
	})
	require.NoError(t, err)

	assert.Contains(t, out, "Subject only email\n\n")
	assert.True(t, strings.HasSuffix(out, "Subject only email\n\n"), "expected out to end with a blank separator line, got %q", out)
}

// TestFormatUserBasic is scenario S7: "%h %s" renders the abbreviated
// hash followed by the subject.
func TestFormatUserBasic(t *testing.T) {
	c := testCommit("Init", "")
	r := baseRenderer()
	got := r.FormatUser("%h %s", c)
	assert.Equal(t, c.Handle.ID.String()[:7]+" Init", got)
}

func TestFormatUserUnknownFieldsAndEscapes(t *testing.T) {
	c := testCommit("Init", "")
	c.Author.Name = ""
	r := baseRenderer()

	got := r.FormatUser("%an|%n%%literal", c)
	assert.Equal(t, "<unknown>|\n%literal", got)
}

// TestFormatUserMissingEncodingIsUnknown is spec.md's "a missing field
// renders as <unknown>" rule applied to %e: an absent encoding header is
// a missing field, not a license to guess "utf-8".
func TestFormatUserMissingEncodingIsUnknown(t *testing.T) {
	c := testCommit("Init", "")
	r := baseRenderer()
	assert.Equal(t, "<unknown>", r.FormatUser("%e", c))

	c.Encoding = "windows-1252"
	assert.Equal(t, "windows-1252", r.FormatUser("%e", c))
}

func TestParseFormatSelectors(t *testing.T) {
	f, _, err := pretty.ParseFormat("oneline")
	require.NoError(t, err)
	assert.Equal(t, pretty.ONELINE, f)

	f, tmpl, err := pretty.ParseFormat("format:%h %s")
	require.NoError(t, err)
	assert.Equal(t, pretty.USERFORMAT, f)
	assert.Equal(t, "%h %s", tmpl)

	_, _, err = pretty.ParseFormat("bogus")
	require.Error(t, err)
	assert.True(t, cg.IsInvalidFormat(err))
}

// TestOptionsFromSettingsReencodes wires internal/gconfig and
// internal/reencode through Print end to end: a commit declaring a
// non-UTF-8 source encoding is transcoded to the configured output
// encoding (testable property 9's encoding-rewrite path).
func TestOptionsFromSettingsReencodes(t *testing.T) {
	c := testCommit("placeholder", "")
	c.Encoding = "windows-1252"
	c.RawBuffer = []byte("tree " + testHash(2).String() + "\n\nCaf\xe9\n")
	c.Message = []byte("Caf\xe9\n")

	opts := pretty.OptionsFromSettings(gconfig.Default(), baseRenderer())
	out, err := pretty.Print(c, opts)
	require.NoError(t, err)
	assert.Contains(t, out, "Café")
}

func TestPrintMediumIncludesMergeLine(t *testing.T) {
	p1 := testCommit("p1", "")
	p2 := testCommit("p2", "")
	p2.Handle.ID = testHash(9)
	c := testCommit("Merge branches", "")
	c.Parents = []*cg.Commit{p1, p2}

	out, err := pretty.Print(c, pretty.Options{
		Format:   pretty.MEDIUM,
		Renderer: baseRenderer(),
	})
	require.NoError(t, err)
	assert.Contains(t, out, "Merge:")
	assert.Contains(t, out, "Author: Jane Doe <jane@example.com>")
}
