package pretty

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/antgroup/commitgraph/commitgraph"
	"github.com/antgroup/commitgraph/internal/gconfig"
	"github.com/antgroup/commitgraph/internal/reencode"
)

// Format selects one of the eight presentation formats named in
// spec.md §4.I.
type Format int

const (
	MEDIUM Format = iota // default
	RAW
	SHORT
	EMAIL
	FULL
	FULLER
	ONELINE
	USERFORMAT
)

// formatNames is the prefix-matched selector table, grounded on
// original_source/commit.c's get_commit_format cmt_fmt_map.
var formatNames = []struct {
	prefix string
	format Format
}{
	{"raw", RAW},
	{"medium", MEDIUM},
	{"short", SHORT},
	{"email", EMAIL},
	{"full", FULL},
	{"fuller", FULLER},
	{"oneline", ONELINE},
}

// ParseFormat resolves selector to a Format by prefix match against the
// fixed table, or recognizes "format:<template>" as USERFORMAT. The first
// table entry whose name begins with selector wins, so an ambiguous
// prefix such as "f" resolves to FULL. An unrecognized selector is
// commitgraph.InvalidFormat, which is fatal to the operation per spec.md §7.
func ParseFormat(selector string) (Format, string, error) {
	if tmpl, ok := strings.CutPrefix(selector, "format:"); ok {
		return USERFORMAT, tmpl, nil
	}
	var match *Format
	for _, row := range formatNames {
		if strings.HasPrefix(row.prefix, selector) {
			if match != nil {
				continue // keep the first match in table order
			}
			f := row.format
			match = &f
		}
	}
	if match == nil {
		return 0, "", commitgraph.InvalidFormat(selector)
	}
	return *match, "", nil
}

// Options configures Print.
type Options struct {
	Format   Format
	Template string // used only when Format == USERFORMAT

	// OutputEncoding is the caller-requested output encoding; empty
	// means "utf-8". OptionsFromSettings fills it from the configured
	// output_encoding.
	OutputEncoding string
	Reencode       commitgraph.Reencoder

	Renderer Renderer

	// Subject is an optional prefix prepended to the ONELINE/EMAIL
	// title line (spec.md §4.I step 3).
	Subject string
}

// Print renders c per opts, following the five-step pipeline in
// spec.md §4.I, grounded on commit.c's pretty_print_commit.
func Print(c *commitgraph.Commit, opts Options) (string, error) {
	message, encoding, err := selectEncoding(c, opts)
	if err != nil {
		return "", err
	}

	if opts.Format == USERFORMAT {
		return opts.Renderer.FormatUser(opts.Template, withMessage(c, message)), nil
	}

	var buf bytes.Buffer

	if opts.Format == RAW {
		writeRawHeader(&buf, c, encoding)
		buf.WriteString("\n")
		buf.Write(message)
		return finish(buf.String(), opts.Format), nil
	}

	writeHeader(&buf, c, opts, encoding)

	if opts.Format == ONELINE || opts.Format == EMAIL {
		title, mime := titleAndMIME(message, opts, encoding)
		if opts.Format == EMAIL {
			buf.WriteString("\n")
		}
		if opts.Subject != "" {
			buf.WriteString(opts.Subject)
		}
		buf.WriteString(title)
		beginningOfBody := buf.Len()
		if opts.Format == EMAIL {
			buf.WriteString("\n")
			buf.WriteString(mime)
			beginningOfBody = buf.Len()
			writeBody(&buf, bodyAfterFirstParagraph(message), false)
		}
		out := finish(buf.String(), opts.Format)
		if opts.Format == EMAIL && len(strings.TrimRight(buf.String(), " \t\r\n")) <= beginningOfBody {
			// The body trimmed away to nothing past the header/MIME
			// preamble: restore the blank separator line finish()'s
			// right-trim would otherwise have merged away, so a caller
			// appending body text after us still finds the blank line
			// spec.md §4.I step 5 requires between header and body.
			out += "\n"
		}
		return out, nil
	}

	buf.WriteString("\n")
	indent := opts.Format != EMAIL
	stopAtFirstBlank := opts.Format == SHORT
	writeBodyFull(&buf, message, indent, stopAtFirstBlank)

	return finish(buf.String(), opts.Format), nil
}

// OptionsFromSettings builds an Options from a process-wide gconfig.Settings
// (the caller's loaded output_encoding and date_style), wiring
// internal/reencode's TextEncoder in as the Reencoder collaborator and
// translating the TOML date-style name to the commitgraph.DateStyle the
// Renderer's MEDIUM/FULLER header line uses. abbrev_length and
// save_commit_buffer are not read: the Renderer always abbreviates with a
// minimum length of 7.
func OptionsFromSettings(s gconfig.Settings, r Renderer) Options {
	r.AuthorDateStyle = dateStyleFromName(s.DateStyle)
	return Options{
		OutputEncoding: s.OutputEncoding,
		Reencode:       reencode.TextEncoder{},
		Renderer:       r,
	}
}

func dateStyleFromName(name gconfig.DateStyleName) commitgraph.DateStyle {
	switch name {
	case gconfig.DateStyleRFC2822:
		return commitgraph.DateRFC2822
	case gconfig.DateStyleRelative:
		return commitgraph.DateRelative
	case gconfig.DateStyleISO8601:
		return commitgraph.DateISO8601
	default:
		return commitgraph.DateNormal
	}
}

func withMessage(c *commitgraph.Commit, message []byte) *commitgraph.Commit {
	if bytes.Equal(c.Message, message) {
		return c
	}
	cp := *c
	cp.Message = message
	return &cp
}

// selectEncoding implements step 1: pick the output/source encodings,
// transcode if they differ, and rewrite/delete the in-memory encoding
// header to match (spec.md §4.I step 1, and the "encoding rewrite"
// testable property 9 / logmsg_reencode).
func selectEncoding(c *commitgraph.Commit, opts Options) (message []byte, encoding string, err error) {
	source := c.Encoding
	if source == "" {
		source = "utf-8"
	}
	target := opts.OutputEncoding
	if target == "" {
		target = "utf-8"
	}
	raw := c.RawBuffer
	if raw == nil {
		raw = c.Message
	} else {
		raw = bodyFromRaw(raw)
	}
	if source == target {
		return c.Message, emptyIfUTF8(target), nil
	}
	if opts.Reencode == nil {
		return c.Message, emptyIfUTF8(source), nil
	}
	out, err := opts.Reencode.Transcode(raw, source, target)
	if err != nil {
		return nil, "", err
	}
	return out, emptyIfUTF8(target), nil
}

func emptyIfUTF8(enc string) string {
	if strings.EqualFold(enc, "utf-8") {
		return ""
	}
	return enc
}

func bodyFromRaw(raw []byte) []byte {
	if i := bytes.Index(raw, []byte("\n\n")); i >= 0 {
		return raw[i+2:]
	}
	return raw
}

// writeRawHeader writes the header lines verbatim, except that the
// encoding header names encoding (the output encoding selectEncoding
// chose) and is omitted when encoding is empty (UTF-8).
func writeRawHeader(buf *bytes.Buffer, c *commitgraph.Commit, encoding string) {
	fmt.Fprintf(buf, "tree %s\n", c.Tree)
	for _, p := range c.Parents {
		fmt.Fprintf(buf, "parent %s\n", p.Handle.ID)
	}
	fmt.Fprintf(buf, "author %s\n", c.Author)
	fmt.Fprintf(buf, "committer %s\n", c.Committer)
	if encoding != "" {
		fmt.Fprintf(buf, "encoding %s\n", encoding)
	}
	for _, h := range c.ExtraHeaders {
		fmt.Fprintf(buf, "%s %s\n", h.K, strings.ReplaceAll(h.V, "\n", "\n "))
	}
}

// writeHeader implements step 2: header rendering for every format
// except USERFORMAT and RAW.
func writeHeader(buf *bytes.Buffer, c *commitgraph.Commit, opts Options, encoding string) {
	r := opts.Renderer
	if len(c.Parents) >= 2 && opts.Format != ONELINE && opts.Format != EMAIL {
		fmt.Fprint(buf, "Merge:")
		for _, p := range c.Parents {
			fmt.Fprintf(buf, " %s", r.abbrev(p.Handle.ID))
		}
		buf.WriteString("\n")
	}

	switch opts.Format {
	case ONELINE:
		// ONELINE renders no header lines, only the title.
	case EMAIL:
		name := c.Author.Name
		if needsRFC2047(name) {
			name = encodeRFC2047(name, orDefaultEncoding(encoding))
		}
		fmt.Fprintf(buf, "From: %s <%s>\n", name, c.Author.Email)
		fmt.Fprintf(buf, "Date: %s\n", r.date(c.Author.When, c.Author.TZ, commitgraph.DateRFC2822))
	default:
		fmt.Fprintf(buf, "Author: %s <%s>\n", c.Author.Name, c.Author.Email)
		switch opts.Format {
		case MEDIUM:
			fmt.Fprintf(buf, "Date:   %s\n", r.date(c.Author.When, c.Author.TZ, r.AuthorDateStyle))
		case FULLER:
			fmt.Fprintf(buf, "AuthorDate: %s\n", r.date(c.Author.When, c.Author.TZ, r.AuthorDateStyle))
		}
		if opts.Format == FULL || opts.Format == FULLER {
			fmt.Fprintf(buf, "Commit: %s <%s>\n", c.Committer.Name, c.Committer.Email)
			if opts.Format == FULLER {
				fmt.Fprintf(buf, "CommitDate: %s\n", r.date(c.Committer.When, c.Committer.TZ, r.AuthorDateStyle))
			}
		}
	}
}

// titleAndMIME implements step 3 for ONELINE/EMAIL.
func titleAndMIME(message []byte, opts Options, encoding string) (title string, mime string) {
	title = firstParagraphOneLine(message, opts.Format == EMAIL)
	if needsRFC2047(title) {
		title = encodeRFC2047(title, orDefaultEncoding(encoding))
	}
	if opts.Format != EMAIL {
		return title, ""
	}
	if containsNonASCII(message) {
		charset := orDefaultEncoding(encoding)
		mime = fmt.Sprintf("MIME-Version: 1.0\nContent-Type: text/plain; charset=%s\nContent-Transfer-Encoding: 8bit\n", charset)
	}
	return title, mime
}

func firstParagraphOneLine(message []byte, emailContinuation bool) string {
	lines := strings.Split(strings.TrimLeft(string(message), "\n"), "\n")
	var parts []string
	for _, l := range lines {
		if strings.TrimSpace(l) == "" {
			break
		}
		parts = append(parts, l)
	}
	sep := " "
	if emailContinuation {
		sep = "\n "
	}
	return strings.Join(parts, sep)
}

func bodyAfterFirstParagraph(message []byte) []byte {
	s := strings.TrimLeft(string(message), "\n")
	lines := strings.Split(s, "\n")
	i := 0
	for i < len(lines) && strings.TrimSpace(lines[i]) != "" {
		i++
	}
	return []byte(strings.Join(lines[i:], "\n"))
}

func containsNonASCII(b []byte) bool {
	for _, c := range b {
		if c >= 0x80 {
			return true
		}
	}
	return false
}

// writeBody implements step 4 for the email continuation (unindented, no
// stop-at-blank).
func writeBody(buf *bytes.Buffer, message []byte, indent bool) {
	writeBodyFull(buf, message, indent, false)
}

func writeBodyFull(buf *bytes.Buffer, message []byte, indent bool, stopAtFirstBlank bool) {
	s := strings.TrimLeft(string(message), "\n")
	if s == "" {
		return
	}
	for _, line := range strings.Split(s, "\n") {
		if stopAtFirstBlank && strings.TrimSpace(line) == "" {
			break
		}
		if indent {
			buf.WriteString("    ")
		}
		buf.WriteString(line)
		buf.WriteString("\n")
	}
}

// finish implements step 5: right-trim, exactly one trailing newline,
// except ONELINE which gets none. The EMAIL blank-separator restore for
// an empty body is done by Print after calling finish.
func finish(out string, format Format) string {
	if format == ONELINE {
		return strings.TrimRight(out, " \t\r\n")
	}
	trimmed := strings.TrimRight(out, " \t\r\n")
	return trimmed + "\n"
}

// subjectOf is %s: the subject, the first paragraph collapsed to one
// line.
func subjectOf(c *commitgraph.Commit) string {
	return firstParagraphOneLine(c.Message, false)
}

// bodyOf is %b: everything after the subject.
func bodyOf(c *commitgraph.Commit) string {
	return string(bodyAfterFirstParagraph(c.Message))
}
