package pretty

import (
	"strings"

	"github.com/antgroup/commitgraph/commitgraph"
)

// RevisionMark is the caller-supplied left/right/boundary marker a
// revision walker assigns a commit, rendered by the %m escape. Stored in
// the lower 16 bits of Commit.Flags, which spec.md §3 reserves for
// caller use.
type RevisionMark uint32

const (
	MarkNone RevisionMark = iota
	MarkLeft
	MarkRight
	MarkBoundary
)

const markShift = 0
const markBits = 0x3

// SetRevisionMark stores m in the caller-reserved low bits of c.Flags.
func SetRevisionMark(c *commitgraph.Commit, m RevisionMark) {
	c.Flags = (c.Flags &^ markBits) | (uint32(m) << markShift)
}

func revisionMark(c *commitgraph.Commit) RevisionMark {
	return RevisionMark((c.Flags >> markShift) & markBits)
}

const unknownField = "<unknown>"

// Renderer carries the collaborators the template engine and header
// renderer need: an Abbreviator for %h/%t/%p and Merge: lines, and a
// DateFormatter for the %a?/%c? date escapes (spec.md §6).
type Renderer struct {
	Abbreviate commitgraph.Abbreviator
	Dates      commitgraph.DateFormatter
	// AuthorDateStyle is the "caller-chosen style" spec.md's date-style
	// matrix defers to for MEDIUM/FULLER's Date: line and %ad/%cd.
	AuthorDateStyle commitgraph.DateStyle
}

func (r Renderer) abbrev(id commitgraph.Hash) string {
	if r.Abbreviate == nil {
		return id.String()
	}
	return r.Abbreviate.Abbreviate(id, 7)
}

func (r Renderer) date(epoch int64, tz string, style commitgraph.DateStyle) string {
	if r.Dates == nil {
		return unknownField
	}
	return r.Dates.FormatDate(epoch, tz, style)
}

// escapeTokens lists every recognized escape, longest first, so the
// scanner in FormatUser can greedily match "%Cred" before it considers
// "%C" a (nonexistent) two-character escape.
var escapeTokens = []string{
	"%Cgreen", "%Creset",
	"%Cred", "%Cblue",
	"%an", "%ae", "%ad", "%aD", "%ar", "%at", "%ai",
	"%cn", "%ce", "%cd", "%cD", "%cr", "%ct", "%ci",
	"%H", "%h", "%T", "%t", "%P", "%p", "%e", "%s", "%b", "%n", "%m", "%%",
}

// FormatUser renders template against c using the escapes in spec.md
// §4.I's user-format table. A missing field renders as "<unknown>";
// unknown escapes pass through verbatim.
func (r Renderer) FormatUser(template string, c *commitgraph.Commit) string {
	var b strings.Builder
	for i := 0; i < len(template); {
		if template[i] != '%' {
			b.WriteByte(template[i])
			i++
			continue
		}
		tok, ok := matchEscape(template[i:])
		if !ok {
			b.WriteByte(template[i])
			i++
			continue
		}
		rep, _ := r.escape(tok, c)
		b.WriteString(rep)
		i += len(tok)
	}
	return b.String()
}

func matchEscape(rest string) (string, bool) {
	for _, tok := range escapeTokens {
		if strings.HasPrefix(rest, tok) {
			return tok, true
		}
	}
	return "", false
}

func (r Renderer) escape(tok string, c *commitgraph.Commit) (string, bool) {
	switch tok {
	case "%H":
		return c.Handle.ID.String(), true
	case "%h":
		return r.abbrev(c.Handle.ID), true
	case "%T":
		return c.Tree.String(), true
	case "%t":
		return r.abbrev(c.Tree), true
	case "%P":
		return joinParents(c, func(id commitgraph.Hash) string { return id.String() }), true
	case "%p":
		return joinParents(c, r.abbrev), true
	case "%an":
		return orUnknown(c.Author.Name), true
	case "%ae":
		return orUnknown(c.Author.Email), true
	case "%ad":
		return r.date(c.Author.When, c.Author.TZ, r.AuthorDateStyle), true
	case "%aD":
		return r.date(c.Author.When, c.Author.TZ, commitgraph.DateRFC2822), true
	case "%ar":
		return r.date(c.Author.When, c.Author.TZ, commitgraph.DateRelative), true
	case "%at":
		return intToStr(c.Author.When), true
	case "%ai":
		return r.date(c.Author.When, c.Author.TZ, commitgraph.DateISO8601), true
	case "%cn":
		return orUnknown(c.Committer.Name), true
	case "%ce":
		return orUnknown(c.Committer.Email), true
	case "%cd":
		return r.date(c.Committer.When, c.Committer.TZ, r.AuthorDateStyle), true
	case "%cD":
		return r.date(c.Committer.When, c.Committer.TZ, commitgraph.DateRFC2822), true
	case "%cr":
		return r.date(c.Committer.When, c.Committer.TZ, commitgraph.DateRelative), true
	case "%ct":
		return intToStr(c.Committer.When), true
	case "%ci":
		return r.date(c.Committer.When, c.Committer.TZ, commitgraph.DateISO8601), true
	case "%e":
		return orUnknown(c.Encoding), true
	case "%s":
		return subjectOf(c), true
	case "%b":
		return bodyOf(c), true
	case "%Cred":
		return "\x1b[31m", true
	case "%Cgreen":
		return "\x1b[32m", true
	case "%Cblue":
		return "\x1b[34m", true
	case "%Creset":
		return "\x1b[0m", true
	case "%n":
		return "\n", true
	case "%%":
		return "%", true
	case "%m":
		return markGlyph(revisionMark(c)), true
	default:
		return "", false
	}
}

func markGlyph(m RevisionMark) string {
	switch m {
	case MarkLeft:
		return "<"
	case MarkRight:
		return ">"
	case MarkBoundary:
		return "-"
	default:
		return ""
	}
}

func orUnknown(s string) string {
	if s == "" {
		return unknownField
	}
	return s
}

func orDefaultEncoding(enc string) string {
	if enc == "" {
		return "utf-8"
	}
	return enc
}

func joinParents(c *commitgraph.Commit, render func(commitgraph.Hash) string) string {
	ids := make([]string, 0, len(c.Parents))
	for _, p := range c.Parents {
		ids = append(ids, render(p.Handle.ID))
	}
	return strings.Join(ids, " ")
}

func intToStr(v int64) string {
	if v == 0 {
		return unknownField
	}
	return strings.TrimSpace(itoa(v))
}

func itoa(v int64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	if v == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
