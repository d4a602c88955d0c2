package commitgraph

import (
	"fmt"
	"strconv"
	"strings"
)

// Person is the parsed form of a "name <email> epoch tz" commit line,
// grounded on the teacher's zeta/object Signature.Decode.
type Person struct {
	Name  string
	Email string
	When  int64  // epoch seconds, 0 if unparsable
	TZ    string // e.g. "+0800"
}

// parsePersonLine parses the committer/author line body (everything after
// "author "/"committer "). Unparsable dates decode to epoch 0 per spec.md
// §4.D rule 3, matching commit.c's fill_person: a malformed date never
// fails the whole commit, it just degrades the date field.
func parsePersonLine(line string) Person {
	var p Person
	open := strings.IndexByte(line, '<')
	close := strings.IndexByte(line, '>')
	if open < 0 || close < 0 || close < open {
		p.Name = strings.TrimSpace(line)
		return p
	}
	p.Name = strings.TrimSpace(line[:open])
	p.Email = line[open+1 : close]

	rest := strings.TrimSpace(line[close+1:])
	fields := strings.Fields(rest)
	switch len(fields) {
	case 0:
	case 1:
		p.When, _ = strconv.ParseInt(fields[0], 10, 64)
	default:
		p.When, _ = strconv.ParseInt(fields[0], 10, 64)
		p.TZ = fields[1]
	}
	return p
}

// String renders the person back to its on-disk line form.
func (p Person) String() string {
	return fmt.Sprintf("%s <%s> %d %s", p.Name, p.Email, p.When, p.TZ)
}
