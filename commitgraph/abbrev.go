package commitgraph

import "sort"

// Abbreviate implements the Abbreviator collaborator named in spec.md §6
// (find_unique_abbrev-equivalent): the shortest hex prefix of id, at
// least minLen hex characters, that is unambiguous among every id this
// Table has ever interned. Falls back to the full 40-char hex on conflict.
//
// Supplemented from original_source/commit.c: the distilled spec names
// this collaborator but doesn't specify it, and several user-format
// escapes (%h, %p, %t) and the Merge: line depend on it.
func (t *Table) Abbreviate(id Hash, minLen int) string {
	t.mu.Lock()
	defer t.mu.Unlock()

	if minLen < 1 {
		minLen = 1
	}
	if minLen > len(id)*2 {
		return id.String()
	}

	ids := make([]Hash, 0, len(t.handles))
	for h := range t.handles {
		ids = append(ids, h)
	}
	sort.Sort(HashSlice(ids))

	full := id.String()
	for n := minLen; n <= len(full); n++ {
		prefix := full[:n]
		if t.uniquePrefix(ids, id, prefix) {
			return prefix
		}
	}
	return full
}

func (t *Table) uniquePrefix(ids []Hash, id Hash, prefix string) bool {
	for _, other := range ids {
		if other == id {
			continue
		}
		if other.String()[:len(prefix)] == prefix {
			return false
		}
	}
	return true
}
