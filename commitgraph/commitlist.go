package commitgraph

// commitListItem is a singly linked list cell, grounded on
// original_source/commit.c's struct commit_list. A hand-rolled list
// rather than container/list: the algorithms only ever need O(1)
// prepend and head-pop, and carrying container/list's back-pointer
// bookkeeping buys nothing here.
type commitListItem struct {
	item *Commit
	next *commitListItem
}

// CommitList is the ordered sequence of commit handles used by the
// topological sorter and merge-base engine (spec.md §4.E).
type CommitList struct {
	head *commitListItem
}

// Empty reports whether the list has no elements.
func (l *CommitList) Empty() bool { return l.head == nil }

// Prepend adds c to the front of the list, grounded on commit_list_insert.
func (l *CommitList) Prepend(c *Commit) {
	l.head = &commitListItem{item: c, next: l.head}
}

// Pop removes and returns the head element, or nil if the list is empty,
// grounded on pop_commit.
func (l *CommitList) Pop() *Commit {
	if l.head == nil {
		return nil
	}
	c := l.head.item
	l.head = l.head.next
	return c
}

// Peek returns the head element without removing it.
func (l *CommitList) Peek() *Commit {
	if l.head == nil {
		return nil
	}
	return l.head.item
}

// FreeAll discards every element. Go's GC reclaims the cells; this exists
// to mirror free_commit_list's call sites and make the "list no longer in
// use" point explicit in caller code.
func (l *CommitList) FreeAll() {
	l.head = nil
}

// InsertByDate inserts c into the list at the position that keeps the
// list non-increasing by Date — stable insertion, grounded on
// insert_by_date.
func (l *CommitList) InsertByDate(c *Commit) {
	cur := &l.head
	for *cur != nil && (*cur).item.Date >= c.Date {
		cur = &(*cur).next
	}
	*cur = &commitListItem{item: c, next: *cur}
}

// SortByDate destructively reorders the list into non-increasing date
// order via repeated InsertByDate, grounded on sort_by_date.
func (l *CommitList) SortByDate() {
	var out CommitList
	for c := l.Pop(); c != nil; c = l.Pop() {
		out.InsertByDate(c)
	}
	l.head = out.head
}

// ToSlice copies the list into a slice in list order, leaving the list
// itself intact, for callers (and tests) that want random access.
func (l *CommitList) ToSlice() []*Commit {
	var out []*Commit
	for n := l.head; n != nil; n = n.next {
		out = append(out, n.item)
	}
	return out
}
