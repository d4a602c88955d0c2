package commitgraph

import (
	"github.com/emirpasic/gods/trees/binaryheap"
)

// topoAux is the per-element auxiliary record the sorter hangs off each
// commit via Commit.Aux (spec.md §4.G step 1).
type topoAux struct {
	indegree int
}

// dateOrderedQueue is the non-LIFO work queue, a binaryheap.Heap ordered
// by descending committer date — the same emirpasic/gods idiom the
// teacher's commit_walker_topo_order.go uses for its explorer stack.
type dateOrderedQueue struct {
	heap *binaryheap.Heap
}

func newDateOrderedQueue() *dateOrderedQueue {
	return &dateOrderedQueue{
		heap: binaryheap.NewWith(func(a, b any) int {
			ca, cb := a.(*Commit), b.(*Commit)
			switch {
			case ca.Date > cb.Date:
				return -1
			case ca.Date < cb.Date:
				return 1
			default:
				return 0
			}
		}),
	}
}

func (q *dateOrderedQueue) push(c *Commit) { q.heap.Push(c) }

func (q *dateOrderedQueue) pop() (*Commit, bool) {
	v, ok := q.heap.Pop()
	if !ok {
		return nil, false
	}
	return v.(*Commit), true
}

func (q *dateOrderedQueue) empty() bool { return q.heap.Empty() }

// lifoQueue is the LIFO work queue: a plain slice used as a stack, for
// when SortTopological's lifo parameter is true.
type lifoQueue struct {
	items []*Commit
}

func (q *lifoQueue) pushHead(c *Commit) {
	q.items = append(q.items, c)
}

func (q *lifoQueue) pop() (*Commit, bool) {
	if len(q.items) == 0 {
		return nil, false
	}
	n := len(q.items) - 1
	c := q.items[n]
	q.items = q.items[:n]
	return c, true
}

func (q *lifoQueue) empty() bool { return len(q.items) == 0 }

// AuxSetter is the set_aux half of spec.md §4.G's
// sort_in_topological_order(list, lifo, set_aux, get_aux) signature: the
// caller's hook for where the sorter's per-node indegree record lives.
type AuxSetter func(c *Commit, v any)

// AuxGetter is the get_aux half of the same signature.
type AuxGetter func(c *Commit) any

func defaultSetAux(c *Commit, v any) { c.Aux = v }
func defaultGetAux(c *Commit) any    { return c.Aux }

// SortTopological sorts list in place such that for every edge
// child → parent within the list, the child appears before its parent
// (children-first Kahn's algorithm), grounded on original_source/
// commit.c's sort_in_topological_order_fn. lifo selects the LIFO work
// queue (ties broken by discovery order) over the date-ordered one
// (ties broken by descending commit date) — spec.md §4.G's two queue
// disciplines.
//
// setAux/getAux are the set_aux/get_aux hooks spec.md §4.G's signature
// names: the caller's chosen slot for the sorter's per-node indegree
// record, mirroring §4.B's create(id, kind, node) caller-hook shape. Pass
// nil for both to use the default, which hangs the record off
// Commit.Aux (cleared before returning, per step 5 of §4.G). setAux is
// called to attach and detach each record; getAux is accepted but never
// called, since indegrees are looked up in a map local to the call.
func SortTopological(list *CommitList, lifo bool, setAux AuxSetter, getAux AuxGetter) {
	if setAux == nil {
		setAux = defaultSetAux
	}
	if getAux == nil {
		getAux = defaultGetAux
	}

	members := list.ToSlice()
	inList := make(map[*Commit]*topoAux, len(members))
	for _, c := range members {
		aux := &topoAux{}
		setAux(c, aux)
		inList[c] = aux
	}

	for _, c := range members {
		for _, p := range c.Parents {
			if aux, ok := inList[p]; ok {
				aux.indegree++
			}
		}
	}

	var lq *lifoQueue
	var dq *dateOrderedQueue
	if lifo {
		lq = &lifoQueue{}
	} else {
		dq = newDateOrderedQueue()
	}
	enqueue := func(c *Commit) {
		if lifo {
			lq.pushHead(c)
		} else {
			dq.push(c)
		}
	}
	dequeue := func() (*Commit, bool) {
		if lifo {
			return lq.pop()
		}
		return dq.pop()
	}
	empty := func() bool {
		if lifo {
			return lq.empty()
		}
		return dq.empty()
	}

	for _, c := range members {
		if inList[c].indegree == 0 {
			enqueue(c)
		}
	}

	var emitted []*Commit
	for !empty() {
		c, _ := dequeue()
		emitted = append(emitted, c)
		for _, p := range c.Parents {
			aux, ok := inList[p]
			if !ok {
				continue
			}
			aux.indegree--
			if aux.indegree == 0 {
				enqueue(p)
			}
		}
		setAux(c, nil)
	}

	// emitted is in emission order (children before parents); rebuild
	// list in that same order by prepending back to front.
	list.FreeAll()
	for i := len(emitted) - 1; i >= 0; i-- {
		list.Prepend(emitted[i])
	}
}
