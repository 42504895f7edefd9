package grammar

import (
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
)

// termSet is a set of lookahead symbols (terminals and EOF), ordered by the
// position of the terminals within the grammar. EOF sorts last.
type termSet struct {
	set *treeset.Set
}

// lookaheadComparator orders lookahead symbols of grammar g.
func lookaheadComparator(g *Grammar) utils.Comparator {
	return func(a, b interface{}) int {
		return utils.IntComparator(g.TerminalIndex(a.(Symbol)), g.TerminalIndex(b.(Symbol)))
	}
}

func newTermSet(g *Grammar) termSet {
	return termSet{set: treeset.NewWith(lookaheadComparator(g))}
}

// add inserts a symbol and reports whether the set changed.
func (s termSet) add(A Symbol) bool {
	if s.set.Contains(A) {
		return false
	}
	s.set.Add(A)
	return true
}

// union adds all members of other to s and reports whether s changed.
func (s termSet) union(other termSet) bool {
	changed := false
	it := other.set.Iterator()
	for it.Next() {
		if s.add(it.Value().(Symbol)) {
			changed = true
		}
	}
	return changed
}

func (s termSet) contains(A Symbol) bool {
	return s.set.Contains(A)
}

func (s termSet) size() int {
	return s.set.Size()
}

// symbols returns the members in order.
func (s termSet) symbols() []Symbol {
	vals := s.set.Values()
	syms := make([]Symbol, len(vals))
	for i, v := range vals {
		syms[i] = v.(Symbol)
	}
	return syms
}
