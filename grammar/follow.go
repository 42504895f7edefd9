package grammar

// FollowSets holds FOLLOW(A) for every non-terminal A of a grammar. FOLLOW sets
// may contain EOF, but never Epsilon. FollowSets are immutable and safe for
// concurrent use.
type FollowSets struct {
	g    *Grammar
	sets map[Symbol]termSet
}

// ComputeFollow computes the FOLLOW sets of all non-terminals of g, given the
// FIRST sets of g.
//
// EOF is placed into FOLLOW(start). For every occurrence A ➞ α B β, FIRST(β) is
// added to FOLLOW(B). If β is empty or nullable, FOLLOW(A) ⊆ FOLLOW(B) has to
// hold; these inclusions are propagated with a worklist until nothing changes.
func ComputeFollow(g *Grammar, first *FirstSets) *FollowSets {
	if first == nil || first.g != g {
		first = ComputeFirst(g)
	}
	fs := &FollowSets{
		g:    g,
		sets: make(map[Symbol]termSet, len(g.nonterminals)),
	}
	for _, A := range g.nonterminals {
		fs.sets[A] = newTermSet(g)
	}
	fs.sets[g.start].add(EOF)
	inclusions := make(map[Symbol][]Symbol) // A -> all B with FOLLOW(A) ⊆ FOLLOW(B)
	for _, r := range g.rules {
		for i, B := range r.rhs {
			if !B.IsNonTerminal() {
				continue
			}
			beta := first.ofSequence(r.rhs[i+1:])
			fs.sets[B].union(beta.termSet)
			if beta.nullable && B != r.LHS {
				inclusions[r.LHS] = appendUnique(inclusions[r.LHS], B)
			}
		}
	}
	worklist := append([]Symbol(nil), g.nonterminals...)
	queued := make(map[Symbol]bool, len(g.nonterminals))
	for _, A := range worklist {
		queued[A] = true
	}
	for len(worklist) > 0 {
		A := worklist[0]
		worklist = worklist[1:]
		queued[A] = false
		for _, B := range inclusions[A] {
			if fs.sets[B].union(fs.sets[A]) && !queued[B] {
				worklist = append(worklist, B)
				queued[B] = true
			}
		}
	}
	fs.dump()
	return fs
}

// Of returns FOLLOW(A) for a non-terminal A. For other symbols the result is
// empty.
func (fs *FollowSets) Of(A Symbol) []Symbol {
	if s, ok := fs.sets[A]; ok {
		return s.symbols()
	}
	return []Symbol{}
}

// Contains checks if lookahead a is in FOLLOW(A).
func (fs *FollowSets) Contains(A, a Symbol) bool {
	if s, ok := fs.sets[A]; ok {
		return s.contains(a)
	}
	return false
}

// Grammar returns the grammar the sets were computed for.
func (fs *FollowSets) Grammar() *Grammar {
	return fs.g
}

func (fs *FollowSets) dump() {
	for _, A := range fs.g.nonterminals {
		tracer().Debugf("FOLLOW(%s) = %v", A, fs.sets[A].symbols())
	}
}
