package grammar

// FirstSets holds FIRST(A) for every non-terminal A of a grammar. Epsilon is
// never stored as a member; instead, nullable non-terminals are flagged.
// FirstSets are immutable and safe for concurrent use.
type FirstSets struct {
	g        *Grammar
	sets     map[Symbol]termSet
	nullable map[Symbol]bool
}

// ComputeFirst computes the FIRST sets of all non-terminals of g.
//
// The computation is a fixed-point iteration over a worklist of non-terminals.
// Whenever FIRST(X) grows or X becomes nullable, all non-terminals with a rule
// mentioning X are re-queued. Sets are bounded by the terminal alphabet, thus
// the iteration terminates.
func ComputeFirst(g *Grammar) *FirstSets {
	fs := &FirstSets{
		g:        g,
		sets:     make(map[Symbol]termSet, len(g.nonterminals)),
		nullable: make(map[Symbol]bool, len(g.nonterminals)),
	}
	dependents := make(map[Symbol][]Symbol) // X -> non-terminals with X in a RHS
	for _, A := range g.nonterminals {
		fs.sets[A] = newTermSet(g)
	}
	for _, r := range g.rules {
		for _, X := range r.rhs {
			if X.IsNonTerminal() {
				dependents[X] = appendUnique(dependents[X], r.LHS)
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
		changed := false
		for _, r := range g.byLHS[A] {
			if fs.addRule(r) {
				changed = true
			}
		}
		if changed {
			for _, B := range dependents[A] {
				if !queued[B] {
					worklist = append(worklist, B)
					queued[B] = true
				}
			}
		}
	}
	fs.dump()
	return fs
}

// addRule walks the RHS of r from left to right, adding FIRST of each symbol to
// FIRST(LHS), until it finds a symbol which is not nullable. If every symbol is
// nullable, LHS gets nullable.
func (fs *FirstSets) addRule(r *Rule) bool {
	acc := fs.sets[r.LHS]
	changed := false
	for _, X := range r.rhs {
		switch {
		case X.IsEpsilon():
			continue
		case X.IsTerminal():
			return acc.add(X) || changed
		default:
			if acc.union(fs.sets[X]) {
				changed = true
			}
			if !fs.nullable[X] {
				return changed
			}
		}
	}
	if !fs.nullable[r.LHS] {
		fs.nullable[r.LHS] = true
		changed = true
	}
	return changed
}

// Of returns FIRST(A). For a terminal a, FIRST(a) = {a}. For EOF the result is
// {EOF}; for Epsilon the result is empty.
func (fs *FirstSets) Of(A Symbol) []Symbol {
	switch {
	case A.IsLookahead():
		return []Symbol{A}
	case A.IsNonTerminal():
		if s, ok := fs.sets[A]; ok {
			return s.symbols()
		}
	}
	return []Symbol{}
}

// CanDeriveEmpty reports whether A is nullable, i.e., A ⇒* ε. Epsilon itself
// can derive empty; terminals can not.
func (fs *FirstSets) CanDeriveEmpty(A Symbol) bool {
	if A.IsEpsilon() {
		return true
	}
	return fs.nullable[A]
}

// OfSequence computes FIRST of a sequence of symbols by walking it left to right,
// stopping at the first symbol which is not nullable. The second result is true
// if the whole sequence can derive empty, which holds for an empty sequence
// and for [ε].
func (fs *FirstSets) OfSequence(seq []Symbol) ([]Symbol, bool) {
	acc := fs.ofSequence(seq)
	return acc.symbols(), acc.nullable
}

type sequenceFirst struct {
	termSet
	nullable bool
}

func (fs *FirstSets) ofSequence(seq []Symbol) sequenceFirst {
	acc := sequenceFirst{termSet: newTermSet(fs.g)}
	for _, X := range seq {
		switch {
		case X.IsEpsilon():
			continue
		case X.IsLookahead():
			acc.add(X)
			return acc
		default:
			if set, ok := fs.sets[X]; ok {
				acc.union(set)
			}
			if !fs.nullable[X] {
				return acc
			}
		}
	}
	acc.nullable = true
	return acc
}

// Grammar returns the grammar the sets were computed for.
func (fs *FirstSets) Grammar() *Grammar {
	return fs.g
}

func (fs *FirstSets) dump() {
	for _, A := range fs.g.nonterminals {
		tracer().Debugf("FIRST(%s) = %v, nullable = %v", A, fs.sets[A].symbols(), fs.nullable[A])
	}
}

func appendUnique(syms []Symbol, A Symbol) []Symbol {
	for _, B := range syms {
		if A == B {
			return syms
		}
	}
	return append(syms, A)
}
