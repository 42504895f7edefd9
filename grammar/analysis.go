package grammar

// Analysis bundles the FIRST and FOLLOW sets of a grammar.
type Analysis struct {
	g      *Grammar
	first  *FirstSets
	follow *FollowSets
}

// Analyse computes FIRST and FOLLOW sets for g.
func Analyse(g *Grammar) *Analysis {
	tracer().Infof("analysing grammar %s", g.Name)
	first := ComputeFirst(g)
	return &Analysis{
		g:      g,
		first:  first,
		follow: ComputeFollow(g, first),
	}
}

// Grammar returns the analysed grammar.
func (ga *Analysis) Grammar() *Grammar {
	return ga.g
}

// First returns the FIRST sets.
func (ga *Analysis) First() *FirstSets {
	return ga.first
}

// Follow returns the FOLLOW sets.
func (ga *Analysis) Follow() *FollowSets {
	return ga.follow
}
