package lr

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/exp/slices"
)

// tablesJSON is the external representation of parse tables, see ReadTables.
type tablesJSON struct {
	Initial     int                          `json:"initial"`
	Productions []productionJSON             `json:"productions"`
	Action      map[string]map[string]string `json:"action"`
	Goto        map[string]map[string]int    `json:"goto"`
}

type productionJSON struct {
	LHS string   `json:"lhs"`
	RHS []string `json:"rhs"`
}

// ReadTables reads parse tables from their JSON representation.
//
//	{
//	  "initial": 0,
//	  "productions": [ {"lhs": "S'", "rhs": ["E"]}, {"lhs": "E", "rhs": ["E", "+", "T"]}, … ],
//	  "action": { "0": {"id": "s5", "(": "s4"}, "1": {"+": "s6", "$": "acc"}, … },
//	  "goto":   { "0": {"E": 1, "T": 2, "F": 3}, … }
//	}
//
// Production ids are positions in the production list. A RHS of [] or ["ε"]
// denotes a zero-length production. Actions are written "s<state>",
// "r<production>" or "acc".
func ReadTables(r io.Reader) (*Tables, error) {
	var spec tablesJSON
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&spec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedTable, err)
	}
	b := NewBuilder().Initial(spec.Initial)
	for _, p := range spec.Productions {
		b.Production(p.LHS, p.RHS...)
	}
	for _, state := range sortedStates(spec.Action) {
		row := spec.Action[state.key]
		for _, symbol := range sortedKeys(row) {
			a, err := ParseAction(row[symbol])
			if err != nil {
				return nil, &TableError{State: state.n, Symbol: symbol, Problem: err.Error()}
			}
			b.Action(state.n, symbol, a)
		}
	}
	for _, state := range sortedStates(spec.Goto) {
		row := spec.Goto[state.key]
		for _, symbol := range sortedKeys(row) {
			b.Goto(state.n, symbol, row[symbol])
		}
	}
	return b.Tables()
}

type stateKey struct {
	key string
	n   int
}

// sortedStates returns the keys of a JSON object with state numbers as keys,
// in numerical order. Keys which are not numbers get state -1, which is
// reported by the builder.
func sortedStates[V any](m map[string]V) []stateKey {
	keys := make([]stateKey, 0, len(m))
	for k := range m {
		n, err := strconv.Atoi(k)
		if err != nil {
			n = -1
		}
		keys = append(keys, stateKey{key: k, n: n})
	}
	slices.SortFunc(keys, func(a, b stateKey) int {
		if a.n != b.n {
			return a.n - b.n
		}
		return strings.Compare(a.key, b.key)
	})
	return keys
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
