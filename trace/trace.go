package trace

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

// Kind tells what kind of decision a parser made in a step.
type Kind int8

// Kinds of parser steps.
const (
	Match  Kind = iota + 1 // a terminal on top of the stack matched the input
	Expand                 // a non-terminal has been replaced by a rule's RHS
	Shift                  // a token has been moved onto the stack
	Reduce                 // a handle has been replaced by a rule's LHS
	Accept                 // the input has been recognized
	Error                  // no applicable action; the parse halts
)

func (k Kind) String() string {
	switch k {
	case Match:
		return "Match"
	case Expand:
		return "Expand"
	case Shift:
		return "Shift"
	case Reduce:
		return "Reduce"
	case Accept:
		return "Accept"
	case Error:
		return "Error"
	}
	return "<no action>"
}

// Step is a single entry of a trace.
type Step struct {
	Index  int      // 1-based step number
	Stack  []string // stack snapshot, bottom first
	Input  []string // remaining input, including the EOF marker
	Action Kind
	Detail string // e.g., the rule used for an expansion
}

// Describe returns a human readable description of the action of a step.
func (s Step) Describe() string {
	if s.Detail == "" {
		return s.Action.String()
	}
	return s.Action.String() + " " + s.Detail
}

func (s Step) String() string {
	return fmt.Sprintf("%d: [%s] [%s] %s", s.Index, strings.Join(s.Stack, " "),
		strings.Join(s.Input, " "), s.Describe())
}

// Equal compares two steps.
func (s Step) Equal(other Step) bool {
	return s.Index == other.Index && s.Action == other.Action && s.Detail == other.Detail &&
		slices.Equal(s.Stack, other.Stack) && slices.Equal(s.Input, other.Input)
}

// --- Recording -------------------------------------------------------------

// Recorder collects steps during a parse. A Recorder belongs to a single parse
// run and is not safe for concurrent use.
type Recorder struct {
	steps []Step
	done  bool
}

// NewRecorder creates a recorder for a single parse.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Record appends a step. Stack and input are copied. Recording after the
// trace has been frozen panics.
func (r *Recorder) Record(stack, input []string, action Kind, detail string) Step {
	if r.done {
		panic("trace: recording to a frozen trace")
	}
	step := Step{
		Index:  len(r.steps) + 1,
		Stack:  slices.Clone(stack),
		Input:  slices.Clone(input),
		Action: action,
		Detail: detail,
	}
	r.steps = append(r.steps, step)
	return step
}

// Len returns the number of steps recorded so far.
func (r *Recorder) Len() int {
	return len(r.steps)
}

// Trace freezes the recording and returns it as an immutable Trace.
func (r *Recorder) Trace() *Trace {
	r.done = true
	return &Trace{steps: r.steps}
}

// --- Traces ----------------------------------------------------------------

// Trace is an ordered, immutable sequence of parser steps.
type Trace struct {
	steps []Step
}

// Steps returns a copy of the steps.
func (tr *Trace) Steps() []Step {
	if tr == nil {
		return nil
	}
	steps := make([]Step, len(tr.steps))
	for i, s := range tr.steps {
		s.Stack, s.Input = slices.Clone(s.Stack), slices.Clone(s.Input)
		steps[i] = s
	}
	return steps
}

// Len returns the number of steps.
func (tr *Trace) Len() int {
	if tr == nil {
		return 0
	}
	return len(tr.steps)
}

// At returns step i, counting from 0. For i out of range, the zero Step is
// returned.
func (tr *Trace) At(i int) Step {
	if i < 0 || i >= tr.Len() {
		return Step{}
	}
	return tr.steps[i]
}

// Last returns the final step. It returns false for an empty trace.
func (tr *Trace) Last() (Step, bool) {
	if tr.Len() == 0 {
		return Step{}, false
	}
	return tr.steps[len(tr.steps)-1], true
}

// Accepted is true if the trace ends with an Accept step.
func (tr *Trace) Accepted() bool {
	last, ok := tr.Last()
	return ok && last.Action == Accept
}

// Actions returns the kinds of all steps, in order.
func (tr *Trace) Actions() []Kind {
	kinds := make([]Kind, tr.Len())
	for i := range kinds {
		kinds[i] = tr.steps[i].Action
	}
	return kinds
}

// Equal compares two traces step by step.
func (tr *Trace) Equal(other *Trace) bool {
	if tr.Len() != other.Len() {
		return false
	}
	for i := 0; i < tr.Len(); i++ {
		if !tr.steps[i].Equal(other.steps[i]) {
			return false
		}
	}
	return true
}
