package transcript

import "fmt"

// Corpus is the read-only view of a transcript corpus the pipeline needs.
// Utterances keep one global order; Offset walks that order, so it may step
// past the end of a case into the next one.
type Corpus interface {
	// Cases returns case IDs in order of first appearance.
	Cases() []string
	// CaseUtterances returns the utterances of one case in corpus order.
	CaseUtterances(caseID string) []Utterance
	// Utterance looks an utterance up by ID.
	Utterance(id string) (Utterance, bool)
	// Offset returns the utterance n positions after id in the global order.
	Offset(id string, n int) (Utterance, bool)
	// Len is the number of utterances.
	Len() int
}

// Memory is a Corpus held entirely in memory.
type Memory struct {
	order  []Utterance
	index  map[string]int
	byCase map[string][]int
	cases  []string
}

var _ Corpus = (*Memory)(nil)

// NewMemory builds a corpus from utterances in their global order. Duplicate
// IDs violate the corpus contract and are rejected.
func NewMemory(utts []Utterance) (*Memory, error) {
	m := &Memory{
		order:  utts,
		index:  make(map[string]int, len(utts)),
		byCase: make(map[string][]int),
	}
	for i, u := range utts {
		if _, dup := m.index[u.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate utterance id %q", ErrDataIntegrity, u.ID)
		}
		m.index[u.ID] = i
		if _, seen := m.byCase[u.CaseID]; !seen {
			m.cases = append(m.cases, u.CaseID)
		}
		m.byCase[u.CaseID] = append(m.byCase[u.CaseID], i)
	}
	return m, nil
}

func (m *Memory) Len() int { return len(m.order) }

func (m *Memory) Cases() []string {
	out := make([]string, len(m.cases))
	copy(out, m.cases)
	return out
}

func (m *Memory) CaseUtterances(caseID string) []Utterance {
	idx := m.byCase[caseID]
	out := make([]Utterance, 0, len(idx))
	for _, i := range idx {
		out = append(out, m.order[i])
	}
	return out
}

func (m *Memory) Utterance(id string) (Utterance, bool) {
	i, ok := m.index[id]
	if !ok {
		return Utterance{}, false
	}
	return m.order[i], true
}

func (m *Memory) Offset(id string, n int) (Utterance, bool) {
	i, ok := m.index[id]
	if !ok {
		return Utterance{}, false
	}
	j := i + n
	if j < 0 || j >= len(m.order) {
		return Utterance{}, false
	}
	return m.order[j], true
}
