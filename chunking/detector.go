package chunking

import (
	"fmt"

	"github.com/maastricht-university/oralargs/speaker"
	"github.com/maastricht-university/oralargs/transcript"
)

// Roles resolves corrected speaker roles and spots the presiding chief
// justice. *speaker.Resolver implements it.
type Roles interface {
	Role(u transcript.Utterance) speaker.Role
	ChiefJusticeSpeaking(u transcript.Utterance) bool
}

// State is the seeding state of the currently open exchange.
type State int

const (
	// NoOpenChunk: no speaker of the next exchange is known yet.
	NoOpenChunk State = iota
	// OneSpeakerSeeded: the opening advocate is known.
	OneSpeakerSeeded
	// TwoSpeakersSeeded: both parties of the exchange are known.
	TwoSpeakersSeeded
)

func (s State) String() string {
	switch s {
	case NoOpenChunk:
		return "no-open-chunk"
	case OneSpeakerSeeded:
		return "one-speaker-seeded"
	case TwoSpeakersSeeded:
		return "two-speakers-seeded"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Detector finds the utterances that close each exchange of a case.
type Detector struct {
	roles Roles
}

// NewDetector returns a detector resolving roles through roles.
func NewDetector(roles Roles) *Detector {
	return &Detector{roles: roles}
}

// Detect scans one case's utterances, in corpus order, and returns the
// boundary utterance IDs in the order they were found. It is a pure
// function of its input: scanning the same utterances twice yields the
// same list.
func (d *Detector) Detect(utts []transcript.Utterance) ([]string, error) {
	m := NewMachine(d.roles)
	for _, u := range utts {
		if err := m.Step(u); err != nil {
			return nil, err
		}
	}
	return m.Boundaries(), nil
}

// Machine is the boundary scan of a single case, exposed so each transition
// can be driven and inspected on its own.
type Machine struct {
	roles Roles

	state        State
	first        string // opening advocate once seeded
	second       string // second party once seeded
	prev         transcript.Utterance
	prevSection  string
	havePrev     bool
	secondPrevID string

	boundaries []string
	marked     map[string]bool
}

// NewMachine returns a machine in NoOpenChunk with nothing seen.
func NewMachine(roles Roles) *Machine {
	return &Machine{roles: roles, marked: make(map[string]bool)}
}

// State returns the current seeding state.
func (m *Machine) State() State { return m.state }

// Speakers returns the seeded speaker names; empty strings are unset.
func (m *Machine) Speakers() (first, second string) { return m.first, m.second }

// Boundaries returns a copy of the boundary IDs recorded so far.
func (m *Machine) Boundaries() []string {
	out := make([]string, len(m.boundaries))
	copy(out, m.boundaries)
	return out
}

// mark records id once; empty IDs (no such utterance yet) are ignored.
func (m *Machine) mark(id string) {
	if id == "" || m.marked[id] {
		return
	}
	m.marked[id] = true
	m.boundaries = append(m.boundaries, id)
}

// Step feeds the next utterance of the case.
func (m *Machine) Step(u transcript.Utterance) error {
	pos, err := u.Pos()
	if err != nil {
		return fmt.Errorf("case %s: %w", u.CaseID, err)
	}
	name := u.Name()

	switch {
	case !m.havePrev:
		m.openCase(u)
	case pos.Section != m.prevSection && m.roles.ChiefJusticeSpeaking(m.prev):
		m.afterIntroduction(name)
	case pos.Section == m.prevSection && !m.continuesExchange(name):
		m.newSpeaker(u, name)
	}

	m.secondPrevID = m.prevID()
	m.prev = u
	m.prevSection = pos.Section
	m.havePrev = true
	return nil
}

func (m *Machine) prevID() string {
	if !m.havePrev {
		return ""
	}
	return m.prev.ID
}

// continuesExchange reports whether name is one of the two seeded parties
// of a fully seeded exchange.
func (m *Machine) continuesExchange(name string) bool {
	return m.state == TwoSpeakersSeeded && (name == m.first || name == m.second)
}

// openCase handles the first utterance of a case: the chief justice's
// opening introduction starts the boundary list.
func (m *Machine) openCase(u transcript.Utterance) {
	if m.roles.ChiefJusticeSpeaking(u) {
		m.mark(u.ID)
	}
}

// afterIntroduction handles a new section opened right after the chief
// justice spoke. The introduction becomes a one-utterance chunk of its own
// and the incoming speaker opens the next exchange.
func (m *Machine) afterIntroduction(name string) {
	m.seed(name, "")
	m.mark(m.secondPrevID)
	m.mark(m.prevID())
}

// newSpeaker handles a speaker change within a section that does not
// continue a fully seeded exchange.
func (m *Machine) newSpeaker(u transcript.Utterance, name string) {
	switch m.state {
	case NoOpenChunk:
		if m.roles.Role(u) == speaker.Advocate {
			m.seed(name, "")
		}
		m.mark(m.prevID())

	case OneSpeakerSeeded:
		m.seed(m.first, name)

	case TwoSpeakersSeeded:
		switch {
		case m.roles.Role(u) == speaker.Advocate:
			// a new advocate opens the next exchange
			m.mark(m.prevID())
			m.seed(name, "")
		case m.roles.Role(m.prev) == speaker.Advocate:
			// justice rotation: the advocate stays, the new justice replaces
			// the old one, and the advocate's last reply opens the exchange
			m.seed(m.prev.Name(), name)
			m.mark(m.secondPrevID)
		default:
			m.seed("", "")
			m.mark(m.prevID())
		}
	}
}

// seed sets the exchange parties and derives the state from them.
func (m *Machine) seed(first, second string) {
	m.first, m.second = first, second
	switch {
	case first == "":
		m.second = ""
		m.state = NoOpenChunk
	case second == "":
		m.state = OneSpeakerSeeded
	default:
		m.state = TwoSpeakersSeeded
	}
}
