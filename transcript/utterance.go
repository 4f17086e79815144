package transcript

import (
	"fmt"
	"strconv"
	"strings"
)

// RawRole is the speaker type tag carried by the corpus.
type RawRole string

const (
	RawJustice  RawRole = "J"
	RawAdvocate RawRole = "A"
)

// Utterance is one immutable unit of speech as delivered by the corpus.
type Utterance struct {
	ID             string
	CaseID         string
	ConversationID string
	SpeakerID      string
	SpeakerName    string // raw, e.g. "John G. Roberts, Jr."
	RawRole        RawRole
	Text           string
}

// Name returns the speaker name without commas. Chunk records, gender maps
// and case advocate tables all key on this form.
func (u Utterance) Name() string {
	return strings.ReplaceAll(u.SpeakerName, ",", "")
}

// Pos returns the parsed positional identifier of u.
func (u Utterance) Pos() (ID, error) { return ParseID(u.ID) }

// ID is the parsed form of an utterance identifier.
type ID struct {
	Conversation string
	Section      string
	SeqLabel     string // zero padded, as written
	Seq          int
}

// ParseID splits an utterance identifier such as "25032__1_028".
func ParseID(s string) (ID, error) {
	conv, rest, ok := strings.Cut(s, "__")
	if !ok || conv == "" {
		return ID{}, fmt.Errorf("%w: %q", ErrBadID, s)
	}
	section, label, ok := strings.Cut(rest, "_")
	if !ok || section == "" || label == "" {
		return ID{}, fmt.Errorf("%w: %q", ErrBadID, s)
	}
	seq, err := strconv.Atoi(label)
	if err != nil {
		return ID{}, fmt.Errorf("%w: %q: %v", ErrBadID, s, err)
	}
	return ID{Conversation: conv, Section: section, SeqLabel: label, Seq: seq}, nil
}

// Position returns "<section>_<seq>", e.g. "0_001".
func (id ID) Position() string { return id.Section + "_" + id.SeqLabel }

// CaseYear returns the term year encoded as the prefix of a case ID such as
// "2019_17-834".
func CaseYear(caseID string) (int, error) {
	prefix, _, _ := strings.Cut(caseID, "_")
	year, err := strconv.Atoi(prefix)
	if err != nil {
		return 0, fmt.Errorf("case %q: year prefix: %w", caseID, err)
	}
	return year, nil
}
