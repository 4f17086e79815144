// Package gender attributes a gender to each advocate of a case. The chief
// justice usually introduces the next advocate by title ("Mr. Shaffer."),
// so the title in the utterance right before an advocate's first turn is
// the primary cue; a first-name dictionary is the fallback.
package gender

import (
	"github.com/maastricht-university/oralargs/reference"
	"github.com/maastricht-university/oralargs/transcript"
)

// Tokenizer splits text into word tokens.
type Tokenizer interface {
	Tokenize(text string) []string
}

var titles = map[string]reference.Gender{
	"Mr.": reference.Male,
	"Ms.": reference.Female,
}

// firstTurnPosition is the position of the first advocate turn after the
// opening introduction.
const firstTurnPosition = "0_001"

// Attributor resolves advocate genders for one case at a time.
type Attributor struct {
	names reference.NameGender
	tok   Tokenizer
}

// NewAttributor returns an attributor that falls back to names.
func NewAttributor(names reference.NameGender, tok Tokenizer) *Attributor {
	return &Attributor{names: names, tok: tok}
}

// LastTitle returns the gender of the last "Mr." or "Ms." token, if any.
func LastTitle(toks []string) (reference.Gender, bool) {
	for i := len(toks) - 1; i >= 0; i-- {
		if g, ok := titles[toks[i]]; ok {
			return g, true
		}
	}
	return reference.UnknownGender, false
}

// Attribute scans a case's utterances in order and returns the gender of
// every advocate whose turn opens a section. An unknown assignment may be
// replaced by a later known one; a known one is never overwritten.
func (a *Attributor) Attribute(utts []transcript.Utterance) map[string]reference.Gender {
	out := make(map[string]reference.Gender)
	var (
		prevSection string
		havePrev    bool
		prevTitle   reference.Gender
		prevHas     bool
	)
	for _, u := range utts {
		pos, err := u.Pos()
		if err != nil {
			continue
		}
		title, hasTitle := LastTitle(a.tok.Tokenize(u.Text))

		newTurn := pos.Position() == firstTurnPosition || !havePrev || pos.Section != prevSection
		if newTurn && u.RawRole == transcript.RawAdvocate {
			name := u.Name()
			g := prevTitle
			if !prevHas {
				g = a.names.Lookup(name)
			}
			if cur, ok := out[name]; !ok || !cur.Known() {
				out[name] = g
			}
		}

		prevSection, havePrev = pos.Section, true
		prevTitle, prevHas = title, hasTitle
	}
	return out
}
