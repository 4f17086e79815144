package chunking

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/maastricht-university/oralargs/logging"
	"github.com/maastricht-university/oralargs/reference"
	"github.com/maastricht-university/oralargs/speaker"
	"github.com/maastricht-university/oralargs/transcript"
)

const (
	testCase = "2019_18-1"
	roberts  = "John G. Roberts, Jr."
	ginsburg = "Ruth Bader Ginsburg"
	kagan    = "Elena Kagan"
	smith    = "Jane Smith"
	jones    = "Robert Jones"
)

type fieldsTokenizer struct{}

func (fieldsTokenizer) Tokenize(s string) []string { return strings.Fields(s) }

// longText has well over ten whitespace tokens.
const longText = "Your Honor, the statute plainly says that the agency must consider every factor before acting here."

type line struct {
	pos  string
	name string
	role transcript.RawRole
	text string
}

func buildCorpus(t *testing.T, caseID, conv string, lines []line) *transcript.Memory {
	t.Helper()
	utts := make([]transcript.Utterance, 0, len(lines))
	for _, l := range lines {
		text := l.text
		if text == "" {
			text = longText
		}
		utts = append(utts, transcript.Utterance{
			ID:          fmt.Sprintf("%s__%s", conv, l.pos),
			CaseID:      caseID,
			SpeakerName: l.name,
			RawRole:     l.role,
			Text:        text,
		})
	}
	m, err := transcript.NewMemory(utts)
	require.NoError(t, err)
	return m
}

func testTables() *reference.Tables {
	decided := "Mar 23, 2020"
	tb := reference.Empty()
	tb.Cases = reference.NewCaseTable(reference.Case{ID: testCase, DecidedDate: &decided})
	tb.JusticeIdeologies = reference.JusticeIdeologies{"Ginsburg": reference.Liberal, "Kagan": reference.Liberal}
	tb.NameGender = reference.NameGender{"jane": "F", "robert": "M"}
	tb.BackchannelCues = []string{"right", "yes"}
	return tb
}

func newExtractor(c transcript.Corpus, tb *reference.Tables, opts Options) *Extractor {
	return NewExtractor(c, speaker.FromTables(tb), tb, fieldsTokenizer{}, opts, logging.Discard())
}

func intro(pos, text string) line { return line{pos, roberts, transcript.RawJustice, text} }
func adv(pos string) line { return line{pos, smith, transcript.RawAdvocate, ""} }
func rbg(pos string) line { return line{pos, ginsburg, transcript.RawJustice, ""} }
