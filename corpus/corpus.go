// Package corpus reads transcript corpora in the ConvoKit directory layout:
// an utterances.jsonl file holding one utterance per line and a
// speakers.json object keyed by speaker ID.
package corpus

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/maastricht-university/oralargs/transcript"
)

const (
	UtterancesFile = "utterances.jsonl"
	SpeakersFile   = "speakers.json"
)

type utteranceLine struct {
	ID             string `json:"id"`
	ConversationID string `json:"conversation_id"`
	Speaker        string `json:"speaker"`
	Text           string `json:"text"`
	Meta           struct {
		CaseID string `json:"case_id"`
	} `json:"meta"`
}

// Speaker is the metadata of one corpus speaker.
type Speaker struct {
	Name string             `json:"name"`
	Type transcript.RawRole `json:"type"`
}

type speakerEntry struct {
	Meta Speaker `json:"meta"`
}

// LoadSpeakers reads speakers.json from dir.
func LoadSpeakers(dir string) (map[string]Speaker, error) {
	b, err := os.ReadFile(filepath.Join(dir, SpeakersFile))
	if err != nil {
		return nil, err
	}
	var raw map[string]speakerEntry
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("%s: %w", SpeakersFile, err)
	}
	out := make(map[string]Speaker, len(raw))
	for id, e := range raw {
		out[id] = e.Meta
	}
	return out, nil
}

// Load reads a corpus directory into memory, keeping the file order of the
// utterances. An utterance whose speaker is missing from speakers.json keeps
// its speaker ID as name and an empty raw role.
func Load(dir string) (*transcript.Memory, error) {
	speakers, err := LoadSpeakers(dir)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(filepath.Join(dir, UtterancesFile))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var utts []transcript.Utterance
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	line := 0
	for sc.Scan() {
		line++
		if len(sc.Bytes()) == 0 {
			continue
		}
		var ul utteranceLine
		if err := json.Unmarshal(sc.Bytes(), &ul); err != nil {
			return nil, fmt.Errorf("%s:%d: %w", UtterancesFile, line, err)
		}
		u := transcript.Utterance{
			ID:             ul.ID,
			CaseID:         ul.Meta.CaseID,
			ConversationID: ul.ConversationID,
			SpeakerID:      ul.Speaker,
			SpeakerName:    ul.Speaker,
			Text:           ul.Text,
		}
		if s, ok := speakers[ul.Speaker]; ok {
			u.SpeakerName = s.Name
			u.RawRole = s.Type
		}
		utts = append(utts, u)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", UtterancesFile, err)
	}
	return transcript.NewMemory(utts)
}

// YearDir is the directory of the per-year corpus under root.
func YearDir(root string, year int) string {
	return filepath.Join(root, fmt.Sprintf("supreme-%d", year))
}
