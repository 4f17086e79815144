package reference

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Ideology is a conservative/liberal label for a justice or advocate.
type Ideology string

const (
	Conservative    Ideology = "conservative"
	Liberal         Ideology = "liberal"
	UnknownIdeology Ideology = "unknown"
)

// Known reports whether i is conservative or liberal.
func (i Ideology) Known() bool { return i == Conservative || i == Liberal }

// JusticeIdeologies maps a justice surname to an ideology.
type JusticeIdeologies map[string]Ideology

// Lookup returns the ideology for surname, UnknownIdeology when absent.
func (j JusticeIdeologies) Lookup(surname string) Ideology {
	if i, ok := j[surname]; ok && i != "" {
		return i
	}
	return UnknownIdeology
}

// LoadJusticeIdeologies reads the surname -> ideology JSON object.
func LoadJusticeIdeologies(path string) (JusticeIdeologies, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("justice ideology: %w", err)
	}
	out := JusticeIdeologies{}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("justice ideology decode: %w", err)
	}
	return out, nil
}

// LoadBackchannelCues reads one cue per line. Blank lines are skipped.
func LoadBackchannelCues(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("backchannel cues: %w", err)
	}
	defer f.Close()

	var cues []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if c := strings.TrimSpace(sc.Text()); c != "" {
			cues = append(cues, c)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("backchannel cues scan: %w", err)
	}
	return cues, nil
}
