package reference

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/antzucaro/matchr"

	"github.com/maastricht-university/oralargs/transcript"
)

// DecidedDateLayout is the layout of decided_date in cases.jsonl.
const DecidedDateLayout = "Jan 2, 2006"

// Side is the litigation side an advocate argued for.
type Side int

const (
	SideRespondent Side = 0
	SidePetitioner Side = 1
	SideAmicus     Side = 2
	SideUnknown    Side = 3
)

// Win side codes carried by cases.jsonl besides 0 and 1.
const (
	WinUnclear     = 2
	WinUnavailable = -1
)

// Advocate is one entry of a case's advocate table.
type Advocate struct {
	Side *int   `json:"side"`
	Role string `json:"role"`
}

// Case is one line of cases.jsonl.
type Case struct {
	ID          string              `json:"id"`
	Year        int                 `json:"year"`
	Title       string              `json:"title"`
	DecidedDate *string             `json:"decided_date"`
	DocketID    string              `json:"scdb_docket_id"`
	Advocates   map[string]Advocate `json:"advocates"`
	WinSide     *int                `json:"win_side"`
}

// CaseTable indexes case metadata by case ID.
type CaseTable struct {
	cases     map[string]Case
	threshold float64
}

// NewCaseTable indexes cases. A later duplicate ID replaces an earlier one.
func NewCaseTable(cases ...Case) *CaseTable {
	t := &CaseTable{cases: make(map[string]Case, len(cases))}
	for _, c := range cases {
		t.cases[c.ID] = c
	}
	return t
}

// LoadCases reads cases.jsonl.
func LoadCases(path string) (*CaseTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cases: %w", err)
	}
	defer f.Close()

	var cases []Case
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	line := 0
	for sc.Scan() {
		line++
		raw := strings.TrimSpace(sc.Text())
		if raw == "" {
			continue
		}
		var c Case
		if err := json.Unmarshal([]byte(raw), &c); err != nil {
			return nil, fmt.Errorf("cases line %d: %w", line, err)
		}
		cases = append(cases, c)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("cases scan: %w", err)
	}
	return NewCaseTable(cases...), nil
}

// SetMatchThreshold enables Jaro-Winkler matching of advocate names that
// are not found verbatim in a case's advocate table. Zero disables it.
func (t *CaseTable) SetMatchThreshold(th float64) { t.threshold = th }

func (t *CaseTable) Len() int { return len(t.cases) }

// Case returns the metadata of one case.
func (t *CaseTable) Case(id string) (Case, bool) {
	c, ok := t.cases[id]
	return c, ok
}

// DecidedDate returns the parsed decision date of a case, if recorded.
func (t *CaseTable) DecidedDate(caseID string) (time.Time, bool) {
	c, ok := t.cases[caseID]
	if !ok || c.DecidedDate == nil || *c.DecidedDate == "" {
		return time.Time{}, false
	}
	d, err := time.Parse(DecidedDateLayout, strings.TrimSpace(*c.DecidedDate))
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// DocketID returns the SCDB docket identifier of a case.
func (t *CaseTable) DocketID(caseID string) (string, bool) {
	c, ok := t.cases[caseID]
	if !ok || c.DocketID == "" {
		return "", false
	}
	return c.DocketID, true
}

// WinSide returns the case's win side code, WinUnavailable when absent.
func (t *CaseTable) WinSide(caseID string) int {
	c, ok := t.cases[caseID]
	if !ok || c.WinSide == nil {
		return WinUnavailable
	}
	return *c.WinSide
}

// AdvocateSide returns the side advocate argued for in caseID. Names are
// compared verbatim, then without commas, then, when a match threshold is
// set, by best Jaro-Winkler similarity.
func (t *CaseTable) AdvocateSide(caseID, advocate string) (Side, error) {
	c, ok := t.cases[caseID]
	if !ok {
		return SideUnknown, fmt.Errorf("%w: case %s", transcript.ErrLookupMiss, caseID)
	}
	if a, ok := c.Advocates[advocate]; ok {
		return sideOf(a), nil
	}

	want := strings.ReplaceAll(advocate, ",", "")
	for name, a := range c.Advocates {
		if strings.ReplaceAll(name, ",", "") == want {
			return sideOf(a), nil
		}
	}

	if t.threshold > 0 {
		best, bestScore := "", 0.0
		for name := range c.Advocates {
			score := matchr.JaroWinkler(strings.ToLower(want), strings.ToLower(strings.ReplaceAll(name, ",", "")), false)
			if score > bestScore || (score == bestScore && name < best) {
				best, bestScore = name, score
			}
		}
		if best != "" && bestScore >= t.threshold {
			return sideOf(c.Advocates[best]), nil
		}
	}
	return SideUnknown, fmt.Errorf("%w: advocate %q not in case %s", transcript.ErrLookupMiss, advocate, caseID)
}

func sideOf(a Advocate) Side {
	if a.Side == nil {
		return SideUnknown
	}
	switch s := Side(*a.Side); s {
	case SideRespondent, SidePetitioner, SideAmicus:
		return s
	default:
		return SideUnknown
	}
}
