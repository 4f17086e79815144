package reference

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/maastricht-university/oralargs/transcript"
)

// FallbackArgumentDate stands in for a missing docket argument date so the
// case still gets a place in the chronological order.
var FallbackArgumentDate = time.Date(2020, time.October, 5, 0, 0, 0, 0, time.UTC)

// Issue codes the SCDB uses for gender-related questions.
var femaleIssueCodes = map[int]bool{
	20130: true,
	20140: true,
	50020: true,
	50010: true,
}

// Tables bundles every reference table of one pipeline run.
type Tables struct {
	Cases             *CaseTable
	Dockets           *DocketTable
	JusticeIdeologies JusticeIdeologies
	NameGender        NameGender
	BackchannelCues   []string
	JusticeTenure     Tenure
	ChiefTenure       Tenure
	JusticeGender     map[string]Gender
}

// Empty returns tables with the static tenure and gender data and nothing
// else. Every join falls back to its unknown value.
func Empty() *Tables {
	return &Tables{
		Cases:             NewCaseTable(),
		Dockets:           NewDocketTable(),
		JusticeIdeologies: JusticeIdeologies{},
		NameGender:        NameGender{},
		JusticeTenure:     JusticeTenure(),
		ChiefTenure:       ChiefJusticeTenure(),
		JusticeGender:     JusticeGender(),
	}
}

// Sources names the reference files to load. Empty paths are skipped.
type Sources struct {
	Cases       string
	Docket      string
	Ideology    string
	NameGender  string
	Backchannel string

	// AdvocateMatchThreshold enables fuzzy advocate lookups when > 0.
	AdvocateMatchThreshold float64
}

// LoadAll reads every table named in src concurrently.
func LoadAll(ctx context.Context, src Sources) (*Tables, error) {
	t := Empty()
	g, _ := errgroup.WithContext(ctx)

	if src.Cases != "" {
		g.Go(func() error {
			c, err := LoadCases(src.Cases)
			if err != nil {
				return err
			}
			t.Cases = c
			return nil
		})
	}
	if src.Docket != "" {
		g.Go(func() error {
			d, err := LoadDockets(src.Docket)
			if err != nil {
				return err
			}
			t.Dockets = d
			return nil
		})
	}
	if src.Ideology != "" {
		g.Go(func() error {
			j, err := LoadJusticeIdeologies(src.Ideology)
			if err != nil {
				return err
			}
			t.JusticeIdeologies = j
			return nil
		})
	}
	if src.NameGender != "" {
		g.Go(func() error {
			n, err := LoadNameGender(src.NameGender)
			if err != nil {
				return err
			}
			t.NameGender = n
			return nil
		})
	}
	if src.Backchannel != "" {
		g.Go(func() error {
			c, err := LoadBackchannelCues(src.Backchannel)
			if err != nil {
				return err
			}
			t.BackchannelCues = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("reference: %w", err)
	}
	t.Cases.SetMatchThreshold(src.AdvocateMatchThreshold)
	return t, nil
}

func (t *Tables) docket(caseID string) (Docket, error) {
	id, ok := t.Cases.DocketID(caseID)
	if !ok {
		return Docket{}, fmt.Errorf("%w: no docket id for case %s", transcript.ErrLookupMiss, caseID)
	}
	d, ok := t.Dockets.Docket(id)
	if !ok {
		return Docket{}, fmt.Errorf("%w: docket %s (case %s)", transcript.ErrLookupMiss, id, caseID)
	}
	return d, nil
}

// ArgumentDate returns the docket argument date of a case. When it is
// missing the error wraps transcript.ErrMalformedCase and the returned date
// is FallbackArgumentDate.
func (t *Tables) ArgumentDate(caseID string) (time.Time, error) {
	d, err := t.docket(caseID)
	if err != nil {
		return FallbackArgumentDate, fmt.Errorf("%w: %v", transcript.ErrMalformedCase, err)
	}
	if d.ArgumentDate.IsZero() {
		return FallbackArgumentDate, fmt.Errorf("%w: no argument date for case %s", transcript.ErrMalformedCase, caseID)
	}
	return d.ArgumentDate, nil
}

// FemaleIssue reports whether the case's SCDB issue is one of the
// gender-related issue codes. A missing docket row counts as false.
func (t *Tables) FemaleIssue(caseID string) bool {
	d, err := t.docket(caseID)
	if err != nil {
		return false
	}
	return femaleIssueCodes[d.Issue]
}

// AdvocateIdeology infers the ideology of the side an advocate argued for
// from the decision direction and the winning side. A non-nil error is a
// lookup miss; the returned ideology is then UnknownIdeology or the best
// answer available.
func (t *Tables) AdvocateIdeology(caseID, advocate string) (Ideology, error) {
	direction := UnknownIdeology
	d, derr := t.docket(caseID)
	if derr == nil {
		switch d.DecisionDirection {
		case DirectionConservative:
			direction = Conservative
		case DirectionLiberal:
			direction = Liberal
		}
	}

	win := t.Cases.WinSide(caseID)
	side, serr := t.Cases.AdvocateSide(caseID, advocate)

	if side == SideAmicus || side == SideUnknown ||
		win == WinUnclear || win == WinUnavailable ||
		direction == UnknownIdeology {
		if serr != nil {
			return UnknownIdeology, serr
		}
		return UnknownIdeology, derr
	}
	if (direction == Conservative && win == int(side)) || (direction == Liberal && win != int(side)) {
		return Conservative, nil
	}
	return Liberal, nil
}
