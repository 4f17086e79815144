// Package speaker corrects the justice/advocate labels of transcript
// utterances. Several justices argued cases as advocates before joining the
// bench, and the corpus labels them as justices throughout; the resolver
// compares each case's decision date with the speaker's tenure start.
package speaker

import (
	"fmt"
	"strings"
	"time"

	"github.com/maastricht-university/oralargs/reference"
	"github.com/maastricht-university/oralargs/transcript"
)

// Role is the corrected speaker role of an utterance.
type Role int

const (
	Unknown Role = iota
	Justice
	Advocate
)

func (r Role) String() string {
	switch r {
	case Justice:
		return "justice"
	case Advocate:
		return "advocate"
	default:
		return "unknown"
	}
}

// DecisionDates yields a case's decision date when one is recorded.
type DecisionDates interface {
	DecidedDate(caseID string) (time.Time, bool)
}

// Resolver recomputes speaker roles from static tenure tables. It holds no
// mutable state, so a single Resolver can serve every case of a run.
type Resolver struct {
	dates  DecisionDates
	tenure reference.Tenure
	chiefs reference.Tenure
}

// NewResolver builds a resolver over the given tenure tables.
func NewResolver(dates DecisionDates, tenure, chiefs reference.Tenure) *Resolver {
	return &Resolver{dates: dates, tenure: tenure, chiefs: chiefs}
}

// FromTables is a convenience constructor over a reference bundle.
func FromTables(t *reference.Tables) *Resolver {
	return NewResolver(t.Cases, t.JusticeTenure, t.ChiefTenure)
}

// Surname strips the generational suffixes the corpus writes after justice
// names and returns the last remaining word.
func Surname(name string) string {
	name = strings.TrimSpace(name)
	name = strings.ReplaceAll(name, " II", " ")
	name = strings.ReplaceAll(name, ", Jr.", " ")
	name = strings.ReplaceAll(name, " Jr.", " ")
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}

// Resolve returns the corrected role of u. The returned error is non-nil
// only for a justice whose surname has no tenure entry; it wraps
// transcript.ErrLookupMiss and the role is Unknown.
func (r *Resolver) Resolve(u transcript.Utterance) (Role, error) {
	switch u.RawRole {
	case transcript.RawAdvocate:
		return Advocate, nil
	case transcript.RawJustice:
	default:
		return Unknown, nil
	}

	surname := Surname(u.SpeakerName)
	start, ok := r.tenure.Start(surname)
	if !ok {
		return Unknown, fmt.Errorf("%w: no tenure date for %q (surname %q) in case %s",
			transcript.ErrLookupMiss, u.SpeakerName, surname, u.CaseID)
	}
	decided, ok := r.dates.DecidedDate(u.CaseID)
	if !ok {
		return Justice, nil
	}
	if decided.Before(start) {
		return Advocate, nil
	}
	return Justice, nil
}

// Role is Resolve without the diagnostic.
func (r *Resolver) Role(u transcript.Utterance) Role {
	role, _ := r.Resolve(u)
	return role
}

// ChiefJusticeSpeaking reports whether u is the presiding chief justice,
// i.e. a justice-labelled speaker whose chief tenure had begun by the
// case's decision date. Cases without a decision date never match.
func (r *Resolver) ChiefJusticeSpeaking(u transcript.Utterance) bool {
	if u.RawRole != transcript.RawJustice {
		return false
	}
	start, ok := r.chiefs.Start(Surname(u.SpeakerName))
	if !ok {
		return false
	}
	decided, ok := r.dates.DecidedDate(u.CaseID)
	if !ok {
		return false
	}
	return !decided.Before(start)
}
