package chunking

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/maastricht-university/oralargs/reference"
	"github.com/maastricht-university/oralargs/speaker"
	"github.com/maastricht-university/oralargs/transcript"
)

// Default validation thresholds.
const (
	DefaultMinNumUtts = 4
	DefaultMinTokAdv  = 20
)

// Options control chunk validation.
type Options struct {
	// MinNumUtts is the minimum utterance span of a chunk. A chunk opening a
	// new section may be one shorter.
	MinNumUtts int
	// MinTokAdv is the minimum advocate token count of a chunk.
	MinTokAdv int
	// ExcludeBackchannel drops backchannel utterances ("Right.", "Yes.")
	// from every count.
	ExcludeBackchannel bool
	// SingleDash counts mid-word cut-offs ("pu-") as disfluencies.
	SingleDash bool
}

// DefaultOptions returns the thresholds used in the analysis.
func DefaultOptions() Options {
	return Options{
		MinNumUtts: DefaultMinNumUtts,
		MinTokAdv:  DefaultMinTokAdv,
		SingleDash: true,
	}
}

// CaseInput is everything the extractor needs about one case beyond the
// corpus itself.
type CaseInput struct {
	CaseID     string
	Boundaries []string
	// Genders holds the advocate genders attributed from introductions.
	Genders map[string]reference.Gender
}

// CaseResult is the outcome of extracting one case.
type CaseResult struct {
	Records []Record
	// Advocates lists, once each, the advocates with a surviving chunk.
	Advocates []string

	Candidates          int
	BackchannelsIgnored int
}

// Extractor validates candidate chunks and computes their features.
type Extractor struct {
	corpus transcript.Corpus
	roles  Roles
	tables *reference.Tables
	tok    Tokenizer
	opts   Options
	log    logrus.FieldLogger
}

// NewExtractor wires an extractor. Zero thresholds in opts fall back to the
// defaults.
func NewExtractor(corpus transcript.Corpus, roles Roles, tables *reference.Tables, tok Tokenizer, opts Options, log logrus.FieldLogger) *Extractor {
	if opts.MinNumUtts <= 0 {
		opts.MinNumUtts = DefaultMinNumUtts
	}
	if opts.MinTokAdv < 0 {
		opts.MinTokAdv = DefaultMinTokAdv
	}
	return &Extractor{corpus: corpus, roles: roles, tables: tables, tok: tok, opts: opts, log: log}
}

// Extract walks consecutive boundary pairs of one case and returns the
// chunks that pass validation. exp is read, not updated; the caller
// commits CaseResult.Advocates once the whole case is done.
func (e *Extractor) Extract(in CaseInput, exp *Experience) (CaseResult, error) {
	var res CaseResult
	advocates := map[string]bool{}
	log := e.log.WithField("case_id", in.CaseID)

	var prev transcript.ID
	prevID := ""
	for _, id := range in.Boundaries {
		cur, err := transcript.ParseID(id)
		if err != nil {
			return CaseResult{}, fmt.Errorf("case %s: %w", in.CaseID, err)
		}
		if prevID != "" && prev.Conversation == cur.Conversation && cur.Seq != prev.Seq+1 {
			res.Candidates++
			rec, ok, ignored := e.candidate(log, in, prevID, prev, id, cur, exp)
			res.BackchannelsIgnored += ignored
			if ok {
				res.Records = append(res.Records, rec)
				if !advocates[rec.AdvocateName] {
					advocates[rec.AdvocateName] = true
					res.Advocates = append(res.Advocates, rec.AdvocateName)
				}
			}
		}
		prevID, prev = id, cur
	}
	return res, nil
}

// tally accumulates per-role counts over the utterances of one chunk.
type tally struct {
	utts, toks, interrupted, interruptedToks, disfl int
}

func (t *tally) add(toks []string, interrupted bool, disfl int) {
	t.utts++
	t.toks += len(toks)
	t.disfl += disfl
	if interrupted {
		t.interrupted++
		t.interruptedToks += len(toks)
	}
}

func (t tally) rate() float64 {
	if t.utts == 0 {
		return 0
	}
	return float64(t.interrupted) / float64(t.utts)
}

// candidate validates the exchange between boundary prevID (exclusive) and
// boundary lastID (inclusive). It also returns the number of backchannel
// utterances skipped while walking it.
func (e *Extractor) candidate(log logrus.FieldLogger, in CaseInput, prevID string, prev transcript.ID, lastID string, last transcript.ID, exp *Experience) (Record, bool, int) {
	seed1, ok1 := e.corpus.Offset(prevID, 1)
	seed2, ok2 := e.corpus.Offset(prevID, 2)
	if !ok1 || !ok2 {
		return Record{}, false, 0
	}
	seed1Pos, err := seed1.Pos()
	if err != nil {
		return Record{}, false, 0
	}

	opensSection := seed1Pos.Seq == 0
	if last.Seq < prev.Seq+e.opts.MinNumUtts && !(opensSection && last.Seq >= e.opts.MinNumUtts-1) {
		return Record{}, false, 0
	}
	numUtts := last.Seq - prev.Seq
	if opensSection {
		numUtts = last.Seq + 1
	}

	var justice, advocate transcript.Utterance
	switch r1, r2 := e.roles.Role(seed1), e.roles.Role(seed2); {
	case r1 == speaker.Justice && r2 == speaker.Advocate:
		justice, advocate = seed1, seed2
	case r1 == speaker.Advocate && r2 == speaker.Justice:
		justice, advocate = seed2, seed1
	default:
		return Record{}, false, 0
	}

	lastUtt, ok := e.corpus.Utterance(lastID)
	if !ok {
		return Record{}, false, 0
	}
	caseID := lastUtt.CaseID
	year, err := transcript.CaseYear(caseID)
	if err != nil {
		log.WithError(err).Debug("case year unavailable")
	}

	rec := Record{
		CaseID:          caseID,
		CaseYear:        year,
		JusticeName:     justice.Name(),
		AdvocateName:    advocate.Name(),
		UttIDFirst:      seed1.ID,
		UttIDLast:       lastID,
		NumUtts:         numUtts,
		JusticeIdeology: e.tables.JusticeIdeologies.Lookup(justiceSurname(justice.Name())),
	}

	ideo, err := e.tables.AdvocateIdeology(caseID, rec.AdvocateName)
	if err != nil {
		log.WithError(err).WithField("advocate", rec.AdvocateName).Debug("advocate ideology unknown")
	}
	rec.AdvocateIdeology = ideo
	if e.tables.FemaleIssue(caseID) {
		rec.FemaleIssue = 1
	}
	rec.AdvocateGender = e.advocateGender(in, rec.AdvocateName)
	if n, seen := exp.Lookup(rec.AdvocateName); seen && n > 0 {
		rec.AdvExperienceInt = n
		rec.AdvExperienceBin = 1
	}

	var adv, jus tally
	ignored := 0
	for i := 1; i <= numUtts; i++ {
		u, ok := e.corpus.Offset(prevID, i)
		if !ok {
			break
		}
		text := strings.TrimSpace(u.Text)
		if e.opts.ExcludeBackchannel && BackchannelMatch(text, e.tables.BackchannelCues) {
			ignored++
			continue
		}
		toks := e.tok.Tokenize(text)
		rec.NumToksTotal += len(toks)
		interrupted := ClassifyInterruption(text)
		disfl := CountDisfluencies(toks, e.opts.SingleDash)
		if e.roles.Role(u) == speaker.Advocate {
			adv.add(toks, interrupted, disfl)
		} else {
			jus.add(toks, interrupted, disfl)
		}
	}

	if adv.utts < 2 || jus.utts < 2 || adv.toks < e.opts.MinTokAdv {
		return Record{}, false, ignored
	}

	rec.NumUttsAdv, rec.NumUttsJustice = adv.utts, jus.utts
	rec.NumToksAdv, rec.NumToksJustice = adv.toks, jus.toks
	rec.NumAdvUttsInterrupted, rec.NumJusticeUttsInterrupted = adv.interrupted, jus.interrupted
	rec.AdvInterruptionRate, rec.JusticeInterruptionRate = adv.rate(), jus.rate()
	rec.NumAdvDisfl, rec.NumJusticeDisfl = adv.disfl, jus.disfl
	rec.NumAdvToksInUttsInterrupted = adv.interruptedToks
	rec.NumJusticeToksInUttsInterrupted = jus.interruptedToks
	return rec, true, ignored
}

// justiceSurname is the key of the justice ideology table: the last word of
// the name, or the one before it when the last is "Jr.".
func justiceSurname(name string) string {
	fields := strings.Fields(name)
	switch n := len(fields); {
	case n == 0:
		return ""
	case fields[n-1] == "Jr." && n > 1:
		return fields[n-2]
	default:
		return fields[n-1]
	}
}

func (e *Extractor) advocateGender(in CaseInput, advocate string) reference.Gender {
	if g, ok := in.Genders[advocate]; ok && g.Known() {
		return g
	}
	return e.tables.NameGender.Lookup(advocate)
}
