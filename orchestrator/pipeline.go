package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/maastricht-university/oralargs/chunking"
	cfg "github.com/maastricht-university/oralargs/config"
	"github.com/maastricht-university/oralargs/corpus"
	"github.com/maastricht-university/oralargs/gender"
	"github.com/maastricht-university/oralargs/reference"
	"github.com/maastricht-university/oralargs/speaker"
	"github.com/maastricht-university/oralargs/store/sqlite"
	"github.com/maastricht-university/oralargs/transcript"
)

// ChunkStore persists the records of each finished case.
type ChunkStore interface {
	SaveCase(ctx context.Context, caseID string, records []chunking.Record) error
	SaveRun(ctx context.Context, r sqlite.Run) error
}

// CorpusLoader opens the transcript corpus of one term year.
type CorpusLoader func(year int) (transcript.Corpus, error)

// Tokenizer splits utterance text into word tokens.
type Tokenizer interface {
	Tokenize(text string) []string
}

type Pipeline struct {
	cfg    *cfg.Root
	tables *reference.Tables
	log    logrus.FieldLogger

	tok    Tokenizer
	load   CorpusLoader
	store  ChunkStore
	roles  *speaker.Resolver
	now    func() time.Time
	output bool
}

type Option func(*Pipeline)

// WithStore saves every case's records to s as well as to the chunk files.
func WithStore(s ChunkStore) Option { return func(p *Pipeline) { p.store = s } }

// WithCorpusLoader replaces the per-year directory loader.
func WithCorpusLoader(l CorpusLoader) Option { return func(p *Pipeline) { p.load = l } }

// WithTokenizer replaces the prose tokenizer.
func WithTokenizer(t Tokenizer) Option { return func(p *Pipeline) { p.tok = t } }

// WithClock sets the time source of the run manifest.
func WithClock(now func() time.Time) Option { return func(p *Pipeline) { p.now = now } }

// WithoutFiles disables chunk, boundary and manifest files.
func WithoutFiles() Option { return func(p *Pipeline) { p.output = false } }

func NewPipeline(c *cfg.Root, tables *reference.Tables, log logrus.FieldLogger, opts ...Option) *Pipeline {
	p := &Pipeline{
		cfg:    c,
		tables: tables,
		log:    log,
		roles:  speaker.FromTables(tables),
		now:    time.Now,
		output: true,
	}
	p.load = func(year int) (transcript.Corpus, error) {
		return corpus.Load(corpus.YearDir(c.Paths.Corpus, year))
	}
	for _, o := range opts {
		o(p)
	}
	if p.tok == nil {
		p.tok = chunking.NewProseTokenizer()
	}
	return p
}

// Run chunks every configured year in order, threading one advocate
// experience accumulator through all of them, and writes the run manifest.
func (p *Pipeline) Run(ctx context.Context) (Manifest, error) {
	m := Manifest{
		RunID:     uuid.NewString(),
		StartedAt: p.now(),
		YearStart: p.cfg.Years.Start,
		YearEnd:   p.cfg.Years.End,
		ChunksDir: p.cfg.Paths.Chunks,
	}
	log := p.log.WithField("run_id", m.RunID)
	exp := chunking.NewExperience()

	for year := p.cfg.Years.Start; year < p.cfg.Years.End; year++ {
		c, err := p.load(year)
		if err != nil {
			return m, fmt.Errorf("corpus %d: %w", year, err)
		}
		st, err := p.RunCorpus(ctx, c, exp)
		m.Stats.add(st)
		if err != nil {
			return m, fmt.Errorf("year %d: %w", year, err)
		}
		log.WithFields(logrus.Fields{
			"year":       year,
			"utterances": c.Len(),
			"cases":      st.CasesProcessed,
			"chunks":     st.ChunksEmitted,
		}).Info("year done")
	}
	m.FinishedAt = p.now()

	if p.store != nil {
		err := p.store.SaveRun(ctx, sqlite.Run{
			ID:         m.RunID,
			StartedAt:  m.StartedAt,
			FinishedAt: m.FinishedAt,
			YearStart:  m.YearStart,
			YearEnd:    m.YearEnd,
			Cases:      m.Stats.CasesProcessed,
			Chunks:     m.Stats.ChunksEmitted,
		})
		if err != nil {
			return m, err
		}
	}
	if p.output && p.cfg.Paths.Outputs != "" {
		path, err := persistManifest(p.cfg.Paths.Outputs, m)
		if err != nil {
			return m, fmt.Errorf("manifest: %w", err)
		}
		log = log.WithField("manifest", path)
	}

	fields := logrus.Fields{
		"cases_processed":  m.Stats.CasesProcessed,
		"cases_skipped":    m.Stats.CasesSkipped,
		"candidates":       m.Stats.Candidates,
		"chunks":           m.Stats.ChunksEmitted,
		"lookup_misses":    m.Stats.LookupMisses,
		"missing_arg_date": m.Stats.MissingArgDates,
	}
	if p.cfg.Chunking.ExcludeBackchannel {
		fields["backchannels_ignored"] = m.Stats.BackchannelsIgnored
	}
	log.WithFields(fields).Info("chunking done")
	return m, nil
}

// OrderCases returns the cases of c sorted by docket argument date, ties
// broken by case ID. Cases without a date sort at the fallback date; the
// second result counts them.
func (p *Pipeline) OrderCases(c transcript.Corpus) ([]string, int) {
	type dated struct {
		id   string
		date time.Time
	}
	var (
		cases   []dated
		missing int
	)
	for _, id := range c.Cases() {
		d, err := p.tables.ArgumentDate(id)
		if err != nil {
			missing++
			p.log.WithField("case_id", id).WithError(err).Warn("no argument date available")
		}
		cases = append(cases, dated{id: id, date: d})
	}
	sort.SliceStable(cases, func(i, j int) bool {
		if !cases[i].date.Equal(cases[j].date) {
			return cases[i].date.Before(cases[j].date)
		}
		return cases[i].id < cases[j].id
	})
	out := make([]string, len(cases))
	for i, d := range cases {
		out[i] = d.id
	}
	return out, missing
}

// RunCorpus processes every case of one corpus in argument-date order.
func (p *Pipeline) RunCorpus(ctx context.Context, c transcript.Corpus, exp *chunking.Experience) (Stats, error) {
	var st Stats
	order, missing := p.OrderCases(c)
	st.MissingArgDates = missing

	for _, caseID := range order {
		if err := ctx.Err(); err != nil {
			return st, err
		}
		out, err := p.ProcessCase(ctx, c, caseID, exp)
		st.add(out.Stats)
		if err != nil {
			return st, err
		}
	}
	return st, nil
}

// Boundaries returns the boundary list of one case.
func (p *Pipeline) Boundaries(c transcript.Corpus, caseID string) ([]string, error) {
	return chunking.NewDetector(p.roles).Detect(c.CaseUtterances(caseID))
}

// ProcessCase runs gender attribution, boundary detection and chunk
// extraction for one case, emits its records and commits the case to exp.
// Malformed cases are skipped and counted; only data-integrity and I/O
// failures are returned.
func (p *Pipeline) ProcessCase(ctx context.Context, c transcript.Corpus, caseID string, exp *chunking.Experience) (CaseOutcome, error) {
	out := CaseOutcome{CaseID: caseID}
	log := p.log.WithField("case_id", caseID)

	utts := c.CaseUtterances(caseID)
	if len(utts) == 0 {
		log.Warn("case has no utterances, skipped")
		out.Stats.CasesSkipped++
		return out, nil
	}
	out.Stats.LookupMisses = p.reportLookupMisses(log, utts)

	genders := gender.NewAttributor(p.tables.NameGender, p.tok).Attribute(utts)

	bounds, err := chunking.NewDetector(p.roles).Detect(utts)
	if err != nil {
		log.WithError(err).Warn("malformed case, skipped")
		out.Stats.CasesSkipped++
		return out, nil
	}
	out.Boundaries = bounds

	ex := chunking.NewExtractor(c, p.roles, p.tables, p.tok, p.cfg.ChunkOptions(), log)
	res, err := ex.Extract(chunking.CaseInput{CaseID: caseID, Boundaries: bounds, Genders: genders}, exp)
	if err != nil {
		log.WithError(err).Warn("malformed case, skipped")
		out.Stats.CasesSkipped++
		return out, nil
	}

	if p.output {
		if err := writeChunks(p.cfg.Paths.Chunks, caseID, res.Records); err != nil {
			return out, fmt.Errorf("case %s: writing chunks: %w", caseID, err)
		}
		if p.cfg.Paths.Boundaries != "" {
			if err := writeBoundaries(p.cfg.Paths.Boundaries, caseID, bounds); err != nil {
				return out, fmt.Errorf("case %s: writing boundaries: %w", caseID, err)
			}
		}
	}
	if p.store != nil {
		if err := p.store.SaveCase(ctx, caseID, res.Records); err != nil {
			return out, fmt.Errorf("case %s: %w", caseID, err)
		}
	}
	exp.Commit(res.Advocates)

	out.Advocates = len(res.Advocates)
	out.Stats.CasesProcessed++
	out.Stats.Candidates = res.Candidates
	out.Stats.ChunksEmitted = len(res.Records)
	out.Stats.BackchannelsIgnored = res.BackchannelsIgnored
	log.WithFields(logrus.Fields{
		"boundaries": len(bounds),
		"candidates": res.Candidates,
		"chunks":     len(res.Records),
	}).Debug("case done")
	return out, nil
}

// reportLookupMisses logs each justice-labelled speaker without a tenure
// entry once and returns how many there were.
func (p *Pipeline) reportLookupMisses(log logrus.FieldLogger, utts []transcript.Utterance) int {
	seen := map[string]bool{}
	for _, u := range utts {
		if seen[u.SpeakerName] {
			continue
		}
		if _, err := p.roles.Resolve(u); err != nil && errors.Is(err, transcript.ErrLookupMiss) {
			seen[u.SpeakerName] = true
			log.WithError(err).Debug("speaker role unresolved")
		}
	}
	return len(seen)
}
