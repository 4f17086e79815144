package analysis

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/maastricht-university/oralargs/chunking"
	"github.com/maastricht-university/oralargs/reference"
)

// FilterOptions control JoinFilter.
type FilterOptions struct {
	// MinNumChunksPerJust keeps justices with strictly more unique chunks.
	MinNumChunksPerJust int
	// IncludeFemIssue keeps chunks from cases on gender-related issues.
	IncludeFemIssue bool
}

// Row is one line of the final table. The embedded record's interruption
// rates are replaced by interruptions per thousand tokens.
type Row struct {
	chunking.Record
	JusticeGender     reference.Gender
	IdeologyMatches   int
	AdvIdeologyGender string
}

// FilterStats summarises one JoinFilter pass.
type FilterStats struct {
	Input            int
	KnownIdeology    int
	UnknownAdvocates int
	UnknownGender    int
	ValidJustices    []string
	AfterJusticeCut  int
	FemaleIssueDrops int
	Output           int
}

// perThousand is the interruption count per thousand tokens; zero tokens
// give zero.
func perThousand(count, toks int) float64 {
	if toks == 0 {
		return 0
	}
	return 1000 * float64(count) / float64(toks)
}

// JoinFilter builds the final table from selected records.
func JoinFilter(records []chunking.Record, justiceGender map[string]reference.Gender, opts FilterOptions, log logrus.FieldLogger) ([]Row, FilterStats) {
	st := FilterStats{Input: len(records)}
	unknownAdv := map[string]bool{}

	rows := make([]Row, 0, len(records))
	for _, r := range records {
		if !r.AdvocateIdeology.Known() {
			unknownAdv[r.AdvocateName] = true
			continue
		}
		if !r.AdvocateGender.Known() {
			st.UnknownGender++
			continue
		}
		g, ok := justiceGender[r.JusticeName]
		if !ok {
			log.WithField("justice", r.JusticeName).Warn("justice gender unknown")
			g = reference.UnknownGender
		}
		row := Row{
			Record:            r,
			JusticeGender:     g,
			AdvIdeologyGender: string(r.AdvocateGender) + "-" + string(r.AdvocateIdeology),
		}
		if r.AdvocateIdeology == r.JusticeIdeology {
			row.IdeologyMatches = 1
		}
		row.AdvInterruptionRate = perThousand(r.NumAdvUttsInterrupted, r.NumToksAdv)
		row.JusticeInterruptionRate = perThousand(r.NumJusticeUttsInterrupted, r.NumToksJustice)
		rows = append(rows, row)
	}
	st.KnownIdeology = len(rows)
	st.UnknownAdvocates = len(unknownAdv)

	chunksPerJustice := map[string]map[string]bool{}
	for _, row := range rows {
		set := chunksPerJustice[row.JusticeName]
		if set == nil {
			set = map[string]bool{}
			chunksPerJustice[row.JusticeName] = set
		}
		set[row.UttIDFirst] = true
	}
	valid := map[string]bool{}
	for name, set := range chunksPerJustice {
		if len(set) > opts.MinNumChunksPerJust {
			valid[name] = true
			st.ValidJustices = append(st.ValidJustices, name)
		}
	}
	sort.Strings(st.ValidJustices)

	kept := rows[:0]
	for _, row := range rows {
		if !valid[row.JusticeName] {
			continue
		}
		st.AfterJusticeCut++
		if !opts.IncludeFemIssue && row.FemaleIssue != 0 {
			st.FemaleIssueDrops++
			continue
		}
		kept = append(kept, row)
	}
	st.Output = len(kept)

	log.WithFields(logrus.Fields{
		"input":             st.Input,
		"known_ideology":    st.KnownIdeology,
		"unknown_advocates": st.UnknownAdvocates,
		"unknown_gender":    st.UnknownGender,
		"valid_justices":    len(st.ValidJustices),
		"after_justice":     st.AfterJusticeCut,
		"output":            st.Output,
	}).Info("final table built")
	return kept, st
}

// Header is the column order of the final table.
var Header = []string{
	"case_id", "case_year", "justice_name", "advocate_name", "utt_id_first", "utt_id_last",
	"advocate_gender", "num_utts", "num_utts_adv", "num_utts_justice",
	"num_toks_total", "num_toks_adv", "num_toks_justice",
	"advocate_ideology", "justice_ideology", "adv_experience_int", "adv_experience_bin", "female_issue",
	"num_adv_utts_interrupted", "num_justice_utts_interrupted",
	"adv_interruption_rate", "justice_interruption_rate",
	"num_adv_disfl", "num_justice_disfl",
	"num_adv_toks_in_utts_interrupted", "num_justice_toks_in_utts_interrupted",
	"justice_gender", "ideology_matches", "adv_ideology_gender",
}

func (r Row) fields() []string {
	itoa := strconv.Itoa
	ftoa := func(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }
	return []string{
		r.CaseID, itoa(r.CaseYear), r.JusticeName, r.AdvocateName, r.UttIDFirst, r.UttIDLast,
		string(r.AdvocateGender), itoa(r.NumUtts), itoa(r.NumUttsAdv), itoa(r.NumUttsJustice),
		itoa(r.NumToksTotal), itoa(r.NumToksAdv), itoa(r.NumToksJustice),
		string(r.AdvocateIdeology), string(r.JusticeIdeology), itoa(r.AdvExperienceInt), itoa(r.AdvExperienceBin), itoa(r.FemaleIssue),
		itoa(r.NumAdvUttsInterrupted), itoa(r.NumJusticeUttsInterrupted),
		ftoa(r.AdvInterruptionRate), ftoa(r.JusticeInterruptionRate),
		itoa(r.NumAdvDisfl), itoa(r.NumJusticeDisfl),
		itoa(r.NumAdvToksInUttsInterrupted), itoa(r.NumJusticeToksInUttsInterrupted),
		string(r.JusticeGender), itoa(r.IdeologyMatches), r.AdvIdeologyGender,
	}
}

// WriteCSV writes rows under Header.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write(r.fields()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveCSV writes rows to path, creating its directory.
func SaveCSV(path string, rows []Row) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteCSV(f, rows); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
