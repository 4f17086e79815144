package reference

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/encoding/charmap"
)

// ArgumentDateLayout is the layout of dateArgument in the SCDB docket CSV.
const ArgumentDateLayout = "1/2/2006"

// Decision direction codes of the SCDB.
const (
	DirectionConservative = 1
	DirectionLiberal      = 2
)

// Docket is the subset of an SCDB docket row the pipeline joins on. Zero
// numeric values mean the column was empty.
type Docket struct {
	ID                string
	ArgumentDate      time.Time // zero when absent
	DecisionDirection int
	Issue             int
}

// DocketTable indexes SCDB docket rows by docketId. When a docket appears
// more than once the first row wins.
type DocketTable struct {
	rows map[string]Docket
}

// NewDocketTable indexes rows.
func NewDocketTable(rows ...Docket) *DocketTable {
	t := &DocketTable{rows: make(map[string]Docket, len(rows))}
	for _, d := range rows {
		if _, dup := t.rows[d.ID]; !dup {
			t.rows[d.ID] = d
		}
	}
	return t
}

func (t *DocketTable) Len() int { return len(t.rows) }

// Docket returns the row for docketID.
func (t *DocketTable) Docket(docketID string) (Docket, bool) {
	d, ok := t.rows[docketID]
	return d, ok
}

// LoadDockets reads the SCDB docket-centred CSV, which is distributed in
// Windows-1252.
func LoadDockets(path string) (*DocketTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dockets: %w", err)
	}
	defer f.Close()
	return ReadDockets(charmap.Windows1252.NewDecoder().Reader(f))
}

// ReadDockets parses docket rows from UTF-8 CSV.
func ReadDockets(r io.Reader) (*DocketTable, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("dockets header: %w", err)
	}
	cols := columnIndex(header)
	idCol, ok := cols["docketId"]
	if !ok {
		return nil, fmt.Errorf("dockets: no docketId column")
	}
	dateCol, hasDate := cols["dateArgument"]
	dirCol, hasDir := cols["decisionDirection"]
	issueCol, hasIssue := cols["issue"]
	if !hasDate {
		dateCol = -1
	}
	if !hasDir {
		dirCol = -1
	}
	if !hasIssue {
		issueCol = -1
	}

	var rows []Docket
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("dockets line %d: %w", line, err)
		}
		d := Docket{
			ID:                field(rec, idCol),
			DecisionDirection: parseCode(field(rec, dirCol)),
			Issue:             parseCode(field(rec, issueCol)),
		}
		if raw := field(rec, dateCol); raw != "" {
			// some exports carry a time of day after the date
			datePart, _, _ := strings.Cut(raw, " ")
			if at, err := time.Parse(ArgumentDateLayout, datePart); err == nil {
				d.ArgumentDate = at
			}
		}
		rows = append(rows, d)
	}
	return NewDocketTable(rows...), nil
}

// parseCode reads an integer code that pandas-era exports may have written
// as a float ("20130.0"). Empty or unparsable values yield 0.
func parseCode(s string) int {
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) {
		return 0
	}
	return int(f)
}
