package common

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Protein is one row of a protein table. Sequence is uppercased on load.
type Protein struct {
	ID       uint64
	Sequence string
}

// TableFormatError reports a structural problem in a TSV input table.
type TableFormatError struct {
	Path   string
	Line   int
	Reason string
}

func (e *TableFormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("malformed table %s (line %d): %s", e.Path, e.Line, e.Reason)
	}
	return fmt.Sprintf("malformed table %s: %s", e.Path, e.Reason)
}

const (
	ColProteinID       = "protein_id"
	ColProteinSequence = "protein_sequence"
)

// NewTSVReader returns a csv.Reader configured for tab-separated tables.
func NewTSVReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.LazyQuotes = true
	cr.ReuseRecord = true
	return cr
}

// HeaderIndex maps the columns of a header row to their positions and checks
// that every required column is present.
func HeaderIndex(header []string, path string, required ...string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		idx[h] = i
	}
	var missing []string
	for _, col := range required {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &TableFormatError{Path: path, Line: 1, Reason: "missing required column(s): " + strings.Join(missing, ", ")}
	}
	return idx, nil
}

// ParseID parses a non-negative integer identifier column value.
func ParseID(field, column, path string, line int) (uint64, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(field), 10, 64)
	if err != nil {
		return 0, &TableFormatError{Path: path, Line: line, Reason: fmt.Sprintf("%s %q is not a non-negative integer", column, field)}
	}
	return id, nil
}

// ReadProteinTable reads a protein table with at least the columns
// protein_id and protein_sequence. Extra columns are ignored.
func ReadProteinTable(r io.Reader, path string) ([]Protein, error) {
	cr := NewTSVReader(r)
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, &TableFormatError{Path: path, Reason: "empty file, expected a header row"}
	}
	if err != nil {
		return nil, wrapCSVError(err, path)
	}
	idx, err := HeaderIndex(header, path, ColProteinID, ColProteinSequence)
	if err != nil {
		return nil, err
	}
	idCol, seqCol := idx[ColProteinID], idx[ColProteinSequence]

	var proteins []Protein
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, wrapCSVError(err, path)
		}
		line, _ := cr.FieldPos(0)
		id, err := ParseID(rec[idCol], ColProteinID, path, line)
		if err != nil {
			return nil, err
		}
		proteins = append(proteins, Protein{
			ID:       id,
			Sequence: strings.ToUpper(strings.TrimSpace(rec[seqCol])),
		})
	}
	return proteins, nil
}

// ReadProteinTableFile opens path (plain or gzip) and reads its protein table.
func ReadProteinTableFile(path string) ([]Protein, error) {
	in, err := OpenInput(path)
	if err != nil {
		return nil, err
	}
	defer in.Close()
	return ReadProteinTable(in, path)
}

// WriteProteinTable writes proteins as a protein_id/protein_sequence table.
func WriteProteinTable(w io.Writer, proteins []Protein) error {
	if _, err := fmt.Fprintf(w, "%s\t%s\n", ColProteinID, ColProteinSequence); err != nil {
		return err
	}
	for _, p := range proteins {
		if _, err := fmt.Fprintf(w, "%d\t%s\n", p.ID, p.Sequence); err != nil {
			return err
		}
	}
	return nil
}

func wrapCSVError(err error, path string) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &TableFormatError{Path: path, Line: pe.Line, Reason: pe.Err.Error()}
	}
	return fmt.Errorf("reading %s: %w", path, err)
}
