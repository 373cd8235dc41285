package peptide_report

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	common "metapep_go/utils"
)

// ProteinLength is one row of the protein-length table.
type ProteinLength struct {
	ProteinID uint64
	Length    int
}

// Peptide is one row of the peptide table.
type Peptide struct {
	ID       uint64
	Sequence string
}

// Occurrence is one row of the protein-peptide table.
type Occurrence struct {
	ProteinID uint64
	PeptideID uint64
	Count     uint64
}

// Tables holds the generator outputs in memory.
// Peptides is nil when the peptide table was not supplied.
type Tables struct {
	Lengths     []ProteinLength
	Peptides    []Peptide
	Occurrences []Occurrence
}

// readRows reads a TSV with the given required columns and hands each row to fn.
func readRows(r io.Reader, path string, cols []string, fn func(fields []string, line int) error) error {
	cr := common.NewTSVReader(r)
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return &common.TableFormatError{Path: path, Reason: "empty file, expected a header row"}
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	idx, err := common.HeaderIndex(header, path, cols...)
	if err != nil {
		return err
	}
	fields := make([]string, len(cols))
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		line, _ := cr.FieldPos(0)
		for i, c := range cols {
			fields[i] = rec[idx[c]]
		}
		if err := fn(fields, line); err != nil {
			return err
		}
	}
}

// ReadLengths reads a protein_id/protein_length table.
func ReadLengths(r io.Reader, path string) ([]ProteinLength, error) {
	var rows []ProteinLength
	err := readRows(r, path, []string{"protein_id", "protein_length"}, func(f []string, line int) error {
		id, err := common.ParseID(f[0], "protein_id", path, line)
		if err != nil {
			return err
		}
		n, err := common.ParseID(f[1], "protein_length", path, line)
		if err != nil {
			return err
		}
		rows = append(rows, ProteinLength{ProteinID: id, Length: int(n)})
		return nil
	})
	return rows, err
}

// ReadPeptides reads a peptide_id/peptide_sequence table.
func ReadPeptides(r io.Reader, path string) ([]Peptide, error) {
	var rows []Peptide
	err := readRows(r, path, []string{"peptide_id", "peptide_sequence"}, func(f []string, line int) error {
		id, err := common.ParseID(f[0], "peptide_id", path, line)
		if err != nil {
			return err
		}
		rows = append(rows, Peptide{ID: id, Sequence: f[1]})
		return nil
	})
	return rows, err
}

// ReadOccurrences reads a protein_id/peptide_id/count table.
func ReadOccurrences(r io.Reader, path string) ([]Occurrence, error) {
	var rows []Occurrence
	err := readRows(r, path, []string{"protein_id", "peptide_id", "count"}, func(f []string, line int) error {
		pid, err := common.ParseID(f[0], "protein_id", path, line)
		if err != nil {
			return err
		}
		pep, err := common.ParseID(f[1], "peptide_id", path, line)
		if err != nil {
			return err
		}
		n, err := strconv.ParseUint(f[2], 10, 64)
		if err != nil {
			return &common.TableFormatError{Path: path, Line: line, Reason: fmt.Sprintf("count %q is not a non-negative integer", f[2])}
		}
		rows = append(rows, Occurrence{ProteinID: pid, PeptideID: pep, Count: n})
		return nil
	})
	return rows, err
}

func readFile[T any](path string, read func(io.Reader, string) (T, error)) (T, error) {
	var zero T
	in, err := common.OpenInput(path)
	if err != nil {
		return zero, err
	}
	defer in.Close()
	return read(in, path)
}

// LoadTables reads the generator outputs. peptidesPath may be empty.
func LoadTables(lengthsPath, occurrencesPath, peptidesPath string) (*Tables, error) {
	var t Tables
	var err error
	if t.Lengths, err = readFile(lengthsPath, ReadLengths); err != nil {
		return nil, err
	}
	if t.Occurrences, err = readFile(occurrencesPath, ReadOccurrences); err != nil {
		return nil, err
	}
	if peptidesPath != "" {
		if t.Peptides, err = readFile(peptidesPath, ReadPeptides); err != nil {
			return nil, err
		}
		if t.Peptides == nil {
			t.Peptides = []Peptide{}
		}
	}
	return &t, nil
}
