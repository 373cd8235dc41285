package peptide_generator

import (
	"fmt"
	"io"
	"strconv"

	common "metapep_go/utils"
)

// Output table headers.
const (
	PeptidesHeader         = "peptide_id\tpeptide_sequence\n"
	ProteinsPeptidesHeader = "protein_id\tpeptide_id\tcount\n"
	ProteinsLengthsHeader  = "protein_id\tprotein_length\n"
)

// TableWriter appends chunks to the peptide and protein-peptide tables.
// Headers are written once, when the writer is created.
type TableWriter struct {
	peptides    io.Writer
	occurrences io.Writer
	buf         []byte
}

// NewTableWriter writes both headers and returns a writer for chunk rows.
func NewTableWriter(peptides, occurrences io.Writer) (*TableWriter, error) {
	if _, err := io.WriteString(peptides, PeptidesHeader); err != nil {
		return nil, fmt.Errorf("writing peptides header: %w", err)
	}
	if _, err := io.WriteString(occurrences, ProteinsPeptidesHeader); err != nil {
		return nil, fmt.Errorf("writing proteins_peptides header: %w", err)
	}
	return &TableWriter{peptides: peptides, occurrences: occurrences}, nil
}

// WriteChunk appends the chunk's peptides and occurrences.
func (t *TableWriter) WriteChunk(c Chunk) error {
	for _, p := range c.Peptides {
		t.buf = strconv.AppendUint(t.buf[:0], p.ID, 10)
		t.buf = append(t.buf, '\t')
		t.buf = append(t.buf, p.Sequence...)
		t.buf = append(t.buf, '\n')
		if _, err := t.peptides.Write(t.buf); err != nil {
			return fmt.Errorf("writing peptides: %w", err)
		}
	}
	for _, o := range c.Occurrences {
		t.buf = strconv.AppendUint(t.buf[:0], o.ProteinID, 10)
		t.buf = append(t.buf, '\t')
		t.buf = strconv.AppendUint(t.buf, o.PeptideID, 10)
		t.buf = append(t.buf, '\t')
		t.buf = strconv.AppendUint(t.buf, uint64(o.Count), 10)
		t.buf = append(t.buf, '\n')
		if _, err := t.occurrences.Write(t.buf); err != nil {
			return fmt.Errorf("writing proteins_peptides: %w", err)
		}
	}
	return nil
}

// WriteProteinLengths writes one protein_id/protein_length row per protein, in input order.
func WriteProteinLengths(w io.Writer, proteins []common.Protein) error {
	if _, err := io.WriteString(w, ProteinsLengthsHeader); err != nil {
		return err
	}
	for _, p := range proteins {
		if _, err := fmt.Fprintf(w, "%d\t%d\n", p.ID, len(p.Sequence)); err != nil {
			return err
		}
	}
	return nil
}
