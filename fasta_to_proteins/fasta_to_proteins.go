// Package fasta_to_proteins turns a protein FASTA file into the protein table
// read by generate_peptides, numbering proteins sequentially.
package fasta_to_proteins

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"

	common "metapep_go/utils"
)

// Entry links an assigned protein id back to its FASTA record.
type Entry struct {
	ProteinID   uint64
	Accession   string
	Description string
	Length      int
}

// Options control id assignment and validation.
type Options struct {
	StartID  uint64
	Validate bool // abort on the first residue outside the amino-acid alphabet
}

// Convert reads FASTA records from r and writes a protein_id/protein_sequence
// table to table. When idMap is non-nil it receives protein_id, accession and
// description for every record.
func Convert(r io.Reader, table, idMap io.Writer, opts Options) ([]Entry, error) {
	if _, err := fmt.Fprintf(table, "%s\t%s\n", common.ColProteinID, common.ColProteinSequence); err != nil {
		return nil, err
	}
	if idMap != nil {
		if _, err := io.WriteString(idMap, "protein_id\taccession\tdescription\n"); err != nil {
			return nil, err
		}
	}

	var entries []Entry
	id := opts.StartID
	sc := seqio.NewScanner(fasta.NewReader(r, linear.NewSeq("", nil, alphabet.Protein)))
	for sc.Next() {
		s := sc.Seq().(*linear.Seq)

		buf := make([]byte, len(s.Seq))
		for i, l := range s.Seq {
			buf[i] = byte(l)
		}
		sequence := strings.ToUpper(string(buf))

		if opts.Validate {
			if err := common.ValidateSequence(id, sequence); err != nil {
				return entries, fmt.Errorf("record %s: %w", s.Name(), err)
			}
		}

		if _, err := fmt.Fprintf(table, "%d\t%s\n", id, sequence); err != nil {
			return entries, err
		}
		e := Entry{ProteinID: id, Accession: s.Name(), Description: s.Description(), Length: len(sequence)}
		if idMap != nil {
			desc := strings.ReplaceAll(e.Description, "\t", " ")
			if _, err := fmt.Fprintf(idMap, "%d\t%s\t%s\n", e.ProteinID, e.Accession, desc); err != nil {
				return entries, err
			}
		}
		entries = append(entries, e)
		id++
	}
	if err := sc.Error(); err != nil {
		return entries, fmt.Errorf("reading FASTA: %w", err)
	}
	return entries, nil
}

func Run(args []string) {
	fs := flag.NewFlagSet("fasta_to_proteins", flag.ExitOnError)
	inFile := fs.String("in_file", "", "Protein FASTA input (optionally gzipped)")
	outFile := fs.String("out_file", "proteins.tsv", "Output protein table (.gz to compress)")
	idMapFile := fs.String("id_map", "", "Optional output table: protein_id, accession, description")
	startID := fs.Uint64("start_id", 0, "First protein id to assign")
	validate := fs.Bool("validate", false, "Abort on residues outside the amino-acid alphabet")

	err := fs.Parse(args) // Parse inputs
	if err != nil {
		fmt.Println("Error parsing flags:", err)
		os.Exit(1)
	}
	if len(fs.Args()) > 0 {
		fmt.Printf("Unrecognized arguments: %v\n", fs.Args())
		fmt.Println("Use -h to view valid flags.")
		os.Exit(1)
	}
	if *inFile == "" {
		fmt.Fprintln(os.Stderr, "Error: -in_file is required")
		fs.Usage()
		os.Exit(1)
	}

	logger := common.Logger()

	in, err := common.OpenInput(*inFile)
	if err != nil {
		logger.Fatal("Failed to open FASTA", "path", *inFile, "err", err)
	}
	defer in.Close()

	table, err := common.CreateOutput(*outFile)
	if err != nil {
		logger.Fatal("Failed to create protein table", "path", *outFile, "err", err)
	}
	defer table.Close()

	var idMap io.WriteCloser
	if *idMapFile != "" {
		idMap, err = common.CreateOutput(*idMapFile)
		if err != nil {
			logger.Fatal("Failed to create id map", "path", *idMapFile, "err", err)
		}
		defer idMap.Close()
	}

	var mapWriter io.Writer
	if idMap != nil {
		mapWriter = idMap
	}
	entries, err := Convert(in, table, mapWriter, Options{StartID: *startID, Validate: *validate})
	if err != nil {
		logger.Fatal("Conversion failed", "path", *inFile, "err", err)
	}
	if err := table.Close(); err != nil {
		logger.Fatal("Failed to write protein table", "path", *outFile, "err", err)
	}
	if idMap != nil {
		if err := idMap.Close(); err != nil {
			logger.Fatal("Failed to write id map", "path", *idMapFile, "err", err)
		}
	}
	logger.Info("Wrote protein table", "path", *outFile, "proteins", len(entries))
}
