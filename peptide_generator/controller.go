package peptide_generator

import (
	"flag"
	"fmt"
	"io"
	"os"

	"metapep_go/benchmark"
	"metapep_go/config"
	common "metapep_go/utils"
)

// Config names the input table, the three output tables and the peptide length range.
type Config struct {
	Proteins         string
	Peptides         string
	ProteinsPeptides string
	ProteinsLengths  string
	MinLen           int
	MaxLen           int
	MemLog           bool
}

// GenerateFiles loads and validates the protein table, writes the protein lengths,
// then generates the peptide and protein-peptide tables chunk by chunk.
// Nothing is created until the whole protein table has passed validation.
func GenerateFiles(cfg Config) (Summary, error) {
	logger := common.Logger()

	proteins, err := common.ReadProteinTableFile(cfg.Proteins)
	if err != nil {
		return Summary{}, err
	}
	if err := common.ValidateProteins(proteins); err != nil {
		return Summary{}, err
	}
	logger.Info("Loaded proteins", "path", cfg.Proteins, "proteins", len(proteins))
	if cfg.MemLog {
		benchmark.LogMemory(logger, "memory after loading proteins")
	}

	if err := writeFile(cfg.ProteinsLengths, func(w io.Writer) error {
		return WriteProteinLengths(w, proteins)
	}); err != nil {
		return Summary{}, fmt.Errorf("protein lengths: %w", err)
	}

	pepOut, err := common.CreateOutput(cfg.Peptides)
	if err != nil {
		return Summary{}, err
	}
	defer pepOut.Close()
	occOut, err := common.CreateOutput(cfg.ProteinsPeptides)
	if err != nil {
		return Summary{}, err
	}
	defer occOut.Close()

	tw, err := NewTableWriter(pepOut, occOut)
	if err != nil {
		return Summary{}, err
	}
	summary, err := Generate(proteins, cfg.MinLen, cfg.MaxLen, NewCounter(0), tw, Options{MemLog: cfg.MemLog})
	if err != nil {
		return summary, err
	}

	if err := pepOut.Close(); err != nil {
		return summary, fmt.Errorf("closing %s: %w", cfg.Peptides, err)
	}
	if err := occOut.Close(); err != nil {
		return summary, fmt.Errorf("closing %s: %w", cfg.ProteinsPeptides, err)
	}
	return summary, nil
}

func writeFile(path string, fn func(io.Writer) error) error {
	out, err := common.CreateOutput(path)
	if err != nil {
		return err
	}
	if err := fn(out); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// Run executes the generate_peptides command.
func Run(args []string) {
	fs := flag.NewFlagSet("generate_peptides", flag.ExitOnError) // Isolated flag set for the "generate_peptides" subcommand

	proteins := fs.String("proteins", "", "TSV (optionally gzipped) with columns protein_id, protein_sequence")
	minLen := fs.Int("min_len", 9, "Min. peptide length")
	maxLen := fs.Int("max_len", 11, "Max. peptide length")
	peptides := fs.String("peptides", "peptides.tsv.gz", "Output file: peptide_id, peptide_sequence")
	proteinsPeptides := fs.String("proteins_peptides", "proteins_peptides.tsv", "Output file: protein_id, peptide_id, count")
	proteinsLengths := fs.String("proteins_lengths", "proteins_lengths.tsv", "Output file: protein_id, protein_length")
	memLog := fs.Bool("mem_log", false, "Log heap usage after every chunk")
	paramsFile := fs.String("params_file", "", "Optional key=value file providing defaults for any of these flags")

	err := fs.Parse(args) // Parse inputs
	if err != nil {
		fmt.Println("Error parsing flags:", err)
		os.Exit(1)
	}

	if len(fs.Args()) > 0 { // If unparsed arguments remain:
		fmt.Printf("Unrecognized arguments: %v\n", fs.Args()) // Flag the error and report it
		fmt.Println("Use -h to view valid flags.")
		os.Exit(1)
	}

	logger := common.Logger()

	if *paramsFile != "" {
		params, err := config.LoadParams(*paramsFile)
		if err != nil {
			logger.Fatal("Failed to load params", "err", err)
		}
		if err := params.Apply(fs); err != nil {
			logger.Fatal("Invalid params", "path", *paramsFile, "err", err)
		}
	}

	if *proteins == "" {
		fmt.Fprintln(os.Stderr, "Error: -proteins is required")
		fs.Usage()
		os.Exit(1)
	}
	if *minLen > *maxLen {
		logger.Warn("min_len is greater than max_len, no peptides will be generated", "min_len", *minLen, "max_len", *maxLen)
	}

	summary, err := GenerateFiles(Config{
		Proteins:         *proteins,
		Peptides:         *peptides,
		ProteinsPeptides: *proteinsPeptides,
		ProteinsLengths:  *proteinsLengths,
		MinLen:           *minLen,
		MaxLen:           *maxLen,
		MemLog:           *memLog,
	})
	if err != nil {
		logger.Fatal("Peptide generation failed", "err", err)
	}

	logger.Info("Done!",
		"proteins", summary.Proteins,
		"peptides", summary.Peptides,
		"protein_peptide_rows", summary.Occurrences,
		"chunks", summary.Chunks,
	)
}
