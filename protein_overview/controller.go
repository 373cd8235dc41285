package protein_overview

import (
	"flag"
	"fmt"
	"os"

	common "metapep_go/utils"
)

func Run(args []string) {
	fs := flag.NewFlagSet("protein_overview", flag.ExitOnError)
	inFile := fs.String("in_file", "", "Input protein table (protein_id, protein_sequence; optionally gzipped)")
	minLen := fs.Int("min_len", 9, "Min. peptide length to report short proteins for")
	maxLen := fs.Int("max_len", 11, "Max. peptide length to report short proteins for")
	strict := fs.Bool("strict", false, "Exit with status 1 if generate_peptides would reject the table")
	err := fs.Parse(args) // Parse inputs
	if err != nil {
		fmt.Println("Error parsing flags:", err) // Check for outright input failures
		os.Exit(1)                              // E.g., expected int by recieved str
	}

	if len(fs.Args()) > 0 { // If unparsed arguments remain:
		fmt.Printf("Unrecognized arguments: %v\n", fs.Args()) // Flag the error and report it
		fmt.Println("Use -h to view valid flags.")
		os.Exit(1)
	}

	if *inFile == "" {
		fmt.Fprintln(os.Stderr, "Error: -in_file is required")
		fs.Usage()
		os.Exit(1)
	}

	logger := common.Logger()
	proteins, err := common.ReadProteinTableFile(*inFile)
	if err != nil {
		logger.Fatal("Failed to read protein table", "path", *inFile, "err", err)
	}

	var lengths []int
	for k := *minLen; k <= *maxLen; k++ {
		lengths = append(lengths, k)
	}
	report := CheckProteins(proteins, *inFile, lengths)
	PrintProteinReport(os.Stdout, report)

	if *strict && report.FirstInvalid != nil {
		logger.Error("Protein table would be rejected", "err", report.FirstInvalid)
		os.Exit(1)
	}
}
