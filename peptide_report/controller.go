package peptide_report

import (
	"flag"
	"fmt"
	"os"

	common "metapep_go/utils"
)

// PrintSummary writes the statistics in the same key: value layout as the HTML table.
func PrintSummary(stats PeptideStats) {
	fmt.Printf("Proteins:                  %d (%d with peptides)\n", stats.Proteins, stats.ProteinsWithPeptides)
	fmt.Printf("Unique peptides:           %d\n", stats.UniquePeptides)
	fmt.Printf("Protein-peptide rows:      %d\n", stats.OccurrenceRows)
	fmt.Printf("Total peptide windows:     %d\n", stats.TotalWindows)
	fmt.Printf("Protein length:            min %d, max %d, mean %.2f, stddev %.2f, median %.0f\n",
		stats.MinProteinLength, stats.MaxProteinLength, stats.MeanProteinLength, stats.ProteinLengthStdDev, stats.MedianProteinLength)
	fmt.Printf("Mean peptides per protein: %.2f\n", stats.MeanPeptidesPerProtein)
	for _, k := range stats.SortedLengths() {
		fmt.Printf("  length %d: %d unique, %d windows\n", k, stats.PeptidesPerLength[k], stats.WindowsPerLength[k])
	}
}

func Run(args []string) {
	fs := flag.NewFlagSet("peptide_report", flag.ExitOnError)

	lengthsFile := fs.String("proteins_lengths", "", "Protein length table from generate_peptides")
	occurrencesFile := fs.String("proteins_peptides", "", "Protein-peptide table from generate_peptides")
	peptidesFile := fs.String("peptides", "", "Peptide table from generate_peptides (enables per-length stats and full verification)")
	minLen := fs.Int("min_len", 9, "Min. peptide length used for generation")
	maxLen := fs.Int("max_len", 11, "Max. peptide length used for generation")
	verify := fs.Bool("verify", false, "Check table consistency and exit with status 1 on any violation")
	outFile := fs.String("out_file", "peptide_report", "Prefix for CSV/HTML report")
	csvOut := fs.Bool("csv_out", false, "Write summary statistics in csv form")
	htmlOut := fs.Bool("html", false, "Write summary statistics and graphs to an HTML file")

	err := fs.Parse(args) // Parse inputs
	if err != nil {
		fmt.Println("Error parsing flags:", err) // Check for outright input failures
		os.Exit(1)                              // e.g., expected int by recieved str
	}

	if len(fs.Args()) > 0 { // If unparsed arguments remain:
		fmt.Printf("Unrecognized arguments: %v\n", fs.Args()) // Flag the error and report it
		fmt.Println("Use -h to view valid flags.")
		os.Exit(1)
	}

	if *lengthsFile == "" || *occurrencesFile == "" {
		fmt.Println("Error: -proteins_lengths and -proteins_peptides are required")
		fs.Usage()
		os.Exit(1)
	}

	logger := common.Logger()
	if *minLen < 1 {
		logger.Warn("min_len below 1 yields no peptides, using 1", "min_len", *minLen)
		*minLen = 1
	}

	tables, err := LoadTables(*lengthsFile, *occurrencesFile, *peptidesFile)
	if err != nil {
		logger.Fatal("Failed to load tables", "err", err)
	}
	stats := ComputeStats(tables)
	PrintSummary(stats)

	if *csvOut {
		if err := WriteCSVReport(*outFile, stats); err != nil {
			logger.Error("Failed to write CSV", "err", err)
		} else {
			logger.Info("Wrote summary CSV", "path", *outFile+".csv")
		}
	}

	if *htmlOut {
		lengths := make([]float64, len(tables.Lengths))
		for i, l := range tables.Lengths {
			lengths[i] = float64(l.Length)
		}
		svgLength, err := GenerateProteinLengthPlotSVG(lengths)
		if err != nil {
			logger.Warn("Failed to generate protein length plot", "err", err)
			svgLength = "<p>Graph unavailable</p>"
		}
		svgPeptides, err := GeneratePeptidesPerLengthPlotSVG(stats)
		if err != nil {
			logger.Warn("Failed to generate peptides per length plot", "err", err)
			svgPeptides = "<p>Graph unavailable</p>"
		}
		if err := WriteHTMLReport(*outFile, stats, svgLength, svgPeptides); err != nil {
			logger.Fatal("Failed to write HTML", "err", err)
		}
		logger.Info("Wrote HTML report", "path", *outFile+".html")
	}

	if *verify {
		if tables.Peptides == nil {
			logger.Warn("No peptide table given, peptide-level checks skipped")
		}
		violations := Verify(tables, *minLen, *maxLen)
		for _, v := range violations {
			logger.Error("Inconsistent tables", "err", v)
		}
		if len(violations) > 0 {
			os.Exit(1)
		}
		logger.Info("Tables are consistent")
	}
}
