package main

import (
	"fmt"
	"os"
	"strings"

	"metapep_go/benchmark"
	version_control "metapep_go/config"
	"metapep_go/fasta_to_proteins"
	"metapep_go/peptide_generator"
	"metapep_go/peptide_report"
	"metapep_go/protein_gen"
	"metapep_go/protein_overview"
	"metapep_go/sanity_check"
	common "metapep_go/utils"
)

// printCustomHelp formats a custom help menu
func printCustomHelp() {
	fmt.Println(`metapep_go - Custom Help Menu
Usage:
  metapep_go <tool> [options]

Tools:
  generate_peptides	Slice proteins into peptides (peptides, proteins_peptides, proteins_lengths tables)
  protein_overview	Summary statistics and validation of a protein table
  peptide_report	Statistics, plots and consistency checks for generate_peptides output
  fasta_to_proteins	Convert a protein FASTA into a protein table
  protein_gen		Generate random protein tables or FASTA
  check			Run diagnostic test

Global Flags:
  -h, -help		Show this help message
  -v, -version		Show version information
  -verbose		Debug logging (per-chunk progress)
  -quiet		Only log warnings and errors

Benchmarking:
  -benchmark		Must be used in associtation with a tool.
			Displays computational resource usage and
			pertinent operating system information
  `,
	)
	os.Exit(0)
}

func printVersion() {
	fmt.Println("metapep_go - Version Information Menu")
	fmt.Println("Central Executable:")
	fmt.Printf("\tmetapep_go:\t\t%s\n", version_control.Main_version)
	fmt.Printf("\nModular tools:\n")
	fmt.Printf("\tPeptide Generator:\t%s\n", version_control.Peptide_Generator)
	fmt.Printf("\tProtein Overview:\t%s\n", version_control.Protein_Overview)
	fmt.Printf("\tPeptide Report:\t\t%s\n", version_control.Peptide_Report)
	fmt.Printf("\tFASTA to Proteins:\t%s\n", version_control.FASTA_To_Proteins)
	fmt.Printf("\tProtein Generator:\t%s\n", version_control.Protein_Generator)
	fmt.Printf("\tSanity Check:\t\t%s\n", version_control.Sanity_check)
	fmt.Printf("\tBenchmark:\t\t%s\n", version_control.Benchmark)

	fmt.Println("")

	os.Exit(0)
}

// Main controller
func main() {

	// If no arguments are given, show help
	if len(os.Args) < 2 {
		printCustomHelp()
	}

	// Scan for executible-specific help flags
	if len(os.Args) < 3 {
		if arg := os.Args[1]; arg == "-h" || arg == "-help" {
			printCustomHelp()
		}
	}

	// Version request
	for _, arg := range os.Args[1:] {
		if arg == "-v" || arg == "-version" {
			printVersion()
		}
	}

	toolName := os.Args[1]
	toolArgs := os.Args[2:]

	// Check for global flags
	benchmarking, verbose, quiet := false, false, false
	var cleanedArgs []string
	for _, arg := range toolArgs {
		switch arg {
		case "-benchmark":
			benchmarking = true
		case "-verbose":
			verbose = true
		case "-quiet":
			quiet = true
		default:
			cleanedArgs = append(cleanedArgs, arg)
		}
	}
	logger := common.SetupLogger(os.Stderr, verbose, quiet)

	// Tool execution wrapper
	run := func() {
		switch toolName {
		case "generate_peptides":
			peptide_generator.Run(cleanedArgs)
		case "protein_overview":
			protein_overview.Run(cleanedArgs)
		case "peptide_report":
			peptide_report.Run(cleanedArgs)
		case "fasta_to_proteins":
			fasta_to_proteins.Run(cleanedArgs)
		case "protein_gen":
			protein_gen.Run(cleanedArgs)
		case "check":
			sanity_check.Run(cleanedArgs)
		default:
			fmt.Printf("Unknown tool: %s\n", toolName)
			os.Exit(1)
		}
	}

	if benchmarking {
		label := fmt.Sprintf("metapep_go %s %s", toolName, strings.Join(cleanedArgs, " "))
		benchmark.Run(logger, label, run)
	} else {
		run()
	}
}
