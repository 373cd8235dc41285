package config

// Version system:
// vMAJOR.MINOR.PATCH

// Centralized version control
const (
	// Executible
	Main_version = "v1.2.0"

	// Modular tools
	Benchmark          = "v1.1.0"
	Peptide_Generator  = "v2.1.0" // Formerly "Kmer_Analyzer"
	Protein_Overview   = "v1.0.0"
	Peptide_Report     = "v1.0.0"
	FASTA_To_Proteins  = "v1.0.0"
	Protein_Generator  = "v1.1.0" // Formerly "Seq_Generator"
	Sanity_check       = "v1.0.0"
)
