package protein_gen

import (
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	common "metapep_go/utils"
)

// WriteFasta writes proteins as FASTA records named protein_<id>.
func WriteFasta(w io.Writer, proteins []common.Protein) error {
	for _, p := range proteins {
		if _, err := fmt.Fprintf(w, ">protein_%d\n%s", p.ID, WrapFasta(p.Sequence, 60)); err != nil {
			return err
		}
	}
	return nil
}

func Run(args []string) {
	fs := flag.NewFlagSet("protein_gen", flag.ExitOnError)

	n := fs.Int("n", 100, "Number of proteins")
	minLength := fs.Int("min_length", 50, "Minimum protein length")
	maxLength := fs.Int("max_length", 500, "Maximum protein length")
	extended := fs.Bool("extended", false, "Also draw the extended codes B, J, O, U, X, Z")
	startID := fs.Uint64("start_id", 0, "First protein id")
	seed := fs.Int64("seed", 0, "Random seed (0 = time based)")
	format := fs.String("format", "tsv", "Output format: tsv (protein table) or fasta")
	outFile := fs.String("out_file", "", "Output file (.gz to compress); stdout if empty")

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

	logger := common.Logger()

	if *n < 0 || *minLength < 1 || *maxLength < *minLength {
		logger.Fatal("Invalid size options", "n", *n, "min_length", *minLength, "max_length", *maxLength)
	}

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(*seed))
	proteins := GenerateProteins(rng, *n, *minLength, *maxLength, *startID, *extended)

	var out io.Writer = os.Stdout
	if *outFile != "" {
		f, err := common.CreateOutput(*outFile)
		if err != nil {
			logger.Fatal("Failed to create output", "path", *outFile, "err", err)
		}
		defer f.Close()
		out = f
	}

	switch *format {
	case "tsv":
		err = common.WriteProteinTable(out, proteins)
	case "fasta":
		err = WriteFasta(out, proteins)
	default:
		logger.Fatal("Unknown format", "format", *format)
	}
	if err != nil {
		logger.Fatal("Failed to write proteins", "err", err)
	}
	if c, ok := out.(io.Closer); ok && *outFile != "" {
		if err := c.Close(); err != nil {
			logger.Fatal("Failed to write proteins", "path", *outFile, "err", err)
		}
	}
	logger.Info("Generated proteins", "n", len(proteins), "seed", *seed, "out_file", *outFile)
}
