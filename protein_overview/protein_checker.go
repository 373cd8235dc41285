package protein_overview

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"

	common "metapep_go/utils"
)

// ProteinCheckReport defines structure for protein table statistics
type ProteinCheckReport struct {
	FileName          string
	TotalProteins     int
	DuplicateIDs      []uint64
	EmptySequences    int
	InvalidProteins   int           // proteins that would abort generate_peptides
	InvalidResidues   map[rune]int  // residue -> occurrences
	FirstInvalid      error         // first validation failure, as generate_peptides reports it
	AminoAcidCounts   map[byte]int
	AmbiguousResidues map[byte]int  // extended codes B, J, O, U, X, Z
	TotalResidues     int
	HydrophobicCount  int
	HydrophilicCount  int
	ChargedPositive   int
	ChargedNegative   int
	MinLength         int
	MaxLength         int
	MeanLength        float64
	StdDevLength      float64
	MedianLength      float64
	ShorterThan       map[int]int // peptide length -> proteins too short to yield one
}

var hydrophobic = map[byte]bool{'A': true, 'V': true, 'I': true, 'L': true, 'M': true, 'F': true, 'Y': true, 'W': true}
var hydrophilic = map[byte]bool{'R': true, 'N': true, 'D': true, 'Q': true, 'E': true, 'K': true, 'S': true, 'T': true, 'H': true}
var positiveCharged = map[byte]bool{'R': true, 'H': true, 'K': true}
var negativeCharged = map[byte]bool{'D': true, 'E': true}

// CheckProteins analyzes proteins without aborting on invalid residues.
// peptideLengths lists the lengths for which short proteins are counted.
func CheckProteins(proteins []common.Protein, fileName string, peptideLengths []int) ProteinCheckReport {
	report := ProteinCheckReport{
		FileName:          fileName,
		TotalProteins:     len(proteins),
		InvalidResidues:   make(map[rune]int),
		AminoAcidCounts:   make(map[byte]int),
		AmbiguousResidues: make(map[byte]int),
		ShorterThan:       make(map[int]int),
	}

	seen := make(map[uint64]bool, len(proteins))
	lengths := make([]float64, 0, len(proteins))
	for _, p := range proteins {
		if seen[p.ID] {
			report.DuplicateIDs = append(report.DuplicateIDs, p.ID)
		}
		seen[p.ID] = true

		if p.Sequence == "" {
			report.EmptySequences++
		}
		lengths = append(lengths, float64(len(p.Sequence)))
		for _, k := range peptideLengths {
			if len(p.Sequence) < k {
				report.ShorterThan[k]++
			}
		}

		if err := common.ValidateSequence(p.ID, p.Sequence); err != nil {
			report.InvalidProteins++
			if report.FirstInvalid == nil {
				report.FirstInvalid = err
			}
		}

		for _, r := range p.Sequence {
			if r > 0xFF || !common.IsAminoAcid(byte(r)) {
				report.InvalidResidues[r]++
				continue
			}
			aa := byte(r)
			report.AminoAcidCounts[aa]++
			report.TotalResidues++
			if strings.IndexByte(common.ExtendedAminoAcids, aa) >= 0 {
				report.AmbiguousResidues[aa]++
			}
			if hydrophobic[aa] {
				report.HydrophobicCount++
			} else if hydrophilic[aa] {
				report.HydrophilicCount++
			}
			if positiveCharged[aa] {
				report.ChargedPositive++
			}
			if negativeCharged[aa] {
				report.ChargedNegative++
			}
		}
	}

	if len(lengths) > 0 {
		sort.Float64s(lengths)
		report.MinLength = int(lengths[0])
		report.MaxLength = int(lengths[len(lengths)-1])
		report.MeanLength, report.StdDevLength = stat.MeanStdDev(lengths, nil)
		report.MedianLength = stat.Quantile(0.5, stat.Empirical, lengths, nil)
	}
	return report
}

// PrintProteinReport displays protein table results
func PrintProteinReport(w io.Writer, report ProteinCheckReport) {
	fmt.Fprintf(w, "Protein Table Report: %s\n", report.FileName)
	fmt.Fprintln(w, strings.Repeat("-", 40))

	fmt.Fprintf(w, "Total proteins: %d\n", report.TotalProteins)
	if len(report.DuplicateIDs) > 0 {
		fmt.Fprintf(w, "Duplicate protein ids found: %d (first: %d)\n", len(report.DuplicateIDs), report.DuplicateIDs[0])
	} else {
		fmt.Fprintln(w, "No duplicate protein ids found")
	}
	if report.EmptySequences > 0 {
		fmt.Fprintf(w, "Empty sequences: %d\n", report.EmptySequences)
	}

	if report.TotalProteins > 0 {
		fmt.Fprintf(w, "\nProtein length: min %d, max %d, mean %.2f, stddev %.2f, median %.0f\n",
			report.MinLength, report.MaxLength, report.MeanLength, report.StdDevLength, report.MedianLength)
	}

	if len(report.ShorterThan) > 0 {
		ks := make([]int, 0, len(report.ShorterThan))
		for k := range report.ShorterThan {
			ks = append(ks, k)
		}
		sort.Ints(ks)
		fmt.Fprintln(w, "\nProteins yielding no peptides:")
		for _, k := range ks {
			fmt.Fprintf(w, "  length %d: %d\n", k, report.ShorterThan[k])
		}
	}

	if report.TotalResidues > 0 {
		fmt.Fprintln(w, "\nAmino acid composition:")
		for i := 0; i < len(common.AminoAcids); i++ {
			aa := common.AminoAcids[i]
			count := report.AminoAcidCounts[aa]
			if count == 0 {
				continue
			}
			percent := float64(count) / float64(report.TotalResidues) * 100
			fmt.Fprintf(w, "  %c: %6d (%.2f%%)\n", aa, count, percent)
		}

		fmt.Fprintf(w, "\nResidue class composition:\n")
		fmt.Fprintf(w, "  Hydrophobic: %.2f%%\n", float64(report.HydrophobicCount)/float64(report.TotalResidues)*100)
		fmt.Fprintf(w, "  Hydrophilic: %.2f%%\n", float64(report.HydrophilicCount)/float64(report.TotalResidues)*100)

		fmt.Fprintf(w, "\nCharged residues:\n")
		fmt.Fprintf(w, "  Basic - Positive (R, H, K): %d\n", report.ChargedPositive)
		fmt.Fprintf(w, "  Acidic - Negative (D, E):   %d\n", report.ChargedNegative)
	}

	if len(report.AmbiguousResidues) > 0 {
		fmt.Fprintln(w, "\nAmbiguous or non-standard amino acid codes detected:")
		for i := 0; i < len(common.ExtendedAminoAcids); i++ {
			aa := common.ExtendedAminoAcids[i]
			if n := report.AmbiguousResidues[aa]; n > 0 {
				fmt.Fprintf(w, "  %c: %d time(s)\n", aa, n)
			}
		}
	} else {
		fmt.Fprintln(w, "\nNo ambiguous amino acid codes detected")
	}

	if len(report.InvalidResidues) > 0 {
		letters := make([]rune, 0, len(report.InvalidResidues))
		for r := range report.InvalidResidues {
			letters = append(letters, r)
		}
		sort.Slice(letters, func(i, j int) bool { return letters[i] < letters[j] })
		fmt.Fprintf(w, "\n!!! %d protein(s) contain letters outside the alphabet; generate_peptides will abort !!!\n", report.InvalidProteins)
		for _, r := range letters {
			fmt.Fprintf(w, "  %q: %d time(s)\n", r, report.InvalidResidues[r])
		}
		fmt.Fprintf(w, "  First failure: %v\n", report.FirstInvalid)
	} else {
		fmt.Fprintln(w, "\nAll residues are valid")
	}
}
