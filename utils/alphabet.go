package common

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// AminoAcids lists the valid one-letter codes in the order peptide chunks are processed:
// 20 standard residues followed by the extended codes (B, J, O, U, X, Z).
const AminoAcids = "ACDEFGHIKLMNPQRSTVWYBJOUXZ"

// StandardAminoAcids is the 20-letter subset without ambiguity or non-standard codes.
const StandardAminoAcids = "ACDEFGHIKLMNPQRSTVWY"

// ExtendedAminoAcids are accepted, but flagged as ambiguous or non-standard in reports.
const ExtendedAminoAcids = "BJOUXZ"

var validResidue [256]bool

func init() {
	for i := 0; i < len(AminoAcids); i++ {
		validResidue[AminoAcids[i]] = true
	}
}

// IsAminoAcid reports whether b is an (uppercase) member of the alphabet.
func IsAminoAcid(b byte) bool {
	return validResidue[b]
}

// InvalidResidueError identifies the first residue outside the alphabet.
type InvalidResidueError struct {
	ProteinID uint64
	Position  int // 1-based
	Letter    string
}

func (e *InvalidResidueError) Error() string {
	return fmt.Sprintf("invalid input letter %q in protein %d at position %d. The supported alphabet is %s",
		e.Letter, e.ProteinID, e.Position, strings.Join(strings.Split(AminoAcids, ""), ", "))
}

// ValidateSequence returns an *InvalidResidueError for the first letter of seq
// that is not in the alphabet. seq is expected to be uppercased already.
func ValidateSequence(proteinID uint64, seq string) error {
	for i := 0; i < len(seq); i++ {
		if !validResidue[seq[i]] {
			// Report whole runes so multi-byte input is readable in the diagnostic.
			r, _ := utf8.DecodeRuneInString(seq[i:])
			return &InvalidResidueError{ProteinID: proteinID, Position: i + 1, Letter: string(r)}
		}
	}
	return nil
}

// ValidateProteins checks every protein and stops at the first invalid residue.
func ValidateProteins(proteins []Protein) error {
	for _, p := range proteins {
		if err := ValidateSequence(p.ID, p.Sequence); err != nil {
			return err
		}
	}
	return nil
}
