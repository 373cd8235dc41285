package sanity_check

import (
	"bytes"
	"fmt"
	"os"

	version_control "metapep_go/config"
	"metapep_go/peptide_generator"
	common "metapep_go/utils"
)

const expectedPeptides = "peptide_id\tpeptide_sequence\n0\tAC\n1\tCD\n2\tDE\n3\tACD\n4\tCDE\n"

// SelfTest slices the protein ACDE into peptides of length 2 and 3 and compares
// the peptide table to the known answer.
func SelfTest() error {
	var pep, occ bytes.Buffer
	tw, err := peptide_generator.NewTableWriter(&pep, &occ)
	if err != nil {
		return err
	}
	proteins := []common.Protein{{ID: 1, Sequence: "ACDE"}}
	if _, err := peptide_generator.Generate(proteins, 2, 3, peptide_generator.NewCounter(0), tw, peptide_generator.Options{}); err != nil {
		return err
	}
	if pep.String() != expectedPeptides {
		return fmt.Errorf("unexpected peptide table:\n%s", pep.String())
	}
	return nil
}

// Run performs a simple sanity check to ensure metapep_go is
// running properly printing helpful message and version number.
func Run(args []string) {
	if err := SelfTest(); err != nil {
		common.Logger().Error("Self test failed", "err", err)
		os.Exit(1)
	}
	fmt.Printf("Successfully running metapep_go! (%s)\n", version_control.Main_version)
}
