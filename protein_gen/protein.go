package protein_gen

import (
	"math/rand"
	"strings"

	common "metapep_go/utils"
)

// GenerateProtein returns a random protein drawn from residues.
// Proteins start with methionine like translated ORFs; no stop symbol is added
// since '*' is not part of the peptide alphabet.
func GenerateProtein(rng *rand.Rand, length int, residues string) string {
	if length <= 0 {
		return ""
	}
	seq := make([]byte, length)
	seq[0] = 'M'
	for i := 1; i < length; i++ {
		seq[i] = residues[rng.Intn(len(residues))]
	}
	return string(seq)
}

// GenerateProteins returns n proteins with lengths uniform in [minLen, maxLen]
// and ids counting up from startID.
func GenerateProteins(rng *rand.Rand, n, minLen, maxLen int, startID uint64, extended bool) []common.Protein {
	residues := common.StandardAminoAcids
	if extended {
		residues = common.AminoAcids
	}
	if maxLen < minLen {
		maxLen = minLen
	}
	proteins := make([]common.Protein, n)
	for i := range proteins {
		length := minLen + rng.Intn(maxLen-minLen+1)
		proteins[i] = common.Protein{ID: startID + uint64(i), Sequence: GenerateProtein(rng, length, residues)}
	}
	return proteins
}

// WrapFasta breaks seq into lines of at most width residues.
func WrapFasta(seq string, width int) string {
	var out strings.Builder
	for i := 0; i < len(seq); i += width {
		end := i + width
		if end > len(seq) {
			end = len(seq)
		}
		out.WriteString(seq[i:end] + "\n")
	}
	return out.String()
}
