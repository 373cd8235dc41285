package protein_gen

import (
	"bytes"
	"math/rand"
	"reflect"
	"strings"
	"testing"

	common "metapep_go/utils"
)

func TestGenerateProteins_Reproducible(t *testing.T) {
	a := GenerateProteins(rand.New(rand.NewSource(7)), 20, 5, 40, 100, false)
	b := GenerateProteins(rand.New(rand.NewSource(7)), 20, 5, 40, 100, false)
	if !reflect.DeepEqual(a, b) {
		t.Fatal("same seed produced different proteins")
	}
	for i, p := range a {
		if p.ID != 100+uint64(i) {
			t.Errorf("protein %d has id %d", i, p.ID)
		}
		if len(p.Sequence) < 5 || len(p.Sequence) > 40 {
			t.Errorf("protein %d has length %d", i, len(p.Sequence))
		}
		if p.Sequence[0] != 'M' {
			t.Errorf("protein %d does not start with M", i)
		}
		for j := 0; j < len(p.Sequence); j++ {
			if !strings.ContainsRune(common.StandardAminoAcids, rune(p.Sequence[j])) {
				t.Fatalf("protein %d contains %q outside the standard residues", i, p.Sequence[j])
			}
		}
	}
}

func TestGenerateProteins_ExtendedValidates(t *testing.T) {
	proteins := GenerateProteins(rand.New(rand.NewSource(1)), 50, 30, 30, 0, true)
	if err := common.ValidateProteins(proteins); err != nil {
		t.Fatal(err)
	}
}

func TestWriteFasta(t *testing.T) {
	var buf bytes.Buffer
	seq := strings.Repeat("A", 61)
	if err := WriteFasta(&buf, []common.Protein{{ID: 3, Sequence: seq}}); err != nil {
		t.Fatal(err)
	}
	want := ">protein_3\n" + strings.Repeat("A", 60) + "\nA\n"
	if buf.String() != want {
		t.Fatalf("got %q", buf.String())
	}
}
