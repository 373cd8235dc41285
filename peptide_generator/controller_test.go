package peptide_generator

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	common "metapep_go/utils"
)

func writeTable(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func readAll(t *testing.T, path string) string {
	t.Helper()
	in, err := common.OpenInput(path)
	if err != nil {
		t.Fatal(err)
	}
	defer in.Close()
	b, err := io.ReadAll(in)
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}

func testConfig(dir, proteins string) Config {
	return Config{
		Proteins:         proteins,
		Peptides:         filepath.Join(dir, "peptides.tsv.gz"),
		ProteinsPeptides: filepath.Join(dir, "proteins_peptides.tsv"),
		ProteinsLengths:  filepath.Join(dir, "proteins_lengths.tsv"),
		MinLen:           2,
		MaxLen:           3,
	}
}

func TestGenerateFiles_WritesAllTables(t *testing.T) {
	dir := t.TempDir()
	in := writeTable(t, dir, "proteins.tsv", "protein_id\tprotein_sequence\textra\n1\tacde\tignored\n2\tM\tx\n")
	cfg := testConfig(dir, in)

	summary, err := GenerateFiles(cfg)
	if err != nil {
		t.Fatalf("GenerateFiles: %v", err)
	}
	if summary.Proteins != 2 || summary.Peptides != 5 {
		t.Fatalf("summary = %+v", summary)
	}

	if got, want := readAll(t, cfg.ProteinsLengths), "protein_id\tprotein_length\n1\t4\n2\t1\n"; got != want {
		t.Errorf("lengths = %q, want %q", got, want)
	}
	if got, want := readAll(t, cfg.Peptides), "peptide_id\tpeptide_sequence\n0\tAC\n1\tCD\n2\tDE\n3\tACD\n4\tCDE\n"; got != want {
		t.Errorf("peptides = %q, want %q", got, want)
	}
	if got, want := readAll(t, cfg.ProteinsPeptides), "protein_id\tpeptide_id\tcount\n1\t0\t1\n1\t1\t1\n1\t2\t1\n1\t3\t1\n1\t4\t1\n"; got != want {
		t.Errorf("proteins_peptides = %q, want %q", got, want)
	}

	// The peptide table is gzip-compressed because of its extension.
	raw, err := os.ReadFile(cfg.Peptides)
	if err != nil {
		t.Fatal(err)
	}
	if len(raw) < 2 || raw[0] != 0x1F || raw[1] != 0x8B {
		t.Error("peptides output is not gzip-compressed")
	}
}

func TestGenerateFiles_InvalidResidueAbortsBeforeOutput(t *testing.T) {
	dir := t.TempDir()
	in := writeTable(t, dir, "proteins.tsv", "protein_id\tprotein_sequence\n1\tACDE\n2\tACX!\n")
	cfg := testConfig(dir, in)

	_, err := GenerateFiles(cfg)
	var ire *common.InvalidResidueError
	if !errors.As(err, &ire) {
		t.Fatalf("want InvalidResidueError, got %v", err)
	}
	if ire.Letter != "!" || ire.ProteinID != 2 || ire.Position != 4 {
		t.Errorf("error = %+v", ire)
	}
	for _, p := range []string{cfg.Peptides, cfg.ProteinsPeptides, cfg.ProteinsLengths} {
		if _, err := os.Stat(p); !os.IsNotExist(err) {
			t.Errorf("%s should not exist after a validation failure", p)
		}
	}
}

func TestGenerateFiles_MalformedTable(t *testing.T) {
	cases := map[string]string{
		"missing column":   "protein_id\tsequence\n1\tACDE\n",
		"non-numeric id":   "protein_id\tprotein_sequence\nP1\tACDE\n",
		"negative id":      "protein_id\tprotein_sequence\n-1\tACDE\n",
		"ragged row":       "protein_id\tprotein_sequence\n1\tACDE\tEXTRA\n",
		"no header at all": "",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			in := writeTable(t, dir, "proteins.tsv", content)
			_, err := GenerateFiles(testConfig(dir, in))
			var tfe *common.TableFormatError
			if !errors.As(err, &tfe) {
				t.Fatalf("want TableFormatError, got %v", err)
			}
		})
	}
}

func TestGenerateFiles_EmptyTableIsHeaderOnly(t *testing.T) {
	dir := t.TempDir()
	in := writeTable(t, dir, "proteins.tsv", "protein_id\tprotein_sequence\n")
	cfg := testConfig(dir, in)
	if _, err := GenerateFiles(cfg); err != nil {
		t.Fatal(err)
	}
	if got := readAll(t, cfg.Peptides); got != PeptidesHeader {
		t.Errorf("peptides = %q", got)
	}
	if got := readAll(t, cfg.ProteinsPeptides); got != ProteinsPeptidesHeader {
		t.Errorf("proteins_peptides = %q", got)
	}
	if got := readAll(t, cfg.ProteinsLengths); got != ProteinsLengthsHeader {
		t.Errorf("proteins_lengths = %q", got)
	}
}

func TestGenerateFiles_MinAboveMaxStillWritesLengths(t *testing.T) {
	dir := t.TempDir()
	in := writeTable(t, dir, "proteins.tsv", "protein_id\tprotein_sequence\n4\tMKV\n")
	cfg := testConfig(dir, in)
	cfg.MinLen, cfg.MaxLen = 5, 4
	if _, err := GenerateFiles(cfg); err != nil {
		t.Fatal(err)
	}
	if got, want := readAll(t, cfg.ProteinsLengths), "protein_id\tprotein_length\n4\t3\n"; got != want {
		t.Errorf("lengths = %q, want %q", got, want)
	}
	if got := readAll(t, cfg.Peptides); got != PeptidesHeader {
		t.Errorf("peptides = %q", got)
	}
}
