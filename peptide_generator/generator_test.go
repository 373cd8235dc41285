package peptide_generator

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	common "metapep_go/utils"
)

// collector keeps every chunk in memory for inspection.
type collector struct {
	chunks []Chunk
}

func (c *collector) WriteChunk(ch Chunk) error {
	c.chunks = append(c.chunks, ch)
	return nil
}

func (c *collector) peptides() []Peptide {
	var out []Peptide
	for _, ch := range c.chunks {
		out = append(out, ch.Peptides...)
	}
	return out
}

func TestGenerateChunk_PrefixFilter(t *testing.T) {
	proteins := []common.Protein{{ID: 1, Sequence: "ACDE"}}
	cases := []struct {
		k      int
		prefix byte
		want   []string
	}{
		{2, 'A', []string{"AC"}},
		{2, 'C', []string{"CD"}},
		{2, 'D', []string{"DE"}},
		{2, 'E', nil}, // no room for a window
		{3, 'C', []string{"CDE"}},
		{5, 'A', nil},
		{0, 'A', nil},
	}
	for _, tc := range cases {
		ch := GenerateChunk(proteins, tc.k, tc.prefix, NewCounter(0))
		var got []string
		for _, p := range ch.Peptides {
			got = append(got, p.Sequence)
		}
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("k=%d prefix=%c: got %v, want %v", tc.k, tc.prefix, got, tc.want)
		}
	}
}

func TestGenerateChunk_LexicographicIDs(t *testing.T) {
	proteins := []common.Protein{
		{ID: 5, Sequence: "AYACAB"},
		{ID: 2, Sequence: "ACAA"},
	}
	ch := GenerateChunk(proteins, 2, 'A', NewCounter(100))

	wantPeptides := []Peptide{
		{ID: 100, Sequence: "AA"},
		{ID: 101, Sequence: "AB"},
		{ID: 102, Sequence: "AC"},
		{ID: 103, Sequence: "AY"},
	}
	if !reflect.DeepEqual(ch.Peptides, wantPeptides) {
		t.Fatalf("peptides = %+v, want %+v", ch.Peptides, wantPeptides)
	}

	// Sorted by peptide, then protein id.
	wantOcc := []Occurrence{
		{ProteinID: 2, PeptideID: 100, Count: 1},
		{ProteinID: 5, PeptideID: 101, Count: 1},
		{ProteinID: 2, PeptideID: 102, Count: 1},
		{ProteinID: 5, PeptideID: 102, Count: 1},
		{ProteinID: 5, PeptideID: 103, Count: 1},
	}
	if !reflect.DeepEqual(ch.Occurrences, wantOcc) {
		t.Fatalf("occurrences = %+v, want %+v", ch.Occurrences, wantOcc)
	}
}

func TestGenerateChunk_CountsRepeats(t *testing.T) {
	proteins := []common.Protein{{ID: 9, Sequence: "AAAAA"}}
	ch := GenerateChunk(proteins, 2, 'A', NewCounter(0))
	if len(ch.Occurrences) != 1 {
		t.Fatalf("want a single occurrence row, got %d", len(ch.Occurrences))
	}
	if got := ch.Occurrences[0].Count; got != 4 {
		t.Fatalf("count = %d, want 4", got)
	}
}

func TestGenerate_Example(t *testing.T) {
	proteins := []common.Protein{{ID: 1, Sequence: "ACDE"}}
	var pep, occ bytes.Buffer
	tw, err := NewTableWriter(&pep, &occ)
	if err != nil {
		t.Fatal(err)
	}
	summary, err := Generate(proteins, 2, 3, NewCounter(0), tw, Options{})
	if err != nil {
		t.Fatal(err)
	}

	wantPep := "peptide_id\tpeptide_sequence\n" +
		"0\tAC\n1\tCD\n2\tDE\n" +
		"3\tACD\n4\tCDE\n"
	if pep.String() != wantPep {
		t.Errorf("peptides:\n%s\nwant:\n%s", pep.String(), wantPep)
	}
	wantOcc := "protein_id\tpeptide_id\tcount\n" +
		"1\t0\t1\n1\t1\t1\n1\t2\t1\n1\t3\t1\n1\t4\t1\n"
	if occ.String() != wantOcc {
		t.Errorf("proteins_peptides:\n%s\nwant:\n%s", occ.String(), wantOcc)
	}

	if summary.Peptides != 5 || summary.Occurrences != 5 {
		t.Errorf("summary = %+v", summary)
	}
	if summary.Chunks != 2*len(common.AminoAcids) {
		t.Errorf("chunks = %d, want %d", summary.Chunks, 2*len(common.AminoAcids))
	}
}

func TestGenerate_WindowSumsMatchProteinLength(t *testing.T) {
	proteins := []common.Protein{
		{ID: 0, Sequence: "MKVLAAGIVALLLAAGCSSAKXZ"},
		{ID: 1, Sequence: "AAAAAAAA"},
		{ID: 2, Sequence: "WY"},
		{ID: 3, Sequence: ""},
		{ID: 4, Sequence: "BJOUXZBJOUXZ"},
	}
	const minLen, maxLen = 1, 6
	var c collector
	if _, err := Generate(proteins, minLen, maxLen, NewCounter(0), &c, Options{}); err != nil {
		t.Fatal(err)
	}

	length := make(map[uint64]int)
	for _, p := range c.peptides() {
		length[p.ID] = len(p.Sequence)
	}

	type key struct {
		protein uint64
		k       int
	}
	sums := make(map[key]int)
	for _, ch := range c.chunks {
		for _, o := range ch.Occurrences {
			if o.Count < 1 {
				t.Fatalf("count < 1: %+v", o)
			}
			k, ok := length[o.PeptideID]
			if !ok {
				t.Fatalf("occurrence references unknown peptide %d", o.PeptideID)
			}
			if k != ch.Length {
				t.Fatalf("peptide %d has length %d in chunk of length %d", o.PeptideID, k, ch.Length)
			}
			sums[key{o.ProteinID, k}] += int(o.Count)
		}
	}

	for _, p := range proteins {
		for k := minLen; k <= maxLen; k++ {
			want := len(p.Sequence) - k + 1
			if want < 0 {
				want = 0
			}
			if got := sums[key{p.ID, k}]; got != want {
				t.Errorf("protein %d k=%d: sum of counts = %d, want %d", p.ID, k, got, want)
			}
		}
	}
}

func TestGenerate_UniqueMonotonicIDs(t *testing.T) {
	proteins := []common.Protein{
		{ID: 1, Sequence: "MSTNPKPQRKTKRNTNRRPQDVKFPGG"},
		{ID: 2, Sequence: "MSTNPKPQRKTKRNTNRRPQ"},
	}
	var c collector
	ids := NewCounter(0)
	if _, err := Generate(proteins, 2, 5, ids, &c, Options{}); err != nil {
		t.Fatal(err)
	}

	peptides := c.peptides()
	seenSeq := make(map[string]bool)
	for i, p := range peptides {
		if p.ID != uint64(i) {
			t.Fatalf("peptide %d has id %d, ids must be consecutive from 0", i, p.ID)
		}
		if seenSeq[p.Sequence] {
			t.Fatalf("sequence %q emitted twice", p.Sequence)
		}
		seenSeq[p.Sequence] = true
	}
	if ids.Peek() != uint64(len(peptides)) {
		t.Fatalf("counter at %d after %d peptides", ids.Peek(), len(peptides))
	}
}

func TestGenerate_SlidingWindowRoundTrip(t *testing.T) {
	seq := "KLLKLLKAAK"
	proteins := []common.Protein{{ID: 3, Sequence: seq}}
	var c collector
	if _, err := Generate(proteins, 3, 3, NewCounter(0), &c, Options{}); err != nil {
		t.Fatal(err)
	}
	bySeq := make(map[uint64]string)
	for _, p := range c.peptides() {
		bySeq[p.ID] = p.Sequence
	}
	got := make(map[string]int)
	for _, ch := range c.chunks {
		for _, o := range ch.Occurrences {
			got[bySeq[o.PeptideID]] += int(o.Count)
		}
	}
	want := make(map[string]int)
	for i := 0; i+3 <= len(seq); i++ {
		want[seq[i:i+3]]++
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("multiset = %v, want %v", got, want)
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	proteins := []common.Protein{
		{ID: 10, Sequence: "MAGICPEPTIDEMAGIC"},
		{ID: 11, Sequence: "PEPTIDEMAGICPEPTIDE"},
	}
	run := func() (string, string) {
		var pep, occ bytes.Buffer
		tw, err := NewTableWriter(&pep, &occ)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := Generate(proteins, 3, 5, NewCounter(0), tw, Options{}); err != nil {
			t.Fatal(err)
		}
		return pep.String(), occ.String()
	}
	p1, o1 := run()
	p2, o2 := run()
	if p1 != p2 || o1 != o2 {
		t.Fatal("two runs on the same input produced different tables")
	}
}

func TestGenerate_DegenerateInputs(t *testing.T) {
	t.Run("empty table", func(t *testing.T) {
		var pep, occ bytes.Buffer
		tw, _ := NewTableWriter(&pep, &occ)
		s, err := Generate(nil, 9, 11, NewCounter(0), tw, Options{})
		if err != nil {
			t.Fatal(err)
		}
		if pep.String() != PeptidesHeader || occ.String() != ProteinsPeptidesHeader {
			t.Fatalf("expected header-only tables, got %q / %q", pep.String(), occ.String())
		}
		if s.Peptides != 0 {
			t.Fatalf("peptides = %d", s.Peptides)
		}
	})

	t.Run("min greater than max", func(t *testing.T) {
		var c collector
		s, err := Generate([]common.Protein{{ID: 1, Sequence: "ACDEFG"}}, 4, 3, NewCounter(0), &c, Options{})
		if err != nil {
			t.Fatal(err)
		}
		if len(c.chunks) != 0 || s.Chunks != 0 {
			t.Fatalf("expected no chunks, got %d", len(c.chunks))
		}
	})

	t.Run("protein shorter than every length", func(t *testing.T) {
		var c collector
		if _, err := Generate([]common.Protein{{ID: 1, Sequence: "AC"}}, 3, 4, NewCounter(0), &c, Options{}); err != nil {
			t.Fatal(err)
		}
		if n := len(c.peptides()); n != 0 {
			t.Fatalf("expected no peptides, got %d", n)
		}
	})
}

func TestWriteProteinLengths_InputOrder(t *testing.T) {
	var buf bytes.Buffer
	proteins := []common.Protein{{ID: 7, Sequence: "ACDE"}, {ID: 2, Sequence: ""}, {ID: 3, Sequence: "M"}}
	if err := WriteProteinLengths(&buf, proteins); err != nil {
		t.Fatal(err)
	}
	want := strings.Join([]string{"protein_id\tprotein_length", "7\t4", "2\t0", "3\t1"}, "\n") + "\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
}
