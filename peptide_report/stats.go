package peptide_report

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// PeptideStats summarizes one run of generate_peptides.
type PeptideStats struct {
	Proteins               int
	ProteinsWithPeptides   int
	UniquePeptides         int // distinct peptide ids referenced by occurrences
	OccurrenceRows         int
	TotalWindows           uint64
	MinProteinLength       int
	MaxProteinLength       int
	MeanProteinLength      float64
	ProteinLengthStdDev    float64
	MedianProteinLength    float64
	MeanPeptidesPerProtein float64
	MeanCount              float64
	MaxCount               uint64
	PeptidesPerLength      map[int]int // only with a peptide table
	WindowsPerLength       map[int]uint64
}

// ComputeStats derives summary statistics from the loaded tables.
func ComputeStats(t *Tables) PeptideStats {
	s := PeptideStats{
		Proteins:          len(t.Lengths),
		PeptidesPerLength: make(map[int]int),
		WindowsPerLength:  make(map[int]uint64),
	}

	lengths := make([]float64, len(t.Lengths))
	for i, l := range t.Lengths {
		lengths[i] = float64(l.Length)
	}
	if len(lengths) > 0 {
		sort.Float64s(lengths)
		s.MinProteinLength = int(lengths[0])
		s.MaxProteinLength = int(lengths[len(lengths)-1])
		s.MeanProteinLength, s.ProteinLengthStdDev = stat.MeanStdDev(lengths, nil)
		s.MedianProteinLength = stat.Quantile(0.5, stat.Empirical, lengths, nil)
	}

	peptideLength := make(map[uint64]int, len(t.Peptides))
	for _, p := range t.Peptides {
		peptideLength[p.ID] = len(p.Sequence)
		s.PeptidesPerLength[len(p.Sequence)]++
	}

	perProtein := make(map[uint64]int)
	peptides := make(map[uint64]struct{})
	counts := make([]float64, len(t.Occurrences))
	for i, o := range t.Occurrences {
		perProtein[o.ProteinID]++
		peptides[o.PeptideID] = struct{}{}
		counts[i] = float64(o.Count)
		s.TotalWindows += o.Count
		if o.Count > s.MaxCount {
			s.MaxCount = o.Count
		}
		if k, ok := peptideLength[o.PeptideID]; ok {
			s.WindowsPerLength[k] += o.Count
		}
	}
	s.OccurrenceRows = len(t.Occurrences)
	s.UniquePeptides = len(peptides)
	s.ProteinsWithPeptides = len(perProtein)
	if len(counts) > 0 {
		s.MeanCount = stat.Mean(counts, nil)
	}
	if s.Proteins > 0 {
		s.MeanPeptidesPerProtein = float64(s.OccurrenceRows) / float64(s.Proteins)
	}
	return s
}

// SortedLengths returns the peptide lengths present in s in ascending order.
func (s PeptideStats) SortedLengths() []int {
	ks := make([]int, 0, len(s.PeptidesPerLength))
	for k := range s.PeptidesPerLength {
		ks = append(ks, k)
	}
	sort.Ints(ks)
	return ks
}

const maxViolations = 20

// Verify checks the consistency guarantees between the three tables:
// unique peptide ids and sequences, resolvable references, counts of at least one,
// and for every protein and peptide length k in [minLen, maxLen], counts summing
// to max(0, protein_length - k + 1). Peptide-level checks need the peptide table.
// At most maxViolations problems are returned.
func Verify(t *Tables, minLen, maxLen int) []error {
	var errs []error
	add := func(format string, a ...any) {
		if len(errs) < maxViolations {
			errs = append(errs, fmt.Errorf(format, a...))
		}
	}

	proteinLength := make(map[uint64]int, len(t.Lengths))
	for _, l := range t.Lengths {
		if _, dup := proteinLength[l.ProteinID]; dup {
			add("protein %d appears more than once in the length table", l.ProteinID)
		}
		proteinLength[l.ProteinID] = l.Length
	}

	var peptideLength map[uint64]int
	if t.Peptides != nil {
		peptideLength = make(map[uint64]int, len(t.Peptides))
		bySequence := make(map[string]uint64, len(t.Peptides))
		for _, p := range t.Peptides {
			if _, dup := peptideLength[p.ID]; dup {
				add("peptide id %d is used more than once", p.ID)
			}
			if prev, dup := bySequence[p.Sequence]; dup {
				add("peptide %s has ids %d and %d", p.Sequence, prev, p.ID)
			}
			if len(p.Sequence) < minLen || len(p.Sequence) > maxLen {
				add("peptide %d (%s) has length %d outside [%d, %d]", p.ID, p.Sequence, len(p.Sequence), minLen, maxLen)
			}
			peptideLength[p.ID] = len(p.Sequence)
			bySequence[p.Sequence] = p.ID
		}
	}

	type pair struct{ protein, peptide uint64 }
	type proteinK struct {
		protein uint64
		k       int
	}
	seenPairs := make(map[pair]bool, len(t.Occurrences))
	sums := make(map[proteinK]uint64)
	for _, o := range t.Occurrences {
		if o.Count < 1 {
			add("protein %d, peptide %d has count %d", o.ProteinID, o.PeptideID, o.Count)
		}
		if _, ok := proteinLength[o.ProteinID]; !ok {
			add("occurrence references unknown protein %d", o.ProteinID)
		}
		p := pair{o.ProteinID, o.PeptideID}
		if seenPairs[p] {
			add("protein %d, peptide %d is listed more than once", o.ProteinID, o.PeptideID)
		}
		seenPairs[p] = true

		if peptideLength != nil {
			k, ok := peptideLength[o.PeptideID]
			if !ok {
				add("occurrence references unknown peptide %d", o.PeptideID)
				continue
			}
			sums[proteinK{o.ProteinID, k}] += o.Count
		}
	}

	if peptideLength != nil {
		for _, l := range t.Lengths {
			for k := minLen; k <= maxLen; k++ {
				want := l.Length - k + 1
				if want < 0 {
					want = 0
				}
				if got := sums[proteinK{l.ProteinID, k}]; got != uint64(want) {
					add("protein %d, length %d: counts sum to %d, want %d", l.ProteinID, k, got, want)
				}
			}
		}
	}
	return errs
}
