// Package peptide_generator slices proteins into fixed-length peptides.
//
// Peptides are generated one (length, first residue) chunk at a time so that only
// a fraction of all k-mers is ever held in memory. Each chunk counts how often a
// peptide occurs in each protein, hands out ids to the chunk's distinct peptides in
// lexicographic order, and is written out and dropped before the next one starts.
// The id counter is the only state shared between chunks.
package peptide_generator

import (
	"sort"

	"metapep_go/benchmark"
	common "metapep_go/utils"
)

// Counter hands out peptide ids. A single Counter is threaded through every
// chunk of a run and never reset, so ids are unique and increasing run-wide.
type Counter struct {
	next uint64
}

// NewCounter returns a counter whose first id is start.
func NewCounter(start uint64) *Counter {
	return &Counter{next: start}
}

// Next returns the next unused id.
func (c *Counter) Next() uint64 {
	id := c.next
	c.next++
	return id
}

// Peek returns the next id that would be handed out.
func (c *Counter) Peek() uint64 {
	return c.next
}

// Peptide is a distinct peptide sequence and its run-wide id.
type Peptide struct {
	ID       uint64
	Sequence string
}

// Occurrence counts how often one peptide occurs in one protein.
type Occurrence struct {
	ProteinID uint64
	PeptideID uint64
	Count     uint32
}

// Chunk holds every peptide of one length starting with one residue.
// Peptides are sorted by sequence (and therefore by id); occurrences are
// sorted by peptide, then protein.
type Chunk struct {
	Length      int
	Prefix      byte
	Peptides    []Peptide
	Occurrences []Occurrence
}

// ChunkWriter receives chunks in generation order.
type ChunkWriter interface {
	WriteChunk(Chunk) error
}

// GenerateChunk collects every length-k window whose first residue is prefix,
// counts them per protein and assigns ids from ids to the distinct peptides.
func GenerateChunk(proteins []common.Protein, k int, prefix byte, ids *Counter) Chunk {
	chunk := Chunk{Length: k, Prefix: prefix}
	if k < 1 {
		return chunk
	}

	type occurrenceKey struct {
		protein int // index into proteins
		peptide string
	}
	counts := make(map[occurrenceKey]uint32)
	for i, p := range proteins {
		seq := p.Sequence
		for j := 0; j+k <= len(seq); j++ {
			if seq[j] != prefix {
				continue
			}
			counts[occurrenceKey{protein: i, peptide: seq[j : j+k]}]++ // substring shares the protein's memory
		}
	}
	if len(counts) == 0 {
		return chunk
	}

	peptideIDs := make(map[string]uint64)
	sequences := make([]string, 0, len(counts))
	for key := range counts {
		if _, ok := peptideIDs[key.peptide]; !ok {
			peptideIDs[key.peptide] = 0
			sequences = append(sequences, key.peptide)
		}
	}
	sort.Strings(sequences)

	chunk.Peptides = make([]Peptide, len(sequences))
	for i, s := range sequences {
		id := ids.Next()
		peptideIDs[s] = id
		chunk.Peptides[i] = Peptide{ID: id, Sequence: s}
	}

	type row struct {
		protein int
		occ     Occurrence
	}
	rows := make([]row, 0, len(counts))
	for key, n := range counts {
		rows = append(rows, row{
			protein: key.protein,
			occ: Occurrence{
				ProteinID: proteins[key.protein].ID,
				PeptideID: peptideIDs[key.peptide],
				Count:     n,
			},
		})
	}
	sort.Slice(rows, func(a, b int) bool {
		ra, rb := rows[a], rows[b]
		if ra.occ.PeptideID != rb.occ.PeptideID {
			return ra.occ.PeptideID < rb.occ.PeptideID
		}
		if ra.occ.ProteinID != rb.occ.ProteinID {
			return ra.occ.ProteinID < rb.occ.ProteinID
		}
		return ra.protein < rb.protein
	})

	chunk.Occurrences = make([]Occurrence, len(rows))
	for i, r := range rows {
		chunk.Occurrences[i] = r.occ
	}
	return chunk
}

// LengthSummary aggregates the chunks of one peptide length.
type LengthSummary struct {
	Length      int
	Peptides    int
	Occurrences int
	Windows     uint64 // sum of counts
}

// Summary describes a completed generation run.
type Summary struct {
	Proteins    int
	Chunks      int
	Peptides    uint64
	Occurrences uint64
	Lengths     []LengthSummary
}

// Options tune logging during Generate.
type Options struct {
	MemLog bool // log heap usage after every chunk
}

// Generate runs every (length, prefix) chunk for lengths min..max and passes
// each to w before generating the next. Proteins must already be validated.
func Generate(proteins []common.Protein, minLen, maxLen int, ids *Counter, w ChunkWriter, opts Options) (Summary, error) {
	logger := common.Logger()
	summary := Summary{Proteins: len(proteins)}

	for k := minLen; k <= maxLen; k++ {
		logger.Info("Generating peptides", "length", k)
		ls := LengthSummary{Length: k}

		for p := 0; p < len(common.AminoAcids); p++ {
			prefix := common.AminoAcids[p]
			chunk := GenerateChunk(proteins, k, prefix, ids)
			if err := w.WriteChunk(chunk); err != nil {
				return summary, err
			}

			ls.Peptides += len(chunk.Peptides)
			ls.Occurrences += len(chunk.Occurrences)
			for _, o := range chunk.Occurrences {
				ls.Windows += uint64(o.Count)
			}
			summary.Chunks++
			logger.Debug("chunk done", "length", k, "prefix", string(prefix),
				"peptides", len(chunk.Peptides), "occurrences", len(chunk.Occurrences))
			if opts.MemLog {
				benchmark.LogMemory(logger, "memory after chunk", "length", k, "prefix", string(prefix))
			}
		}

		summary.Peptides += uint64(ls.Peptides)
		summary.Occurrences += uint64(ls.Occurrences)
		summary.Lengths = append(summary.Lengths, ls)
		logger.Info("Peptides generated", "length", k, "unique", ls.Peptides, "protein_peptide_rows", ls.Occurrences)
	}
	return summary, nil
}
