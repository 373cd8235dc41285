package peptide_report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// WriteCSV writes the summary as a two-row CSV (header and values).
func WriteCSV(w io.Writer, stats PeptideStats) error {
	writer := csv.NewWriter(w)

	headers := []string{
		"Proteins", "ProteinsWithPeptides", "UniquePeptides", "OccurrenceRows", "TotalWindows",
		"MinProteinLength", "MaxProteinLength", "MeanProteinLength", "ProteinLengthStdDev",
		"MedianProteinLength", "MeanPeptidesPerProtein", "MeanCount", "MaxCount",
	}
	values := []string{
		strconv.Itoa(stats.Proteins),
		strconv.Itoa(stats.ProteinsWithPeptides),
		strconv.Itoa(stats.UniquePeptides),
		strconv.Itoa(stats.OccurrenceRows),
		strconv.FormatUint(stats.TotalWindows, 10),
		strconv.Itoa(stats.MinProteinLength),
		strconv.Itoa(stats.MaxProteinLength),
		fmt.Sprintf("%.2f", stats.MeanProteinLength),
		fmt.Sprintf("%.2f", stats.ProteinLengthStdDev),
		fmt.Sprintf("%.2f", stats.MedianProteinLength),
		fmt.Sprintf("%.2f", stats.MeanPeptidesPerProtein),
		fmt.Sprintf("%.2f", stats.MeanCount),
		strconv.FormatUint(stats.MaxCount, 10),
	}
	for _, k := range stats.SortedLengths() {
		headers = append(headers, fmt.Sprintf("UniquePeptidesLength%d", k), fmt.Sprintf("WindowsLength%d", k))
		values = append(values, strconv.Itoa(stats.PeptidesPerLength[k]), strconv.FormatUint(stats.WindowsPerLength[k], 10))
	}

	if err := writer.Write(headers); err != nil {
		return err
	}
	if err := writer.Write(values); err != nil {
		return err
	}
	writer.Flush()
	return writer.Error()
}

func WriteCSVReport(filename string, stats PeptideStats) error {
	f, err := os.Create(filename + ".csv")
	if err != nil {
		return err
	}
	defer f.Close()
	if err := WriteCSV(f, stats); err != nil {
		return err
	}
	return f.Close()
}
