package peptide_report

import (
	"fmt"
	"os"
	"strings"
)

func WriteHTMLReport(filename string, stats PeptideStats, svgLength string, svgPeptides string) error {
	f, err := os.Create(filename + ".html")
	if err != nil {
		return err
	}
	defer f.Close()

	var perLength strings.Builder
	for _, k := range stats.SortedLengths() {
		fmt.Fprintf(&perLength, "\t\t<tr><td>%d</td><td>%d</td><td>%d</td></tr>\n",
			k, stats.PeptidesPerLength[k], stats.WindowsPerLength[k])
	}

	html := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
	<title>Peptide Generation Report</title>
	<meta charset="UTF-8">
	<style>
		body { font-family: Arial, sans-serif; padding: 20px; background-color: #f9f9f9; }
		h1 { color: #333; }
		table { border-collapse: collapse; margin-top: 20px; }
		th, td { padding: 8px 12px; border: 1px solid #ccc; text-align: left; }
		th { background-color: #eee; }
	</style>
</head>
<body>
	<h1>Peptide Generation Report</h1>
	<table>
		<tr><th>Metric</th><th>Value</th></tr>
		<tr><td>Proteins</td><td>%d</td></tr>
		<tr><td>Proteins with Peptides</td><td>%d</td></tr>
		<tr><td>Unique Peptides</td><td>%d</td></tr>
		<tr><td>Protein-Peptide Rows</td><td>%d</td></tr>
		<tr><td>Total Peptide Windows</td><td>%d</td></tr>
		<tr><td>Min Protein Length</td><td>%d</td></tr>
		<tr><td>Max Protein Length</td><td>%d</td></tr>
		<tr><td>Mean Protein Length</td><td>%.2f</td></tr>
		<tr><td>Protein Length StdDev</td><td>%.2f</td></tr>
		<tr><td>Median Protein Length</td><td>%.0f</td></tr>
		<tr><td>Mean Peptides per Protein</td><td>%.2f</td></tr>
		<tr><td>Mean Occurrence Count</td><td>%.2f</td></tr>
		<tr><td>Max Occurrence Count</td><td>%d</td></tr>
	</table>
	<h2>Peptides per Length</h2>
	<table>
		<tr><th>Length</th><th>Unique Peptides</th><th>Windows</th></tr>
%s	</table>
	<h2>Protein Length Distribution</h2>
	<div>%s</div>
	<h2>Unique Peptides per Length</h2>
	<div>%s</div>
</body>
</html>`,
		stats.Proteins,
		stats.ProteinsWithPeptides,
		stats.UniquePeptides,
		stats.OccurrenceRows,
		stats.TotalWindows,
		stats.MinProteinLength,
		stats.MaxProteinLength,
		stats.MeanProteinLength,
		stats.ProteinLengthStdDev,
		stats.MedianProteinLength,
		stats.MeanPeptidesPerProtein,
		stats.MeanCount,
		stats.MaxCount,
		perLength.String(),
		svgLength,
		svgPeptides,
	)

	_, err = f.WriteString(html)
	return err
}
