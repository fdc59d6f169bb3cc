package report

import (
	"sort"
	"strconv"
	"strings"

	"confstats/internal/errors"
	"confstats/internal/scoring"
)

const (
	// Placeholder fills cells that have no single figure
	Placeholder = "-"

	// TotalLabel names the row aggregating every group
	TotalLabel = scoring.TotalGroup

	// PercentageLabel names the row with the score distribution in percent
	PercentageLabel = "Total percentage"
)

// Row is one group of a report table
type Row struct {
	Rate   float64
	Count  int
	Label  string
	Counts []int
}

// Cells renders the row as table cells
func (r Row) Cells() []string {
	cells := []string{FormatRate(r.Rate), strconv.Itoa(r.Count), r.Label}
	return append(cells, intCells(r.Counts)...)
}

// Table is a sorted score distribution with its two trailer rows
type Table struct {
	// Columns are the scale headings, e.g. +3 ... -2
	Columns []string

	// Rows holds one row per group, sorted by lessRow
	Rows []Row

	// Total aggregates every group. Its Count is the number of scores but
	// is rendered as a placeholder.
	Total Row

	// Percentages is floor(100*count/total) per scale value
	Percentages []int
}

// TotalCells renders the Total trailer row
func (t *Table) TotalCells() []string {
	cells := []string{FormatRate(t.Total.Rate), Placeholder, TotalLabel}
	return append(cells, intCells(t.Total.Counts)...)
}

// PercentageCells renders the Total percentage trailer row
func (t *Table) PercentageCells() []string {
	cells := []string{Placeholder, Placeholder, PercentageLabel}
	return append(cells, intCells(t.Percentages)...)
}

// Records renders the body rows followed by both trailer rows
func (t *Table) Records() [][]string {
	records := make([][]string, 0, len(t.Rows)+2)
	for _, row := range t.Rows {
		records = append(records, row.Cells())
	}
	return append(records, t.TotalCells(), t.PercentageCells())
}

// Format turns a histogram into a report table. Groups with an empty
// label are left out of the body but stay in the totals. A histogram
// without any score has no distribution and is rejected.
func Format(h *scoring.Histogram) (*Table, error) {
	grandTotal := h.GrandTotal()
	if grandTotal == 0 {
		return nil, errors.NewDegenerateError("no scores to tabulate")
	}

	table := &Table{
		Columns: h.Scale().Labels(),
	}

	for _, group := range h.Groups() {
		if group == "" {
			continue
		}
		counts := h.Counts(group)
		count := h.Count(group)
		if count == 0 {
			return nil, errors.NewDegenerateError("group has no scores").WithContext("group", group)
		}
		table.Rows = append(table.Rows, Row{
			Rate:   Rate(h.AcceptCount(counts), count),
			Count:  count,
			Label:  group,
			Counts: counts,
		})
	}

	sort.SliceStable(table.Rows, func(i, j int) bool {
		return lessRow(table.Rows[i], table.Rows[j])
	})

	total := h.Total()
	table.Total = Row{
		Rate:   Rate(h.AcceptCount(total), grandTotal),
		Count:  grandTotal,
		Label:  TotalLabel,
		Counts: total,
	}

	table.Percentages = make([]int, len(total))
	for i, n := range total {
		table.Percentages[i] = 100 * n / grandTotal
	}

	return table, nil
}

// lessRow orders rows by rate, then count, then label byte-wise, then the
// per-score counts from the highest score down
func lessRow(a, b Row) bool {
	if a.Rate != b.Rate {
		return a.Rate < b.Rate
	}
	if a.Count != b.Count {
		return a.Count < b.Count
	}
	if a.Label != b.Label {
		return a.Label < b.Label
	}
	for i := 0; i < len(a.Counts) && i < len(b.Counts); i++ {
		if a.Counts[i] != b.Counts[i] {
			return a.Counts[i] < b.Counts[i]
		}
	}
	return len(a.Counts) < len(b.Counts)
}

// Rate is accept/total rounded to two decimals, ties going to the even
// neighbour of the exact binary value. total must be positive.
func Rate(accept, total int) float64 {
	ratio := float64(accept) / float64(total)
	rounded, _ := strconv.ParseFloat(strconv.FormatFloat(ratio, 'f', 2, 64), 64)
	return rounded
}

// FormatRate prints a rate with the shortest exact representation, always
// keeping a decimal point: 0.5, 0.33, 1.0
func FormatRate(rate float64) string {
	s := strconv.FormatFloat(rate, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func intCells(values []int) []string {
	cells := make([]string, len(values))
	for i, v := range values {
		cells[i] = strconv.Itoa(v)
	}
	return cells
}
