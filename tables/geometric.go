package tables

import (
	"math"
	"sort"

	"github.com/tsawler/contour/model"
)

// GeometricDetector implements table detection using geometric heuristics.
// It clusters fragment rows into vertically contiguous blocks, derives
// column boundaries from recurring left-edge alignment, and keeps the rows
// that fit the column structure.
type GeometricDetector struct {
	config Config
}

// NewGeometricDetector creates a new geometric table detector with default
// configuration.
func NewGeometricDetector() *GeometricDetector {
	return &GeometricDetector{
		config: DefaultConfig(),
	}
}

// Name returns the detector's identifier ("geometric").
func (d *GeometricDetector) Name() string {
	return "geometric"
}

// Configure sets the detector configuration.
func (d *GeometricDetector) Configure(config Config) error {
	if err := config.validate(); err != nil {
		return err
	}
	d.config = config
	return nil
}

// Detect finds tables among one page's fragment rows. Each vertically
// contiguous block of rows is analyzed for column structure independently,
// so several tables on one page come back as separate results.
func (d *GeometricDetector) Detect(page int, rows [][]model.Span) ([]model.Table, error) {
	if len(rows) == 0 {
		return nil, nil
	}

	var found []model.Table
	for _, block := range d.clusterRows(rows) {
		if table, ok := d.detectInBlock(page, block); ok {
			found = append(found, table)
		}
	}
	return found, nil
}

// clusterRows splits the page's rows into vertically contiguous blocks.
// A gap larger than MaxRowGap row heights ends the current block; tables
// are dense, so a paragraph break or figure between rows separates them.
func (d *GeometricDetector) clusterRows(rows [][]model.Span) [][][]model.Span {
	var blocks [][][]model.Span
	var current [][]model.Span

	prevBottom := math.Inf(1)
	for _, row := range rows {
		box := rowBBox(row)
		height := box.Height
		if height <= 0 {
			height = 12
		}
		gap := prevBottom - box.Top()
		if len(current) > 0 && gap > d.config.MaxRowGap*height {
			blocks = append(blocks, current)
			current = nil
		}
		current = append(current, row)
		prevBottom = box.Bottom()
	}
	if len(current) > 0 {
		blocks = append(blocks, current)
	}
	return blocks
}

// detectInBlock attempts to find one table in a block of rows. It returns
// false when the block lacks the required column structure.
func (d *GeometricDetector) detectInBlock(page int, block [][]model.Span) (model.Table, bool) {
	// Only rows with enough fragments can participate in a table.
	var candidates [][]model.Span
	for _, row := range block {
		if len(row) >= d.config.MinCols {
			candidates = append(candidates, row)
		}
	}
	if len(candidates) < d.config.MinRows {
		return model.Table{}, false
	}

	cols := d.columnBoundaries(candidates)
	if len(cols) < d.config.MinCols {
		return model.Table{}, false
	}

	// Keep rows that align with enough distinct columns.
	var tableRows [][]model.Span
	for _, row := range candidates {
		if d.alignedColumns(row, cols) >= d.config.MinCols {
			tableRows = append(tableRows, row)
		}
	}
	if len(tableRows) < d.config.MinRows {
		return model.Table{}, false
	}

	grid := make([][]string, len(tableRows))
	var bbox model.BBox
	for i, row := range tableRows {
		cells := make([]string, len(cols))
		for _, frag := range row {
			c := d.findColumn(frag.BBox.Left(), cols)
			if cells[c] != "" {
				cells[c] += " "
			}
			cells[c] += frag.Text
			if bbox.IsEmpty() {
				bbox = frag.BBox
			} else {
				bbox = bbox.Union(frag.BBox)
			}
		}
		grid[i] = cells
	}

	return model.Table{Page: page, BBox: bbox, Rows: grid}, true
}

// columnBoundaries clusters fragment left edges into column positions and
// keeps the ones supported by at least MinRows rows. A column that appears
// in a single row is an indented line, not structure.
func (d *GeometricDetector) columnBoundaries(rows [][]model.Span) []float64 {
	var lefts []float64
	for _, row := range rows {
		for _, frag := range row {
			lefts = append(lefts, frag.BBox.Left())
		}
	}
	sort.Float64s(lefts)
	cols := clusterValues(lefts, d.config.AlignmentTolerance)

	supported := cols[:0]
	for _, col := range cols {
		support := 0
		for _, row := range rows {
			if d.rowAlignsAt(row, col) {
				support++
			}
		}
		if support >= d.config.MinRows {
			supported = append(supported, col)
		}
	}
	return supported
}

// rowAlignsAt reports whether any fragment in the row starts near the
// column position.
func (d *GeometricDetector) rowAlignsAt(row []model.Span, col float64) bool {
	for _, frag := range row {
		if math.Abs(frag.BBox.Left()-col) < d.config.AlignmentTolerance*2 {
			return true
		}
	}
	return false
}

// alignedColumns counts the distinct columns the row's fragments start at.
func (d *GeometricDetector) alignedColumns(row []model.Span, cols []float64) int {
	aligned := make(map[int]bool)
	for _, frag := range row {
		for i, col := range cols {
			if math.Abs(frag.BBox.Left()-col) < d.config.AlignmentTolerance*2 {
				aligned[i] = true
				break
			}
		}
	}
	return len(aligned)
}

// findColumn returns the index of the rightmost column at or left of the
// fragment's left edge. Fragments left of every column land in column 0.
func (d *GeometricDetector) findColumn(left float64, cols []float64) int {
	col := 0
	for i, c := range cols {
		if left >= c-d.config.AlignmentTolerance {
			col = i
		}
	}
	return col
}

// rowBBox is the union of the row's fragment boxes.
func rowBBox(row []model.Span) model.BBox {
	var box model.BBox
	for i, frag := range row {
		if i == 0 {
			box = frag.BBox
		} else {
			box = box.Union(frag.BBox)
		}
	}
	return box
}

// clusterValues clusters nearby values within the given tolerance, averaging
// values that fall within the tolerance of the cluster center.
func clusterValues(values []float64, tolerance float64) []float64 {
	if len(values) == 0 {
		return nil
	}

	clustered := []float64{values[0]}
	for i := 1; i < len(values); i++ {
		diff := values[i] - clustered[len(clustered)-1]
		if diff > tolerance {
			clustered = append(clustered, values[i])
		} else {
			clustered[len(clustered)-1] = (clustered[len(clustered)-1] + values[i]) / 2
		}
	}
	return clustered
}
