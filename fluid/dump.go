package fluid

import (
	"bufio"
	"fmt"
	"io"
	"math"
)

// Dump writes a plain-text view of the grid: one row of kind names per grid
// row, followed by one row of rounded cell-centred speeds per grid row.
// Entries are separated by single spaces.
func (s *Solver) Dump(w io.Writer) error {
	bw := bufio.NewWriter(w)

	for y := 0; y < s.y; y++ {
		for x := 0; x < s.x; x++ {
			if x > 0 {
				bw.WriteByte(' ')
			}
			bw.WriteString(s.cells[y*s.x+x].Kind.String())
		}
		bw.WriteByte('\n')
	}

	for y := 0; y < s.y; y++ {
		for x := 0; x < s.x; x++ {
			if x > 0 {
				bw.WriteByte(' ')
			}
			speed := math.Round(float64(s.CellVelocity(x, y).Magnitude()))
			fmt.Fprintf(bw, "%d", int64(speed))
		}
		bw.WriteByte('\n')
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing grid dump: %w", err)
	}
	return nil
}
