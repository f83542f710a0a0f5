package cyk

import (
	"fmt"
	"strings"

	"github.com/dekarrin/rosed"
)

// TableString returns the DP table of the Result as a text table no wider than
// width. Each column is a starting token and each row is a span length; a cell
// lists every non-terminal that derives the span. Cells with no non-terminals
// are shown as "-".
func (r Result) TableString(width int) string {
	n := r.Table.Len()
	if n == 0 {
		return "(empty table)"
	}

	topRow := []string{"LEN"}
	for i := 0; i < n; i++ {
		tok := ""
		if i < len(r.Tokens) {
			tok = r.Tokens[i]
		}
		topRow = append(topRow, fmt.Sprintf("%d: %s", i, tok))
	}
	data := [][]string{topRow}

	for l := 0; l < n; l++ {
		dataRow := []string{fmt.Sprintf("%d", l+1)}
		for i := 0; i < n; i++ {
			cell := r.Table.Cell(i, l)
			switch {
			case cell == nil:
				dataRow = append(dataRow, "")
			case cell.Len() == 0:
				dataRow = append(dataRow, "-")
			default:
				dataRow = append(dataRow, strings.Join(cell.Symbols(), ", "))
			}
		}
		data = append(data, dataRow)
	}

	return rosed.Edit("").
		InsertTableOpts(0, data, width, rosed.Options{
			TableHeaders:             true,
			TableBorders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()
}
