// Package render draws board snapshots as text.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/benbeisheim/flipchess-backend/internal/catalog"
	"github.com/benbeisheim/flipchess-backend/internal/model"
)

const emptyCell = "."

// Text returns the snapshot as eight lines of icons, each prefixed with
// its row index, followed by a column index footer.
func Text(s model.BoardSnapshot, c *catalog.Catalog) string {
	var sb strings.Builder
	_ = Write(&sb, s, c)
	return sb.String()
}

func Write(w io.Writer, s model.BoardSnapshot, c *catalog.Catalog) error {
	for row := 0; row < model.Size; row++ {
		cells := make([]string, model.Size)
		for col := 0; col < model.Size; col++ {
			cells[col] = emptyCell
			if piece := s[row][col]; piece != nil {
				cells[col] = c.Icon(piece.Type, piece.Color)
			}
		}
		if _, err := fmt.Fprintf(w, "%d %s\n", row, strings.Join(cells, " ")); err != nil {
			return err
		}
	}
	footer := make([]string, model.Size)
	for col := range footer {
		footer[col] = fmt.Sprint(col)
	}
	_, err := fmt.Fprintf(w, "  %s\n", strings.Join(footer, " "))
	return err
}
