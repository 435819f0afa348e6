package board

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/daystram/pgneval/position"
)

var (
	drawLabel     = color.New(color.Bold)
	drawCellLight = color.New(color.FgBlack, color.BgHiGreen)
	drawCellDark  = color.New(color.FgBlack, color.BgGreen)
)

// Draw renders the board with unicode glyphs on a colored checkerboard, rank 8 on top.
func (b *Board) Draw() string {
	builder := strings.Builder{}
	for y := position.Pos(Height) - 1; y >= 0; y-- {
		_, _ = builder.WriteString(drawLabel.Sprintf(" %d ", y+1))
		for x := position.Pos(0); x < Width; x++ {
			sym := " "
			if c := b.cells[position.NewPos(y, x)]; !c.IsEmpty() {
				sym = c.Piece().SymbolUnicode(c.Side())
			}
			paint := drawCellLight
			if (x+y)%2 == 0 {
				paint = drawCellDark
			}
			_, _ = builder.WriteString(paint.Sprintf(" %s ", sym))
		}
		_, _ = builder.WriteString("\n")
	}
	_, _ = builder.WriteString("   ")
	for x := position.Pos(0); x < Width; x++ {
		_, _ = builder.WriteString(drawLabel.Sprint(fmt.Sprintf(" %s ", x.NotationComponentFile())))
	}
	return builder.String()
}
