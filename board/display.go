package board

import (
	"fmt"
	"strings"

	"github.com/muesli/termenv"
)

// Glyphs used by ToDisplayText.
const (
	moverGlyph    = "X"
	opponentGlyph = "O"
	emptyGlyph    = "."
	hintGlyph     = "*"
)

// ToDisplayText renders the position as a grid with coordinates. Cells in
// hints (usually the mobility mask) are marked with an asterisk. Use
// termenv.Ascii for plain output.
func (p Position) ToDisplayText(profile termenv.Profile, hints uint64) string {
	moverColor := profile.Color("1")
	oppColor := profile.Color("4")
	hintColor := profile.Color("2")

	var sb strings.Builder
	sb.WriteString("\n   ")
	for i := 0; i < Dim; i++ {
		sb.WriteString(fmt.Sprintf("%c ", 'a'+i))
	}
	sb.WriteString("\n   " + strings.Repeat("-", Dim*2) + "\n")
	for row := 0; row < Dim; row++ {
		sb.WriteString(fmt.Sprintf("%2d|", row+1))
		for col := 0; col < Dim; col++ {
			b := Bit(row*Dim + col)
			switch {
			case p.Mover&b != 0:
				sb.WriteString(profile.String(moverGlyph).Foreground(moverColor).Bold().String())
			case p.Opponent&b != 0:
				sb.WriteString(profile.String(opponentGlyph).Foreground(oppColor).Bold().String())
			case hints&b != 0:
				sb.WriteString(profile.String(hintGlyph).Foreground(hintColor).String())
			default:
				sb.WriteString(emptyGlyph)
			}
			sb.WriteString(" ")
		}
		sb.WriteString("|\n")
	}
	sb.WriteString("   " + strings.Repeat("-", Dim*2) + "\n")
	m, o := p.Count()
	sb.WriteString(fmt.Sprintf("   X (to move): %d  O: %d  empty: %d\n", m, o, p.NumEmpties()))
	return sb.String()
}
