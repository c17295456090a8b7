// Package render draws game snapshots as plain text, as coloured
// terminal frames, and as images that can be recorded into an animated
// GIF.
package render

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fogleman/gg"
	"github.com/samuelfneumann/badicecream/game"
)

var (
	Background = color.RGBA{255, 255, 255, 255}
	GridLine   = color.RGBA{0, 0, 0, 255}
	Player     = color.RGBA{0, 0, 255, 255}
	Enemy      = color.RGBA{255, 0, 0, 255}
	Fruit      = color.RGBA{0, 255, 0, 255}
	Block      = color.RGBA{200, 200, 255, 255}
	Text       = color.RGBA{0, 0, 0, 255}
)

// StepsLeft returns the status line shown beneath every frame
func StepsLeft(s game.Snapshot) string {
	return fmt.Sprintf("Steps Left: %d", s.StepsLeft)
}

// Plain draws a snapshot as one rune per cell followed by the status
// line
func Plain(s game.Snapshot) string {
	return s.Grid.String() + StepsLeft(s)
}

var cellStyles = [game.NumCells]lipgloss.Style{
	game.Empty:  lipgloss.NewStyle().Faint(true),
	game.Player: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0000FF")),
	game.Enemy:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF0000")),
	game.Fruit:  lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00")),
	game.Block:  lipgloss.NewStyle().Foreground(lipgloss.Color("#C8C8FF")),
}

var (
	boardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)
	statusStyle = lipgloss.NewStyle().Bold(true)
)

// Styled draws a snapshot for a terminal, colouring each cell and
// framing the board. Colours are dropped when the output does not
// support them.
func Styled(s game.Snapshot) string {
	rows, cols := s.Grid.Dims()

	lines := make([]string, rows)
	cells := make([]string, cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			cell := s.Grid.At(game.Position{Row: r, Col: c})
			cells[c] = cellStyles[cell].Render(string(cell.Rune()))
		}
		lines[r] = strings.Join(cells, " ")
	}

	status := fmt.Sprintf("%s  Score: %.0f", StepsLeft(s), s.Score)
	if s.Outcome.Terminal() {
		status += "  " + s.Outcome.String()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		boardStyle.Render(strings.Join(lines, "\n")),
		statusStyle.Render(status),
	)
}

// Image draws a snapshot at CellSize pixels per cell: a white board
// with black grid lines, the player as a blue circle, enemies as red
// squares, fruit as green circles, and blocks as light blue squares.
// The status line is drawn in the top right corner.
func Image(s game.Snapshot) image.Image {
	rows, cols := s.Grid.Dims()
	size := float64(s.CellSize)
	width, height := cols*s.CellSize, rows*s.CellSize

	dc := gg.NewContext(width, height)
	dc.SetColor(Background)
	dc.Clear()

	dc.SetColor(GridLine)
	dc.SetLineWidth(1)
	for c := 0; c <= cols; c++ {
		x := pixelCentre(float64(c)*size, width)
		dc.DrawLine(x, 0, x, float64(height))
	}
	for r := 0; r <= rows; r++ {
		y := pixelCentre(float64(r)*size, height)
		dc.DrawLine(0, y, float64(width), y)
	}
	dc.Stroke()

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			x, y := float64(c)*size, float64(r)*size
			cx, cy := x+size/2, y+size/2

			switch s.Grid.At(game.Position{Row: r, Col: c}) {
			case game.Player:
				dc.DrawCircle(cx, cy, size/3)
				dc.SetColor(Player)
			case game.Enemy:
				dc.DrawRectangle(x, y, size, size)
				dc.SetColor(Enemy)
			case game.Fruit:
				dc.DrawCircle(cx, cy, size/4)
				dc.SetColor(Fruit)
			case game.Block:
				dc.DrawRectangle(x, y, size, size)
				dc.SetColor(Block)
			default:
				continue
			}
			dc.Fill()
		}
	}

	dc.SetColor(Text)
	dc.DrawStringAnchored(StepsLeft(s), float64(width)-10, 20, 1, 0.5)

	return dc.Image()
}

// pixelCentre moves a coordinate onto the centre of the nearest pixel
// inside [0, limit) so that one pixel wide lines are drawn crisply
func pixelCentre(v float64, limit int) float64 {
	return math.Min(v, float64(limit-1)) + 0.5
}
