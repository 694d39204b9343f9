package domain

import (
	"strconv"
	"strings"
)

const (
	cellWidth  = 5
	cellHeight = 3
)

// Render draws the board as a fixed-width grid, top row first, with the
// column numbers centered under each cell.
func Render(b *Board) string {
	var sb strings.Builder

	sb.WriteString("\n")
	for row := Rows - 1; row >= 0; row-- {
		for i := 0; i < cellHeight; i++ {
			sb.WriteString("\t|")
			for col := 0; col < Columns; col++ {
				marker := b.grid[row][col].Marker()
				for j := 0; j < cellWidth; j++ {
					sb.WriteByte(marker)
				}
				sb.WriteByte('|')
			}
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\t+")
	for col := 0; col < Columns; col++ {
		sb.WriteString(strings.Repeat("-", cellWidth))
		sb.WriteByte('+')
	}
	sb.WriteString("\n")

	left := (cellWidth - 1) / 2
	right := cellWidth - 1 - left
	sb.WriteString("\t ")
	for col := 1; col <= Columns; col++ {
		sb.WriteString(strings.Repeat(" ", left))
		sb.WriteString(strconv.Itoa(col))
		sb.WriteByte(' ')
		sb.WriteString(strings.Repeat(" ", right))
	}
	sb.WriteString("\n\n")

	return sb.String()
}

func (b *Board) String() string {
	return Render(b)
}
