package render

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// drawTextLine draws text from startX, clipped to maxWidth columns, and returns
// the column after the last cell written. Zero-width runes attach to the
// preceding cell as combining characters.
func (r *Renderer) drawTextLine(startX, y, maxWidth int, text string, style tcell.Style) int {
	x := startX
	runes := []rune(text)
	i := 0

	for i < len(runes) {
		mainc := runes[i]
		w := runewidth.RuneWidth(mainc)
		if w == 0 {
			w = 1
		}
		if x-startX+w > maxWidth {
			break
		}
		i++

		var combc []rune
		for i < len(runes) && runewidth.RuneWidth(runes[i]) == 0 && runes[i] >= ' ' {
			combc = append(combc, runes[i])
			i++
		}

		r.screen.SetContent(x, y, mainc, combc, style)
		x += w
	}

	return x
}

// fillLine pads columns [fromX, toX) on row y.
func (r *Renderer) fillLine(fromX, toX, y int, style tcell.Style) {
	for x := fromX; x < toX; x++ {
		r.screen.SetContent(x, y, ' ', nil, style)
	}
}

// wrapText splits text into rows no wider than maxWidth columns.
func wrapText(text string, maxWidth int) []string {
	if maxWidth <= 0 {
		return nil
	}
	var rows []string
	var builder strings.Builder
	currentWidth := 0

	flush := func() {
		rows = append(rows, builder.String())
		builder.Reset()
		currentWidth = 0
	}

	for _, ru := range text {
		runeWidth := runewidth.RuneWidth(ru)
		if runeWidth <= 0 {
			runeWidth = 1
		}
		if currentWidth > 0 && currentWidth+runeWidth > maxWidth {
			flush()
		}
		builder.WriteRune(ru)
		currentWidth += runeWidth
	}

	if builder.Len() > 0 || len(rows) == 0 {
		flush()
	}
	return rows
}
