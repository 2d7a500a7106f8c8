package render

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/mdir/internal/state"
	textutil "github.com/kk-code-lab/mdir/internal/textutil"
)

// listPercent is the share of the body width given to the file list.
const listPercent = 60

// Renderer paints AppState onto a tcell screen. It never mutates state.
type Renderer struct {
	screen tcell.Screen
	theme  ColorTheme
}

// NewRenderer creates a new renderer
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{
		screen: screen,
		theme:  GetColorTheme(),
	}
}

type layoutMetrics struct {
	bodyTop    int
	bodyBottom int // exclusive
	listWidth  int
	previewX   int
	previewW   int
}

func computeLayout(w, h int) layoutMetrics {
	l := layoutMetrics{bodyTop: 1, bodyBottom: max(h-2, 1)}
	l.listWidth = w * listPercent / 100
	if l.listWidth < 1 {
		l.listWidth = w
	}
	l.previewX = l.listWidth + 1
	l.previewW = max(w-l.previewX, 0)
	return l
}

// Render draws the entire UI based on state
func (r *Renderer) Render(state *statepkg.AppState) {
	r.screen.Clear()
	r.screen.HideCursor()

	w, h := r.screen.Size()
	if w <= 0 || h <= 0 {
		return
	}
	layout := computeLayout(w, h)

	r.drawHeader(state, w)
	r.drawFileList(state, layout)
	if layout.previewW > 0 {
		sepStyle := tcell.StyleDefault.Foreground(r.theme.SeparatorFg)
		for y := layout.bodyTop; y < layout.bodyBottom; y++ {
			r.screen.SetContent(layout.listWidth, y, '│', nil, sepStyle)
		}
		r.drawPreview(state, layout)
	}
	if h >= 3 {
		r.drawStatusLine(state, w, h-2)
	}
	if h >= 2 {
		r.drawCommandLine(state, w, h-1)
	}

	r.screen.Show()
}

func (r *Renderer) drawHeader(state *statepkg.AppState, w int) {
	headerStyle := tcell.StyleDefault.Background(r.theme.HeaderBg).Foreground(r.theme.HeaderFg)

	endX := r.drawTextLine(0, 0, w, "mdir ", headerStyle.Bold(true))
	path := textutil.SanitizeTerminalText(state.CurrentPath)
	if path == "" {
		path = "/"
	}
	// Keep the tail of long paths visible.
	if avail := w - endX; textutil.DisplayWidth(path) > avail && avail > 1 {
		path = textutil.Ellipsis + truncateLeft(path, avail-1)
	}
	endX = r.drawTextLine(endX, 0, w-endX, path, headerStyle)
	r.fillLine(endX, w, 0, headerStyle)
}

// listOffset returns the first visible row so the selection stays on screen.
func listOffset(selected, visible int) int {
	if visible <= 0 || selected < visible {
		return 0
	}
	return selected - visible + 1
}

func (r *Renderer) drawFileList(state *statepkg.AppState, l layoutMetrics) {
	visible := l.bodyBottom - l.bodyTop
	offset := listOffset(state.SelectedIndex, visible)
	base := tcell.StyleDefault

	y := l.bodyTop
	for idx := offset; idx < len(state.Entries) && y < l.bodyBottom; idx++ {
		f := state.Entries[idx]

		var rowStyle tcell.Style
		switch {
		case idx == state.SelectedIndex:
			rowStyle = base.Background(r.theme.SelectionBg).Foreground(r.theme.SelectionFg)
		case state.InVisualRange(idx):
			rowStyle = base.Background(r.theme.VisualBg).Foreground(r.theme.VisualFg)
		case f.IsSymlink:
			rowStyle = base.Foreground(r.theme.SymlinkFg)
		case f.IsDir:
			rowStyle = base.Foreground(r.theme.DirectoryFg)
		case f.IsHidden():
			rowStyle = base.Foreground(r.theme.HiddenFg)
		default:
			rowStyle = base.Foreground(r.theme.FileFg)
		}

		// Icon: @ for symlinks, / for directories, space for files
		icon := " "
		if f.IsSymlink {
			icon = "@"
		} else if f.IsDir {
			icon = "/"
		}

		prefix := fmt.Sprintf(" %s ", icon)
		name := textutil.Truncate(textutil.SanitizeTerminalText(f.Name), l.listWidth-len(prefix))
		endX := r.drawTextLine(0, y, l.listWidth, prefix+name, rowStyle)
		r.fillLine(endX, l.listWidth, y, rowStyle)
		y++
	}
}

func (r *Renderer) drawPreview(state *statepkg.AppState, l layoutMetrics) {
	style := tcell.StyleDefault.Foreground(r.theme.PreviewFg)
	text := state.Preview
	if text == statepkg.DirectoryPlaceholder || text == statepkg.UnreadablePlaceholder {
		style = style.Foreground(r.theme.PlaceholderFg).Italic(true)
	}

	x := l.previewX + 1
	width := l.previewW - 1
	if width <= 0 {
		return
	}

	y := l.bodyTop
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		line = textutil.SanitizeTerminalText(textutil.ExpandTabs(line, textutil.DefaultTabWidth))
		for _, row := range wrapText(line, width) {
			if y >= l.bodyBottom {
				return
			}
			r.drawTextLine(x, y, width, row, style)
			y++
		}
	}
}

func (r *Renderer) drawStatusLine(state *statepkg.AppState, w, y int) {
	barStyle := tcell.StyleDefault.Background(r.theme.StatusBg).Foreground(r.theme.StatusFg)
	modeStyle := tcell.StyleDefault.Background(r.theme.ModeBg[state.Mode]).Foreground(r.theme.ModeFg).Bold(true)

	x := r.drawTextLine(0, y, w, " "+state.Mode.String()+" ", modeStyle)

	right := formatPosition(state)
	if state.PreviewType != "" {
		right = state.PreviewType + "  " + right
	}
	right += " "
	rightW := textutil.DisplayWidth(right)

	msgStyle := barStyle
	msg := formatEntryInfo(state)
	switch {
	case state.ErrorMessage != "":
		msg = "error: " + state.ErrorMessage
		msgStyle = barStyle.Foreground(r.theme.ErrorFg).Bold(true)
	case state.StatusMessage != "":
		msg = state.StatusMessage
	}

	msgWidth := max(w-x-rightW-1, 0)
	msg = textutil.Truncate(" "+textutil.SanitizeTerminalText(msg), msgWidth)
	endX := r.drawTextLine(x, y, msgWidth, msg, msgStyle)
	r.fillLine(endX, w, y, barStyle)
	if rightW < w-x {
		r.drawTextLine(w-rightW, y, rightW, right, barStyle)
	}
}

func (r *Renderer) drawCommandLine(state *statepkg.AppState, w, y int) {
	style := tcell.StyleDefault

	var text string
	switch state.Mode {
	case statepkg.ModeCommand:
		text = ":" + textutil.SanitizeTerminalText(state.CommandBuffer)
		// Keep the cursor end visible when the command is wider than the screen.
		if tw := textutil.DisplayWidth(text); tw >= w && w > 1 {
			text = truncateLeft(text, w-1)
		}
		endX := r.drawTextLine(0, y, w, text, style)
		r.fillLine(endX, w, y, style)
		r.screen.ShowCursor(min(endX, w-1), y)
		return
	case statepkg.ModeVisual:
		lo, hi := state.VisualRange()
		text = fmt.Sprintf("-- VISUAL -- %d selected", hi-lo+1)
	case statepkg.ModeInsert:
		text = "-- INSERT --"
	}
	endX := r.drawTextLine(0, y, w, text, style)
	r.fillLine(endX, w, y, style)
}

func formatPosition(state *statepkg.AppState) string {
	if len(state.Entries) == 0 {
		return "0/0"
	}
	return fmt.Sprintf("%d/%d", state.SelectedIndex+1, len(state.Entries))
}

func formatEntryInfo(state *statepkg.AppState) string {
	entry, ok := state.SelectedEntry()
	if !ok || entry.IsParent() {
		return ""
	}
	info := entry.Mode.String()
	if !entry.IsDir {
		info += "  " + formatSize(entry.Size)
	}
	if !entry.Modified.IsZero() {
		info += "  " + entry.Modified.Format("2006-01-02 15:04")
	}
	return info
}

func formatSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%dB", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit && exp < 4; m /= unit {
		div *= unit
		exp++
	}
	return trimTrailingZero(fmt.Sprintf("%.1f", float64(n)/float64(div))) + string("KMGTP"[exp])
}

func trimTrailingZero(s string) string {
	return strings.TrimSuffix(strings.TrimSuffix(s, "0"), ".")
}

// truncateLeft keeps the last width columns of text.
func truncateLeft(text string, width int) string {
	runes := []rune(text)
	total := 0
	for i := len(runes) - 1; i >= 0; i-- {
		total += max(textutil.DisplayWidth(string(runes[i])), 0)
		if total > width {
			return string(runes[i+1:])
		}
	}
	return text
}
