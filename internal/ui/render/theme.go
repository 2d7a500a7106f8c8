package render

import (
	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/mdir/internal/state"
)

// ColorTheme defines application colors.
type ColorTheme struct {
	HeaderBg      tcell.Color
	HeaderFg      tcell.Color
	HiddenFg      tcell.Color
	SelectionBg   tcell.Color
	SelectionFg   tcell.Color
	VisualBg      tcell.Color
	VisualFg      tcell.Color
	DirectoryFg   tcell.Color
	SymlinkFg     tcell.Color
	FileFg        tcell.Color
	PreviewFg     tcell.Color
	PlaceholderFg tcell.Color
	SeparatorFg   tcell.Color
	StatusBg      tcell.Color
	StatusFg      tcell.Color
	ErrorFg       tcell.Color
	ModeFg        tcell.Color
	ModeBg        map[statepkg.Mode]tcell.Color
}

// GetColorTheme returns the default color scheme.
func GetColorTheme() ColorTheme {
	return ColorTheme{
		HeaderBg:      tcell.ColorDefault,
		HeaderFg:      tcell.ColorDefault,
		HiddenFg:      tcell.ColorLightSlateGray,
		SelectionBg:   tcell.Color33,
		SelectionFg:   tcell.ColorWhite,
		VisualBg:      tcell.Color97,
		VisualFg:      tcell.ColorWhite,
		DirectoryFg:   tcell.Color33,
		SymlinkFg:     tcell.Color51,
		FileFg:        tcell.ColorDefault,
		PreviewFg:     tcell.ColorDefault,
		PlaceholderFg: tcell.ColorLightSlateGray,
		SeparatorFg:   tcell.Color240,
		StatusBg:      tcell.Color236,
		StatusFg:      tcell.Color252,
		ErrorFg:       tcell.ColorRed,
		ModeFg:        tcell.ColorBlack,
		ModeBg: map[statepkg.Mode]tcell.Color{
			statepkg.ModeNormal:  tcell.Color33,
			statepkg.ModeInsert:  tcell.Color70,
			statepkg.ModeCommand: tcell.Color214,
			statepkg.ModeVisual:  tcell.Color97,
		},
	}
}
