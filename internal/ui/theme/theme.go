// Package theme holds the palette catalogue and turns a palette into a fyne
// theme.
package theme

import (
	"image/color"

	"fyne.io/fyne/v2"
	fynetheme "fyne.io/fyne/v2/theme"
)

// Theme is a fyne.Theme painted with one palette in one appearance.
// Fonts, icons and sizes come from the fyne default theme.
type Theme struct {
	palette    Palette
	appearance Appearance
	env        Environment
}

var _ fyne.Theme = (*Theme)(nil)

// New builds the theme for a palette key and appearance. Unknown keys fall
// back to the default palette.
func New(key string, appearance Appearance) *Theme {
	palette, _ := Lookup(key)
	return &Theme{
		palette:    palette,
		appearance: appearance,
		env:        palette.Environment(appearance),
	}
}

// Palette returns the palette in use.
func (theme *Theme) Palette() Palette {
	return theme.palette
}

// Environment returns the environment in use.
func (theme *Theme) Environment() Environment {
	return theme.env
}

// Variant is the fyne variant matching the appearance.
func (theme *Theme) Variant() fyne.ThemeVariant {
	if theme.appearance == AppearanceLight {
		return fynetheme.VariantLight
	}
	return fynetheme.VariantDark
}

// Color ignores the requested variant; the appearance is chosen by the user.
func (theme *Theme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	switch name {
	case fynetheme.ColorNamePrimary, fynetheme.ColorNameFocus:
		return theme.palette.Start
	case fynetheme.ColorNameHyperlink:
		return theme.palette.End
	case fynetheme.ColorNameBackground:
		return theme.env.Background
	case fynetheme.ColorNameForeground:
		return theme.env.Text
	case fynetheme.ColorNameForegroundOnPrimary:
		return theme.env.Background
	case fynetheme.ColorNameButton, fynetheme.ColorNameInputBorder:
		return theme.env.Surface2
	case fynetheme.ColorNameInputBackground, fynetheme.ColorNameMenuBackground,
		fynetheme.ColorNameOverlayBackground, fynetheme.ColorNameHeaderBackground:
		return theme.env.Surface
	case fynetheme.ColorNameDisabledButton, fynetheme.ColorNameSeparator:
		return theme.env.Surface3
	case fynetheme.ColorNameDisabled:
		return theme.env.TextDim
	case fynetheme.ColorNamePlaceHolder:
		return theme.env.TextMuted
	case fynetheme.ColorNameHover, fynetheme.ColorNameSelection:
		return theme.palette.Glow(0.12)
	case fynetheme.ColorNamePressed:
		return theme.palette.Glow(0.35)
	}
	return fynetheme.DefaultTheme().Color(name, theme.Variant())
}

func (theme *Theme) Font(style fyne.TextStyle) fyne.Resource {
	return fynetheme.DefaultTheme().Font(style)
}

func (theme *Theme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return fynetheme.DefaultTheme().Icon(name)
}

func (theme *Theme) Size(name fyne.ThemeSizeName) float32 {
	return fynetheme.DefaultTheme().Size(name)
}
