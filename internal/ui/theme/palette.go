package theme

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// DefaultPalette is used whenever a palette key is unknown.
const DefaultPalette = "coral"

// ErrInvalidHex is returned for colour strings that are not #rrggbb.
var ErrInvalidHex = errors.New("invalid hex colour")

// Appearance selects the dark or light environment of a palette.
type Appearance string

const (
	AppearanceDark  Appearance = "dark"
	AppearanceLight Appearance = "light"
)

// ParseAppearance returns the named appearance, falling back to dark.
func ParseAppearance(value string) Appearance {
	if Appearance(strings.ToLower(strings.TrimSpace(value))) == AppearanceLight {
		return AppearanceLight
	}
	return AppearanceDark
}

// Environment holds the surface and text colours behind the accent.
type Environment struct {
	Background color.NRGBA
	Surface    color.NRGBA
	Surface2   color.NRGBA
	Surface3   color.NRGBA
	ClockFace  color.NRGBA
	ClockRim   color.NRGBA
	Text       color.NRGBA
	TextMuted  color.NRGBA
	TextDim    color.NRGBA
}

// Palette is a named accent gradient with its environments.
type Palette struct {
	Key      string
	Name     string
	Group    string
	Start    color.NRGBA
	End      color.NRGBA
	Mid      color.NRGBA
	Swatches []color.NRGBA
	Dark     Environment
	// Light is nil for palettes that use the neutral light environment.
	Light *Environment
}

// Environment returns the palette's environment for appearance.
func (palette Palette) Environment(appearance Appearance) Environment {
	if appearance == AppearanceDark {
		return palette.Dark
	}
	if palette.Light != nil {
		return *palette.Light
	}
	neutral := neutralLight
	neutral.ClockFace = mustHex("#ffffff")
	neutral.ClockRim = mustHex("#e8e6de")
	return neutral
}

// Glow is the accent start colour at the given alpha (0..1).
func (palette Palette) Glow(alpha float64) color.NRGBA {
	glow := palette.Start
	glow.A = uint8(alpha*255 + 0.5)
	return glow
}

// ParseHex parses a #rrggbb colour.
func ParseHex(value string) (color.NRGBA, error) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(value), "#")
	if len(trimmed) != 6 {
		return color.NRGBA{}, fmt.Errorf("parse %q: %w", value, ErrInvalidHex)
	}
	n, err := strconv.ParseUint(trimmed, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("parse %q: %w", value, ErrInvalidHex)
	}
	return color.NRGBA{R: uint8(n >> 16), G: uint8(n >> 8), B: uint8(n), A: 0xff}, nil
}

// Lookup returns the palette for key, or the default palette when key is
// unknown. The boolean reports whether key was found.
func Lookup(key string) (Palette, bool) {
	if palette, ok := palettes[key]; ok {
		return palette, true
	}
	return palettes[DefaultPalette], false
}

// Known reports whether key names a palette.
func Known(key string) bool {
	_, ok := palettes[key]
	return ok
}

// Keys returns palette keys in display order.
func Keys() []string {
	return append([]string(nil), order...)
}

// Palettes returns every palette in display order.
func Palettes() []Palette {
	result := make([]Palette, 0, len(order))
	for _, key := range order {
		result = append(result, palettes[key])
	}
	return result
}

func mustHex(value string) color.NRGBA {
	parsed, err := ParseHex(value)
	if err != nil {
		panic(err)
	}
	return parsed
}

func hexes(values ...string) []color.NRGBA {
	result := make([]color.NRGBA, 0, len(values))
	for _, value := range values {
		result = append(result, mustHex(value))
	}
	return result
}

// env takes bg, surface, surface2, surface3, text, textMuted, textDim.
func env(values ...string) Environment {
	parsed := hexes(values...)
	return Environment{
		Background: parsed[0],
		Surface:    parsed[1],
		Surface2:   parsed[2],
		Surface3:   parsed[3],
		ClockFace:  parsed[0],
		ClockRim:   parsed[1],
		Text:       parsed[4],
		TextMuted:  parsed[5],
		TextDim:    parsed[6],
	}
}

var neutralLight = env("#f6f5f0", "#ffffff", "#f0efe9", "#e8e6de", "#1c1c22", "#5e5e6a", "#9a9aa6")

var order = []string{
	"coral", "violet", "cyan", "emerald", "rose", "amber",
	"woodland", "summit", "acid", "concrete", "darkroom", "manuscript",
}

var palettes = buildPalettes()

func buildPalettes() map[string]Palette {
	classic := func(key, name, start, end, mid string, dark Environment) Palette {
		return Palette{
			Key: key, Name: name, Group: "Classic",
			Start: mustHex(start), End: mustHex(end), Mid: mustHex(mid),
			Swatches: hexes(start, end),
			Dark:     dark,
		}
	}
	curated := func(key, name, start, end, mid string, swatches []color.NRGBA, dark Environment) Palette {
		return Palette{
			Key: key, Name: name, Group: "Curated",
			Start: mustHex(start), End: mustHex(end), Mid: mustHex(mid),
			Swatches: swatches,
			Dark:     dark,
		}
	}

	manuscriptLight := env("#edede9", "#f5ebe0", "#e3d5ca", "#d6ccc2", "#2c1f14", "#6b5040", "#9c7e68")
	manuscriptLight.ClockFace = mustHex("#faf6f0")
	manuscriptLight.ClockRim = manuscriptLight.Surface3

	manuscript := curated("manuscript", "Manuscript", "#a0876e", "#c9b8a8", "#b09880",
		hexes("#edede9", "#d6ccc2", "#f5ebe0", "#e3d5ca", "#d5bdaf"),
		env("#16120e", "#1e1810", "#271f15", "#32281a", "#f0e8dc", "#b09070", "#786050"))
	manuscript.Light = &manuscriptLight

	list := []Palette{
		classic("coral", "Coral", "#ff6b6b", "#ff8e53", "#ff7a5f",
			env("#160e0e", "#201212", "#2a1818", "#361e1e", "#f8f0f0", "#c09098", "#806068")),
		classic("violet", "Violet", "#7c3aed", "#a78bfa", "#8b5cf6",
			env("#0e0b18", "#130f20", "#1b1529", "#241c35", "#f0f0fc", "#9898d0", "#606098")),
		classic("cyan", "Cyan", "#06b6d4", "#22d3ee", "#0ea5e9",
			env("#070f14", "#0b1720", "#101f2a", "#162837", "#eef8fc", "#7ab8cc", "#4a7888")),
		classic("emerald", "Emerald", "#10b981", "#34d399", "#059669",
			env("#071410", "#0b1d16", "#10261d", "#153025", "#eef8f4", "#78b8a0", "#487860")),
		classic("rose", "Rose", "#f43f5e", "#fb7185", "#e11d48",
			env("#15080c", "#200c12", "#2a1018", "#35141f", "#faf0f2", "#c890a0", "#886070")),
		classic("amber", "Amber", "#f59e0b", "#fbbf24", "#d97706",
			env("#141006", "#1e170a", "#281f0e", "#322713", "#faf5ec", "#c0a870", "#806840")),
		curated("woodland", "Woodland Rave", "#f95d9b", "#39a0ca", "#c74a82",
			hexes("#478559", "#161748", "#f95d9b", "#39a0ca"),
			env("#0b0e1a", "#111629", "#181f35", "#1e2840", "#f0f0f8", "#8898b8", "#586080")),
		curated("summit", "Summit & Bloom", "#fea49f", "#fbaf08", "#fd7f7a",
			hexes("#101357", "#fea49f", "#fbaf08", "#00a0a0", "#007f4f"),
			env("#080b1c", "#0e1228", "#141933", "#1a203e", "#eef0f8", "#88a0c0", "#506080")),
		curated("acid", "Acid Garden", "#0e0fed", "#8bf0ba", "#5272f4",
			hexes("#8bf0ba", "#0e0fed", "#94f0f1", "#f2b1d8", "#ffdc6a"),
			env("#05050f", "#09091a", "#0e0e24", "#13132d", "#f0fff8", "#78d0a8", "#406850")),
		curated("concrete", "Midnight Concrete", "#feda6a", "#d4d4dc", "#e8c85a",
			hexes("#feda6a", "#d4d4dc", "#393f4d", "#1d1e22"),
			env("#111215", "#18191e", "#1e2028", "#252730", "#f4f4f8", "#a8a8c0", "#686878")),
		curated("darkroom", "Darkroom", "#00c07f", "#cd5554", "#00a06a",
			hexes("#cd5554", "#91684a", "#00c07f", "#313d4b"),
			env("#090d0b", "#0f1510", "#141c15", "#1a231a", "#eef4f0", "#88a898", "#506858")),
		manuscript,
	}

	result := make(map[string]Palette, len(list))
	for _, palette := range list {
		result[palette.Key] = palette
	}
	return result
}
