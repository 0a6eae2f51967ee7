package termbridge

import (
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/pkg/errors"
)

type colorKind uint8

const (
	colorDefault colorKind = iota
	colorBase
	colorRGB
	colorPalette
)

// BaseColor is one of the eight classic terminal colors.
type BaseColor uint8

const (
	Black BaseColor = iota
	Red
	Green
	Yellow
	Blue
	Magenta
	Cyan
	White
)

// Color selects a terminal color. The zero value is the terminal
// default. Colors are pure data; the escape sequences they produce are
// fixed tables, so two Colors are equal exactly when they render the
// same.
type Color struct {
	kind    colorKind
	base    BaseColor
	light   bool
	r, g, b uint8
	index   uint8
}

// DarkColor returns the normal-intensity variant of a base color.
func DarkColor(b BaseColor) Color {
	return Color{kind: colorBase, base: b}
}

// LightColor returns the bright variant of a base color.
func LightColor(b BaseColor) Color {
	return Color{kind: colorBase, base: b, light: true}
}

// RGBColor returns a 24-bit color.
func RGBColor(r, g, b uint8) Color {
	return Color{kind: colorRGB, r: r, g: g, b: b}
}

// PaletteColor returns a color from the 256-color palette.
func PaletteColor(n uint8) Color {
	return Color{kind: colorPalette, index: n}
}

// fg returns the SGR parameters selecting this color as foreground.
func (c Color) fg() string {
	switch c.kind {
	case colorBase:
		if c.light {
			return strconv.Itoa(90 + int(c.base))
		}
		return strconv.Itoa(30 + int(c.base))
	case colorRGB:
		return "38;2;" + strconv.Itoa(int(c.r)) + ";" + strconv.Itoa(int(c.g)) + ";" + strconv.Itoa(int(c.b))
	case colorPalette:
		return "38;5;" + strconv.Itoa(int(c.index))
	}
	return "39"
}

// bg returns the SGR parameters selecting this color as background.
func (c Color) bg() string {
	switch c.kind {
	case colorBase:
		if c.light {
			return strconv.Itoa(100 + int(c.base))
		}
		return strconv.Itoa(40 + int(c.base))
	case colorRGB:
		return "48;2;" + strconv.Itoa(int(c.r)) + ";" + strconv.Itoa(int(c.g)) + ";" + strconv.Itoa(int(c.b))
	case colorPalette:
		return "48;5;" + strconv.Itoa(int(c.index))
	}
	return "49"
}

// Effect is a text attribute toggle. The set is closed; toggling is an
// exhaustive switch, not dynamic dispatch.
type Effect uint8

const (
	EffectReverse Effect = iota
	EffectBold
	EffectItalic
	EffectUnderline
	numEffects
)

// on returns the SGR parameter enabling the effect.
func (e Effect) on() string {
	switch e {
	case EffectReverse:
		return "7"
	case EffectBold:
		return "1"
	case EffectItalic:
		return "3"
	case EffectUnderline:
		return "4"
	}
	return ""
}

// off returns the SGR parameter disabling the effect.
func (e Effect) off() string {
	switch e {
	case EffectReverse:
		return "27"
	case EffectBold:
		return "22"
	case EffectItalic:
		return "23"
	case EffectUnderline:
		return "24"
	}
	return ""
}

// EffectSet is a bitmask of Effects.
type EffectSet uint8

func (es EffectSet) Has(e Effect) bool {
	return es&(1<<e) != 0
}

func (es EffectSet) With(e Effect) EffectSet {
	return es | (1 << e)
}

// Style is the full visual treatment applied when printing: foreground,
// background and any number of effects. The zero value is the
// terminal's default rendition.
type Style struct {
	Foreground Color
	Background Color
	Effects    EffectSet
}

// sgr renders the complete escape sequence selecting this style. It
// resets first so the result does not depend on what was on screen.
func (s Style) sgr() string {
	params := []string{"0", s.Foreground.fg(), s.Background.bg()}
	for e := Effect(0); e < numEffects; e++ {
		if s.Effects.Has(e) {
			params = append(params, e.on())
		}
	}
	return "\x1b[" + strings.Join(params, ";") + "m"
}

var (
	stringToColor = map[string]Color{
		"default": {},
		"black":   DarkColor(Black),
		"red":     DarkColor(Red),
		"green":   DarkColor(Green),
		"yellow":  DarkColor(Yellow),
		"blue":    DarkColor(Blue),
		"magenta": DarkColor(Magenta),
		"cyan":    DarkColor(Cyan),
		"white":   DarkColor(White),
	}
	stringToEffect = map[string]Effect{
		"reverse":   EffectReverse,
		"bold":      EffectBold,
		"italic":    EffectItalic,
		"underline": EffectUnderline,
	}
)

// stringsToStyle builds a Style from config words: a bare color name or
// 256-palette number sets the foreground, the same with an "on_" prefix
// sets the background, and effect names accumulate.
func stringsToStyle(style *Style, raw []string) error {
	*style = Style{}

	for _, word := range raw {
		if effect, ok := stringToEffect[word]; ok {
			style.Effects = style.Effects.With(effect)
			continue
		}

		target := &style.Foreground
		name := word
		if strings.HasPrefix(word, "on_") {
			target = &style.Background
			name = word[3:]
		}

		if color, ok := stringToColor[name]; ok {
			*target = color
			continue
		}
		if n, err := strconv.ParseUint(name, 10, 8); err == nil {
			*target = PaletteColor(uint8(n))
			continue
		}
		return errors.Errorf("unknown style %q", word)
	}
	return nil
}

// UnmarshalYAML accepts the list-of-words config form, e.g.
// ["cyan", "on_black", "bold"].
func (s *Style) UnmarshalYAML(buf []byte) error {
	raw := []string{}
	if err := yaml.Unmarshal(buf, &raw); err != nil {
		return errors.Wrap(err, "failed to unmarshal Style")
	}
	return stringsToStyle(s, raw)
}

// StyleSet holds the styles the demo binary prints with.
type StyleSet struct {
	Basic     Style `yaml:"basic"`
	Highlight Style `yaml:"highlight"`
	Error     Style `yaml:"error"`
}

// Init sets the default styles.
func (ss *StyleSet) Init() {
	ss.Basic = Style{}
	ss.Highlight = Style{Foreground: DarkColor(Cyan)}
	ss.Error = Style{Foreground: DarkColor(Red), Effects: EffectSet(0).With(EffectBold)}
}
