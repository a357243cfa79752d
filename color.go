package gcolor

import (
	"errors"
	"sort"
	"strconv"
	"strings"
)

// ErrInvalidColor is returned by ParseColor if the input is neither a known label nor a code in [0,3].
var ErrInvalidColor = errors.New("invalid color")

// Color is a 2-bit rating code.
type Color uint8

// These are the possible color codes.
const (
	Red Color = iota
	Yellow
	Green
	Blue
)

// NumColors is the number of valid color codes.
const NumColors = 4

// Label tables. Only static tables are supported.
var labels = map[string][NumColors]string{
	"en": {"red", "yellow", "green", "blue"},
	"fa": {"قرمز", "زرد", "سبز", "آبی"},
}

// DefaultLang is used when a requested label table does not exist.
const DefaultLang = "en"

// Valid reports whether c is in [0,3].
func (c Color) Valid() bool {
	return c < NumColors
}

// String returns the English label of the color.
func (c Color) String() string {
	return c.Label(DefaultLang)
}

// Label returns the label of the color in the given language.
func (c Color) Label(lang string) string {
	if !c.Valid() {
		return "Color(" + strconv.Itoa(int(c)) + ")"
	}
	table, ok := labels[lang]
	if !ok {
		table = labels[DefaultLang]
	}
	return table[c]
}

// ParseColor parses a color label of any table (case-insensitive) or a code in [0,3].
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if code, err := strconv.Atoi(s); err == nil {
		if code < 0 || code >= NumColors {
			return 0, ErrInvalidColor
		}
		return Color(code), nil
	}
	for _, table := range labels {
		for i, l := range table {
			if strings.EqualFold(l, s) {
				return Color(i), nil
			}
		}
	}
	return 0, ErrInvalidColor
}

// Languages returns the sorted languages of the available label tables.
func Languages() []string {
	rs := make([]string, 0, len(labels))
	for k := range labels {
		rs = append(rs, k)
	}
	sort.Strings(rs)
	return rs
}
