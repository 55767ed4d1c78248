// Package report renders ranked words as a text table, JSON or YAML.
package report

import (
	"strconv"
	"unicode/utf8"
)

// Kind tags the value held by a Cell
type Kind int

const (
	Text Kind = iota
	Number
)

// Cell is one table value. Numbers print with three decimals, text as-is.
type Cell struct {
	Kind   Kind
	Text   string
	Number float64
}

func TextCell(s string) Cell {
	return Cell{Kind: Text, Text: s}
}

func NumberCell(f float64) Cell {
	return Cell{Kind: Number, Number: f}
}

func (c Cell) String() string {
	if c.Kind == Number {
		return strconv.FormatFloat(c.Number, 'f', 3, 64)
	}
	return c.Text
}

// Width is the printed width in code points.
func (c Cell) Width() int {
	return utf8.RuneCountInString(c.String())
}
