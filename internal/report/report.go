package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/knowledge-engine/tfidf/internal/tfidf"
)

const padding = 5

// Format selects how ranked rows are written
type Format int

const (
	FormatTable Format = iota
	FormatJSON
	FormatYAML
)

var header = []string{"word", "tf_idf", "tf"}

// Write renders rows in the given format. Only the table carries the
// corpus word count summary.
func Write(w io.Writer, format Format, rows []tfidf.ScoreRow, wordCount int) error {
	switch format {
	case FormatJSON:
		return WriteJSON(w, rows)
	case FormatYAML:
		return WriteYAML(w, rows)
	default:
		return WriteTable(w, rows, wordCount)
	}
}

// WriteTable prints rows as left-justified columns of one shared width,
// followed by the corpus word count.
func WriteTable(w io.Writer, rows []tfidf.ScoreRow, wordCount int) error {
	cells := make([][]Cell, len(rows))
	width := 0
	for _, key := range header {
		width = max(width, TextCell(key).Width())
	}
	for i, row := range rows {
		cells[i] = []Cell{TextCell(row.Word), NumberCell(row.TFIDF), NumberCell(row.TF)}
		for _, cell := range cells[i] {
			width = max(width, cell.Width())
		}
	}
	width += padding

	var b strings.Builder
	for _, key := range header {
		b.WriteString(strings.ToUpper(ljust(TextCell(key), width)))
	}
	b.WriteByte('\n')
	for _, row := range cells {
		for _, cell := range row {
			b.WriteString(ljust(cell, width))
		}
		b.WriteByte('\n')
	}
	b.WriteString("-----\n")
	fmt.Fprintf(&b, "num words in corpus: %d\n", wordCount)

	_, err := io.WriteString(w, b.String())
	return err
}

func ljust(c Cell, width int) string {
	s := c.String()
	if n := width - c.Width(); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}

type jsonRow struct {
	Word  string    `json:"word"`
	TFIDF reprFloat `json:"tf_idf"`
	TF    reprFloat `json:"tf"`
}

// WriteJSON prints rows as an indented JSON array in ranked order.
func WriteJSON(w io.Writer, rows []tfidf.ScoreRow) error {
	out := make([]jsonRow, len(rows))
	for i, row := range rows {
		out[i] = jsonRow{Word: row.Word, TFIDF: reprFloat(row.TFIDF), TF: reprFloat(row.TF)}
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("failed to encode json: %w", err)
	}
	return nil
}

// reprFloat encodes as the shortest round-trip decimal, always with a
// fraction or exponent so integral values read back as floats (0.0, not 0).
type reprFloat float64

func (f reprFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("unsupported float value: %v", v)
	}

	abs := math.Abs(v)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return []byte(strconv.FormatFloat(v, 'e', -1, 64)), nil
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return []byte(s), nil
}

type yamlRow struct {
	Word  string  `yaml:"word"`
	TFIDF float64 `yaml:"tf_idf"`
	TF    float64 `yaml:"tf"`
}

// WriteYAML prints rows as a YAML sequence in ranked order.
func WriteYAML(w io.Writer, rows []tfidf.ScoreRow) error {
	out := make([]yamlRow, len(rows))
	for i, row := range rows {
		out[i] = yamlRow{Word: row.Word, TFIDF: row.TFIDF, TF: row.TF}
	}

	enc := yaml.NewEncoder(w)
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	return enc.Close()
}
