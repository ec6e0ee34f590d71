// Package chart renders ranked counts as plain-text bar charts for the
// terminal.
package chart

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/cognicore/tweetlens/pkg/tweetlens/internalerr"
)

// NoData is printed instead of a chart when there is nothing to draw.
const NoData = "no data"

// DefaultWidth is the length of the longest bar.
const DefaultWidth = 50

// Spec describes a bar chart. Labels and Values are parallel.
type Spec struct {
	Title  string
	YLabel string
	Labels []string
	Values []int
	// Width of the longest bar in characters. Zero means DefaultWidth.
	Width int
	// Mark is the bar character. Zero means '#'.
	Mark rune
}

// Point is one labelled value of a series.
type Point struct {
	Label string
	Value int
}

// Bar writes a horizontal bar chart, one row per label in input order.
func Bar(w io.Writer, spec Spec) error {
	if len(spec.Labels) != len(spec.Values) {
		return fmt.Errorf("%w: %d labels for %d values", internalerr.ErrInvalidInput, len(spec.Labels), len(spec.Values))
	}
	width := spec.Width
	if width <= 0 {
		width = DefaultWidth
	}
	mark := spec.Mark
	if mark == 0 {
		mark = '#'
	}

	var b strings.Builder
	if spec.Title != "" {
		b.WriteString(spec.Title + "\n")
	}
	if spec.YLabel != "" {
		b.WriteString("(" + spec.YLabel + ")\n")
	}

	if len(spec.Values) == 0 {
		b.WriteString(NoData + "\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	labelWidth, maxValue := 0, 0
	for i, l := range spec.Labels {
		if n := utf8.RuneCountInString(l); n > labelWidth {
			labelWidth = n
		}
		if spec.Values[i] > maxValue {
			maxValue = spec.Values[i]
		}
	}

	for i, label := range spec.Labels {
		v := spec.Values[i]
		b.WriteString(label)
		b.WriteString(strings.Repeat(" ", labelWidth-utf8.RuneCountInString(label)))
		b.WriteString(" | ")
		b.WriteString(strings.Repeat(string(mark), barLen(v, maxValue, width)))
		fmt.Fprintf(&b, " %d\n", v)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// Series writes points as a bar chart, typically one row per day.
func Series(w io.Writer, title string, points []Point) error {
	spec := Spec{
		Title:  title,
		Labels: make([]string, len(points)),
		Values: make([]int, len(points)),
	}
	for i, p := range points {
		spec.Labels[i] = p.Label
		spec.Values[i] = p.Value
	}
	return Bar(w, spec)
}

func barLen(v, max, width int) int {
	if v <= 0 || max <= 0 {
		return 0
	}
	n := v * width / max
	if n == 0 {
		n = 1
	}
	return n
}
