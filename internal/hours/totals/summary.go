package totals

import (
	"encoding/json"
	"fmt"
	"math"
)

// Line is one category of a Summary.
type Line struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Display returns the formatted value of the line.
func (l Line) Display() string {
	return FormatValue(l.Label, l.Value)
}

// Summary maps category labels to values and keeps insertion order.
type Summary struct {
	lines []Line
	index map[string]int
}

func newSummary() Summary {
	s := Summary{index: make(map[string]int)}
	s.set(LabelHoursWorked, 0)
	return s
}

func (s *Summary) add(label string, delta float64) {
	if i, ok := s.index[label]; ok {
		s.lines[i].Value += delta
		return
	}
	s.index[label] = len(s.lines)
	s.lines = append(s.lines, Line{Label: label, Value: delta})
}

func (s *Summary) set(label string, value float64) {
	if i, ok := s.index[label]; ok {
		s.lines[i].Value = value
		return
	}
	s.index[label] = len(s.lines)
	s.lines = append(s.lines, Line{Label: label, Value: value})
}

// Get returns the value of label.
func (s Summary) Get(label string) (float64, bool) {
	i, ok := s.index[label]
	if !ok {
		return 0, false
	}
	return s.lines[i].Value, true
}

// HoursWorked returns the total worked hours.
func (s Summary) HoursWorked() float64 {
	v, _ := s.Get(LabelHoursWorked)
	return v
}

// Count returns the number of days counted under label.
func (s Summary) Count(label string) int {
	v, _ := s.Get(label)
	return int(v)
}

// Lines returns a copy of the categories in display order.
func (s Summary) Lines() []Line {
	out := make([]Line, len(s.lines))
	copy(out, s.lines)
	return out
}

// Labels returns the category labels in display order.
func (s Summary) Labels() []string {
	out := make([]string, len(s.lines))
	for i, l := range s.lines {
		out[i] = l.Label
	}
	return out
}

// Len returns the number of categories, "Hours Worked" included.
func (s Summary) Len() int {
	return len(s.lines)
}

// ToMap flattens the summary, dropping order.
func (s Summary) ToMap() map[string]float64 {
	m := make(map[string]float64, len(s.lines))
	for _, l := range s.lines {
		m[l.Label] = l.Value
	}
	return m
}

type jsonLine struct {
	Label   string  `json:"label"`
	Value   float64 `json:"value"`
	Display string  `json:"display"`
}

// MarshalJSON renders the summary as an ordered array.
func (s Summary) MarshalJSON() ([]byte, error) {
	out := make([]jsonLine, len(s.lines))
	for i, l := range s.lines {
		out[i] = jsonLine{Label: l.Label, Value: l.Value, Display: l.Display()}
	}
	return json.Marshal(out)
}

// FormatValue renders a summary value. Worked hours print as "Xh Ym" with
// the minutes rounded, so a value just under an hour boundary prints "60m".
// Every other category prints as an integer count.
func FormatValue(label string, value float64) string {
	if label == LabelHoursWorked {
		whole := math.Floor(value)
		minutes := math.Round((value - whole) * 60)
		return fmt.Sprintf("%.0fh %.0fm", whole, minutes)
	}
	return fmt.Sprintf("%d", int(math.Round(value)))
}
