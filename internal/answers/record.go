package answers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Question identifies one questionnaire step.
type Question int

const (
	ProblemSolution Question = iota + 1
	CustomerStories
	PurchaseInvolvement
	BudgetGoals
	Competition
	CustomerContext
	EmotionalJourney
	BrandAssets
	PastPerformance
	KeyUnderstanding
)

var questionLabels = map[Question]string{
	ProblemSolution:     "Problem & Solution",
	CustomerStories:     "Customer Stories",
	PurchaseInvolvement: "Purchase Involvement",
	BudgetGoals:         "Budget & Goals",
	Competition:         "Competition",
	CustomerContext:     "Customer Context",
	EmotionalJourney:    "Emotional Journey",
	BrandAssets:         "Brand Assets",
	PastPerformance:     "Past Performance",
	KeyUnderstanding:    "Key Understanding",
}

// Label returns the human label for q, or "Q<n>" for ids outside the questionnaire.
func (q Question) Label() string {
	if l, ok := questionLabels[q]; ok {
		return l
	}
	return fmt.Sprintf("Q%d", int(q))
}

// Key returns the record key for q.
func (q Question) Key() string {
	return strconv.Itoa(int(q))
}

const enhancedKey = "enhanced_data"

// Record is the questionnaire answer record. Values are kept as raw JSON so
// that strings, option lists and nested objects all decode without error.
type Record struct {
	values   map[string]json.RawMessage
	Enhanced *Enhanced
}

// New builds a Record from plain string answers.
func New(values map[Question]string) Record {
	r := Record{values: make(map[string]json.RawMessage, len(values))}
	for q, v := range values {
		b, _ := json.Marshal(v)
		r.values[q.Key()] = b
	}
	return r
}

// With returns a copy of r with q set to v. v may be a string, []string or any
// JSON-encodable value.
func (r Record) With(q Question, v any) Record {
	out := Record{values: make(map[string]json.RawMessage, len(r.values)+1), Enhanced: r.Enhanced}
	for k, raw := range r.values {
		out.values[k] = raw
	}
	b, err := json.Marshal(v)
	if err != nil {
		return out
	}
	out.values[q.Key()] = b
	return out
}

// Parse decodes a JSON answer record.
func Parse(data []byte) (Record, error) {
	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return Record{}, err
	}
	return r, nil
}

// UnmarshalJSON accepts any JSON object. A malformed enhanced_data block is
// ignored rather than failing the whole record.
func (r *Record) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*r = Record{}
		return nil
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode answer record: %w", err)
	}
	out := Record{values: make(map[string]json.RawMessage, len(raw))}
	for k, v := range raw {
		if k == enhancedKey {
			var e Enhanced
			if err := json.Unmarshal(v, &e); err == nil {
				out.Enhanced = &e
			}
			continue
		}
		out.values[k] = v
	}
	*r = out
	return nil
}

// MarshalJSON writes the record back in its wire form.
func (r Record) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(r.values)+1)
	for k, v := range r.values {
		m[k] = v
	}
	if r.Enhanced != nil {
		m[enhancedKey] = r.Enhanced
	}
	return json.Marshal(m)
}

// Text returns the string form of an answer. Option lists are joined with
// ", ", nested objects are rendered as compact JSON and missing answers are "".
func (r Record) Text(q Question) string {
	return textOf(r.values[q.Key()])
}

// Lower is Text lowercased, the form every keyword rule matches against.
func (r Record) Lower(q Question) string {
	return strings.ToLower(r.Text(q))
}

// Has reports whether q carries a non-empty answer.
func (r Record) Has(q Question) bool {
	return strings.TrimSpace(r.Text(q)) != ""
}

// Questions returns the numeric question ids present in the record in order.
// Non-numeric keys are skipped.
func (r Record) Questions() []Question {
	var qs []Question
	for k := range r.values {
		n, err := strconv.Atoi(k)
		if err != nil {
			continue
		}
		qs = append(qs, Question(n))
	}
	sort.Slice(qs, func(i, j int) bool { return qs[i] < qs[j] })
	return qs
}

// Len is the number of answers, enhanced data excluded.
func (r Record) Len() int {
	return len(r.values)
}

func textOf(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err == nil {
			parts := make([]string, 0, len(items))
			for _, it := range items {
				if s := textOf(it); s != "" {
					parts = append(parts, s)
				}
			}
			return strings.Join(parts, ", ")
		}
	case '{':
		var buf bytes.Buffer
		if err := json.Compact(&buf, raw); err == nil {
			return buf.String()
		}
	}
	return string(raw)
}
