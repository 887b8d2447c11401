// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package dashboard

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/statescope/internal/api"
	"github.com/jeranaias/statescope/internal/model"
	"github.com/jeranaias/statescope/internal/ui/styles"
)

// FilterField is one dimension of the trends filter bar.
type FilterField int

const (
	FilterState FilterField = iota
	FilterTopic
	FilterType
	numFilters
)

var filterLabels = [numFilters]string{"State", "Topic", "Type"}

var typeLabels = map[string]string{
	"bill":            "Bill",
	"guidance":        "Guidance",
	"executive_order": "Executive Order",
}

// option is one choice of a filter. The empty value means "All".
type option struct {
	Value string
	Label string
}

// Filters is the trends filter bar: a state, a topic and a policy type,
// each either a concrete value or "All".
type Filters struct {
	options [numFilters][]option
	index   [numFilters]int
	focus   FilterField
}

// NewFilters returns a bar with every filter at "All". State and topic
// choices arrive with SetStates and SetTopics.
func NewFilters() *Filters {
	f := &Filters{}
	f.options[FilterState] = []option{{"", "All states"}}
	f.options[FilterTopic] = []option{{"", "All topics"}}
	types := []option{{"", "All types"}}
	for _, t := range model.PolicyTypes {
		label, ok := typeLabels[t]
		if !ok {
			label = model.PolicyTypeLabel(t)
		}
		types = append(types, option{t, label})
	}
	f.options[FilterType] = types
	return f
}

// SetStates offers the states that have at least one policy, by code. The
// current choice survives when it is still offered.
func (f *Filters) SetStates(states []model.State) {
	opts := []option{{"", "All states"}}
	for _, s := range model.SortStatesByCode(model.StatesWithPolicies(states)) {
		opts = append(opts, option{s.Code, s.Name})
	}
	f.replace(FilterState, opts)
}

// SetTopics offers the given topics.
func (f *Filters) SetTopics(topics []model.Topic) {
	opts := []option{{"", "All topics"}}
	for _, t := range topics {
		opts = append(opts, option{strconv.Itoa(t.ID), t.Name})
	}
	f.replace(FilterTopic, opts)
}

func (f *Filters) replace(field FilterField, opts []option) {
	current := f.options[field][f.index[field]].Value
	f.options[field] = opts
	f.index[field] = 0
	for i, o := range opts {
		if o.Value == current {
			f.index[field] = i
			break
		}
	}
}

// Value returns the request filters. "All" fields stay empty so they are
// left out of the query string.
func (f *Filters) Value() api.TrendFilters {
	return api.TrendFilters{
		State:      f.options[FilterState][f.index[FilterState]].Value,
		TopicID:    f.options[FilterTopic][f.index[FilterTopic]].Value,
		PolicyType: f.options[FilterType][f.index[FilterType]].Value,
	}
}

// Label returns the display text of field's current choice.
func (f *Filters) Label(field FilterField) string {
	return f.options[field][f.index[field]].Label
}

// Focused returns the field that keyboard changes apply to.
func (f *Filters) Focused() FilterField {
	return f.focus
}

// SetFocus makes field the focused one.
func (f *Filters) SetFocus(field FilterField) {
	if field >= 0 && field < numFilters {
		f.focus = field
	}
}

// MoveFocus moves the focused field by delta, wrapping.
func (f *Filters) MoveFocus(delta int) {
	n := int(numFilters)
	f.focus = FilterField(((int(f.focus)+delta)%n + n) % n)
}

// Cycle steps field through its choices by delta, wrapping. It reports
// whether the value changed.
func (f *Filters) Cycle(field FilterField, delta int) bool {
	n := len(f.options[field])
	if n < 2 {
		return false
	}
	f.index[field] = ((f.index[field]+delta)%n + n) % n
	return true
}

// Set chooses value for field and reports whether it changed. Unknown
// values are ignored.
func (f *Filters) Set(field FilterField, value string) bool {
	for i, o := range f.options[field] {
		if o.Value == value {
			changed := i != f.index[field]
			f.index[field] = i
			return changed
		}
	}
	return false
}

// Reset returns field to "All" and reports whether it changed.
func (f *Filters) Reset(field FilterField) bool {
	if f.index[field] == 0 {
		return false
	}
	f.index[field] = 0
	return true
}

// =============================================================================
// RENDERING
// =============================================================================

// span is the columns [start, end) of one rendered field.
type span struct {
	start, end int
}

// View renders the bar on one line and returns the column span of each
// field for hit-testing.
func (f *Filters) View(theme *styles.Theme, focused bool) (string, [numFilters]span) {
	var spans [numFilters]span
	var parts []string
	pos := 0
	for i := FilterField(0); i < numFilters; i++ {
		style := theme.FilterValue
		if focused && i == f.focus {
			style = theme.FilterFocused
		}
		part := theme.FilterLabel.Render(filterLabels[i]+":") + style.Render("< "+f.Label(i)+" >")
		w := lipgloss.Width(part)
		spans[i] = span{pos, pos + w}
		parts = append(parts, part)
		pos += w + 2
	}
	return strings.Join(parts, "  "), spans
}
