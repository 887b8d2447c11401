// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "sort"

// =============================================================================
// API RECORDS
// =============================================================================

// State is one US state (or DC) with its aggregate policy status.
type State struct {
	ID           int    `json:"id,omitempty"`
	Code         string `json:"code"`
	Name         string `json:"name"`
	FIPS         string `json:"fips"`
	Region       string `json:"region,omitempty"`
	PolicyStatus string `json:"policy_status"`
	PolicyCount  int    `json:"policy_count"`
}

// Status returns the normalized map status.
func (s State) Status() StateStatus {
	return ParseStateStatus(s.PolicyStatus)
}

// Policy is a single bill, guidance document or executive order.
type Policy struct {
	ID             int    `json:"id"`
	Title          string `json:"title"`
	Description    string `json:"description,omitempty"`
	PolicyType     string `json:"policy_type"`
	Level          string `json:"level,omitempty"`
	StatusRaw      string `json:"status"`
	BillNumber     string `json:"bill_number,omitempty"`
	Sponsor        string `json:"sponsor,omitempty"`
	DateIntroduced string `json:"date_introduced,omitempty"`
	DateEnacted    string `json:"date_enacted,omitempty"`
	SummaryText    string `json:"summary_text,omitempty"`
	SourceURL      string `json:"source_url,omitempty"`
}

// Status returns the normalized badge status.
func (p Policy) Status() PolicyStatus {
	return ParsePolicyStatus(p.StatusRaw)
}

// Topic is a policy topic used as a filter dimension.
type Topic struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// =============================================================================
// TREND AGGREGATES
// =============================================================================

// TimelineRow counts policies introduced in a year.
type TimelineRow struct {
	Year  string `json:"year"`
	Count int    `json:"count"`
}

// TopicCount counts policies tagged with a topic.
type TopicCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// StatusCount counts policies by status.
type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// LevelCount counts policies by level (state or federal).
type LevelCount struct {
	Level string `json:"level"`
	Count int    `json:"count"`
}

// Bar is one labeled value of a bar chart.
type Bar struct {
	Label string
	Count int
}

// TimelineBars keeps the API's chronological order.
func TimelineBars(rows []TimelineRow) []Bar {
	bars := make([]Bar, 0, len(rows))
	for _, r := range rows {
		bars = append(bars, Bar{Label: r.Year, Count: r.Count})
	}
	return bars
}

// TopicBars drops empty topics and sorts the rest by count, largest first.
// Ties keep their API order.
func TopicBars(rows []TopicCount) []Bar {
	bars := make([]Bar, 0, len(rows))
	for _, r := range rows {
		if r.Count > 0 {
			bars = append(bars, Bar{Label: r.Name, Count: r.Count})
		}
	}
	sort.SliceStable(bars, func(i, j int) bool { return bars[i].Count > bars[j].Count })
	return bars
}

// MaxCount returns the largest count among bars, or 0.
func MaxCount(bars []Bar) int {
	max := 0
	for _, b := range bars {
		if b.Count > max {
			max = b.Count
		}
	}
	return max
}

// =============================================================================
// QUESTION ANSWERING
// =============================================================================

// AskRequest is the body of POST /ask.
type AskRequest struct {
	Question string `json:"question"`
}

// Source is a policy cited by an answer.
type Source struct {
	Title  string `json:"title"`
	URL    string `json:"url,omitempty"`
	State  string `json:"state"`
	Status string `json:"status"`
}

// AskResponse is the body returned by POST /ask.
type AskResponse struct {
	Answer   string   `json:"answer"`
	Sources  []Source `json:"sources,omitempty"`
	Question string   `json:"question,omitempty"`
	Model    string   `json:"model,omitempty"`
}

// Health is the body returned by GET /health.
type Health struct {
	Status      string `json:"status"`
	PolicyCount int    `json:"policy_count"`
}

// =============================================================================
// HELPERS
// =============================================================================

// SortStatesByCode returns a copy of states ordered by postal code.
func SortStatesByCode(states []State) []State {
	out := append([]State(nil), states...)
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// StatesWithPolicies keeps states that have at least one policy.
func StatesWithPolicies(states []State) []State {
	var out []State
	for _, s := range states {
		if s.PolicyCount > 0 {
			out = append(out, s)
		}
	}
	return out
}

// FindState looks a state up by postal code.
func FindState(states []State, code string) (State, bool) {
	for _, s := range states {
		if s.Code == code {
			return s, true
		}
	}
	return State{}, false
}
