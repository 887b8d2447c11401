// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "strings"

// =============================================================================
// STATE STATUS
// =============================================================================

// StateStatus is the legislative status used to color a state on the map.
type StateStatus string

const (
	StateNone     StateStatus = "none"
	StateGuidance StateStatus = "guidance"
	StatePending  StateStatus = "pending"
	StateEnacted  StateStatus = "enacted"
	StateFailed   StateStatus = "failed"
)

// StateStatuses lists the map statuses in legend order.
var StateStatuses = []StateStatus{StateNone, StateGuidance, StatePending, StateEnacted, StateFailed}

// ParseStateStatus normalizes s. Unknown values map to StateNone.
func ParseStateStatus(s string) StateStatus {
	switch st := StateStatus(strings.ToLower(strings.TrimSpace(s))); st {
	case StateNone, StateGuidance, StatePending, StateEnacted, StateFailed:
		return st
	default:
		return StateNone
	}
}

// Label is the tooltip wording for the status.
func (s StateStatus) Label() string {
	switch s {
	case StateEnacted:
		return "Enacted legislation"
	case StatePending:
		return "Pending bills"
	case StateGuidance:
		return "Guidance only"
	case StateFailed:
		return "Failed legislation"
	default:
		return "No policy yet"
	}
}

// LegendLabel is the shorter wording used in the map legend.
func (s StateStatus) LegendLabel() string {
	switch s {
	case StateEnacted:
		return "Enacted"
	case StatePending:
		return "Pending"
	case StateGuidance:
		return "Guidance only"
	case StateFailed:
		return "Failed"
	default:
		return "No policy"
	}
}

// =============================================================================
// POLICY STATUS
// =============================================================================

// PolicyStatus is the status badge of a single policy record.
type PolicyStatus string

const (
	PolicyEnacted    PolicyStatus = "enacted"
	PolicyIntroduced PolicyStatus = "introduced"
	PolicyActive     PolicyStatus = "active"
	PolicyFailed     PolicyStatus = "failed"
)

// ParsePolicyStatus normalizes s. Unknown values map to PolicyActive.
func ParsePolicyStatus(s string) PolicyStatus {
	switch st := PolicyStatus(strings.ToLower(strings.TrimSpace(s))); st {
	case PolicyEnacted, PolicyIntroduced, PolicyActive, PolicyFailed:
		return st
	default:
		return PolicyActive
	}
}

// =============================================================================
// POLICY TYPES
// =============================================================================

// PolicyTypes are the policy_type filter values offered by the trends view.
var PolicyTypes = []string{"bill", "guidance", "executive_order"}

// PolicyTypeLabel turns a policy_type token into display text
// ("executive_order" -> "executive order").
func PolicyTypeLabel(t string) string {
	return strings.ReplaceAll(t, "_", " ")
}
