// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package dashboard

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jeranaias/statescope/internal/api"
	"github.com/jeranaias/statescope/internal/mapview"
	"github.com/jeranaias/statescope/internal/model"
	"github.com/jeranaias/statescope/internal/resource"
)

// Source is the part of the policy API the dashboard reads. *api.Client
// implements it.
type Source interface {
	States(ctx context.Context) ([]model.State, error)
	StatePolicies(ctx context.Context, code string) ([]model.Policy, error)
	Topics(ctx context.Context) ([]model.Topic, error)
	Timeline(ctx context.Context, f api.TrendFilters) ([]model.TimelineRow, error)
	TopicTrends(ctx context.Context, f api.TrendFilters) ([]model.TopicCount, error)
	StatusTrends(ctx context.Context) ([]model.StatusCount, error)
	LevelTrends(ctx context.Context) ([]model.LevelCount, error)
	Health(ctx context.Context) (*model.Health, error)
	Ask(ctx context.Context, question string) (*model.AskResponse, error)
}

var _ Source = (*api.Client)(nil)

// Resource names, used in logs and error toasts.
const (
	resStates       = "states"
	resPolicies     = "policies"
	resTopics       = "topics"
	resTimeline     = "timeline"
	resTopicTrends  = "topic trends"
	resStatusTrends = "status trends"
	resLevelTrends  = "level trends"
	resHealth       = "health"
)

// data holds every fetched resource of the dashboard.
type data struct {
	states       *resource.Resource[[]model.State]
	policies     *resource.Resource[[]model.Policy]
	topics       *resource.Resource[[]model.Topic]
	timeline     *resource.Resource[[]model.TimelineRow]
	topicTrends  *resource.Resource[[]model.TopicCount]
	statusTrends *resource.Resource[[]model.StatusCount]
	levelTrends  *resource.Resource[[]model.LevelCount]
	health       *resource.Resource[*model.Health]
}

func newData() data {
	return data{
		states:       resource.New[[]model.State](),
		policies:     resource.New[[]model.Policy](),
		topics:       resource.New[[]model.Topic](),
		timeline:     resource.New[[]model.TimelineRow](),
		topicTrends:  resource.New[[]model.TopicCount](),
		statusTrends: resource.New[[]model.StatusCount](),
		levelTrends:  resource.New[[]model.LevelCount](),
		health:       resource.New[*model.Health](),
	}
}

// =============================================================================
// FETCH COMMANDS
// =============================================================================

func (m *Model) fetchStates() tea.Cmd {
	t := m.data.states.Start("all")
	return resource.Fetch(resStates, t, m.src.States)
}

func (m *Model) fetchTopics() tea.Cmd {
	t := m.data.topics.Start("all")
	return resource.Fetch(resTopics, t, m.src.Topics)
}

func (m *Model) fetchHealth() tea.Cmd {
	t := m.data.health.Start("health")
	return resource.Fetch(resHealth, t, m.src.Health)
}

// fetchPolicies loads the policies of code. An empty code clears the panel
// without a request.
func (m *Model) fetchPolicies(code string) tea.Cmd {
	if code == "" {
		m.data.policies.Reset()
		return nil
	}
	t := m.data.policies.Start(code)
	return resource.Fetch(resPolicies, t, func(ctx context.Context) ([]model.Policy, error) {
		return m.src.StatePolicies(ctx, code)
	})
}

// fetchTrends re-issues the two filtered aggregates.
func (m *Model) fetchTrends() tea.Cmd {
	f := m.filters.Value()
	key := f.Query().Encode()

	tl := m.data.timeline.Start(key)
	tt := m.data.topicTrends.Start(key)
	return tea.Batch(
		resource.Fetch(resTimeline, tl, func(ctx context.Context) ([]model.TimelineRow, error) {
			return m.src.Timeline(ctx, f)
		}),
		resource.Fetch(resTopicTrends, tt, func(ctx context.Context) ([]model.TopicCount, error) {
			return m.src.TopicTrends(ctx, f)
		}),
	)
}

// fetchBreakdowns loads the unfiltered status and level counts.
func (m *Model) fetchBreakdowns() tea.Cmd {
	st := m.data.statusTrends.Start("all")
	lv := m.data.levelTrends.Start("all")
	return tea.Batch(
		resource.Fetch(resStatusTrends, st, m.src.StatusTrends),
		resource.Fetch(resLevelTrends, lv, m.src.LevelTrends),
	)
}

// refresh reloads everything the current view shows.
func (m *Model) refresh() tea.Cmd {
	return tea.Batch(
		m.fetchStates(),
		m.fetchTopics(),
		m.fetchHealth(),
		m.fetchPolicies(m.sel.Selected()),
		m.fetchTrends(),
		m.fetchBreakdowns(),
	)
}

// =============================================================================
// RESULT HANDLING
// =============================================================================

// handleResult applies a resource.Result. It reports whether msg was a
// result at all.
func (m *Model) handleResult(msg tea.Msg) (bool, tea.Cmd) {
	var (
		name    string
		current bool
		err     error
	)

	switch msg := msg.(type) {
	case resource.Result[[]model.State]:
		name, err = msg.Name, msg.Err
		if current = m.data.states.Apply(msg); current && err == nil {
			m.onStates()
		}
	case resource.Result[[]model.Policy]:
		name, err = msg.Name, msg.Err
		current = m.data.policies.Apply(msg)
		if current {
			m.resetCards()
		}
	case resource.Result[[]model.Topic]:
		name, err = msg.Name, msg.Err
		if current = m.data.topics.Apply(msg); current && err == nil {
			m.filters.SetTopics(msg.Data)
		}
	case resource.Result[[]model.TimelineRow]:
		name, err = msg.Name, msg.Err
		current = m.data.timeline.Apply(msg)
	case resource.Result[[]model.TopicCount]:
		name, err = msg.Name, msg.Err
		current = m.data.topicTrends.Apply(msg)
	case resource.Result[[]model.StatusCount]:
		name, err = msg.Name, msg.Err
		current = m.data.statusTrends.Apply(msg)
	case resource.Result[[]model.LevelCount]:
		name, err = msg.Name, msg.Err
		current = m.data.levelTrends.Apply(msg)
	case resource.Result[*model.Health]:
		name, err = msg.Name, msg.Err
		if current = m.data.health.Apply(msg); current {
			if err != nil {
				m.header.SetHealth(nil)
			} else {
				m.header.SetHealth(msg.Data)
			}
		}
	default:
		return false, nil
	}

	if !current {
		m.log.Debug("stale result dropped", zap.String("resource", name))
		return true, nil
	}
	if err == nil {
		return true, nil
	}

	m.log.Warn("fetch failed", zap.String("resource", name), zap.Error(err))
	if name == resHealth {
		// The header already says "API: unreachable".
		return true, nil
	}
	return true, m.toast(fmt.Sprintf("Error loading %s: %v", name, err), true)
}

// onStates rebuilds everything derived from the state list.
func (m *Model) onStates() {
	m.index = mapview.IndexStates(m.data.states.Data)
	m.filters.SetStates(m.data.states.Data)
	if code := m.sel.Selected(); code != "" {
		m.panelChat.SetContext(m.stateName(code))
	}
}
