// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"net/url"

	"github.com/jeranaias/statescope/internal/model"
)

// TrendKind names a /trends/{kind} aggregate.
type TrendKind string

const (
	TrendTimeline TrendKind = "timeline"
	TrendTopics   TrendKind = "topics"
	TrendStatus   TrendKind = "status"
	TrendLevel    TrendKind = "level"
)

// TrendFilters narrows a trend aggregate. Empty fields are not sent.
type TrendFilters struct {
	State      string
	TopicID    string
	PolicyType string
}

// Query encodes the non-empty filters.
func (f TrendFilters) Query() url.Values {
	q := url.Values{}
	if f.State != "" {
		q.Set("state", f.State)
	}
	if f.TopicID != "" {
		q.Set("topic_id", f.TopicID)
	}
	if f.PolicyType != "" {
		q.Set("policy_type", f.PolicyType)
	}
	return q
}

// IsZero reports whether no filter is set.
func (f TrendFilters) IsZero() bool {
	return f == TrendFilters{}
}

// TrendPath returns the request path for kind with filters applied,
// e.g. /trends/timeline?state=CA&topic_id=3.
func TrendPath(kind TrendKind, f TrendFilters) string {
	path := "/trends/" + string(kind)
	if q := f.Query(); len(q) > 0 {
		path += "?" + q.Encode()
	}
	return path
}

// Timeline counts policy introductions per year.
func (c *Client) Timeline(ctx context.Context, f TrendFilters) ([]model.TimelineRow, error) {
	var rows []model.TimelineRow
	if err := c.GetJSON(ctx, "/trends/"+string(TrendTimeline), f.Query(), &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// TopicTrends counts policies per topic. The API ignores topic_id here.
func (c *Client) TopicTrends(ctx context.Context, f TrendFilters) ([]model.TopicCount, error) {
	var rows []model.TopicCount
	if err := c.GetJSON(ctx, "/trends/"+string(TrendTopics), f.Query(), &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// StatusTrends counts policies per status.
func (c *Client) StatusTrends(ctx context.Context) ([]model.StatusCount, error) {
	var rows []model.StatusCount
	if err := c.GetJSON(ctx, "/trends/"+string(TrendStatus), nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// LevelTrends counts policies per level.
func (c *Client) LevelTrends(ctx context.Context) ([]model.LevelCount, error) {
	var rows []model.LevelCount
	if err := c.GetJSON(ctx, "/trends/"+string(TrendLevel), nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
