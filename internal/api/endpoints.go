// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/jeranaias/statescope/internal/model"
)

// =============================================================================
// STATES AND POLICIES
// =============================================================================

// States lists every state with its aggregate policy status.
func (c *Client) States(ctx context.Context) ([]model.State, error) {
	var states []model.State
	if err := c.GetJSON(ctx, "/states", nil, &states); err != nil {
		return nil, err
	}
	return states, nil
}

// StatePolicies lists the policy records of one state.
func (c *Client) StatePolicies(ctx context.Context, code string) ([]model.Policy, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, &ClientError{Type: ErrTypeInvalidRequest, Message: "state code is empty"}
	}
	var policies []model.Policy
	if err := c.GetJSON(ctx, "/states/"+url.PathEscape(strings.ToUpper(code))+"/policies", nil, &policies); err != nil {
		return nil, err
	}
	return policies, nil
}

// Policy fetches a single policy record.
func (c *Client) Policy(ctx context.Context, id int) (*model.Policy, error) {
	var p model.Policy
	if err := c.GetJSON(ctx, "/policies/"+strconv.Itoa(id), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Topics lists the policy topics.
func (c *Client) Topics(ctx context.Context) ([]model.Topic, error) {
	var topics []model.Topic
	if err := c.GetJSON(ctx, "/topics", nil, &topics); err != nil {
		return nil, err
	}
	return topics, nil
}

// Health reports whether the API is up and how many policies it holds.
func (c *Client) Health(ctx context.Context) (*model.Health, error) {
	var h model.Health
	if err := c.GetJSON(ctx, "/health", nil, &h); err != nil {
		return nil, err
	}
	return &h, nil
}

// =============================================================================
// QUESTION ANSWERING
// =============================================================================

// Ask posts a question and returns the markdown answer with its sources.
// Blank questions are rejected without a request. When the client-side
// limiter is exhausted ErrRateLimited is returned immediately.
func (c *Client) Ask(ctx context.Context, question string) (*model.AskResponse, error) {
	if strings.TrimSpace(question) == "" {
		return nil, ErrEmptyQuestion
	}
	if c.limiter != nil && !c.limiter.Allow() {
		return nil, ErrRateLimited
	}

	ctx, cancel := context.WithTimeout(ctx, c.config.AskTimeout)
	defer cancel()

	var resp model.AskResponse
	if err := c.PostJSON(ctx, "/ask", model.AskRequest{Question: question}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
