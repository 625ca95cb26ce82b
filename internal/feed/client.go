package feed

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rxtech-lab/argo-paper-agent/internal/types"
	"github.com/rxtech-lab/argo-paper-agent/pkg/errors"
)

const defaultClientTimeout = 10 * time.Second

// AgentClient talks to a running agent over its HTTP API.
type AgentClient struct {
	client *resty.Client
}

// NewAgentClient creates a client for the agent at baseURL, e.g. http://localhost:8000.
func NewAgentClient(baseURL string) *AgentClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(defaultClientTimeout).
		SetHeader("Content-Type", "application/json")

	return &AgentClient{client: client}
}

// Health returns the agent's health and version.
func (c *AgentClient) Health(ctx context.Context) (types.HealthResponse, error) {
	var health types.HealthResponse

	err := c.do(ctx, resty.MethodGet, "/healthz", nil, &health)

	return health, err
}

// SendTick posts one tick and returns the agent's decision.
func (c *AgentClient) SendTick(ctx context.Context, tick types.MarketTick) (types.BotDecision, error) {
	var decision types.BotDecision

	err := c.do(ctx, resty.MethodPost, "/api/agent/on-tick", tick, &decision)

	return decision, err
}

// State returns the current account snapshot.
func (c *AgentClient) State(ctx context.Context) (types.AccountState, error) {
	var state types.AccountState

	err := c.do(ctx, resty.MethodGet, "/api/agent/state", nil, &state)

	return state, err
}

// Trades returns every trade the agent's sink has recorded.
func (c *AgentClient) Trades(ctx context.Context) ([]types.TradeEvent, error) {
	trades := make([]types.TradeEvent, 0)

	err := c.do(ctx, resty.MethodGet, "/api/agent/trades", nil, &trades)

	return trades, err
}

// Reset restores the agent account and returns the fresh snapshot.
func (c *AgentClient) Reset(ctx context.Context) (types.AccountState, error) {
	var state types.AccountState

	err := c.do(ctx, resty.MethodPost, "/api/agent/reset", nil, &state)

	return state, err
}

// Stats returns the agent's running trade statistics.
func (c *AgentClient) Stats(ctx context.Context) (types.TradeStats, error) {
	var stats types.TradeStats

	err := c.do(ctx, resty.MethodGet, "/api/agent/stats", nil, &stats)

	return stats, err
}

func (c *AgentClient) do(ctx context.Context, method, path string, body, result any) error {
	var apiErr types.ErrorResponse

	req := c.client.R().
		SetContext(ctx).
		SetResult(result).
		SetError(&apiErr)

	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeFeedRequestFailed, err, "%s %s failed", method, path)
	}

	if resp.IsError() {
		if apiErr.Error != "" {
			return errors.Newf(errors.ErrCodeFeedRequestFailed, "%s %s returned %d: [%d] %s",
				method, path, resp.StatusCode(), apiErr.Code, apiErr.Error)
		}

		return errors.Newf(errors.ErrCodeFeedRequestFailed, "%s %s returned %d", method, path, resp.StatusCode())
	}

	return nil
}
