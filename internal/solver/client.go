package solver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ManadaHerath/hexpath/internal/grid"
)

// Client talks to the external solver service.
type Client struct {
	baseURL string
	http    *http.Client
	log     *logrus.Entry
}

type Option func(*Client)

// WithHTTPClient replaces the default client, e.g. for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithLogger(l *logrus.Entry) Option {
	return func(c *Client) { c.log = l }
}

func NewClient(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     logrus.WithField("component", "solver"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ===== DTOs =====

type Dimensions struct {
	Height int `json:"height"`
	Width  int `json:"width"`
}

type weightsRequest struct {
	Grid [][]int `json:"grid"`
}

type solveRequest struct {
	StartX int `json:"start_x"`
	StartY int `json:"start_y"`
	EndX   int `json:"end_x"`
	EndY   int `json:"end_y"`
}

// ===== Endpoints =====

// GET /grid/dimensions
func (c *Client) Dimensions(ctx context.Context) (Dimensions, error) {
	var d Dimensions
	err := c.do(ctx, http.MethodGet, "/grid/dimensions", nil, &d)
	return d, err
}

// PUT /grid/dimensions
func (c *Client) SetDimensions(ctx context.Context, d Dimensions) (Dimensions, error) {
	var out Dimensions
	err := c.do(ctx, http.MethodPut, "/grid/dimensions", d, &out)
	return out, err
}

// GET /grid/weights
func (c *Client) Weights(ctx context.Context) ([][]int, error) {
	var tab [][]int
	err := c.do(ctx, http.MethodGet, "/grid/weights", nil, &tab)
	return tab, err
}

// PUT /grid/weights
func (c *Client) PutWeights(ctx context.Context, tab [][]int) error {
	return c.do(ctx, http.MethodPut, "/grid/weights", weightsRequest{Grid: tab}, nil)
}

// Solve runs algo between start and end on the solver's current grid.
// POST /algorithm/{algo}
func (c *Client) Solve(ctx context.Context, algo Algorithm, start, end grid.Coord) (*Result, error) {
	if !algo.valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, algo)
	}
	// the solver indexes cells as [x][y] = [row][col]
	req := solveRequest{
		StartX: start.Row,
		StartY: start.Col,
		EndX:   end.Row,
		EndY:   end.Col,
	}
	var res Result
	if err := c.do(ctx, http.MethodPost, "/algorithm/"+string(algo), req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// ===== Helpers =====

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.log.WithFields(logrus.Fields{
		"method":  method,
		"path":    path,
		"status":  resp.StatusCode,
		"elapsed": time.Since(started).String(),
	}).Debug("solver call")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		if err := json.Unmarshal(raw, apiErr); err != nil {
			apiErr.Message = strings.TrimSpace(string(raw))
		}
		return apiErr
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s %s: decode: %w", method, path, err)
	}
	return nil
}
