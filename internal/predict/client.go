package predict

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/abhisek/kidscreen/internal/questionnaire"
)

// DefaultEndpoint is the hosted prediction service.
const DefaultEndpoint = "https://flask-xi19.onrender.com/predict"

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 1 << 20

// Predictor turns a complete answer set into a prediction label.
type Predictor interface {
	Predict(ctx context.Context, answers questionnaire.AnswerSet) (string, error)
}

// Client posts answer sets to the prediction endpoint. It makes exactly one
// attempt per call.
type Client struct {
	endpoint string
	client   *http.Client
	timeout  time.Duration
	logger   zerolog.Logger
}

var _ Predictor = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client. A timeout set with WithTimeout
// is applied to a copy of hc, whatever the option order.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.client = hc
		}
	}
}

// WithTimeout bounds each request. Zero leaves requests unbounded.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithLogger sets the logger for request outcomes.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a Client for endpoint. An empty endpoint selects
// DefaultEndpoint.
func NewClient(endpoint string, opts ...Option) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	c := &Client{
		endpoint: endpoint,
		client:   &http.Client{},
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		hc := *c.client
		hc.Timeout = c.timeout
		c.client = &hc
	}
	return c
}

// Endpoint returns the URL requests are sent to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

func (c *Client) Predict(ctx context.Context, answers questionnaire.AnswerSet) (string, error) {
	body, err := json.Marshal(answers)
	if err != nil {
		return "", fmt.Errorf("marshal answers: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn().Err(err).Str("endpoint", c.endpoint).Msg("prediction request failed")
		return "", &ErrUnavailable{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", &ErrUnavailable{Err: fmt.Errorf("read body: %w", err)}
	}

	log := c.logger.With().
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Logger()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Warn().Msg("prediction service returned error status")
		return "", &ErrStatus{StatusCode: resp.StatusCode}
	}

	label, err := decodeResponse(raw)
	if err != nil {
		log.Warn().Err(err).Msg("prediction response rejected")
		return "", err
	}

	log.Debug().Str("prediction", label).Msg("prediction received")
	return label, nil
}
