package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/SeriesLens/internal/metrics"
	platformhttp "github.com/Alias1177/SeriesLens/internal/platform/http"
)

var (
	ErrNotConfigured = errors.New("assistant URL is not configured")
	ErrEmptyQuestion = errors.New("question is empty")
)

// ClientOptions configures the question-answering client
type ClientOptions struct {
	URL            string
	RequestTimeout time.Duration
	RequestsPerSec int
	MaxRetries     int
}

// Client forwards questions to an extractive question-answering service
type Client struct {
	url    string
	http   *platformhttp.Client
	logger zerolog.Logger
}

type askRequest struct {
	Question string `json:"question"`
	Context  string `json:"context"`
}

type askResponse struct {
	Answer string  `json:"answer"`
	Score  float64 `json:"score,omitempty"`
}

// NewClient creates a new assistant client
func NewClient(opts ClientOptions) *Client {
	if opts.MaxRetries == 0 {
		opts.MaxRetries = 3
	}
	return &Client{
		url: strings.TrimRight(opts.URL, "/"),
		http: platformhttp.NewClient(platformhttp.ClientOptions{
			Timeout:        opts.RequestTimeout,
			RequestsPerSec: opts.RequestsPerSec,
			MaxRetries:     opts.MaxRetries,
		}),
		logger: log.With().Str("component", "assistant_client").Logger(),
	}
}

// Ask answers a question from the given context. An empty context means nothing has been
// analyzed yet and is answered locally without a network call.
func (c *Client) Ask(ctx context.Context, question, passage string) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", ErrEmptyQuestion
	}
	if passage == "" {
		return NoDataAnswer, nil
	}
	if c.url == "" {
		return "", ErrNotConfigured
	}

	c.logger.Debug().Str("question", question).Int("context_len", len(passage)).Msg("Sending question to assistant")

	var resp askResponse
	if err := c.http.PostJSON(ctx, c.url, askRequest{Question: question, Context: passage}, &resp); err != nil {
		metrics.AssistantRequestsTotal.WithLabelValues("error").Inc()
		c.logger.Error().Err(err).Msg("Assistant request failed")
		return "", fmt.Errorf("asking assistant: %w", err)
	}
	metrics.AssistantRequestsTotal.WithLabelValues("ok").Inc()

	if resp.Answer == "" {
		c.logger.Warn().Msg("Assistant returned an empty answer")
	}
	return resp.Answer, nil
}
