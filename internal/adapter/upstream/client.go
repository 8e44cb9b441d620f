// Package upstream fetches user records from the users endpoint the page renders.
package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	domain "users-page-service/internal/domain/user"
	pkgerrors "users-page-service/pkg/errors"
	"users-page-service/pkg/logger"
)

// Config holds the users endpoint settings.
type Config struct {
	// URL of the endpoint returning a JSON array of user records.
	URL string

	// Timeout bounds the whole fetch. Zero means no client timeout; the
	// caller's context still applies.
	Timeout time.Duration
}

// userPayload is the wire format of one record.
type userPayload struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	UpdatedAt string `json:"updatedAt"`
}

// Client performs the single GET against the users endpoint.
type Client struct {
	httpClient *http.Client
	url        string
	log        *zap.Logger
}

// NewClient creates a new users endpoint client.
func NewClient(cfg Config, log *zap.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		url:        cfg.URL,
		log:        log,
	}
}

// FetchUsers issues one GET and decodes the body. No retries are made.
//
// A non-2xx answer yields *errors.UpstreamStatusError carrying the received
// code; transport and decoding failures yield *errors.InternalError.
func (c *Client) FetchUsers(ctx context.Context) ([]domain.User, error) {
	log := logger.WithContext(ctx, c.log).With(zap.String("url", c.url))
	start := time.Now()
	defer func() {
		fetchDuration.Observe(time.Since(start).Seconds())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		fetchTotal.WithLabelValues(strconv.Itoa(http.StatusInternalServerError)).Inc()
		return nil, pkgerrors.NewInternalError("failed to build users request", err)
	}
	req.Header.Set("Accept", "application/json")
	if requestID := logger.GetRequestID(ctx); requestID != "" {
		req.Header.Set(logger.RequestIDHeader, requestID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("users fetch failed", zap.Error(err))
		fetchTotal.WithLabelValues(strconv.Itoa(http.StatusInternalServerError)).Inc()
		return nil, pkgerrors.NewInternalError("failed to fetch users", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		log.Warn("users endpoint returned non-success status", zap.Int("status", resp.StatusCode))
		fetchTotal.WithLabelValues(strconv.Itoa(resp.StatusCode)).Inc()
		return nil, pkgerrors.NewUpstreamStatusError(resp.StatusCode, c.url)
	}

	var payload []userPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		log.Error("failed to decode users response", zap.Error(err))
		fetchTotal.WithLabelValues(strconv.Itoa(http.StatusInternalServerError)).Inc()
		return nil, pkgerrors.NewInternalError("failed to decode users", fmt.Errorf("decode %s: %w", c.url, err))
	}

	users := make([]domain.User, len(payload))
	for i, p := range payload {
		users[i] = domain.User{
			ID:        p.ID,
			FirstName: p.FirstName,
			LastName:  p.LastName,
			Email:     p.Email,
			Phone:     p.Phone,
			UpdatedAt: p.UpdatedAt,
		}
	}

	fetchTotal.WithLabelValues(strconv.Itoa(http.StatusOK)).Inc()
	fetchedRecords.Set(float64(len(users)))
	log.Debug("users fetched", zap.Int("count", len(users)), zap.Duration("elapsed", time.Since(start)))

	return users, nil
}
