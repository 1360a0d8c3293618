// Package explorer reads TRC20 transfers of a single TRON transaction from a
// public block explorer.
package explorer

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"strconv"
	"time"

	"github.com/GlebRadaev/novafunded/internal/config"
	"github.com/GlebRadaev/novafunded/pkg/clients"
	"go.uber.org/zap"
)

//go:generate mockgen -source=explorer.go -destination=mock_explorer.go -package=explorer

const (
	maxAttempts   = 2
	retryInterval = time.Millisecond * 500
	maxErrorBody  = 256
)

var (
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrMalformedResponse   = errors.New("malformed explorer response")
)

type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("explorer responded with status %d: %s", e.StatusCode, e.Body)
}

type Transfer struct {
	Contract string
	From     string
	To       string
	// Amount is in the token's smallest unit.
	Amount *big.Int
}

type Transaction struct {
	Hash      string
	Success   bool
	Transfers []Transfer
}

type Explorer interface {
	FetchTransfer(ctx context.Context, hash string) (*Transaction, error)
}

// New picks TronGrid when an API key is configured and TronScan otherwise.
func New(cfg *config.Config, client clients.HTTPClientI) Explorer {
	if cfg.UseTronGrid() {
		zap.L().Info("using TronGrid explorer", zap.String("url", cfg.TronGridURL))
		return NewTronGrid(cfg.TronGridURL, cfg.TronAPIKey, cfg.ExplorerTimeout, client)
	}
	zap.L().Info("using TronScan explorer", zap.String("url", cfg.TronScanURL))
	return NewTronScan(cfg.TronScanURL, cfg.ExplorerTimeout, client)
}

type fetcher struct {
	client  clients.HTTPClientI
	timeout time.Duration
}

// get runs the request under the fetcher timeout and retries once when the
// explorer rate limits us.
func (f *fetcher) get(ctx context.Context, url string, headers http.Header) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	for attempt := 1; ; attempt++ {
		statusCode, respBody, respHeaders, err := f.client.Get(ctx, url, headers)
		if err != nil {
			return nil, fmt.Errorf("explorer request failed: %w", err)
		}

		switch {
		case statusCode == http.StatusOK:
			return respBody, nil
		case statusCode == http.StatusNotFound:
			return nil, ErrTransactionNotFound
		case statusCode == http.StatusTooManyRequests && attempt < maxAttempts:
			wait := retryAfter(respHeaders, attempt)
			zap.L().Warn("explorer rate limit, retrying", zap.Int("attempt", attempt), zap.Duration("retryAfter", wait))
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("explorer request failed: %w", ctx.Err())
			case <-time.After(wait):
			}
		default:
			body := string(respBody)
			if len(body) > maxErrorBody {
				body = body[:maxErrorBody]
			}
			return nil, &APIError{StatusCode: statusCode, Body: body}
		}
	}
}

func retryAfter(headers http.Header, attempt int) time.Duration {
	wait := retryInterval * time.Duration(attempt)
	if headers == nil {
		return wait
	}
	if seconds, err := strconv.Atoi(headers.Get("Retry-After")); err == nil {
		wait = time.Duration(seconds) * time.Second
	}
	return wait
}
