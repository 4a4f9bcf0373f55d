package payments

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"veilon-dashboard-go/internal/config"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const baseURL = "https://api.stripe.com/v1"

// ErrCouponNotFound is returned when the provider has no coupon with the
// requested id.
var ErrCouponNotFound = errors.New("provider coupon not found")

// ClientInterface defines the interface for the payment-provider client.
type ClientInterface interface {
	GetCoupon(ctx context.Context, couponID string) (*ProviderCoupon, error)
}

// ProviderCoupon is the provider's view of a coupon. Valid goes false when
// the coupon is deleted or exhausted upstream.
type ProviderCoupon struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Valid      bool    `json:"valid"`
	PercentOff float64 `json:"percent_off"`
	AmountOff  int64   `json:"amount_off"`
	Currency   string  `json:"currency"`
}

// Client is a client for the payment provider's REST API.
// It implements the ClientInterface.
type Client struct {
	client  *resty.Client
	apiKey  string
	logger  *zap.Logger
	limiter *rate.Limiter
}

// ensure Client implements the interface
var _ ClientInterface = (*Client)(nil)

// NewClient creates a new payment-provider REST API client.
func NewClient(cfg *config.Payments, logger *zap.Logger) *Client {
	client := resty.New().SetBaseURL(baseURL)

	// rate.Limit is requests per second.
	limiter := rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateLimitBurst)

	return &Client{
		client:  client,
		apiKey:  cfg.APIKey,
		logger:  logger,
		limiter: limiter,
	}
}

// GetCoupon fetches a coupon from the provider by its id.
func (c *Client) GetCoupon(ctx context.Context, couponID string) (*ProviderCoupon, error) {
	req := c.client.R().
		SetContext(ctx).
		SetAuthToken(c.apiKey).
		SetResult(&ProviderCoupon{})

	resp, err := c.doRequest(ctx, http.MethodGet, "/coupons/"+couponID, req)
	if err != nil {
		c.logger.Error("Failed to get provider coupon", zap.String("coupon_id", couponID), zap.Error(err))
		return nil, fmt.Errorf("failed to get provider coupon: %w", err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil, ErrCouponNotFound
	}

	return resp.Result().(*ProviderCoupon), nil
}

// doRequest handles the actual request execution with rate limiting and retry logic.
// 404s are returned to the caller; 429s and server errors are retried with backoff.
func (c *Client) doRequest(ctx context.Context, method, url string, req *resty.Request) (*resty.Response, error) {
	var resp *resty.Response
	var err error
	const maxRetries = 3

	for i := 0; i < maxRetries; i++ {
		// Wait for the rate limiter
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter wait failed: %w", err)
		}

		c.logger.Debug("Executing request", zap.String("method", method), zap.String("url", c.client.BaseURL+url))
		resp, err = req.Execute(method, url)

		if err == nil && (!resp.IsError() || resp.StatusCode() == http.StatusNotFound) {
			return resp, nil
		}

		// Analyze error and decide whether to retry
		shouldRetry := false
		var retryAfter time.Duration

		if resp != nil {
			statusCode := resp.StatusCode()
			if statusCode == http.StatusTooManyRequests {
				shouldRetry = true
				retryAfterHeader := resp.Header().Get("Retry-After")
				if seconds, err := strconv.Atoi(retryAfterHeader); err == nil {
					retryAfter = time.Duration(seconds) * time.Second
				}
			} else if statusCode >= 500 { // Server errors
				shouldRetry = true
			}
		} else { // Network or other client-side errors
			shouldRetry = true
		}

		if !shouldRetry {
			return nil, fmt.Errorf("request failed with status %s: %s", resp.Status(), resp.String())
		}

		if retryAfter == 0 {
			// Exponential backoff: 1s, 2s, 4s
			retryAfter = time.Duration(math.Pow(2, float64(i))) * time.Second
		}

		c.logger.Warn("Request failed, retrying...",
			zap.Int("attempt", i+1),
			zap.Duration("retry_after", retryAfter),
			zap.Error(err),
		)

		select {
		case <-time.After(retryAfter):
			continue
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	return nil, fmt.Errorf("request failed after %d attempts: %w", maxRetries, err)
}
