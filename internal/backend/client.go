package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Randidu/event-management-system/internal/metrics"
	"github.com/Randidu/event-management-system/internal/models"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Client calls the FastAPI backend of the event-management system.
type Client struct {
	baseURL     string
	eventsLimit int
	httpClient  *http.Client
	logger      zerolog.Logger

	redis    *redis.Client
	cacheTTL time.Duration
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

func WithEventsLimit(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.eventsLimit = n
		}
	}
}

func NewClient(baseURL string, timeout time.Duration, opts ...Option) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	c := &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		eventsLimit: models.DefaultEventsLimit,
		httpClient:  &http.Client{Timeout: timeout},
		logger:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// UseRedisCache enables caching of the public event list.
func (c *Client) UseRedisCache(redisClient *redis.Client, ttl time.Duration) {
	c.redis = redisClient
	c.cacheTTL = ttl
}

// Origin is the base URL relative asset paths are resolved against.
func (c *Client) Origin() string { return c.baseURL }

func (c *Client) HTTPClient() *http.Client { return c.httpClient }

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login exchanges credentials for a bearer token via the OAuth2 password form.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var resp tokenResponse
	if err := c.do(req, "token", &resp); err != nil {
		return "", err
	}
	if resp.AccessToken == "" {
		return "", fmt.Errorf("login: no access_token in response")
	}
	return resp.AccessToken, nil
}

func (c *Client) CurrentUser(ctx context.Context, token string) (*models.User, error) {
	var user models.User
	if err := c.doGet(ctx, token, "/users/me", "users_me", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ListAllBookings returns every booking in backend order.
func (c *Client) ListAllBookings(ctx context.Context, token string) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := c.doGet(ctx, token, "/bookings/all", "bookings_all", &bookings); err != nil {
		return nil, err
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}
	return bookings, nil
}

// ListEvents returns the options of the event filter. The endpoint is public.
func (c *Client) ListEvents(ctx context.Context) ([]models.EventOption, error) {
	cacheKey := fmt.Sprintf("ems:events:%d", c.eventsLimit)
	var options []models.EventOption
	if c.readCache(ctx, cacheKey, &options) {
		return options, nil
	}

	var events []models.Event
	path := "/events/?limit=" + strconv.Itoa(c.eventsLimit)
	if err := c.get(ctx, "", path, "events", &events); err != nil {
		return nil, err
	}

	options = make([]models.EventOption, 0, len(events))
	for _, e := range events {
		options = append(options, e.Option())
	}
	c.writeCache(ctx, cacheKey, options)
	return options, nil
}

// InvalidateEvents drops the cached event list.
func (c *Client) InvalidateEvents(ctx context.Context) {
	if c.redis == nil {
		return
	}
	_ = c.redis.Del(ctx, fmt.Sprintf("ems:events:%d", c.eventsLimit)).Err()
}

func (c *Client) DeleteBooking(ctx context.Context, token string, id int64) error {
	if token == "" {
		return ErrAuthMissing
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, fmt.Sprintf("%s/bookings/%d", c.baseURL, id), nil)
	if err != nil {
		return err
	}
	c.authorize(req, token)
	return c.do(req, "bookings_delete", nil)
}

func (c *Client) DashboardStats(ctx context.Context, token string, days int) (*models.DashboardStats, error) {
	var stats models.DashboardStats
	path := "/admin/dashboard-stats?days=" + strconv.Itoa(days)
	if err := c.doGet(ctx, token, path, "dashboard_stats", &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

type chatRequest struct {
	Message string `json:"message"`
	Lang    string `json:"lang"`
}

// Chat sends one message to the assistant and returns its reply.
func (c *Client) Chat(ctx context.Context, message, lang string) (string, error) {
	data, err := json.Marshal(chatRequest{Message: message, Lang: lang})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/ai/chat", bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	var resp struct {
		Response *string `json:"response"`
	}
	if err := c.do(req, "ai_chat", &resp); err != nil {
		return "", err
	}
	if resp.Response == nil || *resp.Response == "" {
		return "", ErrEmptyReply
	}
	return *resp.Response, nil
}

func (c *Client) readCache(ctx context.Context, key string, out any) bool {
	if c.redis == nil || c.cacheTTL <= 0 {
		return false
	}
	val, err := c.redis.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(val, out) == nil
}

func (c *Client) writeCache(ctx context.Context, key string, val any) {
	if c.redis == nil || c.cacheTTL <= 0 {
		return
	}
	data, err := json.Marshal(val)
	if err != nil {
		return
	}
	if err := c.redis.Set(ctx, key, data, c.cacheTTL).Err(); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("backend cache write failed")
	}
}

// doGet issues an authorized GET and fails without a request when token is empty.
func (c *Client) doGet(ctx context.Context, token, path, endpoint string, out any) error {
	if token == "" {
		return ErrAuthMissing
	}
	return c.get(ctx, token, path, endpoint, out)
}

func (c *Client) get(ctx context.Context, token, path, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	c.authorize(req, token)
	return c.do(req, endpoint, out)
}

func (c *Client) authorize(req *http.Request, token string) {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Accept", "application/json")
}

func (c *Client) do(req *http.Request, endpoint string, out any) error {
	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.ObserveBackend(endpoint, "error", time.Since(started))
		c.logger.Error().Err(err).Str("endpoint", endpoint).Msg("backend request failed")
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()
	metrics.ObserveBackend(endpoint, strconv.Itoa(resp.StatusCode), time.Since(started))

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		apiErr := &APIError{
			Method:     req.Method,
			Path:       req.URL.Path,
			Status:     resp.StatusCode,
			StatusText: http.StatusText(resp.StatusCode),
			Detail:     parseDetail(body),
		}
		c.logger.Warn().
			Str("endpoint", endpoint).
			Int("status", resp.StatusCode).
			Str("detail", apiErr.Detail).
			Msg("backend returned error")
		return apiErr
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", endpoint, err)
	}
	return nil
}
