// Package dashboard provides an HTTP client for the maintdesk API. It
// satisfies the dashboard service interfaces, so the controllers can run
// against a remote maintdesk instance the same way they run in-process.
package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"maintdesk/internal/application/ticket/dto"
	"maintdesk/internal/domain/reference"
	"maintdesk/internal/domain/ticket"
	vo "maintdesk/internal/domain/ticket/valueobjects"
	apperrors "maintdesk/internal/shared/errors"
)

// Client is the maintdesk API client. It carries the acting role and user on
// every request; the server scopes and authorizes with them.
type Client struct {
	baseURL    string
	role       vo.Role
	userID     uint
	httpClient *http.Client
}

// Option is a function that configures the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) {
		client.httpClient = c
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(client *Client) {
		client.httpClient.Timeout = d
	}
}

// NewClient creates a new maintdesk API client.
//
// Parameters:
//   - baseURL: the API base URL (e.g., "http://localhost:8080")
//   - role: the acting role sent as X-Role
//   - userID: the acting user sent as X-User-ID
func NewClient(baseURL string, role vo.Role, userID uint, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		role:    role,
		userID:  userID,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListTickets fetches one page of tickets. The query encodes to the exact URL
// parameters the server parses, so the descriptor round-trips unchanged.
func (c *Client) ListTickets(ctx context.Context, query ticket.ListQuery) (*dto.TicketPage, error) {
	url := fmt.Sprintf("%s/api/tickets?%s", c.baseURL, query.Encode())

	var page dto.TicketPage
	if err := c.doRequest(ctx, http.MethodGet, url, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetTicket fetches a single ticket with its comments.
func (c *Client) GetTicket(ctx context.Context, id uint) (*dto.TicketDTO, error) {
	url := fmt.Sprintf("%s/api/tickets/%d", c.baseURL, id)

	var t dto.TicketDTO
	if err := c.doRequest(ctx, http.MethodGet, url, nil, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// CreateTicket creates a ticket raised by the acting user.
func (c *Client) CreateTicket(ctx context.Context, title, description, priority string, section, facility uint) (*dto.TicketDTO, error) {
	url := fmt.Sprintf("%s/api/tickets", c.baseURL)

	body := map[string]any{
		"title":       title,
		"description": description,
		"priority":    priority,
		"section":     section,
		"facility":    facility,
	}

	var t dto.TicketDTO
	if err := c.doRequest(ctx, http.MethodPost, url, body, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// UpdateTicket applies a partial update to a ticket.
func (c *Client) UpdateTicket(ctx context.Context, id uint, patch ticket.Patch) (*dto.TicketDTO, error) {
	url := fmt.Sprintf("%s/api/tickets/%d", c.baseURL, id)

	var t dto.TicketDTO
	if err := c.doRequest(ctx, http.MethodPatch, url, patch, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// AddComment appends a comment authored by the acting user.
func (c *Client) AddComment(ctx context.Context, ticketID uint, text string) (*dto.CommentDTO, error) {
	url := fmt.Sprintf("%s/api/tickets/%d/comments", c.baseURL, ticketID)

	body := map[string]any{"text": text}

	var comment dto.CommentDTO
	if err := c.doRequest(ctx, http.MethodPost, url, body, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// GetStats fetches the per-status and overdue counts.
func (c *Client) GetStats(ctx context.Context) (*dto.StatusCounts, error) {
	url := fmt.Sprintf("%s/api/tickets/stats", c.baseURL)

	var counts dto.StatusCounts
	if err := c.doRequest(ctx, http.MethodGet, url, nil, &counts); err != nil {
		return nil, err
	}
	return &counts, nil
}

// ListSections fetches the section lookup list.
func (c *Client) ListSections(ctx context.Context) ([]reference.Section, error) {
	var sections []reference.Section
	if err := c.doRequest(ctx, http.MethodGet, c.baseURL+"/api/sections", nil, &sections); err != nil {
		return nil, err
	}
	return sections, nil
}

// ListFacilities fetches the facility lookup list.
func (c *Client) ListFacilities(ctx context.Context) ([]reference.Facility, error) {
	var facilities []reference.Facility
	if err := c.doRequest(ctx, http.MethodGet, c.baseURL+"/api/facilities", nil, &facilities); err != nil {
		return nil, err
	}
	return facilities, nil
}

// ListTechnicians fetches the technician lookup list.
func (c *Client) ListTechnicians(ctx context.Context) ([]reference.Technician, error) {
	var technicians []reference.Technician
	if err := c.doRequest(ctx, http.MethodGet, c.baseURL+"/api/technicians", nil, &technicians); err != nil {
		return nil, err
	}
	return technicians, nil
}

// ListUsers fetches the user lookup list.
func (c *Client) ListUsers(ctx context.Context) ([]reference.User, error) {
	var users []reference.User
	if err := c.doRequest(ctx, http.MethodGet, c.baseURL+"/api/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// doRequest performs an HTTP request and decodes the response envelope.
// Transport failures come back as network errors; API errors are rebuilt into
// the same typed errors the server produced, so callers can branch on the
// error kind on either side of the wire.
func (c *Client) doRequest(ctx context.Context, method, url string, body any, result any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("X-Role", c.role.String())
	req.Header.Set("X-User-ID", strconv.FormatUint(uint64(c.userID), 10))
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperrors.NewNetworkError("request failed", err.Error())
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperrors.NewNetworkError("failed to read response", err.Error())
	}

	var apiResp apiResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return apperrors.NewNetworkError(
				fmt.Sprintf("api error: status=%d", resp.StatusCode), string(respBody))
		}
		return fmt.Errorf("unmarshal response: %w", err)
	}

	if !apiResp.Success {
		return decodeAPIError(resp.StatusCode, apiResp.Error)
	}

	if result == nil || apiResp.Data == nil {
		return nil
	}

	if err := json.Unmarshal(apiResp.Data, result); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}

	return nil
}

type apiResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *apiError       `json:"error"`
	Message string          `json:"message"`
}

type apiError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func decodeAPIError(statusCode int, e *apiError) error {
	if e == nil {
		return apperrors.NewNetworkError(fmt.Sprintf("api error: status=%d", statusCode))
	}
	return &apperrors.AppError{
		Type:    apperrors.ErrorType(e.Type),
		Message: e.Message,
		Code:    statusCode,
		Details: e.Details,
	}
}
