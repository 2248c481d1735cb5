// Package telegram wraps the Bot API over HTTPS. Every call reports a
// four-way Status so callers can tell "chat is gone" (400) from "bot was
// thrown out" (403) from transient transport trouble, which is the
// distinction the reconciliation policy runs on.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Status classifies the outcome of one Bot API call.
type Status int

const (
	StatusOK Status = iota
	// StatusNotFound is HTTP 400: the chat or user does not exist for this bot.
	StatusNotFound
	// StatusForbidden is HTTP 403: the bot lost access.
	StatusForbidden
	// StatusTransportError covers network failures and unexpected HTTP codes.
	StatusTransportError
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusNotFound:
		return "not_found"
	case StatusForbidden:
		return "forbidden"
	case StatusTransportError:
		return "transport_error"
	}
	return "unknown"
}

const defaultTimeout = 30 * time.Second

// Client is a stateless wrapper around one bot token. It carries no
// retry logic: a failed call is simply retried by the next cycle.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient builds a client for one bot token. host is the API origin,
// normally https://api.telegram.org; tests point it at a local server.
func NewClient(host, token string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		baseURL: fmt.Sprintf("%s/bot%s", strings.TrimRight(host, "/"), token),
	}
}

type apiResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

// post executes one API call and classifies the HTTP outcome. The response
// body is returned for 200 and 400 so callers can decode the payload or the
// error description.
func (c *Client) post(ctx context.Context, httpClient *http.Client, method string, body map[string]any) (Status, []byte, error) {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return StatusTransportError, nil, fmt.Errorf("failed to marshal %s request: %w", method, err)
	}

	url := fmt.Sprintf("%s/%s", c.baseURL, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return StatusTransportError, nil, fmt.Errorf("failed to create %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return StatusTransportError, nil, fmt.Errorf("%s request failed: %w", method, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return StatusTransportError, nil, fmt.Errorf("failed to read %s response: %w", method, err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return StatusOK, data, nil
	case http.StatusBadRequest:
		return StatusNotFound, data, fmt.Errorf("%s: %s", method, description(data))
	case http.StatusForbidden:
		return StatusForbidden, data, fmt.Errorf("%s: %s", method, description(data))
	default:
		return StatusTransportError, nil, fmt.Errorf("%s: unexpected HTTP status %d", method, resp.StatusCode)
	}
}

func description(data []byte) string {
	var r apiResponse
	if err := json.Unmarshal(data, &r); err != nil || r.Description == "" {
		return "no description"
	}
	return r.Description
}

// GetMe returns the bot's own user record.
func (c *Client) GetMe(ctx context.Context) (*User, Status, error) {
	status, data, err := c.post(ctx, c.httpClient, "getMe", map[string]any{})
	if status != StatusOK {
		return nil, status, err
	}

	var result struct {
		apiResponse
		Result User `json:"result"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, StatusTransportError, fmt.Errorf("failed to decode getMe response: %w", err)
	}
	return &result.Result, StatusOK, nil
}

// GetChat fetches chat metadata. 400 means the chat is gone for this bot.
func (c *Client) GetChat(ctx context.Context, chatID int64) (*Chat, Status, error) {
	body := map[string]any{
		"chat_id": chatID,
	}
	status, data, err := c.post(ctx, c.httpClient, "getChat", body)
	if status != StatusOK {
		return nil, status, err
	}

	var result struct {
		apiResponse
		Result Chat `json:"result"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, StatusTransportError, fmt.Errorf("failed to decode getChat response: %w", err)
	}
	return &result.Result, StatusOK, nil
}

// GetChatAdministrators lists the chat admins, the bot included when it is one.
func (c *Client) GetChatAdministrators(ctx context.Context, chatID int64) ([]ChatMember, Status, error) {
	body := map[string]any{
		"chat_id": chatID,
	}
	status, data, err := c.post(ctx, c.httpClient, "getChatAdministrators", body)
	if status != StatusOK {
		return nil, status, err
	}

	var result struct {
		apiResponse
		Result []ChatMember `json:"result"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, StatusTransportError, fmt.Errorf("failed to decode getChatAdministrators response: %w", err)
	}
	return result.Result, StatusOK, nil
}

// GetChatMembersCount returns the total member count, the bot included.
func (c *Client) GetChatMembersCount(ctx context.Context, chatID int64) (int, Status, error) {
	body := map[string]any{
		"chat_id": chatID,
	}
	status, data, err := c.post(ctx, c.httpClient, "getChatMembersCount", body)
	if status != StatusOK {
		return 0, status, err
	}

	var result struct {
		apiResponse
		Result int `json:"result"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return 0, StatusTransportError, fmt.Errorf("failed to decode getChatMembersCount response: %w", err)
	}
	return result.Result, StatusOK, nil
}

// GetChatMember looks up one member. The returned record carries the user's
// current username, which may be fresher than the stored one. 400 means the
// user is unknown to the chat.
func (c *Client) GetChatMember(ctx context.Context, chatID, userID int64) (*ChatMember, Status, error) {
	body := map[string]any{
		"chat_id": chatID,
		"user_id": userID,
	}
	status, data, err := c.post(ctx, c.httpClient, "getChatMember", body)
	if status != StatusOK {
		return nil, status, err
	}

	var result struct {
		apiResponse
		Result ChatMember `json:"result"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, StatusTransportError, fmt.Errorf("failed to decode getChatMember response: %w", err)
	}
	return &result.Result, StatusOK, nil
}

// GetUpdates polls the update stream. offset 0 means "no offset": the server
// returns the unacknowledged backlog, which the cursor uses for bootstrap
// only. timeout > 0 switches to long polling with an extended HTTP timeout.
func (c *Client) GetUpdates(ctx context.Context, offset int64, timeout int) ([]Update, Status, error) {
	body := map[string]any{
		"timeout": timeout,
	}
	if offset > 0 {
		body["offset"] = offset
	}

	httpClient := c.httpClient
	if timeout > 0 {
		httpClient = &http.Client{
			Timeout: time.Duration(timeout)*time.Second + defaultTimeout,
		}
	}

	status, data, err := c.post(ctx, httpClient, "getUpdates", body)
	if status != StatusOK {
		return nil, status, err
	}

	var result struct {
		apiResponse
		Result []Update `json:"result"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, StatusTransportError, fmt.Errorf("failed to decode getUpdates response: %w", err)
	}
	return result.Result, StatusOK, nil
}

// SendMessage sends a plain text message.
func (c *Client) SendMessage(ctx context.Context, chatID int64, text string) (Status, error) {
	body := map[string]any{
		"chat_id": chatID,
		"text":    text,
	}
	status, _, err := c.post(ctx, c.httpClient, "sendMessage", body)
	return status, err
}

// KickChatMember removes a member from a chat. A 400 whose description says
// the user is already gone counts as success: the goal state holds.
func (c *Client) KickChatMember(ctx context.Context, chatID, userID int64) (Status, error) {
	body := map[string]any{
		"chat_id": chatID,
		"user_id": userID,
	}
	status, data, err := c.post(ctx, c.httpClient, "kickChatMember", body)
	if status == StatusNotFound && alreadyAbsent(description(data)) {
		return StatusOK, nil
	}
	return status, err
}

func alreadyAbsent(description string) bool {
	d := strings.ToLower(description)
	return strings.Contains(d, "not found") || strings.Contains(d, "user_not_participant")
}
