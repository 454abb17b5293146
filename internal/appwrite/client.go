package appwrite

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Upstream error type identifiers this gateway distinguishes.
const (
	TypeUserAlreadyExists      = "user_already_exists"
	TypeUserInvalidCredentials = "user_invalid_credentials"
	TypeUserNotFound           = "user_not_found"
	TypeDocumentNotFound       = "document_not_found"
)

// Error is the structured failure body returned by the Appwrite API.
type Error struct {
	Code    int    `json:"code"`
	Type    string `json:"type"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("appwrite: %s (%s)", e.Message, e.Type)
}

// IsType reports whether err is an Appwrite error of the given type.
func IsType(err error, errType string) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Type == errType
}

// Client is a thin REST client for the Appwrite server API. It is configured
// once at startup and safe for concurrent use.
type Client struct {
	endpoint     string
	projectID    string
	apiKey       string
	databaseID   string
	collectionID string
	http         *http.Client
}

// NewClient creates a Client for the given project, scoped to one database and
// one users collection.
func NewClient(endpoint, projectID, apiKey, databaseID, collectionID string) *Client {
	return &Client{
		endpoint:     endpoint,
		projectID:    projectID,
		apiKey:       apiKey,
		databaseID:   databaseID,
		collectionID: collectionID,
		http:         &http.Client{Timeout: 15 * time.Second},
	}
}

// do performs one API call, decoding a success body into out (when non-nil)
// and a failure body into *Error.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint+path, reqBody)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Appwrite-Project", c.projectID)
	req.Header.Set("X-Appwrite-Key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("calling appwrite: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		apiErr := &Error{Code: resp.StatusCode, Type: "general_unknown"}
		if err := json.NewDecoder(resp.Body).Decode(apiErr); err != nil {
			apiErr.Message = resp.Status
		}
		return apiErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding response body: %w", err)
		}
	}

	return nil
}
