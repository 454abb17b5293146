package appwrite

import (
	"context"
	"net/http"
)

// Account is an Appwrite auth account.
type Account struct {
	ID        string `json:"$id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	CreatedAt string `json:"$createdAt"`
}

// Session is an Appwrite email/password session. Only the user identifier is
// read back; session lifecycle stays inside Appwrite.
type Session struct {
	ID     string `json:"$id"`
	UserID string `json:"userId"`
}

// CreateAccount registers a new auth account under the given identifier.
func (c *Client) CreateAccount(ctx context.Context, userID, email, password, name string) (*Account, error) {
	body := map[string]string{
		"userId":   userID,
		"email":    email,
		"password": password,
		"name":     name,
	}

	var account Account
	if err := c.do(ctx, http.MethodPost, "/users", body, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// CreateEmailSession authenticates the credentials against Appwrite. The
// userId in the returned session is authoritative for all follow-up lookups.
func (c *Client) CreateEmailSession(ctx context.Context, email, password string) (*Session, error) {
	body := map[string]string{
		"email":    email,
		"password": password,
	}

	var session Session
	if err := c.do(ctx, http.MethodPost, "/account/sessions/email", body, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// CreateVerification asks Appwrite to send a verification email pointing at
// the given frontend URL.
func (c *Client) CreateVerification(ctx context.Context, url string) error {
	return c.do(ctx, http.MethodPost, "/account/verification", map[string]string{"url": url}, nil)
}
