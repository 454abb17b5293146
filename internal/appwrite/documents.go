package appwrite

import (
	"context"
	"fmt"
	"net/http"
)

// UserDocument is the profile record stored alongside each auth account.
type UserDocument struct {
	ID                 string `json:"$id"`
	Email              string `json:"email"`
	Name               string `json:"name"`
	SubscriptionTier   string `json:"subscription_tier"`
	SubscriptionStatus string `json:"subscription_status"`
	StorageUsed        int64  `json:"storage_used"`
	StorageLimit       int64  `json:"storage_limit"`
	EmailVerified      bool   `json:"email_verified"`
	CreatedAt          string `json:"created_at"`
}

// UserDocumentData is the writable portion of a profile record.
type UserDocumentData struct {
	Email              string `json:"email"`
	Name               string `json:"name"`
	SubscriptionTier   string `json:"subscription_tier"`
	SubscriptionStatus string `json:"subscription_status"`
	StorageUsed        int64  `json:"storage_used"`
	StorageLimit       int64  `json:"storage_limit"`
	EmailVerified      bool   `json:"email_verified"`
	CreatedAt          string `json:"created_at"`
}

func (c *Client) documentsPath() string {
	return fmt.Sprintf("/databases/%s/collections/%s/documents", c.databaseID, c.collectionID)
}

// GetUserDocument fetches a profile record by its document identifier.
func (c *Client) GetUserDocument(ctx context.Context, documentID string) (*UserDocument, error) {
	var doc UserDocument
	if err := c.do(ctx, http.MethodGet, c.documentsPath()+"/"+documentID, nil, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// CreateUserDocument creates a profile record under the given document
// identifier (the account's userId, so the two stay joined).
func (c *Client) CreateUserDocument(ctx context.Context, documentID string, data UserDocumentData) (*UserDocument, error) {
	body := map[string]any{
		"documentId": documentID,
		"data":       data,
	}

	var doc UserDocument
	if err := c.do(ctx, http.MethodPost, c.documentsPath(), body, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}
