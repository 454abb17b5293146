package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/cloudkeep/cloudkeep-auth/internal/appwrite"
	"github.com/cloudkeep/cloudkeep-auth/internal/model"
	"github.com/cloudkeep/cloudkeep-auth/internal/token"
)

var (
	ErrDuplicateUser      = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrLoginFailed        = errors.New("login failed")
	ErrUserNotFound       = errors.New("user not found")
	ErrUnauthorized       = errors.New("invalid token")
	ErrExternalService    = errors.New("account service error")
)

const (
	tierFree     = "free"
	statusActive = "active"

	// Storage quota in MB granted to every new free-tier account.
	defaultStorageLimit = 500
)

// Backend is the slice of the Appwrite API the orchestrator depends on.
type Backend interface {
	CreateAccount(ctx context.Context, userID, email, password, name string) (*appwrite.Account, error)
	CreateEmailSession(ctx context.Context, email, password string) (*appwrite.Session, error)
	GetUserDocument(ctx context.Context, documentID string) (*appwrite.UserDocument, error)
	CreateUserDocument(ctx context.Context, documentID string, data appwrite.UserDocumentData) (*appwrite.UserDocument, error)
	CreateVerification(ctx context.Context, url string) error
}

// AuthService sequences Appwrite calls and token issuance for the auth flows.
type AuthService struct {
	backend     Backend
	codec       *token.Codec
	frontendURL string
}

// NewAuthService creates a new AuthService.
func NewAuthService(backend Backend, codec *token.Codec, frontendURL string) *AuthService {
	return &AuthService{
		backend:     backend,
		codec:       codec,
		frontendURL: frontendURL,
	}
}

// Register creates the auth account and its profile document, then issues a
// token pair. The verification email is best-effort: a failure there is
// logged and never fails the registration.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (model.TokenResponse, error) {
	userID := uuid.NewString()

	account, err := s.backend.CreateAccount(ctx, userID, req.Email, req.Password, req.Name)
	if err != nil {
		if appwrite.IsType(err, appwrite.TypeUserAlreadyExists) {
			return model.TokenResponse{}, ErrDuplicateUser
		}
		return model.TokenResponse{}, fmt.Errorf("%w: %v", ErrExternalService, err)
	}

	// If this fails the account above is left orphaned upstream; there is
	// no rollback.
	doc, err := s.backend.CreateUserDocument(ctx, account.ID, appwrite.UserDocumentData{
		Email:              req.Email,
		Name:               req.Name,
		SubscriptionTier:   tierFree,
		SubscriptionStatus: statusActive,
		StorageUsed:        0,
		StorageLimit:       defaultStorageLimit,
		EmailVerified:      false,
		CreatedAt:          account.CreatedAt,
	})
	if err != nil {
		return model.TokenResponse{}, fmt.Errorf("%w: %v", ErrExternalService, err)
	}

	access, refresh, expiresIn, err := s.codec.IssuePair(account.ID, req.Email)
	if err != nil {
		return model.TokenResponse{}, err
	}

	if err := s.backend.CreateVerification(ctx, s.frontendURL+"/verify-email"); err != nil {
		slog.Warn("verification email not sent", "user_id", account.ID, "error", err)
	}

	return model.TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    expiresIn,
		User:         userResponse(account.ID, doc),
	}, nil
}

// Login authenticates credentials through an Appwrite session, reads back the
// profile document for the session's userId and issues a token pair. Unknown
// user and wrong password collapse into the same error on purpose.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (model.TokenResponse, error) {
	session, err := s.backend.CreateEmailSession(ctx, req.Email, req.Password)
	if err != nil {
		if appwrite.IsType(err, appwrite.TypeUserInvalidCredentials) || appwrite.IsType(err, appwrite.TypeUserNotFound) {
			return model.TokenResponse{}, ErrInvalidCredentials
		}
		return model.TokenResponse{}, ErrLoginFailed
	}

	doc, err := s.backend.GetUserDocument(ctx, session.UserID)
	if err != nil {
		return model.TokenResponse{}, ErrLoginFailed
	}

	access, refresh, expiresIn, err := s.codec.IssuePair(session.UserID, req.Email)
	if err != nil {
		return model.TokenResponse{}, err
	}

	return model.TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    expiresIn,
		User:         userResponse(session.UserID, doc),
	}, nil
}

// GetCurrentUser fetches the profile document for the given user identifier.
func (s *AuthService) GetCurrentUser(ctx context.Context, userID string) (model.UserResponse, error) {
	doc, err := s.backend.GetUserDocument(ctx, userID)
	if err != nil {
		var ae *appwrite.Error
		if errors.As(err, &ae) {
			return model.UserResponse{}, ErrUserNotFound
		}
		return model.UserResponse{}, err
	}

	return userResponse(userID, doc), nil
}

// Refresh trades a valid refresh token for a brand-new access+refresh pair.
// The old refresh token is not invalidated and stays usable until its own
// expiry; rotation without revocation is a documented trade-off of the
// stateless design.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (model.TokenResponse, error) {
	claims, err := s.codec.Verify(refreshToken)
	if err != nil {
		return model.TokenResponse{}, err
	}

	if err := claims.RequireKind(token.KindRefresh); err != nil {
		return model.TokenResponse{}, err
	}

	if claims.Subject == "" {
		return model.TokenResponse{}, ErrUnauthorized
	}

	user, err := s.GetCurrentUser(ctx, claims.Subject)
	if err != nil {
		return model.TokenResponse{}, err
	}

	access, refresh, expiresIn, err := s.codec.IssuePair(claims.Subject, claims.Email)
	if err != nil {
		return model.TokenResponse{}, err
	}

	return model.TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    expiresIn,
		User:         user,
	}, nil
}

// Logout performs no server-side invalidation: tokens are stateless and there
// is no blacklist. Clients discard their tokens locally.
func (s *AuthService) Logout(ctx context.Context) error {
	return nil
}

func userResponse(userID string, doc *appwrite.UserDocument) model.UserResponse {
	return model.UserResponse{
		ID:               userID,
		Email:            doc.Email,
		Name:             doc.Name,
		SubscriptionTier: doc.SubscriptionTier,
		CreatedAt:        doc.CreatedAt,
		EmailVerified:    doc.EmailVerified,
	}
}
