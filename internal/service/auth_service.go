package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/alimovshaxzod89/SMS/internal/models"
	"github.com/alimovshaxzod89/SMS/internal/query"
	appErrors "github.com/alimovshaxzod89/SMS/pkg/errors"
)

// TokenBlacklist records invalidated access tokens.
type TokenBlacklist interface {
	Revoke(ctx context.Context, jti string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
	RevokeAll(ctx context.Context, role models.UserRole, userID string, at time.Time, ttl time.Duration) error
	RevokedBefore(ctx context.Context, role models.UserRole, userID string) (time.Time, bool, error)
}

// AuthConfig defines configuration for authentication flows.
type AuthConfig struct {
	Secret            string
	Expiry            time.Duration
	Issuer            string
	AdminUsername     string
	AdminPasswordHash string
}

// AuthService provides authentication use cases.
type AuthService struct {
	store     query.Reader
	writer    query.Writer
	blacklist TokenBlacklist
	validator *validator.Validate
	logger    *zap.Logger
	config    AuthConfig
	now       func() time.Time
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(store query.Store, blacklist TokenBlacklist, validate *validator.Validate, logger *zap.Logger, config AuthConfig) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = NewValidator()
	}
	if config.Expiry <= 0 {
		config.Expiry = 24 * time.Hour
	}
	return &AuthService{
		store:     store,
		writer:    store,
		blacklist: blacklist,
		validator: validate,
		logger:    logger,
		config:    config,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Login authenticates an account of the requested role and issues a token.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "login")
	}
	username := strings.ToLower(strings.TrimSpace(req.Username))

	if req.Role == models.RoleAdmin {
		if s.config.AdminPasswordHash == "" || username != strings.ToLower(s.config.AdminUsername) {
			return nil, appErrors.ErrInvalidCredentials
		}
		if err := bcrypt.CompareHashAndPassword([]byte(s.config.AdminPasswordHash), []byte(req.Password)); err != nil {
			return nil, appErrors.ErrInvalidCredentials
		}
		token, err := s.issue(models.AdminUserID, models.RoleAdmin, s.config.AdminUsername)
		if err != nil {
			return nil, err
		}
		return &models.LoginResponse{Success: true, Token: token, User: adminProfile(s.config.AdminUsername)}, nil
	}

	account, err := query.FindOne(ctx, s.store, req.Role.Collection(), query.Eq{Field: "username", Value: username}, query.Projection{})
	if err != nil {
		if query.IsNotFound(err) {
			return nil, appErrors.ErrInvalidCredentials
		}
		s.logger.Error("login lookup failed", zap.String("role", string(req.Role)), zap.Error(err))
		return nil, query.Translate(err, "")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.String(query.FieldPassword)), []byte(req.Password)); err != nil {
		return nil, appErrors.ErrInvalidCredentials
	}
	if active, ok := account["isActive"].(bool); ok && !active {
		return nil, appErrors.Clone(appErrors.ErrInactiveAccount, "Account is inactive")
	}

	token, err := s.issue(account.ID(), req.Role, account.String("username"))
	if err != nil {
		return nil, err
	}
	delete(account, query.FieldPassword)
	account["role"] = req.Role
	return &models.LoginResponse{Success: true, Token: token, User: account}, nil
}

// Me returns the profile of the authenticated account without its password.
func (s *AuthService) Me(ctx context.Context, claims *models.JWTClaims) (query.Document, error) {
	if claims.Role == models.RoleAdmin {
		return adminProfile(claims.Username), nil
	}
	doc, err := query.FindByID(ctx, s.store, claims.Role.Collection(), claims.UserID, query.Projection{Exclude: []string{query.FieldPassword}})
	if err != nil {
		return nil, query.Translate(err, "User not found")
	}
	doc["role"] = claims.Role
	return doc, nil
}

// UpdatePassword replaces the caller's password after checking the current
// one. The presented token is revoked and a fresh one returned.
func (s *AuthService) UpdatePassword(ctx context.Context, claims *models.JWTClaims, req models.UpdatePasswordRequest) (string, error) {
	if err := s.validator.Struct(req); err != nil {
		return "", validationError(err, "password")
	}
	if claims.Role == models.RoleAdmin {
		return "", appErrors.Clone(appErrors.ErrForbidden, "Admin password is managed by configuration")
	}
	collection := claims.Role.Collection()
	account, err := query.FindByID(ctx, s.store, collection, claims.UserID, query.Projection{})
	if err != nil {
		return "", query.Translate(err, "User not found")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.String(query.FieldPassword)), []byte(req.CurrentPassword)); err != nil {
		return "", appErrors.Clone(appErrors.ErrInvalidCredentials, "Current password is incorrect")
	}
	hash, err := hashPassword(req.NewPassword)
	if err != nil {
		return "", err
	}
	if _, err := s.writer.Update(ctx, collection, claims.UserID, query.Document{query.FieldPassword: hash}); err != nil {
		return "", query.Translate(err, "User not found")
	}
	if err := s.Logout(ctx, claims); err != nil {
		s.logger.Warn("failed to revoke token after password change", zap.String("user_id", claims.UserID), zap.Error(err))
	}
	return s.issue(claims.UserID, claims.Role, claims.Username)
}

// Logout blacklists the presented token until it expires.
func (s *AuthService) Logout(ctx context.Context, claims *models.JWTClaims) error {
	if claims.ID == "" {
		return nil
	}
	expiresAt := s.now().Add(s.config.Expiry)
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	if err := s.blacklist.Revoke(ctx, claims.ID, expiresAt); err != nil {
		s.logger.Error("token revoke failed", zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrInfrastructure.Code, appErrors.ErrInfrastructure.Status, "failed to revoke token")
	}
	return nil
}

// LogoutAll rejects every token of the account issued up to now.
func (s *AuthService) LogoutAll(ctx context.Context, claims *models.JWTClaims) error {
	at := s.now().Truncate(time.Second)
	if err := s.blacklist.RevokeAll(ctx, claims.Role, claims.UserID, at, s.config.Expiry); err != nil {
		s.logger.Error("token revoke-all failed", zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrInfrastructure.Code, appErrors.ErrInfrastructure.Status, "failed to revoke tokens")
	}
	return s.Logout(ctx, claims)
}

// ValidateToken parses an access token and rejects blacklisted ones.
func (s *AuthService) ValidateToken(ctx context.Context, tokenString string) (*models.JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.Secret), nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, appErrors.ErrUnauthorized.Message)
	}
	claims, ok := token.Claims.(*models.JWTClaims)
	if !ok || !token.Valid || !claims.Role.Valid() {
		return nil, appErrors.ErrUnauthorized
	}

	revoked, err := s.blacklist.IsRevoked(ctx, claims.ID)
	if err != nil {
		s.logger.Error("blacklist lookup failed", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInfrastructure.Code, appErrors.ErrInfrastructure.Status, appErrors.ErrInfrastructure.Message)
	}
	if revoked {
		return nil, appErrors.ErrTokenRevoked
	}
	before, ok, err := s.blacklist.RevokedBefore(ctx, claims.Role, claims.UserID)
	if err != nil {
		s.logger.Error("blacklist lookup failed", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInfrastructure.Code, appErrors.ErrInfrastructure.Status, appErrors.ErrInfrastructure.Message)
	}
	if ok && claims.IssuedAt != nil && claims.IssuedAt.Time.Before(before) {
		return nil, appErrors.ErrTokenRevoked
	}
	return claims, nil
}

func (s *AuthService) issue(userID string, role models.UserRole, username string) (string, error) {
	issuedAt := s.now()
	claims := &models.JWTClaims{
		UserID:   userID,
		Role:     role,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.config.Issuer,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.config.Expiry)),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.config.Secret))
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create access token")
	}
	return signed, nil
}

func adminProfile(username string) query.Document {
	return query.Document{
		query.FieldPrimaryID: models.AdminUserID,
		"username":           username,
		"role":               models.RoleAdmin,
	}
}
