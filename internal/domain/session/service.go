package session

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	apperrors "github.com/yanqian/belaycheck/pkg/errors"
)

const defaultTokenTTL = 30 * 24 * time.Hour

// Service issues and validates anonymous client sessions. The client id in a
// session namespaces everything the client stores.
type Service interface {
	Issue(ctx context.Context) (Token, error)
	Validate(ctx context.Context, token string) (Claims, error)
}

type service struct {
	cfg    Config
	now    func() time.Time
	newID  func() string
	logger *slog.Logger
}

// NewService wires up the session domain.
func NewService(cfg Config, logger *slog.Logger) Service {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultTokenTTL
	}
	if cfg.Issuer == "" {
		cfg.Issuer = "belaycheck"
	}
	return &service{
		cfg:    cfg,
		now:    time.Now,
		newID:  func() string { return uuid.NewString() },
		logger: logger.With("component", "session.service"),
	}
}

func (s *service) Issue(_ context.Context) (Token, error) {
	if strings.TrimSpace(s.cfg.Secret) == "" {
		return Token{}, apperrors.Wrap(apperrors.CodeSession, "session secret is not configured", nil)
	}
	clientID := s.newID()
	now := s.now()
	expires := now.Add(s.cfg.TokenTTL)
	claims := tokenClaims{
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.cfg.Issuer,
			Subject:   clientID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return Token{}, apperrors.Wrap(apperrors.CodeSession, "failed to sign session token", err)
	}
	s.logger.Debug("session issued", "client_id", clientID)
	return Token{Token: signed, ClientID: clientID, ExpiresAt: expires.UTC()}, nil
}

func (s *service) Validate(_ context.Context, token string) (Claims, error) {
	if strings.TrimSpace(token) == "" {
		return Claims{}, apperrors.Wrap(apperrors.CodeInvalidToken, "token missing", nil)
	}
	parsed, err := jwt.ParseWithClaims(token, &tokenClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %s", t.Method.Alg())
		}
		return []byte(s.cfg.Secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.cfg.Issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return Claims{}, apperrors.Wrap(apperrors.CodeInvalidToken, "token validation failed", err)
	}
	claims, ok := parsed.Claims.(*tokenClaims)
	if !ok || !parsed.Valid {
		return Claims{}, apperrors.Wrap(apperrors.CodeInvalidToken, "token invalid", nil)
	}
	if claims.TokenType != tokenType {
		return Claims{}, apperrors.Wrap(apperrors.CodeInvalidToken, "token type mismatch", nil)
	}
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return Claims{}, apperrors.Wrap(apperrors.CodeInvalidToken, "token subject is not a client id", err)
	}
	return Claims{ClientID: claims.Subject, ExpiresAt: claims.ExpiresAt.Time}, nil
}

type tokenClaims struct {
	jwt.RegisteredClaims
	TokenType string `json:"type"`
}
