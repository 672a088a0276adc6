// Package session resolves the authenticated user of a request from its Authorization header.
package session

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	inErrors "github.com/Alturino/storefront/internal/errors"
	"github.com/Alturino/storefront/internal/log"
	"github.com/Alturino/storefront/internal/otel"
)

const (
	Issuer       = "user-service"
	AudienceUser = "audience-user"
	TokenTTL     = 30 * time.Minute
)

type Session struct {
	UserID    uuid.UUID `json:"userId"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type Provider interface {
	// Session returns nil without error when the headers carry no credentials.
	Session(c context.Context, header http.Header) (*Session, error)
}

type JwtProvider struct {
	secretKey []byte
	now       func() time.Time
}

func NewJwtProvider(secretKey string) *JwtProvider {
	return &JwtProvider{secretKey: []byte(secretKey), now: time.Now}
}

func (p *JwtProvider) Issue(c context.Context, userID uuid.UUID) (string, error) {
	c, span := otel.Tracer.Start(c, "JwtProvider Issue")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "JwtProvider Issue").
		Str(log.KeyUserID, userID.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "signing token").Logger()
	logger.Trace().Msg("signing token")
	issuedAt := p.now()
	token := jwt.NewWithClaims(
		jwt.SigningMethodHS256,
		jwt.RegisteredClaims{
			Audience:  jwt.ClaimStrings{AudienceUser},
			Issuer:    Issuer,
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
		},
	)
	signed, err := token.SignedString(p.secretKey)
	if err != nil {
		err = fmt.Errorf("failed signing token with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return "", err
	}
	logger.Trace().Msg("signed token")

	return signed, nil
}

func (p *JwtProvider) Session(c context.Context, header http.Header) (*Session, error) {
	c, span := otel.Tracer.Start(c, "JwtProvider Session")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "JwtProvider Session").
		Logger()

	authorization := strings.TrimSpace(header.Get("Authorization"))
	if authorization == "" {
		logger.Trace().Msg("request carries no authorization")
		return nil, nil
	}
	scheme, token, ok := strings.Cut(authorization, " ")
	if !ok || !strings.EqualFold(scheme, "bearer") || strings.TrimSpace(token) == "" {
		err := fmt.Errorf("malformed authorization header: %w", inErrors.ErrTokenInvalid)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}

	logger = logger.With().Str(log.KeyProcess, "parsing claims").Logger()
	logger.Trace().Msg("parsing claims")
	claims := jwt.RegisteredClaims{}
	jwtToken, err := jwt.ParseWithClaims(
		strings.TrimSpace(token),
		&claims,
		func(t *jwt.Token) (interface{}, error) {
			return p.secretKey, nil
		},
		jwt.WithAudience(AudienceUser),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithIssuer(Issuer),
		jwt.WithTimeFunc(p.now),
	)
	if err != nil {
		err = fmt.Errorf("failed parsing claims with error=%w", invalidToken(err))
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	if !jwtToken.Valid {
		err = fmt.Errorf("failed validating token with error=%w", inErrors.ErrTokenInvalid)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Trace().Msg("parsed claims")

	logger = logger.With().Str(log.KeyProcess, "parsing subject").Logger()
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		err = fmt.Errorf("failed parsing subject=%s with error=%w", claims.Subject, invalidToken(err))
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Trace().Str(log.KeyUserID, userID.String()).Msg("parsed subject as userId")

	return &Session{UserID: userID, ExpiresAt: claims.ExpiresAt.Time}, nil
}

func invalidToken(err error) error {
	return fmt.Errorf("%w: %w", inErrors.ErrTokenInvalid, err)
}
