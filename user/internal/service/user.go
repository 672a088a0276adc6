package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	inErrors "github.com/Alturino/storefront/internal/errors"
	"github.com/Alturino/storefront/internal/log"
	"github.com/Alturino/storefront/internal/otel"
	"github.com/Alturino/storefront/internal/repository"
	"github.com/Alturino/storefront/internal/validate"
	"github.com/Alturino/storefront/user/pkg/request"
	"github.com/Alturino/storefront/user/pkg/response"
)

type TokenIssuer interface {
	Issue(c context.Context, userID uuid.UUID) (string, error)
}

type UserService struct {
	store     repository.Store
	issuer    TokenIssuer
	validator *validate.Validator
}

func NewUserService(
	store repository.Store,
	issuer TokenIssuer,
	validator *validate.Validator,
) *UserService {
	return &UserService{store: store, issuer: issuer, validator: validator}
}

func (u *UserService) Login(c context.Context, param request.LoginRequest) (string, error) {
	c, span := otel.Tracer.Start(c, "UserService Login")
	defer span.End()

	param = param.Normalize()
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserService Login").
		Str(log.KeyEmail, param.Email).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "validating request").Logger()
	logger.Trace().Msg("validating request")
	if err := u.validator.Struct(c, param); err != nil {
		err = fmt.Errorf("failed validating request with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return "", err
	}
	logger.Trace().Msg("validated request")

	logger = logger.With().Str(log.KeyProcess, "finding user").Logger()
	logger.Trace().Msg("finding user by email")
	user, err := u.store.FindUserByEmail(c, param.Email)
	if repository.IsNoRows(err) {
		err = fmt.Errorf("failed finding user by email with error=%w", inErrors.ErrUnauthenticated)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return "", err
	}
	if err != nil {
		err = fmt.Errorf("failed finding user by email with error=%w", inErrors.Store(err))
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return "", err
	}
	logger.Trace().Msg("found user by email")

	logger = logger.With().Str(log.KeyProcess, "verifying password").Logger()
	logger.Trace().Msg("verifying hashed password with password")
	err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(param.Password))
	if err != nil {
		err = fmt.Errorf(
			"failed verifying password with error=%w",
			fmt.Errorf("%w: %w", inErrors.ErrUnauthenticated, inErrors.ErrPasswordMismatch),
		)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return "", err
	}
	logger.Trace().Msg("verified hashed password with password")

	logger = logger.With().Str(log.KeyProcess, "issuing token").Logger()
	logger.Trace().Msg("issuing token")
	token, err := u.issuer.Issue(c, user.ID)
	if err != nil {
		err = fmt.Errorf("failed issuing token with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return "", err
	}
	logger.Info().Str(log.KeyUserID, user.ID.String()).Msg("issued token")

	return token, nil
}

func (u *UserService) Register(
	c context.Context,
	param request.RegisterRequest,
) (response.User, error) {
	c, span := otel.Tracer.Start(c, "UserService Register")
	defer span.End()

	param = param.Normalize()
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserService Register").
		Str(log.KeyEmail, param.Email).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "validating request").Logger()
	logger.Trace().Msg("validating request")
	if err := u.validator.Struct(c, param); err != nil {
		err = fmt.Errorf("failed validating request with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.User{}, err
	}
	logger.Trace().Msg("validated request")

	logger = logger.With().Str(log.KeyProcess, "hashing password").Logger()
	logger.Trace().Msg("hashing password")
	hashed, err := bcrypt.GenerateFromPassword([]byte(param.Password), bcrypt.DefaultCost)
	if err != nil {
		err = fmt.Errorf("failed hashing password with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.User{}, err
	}
	logger.Trace().Msg("hashed password")

	logger = logger.With().Str(log.KeyProcess, "inserting user").Logger()
	logger.Trace().Msg("inserting user")
	user, err := u.store.InsertUser(c, repository.InsertUserParams{
		Name:     param.Name,
		Email:    param.Email,
		Password: string(hashed),
	})
	if repository.IsUniqueViolation(err) {
		err = fmt.Errorf("failed inserting user email=%s with error=%w", param.Email, inErrors.ErrConflict)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.User{}, err
	}
	if err != nil {
		err = fmt.Errorf("failed inserting user with error=%w", inErrors.Store(err))
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.User{}, err
	}
	logger.Info().Str(log.KeyUserID, user.ID.String()).Msg("inserted user")

	return response.UserFromRepository(user), nil
}
