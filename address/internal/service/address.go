package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Alturino/storefront/address/pkg/request"
	"github.com/Alturino/storefront/address/pkg/response"
	"github.com/Alturino/storefront/internal/cache"
	inErrors "github.com/Alturino/storefront/internal/errors"
	"github.com/Alturino/storefront/internal/log"
	"github.com/Alturino/storefront/internal/otel"
	"github.com/Alturino/storefront/internal/repository"
	"github.com/Alturino/storefront/internal/session"
	"github.com/Alturino/storefront/internal/validate"
)

const MessageListFailed = "Erro ao buscar endereços"

type AddressService struct {
	store     repository.Store
	cache     cache.Cache
	validator *validate.Validator
}

func NewAddressService(
	store repository.Store,
	cache cache.Cache,
	validator *validate.Validator,
) *AddressService {
	return &AddressService{store: store, cache: cache, validator: validator}
}

func (s *AddressService) CreateShippingAddress(
	c context.Context,
	param request.CreateShippingAddress,
) (repository.ShippingAddress, error) {
	c, span := otel.Tracer.Start(c, "AddressService CreateShippingAddress")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "AddressService CreateShippingAddress").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "resolving session").Logger()
	logger.Trace().Msg("resolving session")
	sess, err := session.FromContext(c)
	if err != nil {
		err = fmt.Errorf("failed resolving session with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return repository.ShippingAddress{}, err
	}
	logger = logger.With().Str(log.KeyUserID, sess.UserID.String()).Logger()
	logger.Trace().Msg("resolved session")

	logger = logger.With().Str(log.KeyProcess, "validating request").Logger()
	logger.Trace().Msg("validating request")
	param = param.Normalize()
	if err := s.validator.Struct(c, param); err != nil {
		err = fmt.Errorf("failed validating request with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return repository.ShippingAddress{}, err
	}
	logger = logger.With().Object(log.KeyShippingAddress, param).Logger()
	logger.Trace().Msg("validated request")

	logger = logger.With().Str(log.KeyProcess, "inserting shipping address").Logger()
	logger.Trace().Msg("inserting shipping address")
	var address repository.ShippingAddress
	if param.LinkToCart {
		address, err = s.insertAndLinkToCart(c, param, sess)
	} else {
		address, err = s.store.InsertShippingAddress(c, param.InsertParams(sess.UserID))
	}
	if err != nil {
		if !errors.Is(err, inErrors.ErrStore) {
			err = inErrors.Store(err)
		}
		err = fmt.Errorf("failed inserting shipping address with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return repository.ShippingAddress{}, err
	}
	logger = logger.With().Str(log.KeyShippingAddressID, address.ID.String()).Logger()
	logger.Info().Msg("inserted shipping address")

	keys := []string{cache.ShippingAddressesKey(sess.UserID)}
	if param.LinkToCart {
		keys = append(keys, cache.CartKey(sess.UserID))
	}
	s.invalidate(c, keys...)

	return address, nil
}

func (s *AddressService) insertAndLinkToCart(
	c context.Context,
	param request.CreateShippingAddress,
	sess *session.Session,
) (repository.ShippingAddress, error) {
	var address repository.ShippingAddress
	err := s.store.ExecTx(c, func(q repository.Querier) error {
		inserted, err := q.InsertShippingAddress(c, param.InsertParams(sess.UserID))
		if err != nil {
			return fmt.Errorf("failed inserting shipping address with error=%w", err)
		}
		if _, err = q.UpsertCartByUserId(c, sess.UserID); err != nil {
			return fmt.Errorf("failed upserting cart with error=%w", err)
		}
		_, err = q.UpdateCartShippingAddress(c, repository.UpdateCartShippingAddressParams{
			UserID:            sess.UserID,
			ShippingAddressID: inserted.ID,
		})
		if err != nil {
			return fmt.Errorf("failed linking shipping address to cart with error=%w", err)
		}
		address = inserted
		return nil
	})
	return address, err
}

// GetShippingAddresses never returns an error; failures are reported inside the result.
func (s *AddressService) GetShippingAddresses(c context.Context) response.ListResult {
	c, span := otel.Tracer.Start(c, "AddressService GetShippingAddresses")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "AddressService GetShippingAddresses").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "resolving session").Logger()
	logger.Trace().Msg("resolving session")
	sess, err := session.FromContext(c)
	if err != nil {
		err = fmt.Errorf("failed resolving session with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.ListFailure(MessageListFailed)
	}
	logger = logger.With().Str(log.KeyUserID, sess.UserID.String()).Logger()
	logger.Trace().Msg("resolved session")

	key := cache.ShippingAddressesKey(sess.UserID)
	logger = logger.With().Str(log.KeyProcess, "getting shipping addresses from cache").Logger()
	logger.Trace().Msg("getting shipping addresses from cache")
	cached := []response.ShippingAddress{}
	err = s.cache.Get(c, key, &cached)
	if err == nil {
		logger.Trace().Msg("got shipping addresses from cache")
		return response.ListSuccess(cached)
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		logger.Warn().Err(err).Msg("failed getting shipping addresses from cache, reading store")
	}

	generation, genErr := s.cache.Generation(c, key)
	if genErr != nil {
		logger.Warn().Err(genErr).Msg("failed getting cache generation, result will not be cached")
	}

	logger = logger.With().Str(log.KeyProcess, "finding shipping addresses").Logger()
	logger.Trace().Msg("finding shipping addresses")
	addresses, err := s.store.FindShippingAddressesByUserId(c, sess.UserID)
	if err != nil {
		err = fmt.Errorf("failed finding shipping addresses with error=%w", inErrors.Store(err))
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.ListFailure(MessageListFailed)
	}
	logger.Trace().Int("count", len(addresses)).Msg("found shipping addresses")

	result := response.FromRepositories(addresses)
	if genErr == nil {
		err = s.cache.SetIfGeneration(c, key, generation, result)
		if err != nil && !errors.Is(err, cache.ErrStale) {
			logger.Warn().Err(err).Msg("failed caching shipping addresses")
		}
	}

	return response.ListSuccess(result)
}

func (s *AddressService) invalidate(c context.Context, keys ...string) {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "AddressService invalidate").
		Strs(log.KeyCacheKey, keys).
		Logger()
	if err := s.cache.Delete(c, keys...); err != nil {
		logger.Warn().Err(err).Msg("failed invalidating cache")
		return
	}
	logger.Trace().Msg("invalidated cache")
}
