package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Alturino/storefront/cart/pkg/request"
	"github.com/Alturino/storefront/cart/pkg/response"
	"github.com/Alturino/storefront/internal/cache"
	inErrors "github.com/Alturino/storefront/internal/errors"
	"github.com/Alturino/storefront/internal/log"
	"github.com/Alturino/storefront/internal/otel"
	"github.com/Alturino/storefront/internal/repository"
	"github.com/Alturino/storefront/internal/session"
	"github.com/Alturino/storefront/internal/validate"
)

type CartService struct {
	store     repository.Store
	cache     cache.Cache
	validator *validate.Validator
}

func NewCartService(
	store repository.Store,
	cache cache.Cache,
	validator *validate.Validator,
) *CartService {
	return &CartService{store: store, cache: cache, validator: validator}
}

// authenticate resolves the caller and validates param, in that order.
func (s *CartService) authenticate(
	c context.Context,
	param interface{},
) (*session.Session, error) {
	sess, err := session.FromContext(c)
	if err != nil {
		return nil, fmt.Errorf("failed resolving session with error=%w", err)
	}
	if param == nil {
		return sess, nil
	}
	if err := s.validator.Struct(c, param); err != nil {
		return nil, fmt.Errorf("failed validating request with error=%w", err)
	}
	return sess, nil
}

// authorizeCartItem loads the cart item and checks it belongs to userID.
func (s *CartService) authorizeCartItem(
	c context.Context,
	cartItemID uuid.UUID,
	userID uuid.UUID,
) (repository.FindCartItemWithCartByIdRow, error) {
	item, err := s.store.FindCartItemWithCartById(c, cartItemID)
	if repository.IsNoRows(err) {
		return item, fmt.Errorf("failed finding cart item id=%s with error=%w", cartItemID, inErrors.ErrNotFound)
	}
	if err != nil {
		return item, fmt.Errorf("failed finding cart item id=%s with error=%w", cartItemID, inErrors.Store(err))
	}
	if item.CartUserID != userID {
		return item, fmt.Errorf("cart item id=%s belongs to another user: %w", cartItemID, inErrors.ErrForbidden)
	}
	return item, nil
}

func (s *CartService) RemoveCartItem(c context.Context, param request.CartItem) error {
	c, span := otel.Tracer.Start(c, "CartService RemoveCartItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService RemoveCartItem").
		Str(log.KeyCartItemID, param.CartItemID).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "authenticating").Logger()
	logger.Trace().Msg("authenticating")
	param = param.Normalize()
	sess, err := s.authenticate(c, param)
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger = logger.With().Str(log.KeyUserID, sess.UserID.String()).Logger()
	logger.Trace().Msg("authenticated")

	logger = logger.With().Str(log.KeyProcess, "authorizing cart item").Logger()
	logger.Trace().Msg("authorizing cart item")
	item, err := s.authorizeCartItem(c, param.ID(), sess.UserID)
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger = logger.With().Str(log.KeyCartID, item.CartID.String()).Logger()
	logger.Trace().Msg("authorized cart item")

	logger = logger.With().Str(log.KeyProcess, "deleting cart item").Logger()
	logger.Trace().Msg("deleting cart item")
	rows, err := s.store.DeleteCartItemById(c, repository.DeleteCartItemByIdParams{
		ID:     item.ID,
		UserID: sess.UserID,
	})
	if err != nil {
		err = fmt.Errorf("failed deleting cart item with error=%w", inErrors.Store(err))
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	if rows == 0 {
		err = fmt.Errorf("failed deleting cart item with error=%w", inErrors.ErrNotFound)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Int64(log.KeyRowsAffected, rows).Msg("deleted cart item")

	s.invalidate(c, cache.CartKey(sess.UserID))

	return nil
}

// DecreaseCartItemQuantity takes one unit off the item and removes the item when its last unit
// goes.
func (s *CartService) DecreaseCartItemQuantity(c context.Context, param request.CartItem) error {
	c, span := otel.Tracer.Start(c, "CartService DecreaseCartItemQuantity")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService DecreaseCartItemQuantity").
		Str(log.KeyCartItemID, param.CartItemID).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "authenticating").Logger()
	logger.Trace().Msg("authenticating")
	param = param.Normalize()
	sess, err := s.authenticate(c, param)
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger = logger.With().Str(log.KeyUserID, sess.UserID.String()).Logger()
	logger.Trace().Msg("authenticated")

	logger = logger.With().Str(log.KeyProcess, "authorizing cart item").Logger()
	logger.Trace().Msg("authorizing cart item")
	item, err := s.authorizeCartItem(c, param.ID(), sess.UserID)
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger = logger.With().
		Str(log.KeyCartID, item.CartID.String()).
		Int32(log.KeyCartItemQuantity, item.Quantity).
		Logger()
	logger.Trace().Msg("authorized cart item")

	logger = logger.With().Str(log.KeyProcess, "decrementing cart item quantity").Logger()
	logger.Trace().Msg("decrementing cart item quantity")
	rows, err := s.store.DecrementCartItemQuantity(c, repository.DecrementCartItemQuantityParams{
		ID:     item.ID,
		UserID: sess.UserID,
	})
	if err != nil {
		err = fmt.Errorf("failed decrementing cart item quantity with error=%w", inErrors.Store(err))
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}

	if rows == 0 {
		logger = logger.With().Str(log.KeyProcess, "deleting last unit of cart item").Logger()
		logger.Trace().Msg("deleting last unit of cart item")
		rows, err = s.store.DeleteCartItemWithQuantityOne(c, repository.DeleteCartItemWithQuantityOneParams{
			ID:     item.ID,
			UserID: sess.UserID,
		})
		if err != nil {
			err = fmt.Errorf("failed deleting cart item with error=%w", inErrors.Store(err))
			otel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return err
		}
	}
	if rows == 0 {
		err = fmt.Errorf("failed decreasing cart item quantity with error=%w", inErrors.ErrNotFound)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Int64(log.KeyRowsAffected, rows).Msg("decreased cart item quantity")

	s.invalidate(c, cache.CartKey(sess.UserID))

	return nil
}

func (s *CartService) UpdateCartShippingAddress(
	c context.Context,
	param request.UpdateCartShippingAddress,
) (repository.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService UpdateCartShippingAddress")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService UpdateCartShippingAddress").
		Str(log.KeyShippingAddressID, param.ShippingAddressID.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "authenticating").Logger()
	logger.Trace().Msg("authenticating")
	sess, err := s.authenticate(c, param)
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return repository.Cart{}, err
	}
	logger = logger.With().Str(log.KeyUserID, sess.UserID.String()).Logger()
	logger.Trace().Msg("authenticated")

	logger = logger.With().Str(log.KeyProcess, "authorizing shipping address").Logger()
	logger.Trace().Msg("authorizing shipping address")
	address, err := s.store.FindShippingAddressById(c, param.ShippingAddressID)
	if repository.IsNoRows(err) {
		err = fmt.Errorf("failed finding shipping address with error=%w", inErrors.ErrNotFound)
	} else if err != nil {
		err = fmt.Errorf("failed finding shipping address with error=%w", inErrors.Store(err))
	} else if address.UserID != sess.UserID {
		err = fmt.Errorf("shipping address belongs to another user: %w", inErrors.ErrForbidden)
	}
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return repository.Cart{}, err
	}
	logger.Trace().Msg("authorized shipping address")

	logger = logger.With().Str(log.KeyProcess, "finding cart").Logger()
	logger.Trace().Msg("finding cart")
	cart, err := s.store.FindCartByUserId(c, sess.UserID)
	if repository.IsNoRows(err) {
		err = fmt.Errorf("failed finding cart with error=%w", inErrors.ErrNotFound)
	} else if err != nil {
		err = fmt.Errorf("failed finding cart with error=%w", inErrors.Store(err))
	}
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return repository.Cart{}, err
	}
	logger = logger.With().Str(log.KeyCartID, cart.ID.String()).Logger()
	logger.Trace().Msg("found cart")

	logger = logger.With().Str(log.KeyProcess, "updating cart shipping address").Logger()
	logger.Trace().Msg("updating cart shipping address")
	updated, err := s.store.UpdateCartShippingAddress(c, repository.UpdateCartShippingAddressParams{
		UserID:            sess.UserID,
		ShippingAddressID: address.ID,
	})
	if repository.IsNoRows(err) {
		err = fmt.Errorf("failed updating cart shipping address with error=%w", inErrors.ErrNotFound)
	} else if err != nil {
		err = fmt.Errorf("failed updating cart shipping address with error=%w", inErrors.Store(err))
	}
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return repository.Cart{}, err
	}
	logger.Info().Msg("updated cart shipping address")

	s.invalidate(c, cache.CartKey(sess.UserID))

	return updated, nil
}

func (s *CartService) AddProductToCart(
	c context.Context,
	param request.AddProductToCart,
) (repository.CartItem, error) {
	c, span := otel.Tracer.Start(c, "CartService AddProductToCart")
	defer span.End()

	param = param.Normalize()
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService AddProductToCart").
		Str(log.KeyProductVariantID, param.ProductVariantID.String()).
		Int32(log.KeyCartItemQuantity, param.Quantity).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "authenticating").Logger()
	logger.Trace().Msg("authenticating")
	sess, err := s.authenticate(c, param)
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return repository.CartItem{}, err
	}
	logger = logger.With().Str(log.KeyUserID, sess.UserID.String()).Logger()
	logger.Trace().Msg("authenticated")

	logger = logger.With().Str(log.KeyProcess, "finding product variant").Logger()
	logger.Trace().Msg("finding product variant")
	_, err = s.store.FindProductVariantById(c, param.ProductVariantID)
	if repository.IsNoRows(err) {
		err = fmt.Errorf("failed finding product variant with error=%w", inErrors.ErrNotFound)
	} else if err != nil {
		err = fmt.Errorf("failed finding product variant with error=%w", inErrors.Store(err))
	}
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return repository.CartItem{}, err
	}
	logger.Trace().Msg("found product variant")

	logger = logger.With().Str(log.KeyProcess, "upserting cart item").Logger()
	logger.Trace().Msg("upserting cart item")
	var item repository.CartItem
	err = s.store.ExecTx(c, func(q repository.Querier) error {
		cart, err := q.UpsertCartByUserId(c, sess.UserID)
		if err != nil {
			return fmt.Errorf("failed upserting cart with error=%w", err)
		}
		item, err = q.UpsertCartItem(c, repository.UpsertCartItemParams{
			CartID:           cart.ID,
			ProductVariantID: param.ProductVariantID,
			Quantity:         param.Quantity,
		})
		if err != nil {
			return fmt.Errorf("failed upserting cart item with error=%w", err)
		}
		return nil
	})
	if err != nil {
		err = fmt.Errorf("failed adding product to cart with error=%w", inErrors.Store(err))
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return repository.CartItem{}, err
	}
	logger.Info().
		Str(log.KeyCartItemID, item.ID.String()).
		Int32(log.KeyCartItemQuantity, item.Quantity).
		Msg("upserted cart item")

	s.invalidate(c, cache.CartKey(sess.UserID))

	return item, nil
}

func (s *CartService) GetCart(c context.Context) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService GetCart")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService GetCart").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "authenticating").Logger()
	logger.Trace().Msg("authenticating")
	sess, err := s.authenticate(c, nil)
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger = logger.With().Str(log.KeyUserID, sess.UserID.String()).Logger()
	logger.Trace().Msg("authenticated")

	key := cache.CartKey(sess.UserID)
	logger = logger.With().Str(log.KeyProcess, "getting cart from cache").Logger()
	logger.Trace().Msg("getting cart from cache")
	cached := response.Cart{}
	err = s.cache.Get(c, key, &cached)
	if err == nil {
		logger.Trace().Msg("got cart from cache")
		return cached, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		logger.Warn().Err(err).Msg("failed getting cart from cache, reading store")
	}

	generation, genErr := s.cache.Generation(c, key)
	if genErr != nil {
		logger.Warn().Err(genErr).Msg("failed getting cache generation, cart will not be cached")
	}

	logger = logger.With().Str(log.KeyProcess, "finding cart").Logger()
	logger.Trace().Msg("finding cart")
	cart, err := s.store.FindCartByUserId(c, sess.UserID)
	if repository.IsNoRows(err) {
		logger.Trace().Msg("user has no cart")
		return response.EmptyCart(), nil
	}
	if err != nil {
		err = fmt.Errorf("failed finding cart with error=%w", inErrors.Store(err))
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger = logger.With().Str(log.KeyCartID, cart.ID.String()).Logger()

	logger = logger.With().Str(log.KeyProcess, "finding cart items").Logger()
	logger.Trace().Msg("finding cart items")
	rows, err := s.store.FindCartItemsByCartId(c, cart.ID)
	if err != nil {
		err = fmt.Errorf("failed finding cart items with error=%w", inErrors.Store(err))
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Trace().Int("count", len(rows)).Msg("found cart items")

	view := response.NewCart(cart, rows)
	if genErr == nil {
		err = s.cache.SetIfGeneration(c, key, generation, view)
		if err != nil && !errors.Is(err, cache.ErrStale) {
			logger.Warn().Err(err).Msg("failed caching cart")
		}
	}

	return view, nil
}

func (s *CartService) invalidate(c context.Context, keys ...string) {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService invalidate").
		Strs(log.KeyCacheKey, keys).
		Logger()
	if err := s.cache.Delete(c, keys...); err != nil {
		logger.Warn().Err(err).Msg("failed invalidating cache")
		return
	}
	logger.Trace().Msg("invalidated cache")
}
