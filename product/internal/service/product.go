package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Alturino/storefront/internal/cache"
	inErrors "github.com/Alturino/storefront/internal/errors"
	"github.com/Alturino/storefront/internal/log"
	"github.com/Alturino/storefront/internal/otel"
	"github.com/Alturino/storefront/internal/repository"
	"github.com/Alturino/storefront/product/pkg/response"
)

// ProductService serves the read-only catalog. Both reads are cached and never invalidated by
// the storefront itself, entries expire with the cache ttl.
type ProductService struct {
	store repository.Querier
	cache cache.Cache
}

func NewProductService(store repository.Querier, cache cache.Cache) *ProductService {
	return &ProductService{store: store, cache: cache}
}

func (svc *ProductService) GetProducts(c context.Context) ([]response.Product, error) {
	c, span := otel.Tracer.Start(c, "ProductService GetProducts")
	defer span.End()

	key := cache.ProductsKey()
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService GetProducts").
		Str(log.KeyCacheKey, key).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "getting products from cache").Logger()
	logger.Trace().Msg("getting products from cache")
	products := []response.Product{}
	err := svc.cache.Get(c, key, &products)
	if err == nil {
		logger.Trace().Msg("got products from cache")
		return products, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		logger.Warn().Err(err).Msg("failed getting products from cache, reading store")
	}

	logger = logger.With().Str(log.KeyProcess, "finding products").Logger()
	logger.Trace().Msg("finding products")
	rows, err := svc.store.FindProducts(c)
	if err != nil {
		err = fmt.Errorf("failed finding products with error=%w", inErrors.Store(err))
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	variants, err := svc.store.FindProductVariants(c)
	if err != nil {
		err = fmt.Errorf("failed finding product variants with error=%w", inErrors.Store(err))
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Trace().Int("products", len(rows)).Int("variants", len(variants)).Msg("found products")

	products = response.NewCatalog(rows, variants)
	if err := svc.cache.Set(c, key, products); err != nil {
		logger.Warn().Err(err).Msg("failed caching products")
	}

	return products, nil
}

func (svc *ProductService) FindProductVariantBySlug(
	c context.Context,
	slug string,
) (response.ProductVariantDetail, error) {
	c, span := otel.Tracer.Start(c, "ProductService FindProductVariantBySlug")
	defer span.End()

	slug = strings.ToLower(strings.TrimSpace(slug))
	key := cache.ProductVariantKey(slug)
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService FindProductVariantBySlug").
		Str(log.KeyProductVariantSlug, slug).
		Str(log.KeyCacheKey, key).
		Logger()

	if slug == "" {
		err := fmt.Errorf(
			"failed finding product variant with error=%w",
			inErrors.NewValidationError(map[string]string{"slug": "Slug é obrigatório"}),
		)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.ProductVariantDetail{}, err
	}

	logger = logger.With().Str(log.KeyProcess, "getting product variant from cache").Logger()
	logger.Trace().Msg("getting product variant from cache")
	variant := response.ProductVariantDetail{}
	err := svc.cache.Get(c, key, &variant)
	if err == nil {
		logger.Trace().Msg("got product variant from cache")
		return variant, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		logger.Warn().Err(err).Msg("failed getting product variant from cache, reading store")
	}

	logger = logger.With().Str(log.KeyProcess, "finding product variant").Logger()
	logger.Trace().Msg("finding product variant")
	row, err := svc.store.FindProductVariantBySlug(c, slug)
	if repository.IsNoRows(err) {
		err = fmt.Errorf("failed finding product variant with error=%w", inErrors.ErrNotFound)
	} else if err != nil {
		err = fmt.Errorf("failed finding product variant with error=%w", inErrors.Store(err))
	}
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.ProductVariantDetail{}, err
	}
	logger = logger.With().Str(log.KeyProductVariantID, row.ID.String()).Logger()
	logger.Trace().Msg("found product variant")

	variant = response.VariantDetailFromRepository(row)
	if err := svc.cache.Set(c, key, variant); err != nil {
		logger.Warn().Err(err).Msg("failed caching product variant")
	}

	return variant, nil
}
