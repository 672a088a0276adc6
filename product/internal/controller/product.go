package controller

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	inHttp "github.com/Alturino/storefront/internal/http"
	"github.com/Alturino/storefront/internal/log"
	"github.com/Alturino/storefront/internal/otel"
	"github.com/Alturino/storefront/product/internal/service"
)

type ProductController struct {
	service *service.ProductService
}

func AttachProductController(mux *mux.Router, service *service.ProductService) {
	controller := ProductController{service: service}

	router := mux.PathPrefix("/products").Subrouter()
	router.HandleFunc("", controller.GetProducts).Methods(http.MethodGet)
	router.HandleFunc("/variants/{slug}", controller.FindProductVariantBySlug).Methods(http.MethodGet)
}

func (p ProductController) GetProducts(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ProductController GetProducts")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductController GetProducts").
		Str(log.KeyProcess, "getting products").
		Logger()

	c = logger.WithContext(c)
	products, err := p.service.GetProducts(c)
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger.Info().Int("count", len(products)).Msg("got products")

	inHttp.WriteSuccessResponse(
		c,
		w,
		http.StatusOK,
		"Produtos encontrados",
		map[string]interface{}{"products": products},
	)
}

func (p ProductController) FindProductVariantBySlug(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ProductController FindProductVariantBySlug")
	defer span.End()

	slug := mux.Vars(r)["slug"]
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductController FindProductVariantBySlug").
		Str(log.KeyProductVariantSlug, slug).
		Str(log.KeyProcess, "finding product variant").
		Logger()

	c = logger.WithContext(c)
	variant, err := p.service.FindProductVariantBySlug(c, slug)
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger.Info().Str(log.KeyProductVariantID, variant.ID.String()).Msg("found product variant")

	inHttp.WriteSuccessResponse(
		c,
		w,
		http.StatusOK,
		"Produto encontrado",
		map[string]interface{}{"productVariant": variant},
	)
}
