package controller

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/Alturino/storefront/cart/internal/service"
	"github.com/Alturino/storefront/cart/pkg/request"
	inHttp "github.com/Alturino/storefront/internal/http"
	"github.com/Alturino/storefront/internal/log"
	"github.com/Alturino/storefront/internal/otel"
	"github.com/Alturino/storefront/internal/session"
)

type CartController struct {
	service *service.CartService
}

func AttachCartController(mux *mux.Router, service *service.CartService) {
	controller := CartController{service: service}

	router := mux.PathPrefix("/carts").Subrouter()
	router.HandleFunc("", controller.GetCart).Methods(http.MethodGet)
	router.HandleFunc("/items", controller.AddProductToCart).Methods(http.MethodPost)
	router.HandleFunc("/items/{cartItemId}", controller.RemoveCartItem).Methods(http.MethodDelete)
	router.HandleFunc("/items/{cartItemId}/decrease", controller.DecreaseCartItemQuantity).
		Methods(http.MethodPatch)
	router.HandleFunc("/shipping-address", controller.UpdateCartShippingAddress).
		Methods(http.MethodPatch)
}

func (t CartController) GetCart(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController GetCart")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController GetCart").
		Str(log.KeyProcess, "getting cart").
		Logger()

	c = logger.WithContext(c)
	cart, err := t.service.GetCart(c)
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger.Info().Int("items", len(cart.Items)).Msg("got cart")

	inHttp.WriteSuccessResponse(c, w, http.StatusOK, "Carrinho encontrado", map[string]interface{}{"cart": cart})
}

func (t CartController) AddProductToCart(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController AddProductToCart")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController AddProductToCart").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "authenticating").Logger()
	logger.Trace().Msg("authenticating")
	if _, err := session.FromContext(c); err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger.Trace().Msg("authenticated")

	logger = logger.With().Str(log.KeyProcess, "decoding request body").Logger()
	logger.Trace().Msg("decoding request body")
	reqBody := request.AddProductToCart{}
	if err := inHttp.DecodeJson(r, &reqBody); err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger.Trace().Msg("decoded request body")

	logger = logger.With().Str(log.KeyProcess, "adding product to cart").Logger()
	c = logger.WithContext(c)
	item, err := t.service.AddProductToCart(c, reqBody)
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger.Info().Str(log.KeyCartItemID, item.ID.String()).Msg("added product to cart")

	inHttp.WriteSuccessResponse(
		c,
		w,
		http.StatusOK,
		"Produto adicionado ao carrinho",
		map[string]interface{}{"cartItem": item},
	)
}

func (t CartController) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController RemoveCartItem")
	defer span.End()

	param := request.CartItem{CartItemID: mux.Vars(r)["cartItemId"]}
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController RemoveCartItem").
		Str(log.KeyCartItemID, param.CartItemID).
		Str(log.KeyProcess, "removing cart item").
		Logger()

	c = logger.WithContext(c)
	if err := t.service.RemoveCartItem(c, param); err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger.Info().Msg("removed cart item")

	inHttp.WriteSuccessResponse(c, w, http.StatusOK, "Produto removido do carrinho", nil)
}

func (t CartController) DecreaseCartItemQuantity(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController DecreaseCartItemQuantity")
	defer span.End()

	param := request.CartItem{CartItemID: mux.Vars(r)["cartItemId"]}
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController DecreaseCartItemQuantity").
		Str(log.KeyCartItemID, param.CartItemID).
		Str(log.KeyProcess, "decreasing cart item quantity").
		Logger()

	c = logger.WithContext(c)
	if err := t.service.DecreaseCartItemQuantity(c, param); err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger.Info().Msg("decreased cart item quantity")

	inHttp.WriteSuccessResponse(c, w, http.StatusOK, "Quantidade do produto diminuída", nil)
}

func (t CartController) UpdateCartShippingAddress(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController UpdateCartShippingAddress")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController UpdateCartShippingAddress").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "authenticating").Logger()
	logger.Trace().Msg("authenticating")
	if _, err := session.FromContext(c); err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger.Trace().Msg("authenticated")

	logger = logger.With().Str(log.KeyProcess, "decoding request body").Logger()
	logger.Trace().Msg("decoding request body")
	reqBody := request.UpdateCartShippingAddress{}
	if err := inHttp.DecodeJson(r, &reqBody); err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger.Trace().Msg("decoded request body")

	logger = logger.With().Str(log.KeyProcess, "updating cart shipping address").Logger()
	c = logger.WithContext(c)
	cart, err := t.service.UpdateCartShippingAddress(c, reqBody)
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger.Info().Str(log.KeyCartID, cart.ID.String()).Msg("updated cart shipping address")

	inHttp.WriteSuccessResponse(
		c,
		w,
		http.StatusOK,
		"Endereço de entrega atualizado",
		map[string]interface{}{"cart": cart},
	)
}
