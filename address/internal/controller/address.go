package controller

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/Alturino/storefront/address/internal/service"
	"github.com/Alturino/storefront/address/pkg/request"
	inHttp "github.com/Alturino/storefront/internal/http"
	"github.com/Alturino/storefront/internal/log"
	"github.com/Alturino/storefront/internal/otel"
	"github.com/Alturino/storefront/internal/session"
)

type AddressController struct {
	service *service.AddressService
}

func AttachAddressController(mux *mux.Router, service *service.AddressService) {
	router := mux.PathPrefix("/addresses").Subrouter()

	controller := AddressController{service: service}
	router.HandleFunc("", controller.CreateShippingAddress).Methods(http.MethodPost)
	router.HandleFunc("", controller.GetShippingAddresses).Methods(http.MethodGet)
}

func (a AddressController) CreateShippingAddress(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "AddressController CreateShippingAddress")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "AddressController CreateShippingAddress").
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
	reqBody := request.CreateShippingAddress{}
	if err := inHttp.DecodeJson(r, &reqBody); err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger.Trace().Msg("decoded request body")

	logger = logger.With().Str(log.KeyProcess, "creating shipping address").Logger()
	c = logger.WithContext(c)
	address, err := a.service.CreateShippingAddress(c, reqBody)
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger.Info().Str(log.KeyShippingAddressID, address.ID.String()).Msg("created shipping address")

	inHttp.WriteSuccessResponse(
		c,
		w,
		http.StatusCreated,
		"Endereço criado com sucesso",
		map[string]interface{}{"shippingAddress": address},
	)
}

func (a AddressController) GetShippingAddresses(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "AddressController GetShippingAddresses")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "AddressController GetShippingAddresses").
		Str(log.KeyProcess, "getting shipping addresses").
		Logger()

	c = logger.WithContext(c)
	result := a.service.GetShippingAddresses(c)
	logger.Info().Bool("success", result.Success).Msg("got shipping addresses")

	body := map[string]interface{}{
		"statusCode": http.StatusOK,
		"success":    result.Success,
	}
	if result.Success {
		body["data"] = result.Data
	} else {
		body["error"] = result.Error
	}
	inHttp.WriteJsonResponse(c, w, map[string]string{}, body)
}
