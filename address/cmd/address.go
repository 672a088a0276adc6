package cmd

import (
	"context"

	"github.com/gorilla/mux"

	"github.com/Alturino/storefront/address/internal/controller"
	"github.com/Alturino/storefront/address/internal/service"
	"github.com/Alturino/storefront/internal/constants"
	"github.com/Alturino/storefront/internal/server"
)

func RunAddressService(c context.Context) {
	server.Run(c, constants.AppAddressService, func(router *mux.Router, deps server.Dependencies) {
		addressService := service.NewAddressService(deps.Store, deps.Cache, deps.Validator)
		controller.AttachAddressController(router, addressService)
	})
}
