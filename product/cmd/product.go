package cmd

import (
	"context"

	"github.com/gorilla/mux"

	"github.com/Alturino/storefront/internal/constants"
	"github.com/Alturino/storefront/internal/server"
	"github.com/Alturino/storefront/product/internal/controller"
	"github.com/Alturino/storefront/product/internal/service"
)

func RunProductService(c context.Context) {
	server.Run(c, constants.AppProductService, func(router *mux.Router, deps server.Dependencies) {
		productService := service.NewProductService(deps.Store, deps.Cache)
		controller.AttachProductController(router, productService)
	})
}
