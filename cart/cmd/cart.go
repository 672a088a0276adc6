package cmd

import (
	"context"

	"github.com/gorilla/mux"

	"github.com/Alturino/storefront/cart/internal/controller"
	"github.com/Alturino/storefront/cart/internal/service"
	"github.com/Alturino/storefront/internal/constants"
	"github.com/Alturino/storefront/internal/server"
)

func RunCartService(c context.Context) {
	server.Run(c, constants.AppCartService, func(router *mux.Router, deps server.Dependencies) {
		cartService := service.NewCartService(deps.Store, deps.Cache, deps.Validator)
		controller.AttachCartController(router, cartService)
	})
}
