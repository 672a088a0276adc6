package cmd

import (
	"context"

	"github.com/gorilla/mux"

	"github.com/Alturino/storefront/internal/constants"
	"github.com/Alturino/storefront/internal/server"
	"github.com/Alturino/storefront/user/internal/controller"
	"github.com/Alturino/storefront/user/internal/service"
)

func RunUserService(c context.Context) {
	server.Run(c, constants.AppUserService, func(router *mux.Router, deps server.Dependencies) {
		userService := service.NewUserService(deps.Store, deps.Session, deps.Validator)
		controller.AttachUserController(router, userService)
	})
}
