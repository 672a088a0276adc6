package constants

const (
	AppAddressService = "address-service"
	AppCartService    = "cart-service"
	AppProductService = "product-service"
	AppUserService    = "user-service"
	AppMigrate        = "migrate"
	AppMain           = "storefront"
)
