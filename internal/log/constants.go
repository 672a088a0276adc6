package log

const (
	KeyAppName            = "app"
	KeyAuthToken          = "authToken"
	KeyBody               = "body"
	KeyCache              = "cache"
	KeyCacheKey           = "cacheKey"
	KeyCart               = "cart"
	KeyCartID             = "cartId"
	KeyCartItemID         = "cartItemId"
	KeyCartItemQuantity   = "cartItemQuantity"
	KeyConfig             = "config"
	KeyDbURL              = "dbUrl"
	KeyEmail              = "email"
	KeyHeader             = "header"
	KeyMode               = "mode"
	KeyPathValues         = "pathValues"
	KeyProcess            = "process"
	KeyProductVariantID   = "productVariantId"
	KeyProductVariantSlug = "productVariantSlug"
	KeyRequest            = "request"
	KeyRequestHost        = "host"
	KeyRequestID          = "requestId"
	KeyRequestIP          = "requesterIP"
	KeyRequestMethod      = "requestMethod"
	KeyRequestURI         = "requestURI"
	KeyRequestURL         = "requestURL"
	KeyRowsAffected       = "rowsAffected"
	KeyShippingAddress    = "shippingAddress"
	KeyShippingAddressID  = "shippingAddressId"
	KeySpanID             = "spanId"
	KeyTag                = "tag"
	KeyTraceID            = "traceId"
	KeyUserID             = "userId"
)
