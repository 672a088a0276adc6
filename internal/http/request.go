package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	inErrors "github.com/Alturino/storefront/internal/errors"
)

// DecodeJson decodes the request body into dst. A malformed body is reported as a validation
// failure on the "body" field.
func DecodeJson(r *http.Request, dst interface{}) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return fmt.Errorf(
		"failed decoding request body with error=%w",
		errors.Join(err, inErrors.NewValidationError(map[string]string{"body": "Corpo da requisição inválido"})),
	)
}
