package utils

import (
	"net/http"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ReadAndValidate decodes the request body into dst and validates its
// struct tags. Validation failures come back as validator.ValidationErrors.
func ReadAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	if err := ReadJSON(w, r, dst); err != nil {
		return err
	}
	return validate.Struct(dst)
}
