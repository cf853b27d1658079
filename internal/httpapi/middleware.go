// Package httpapi contains HTTP handlers and middleware.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/learningsteps/api/internal/journal"
)

type ctxKey string

const ctxKeyDraft ctxKey = "validatedDraft"

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// getValidator lazily builds the validator and reports field names by their
// json tag so error payloads match the wire format.
func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "" || name == "-" {
				return fld.Name
			}
			return name
		})
	})
	return validate
}

// validateCreateEntry decodes and validates the POST /entries body, stores
// the draft in the request context for the handler, and intercepts
// validation failures as a 400 listing every offending field.
func (s *Server) validateCreateEntry() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !requireJSON(w, r) {
				return
			}
			body, err := io.ReadAll(r.Body)
			if err != nil {
				badRequest(w, "failed to read request body")
				return
			}
			var draft journal.Draft
			dec := json.NewDecoder(bytes.NewReader(body))
			dec.DisallowUnknownFields()
			if err := dec.Decode(&draft); err != nil {
				badRequest(w, "invalid JSON: "+err.Error())
				return
			}
			if err := getValidator().Struct(draft); err != nil {
				var ve validator.ValidationErrors
				if errors.As(err, &ve) {
					toJSON(w, http.StatusBadRequest, validationResponse{Detail: toFieldErrors(ve, body)})
					return
				}
				badRequest(w, err.Error())
				return
			}
			ctx := context.WithValue(r.Context(), ctxKeyDraft, draft)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// toFieldErrors flattens validator failures into the wire shape, echoing the
// submitted body so callers can see what was rejected.
func toFieldErrors(ve validator.ValidationErrors, body []byte) []fieldError {
	var input json.RawMessage
	if json.Valid(body) {
		input = json.RawMessage(body)
	}
	out := make([]fieldError, 0, len(ve))
	for _, fe := range ve {
		msg := "field is invalid"
		if fe.Tag() == "required" {
			msg = "field required"
		}
		out = append(out, fieldError{Field: fe.Field(), Message: msg, Input: input})
	}
	return out
}
