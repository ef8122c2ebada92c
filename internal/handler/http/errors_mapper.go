package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-storefront/internal/adapter"
	"github.com/MKhiriev/go-storefront/internal/logger"
	"github.com/MKhiriev/go-storefront/internal/service"
	"github.com/MKhiriev/go-storefront/internal/store"
	"github.com/MKhiriev/go-storefront/internal/utils"
	"github.com/MKhiriev/go-storefront/internal/validators"
)

var errorStatusMap = map[error]int{
	ErrInvalidRequestBody:   http.StatusBadRequest,
	ErrInvalidPathParameter: http.StatusBadRequest,
	ErrNoBrowserSession:     http.StatusInternalServerError,

	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrInvalidSessionTimeout:   http.StatusBadRequest,
	service.ErrNoIdentity:              http.StatusUnauthorized,
	service.ErrEmptyCart:               http.StatusConflict,
	service.ErrShippingAddressRequired: http.StatusConflict,
	service.ErrOrderConfirmation:       http.StatusBadGateway,
	validators.ErrInvalidAddress:       http.StatusBadRequest,

	store.ErrInvalidOrderColumn:    http.StatusBadRequest,
	store.ErrInvalidOrderDirection: http.StatusBadRequest,
	store.ErrNoUserWasFound:        http.StatusNotFound,
	store.ErrProductNotFound:       http.StatusNotFound,
	store.ErrAddressNotFound:       http.StatusNotFound,
	store.ErrCategoryNotFound:      http.StatusNotFound,

	adapter.ErrMailPublish:  http.StatusBadGateway,
	adapter.ErrMailerClosed: http.StatusBadGateway,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrExecutingStatement:   http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
	store.ErrScanningRows:         http.StatusInternalServerError,
	store.ErrSessionStorage:       http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// errorResponse is the JSON body of every failed request. Errors carries the
// per-field messages of a validation failure.
type errorResponse struct {
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

// writeError maps err to a status and writes it as an errorResponse. Details
// of server-side failures are logged, never returned to the client.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFromError(err)
	log := logger.FromRequest(r)

	resp := errorResponse{Message: http.StatusText(status)}
	if status < http.StatusInternalServerError {
		resp.Message = err.Error()
		log.Info().Err(err).Int("status", status).Msg("request rejected")
	} else {
		log.Err(err).Int("status", status).Msg("request failed")
	}

	var validationErr *validators.ValidationError
	if errors.As(err, &validationErr) {
		resp.Errors = validationErr.Messages
	}

	utils.WriteJSON(w, resp, status)
}
