package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase/apis"

	"event-system/models"
)

// toApiError maps domain errors to HTTP responses. Persistence failures on
// primary writes surface as generic 500s so internals stay out of responses.
func toApiError(err error) error {
	var validation *models.ValidationError
	if errors.As(err, &validation) {
		return apis.NewBadRequestError(validation.Message, nil)
	}

	var notFound *models.NotFoundError
	if errors.As(err, &notFound) {
		return apis.NewNotFoundError(notFound.Error(), nil)
	}

	var exhausted *models.CapacityExhaustedError
	if errors.As(err, &exhausted) {
		return apis.NewApiError(http.StatusConflict, exhausted.Error(), nil)
	}

	var invalidStatus *models.InvalidStatusError
	if errors.As(err, &invalidStatus) {
		return apis.NewBadRequestError(invalidStatus.Error(), nil)
	}

	log.Printf("Request failed: %v", err)
	return apis.NewApiError(http.StatusInternalServerError, "Something went wrong", nil)
}
