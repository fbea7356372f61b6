package handler

import (
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/ladelta/bakery-service/internal/api"
	"github.com/ladelta/bakery-service/internal/db/repository"
	"github.com/ladelta/bakery-service/internal/service"
)

// writeServiceError maps a service-layer error onto the response taxonomy.
// Anything unclassified becomes a generic 500; the detail stays in the log.
func writeServiceError(w http.ResponseWriter, err error, resource string) {
	var validationErr *service.ValidationError

	switch {
	case errors.As(err, &validationErr):
		api.Error(w, http.StatusBadRequest, validationErr.Error())
	case errors.Is(err, repository.ErrNotFound):
		api.Error(w, http.StatusNotFound, resource+" not found")
	default:
		logrus.WithError(err).Error("Unexpected error handling request")
		api.Error(w, http.StatusInternalServerError, "Internal server error")
	}
}
