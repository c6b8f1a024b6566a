package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/linkhive/socialgraph/cmd/socialgraph/models"
)

// respondError maps domain errors onto HTTP statuses
func respondError(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case models.IsNotFound(err):
		status = http.StatusNotFound
	case models.IsAuthorization(err):
		status = http.StatusForbidden
	case models.IsConflict(err):
		status = http.StatusConflict
	case models.IsValidation(err):
		status = http.StatusBadRequest
	}

	return c.JSON(status, map[string]any{"error": err.Error()})
}

// pathUUID parses a :param path segment as a UUID
func pathUUID(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, &models.ValidationError{Field: name, Reason: "must be a valid UUID"}
	}
	return id, nil
}
