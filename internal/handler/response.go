package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"blogmedia/internal/domain"
	"blogmedia/internal/middleware"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// ErrorBody is the body of every error response.
type ErrorBody struct {
	Error string `json:"error"`
}

// Page is the body of paginated list responses.
type Page[T any] struct {
	Count   int `json:"count"`
	Offset  int `json:"offset"`
	Limit   int `json:"limit"`
	Results []T `json:"results"`
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, msg string) {
	c.JSON(status, ErrorBody{Error: msg})
}

// RespondPage sends a 200 response with one page of results.
func RespondPage[T any](c *gin.Context, results []T, total, offset, limit int) {
	if results == nil {
		results = []T{}
	}
	c.JSON(http.StatusOK, Page[T]{Count: total, Offset: offset, Limit: limit, Results: results})
}

// MapDomainError translates domain errors to HTTP status codes and messages.
func MapDomainError(err error) (status int, msg string) {
	var stageErr *domain.StageError
	switch {
	case errors.Is(err, domain.ErrImageInputRequired):
		return http.StatusBadRequest, domain.ErrImageInputRequired.Error()
	case errors.Is(err, domain.ErrTitleTooLong):
		return http.StatusBadRequest, domain.ErrTitleTooLong.Error()
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "resource not found"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "forbidden"
	case errors.Is(err, domain.ErrUserInactive):
		return http.StatusForbidden, "user is inactive"
	case errors.Is(err, domain.ErrDuplicateEmail):
		return http.StatusConflict, "email already registered"
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, domain.ErrFileTooLarge.Error()
	case errors.Is(err, domain.ErrProcessingBusy):
		return http.StatusServiceUnavailable, domain.ErrProcessingBusy.Error()
	case errors.As(err, &stageErr):
		return http.StatusInternalServerError, stageErr.Error()
	default:
		return http.StatusInternalServerError, "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, msg := MapDomainError(err)
	if status >= 500 {
		log.Printf("[%s] internal error: %v", middleware.GetRequestID(c), err)
	}
	RespondError(c, status, msg)
}

// requireUserID reads the authenticated user id. It returns false after
// writing a 401 when the request carries no auth context.
func requireUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "missing user context")
		return uuid.Nil, false
	}
	return userID, true
}

func parsePagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPageLimit)))
	if limit <= 0 || limit > maxPageLimit {
		limit = defaultPageLimit
	}
	if offset < 0 {
		offset = 0
	}
	return offset, limit
}
