package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sjperalta/tuition-api/internal/repository"
	"github.com/sjperalta/tuition-api/internal/services"
	"github.com/sjperalta/tuition-api/pkg/logger"
)

// Status discriminators carried by mutating responses
const (
	statusSuccess    = "Success"
	statusError      = "Error"
	statusSuccessful = "Successful"
)

const internalErrorMessage = "An internal error occurred"

// statusFor maps a service error to its HTTP status code.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrDuplicateLedger),
		errors.Is(err, services.ErrInvalidAmount),
		errors.Is(err, services.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrInactiveUser):
		return http.StatusForbidden
	case errors.Is(err, services.ErrRateLimited):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// errorMessage returns the client-facing text for err. Server errors are
// recorded on the context and replaced by a generic message.
func errorMessage(c *gin.Context, err error) (int, string) {
	code := statusFor(err)
	if code >= http.StatusInternalServerError {
		_ = c.Error(err)
		logger.Error("request failed", "path", c.FullPath(), "error", err)
		return code, internalErrorMessage
	}
	return code, err.Error()
}

func respondError(c *gin.Context, err error) {
	code, msg := errorMessage(c, err)
	c.JSON(code, gin.H{"error": msg})
}

func respondTransactionError(c *gin.Context, err error) {
	code, msg := errorMessage(c, err)
	c.JSON(code, gin.H{"transaction_status": statusError, "message": msg})
}

func respondPaymentError(c *gin.Context, err error) {
	code, msg := errorMessage(c, err)
	c.JSON(code, gin.H{"payment_status": statusError, "message": msg})
}

// listQuery reads page and pageSize from the query string. per_page is
// accepted as an alias of pageSize.
func listQuery(c *gin.Context) *repository.ListQuery {
	query := repository.NewListQuery()
	if page, err := strconv.Atoi(c.Query("page")); err == nil {
		query.Page = page
	}
	size := c.Query("pageSize")
	if size == "" {
		size = c.Query("per_page")
	}
	if perPage, err := strconv.Atoi(size); err == nil {
		query.PerPage = perPage
	}
	return query.Normalize()
}

// actor identifies the caller for the audit log.
func actor(c *gin.Context) services.Actor {
	return services.Actor{
		Username:  c.GetString("username"),
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
}
