package utils

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func traceID(c *gin.Context) string {
	id, _ := c.Get("trace_id")
	s, _ := id.(string)
	return s
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: traceID(c),
		Data:    data,
	})
}

func RespondCreated(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusCreated, APIResponse{
		Status:  "success",
		Code:    http.StatusCreated,
		Message: message,
		TraceID: traceID(c),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: traceID(c),
	})
}

// statusOf maps service errors to HTTP status codes. Business-rule errors
// keep their message verbatim so the dashboard can surface it in a toast.
func statusOf(err error) int {
	switch {
	case errors.Is(err, ErrCustomerNotFound),
		errors.Is(err, ErrPlanNotFound),
		errors.Is(err, ErrMembershipNotFound),
		errors.Is(err, ErrWeekNotFound),
		errors.Is(err, ErrDayNotFound),
		errors.Is(err, ErrAccountNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrEmailAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, ErrInvalidPayment),
		errors.Is(err, ErrNotActive),
		errors.Is(err, ErrInsufficientBalance),
		errors.Is(err, ErrAlreadyConsumed),
		errors.Is(err, ErrOutOfRange),
		errors.Is(err, ErrNoMealTypes),
		errors.Is(err, ErrAmbiguousTarget),
		errors.Is(err, ErrNoSchedule),
		errors.Is(err, ErrInvalidSchedule),
		errors.Is(err, ErrInvalidStatusChange),
		errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrInvalidPage),
		errors.Is(err, ErrInvalidPageSize):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func HandleServiceError(c *gin.Context, err error) {
	code := statusOf(err)
	message := err.Error()

	if code == http.StatusInternalServerError {
		log.Printf("Internal error: %v", err)
		message = "Internal server error"
	}

	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: traceID(c),
	})
}
