package controllers

import (
	"errors"
	"net/http"

	"free-gift-coupon/logger"
	"free-gift-coupon/models"
	"free-gift-coupon/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrCouponNotFound),
		errors.Is(err, services.ErrProductNotFound),
		errors.Is(err, services.ErrCartLineNotFound),
		errors.Is(err, services.ErrCouponNotApplied):
		return http.StatusNotFound
	case errors.Is(err, services.ErrInvalidProductID),
		errors.Is(err, services.ErrInvalidCouponCode),
		errors.Is(err, services.ErrInvalidDateRange):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrCouponAlreadyExists),
		errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrCartConflict):
		return http.StatusConflict
	case errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the error envelope. Storage faults are logged and hidden from the client.
func respondError(c *gin.Context, err error, message string) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.FromContext(c).Error(message, zap.Error(err))
		c.JSON(status, models.ErrorResponse{Success: false, Message: message})
		return
	}
	c.JSON(status, models.ErrorResponse{Success: false, Message: message, Error: err.Error()})
}

func respondInvalid(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Success: false,
		Message: "Invalid request",
		Error:   err.Error(),
	})
}

func respondOK(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, models.Response{Success: true, Message: message, Data: data})
}
