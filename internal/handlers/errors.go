package handlers

import (
	"errors"
	"net/http"

	"dlccontrol/internal/decop"
	"dlccontrol/internal/dlc"
	"dlccontrol/internal/repository"
	"dlccontrol/internal/service"

	"github.com/gin-gonic/gin"
)

const errInvalidBodyPref = "invalid body: "

// statusFor maps service and device errors onto HTTP status codes.
func statusFor(err error) int {
	var devErr *decop.DeviceError
	switch {
	case dlc.IsOutOfRange(err),
		errors.Is(err, dlc.ErrInvalidChannel),
		errors.Is(err, dlc.ErrInvalidRemoteUnit),
		errors.Is(err, service.ErrInvalidTimeRange),
		errors.Is(err, service.ErrUnknownEventType):
		return http.StatusBadRequest
	case errors.Is(err, dlc.ErrWavelengthUnsupported),
		errors.Is(err, dlc.ErrTemperatureUnsupported),
		errors.Is(err, repository.ErrUserExists):
		return http.StatusConflict
	case errors.As(err, &devErr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, decop.ErrConnection),
		errors.Is(err, decop.ErrClosed),
		errors.Is(err, dlc.ErrClosed):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as JSON. Client errors carry the message and, for
// range violations, the rejected value and permitted range. Server errors
// are logged under logKey and answered with userMsg.
func (h *Handler) respondError(c *gin.Context, userMsg, logKey string, err error, kv ...any) {
	code := statusFor(err)
	if code >= http.StatusInternalServerError {
		h.log.Errorw(logKey, append([]any{"err", err}, kv...)...)
		c.JSON(code, gin.H{"error": userMsg})
		return
	}
	h.log.Infow(logKey, append([]any{"err", err}, kv...)...)

	body := gin.H{"error": err.Error()}
	var oor *dlc.OutOfRangeError
	var devErr *decop.DeviceError
	switch {
	case errors.As(err, &oor):
		body["parameter"] = oor.Parameter
		body["range"] = oor.Range
		if oor.Window != nil {
			body["window"] = oor.Window
		} else {
			body["value"] = oor.Value
		}
	case errors.As(err, &devErr):
		body["code"] = devErr.Code
	}
	c.JSON(code, body)
}

// bindJSON binds the request body into dst and answers 400 on failure.
// It returns false if the request was already handled.
func (h *Handler) bindJSON(c *gin.Context, dst any, logKey string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		h.log.Infow(logKey, "err", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return false
	}
	return true
}
