package api

import (
	"net/http"

	"lotobank/domain/errs"
	"lotobank/translate"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// statusFor maps an error kind to the HTTP status it surfaces as. Business
// precondition failures are client errors even when the record exists, so
// settlement retries and stale clients get a deterministic 400.
func statusFor(kind errs.Kind) int {
	switch kind {
	case errs.KindNotFound,
		errs.KindWinningNumbersNotDeclared,
		errs.KindAlreadySettled,
		errs.KindNumberNotAllowed,
		errs.KindValidation:
		return http.StatusBadRequest
	case errs.KindNotAllowed:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// errorResponse is the uniform error payload
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// respondError translates err into the request's language and writes the
// mapped status. Unexpected errors are logged with their cause; the client
// only ever sees the translated message.
func respondError(c *gin.Context, translator *translate.Translator, err error) {
	e := errs.From(err)
	status := statusFor(e.Kind)

	if status == http.StatusInternalServerError {
		log.WithError(err).WithFields(log.Fields{
			"path":   c.FullPath(),
			"method": c.Request.Method,
		}).Error("request failed")
	}

	c.JSON(status, errorResponse{
		Code:    string(e.Kind),
		Message: translator.Message(requestLanguage(c), e),
	})
}
