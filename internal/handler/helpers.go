package handler

import (
	"errors"
	"net/http"

	"prestadores-api/internal/apierror"
	"prestadores-api/internal/service"
	"prestadores-api/internal/validation"

	"github.com/gin-gonic/gin"
)

// readDocument decodes the JSON body into a raw document for the schema
// rules. Returns false and writes the error response if the body is not a
// JSON object. The caller should return immediately.
func readDocument(c *gin.Context) (validation.Document, bool) {
	doc, err := validation.ReadDocument(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return nil, false
	}
	return doc, true
}

// respondError maps service errors to responses. Violations are sent with
// validationStatus; anything unrecognized is logged through c.Error and
// answered with a generic 500 carrying internalMsg.
func respondError(c *gin.Context, err error, validationStatus int, internalMsg string) {
	var verrs validation.Errors
	var fe *service.FieldError
	switch {
	case errors.As(err, &verrs):
		c.JSON(validationStatus, apierror.NewValidation(verrs))
	case errors.As(err, &fe):
		status := http.StatusForbidden
		if errors.Is(fe.Reason, service.ErrEmailNaoCadastrado) {
			status = http.StatusNotFound
		}
		c.JSON(status, &apierror.ValidationError{Detail: fe.Violation.Msg, Errors: validation.Errors{fe.Violation}})
	case errors.Is(err, service.ErrIDInvalido):
		c.JSON(http.StatusBadRequest, apierror.New("O id informado é inválido"))
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, apierror.New(internalMsg))
	}
}
