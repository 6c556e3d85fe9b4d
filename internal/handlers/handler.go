package handlers

import (
	"errors"
	"net/http"
	"strings"

	"carefund/internal/services"
	"carefund/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// respondError maps a service error onto the API envelope. Services return
// plain errors; the mapping here keys off the error text the repositories
// and services agree on.
func respondError(c *gin.Context, err error) {
	var vErrs validator.ValidationErrors
	if errors.As(err, &vErrs) {
		utils.ValidationErrorResponse(c, utils.ValidationErrors(err))
		return
	}

	if errors.Is(err, services.ErrTestGatewayDisabled) {
		utils.ErrorResponse(c, http.StatusForbidden, "TEST_GATEWAY_DISABLED", err.Error())
		return
	}

	msg := err.Error()
	switch {
	case msg == utils.ErrForbidden:
		utils.ForbiddenResponse(c)
	case msg == utils.ErrUnauthorized || msg == utils.ErrInvalidCredentials || msg == utils.ErrInvalidToken:
		utils.ErrorResponse(c, http.StatusUnauthorized, "UNAUTHORIZED", msg)
	case strings.Contains(msg, "not found"):
		utils.ErrorResponse(c, http.StatusNotFound, "NOT_FOUND", msg)
	case msg == utils.ErrUserExists || strings.Contains(msg, "already"):
		utils.ConflictResponse(c, msg)
	case strings.Contains(msg, "failed to"):
		utils.InternalServerErrorResponse(c)
	default:
		utils.BadRequestResponse(c, msg)
	}
}

// objectIDParam parses the named path parameter as an ObjectID, writing the
// error response itself on failure.
func objectIDParam(c *gin.Context, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		utils.BadRequestResponse(c, "invalid "+name)
		return primitive.NilObjectID, false
	}
	return id, true
}

func paginationMeta(meta *utils.PaginationMeta) *utils.Meta {
	return &utils.Meta{Pagination: meta, Total: meta.Total}
}
