package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yigit/clubhub/internal/app/models/dto"
)

// uuidParam reads a path parameter that must be a UUID, answering 400 otherwise
func uuidParam(ctx *gin.Context, name string) (string, bool) {
	raw := ctx.Param(name)
	id, err := uuid.Parse(raw)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name)
		errorDetail = errorDetail.WithField(name).WithDetails(name + " must be a valid UUID")
		ctx.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return "", false
	}
	return id.String(), true
}
