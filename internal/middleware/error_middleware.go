package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/scholarmatch/internal/app/models/dto"
	"github.com/yigit/scholarmatch/internal/pkg/apperrors"
	"github.com/yigit/scholarmatch/internal/pkg/logger"
)

// HandleAPIError writes the error response for err. Server-side failures are logged.
func HandleAPIError(c *gin.Context, err error) {
	detail := classifyError(err)
	status := detail.Code.Status()
	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).
			Str("path", c.Request.URL.Path).
			Str("requestID", c.GetString(ContextRequestID)).
			Str("code", string(detail.Code)).
			Msg("Request failed")
	}
	c.JSON(status, dto.NewErrorResponse(detail))
}

// AbortWithError writes detail with the status of its code and stops the handler chain
func AbortWithError(c *gin.Context, detail *dto.ErrorDetail) {
	c.AbortWithStatusJSON(detail.Code.Status(), dto.NewErrorResponse(detail))
}

func classifyError(err error) *dto.ErrorDetail {
	switch {
	case errors.Is(err, apperrors.ErrPersistenceFailure):
		return dto.NewErrorDetail(dto.ErrorCodeDatabaseError, "Recommendations could not be saved")
	case errors.Is(err, apperrors.ErrProfileNotFound):
		return dto.NewErrorDetail(dto.ErrorCodeProfileRequired, "Student profile not found")
	case errors.Is(err, apperrors.ErrScholarshipNotFound):
		return dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Scholarship not found")
	case errors.Is(err, apperrors.ErrAccountNotFound):
		return dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Account not found")
	case errors.Is(err, apperrors.ErrResourceNotFound):
		return dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Resource not found")
	case errors.Is(err, apperrors.ErrPermissionDenied):
		return dto.NewErrorDetail(dto.ErrorCodeForbidden, "Permission denied")
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, "Invalid credentials")
	case errors.Is(err, apperrors.ErrTokenExpired):
		return dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Token expired")
	case errors.Is(err, apperrors.ErrTokenInvalid):
		return dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid token")
	case errors.Is(err, apperrors.ErrValidationFailed):
		return dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Validation failed").WithDetails(err.Error())
	case errors.Is(err, apperrors.ErrBadRequest):
		return dto.NewErrorDetail(dto.ErrorCodeBadRequest, err.Error())
	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		return dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "Email already exists")
	case errors.Is(err, apperrors.ErrResourceAlreadyExists):
		return dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "Resource already exists")
	case errors.Is(err, apperrors.ErrConflict):
		return dto.NewErrorDetail(dto.ErrorCodeConflict, "Conflict")
	default:
		return dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
	}
}
