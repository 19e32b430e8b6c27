package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avelin/formatrack/internal/app/models/dto"
	"github.com/avelin/formatrack/internal/pkg/apperrors"
	"github.com/avelin/formatrack/internal/pkg/logger"
)

// HandleAPIError translates service errors into HTTP responses at the
// controller boundary. Anything unmapped answers 500 without leaking the
// internal message.
func HandleAPIError(c *gin.Context, err error) {
	var customErr *apperrors.CustomError
	message := err.Error()
	var details map[string]interface{}
	if errors.As(err, &customErr) {
		message = customErr.Error()
		details = customErr.Details
	}

	switch {
	case apperrors.Is(err, apperrors.ErrValidationFailed,
		apperrors.ErrBadRequest,
		apperrors.ErrInvalidEmail,
		apperrors.ErrInvalidPassword,
		apperrors.ErrInvalidTimeRange,
		apperrors.ErrBothFileAndURL,
		apperrors.ErrNoFileOrURL):
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, message)
		if details != nil {
			detail = detail.WithDetails(details)
		}
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))

	case apperrors.Is(err, apperrors.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, message)))

	case apperrors.Is(err, apperrors.ErrTokenExpired):
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeExpiredToken, message)))

	case apperrors.Is(err, apperrors.ErrTokenInvalid,
		apperrors.ErrTokenNotFound,
		apperrors.ErrTokenRevoked):
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInvalidToken, message)))

	case apperrors.Is(err, apperrors.ErrPermissionDenied, apperrors.ErrAccountDisabled):
		c.JSON(http.StatusForbidden, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeForbidden, message)))

	case apperrors.Is(err, apperrors.ErrResourceNotFound,
		apperrors.ErrUserNotFound,
		apperrors.ErrStudentNotFound,
		apperrors.ErrTrainerNotFound,
		apperrors.ErrDomainNotFound,
		apperrors.ErrFormationNotFound,
		apperrors.ErrModuleNotFound,
		apperrors.ErrRoomNotFound,
		apperrors.ErrCourseNotFound,
		apperrors.ErrAvailabilityNotFound,
		apperrors.ErrEnrollmentNotFound,
		apperrors.ErrAttendanceNotFound,
		apperrors.ErrDocumentNotFound,
		apperrors.ErrPersonalDocumentNotFound):
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, message)))

	case apperrors.Is(err, apperrors.ErrConflict,
		apperrors.ErrResourceAlreadyExists,
		apperrors.ErrEmailAlreadyExists,
		apperrors.ErrStudentNumberAlreadyExists,
		apperrors.ErrBadgeNumberAlreadyExists,
		apperrors.ErrDomainAlreadyExists,
		apperrors.ErrDomainHasFormations,
		apperrors.ErrFormationAlreadyExists,
		apperrors.ErrModuleAlreadyExists,
		apperrors.ErrEnrollmentAlreadyExists,
		apperrors.ErrRoomSlotTaken,
		apperrors.ErrTrainerSlotTaken):
		c.JSON(http.StatusConflict, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeConflict, message)))

	default:
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled API error")
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInternalServer, "an internal error occurred")))
	}
}
