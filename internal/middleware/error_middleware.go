package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aravind/rollbook/internal/pkg/apperrors"
)

// HandleAPIError maps service errors onto the wire contract: missing
// resources are 404, validation problems 400, duplicates 409, everything
// else 500. Bodies carry a bare {"error": message} object.
func HandleAPIError(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	switch {
	case apperrors.Is(err, apperrors.ErrResourceNotFound,
		apperrors.ErrCourseNotFound,
		apperrors.ErrStudentNotFound):
		status = http.StatusNotFound
	case apperrors.Is(err, apperrors.ErrValidationFailed,
		apperrors.ErrBadRequest,
		apperrors.ErrInvalidCourseCode,
		apperrors.ErrInvalidEmail,
		apperrors.ErrInvalidRollNumber,
		apperrors.ErrInvalidStudentName,
		apperrors.ErrInvalidDate,
		apperrors.ErrInvalidDateRange):
		status = http.StatusBadRequest
	case apperrors.Is(err, apperrors.ErrConflict,
		apperrors.ErrCourseAlreadyExists,
		apperrors.ErrRollNumberExists):
		status = http.StatusConflict
	}

	c.JSON(status, gin.H{"error": err.Error()})
}
