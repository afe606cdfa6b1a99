package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jcardenas/techstore/internal/domain"
	"github.com/jcardenas/techstore/internal/dto"
	"github.com/sirupsen/logrus"
)

// writeError maps service errors onto HTTP statuses: validation failures are
// 400 with the field list, not-found is 404, conflicts are 409, everything
// else is a logged 500 with an opaque body.
func writeError(c *gin.Context, logger *logrus.Entry, err error) {
	var verrs dto.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		c.JSON(http.StatusBadRequest, gin.H{"errors": verrs})
	case errors.Is(err, domain.ErrCurrentPasswordMismatch),
		errors.Is(err, domain.ErrInvalidOrderStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case domain.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case domain.IsConflict(err):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.WithError(err).Error("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// pathID parses the named path parameter as a UUID. A malformed value writes
// a 400 and reports ok=false.
func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"errors": dto.ValidationErrors{{Field: name, Message: "is not a valid UUID"}},
		})
		return uuid.Nil, false
	}
	return id, true
}

// bindJSON decodes the body into req; a malformed body writes a 400 and
// reports false.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request body"})
		return false
	}
	return true
}
