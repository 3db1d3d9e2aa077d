package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zakaria-baami/marketplace-backend-sub001/internal/domain"
)

const identityHeader = "X-User-ID"

// requireIdentity rejects requests without a caller identity. Verifying that
// identity is the upstream gateway's job; here it is only required to exist.
func requireIdentity(c *gin.Context) {
	if c.GetHeader(identityHeader) == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing " + identityHeader + " header"})
	}
}

func callerID(c *gin.Context) string {
	return c.GetHeader(identityHeader)
}

// writeError maps domain errors to HTTP statuses. Ownership failures are
// reported as not found so the API does not leak resource existence.
func writeError(c *gin.Context, err error) {
	var stockErr *domain.InsufficientStockError
	if errors.As(err, &stockErr) {
		c.JSON(http.StatusConflict, gin.H{
			"error":     "insufficient stock",
			"productId": stockErr.ProductID,
			"requested": stockErr.Requested,
		})
		return
	}

	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrNotOwner):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, domain.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, gin.H{"error": "cart is empty"})
	case errors.Is(err, domain.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": "invalid status transition"})
	case errors.Is(err, domain.ErrAlreadyOwnsBoutique):
		c.JSON(http.StatusConflict, gin.H{"error": "seller already owns a boutique"})
	case errors.Is(err, domain.ErrGradeInsufficient):
		c.JSON(http.StatusForbidden, gin.H{"error": "grade does not allow this template"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}
