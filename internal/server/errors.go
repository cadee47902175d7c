package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hungrypeople/feast/internal/common"
)

// writeError maps the application error taxonomy onto HTTP status codes.
// Validation failures and overspends are 400, missing references 404,
// the disabled ledger toggle 403, everything else 500.
func writeError(c *gin.Context, err error) {
	var budgetErr *common.BudgetExceededError
	if errors.As(err, &budgetErr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":            budgetErr.Error(),
			"remaining_amount": budgetErr.Remaining,
		})
		return
	}

	switch {
	case errors.Is(err, common.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, common.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, common.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, common.ErrFeatureDisabled):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		common.LogError(err, "request failed", common.Fields{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
