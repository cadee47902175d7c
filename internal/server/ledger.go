package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hungrypeople/feast/internal/common"
	"github.com/hungrypeople/feast/internal/ledger"
	"github.com/hungrypeople/feast/internal/model"
)

// requireLedger rejects ledger requests while the feature toggle is off.
func (s *Server) requireLedger() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.cfg.LedgerEnabled {
			writeError(c, common.ErrFeatureDisabled)
			c.Abort()
			return
		}
		c.Next()
	}
}

func (s *Server) handleFeatureStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"feature": "budget_ledger",
		"enabled": s.cfg.LedgerEnabled,
	})
}

type createBudgetRequest struct {
	ProjectName string `json:"project_name"`
	FiscalYear  int    `json:"fiscal_year"`
	TotalAmount int64  `json:"total_amount"`
}

func (s *Server) handleCreateBudget(c *gin.Context) {
	var req createBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, common.NewValidationError("body", "must be valid JSON"))
		return
	}

	budget, err := s.ledger.CreateBudget(c.Request.Context(), ledger.CreateBudgetRequest{
		ProjectName: req.ProjectName,
		FiscalYear:  req.FiscalYear,
		TotalAmount: req.TotalAmount,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, budget)
}

func (s *Server) handleListBudgets(c *gin.Context) {
	budgets, err := s.ledger.ListBudgets(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	if budgets == nil {
		budgets = make([]model.BudgetWithLines, 0)
	}
	c.JSON(http.StatusOK, gin.H{"budgets": budgets})
}

func (s *Server) handleGetBudget(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		writeError(c, err)
		return
	}

	budget, err := s.ledger.GetBudget(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, budget)
}

type createBudgetLineRequest struct {
	Category        string `json:"category"`
	AllocatedAmount int64  `json:"allocated_amount"`
	RulesTag        string `json:"rules_tag"`
}

func (s *Server) handleCreateBudgetLine(c *gin.Context) {
	budgetID, err := pathID(c)
	if err != nil {
		writeError(c, err)
		return
	}

	var req createBudgetLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, common.NewValidationError("body", "must be valid JSON"))
		return
	}

	line, err := s.ledger.CreateBudgetLine(c.Request.Context(), ledger.CreateBudgetLineRequest{
		BudgetID:        budgetID,
		Category:        req.Category,
		AllocatedAmount: req.AllocatedAmount,
		RulesTag:        req.RulesTag,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, line)
}

type recordTransactionRequest struct {
	VendorName    string `json:"vendor_name"`
	Amount        int64  `json:"amount"`
	PaymentMethod string `json:"payment_method"`
	ReceiptType   string `json:"receipt_type"`
	Date          string `json:"date"`
	Memo          string `json:"memo"`
}

func (s *Server) handleRecordTransaction(c *gin.Context) {
	lineID, err := pathID(c)
	if err != nil {
		writeError(c, err)
		return
	}

	var req recordTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, common.NewValidationError("body", "must be valid JSON"))
		return
	}

	result, err := s.ledger.RecordTransaction(c.Request.Context(), ledger.RecordTransactionRequest{
		LineID:        lineID,
		VendorName:    req.VendorName,
		Amount:        req.Amount,
		PaymentMethod: model.PaymentMethod(req.PaymentMethod),
		ReceiptType:   model.ReceiptType(req.ReceiptType),
		Date:          req.Date,
		Memo:          req.Memo,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (s *Server) handleLineSummary(c *gin.Context) {
	lineID, err := pathID(c)
	if err != nil {
		writeError(c, err)
		return
	}

	summary, err := s.ledger.LineSummary(c.Request.Context(), lineID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// handleLineRecommendations recommends compliant venues for spending against
// a budget line, with the per-head ceiling derived from its remaining budget.
func (s *Server) handleLineRecommendations(c *gin.Context) {
	lineID, err := pathID(c)
	if err != nil {
		writeError(c, err)
		return
	}

	people := 0
	if p := c.Query("people"); p != "" {
		people, err = parsePositiveInt(p)
		if err != nil {
			writeError(c, common.NewValidationError("people", "must be a positive integer"))
			return
		}
	}

	rec, err := s.engine.ForBudgetLine(c.Request.Context(), lineID, c.Query("location"), people, queryLimit(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (s *Server) handleInvalidateTransaction(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		writeError(c, err)
		return
	}

	if err := s.ledger.InvalidateTransaction(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"invalidated": id})
}
