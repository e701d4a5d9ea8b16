package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"stakebook/internal/models"
	"stakebook/internal/repository"
)

type BankrollHandler struct {
	Repo repository.Repository
}

func (h *BankrollHandler) Register(r *gin.Engine) {
	g := r.Group("/api/v1/bankrolls")
	g.GET("", h.list)
	g.POST("", h.create)
	g.GET("/:id", h.get)
	g.DELETE("/:id", h.remove)
	g.GET("/:id/transactions", h.listTransactions)
	g.POST("/:id/transactions", h.createTransaction)
}

type createBankrollRequest struct {
	Name string `json:"name"`
}

func (h *BankrollHandler) create(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	var req createBankrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid body", nil)
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		Error(c, http.StatusBadRequest, "name required", nil)
		return
	}
	item := &models.Bankroll{Name: name}
	if err := h.Repo.CreateBankroll(c.Request.Context(), item); err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, item, nil)
}

func (h *BankrollHandler) list(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	items, err := h.Repo.ListBankrolls(c.Request.Context())
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, items, nil)
}

func (h *BankrollHandler) get(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	id := uint64Param(c, "id")
	if id == 0 {
		Error(c, http.StatusBadRequest, "invalid id", nil)
		return
	}
	item, err := h.Repo.GetBankrollByID(c.Request.Context(), id)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	if item == nil {
		Error(c, http.StatusNotFound, "bankroll not found", nil)
		return
	}
	Ok(c, item, nil)
}

func (h *BankrollHandler) remove(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	id := uint64Param(c, "id")
	if id == 0 {
		Error(c, http.StatusBadRequest, "invalid id", nil)
		return
	}
	item, err := h.Repo.GetBankrollByID(c.Request.Context(), id)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	if item == nil {
		Error(c, http.StatusNotFound, "bankroll not found", nil)
		return
	}
	if item.IsDefault {
		Error(c, http.StatusBadRequest, "default bankroll cannot be deleted", nil)
		return
	}
	if err := h.Repo.DeleteBankroll(c.Request.Context(), id); err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, gin.H{"deleted": id}, nil)
}

type createTransactionRequest struct {
	Kind   string   `json:"kind"`
	Amount int64    `json:"amount"`
	Note   string   `json:"note"`
	Tags   []string `json:"tags"`
}

func (h *BankrollHandler) createTransaction(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	id := uint64Param(c, "id")
	if id == 0 {
		Error(c, http.StatusBadRequest, "invalid id", nil)
		return
	}
	bankroll, err := h.Repo.GetBankrollByID(c.Request.Context(), id)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	if bankroll == nil {
		Error(c, http.StatusNotFound, "bankroll not found", nil)
		return
	}
	var req createTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid body", nil)
		return
	}
	kind := strings.TrimSpace(strings.ToLower(req.Kind))
	switch kind {
	case models.TxDeposit, models.TxWithdrawal, models.TxExpense:
	default:
		Error(c, http.StatusBadRequest, "invalid kind", nil)
		return
	}
	tagsRaw, _ := json.Marshal(req.Tags)
	item := &models.Transaction{
		BankrollID: id,
		Kind:       kind,
		Amount:     req.Amount,
		Note:       strings.TrimSpace(req.Note),
		Tags:       datatypes.JSON(tagsRaw),
	}
	if err := h.Repo.InsertTransaction(c.Request.Context(), item); err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, item, nil)
}

func (h *BankrollHandler) listTransactions(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	id := uint64Param(c, "id")
	if id == 0 {
		Error(c, http.StatusBadRequest, "invalid id", nil)
		return
	}
	params := repository.ListTransactionsParams{
		BankrollID: &id,
		Kind:       strQueryPtr(c, "kind"),
		Limit:      intQuery(c, "limit", 50),
		Offset:     intQuery(c, "offset", 0),
	}
	items, err := h.Repo.ListTransactions(c.Request.Context(), params)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, items, nil)
}
