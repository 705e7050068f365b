package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Domenick1991/flightdesk/internal/domain"
	"github.com/Domenick1991/flightdesk/internal/service/wallet"
)

type WalletHandler struct {
	service wallet.WalletUseCase
}

// creditRequest takes the amount as a JSON number or as the raw text of the
// top-up form field.
type creditRequest struct {
	Amount json.RawMessage `json:"amount"`
}

type creditResponse struct {
	Transaction *domain.Transaction `json:"transaction"`
	Balance     int64               `json:"balance"`
}

func NewWalletHandler(service wallet.WalletUseCase) *WalletHandler {
	return &WalletHandler{service: service}
}

func (h *WalletHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.get)
	router.POST("/credits", h.credit)
}

func (h *WalletHandler) get(c *gin.Context) {
	w, err := h.service.Wallet(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, w)
}

func (h *WalletHandler) credit(c *gin.Context) {
	var req creditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	raw := strings.Trim(strings.TrimSpace(string(req.Amount)), `"`)
	txn, balance, err := h.service.CreditRaw(c.Request.Context(), raw)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, creditResponse{Transaction: txn, Balance: balance})
}
