package rows

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/kaimrdth/Barbershop-Transactions-Automation/internal/domain"
	"github.com/kaimrdth/Barbershop-Transactions-Automation/internal/dto"
	"github.com/kaimrdth/Barbershop-Transactions-Automation/pkg/utils"
)

const (
	defaultLimit = 100
	maxLimit     = 1000
)

type Service interface {
	List(ctx context.Context, limit, offset int) ([]domain.ProcessedRow, error)
	FindByTransactionID(ctx context.Context, transactionID string) (*domain.ProcessedRow, error)
}

type RowsHandler struct {
	rowService Service
}

func New(rowService Service) *RowsHandler {
	return &RowsHandler{
		rowService: rowService,
	}
}

func (h *RowsHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", defaultLimit)
	if limit <= 0 || limit > maxLimit {
		limit = defaultLimit
	}
	offset := queryInt(r, "offset", 0)
	if offset < 0 {
		offset = 0
	}

	rows, err := h.rowService.List(r.Context(), limit, offset)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	out := make([]dto.RowDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.RowFromDomain(row))
	}
	utils.RespondWithJSON(w, http.StatusOK, out)
}

func (h *RowsHandler) Get(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "transactionID")
	row, err := h.rowService.FindByTransactionID(r.Context(), transactionID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if row == nil {
		utils.RespondWithError(w, http.StatusNotFound, "row not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.RowFromDomain(*row))
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
