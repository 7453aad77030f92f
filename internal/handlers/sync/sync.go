package sync

import (
	"context"
	"errors"
	"net/http"

	"github.com/kaimrdth/Barbershop-Transactions-Automation/internal/service/recon"
	"github.com/kaimrdth/Barbershop-Transactions-Automation/pkg/utils"
)

type Service interface {
	Run(ctx context.Context) (*recon.RunResult, error)
	CurrentStatus(ctx context.Context) recon.Status
	Reset(ctx context.Context) error
}

type SyncHandler struct {
	reconService Service
}

func New(reconService Service) *SyncHandler {
	return &SyncHandler{
		reconService: reconService,
	}
}

// Run triggers one reconciliation pass and waits for it to finish.
func (h *SyncHandler) Run(w http.ResponseWriter, r *http.Request) {
	result, err := h.reconService.Run(r.Context())
	if errors.Is(err, recon.ErrRunInProgress) {
		utils.RespondWithError(w, http.StatusConflict, "run already in progress")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, result)
}

func (h *SyncHandler) Status(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, h.reconService.CurrentStatus(r.Context()))
}

// Reset clears the sync cursor and the entity caches together.
func (h *SyncHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.reconService.Reset(r.Context()); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.Response{Message: "state cleared"})
}
