package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"flathunter-service/internal/contextkeys"
	"flathunter-service/internal/core/domain"
	"flathunter-service/internal/core/port"
	"flathunter-service/internal/core/port/usecases_port"

	"github.com/go-chi/chi/v5"
)

type HuntHandlers struct {
	huntUC          usecases_port.HuntFlatsPort
	getExposeUC     usecases_port.GetExposePort
	defaultMaxPages int
}

func NewHuntHandlers(huntUC usecases_port.HuntFlatsPort, getExposeUC usecases_port.GetExposePort, defaultMaxPages int) *HuntHandlers {
	return &HuntHandlers{
		huntUC:          huntUC,
		getExposeUC:     getExposeUC,
		defaultMaxPages: defaultMaxPages,
	}
}

// HandleHealth - GET /health
func (h *HuntHandlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// HandleStartHunt - POST /api/v1/hunts. Выполняет запуск синхронно
func (h *HuntHandlers) HandleStartHunt(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "HandleStartHunt"})

	var reqDTO StartHuntRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&reqDTO); err != nil && !errors.Is(err, io.EOF) {
		WriteJSONError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	maxPages := h.defaultMaxPages
	if reqDTO.MaxPages != nil {
		if *reqDTO.MaxPages < 0 {
			WriteJSONError(w, http.StatusBadRequest, "Field 'max_pages' must not be negative")
			return
		}
		maxPages = *reqDTO.MaxPages
	}

	logger.Info("Received request to start a hunt", port.Fields{"max_pages": maxPages})

	exposes, err := h.huntUC.Execute(r.Context(), maxPages)
	if err != nil {
		if errors.Is(err, domain.ErrHuntInProgress) {
			WriteJSONError(w, http.StatusConflict, "Hunt is already running")
			return
		}
		logger.Error("Use case execution failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Hunt failed")
		return
	}

	resp := HuntResultDTO{NewOffers: len(exposes), Exposes: make([]ExposeDTO, 0, len(exposes))}
	for _, e := range exposes {
		resp.Exposes = append(resp.Exposes, toExposeDTO(e))
	}
	RespondWithJSON(w, http.StatusOK, resp)
}

// HandleGetExpose - GET /api/v1/exposes/{exposeID}
func (h *HuntHandlers) HandleGetExpose(w http.ResponseWriter, r *http.Request) {
	exposeID := chi.URLParam(r, "exposeID")
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{
		"handler":   "HandleGetExpose",
		"expose_id": exposeID,
	})

	entry, err := h.getExposeUC.Execute(r.Context(), exposeID)
	if err != nil {
		if errors.Is(err, domain.ErrExposeNotFound) {
			WriteJSONError(w, http.StatusNotFound, "Expose not found")
			return
		}
		logger.Error("Failed to get expose", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to get expose")
		return
	}
	RespondWithJSON(w, http.StatusOK, toStoreEntryDTO(entry))
}
