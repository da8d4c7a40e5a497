package handler

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/truledger/loanboard/internal/models"
)

// Reserves lists the caller's reserves
func (h *Handler) Reserves(w http.ResponseWriter, r *http.Request) {
	reserves, err := h.svc.Reserves(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reserves)
}

// GetReserve returns a single reserve
func (h *Handler) GetReserve(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid reserve id"})
		return
	}
	res, err := h.svc.Reserve(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// CreateReserve creates a reserve
func (h *Handler) CreateReserve(w http.ResponseWriter, r *http.Request) {
	var res models.Reserve
	if err := readJSON(r, &res); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	created, err := h.svc.CreateReserve(r.Context(), &res)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// UpdateReserve replaces a reserve
func (h *Handler) UpdateReserve(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid reserve id"})
		return
	}
	var res models.Reserve
	if err := readJSON(r, &res); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	res.ID = id
	updated, err := h.svc.UpdateReserve(r.Context(), &res)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeleteReserve removes a reserve
func (h *Handler) DeleteReserve(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid reserve id"})
		return
	}
	if err := h.svc.DeleteReserve(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RecordReserveDeduction marks the next deduction done, with optional note
// and backdate in one update
func (h *Handler) RecordReserveDeduction(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid reserve id"})
		return
	}
	var body eventBody
	if r.ContentLength > 0 {
		if err := readJSON(r, &body); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}
	}
	res, err := h.svc.MarkReserveDeducted(r.Context(), id, body.Date, body.Note)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// ReverseReserveDeduction undoes the most recent deduction
func (h *Handler) ReverseReserveDeduction(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid reserve id"})
		return
	}
	res, err := h.svc.ReverseReserveDeduction(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// CloseReserve fast-forwards a reserve to fully deducted
func (h *Handler) CloseReserve(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid reserve id"})
		return
	}
	var body eventBody
	if r.ContentLength > 0 {
		if err := readJSON(r, &body); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}
	}
	res, err := h.svc.CloseReserve(r.Context(), id, body.Date)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// SetReserveDeductionNote overwrites the note for one deduction
func (h *Handler) SetReserveDeductionNote(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid reserve id"})
		return
	}
	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid note index"})
		return
	}
	var body struct {
		Note string `json:"note"`
	}
	if err := readJSON(r, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	res, err := h.svc.SetReserveDeductionNote(r.Context(), id, index, body.Note)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
