package handler

import (
	"fmt"
	"net/http"

	"github.com/truledger/loanboard/internal/export"
	"github.com/truledger/loanboard/internal/schedule"
)

// asOfParam reads an optional ?as_of=YYYY-MM-DD override, defaulting to today.
func asOfParam(r *http.Request) (string, error) {
	asOf := r.URL.Query().Get("as_of")
	if asOf == "" {
		return schedule.Today(), nil
	}
	if _, err := schedule.ParseDate(asOf); err != nil {
		return "", err
	}
	return asOf, nil
}

// Overview returns the weekly portfolio aggregates
func (h *Handler) Overview(w http.ResponseWriter, r *http.Request) {
	asOf, err := asOfParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	ov, err := h.svc.Overview(r.Context(), asOf)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ov)
}

// Export streams the portfolio statement as XML
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	asOf, err := asOfParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	loans, err := h.svc.Loans(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	reserves, err := h.svc.Reserves(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	out, err := export.PortfolioXML(loans, reserves, asOf)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/xml")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=portfolio-%s.xml", asOf))
	w.Write(out)
}
