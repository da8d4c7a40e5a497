package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/truledger/loanboard/internal/feed"
	"github.com/truledger/loanboard/internal/schedule"
	"github.com/truledger/loanboard/internal/service"
)

type Handler struct {
	svc *service.Service
	hub *feed.Hub
}

func NewHandler(svc *service.Service, hub *feed.Hub) *Handler {
	return &Handler{svc: svc, hub: hub}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, schedule.ErrAlreadyComplete),
		errors.Is(err, schedule.ErrNothingToReverse):
		status = http.StatusConflict
	case errors.Is(err, schedule.ErrInvalidIndex):
		status = http.StatusBadRequest
	case errors.Is(err, schedule.ErrMalformedRecord):
		status = http.StatusUnprocessableEntity
	case strings.Contains(err.Error(), "not found"):
		status = http.StatusNotFound
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func readJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}

// eventBody carries the optional override date and note for the combined
// record-next-event operation.
type eventBody struct {
	Date string  `json:"date"`
	Note *string `json:"note"`
}
