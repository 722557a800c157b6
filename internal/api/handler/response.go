package handler

import (
	"encoding/json"
	"net/http"

	"github.com/iconidentify/blogsmith/internal/domain"
)

// ErrorResponse is the body of every failed API call.
type ErrorResponse struct {
	Error string           `json:"error"`
	Kind  domain.ErrorKind `json:"kind,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError maps err to a status code by its kind and writes its
// displayable message.
func writeError(w http.ResponseWriter, err error) {
	kind := domain.KindOf(err)
	writeJSON(w, statusForKind(kind), ErrorResponse{Error: err.Error(), Kind: kind})
}

func statusForKind(kind domain.ErrorKind) int {
	switch kind {
	case domain.ErrorKindInput:
		return http.StatusBadRequest
	case domain.ErrorKindConfiguration:
		return http.StatusServiceUnavailable
	case domain.ErrorKindProvider, domain.ErrorKindStructure, domain.ErrorKindExtraction:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
