package server

import (
	"encoding/json"
	"net/http"

	"github.com/jrsteele09/go-legal-client/api"
)

const contentTypeJSON = "application/json; charset=utf-8"

func writeEnvelope(w http.ResponseWriter, status int, env *api.Envelope) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env)
}

func writeSuccess(w http.ResponseWriter, status int, message string, data any) {
	env, err := api.NewEnvelope(message, data)
	if err != nil {
		writeFailure(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeEnvelope(w, status, env)
}

func writeFailure(w http.ResponseWriter, status int, message string, errs ...api.FieldError) {
	writeEnvelope(w, status, api.NewErrorEnvelope(message, errs...))
}
