package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const intentAcceptedHeader = "X-Intent-Accepted"

type ErrorRes struct {
	Error string `json:"error"`
}

func unknownGameIDMsg(unknownID string) string {
	return fmt.Sprintf("unknown game ID '%s'", unknownID)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	bytes, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(bytes)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorRes{Error: msg})
}

func writeParseError(err error, w http.ResponseWriter) {
	if err == io.EOF {
		writeError(w, http.StatusBadRequest, "missing body")
		return
	}
	writeError(w, http.StatusBadRequest, fmt.Sprintf("could not parse body: %v", err))
}
