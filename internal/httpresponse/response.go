package httpresponse

import (
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

type ErrorResponse struct {
	ErrorDescription string `json:"ErrorDescription"`
}

const INTERNALERRORJSON = "{\"ErrorDescription\": \"Internal server error\"}"

// WriteJSON writes body as the whole response, without an envelope.
func WriteJSON(log *zap.SugaredLogger, w http.ResponseWriter, status int, body any) {
	payload, err := json.Marshal(body)
	if err != nil {
		log.Errorf("WriteJSON marshal error: %v", err)
		WriteInternalErrorResponse(w)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err = w.Write(payload); err != nil {
		log.Debugf("WriteJSON write error: %v", err)
	}
}

func WriteError(log *zap.SugaredLogger, w http.ResponseWriter, status int, desc string) {
	log.Debugf("response %d: %s", status, desc)
	WriteJSON(log, w, status, ErrorResponse{ErrorDescription: desc})
}

func WriteInternalErrorResponse(w http.ResponseWriter) {
	// implementation similar to http.Error, only difference is the Content-type
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = fmt.Fprintln(w, INTERNALERRORJSON)
}
