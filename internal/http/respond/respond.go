package respond

import (
	"encoding/json"
	"log"
	"net/http"
)

// MessageBody is the body shape used for informational and business-error replies.
type MessageBody struct {
	Message string `json:"message"`
}

// ErrorBody is the body shape used for internal failures.
type ErrorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// JSON writes payload with the given status.
func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("respond: encode payload failed: %v", err)
	}
}

// Message writes {"message": message}.
func Message(w http.ResponseWriter, status int, message string) {
	JSON(w, status, MessageBody{Message: message})
}

// Error writes {"message": message, "error": detail}.
func Error(w http.ResponseWriter, status int, message, detail string) {
	JSON(w, status, ErrorBody{Message: message, Error: detail})
}
