package httpapi

import (
	"encoding/json"
	"net/http"
	"sort"
)

// errorResponse mirrors the error body contract of the public API:
// 400 carries a list of field messages, other statuses a single message.
type errorResponse struct {
	Message    any    `json:"message"`
	Error      string `json:"error"`
	StatusCode int    `json:"statusCode"`
}

func writeValidationError(w http.ResponseWriter, messages []string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{
		Message:    messages,
		Error:      "Bad Request",
		StatusCode: http.StatusBadRequest,
	})
}

func writeConflictError(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusConflict, errorResponse{
		Message:    message,
		Error:      "Conflict",
		StatusCode: http.StatusConflict,
	})
}

func writeInternalError(w http.ResponseWriter) {
	writeJSON(w, http.StatusInternalServerError, errorResponse{
		Message:    "Internal server error",
		Error:      "Internal Server Error",
		StatusCode: http.StatusInternalServerError,
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// messagesFromDetails flattens per-field validation details into a stable,
// field-ordered message list.
func messagesFromDetails(details map[string]any) []string {
	fields := make([]string, 0, len(details))
	for f := range details {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if msg, ok := details[f].(string); ok {
			out = append(out, msg)
		}
	}
	return out
}
