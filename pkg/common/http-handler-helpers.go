package common

import (
	"net/http"

	"github.com/matst80/slask-catalog/pkg/common/jsoncompat"
	"go.uber.org/zap"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// JsonHandler answers preflight requests and logs handler errors that were
// not already written to the response.
func JsonHandler(logger *zap.Logger, fn func(w http.ResponseWriter, r *http.Request) error) http.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			RespondToOptions(w, r)
			return
		}
		if err := fn(w, r); err != nil {
			logger.Warn("error handling request", zap.String("path", r.URL.Path), zap.Error(err))
		}
	}
}

func GenericHeaders(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.Header().Set("Cache-Control", "no-store")
	origin := r.Header.Get("Origin")
	if origin != "" {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		w.Header().Set("Access-Control-Allow-Credentials", "true")
	}
}

func WriteJson(w http.ResponseWriter, r *http.Request, status int, data any) error {
	body, err := jsoncompat.Marshal(data)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return err
	}
	GenericHeaders(w, r)
	w.WriteHeader(status)
	_, err = w.Write(body)
	return err
}

func WriteError(w http.ResponseWriter, r *http.Request, status int, message string) error {
	return WriteJson(w, r, status, ErrorResponse{Error: message})
}

func RespondToOptions(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "public, max-age=3600")
	origin := r.Header.Get("Origin")
	if origin != "" {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Max-Age", "86400")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		w.Header().Set("Access-Control-Allow-Credentials", "true")
	}
	w.Header().Set("Age", "0")
	w.WriteHeader(http.StatusAccepted)
}
