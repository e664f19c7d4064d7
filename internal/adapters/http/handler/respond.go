package handler

import (
	"encoding/json"
	"log"
	"net/http"
)

func writeText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("http: encode response: %v", err)
	}
}

// writeError はドメインエラーを HTTP レスポンスに変換します。
// 4xx は短いテキスト、5xx は {"error": ...} の JSON です。
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, message := toHTTPError(err)
	if status >= http.StatusInternalServerError {
		log.Printf("http: %s %s: %v", r.Method, r.URL.Path, err)
		writeJSON(w, status, map[string]string{"error": message})
		return
	}
	writeText(w, status, message)
}
