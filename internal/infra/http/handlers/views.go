package handlers

import (
	"bytes"
	"embed"
	"html/template"
	"log/slog"
	"net/http"
)

//go:embed views/*.html
var viewFS embed.FS

var views = template.Must(template.ParseFS(viewFS, "views/*.html"))

func renderView(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := views.ExecuteTemplate(&buf, name, data); err != nil {
		slog.Error("rendering view", "view", name, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeHTML(w, status, buf.Bytes())
}

func writeHTML(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(body)
}
