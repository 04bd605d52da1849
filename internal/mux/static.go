package mux

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/sirupsen/logrus"
)

//go:embed web
var webFS embed.FS

// getIndex serves the embedded single-page front end
func (m *Mux) getIndex() http.HandlerFunc {
	page, err := webFS.ReadFile("web/index.html")
	if err != nil {
		// the page is embedded at compile time, so this cannot happen
		logrus.WithError(err).Fatal("could not read embedded index.html")
	}

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(page)
	}
}

// getStatic serves the embedded front-end assets under /static/
func (m *Mux) getStatic() http.Handler {
	sub, err := fs.Sub(webFS, "web")
	if err != nil {
		logrus.WithError(err).Fatal("could not open embedded web assets")
	}

	return http.FileServer(http.FS(sub))
}
