package routes

import (
	"net/http"

	"flipbot/flipbot/public"

	"github.com/go-chi/chi/v5"
)

// StaticRoutes serves the embedded browser page.
func StaticRoutes() chi.Router {
	r := chi.NewRouter()
	fs := http.FileServer(http.FS(public.Files))
	r.Get("/", fs.ServeHTTP)
	r.Get("/flipAnalyzer.js", fs.ServeHTTP)
	return r
}
