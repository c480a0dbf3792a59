package routes

import (
	"errors"
	"net/http"

	"flipbot/flipbot/controllers"
	"flipbot/flipbot/services/extractor"

	"github.com/go-chi/chi/v5"
	"github.com/rotisserie/eris"
)

// AnalyzeRoutes registers POST /analyze. Every other method gets a JSON 405.
func AnalyzeRoutes(ctrl *controllers.AnalyzeController, maxUploadBytes int64) chi.Router {
	r := chi.NewRouter()

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Post("/analyze", handleJSON(func(r *http.Request) (any, int, error) {
		manifest, upload, err := readAnalyzeForm(r, maxUploadBytes)
		if err != nil {
			return nil, http.StatusBadRequest, err
		}

		analysis, err := ctrl.Analyze(r.Context(), manifest, upload)
		if err != nil {
			return nil, http.StatusInternalServerError, err
		}
		return analysis.Result, http.StatusOK, nil
	}))

	return r
}

// readAnalyzeForm accepts multipart and url-encoded forms. The returned
// upload, if any, is a temporary copy the caller must release.
func readAnalyzeForm(r *http.Request, maxUploadBytes int64) (string, *extractor.Upload, error) {
	r.Body = http.MaxBytesReader(nil, r.Body, maxUploadBytes)

	err := r.ParseMultipartForm(maxUploadBytes)
	if errors.Is(err, http.ErrNotMultipart) {
		if err := r.ParseForm(); err != nil {
			return "", nil, eris.Wrap(err, "parse form")
		}
		return r.PostFormValue("manifest"), nil, nil
	}
	if err != nil {
		return "", nil, eris.Wrap(err, "parse multipart form")
	}
	defer r.MultipartForm.RemoveAll()

	manifest := r.PostFormValue("manifest")
	files := r.MultipartForm.File["file"]
	if len(files) == 0 {
		return manifest, nil, nil
	}
	upload, err := extractor.SaveMultipart(files[0], "")
	if err != nil {
		return "", nil, err
	}
	return manifest, upload, nil
}
