package controllers

import (
	"mime"
	"net/http"
	"strings"

	"github.com/angelmondragon/foodtrack-backend/api/responses"
	"github.com/angelmondragon/foodtrack-backend/internal/imports"
	pkgerrors "github.com/angelmondragon/foodtrack-backend/pkg/errors"
	"github.com/angelmondragon/foodtrack-backend/pkg/logger"
)

// BulkImportFoods handles POST /foods/bulk-import. text/csv bodies are read as CSV with a
// header row; anything else must be a JSON {"data": [...]} envelope. Per-row failures are
// reported in the body with a 200.
func BulkImportFoods(svc imports.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "import service unavailable"))
			return
		}
		if r.Body == nil || r.Body == http.NoBody {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Validation("request body is required"))
			return
		}

		body := http.MaxBytesReader(w, r.Body, imports.MaxBodyBytes)
		defer body.Close()

		var (
			report *imports.Report
			err    error
		)
		if isCSV(r.Header.Get("Content-Type")) {
			report, err = svc.ImportCSV(r.Context(), body)
		} else {
			report, err = svc.ImportJSON(r.Context(), body)
		}
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, report)
	}
}

func isCSV(contentType string) bool {
	if contentType == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	mediaType = strings.ToLower(mediaType)
	return mediaType == "text/csv" || mediaType == "application/csv"
}
