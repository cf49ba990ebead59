package portfolio

import (
	"context"
	"errors"
	"net/http"
	"portfolio-complete/core"

	"github.com/go-chi/render"
)

type (
	DocumentService interface {
		Fetch(ctx context.Context) (*core.Document, error)
		Replace(ctx context.Context, document *core.Document) error
	}

	ErrorResponse struct {
		Error string `json:"error"`
	}

	ReplaceResponse struct {
		Success bool `json:"success"`
	}
)

const notFoundMessage = "No data found"

func HandleGet(svc DocumentService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		document, err := svc.Fetch(r.Context())
		if err != nil {
			if errors.Is(err, core.ErrNotFound) {
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, ErrorResponse{Error: notFoundMessage})
				return
			}
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, ErrorResponse{Error: err.Error()})
			return
		}
		render.JSON(w, r, document)
	}
}

// HandleReplace stores the request body as the new document. Fields are not
// validated; a body that is not a JSON document is rejected before the store.
func HandleReplace(svc DocumentService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		document := new(core.Document)
		if err := render.DecodeJSON(r.Body, document); err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, ErrorResponse{Error: err.Error()})
			return
		}
		if err := svc.Replace(r.Context(), document); err != nil {
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, ErrorResponse{Error: err.Error()})
			return
		}
		render.JSON(w, r, ReplaceResponse{Success: true})
	}
}
