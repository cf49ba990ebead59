// Package admin checks the shared secret the edit form asks for. It decides
// whether the form is shown; it does not protect the replace endpoint.
package admin

import (
	"crypto/subtle"
	"net/http"

	"github.com/go-chi/render"
	"github.com/sirupsen/logrus"
)

type (
	VerifyRequest struct {
		Password string `json:"password"`
	}

	VerifyResponse struct {
		Success bool `json:"success"`
	}

	ErrorResponse struct {
		Error string `json:"error"`
	}
)

func HandleVerify(secret string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if secret == "" {
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, ErrorResponse{Error: "Admin secret not configured"})
			return
		}

		data := &VerifyRequest{}
		if err := render.DecodeJSON(r.Body, data); err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, ErrorResponse{Error: err.Error()})
			return
		}

		if subtle.ConstantTimeCompare([]byte(data.Password), []byte(secret)) != 1 {
			logrus.WithField("remote_addr", r.RemoteAddr).Warn("Incorrect admin password")
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, ErrorResponse{Error: "Incorrect password"})
			return
		}
		render.JSON(w, r, VerifyResponse{Success: true})
	}
}
