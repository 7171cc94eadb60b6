package handler

import (
	"net/http"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/bulksheet-generator/internal/usecases/authenticating"
	"github.com/vfg2006/bulksheet-generator/pkg/apiErrors"
)

type LoginRequest struct {
	Subject  string `json:"subject"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

// Login troca a senha de um operador por um token de envio
func Login(authenticator authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		token, err := authenticator.Login(req.Subject, req.Password)
		if err != nil {
			var authErr *authenticating.AuthError
			if errors.As(err, &authErr) {
				apiErrors.WriteError(w, authErr.Code, authErr.Error(), nil)
				return
			}

			logrus.WithError(err).Error("Erro ao autenticar operador")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao gerar token de autenticação", nil)
			return
		}

		writeJSON(w, http.StatusOK, LoginResponse{Token: token})
	}
}
