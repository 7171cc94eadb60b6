package domain

import (
	"github.com/golang-jwt/jwt/v5"
)

// Escopos aceitos nos tokens de envio
const (
	ScopeUpload = "bulksheet:upload"
	ScopeInbox  = "bulksheet:inbox"
)

type Claims struct {
	Scopes []string `json:"scopes,omitempty"`
	jwt.RegisteredClaims
}

// HasScope verifica se o token concede o escopo informado
func (c *Claims) HasScope(scope string) bool {
	for _, s := range c.Scopes {
		if s == scope {
			return true
		}
	}
	return false
}
