package authenticating

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/bulksheet-generator/internal/domain"
	"github.com/vfg2006/bulksheet-generator/pkg/apiErrors"
	"golang.org/x/crypto/bcrypt"
)

const (
	issuer          = "bulksheet-generator"
	DefaultTokenTTL = 24 * time.Hour
)

// Authenticator emite e valida os tokens de envio de planilhas
type Authenticator interface {
	IssueToken(subject string, scopes []string, ttl time.Duration) (string, error)
	ValidateToken(tokenString string) (*domain.Claims, error)
	Login(subject, password string) (string, error)
}

type Service struct {
	secret    []byte
	operators map[string]string
	now       func() time.Time
}

// Option configura o Service
type Option func(*Service)

// WithOperators registra os operadores que podem obter token por senha (nome -> hash bcrypt)
func WithOperators(operators map[string]string) Option {
	return func(s *Service) {
		for name, hash := range operators {
			s.operators[strings.ToLower(strings.TrimSpace(name))] = hash
		}
	}
}

func NewService(secret string, opts ...Option) Authenticator {
	s := &Service{
		secret:    []byte(secret),
		operators: make(map[string]string),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// HashPassword gera o hash bcrypt usado em AUTH_OPERATORS
func HashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", NewAuthError(ErrMissingPassword, apiErrors.ErrMissingRequiredData, "")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Login confere a senha do operador e emite um token com todos os escopos
func (s *Service) Login(subject, password string) (string, error) {
	name := strings.ToLower(strings.TrimSpace(subject))
	if name == "" || password == "" {
		return "", NewAuthError(ErrMissingPassword, apiErrors.ErrMissingRequiredData, "subject and password are required")
	}

	hash, ok := s.operators[name]
	if !ok {
		return "", NewAuthError(ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, "")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		logrus.WithField("subject", name).Warn("Senha incorreta")
		return "", NewAuthError(ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, "")
	}

	return s.IssueToken(name, nil, DefaultTokenTTL)
}

// IssueToken gera um token HS256. Sem escopos, o token vale para envio e para a caixa de entrada.
func (s *Service) IssueToken(subject string, scopes []string, ttl time.Duration) (string, error) {
	if strings.TrimSpace(subject) == "" {
		return "", NewAuthError(ErrMissingSubject, apiErrors.ErrMissingRequiredData, "")
	}
	if len(s.secret) == 0 {
		return "", NewAuthError(ErrMissingSecret, apiErrors.ErrInternalServer, "")
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	if len(scopes) == 0 {
		scopes = []string{domain.ScopeUpload, domain.ScopeInbox}
	}

	now := s.now()
	claims := domain.Claims{
		Scopes: scopes,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", NewAuthError(err, apiErrors.ErrInternalServer, "error signing token")
	}

	logrus.WithFields(logrus.Fields{
		"subject": subject,
		"scopes":  scopes,
		"expires": claims.ExpiresAt.Time,
	}).Info("Token de envio emitido")

	return signed, nil
}

func (s *Service) ValidateToken(tokenString string) (*domain.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithIssuer(issuer), jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, NewAuthError(ErrExpiredToken, apiErrors.ErrExpiredToken, "")
		}
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, err.Error())
	}

	if claims, ok := token.Claims.(*domain.Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, "")
}
