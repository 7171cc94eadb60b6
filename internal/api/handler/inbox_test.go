package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/bulksheet-generator/internal/api/handler/router"
	"github.com/vfg2006/bulksheet-generator/pkg/apiErrors"
	"github.com/vfg2006/bulksheet-generator/pkg/log"
)

type stubSweeper struct {
	accept    bool
	triggered int
	status    map[string]any
}

func (s *stubSweeper) TriggerManualSync() bool {
	s.triggered++
	return s.accept
}

func (s *stubSweeper) GetStatus() map[string]any {
	return s.status
}

func TestInboxRoutes(t *testing.T) {
	log.SetupTestLogger()

	tests := []struct {
		name     string
		method   string
		path     string
		sweeper  *stubSweeper
		validate func(t *testing.T, rec *httptest.ResponseRecorder, sweeper *stubSweeper)
	}{
		{
			name:    "Disparo manual aceito - 202",
			method:  http.MethodPost,
			path:    "/v1/inbox/run",
			sweeper: &stubSweeper{accept: true},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder, sweeper *stubSweeper) {
				assert.Equal(t, http.StatusAccepted, rec.Code)
				assert.Equal(t, 1, sweeper.triggered)
			},
		},
		{
			name:    "Varredura em andamento - 409",
			method:  http.MethodPost,
			path:    "/v1/inbox/run",
			sweeper: &stubSweeper{accept: false},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder, sweeper *stubSweeper) {
				assert.Equal(t, http.StatusConflict, rec.Code)
				assert.Equal(t, apiErrors.ErrBusy, decodeAPIError(t, rec).Code)
			},
		},
		{
			name:    "Status da varredura",
			method:  http.MethodGet,
			path:    "/v1/inbox/status",
			sweeper: &stubSweeper{status: map[string]any{"is_running": false, "enabled": true}},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder, sweeper *stubSweeper) {
				assert.Equal(t, http.StatusOK, rec.Code)

				var body map[string]any
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, false, body["is_running"])
				assert.Equal(t, true, body["enabled"])
			},
		},
		{
			name:    "Rota inexistente - 404 no formato da API",
			method:  http.MethodGet,
			path:    "/v1/nada",
			sweeper: &stubSweeper{},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder, sweeper *stubSweeper) {
				assert.Equal(t, http.StatusNotFound, rec.Code)
				assert.Equal(t, apiErrors.ErrNotFound, decodeAPIError(t, rec).Code)
			},
		},
		{
			name:    "Método não suportado - 405 no formato da API",
			method:  http.MethodDelete,
			path:    "/v1/inbox/run",
			sweeper: &stubSweeper{},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder, sweeper *stubSweeper) {
				assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
				assert.Equal(t, apiErrors.ErrMethodNotAllowed, decodeAPIError(t, rec).Code)
				assert.Zero(t, sweeper.triggered)
			},
		},
		{
			name:    "Healthcheck",
			method:  http.MethodGet,
			path:    "/healthcheck",
			sweeper: &stubSweeper{},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder, sweeper *stubSweeper) {
				assert.Equal(t, http.StatusOK, rec.Code)
				assert.Contains(t, rec.Body.String(), `"status":"ok"`)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt := router.New(
				router.WithRoutes(Healthcheck()...),
				router.WithRoutes(Inbox(tt.sweeper, false)...),
			)

			rec := httptest.NewRecorder()
			rt.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))

			tt.validate(t, rec, tt.sweeper)
		})
	}
}

func TestInboxHandlers_NoSweeper(t *testing.T) {
	log.SetupTestLogger()

	rec := httptest.NewRecorder()
	RunInboxSweep(nil).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/inbox/run", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	rec = httptest.NewRecorder()
	GetInboxStatus(nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/inbox/status", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
