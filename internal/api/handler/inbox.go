package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/bulksheet-generator/pkg/apiErrors"
)

// InboxSweeper é a parte do agendador da caixa de entrada exposta pela API
type InboxSweeper interface {
	TriggerManualSync() bool
	GetStatus() map[string]any
}

// RunInboxSweep dispara manualmente a varredura da caixa de entrada
func RunInboxSweep(sweeper InboxSweeper) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunInboxSweep")

		if sweeper == nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço da caixa de entrada não disponível", nil)
			return
		}

		if !sweeper.TriggerManualSync() {
			apiErrors.WriteError(w, apiErrors.ErrBusy, "Varredura já em andamento", nil)
			return
		}

		writeJSON(w, http.StatusAccepted, map[string]any{
			"message": "Varredura iniciada com sucesso",
		})
	}
}

// GetInboxStatus retorna o status da varredura e o relatório da última execução
func GetInboxStatus(sweeper InboxSweeper) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if sweeper == nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço da caixa de entrada não disponível", nil)
			return
		}

		writeJSON(w, http.StatusOK, sweeper.GetStatus())
	}
}
