package dashboard

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/mvelkov/fittrack/pkg"
)

type Handler struct {
	analyzer *Analyzer
}

func NewHandler(analyzer *Analyzer) *Handler {
	return &Handler{analyzer: analyzer}
}

func (h *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/dashboard/stats", h.HandleStats).Methods("GET", "OPTIONS").Name("dashboard-stats")
}

func (h *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.analyzer.Stats(r.Context())
	if err != nil {
		log.Errorf("dashboard stats: %s", err)
		http.Error(w, "failed to get dashboard stats", http.StatusInternalServerError)
		return
	}

	statsJson, err := json.Marshal(stats)
	if err != nil {
		log.Errorf("marshal dashboard stats: %s", err)
		http.Error(w, "marshal dashboard stats error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, statsJson)
}
