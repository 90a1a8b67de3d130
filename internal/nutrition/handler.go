package nutrition

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/mvelkov/fittrack/internal/instrumentation"
	"github.com/mvelkov/fittrack/pkg"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

const defaultListLimit = 50

type logsRepo interface {
	Add(ctx context.Context, l Log) (*Log, error)
	List(ctx context.Context, limit int) ([]Log, error)
	ListAll(ctx context.Context) ([]Log, error)
	Delete(ctx context.Context, id string) error
}

type DeleteLogResponse struct {
	Message string `json:"message"`
}

type Handler struct {
	repo  logsRepo
	instr *instrumentation.Instrumentation
}

func NewHandler(repo logsRepo, instr *instrumentation.Instrumentation) *Handler {
	return &Handler{
		repo:  repo,
		instr: instr,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/nutrition", handler.HandleAdd).Methods("POST", "OPTIONS").Name("new-nutrition-log")
	router.HandleFunc("/nutrition", handler.HandleList).Methods("GET", "OPTIONS").Name("list-nutrition-logs")
	router.HandleFunc("/nutrition/today", handler.HandleListToday).Methods("GET", "OPTIONS").Name("list-today-nutrition-logs")
	router.HandleFunc("/nutrition/{id}", handler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-nutrition-log")
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var nutritionLog Log
	if err := json.NewDecoder(r.Body).Decode(&nutritionLog); err != nil {
		log.Tracef("new nutrition log, unmarshal json params: %s", err)
		http.Error(w, "add nutrition log failed", http.StatusBadRequest)
		return
	}

	if nutritionLog.MealName == "" {
		http.Error(w, "error, meal name empty", http.StatusBadRequest)
		return
	}

	now := time.Now().UTC()
	nutritionLog.ID = uuid.NewString()
	nutritionLog.CreatedAt = now
	if nutritionLog.Date.IsZero() {
		nutritionLog.Date = now
	}

	addedLog, err := handler.repo.Add(r.Context(), nutritionLog)
	if err != nil {
		log.Errorf("failed to add new nutrition log [%s]: %s", nutritionLog.MealName, err)
		http.Error(w, "error, failed to add new nutrition log", http.StatusInternalServerError)
		return
	}

	if handler.instr != nil {
		handler.instr.CounterNutritionLogs.Inc()
	}

	logJson, err := json.Marshal(addedLog)
	if err != nil {
		log.Errorf("failed to marshal new nutrition log: %s", err)
		http.Error(w, "error, failed to add new nutrition log", http.StatusInternalServerError)
		return
	}

	log.Debugf("new nutrition log added: %s", addedLog.ID)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, logJson, http.StatusCreated)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	limit := defaultListLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsedLimit, err := strconv.Atoi(limitStr)
		if err != nil || parsedLimit < 1 {
			http.Error(w, "invalid limit param", http.StatusBadRequest)
			return
		}
		limit = parsedLimit
	}

	logs, err := handler.repo.List(r.Context(), limit)
	if err != nil {
		log.Errorf("list nutrition logs error: %s", err)
		http.Error(w, "failed to get nutrition logs", http.StatusInternalServerError)
		return
	}

	logsJson, err := json.Marshal(logs)
	if err != nil {
		log.Errorf("marshal nutrition logs error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, logsJson)
}

func (handler *Handler) HandleListToday(w http.ResponseWriter, r *http.Request) {
	logs, err := handler.repo.ListAll(r.Context())
	if err != nil {
		log.Errorf("list today nutrition logs error: %s", err)
		http.Error(w, "failed to get nutrition logs", http.StatusInternalServerError)
		return
	}

	dayStart, dayEnd := pkg.DayWindow(time.Now())
	todayLogs := make([]Log, 0)
	for _, nutritionLog := range logs {
		if pkg.InWindow(nutritionLog.Date, dayStart, dayEnd) {
			todayLogs = append(todayLogs, nutritionLog)
		}
	}

	logsJson, err := json.Marshal(todayLogs)
	if err != nil {
		log.Errorf("marshal today nutrition logs error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, logsJson)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]
	if id == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}

	if err := handler.repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrLogNotFound) {
			log.Debugf("nutrition log %s not found", id)
			http.Error(w, "nutrition log not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to delete nutrition log %s: %s", id, err)
		http.Error(w, "nutrition log not deleted", http.StatusInternalServerError)
		return
	}

	deleteRespJson, err := json.Marshal(DeleteLogResponse{
		Message: "Nutrition log deleted successfully",
	})
	if err != nil {
		log.Errorf("failed to marshal delete response: %s", err)
		http.Error(w, "failed to marshal delete response", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, string(deleteRespJson))
}
