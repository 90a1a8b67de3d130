package plans

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/mvelkov/fittrack/pkg"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type plansRepo interface {
	Add(ctx context.Context, p WorkoutPlan) (*WorkoutPlan, error)
	List(ctx context.Context) ([]WorkoutPlan, error)
	Get(ctx context.Context, id string) (*WorkoutPlan, error)
}

type Handler struct {
	repo plansRepo
}

func NewHandler(repo plansRepo) *Handler {
	return &Handler{
		repo: repo,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/workout-plans", handler.HandleAdd).Methods("POST", "OPTIONS").Name("new-workout-plan")
	router.HandleFunc("/workout-plans", handler.HandleList).Methods("GET", "OPTIONS").Name("list-workout-plans")
	router.HandleFunc("/workout-plans/{id}", handler.HandleGet).Methods("GET", "OPTIONS").Name("get-workout-plan")
}

// planRequest mirrors WorkoutPlan minus the server-assigned fields.
// Pointer rest_seconds keeps an omitted value distinguishable from zero.
type planRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Difficulty  string `json:"difficulty"`
	Duration    int    `json:"duration"`
	Exercises   []struct {
		Name        string `json:"name"`
		Sets        int    `json:"sets"`
		Reps        int    `json:"reps"`
		RestSeconds *int   `json:"rest_seconds"`
	} `json:"exercises"`
	Category string `json:"category"`
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req planRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("new workout plan, unmarshal json params: %s", err)
		http.Error(w, "add workout plan failed", http.StatusBadRequest)
		return
	}

	if req.Name == "" {
		http.Error(w, "error, workout plan name empty", http.StatusBadRequest)
		return
	}

	exercises := make([]Exercise, 0, len(req.Exercises))
	for _, e := range req.Exercises {
		restSeconds := DefaultRestSeconds
		if e.RestSeconds != nil {
			restSeconds = *e.RestSeconds
		}
		exercises = append(exercises, Exercise{
			Name:        e.Name,
			Sets:        e.Sets,
			Reps:        e.Reps,
			RestSeconds: restSeconds,
		})
	}

	plan := WorkoutPlan{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		Difficulty:  req.Difficulty,
		Duration:    req.Duration,
		Exercises:   exercises,
		Category:    req.Category,
		CreatedAt:   time.Now().UTC(),
	}

	addedPlan, err := handler.repo.Add(r.Context(), plan)
	if err != nil {
		log.Errorf("failed to add new workout plan [%s]: %s", plan.Name, err)
		http.Error(w, "error, failed to add new workout plan", http.StatusInternalServerError)
		return
	}

	planJson, err := json.Marshal(addedPlan)
	if err != nil {
		log.Errorf("failed to marshal new workout plan: %s", err)
		http.Error(w, "error, failed to add new workout plan", http.StatusInternalServerError)
		return
	}

	log.Debugf("new workout plan added: %s", addedPlan.ID)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, planJson, http.StatusCreated)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	plans, err := handler.repo.List(r.Context())
	if err != nil {
		log.Errorf("list workout plans error: %s", err)
		http.Error(w, "failed to get workout plans", http.StatusInternalServerError)
		return
	}

	plansJson, err := json.Marshal(plans)
	if err != nil {
		log.Errorf("marshal workout plans error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, plansJson)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]
	if id == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}

	plan, err := handler.repo.Get(r.Context(), id)
	if errors.Is(err, ErrPlanNotFound) {
		log.Debugf("workout plan %s not found", id)
		http.Error(w, "workout plan not found", http.StatusNotFound)
		return
	} else if err != nil {
		log.Errorf("failed to get workout plan %s: %s", id, err)
		http.Error(w, "failed to get workout plan", http.StatusInternalServerError)
		return
	}

	planJson, err := json.Marshal(plan)
	if err != nil {
		log.Errorf("failed to marshal workout plan: %s", err)
		http.Error(w, "failed to marshal workout plan", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, planJson)
}
