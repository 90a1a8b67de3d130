package workout

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

type workoutsRepo interface {
	Add(ctx context.Context, w Workout) (*Workout, error)
	List(ctx context.Context, limit int) ([]Workout, error)
	ListAll(ctx context.Context) ([]Workout, error)
	Delete(ctx context.Context, id string) error
}

type DeleteWorkoutResponse struct {
	Message string `json:"message"`
}

type Handler struct {
	repo  workoutsRepo
	instr *instrumentation.Instrumentation
}

func NewHandler(repo workoutsRepo, instr *instrumentation.Instrumentation) *Handler {
	return &Handler{
		repo:  repo,
		instr: instr,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/workouts", handler.HandleAdd).Methods("POST", "OPTIONS").Name("new-workout")
	router.HandleFunc("/workouts", handler.HandleList).Methods("GET", "OPTIONS").Name("list-workouts")
	router.HandleFunc("/workouts/today", handler.HandleListToday).Methods("GET", "OPTIONS").Name("list-today-workouts")
	router.HandleFunc("/workouts/{id}", handler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-workout")
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var workout Workout
	if err := json.NewDecoder(r.Body).Decode(&workout); err != nil {
		log.Tracef("new workout, unmarshal json params: %s", err)
		http.Error(w, "add workout failed", http.StatusBadRequest)
		return
	}

	if workout.WorkoutType == "" {
		http.Error(w, "error, workout type empty", http.StatusBadRequest)
		return
	}

	now := time.Now().UTC()
	workout.ID = uuid.NewString()
	workout.CreatedAt = now
	if workout.Date.IsZero() {
		workout.Date = now
	}
	if workout.Intensity == "" {
		workout.Intensity = DefaultIntensity
	}

	addedWorkout, err := handler.repo.Add(r.Context(), workout)
	if err != nil {
		log.Errorf("failed to add new workout [%s]: %s", workout.WorkoutType, err)
		http.Error(w, "error, failed to add new workout", http.StatusInternalServerError)
		return
	}

	if handler.instr != nil {
		handler.instr.CounterWorkouts.Inc()
	}

	workoutJson, err := json.Marshal(addedWorkout)
	if err != nil {
		log.Errorf("failed to marshal new workout: %s", err)
		http.Error(w, "error, failed to add new workout", http.StatusInternalServerError)
		return
	}

	log.Debugf("new workout added: %s", addedWorkout.ID)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, workoutJson, http.StatusCreated)
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

	workouts, err := handler.repo.List(r.Context(), limit)
	if err != nil {
		log.Errorf("list workouts error: %s", err)
		http.Error(w, "failed to get workouts", http.StatusInternalServerError)
		return
	}

	workoutsJson, err := json.Marshal(workouts)
	if err != nil {
		log.Errorf("marshal workouts error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, workoutsJson)
}

func (handler *Handler) HandleListToday(w http.ResponseWriter, r *http.Request) {
	workouts, err := handler.repo.ListAll(r.Context())
	if err != nil {
		log.Errorf("list today workouts error: %s", err)
		http.Error(w, "failed to get workouts", http.StatusInternalServerError)
		return
	}

	dayStart, dayEnd := pkg.DayWindow(time.Now())
	todayWorkouts := make([]Workout, 0)
	for _, workout := range workouts {
		if pkg.InWindow(workout.Date, dayStart, dayEnd) {
			todayWorkouts = append(todayWorkouts, workout)
		}
	}

	workoutsJson, err := json.Marshal(todayWorkouts)
	if err != nil {
		log.Errorf("marshal today workouts error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, workoutsJson)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]
	if id == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}

	if err := handler.repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrWorkoutNotFound) {
			log.Debugf("workout %s not found", id)
			http.Error(w, "workout not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to delete workout %s: %s", id, err)
		http.Error(w, "workout not deleted", http.StatusInternalServerError)
		return
	}

	deleteRespJson, err := json.Marshal(DeleteWorkoutResponse{
		Message: "Workout deleted successfully",
	})
	if err != nil {
		log.Errorf("failed to marshal delete response: %s", err)
		http.Error(w, "failed to marshal delete response", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, string(deleteRespJson))
}
