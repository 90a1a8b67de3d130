package profile

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

type profilesRepo interface {
	Add(ctx context.Context, p *UserProfile) (*UserProfile, error)
	GetCurrent(ctx context.Context) (*UserProfile, error)
	Update(ctx context.Context, id string, params UpdateParams) (*UserProfile, error)
}

type Handler struct {
	repo profilesRepo
}

func NewHandler(repo profilesRepo) *Handler {
	return &Handler{
		repo: repo,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/profile", handler.HandleCreate).Methods("POST", "OPTIONS").Name("new-profile")
	router.HandleFunc("/profile", handler.HandleGet).Methods("GET", "OPTIONS").Name("get-profile")
	router.HandleFunc("/profile/{id}", handler.HandleUpdate).Methods("PUT", "OPTIONS").Name("update-profile")
}

// profileRequest carries the client-settable profile fields.
// Pointer targets keep "absent" distinguishable from an explicit zero,
// absent targets fall back to the defaults.
type profileRequest struct {
	Name           string   `json:"name"`
	Age            *int     `json:"age"`
	Weight         *float64 `json:"weight"`
	Height         *float64 `json:"height"`
	TargetCalories *int     `json:"target_calories"`
	TargetProtein  *int     `json:"target_protein"`
	TargetCarbs    *int     `json:"target_carbs"`
	TargetFats     *int     `json:"target_fats"`
	Goal           string   `json:"goal"`
}

func (req profileRequest) targets() (calories, protein, carbs, fats int) {
	calories, protein, carbs, fats =
		DefaultTargetCalories, DefaultTargetProtein, DefaultTargetCarbs, DefaultTargetFats
	if req.TargetCalories != nil {
		calories = *req.TargetCalories
	}
	if req.TargetProtein != nil {
		protein = *req.TargetProtein
	}
	if req.TargetCarbs != nil {
		carbs = *req.TargetCarbs
	}
	if req.TargetFats != nil {
		fats = *req.TargetFats
	}
	return calories, protein, carbs, fats
}

func (handler *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req profileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("new profile, unmarshal json params: %s", err)
		http.Error(w, "create profile failed", http.StatusBadRequest)
		return
	}

	if req.Name == "" {
		http.Error(w, "error, profile name empty", http.StatusBadRequest)
		return
	}

	calories, protein, carbs, fats := req.targets()
	goal := req.Goal
	if goal == "" {
		goal = DefaultGoal
	}

	p := &UserProfile{
		ID:             uuid.NewString(),
		Name:           req.Name,
		Age:            req.Age,
		Weight:         req.Weight,
		Height:         req.Height,
		TargetCalories: calories,
		TargetProtein:  protein,
		TargetCarbs:    carbs,
		TargetFats:     fats,
		Goal:           goal,
		CreatedAt:      time.Now().UTC(),
	}

	addedProfile, err := handler.repo.Add(r.Context(), p)
	if err != nil {
		log.Errorf("failed to add new profile [%s]: %s", p.Name, err)
		http.Error(w, "error, failed to add new profile", http.StatusInternalServerError)
		return
	}

	profileJson, err := json.Marshal(addedProfile)
	if err != nil {
		log.Errorf("failed to marshal new profile: %s", err)
		http.Error(w, "error, failed to add new profile", http.StatusInternalServerError)
		return
	}

	log.Debugf("new profile added: %s", addedProfile.ID)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, profileJson, http.StatusCreated)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	p, err := handler.repo.GetCurrent(r.Context())
	switch {
	case errors.Is(err, ErrProfileNotFound):
		// no profile created yet, serve the synthesized default
		p = Default()
	case err != nil:
		log.Errorf("failed to get current profile: %s", err)
		http.Error(w, "failed to get profile", http.StatusInternalServerError)
		return
	}

	profileJson, err := json.Marshal(p)
	if err != nil {
		log.Errorf("failed to marshal profile: %s", err)
		http.Error(w, "failed to marshal profile", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, profileJson)
}

func (handler *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	vars := mux.Vars(r)
	id := vars["id"]
	if id == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}

	var req profileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("update profile, unmarshal json params: %s", err)
		http.Error(w, "update profile failed", http.StatusBadRequest)
		return
	}

	if req.Name == "" {
		http.Error(w, "error, profile name empty", http.StatusBadRequest)
		return
	}

	calories, protein, carbs, fats := req.targets()
	goal := req.Goal
	if goal == "" {
		goal = DefaultGoal
	}

	updatedProfile, err := handler.repo.Update(r.Context(), id, UpdateParams{
		Name:           req.Name,
		Age:            req.Age,
		Weight:         req.Weight,
		Height:         req.Height,
		TargetCalories: calories,
		TargetProtein:  protein,
		TargetCarbs:    carbs,
		TargetFats:     fats,
		Goal:           goal,
	})
	if errors.Is(err, ErrProfileNotFound) {
		log.Debugf("profile %s not found", id)
		http.Error(w, "profile not found", http.StatusNotFound)
		return
	} else if err != nil {
		log.Errorf("failed to update profile %s: %s", id, err)
		http.Error(w, "error, failed to update profile", http.StatusInternalServerError)
		return
	}

	profileJson, err := json.Marshal(updatedProfile)
	if err != nil {
		log.Errorf("failed to marshal updated profile: %s", err)
		http.Error(w, "failed to marshal updated profile", http.StatusInternalServerError)
		return
	}

	log.Debugf("profile updated: %s", id)
	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, profileJson)
}
