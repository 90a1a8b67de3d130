package plans

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlansHandler_Add(t *testing.T) {
	repo := NewMockPlansRepo()
	handler := NewHandler(repo)

	body := `{
		"name": "Push Day",
		"description": "chest, shoulders, triceps",
		"difficulty": "intermediate",
		"duration": 60,
		"category": "strength",
		"exercises": [
			{"name": "bench press", "sets": 4, "reps": 8, "rest_seconds": 120},
			{"name": "overhead press", "sets": 3, "reps": 10}
		]
	}`
	req, err := http.NewRequest("POST", "/workout-plans", strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	handler.HandleAdd(rr, req)
	require.Equal(t, http.StatusCreated, rr.Code)

	var added WorkoutPlan
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &added))
	assert.NotEmpty(t, added.ID)
	assert.Equal(t, "Push Day", added.Name)
	require.Len(t, added.Exercises, 2)
	assert.Equal(t, 120, added.Exercises[0].RestSeconds)
	// omitted rest_seconds defaults to 60
	assert.Equal(t, DefaultRestSeconds, added.Exercises[1].RestSeconds)
}

func TestPlansHandler_List(t *testing.T) {
	repo := NewMockPlansRepo()
	handler := NewHandler(repo)

	_, err := repo.Add(context.Background(), WorkoutPlan{
		ID: "p1", Name: "Push Day", CreatedAt: time.Now().UTC(),
	})
	require.NoError(t, err)
	_, err = repo.Add(context.Background(), WorkoutPlan{
		ID: "p2", Name: "Pull Day", CreatedAt: time.Now().UTC(),
	})
	require.NoError(t, err)

	req, err := http.NewRequest("GET", "/workout-plans", nil)
	require.NoError(t, err)
	rr := httptest.NewRecorder()

	handler.HandleList(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var listed []WorkoutPlan
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &listed))
	require.Len(t, listed, 2)
	assert.Equal(t, "Push Day", listed[0].Name)
	assert.Equal(t, "Pull Day", listed[1].Name)
}

func TestPlansHandler_Get(t *testing.T) {
	repo := NewMockPlansRepo()
	handler := NewHandler(repo)

	_, err := repo.Add(context.Background(), WorkoutPlan{
		ID: "p1", Name: "Leg Day", CreatedAt: time.Now().UTC(),
	})
	require.NoError(t, err)

	req, err := http.NewRequest("GET", "/workout-plans/p1", nil)
	require.NoError(t, err)
	req = mux.SetURLVars(req, map[string]string{"id": "p1"})
	rr := httptest.NewRecorder()

	handler.HandleGet(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var plan WorkoutPlan
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &plan))
	assert.Equal(t, "Leg Day", plan.Name)
}

func TestPlansHandler_Get_notFound(t *testing.T) {
	handler := NewHandler(NewMockPlansRepo())

	req, err := http.NewRequest("GET", "/workout-plans/unknown", nil)
	require.NoError(t, err)
	req = mux.SetURLVars(req, map[string]string{"id": "unknown"})
	rr := httptest.NewRecorder()

	handler.HandleGet(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
