package workout

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mvelkov/fittrack/internal/instrumentation"
	"github.com/mvelkov/fittrack/pkg"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// TestMain will run goleak after all tests have been run in the package
// to detect any goroutine leaks
func TestMain(m *testing.M) {
	m.Run()
	goleak.VerifyTestMain(m)
}

func TestWorkoutHandler_Add(t *testing.T) {
	repo := NewMockWorkoutsRepo()
	instr := instrumentation.NewTestInstrumentation()
	handler := NewHandler(repo, instr)

	body := `{"workout_type":"running","duration":30,"calories_burned":300}`
	req, err := http.NewRequest("POST", "/workouts", strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	handler.HandleAdd(rr, req)
	require.Equal(t, http.StatusCreated, rr.Code)

	var added Workout
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &added))
	assert.NotEmpty(t, added.ID)
	assert.Equal(t, "running", added.WorkoutType)
	assert.Equal(t, 30, added.Duration)
	assert.Equal(t, 300, added.CaloriesBurned)
	// omitted fields fall back to defaults
	assert.Equal(t, DefaultIntensity, added.Intensity)
	assert.False(t, added.Date.IsZero())
	assert.Equal(t, float64(1), testutil.ToFloat64(instr.CounterWorkouts))
}

func TestWorkoutHandler_Add_roundTrip(t *testing.T) {
	repo := NewMockWorkoutsRepo()
	handler := NewHandler(repo, nil)

	body := `{"workout_type":"cycling","duration":30,"calories_burned":300,"intensity":"high","notes":"hill sprints"}`
	req, err := http.NewRequest("POST", "/workouts", strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	handler.HandleAdd(rr, req)
	require.Equal(t, http.StatusCreated, rr.Code)

	listReq, err := http.NewRequest("GET", "/workouts", nil)
	require.NoError(t, err)
	listRr := httptest.NewRecorder()
	handler.HandleList(listRr, listReq)
	require.Equal(t, http.StatusOK, listRr.Code)

	var listed []Workout
	require.NoError(t, json.Unmarshal(listRr.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, "cycling", listed[0].WorkoutType)
	assert.Equal(t, 30, listed[0].Duration)
	assert.Equal(t, 300, listed[0].CaloriesBurned)
	assert.Equal(t, "high", listed[0].Intensity)
	assert.Equal(t, "hill sprints", listed[0].Notes)
}

func TestWorkoutHandler_List_limit(t *testing.T) {
	repo := NewMockWorkoutsRepo()
	handler := NewHandler(repo, nil)

	now := time.Now().UTC()
	for i := 0; i < 60; i++ {
		_, err := repo.Add(context.Background(), Workout{
			ID:          fmt.Sprintf("w%d", i),
			WorkoutType: gofakeit.RandomString([]string{"running", "cycling", "swimming"}),
			Date:        now.Add(-time.Duration(i) * time.Hour),
			CreatedAt:   now,
		})
		require.NoError(t, err)
	}

	// default limit is 50
	req, err := http.NewRequest("GET", "/workouts", nil)
	require.NoError(t, err)
	rr := httptest.NewRecorder()
	handler.HandleList(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var listed []Workout
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &listed))
	assert.Len(t, listed, 50)
	// most recent date first
	assert.Equal(t, "w0", listed[0].ID)

	req, err = http.NewRequest("GET", "/workouts?limit=10", nil)
	require.NoError(t, err)
	rr = httptest.NewRecorder()
	handler.HandleList(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	listed = nil
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &listed))
	assert.Len(t, listed, 10)
}

func TestWorkoutHandler_ListToday(t *testing.T) {
	repo := NewMockWorkoutsRepo()
	handler := NewHandler(repo, nil)

	dayStart, _ := pkg.DayWindow(time.Now())
	_, err := repo.Add(context.Background(), Workout{
		ID: "today", WorkoutType: "running", Date: dayStart.Add(10 * time.Hour),
	})
	require.NoError(t, err)
	_, err = repo.Add(context.Background(), Workout{
		ID: "yesterday", WorkoutType: "running", Date: dayStart.Add(-2 * time.Hour),
	})
	require.NoError(t, err)
	_, err = repo.Add(context.Background(), Workout{
		ID: "tomorrow", WorkoutType: "running", Date: dayStart.Add(25 * time.Hour),
	})
	require.NoError(t, err)

	req, err := http.NewRequest("GET", "/workouts/today", nil)
	require.NoError(t, err)
	rr := httptest.NewRecorder()

	handler.HandleListToday(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var listed []Workout
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, "today", listed[0].ID)
}

func TestWorkoutHandler_Delete(t *testing.T) {
	repo := NewMockWorkoutsRepo()
	handler := NewHandler(repo, nil)

	_, err := repo.Add(context.Background(), Workout{ID: "w1", WorkoutType: "running"})
	require.NoError(t, err)
	_, err = repo.Add(context.Background(), Workout{ID: "w2", WorkoutType: "cycling"})
	require.NoError(t, err)

	req, err := http.NewRequest("DELETE", "/workouts/w1", nil)
	require.NoError(t, err)
	req = mux.SetURLVars(req, map[string]string{"id": "w1"})
	rr := httptest.NewRecorder()

	handler.HandleDelete(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp DeleteWorkoutResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "Workout deleted successfully", resp.Message)

	// exactly one record removed, w2 still listed
	remaining, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "w2", remaining[0].ID)
}

func TestWorkoutHandler_Delete_notFound(t *testing.T) {
	handler := NewHandler(NewMockWorkoutsRepo(), nil)

	req, err := http.NewRequest("DELETE", "/workouts/unknown", nil)
	require.NoError(t, err)
	req = mux.SetURLVars(req, map[string]string{"id": "unknown"})
	rr := httptest.NewRecorder()

	handler.HandleDelete(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
