package workout

import (
	"context"
	"sort"
)

type repoMock struct {
	workouts map[string]Workout
}

func NewMockWorkoutsRepo() *repoMock {
	return &repoMock{
		workouts: make(map[string]Workout),
	}
}

func (r *repoMock) Add(_ context.Context, w Workout) (*Workout, error) {
	r.workouts[w.ID] = w
	return &w, nil
}

func (r *repoMock) List(ctx context.Context, limit int) ([]Workout, error) {
	all, _ := r.ListAll(ctx)
	sort.Slice(all, func(i, j int) bool {
		return all[i].Date.After(all[j].Date)
	})
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (r *repoMock) ListAll(context.Context) ([]Workout, error) {
	workouts := make([]Workout, 0, len(r.workouts))
	for _, w := range r.workouts {
		workouts = append(workouts, w)
	}
	return workouts, nil
}

func (r *repoMock) Delete(_ context.Context, id string) error {
	if _, ok := r.workouts[id]; !ok {
		return ErrWorkoutNotFound
	}
	delete(r.workouts, id)
	return nil
}
