package plans

import "context"

type repoMock struct {
	plans map[string]WorkoutPlan
	order []string
}

func NewMockPlansRepo() *repoMock {
	return &repoMock{
		plans: make(map[string]WorkoutPlan),
	}
}

func (r *repoMock) Add(_ context.Context, p WorkoutPlan) (*WorkoutPlan, error) {
	r.plans[p.ID] = p
	r.order = append(r.order, p.ID)
	return &p, nil
}

func (r *repoMock) List(context.Context) ([]WorkoutPlan, error) {
	plans := make([]WorkoutPlan, 0, len(r.plans))
	for _, id := range r.order {
		plans = append(plans, r.plans[id])
	}
	return plans, nil
}

func (r *repoMock) Get(_ context.Context, id string) (*WorkoutPlan, error) {
	p, ok := r.plans[id]
	if !ok {
		return nil, ErrPlanNotFound
	}
	return &p, nil
}
