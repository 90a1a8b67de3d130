package profile

import "context"

type repoMock struct {
	profiles map[string]*UserProfile
	order    []string
}

func NewMockProfilesRepo() *repoMock {
	return &repoMock{
		profiles: make(map[string]*UserProfile),
	}
}

func (r *repoMock) Add(_ context.Context, p *UserProfile) (*UserProfile, error) {
	r.profiles[p.ID] = p
	r.order = append(r.order, p.ID)
	return p, nil
}

func (r *repoMock) GetCurrent(_ context.Context) (*UserProfile, error) {
	var current *UserProfile
	for _, id := range r.order {
		p := r.profiles[id]
		if current == nil || !p.CreatedAt.Before(current.CreatedAt) {
			current = p
		}
	}
	if current == nil {
		return nil, ErrProfileNotFound
	}
	return current, nil
}

func (r *repoMock) Update(_ context.Context, id string, params UpdateParams) (*UserProfile, error) {
	p, ok := r.profiles[id]
	if !ok {
		return nil, ErrProfileNotFound
	}
	p.Name = params.Name
	p.Age = params.Age
	p.Weight = params.Weight
	p.Height = params.Height
	p.TargetCalories = params.TargetCalories
	p.TargetProtein = params.TargetProtein
	p.TargetCarbs = params.TargetCarbs
	p.TargetFats = params.TargetFats
	p.Goal = params.Goal
	return p, nil
}
