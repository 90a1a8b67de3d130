package nutrition

import (
	"context"
	"sort"
)

type repoMock struct {
	logs map[string]Log
}

func NewMockLogsRepo() *repoMock {
	return &repoMock{
		logs: make(map[string]Log),
	}
}

func (r *repoMock) Add(_ context.Context, l Log) (*Log, error) {
	r.logs[l.ID] = l
	return &l, nil
}

func (r *repoMock) List(ctx context.Context, limit int) ([]Log, error) {
	all, _ := r.ListAll(ctx)
	sort.Slice(all, func(i, j int) bool {
		return all[i].Date.After(all[j].Date)
	})
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (r *repoMock) ListAll(context.Context) ([]Log, error) {
	logs := make([]Log, 0, len(r.logs))
	for _, l := range r.logs {
		logs = append(logs, l)
	}
	return logs, nil
}

func (r *repoMock) Delete(_ context.Context, id string) error {
	if _, ok := r.logs[id]; !ok {
		return ErrLogNotFound
	}
	delete(r.logs, id)
	return nil
}
