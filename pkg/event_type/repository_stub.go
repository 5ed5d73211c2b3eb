package event_type

import "context"

// RepositoryStub keeps the saved sequence in memory and counts saves.
type RepositoryStub struct {
	Stored  []EventType
	Saves   int
	SaveErr error
}

func NewRepositoryStub(stored ...EventType) *RepositoryStub {
	return &RepositoryStub{Stored: stored}
}

func (r *RepositoryStub) Load(ctx context.Context) []EventType {
	if len(r.Stored) == 0 {
		return DefaultEventTypes()
	}
	out := make([]EventType, len(r.Stored))
	copy(out, r.Stored)
	return out
}

func (r *RepositoryStub) Save(ctx context.Context, types []EventType) error {
	if r.SaveErr != nil {
		return r.SaveErr
	}
	r.Saves++
	r.Stored = make([]EventType, len(types))
	copy(r.Stored, types)
	return nil
}
