package mortgage

import (
	"context"
)

type RepositoryStub struct {
	configs map[int]Config
}

func NewStubRepository() *RepositoryStub {
	return &RepositoryStub{configs: map[int]Config{}}
}

func (s *RepositoryStub) GetConfig(ctx context.Context, householdId int) (Config, error) {
	if cfg, exists := s.configs[householdId]; exists {
		return cfg, nil
	}
	return Config{}, ErrConfigNotFound
}

func (s *RepositoryStub) SaveConfig(ctx context.Context, householdId int, cfg Config) error {
	s.configs[householdId] = cfg
	return nil
}

func (s *RepositoryStub) Cleanup() {
	s.configs = map[int]Config{}
}
