package settlement

import (
	"context"
	"fmt"
)

type TokenStoreStub struct {
	tokens map[string]bool
}

func NewStubTokenStore() *TokenStoreStub {
	return &TokenStoreStub{tokens: map[string]bool{}}
}

func (s *TokenStoreStub) SaveToken(ctx context.Context, householdId int, token string) error {
	key := fmt.Sprintf("%d/%s", householdId, token)
	if s.tokens[key] {
		return ErrDuplicateToken
	}
	s.tokens[key] = true
	return nil
}

func (s *TokenStoreStub) Cleanup() {
	s.tokens = map[string]bool{}
}
