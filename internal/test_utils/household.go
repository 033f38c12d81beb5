package test_utils

import (
	"context"

	"github.com/nidoapp/nido/pkg/household"
)

// WithTestHousehold returns a context carrying a fixed two-partner household,
// matching what the middleware would resolve from the request header.
func WithTestHousehold(ctx context.Context) context.Context {
	return household.WithHousehold(ctx, household.Household{
		Id:   123,
		Uid:  "test-household",
		Name: "Test Household",
		Settings: household.Settings{
			Currency:     "EUR",
			PartnerAName: "Ana",
			PartnerBName: "Bruno",
		},
	})
}
