// Package mocks provides mock expectation helpers for common testing patterns
package mocks

import (
	"context"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/cosmo-api/internal/entities"
	"github.com/KirkDiggler/cosmo-api/internal/repositories/roster"
	rostermock "github.com/KirkDiggler/cosmo-api/internal/repositories/roster/mock"
	"github.com/KirkDiggler/cosmo-api/internal/repositories/shares"
	sharesmock "github.com/KirkDiggler/cosmo-api/internal/repositories/shares/mock"
)

// ExpectRosterList sets up a single roster List call returning characters
func ExpectRosterList(ctx context.Context, mockRepo *rostermock.MockRepository, characters []*entities.CharacterRecord) *gomock.Call {
	return mockRepo.EXPECT().
		List(ctx, roster.ListInput{}).
		Return(&roster.ListOutput{Characters: characters}, nil)
}

// ExpectRosterUnavailable sets up a single failing roster List call
func ExpectRosterUnavailable(ctx context.Context, mockRepo *rostermock.MockRepository, err error) *gomock.Call {
	return mockRepo.EXPECT().
		List(ctx, gomock.Any()).
		Return(nil, err)
}

// ExpectShareStored sets up a free code check followed by a successful
// create that echoes the input back with the given expiry
func ExpectShareStored(ctx context.Context, mockRepo *sharesmock.MockRepository, code string, expiresAt time.Time) *gomock.Call {
	mockRepo.EXPECT().
		Exists(ctx, shares.ExistsInput{ShortCode: code}).
		Return(&shares.ExistsOutput{Exists: false}, nil)

	return mockRepo.EXPECT().
		Create(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input shares.CreateInput) (*shares.CreateOutput, error) {
			return &shares.CreateOutput{Share: &shares.SharedTeam{
				ShortCode: input.ShortCode,
				Team:      input.Team,
				Name:      input.Name,
				Notes:     input.Notes,
				ExpiresAt: expiresAt,
			}}, nil
		})
}
