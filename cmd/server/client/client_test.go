package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/KirkDiggler/cosmo-api/internal/errors"
)

func TestCallErrorKeepsServerCode(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    errors.Code
		busyMsg bool
	}{
		{"not found", status.Error(codes.NotFound, "share abc123 not found"), errors.CodeNotFound, false},
		{"invalid", status.Error(codes.InvalidArgument, "team has no characters"), errors.CodeInvalidArgument, false},
		{"exhausted", status.Error(codes.ResourceExhausted, "no free short code"), errors.CodeResourceExhausted, true},
		{"unavailable", status.Error(codes.Unavailable, "redis down"), errors.CodeUnavailable, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := callError("get share", tt.err)
			assert.Equal(t, tt.code, errors.GetCode(err))
			assert.Contains(t, err.Error(), "failed to get share")
			if tt.busyMsg {
				assert.Contains(t, err.Error(), "try again")
			} else {
				assert.NotContains(t, err.Error(), "try again")
			}
		})
	}
}
