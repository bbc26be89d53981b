package shares

import (
	"context"
	"encoding/json"

	"github.com/KirkDiggler/cosmo-api/internal/errors"
	"github.com/KirkDiggler/cosmo-api/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/cosmo-api/internal/redis"
)

// AuditReport lists share records that can no longer be served correctly
type AuditReport struct {
	Checked int
	// Corrupt keys hold JSON that does not decode or has no team
	Corrupt []string
	// NoExpiry keys would never expire
	NoExpiry []string
	// Fixed counts the keys deleted or given an expiry
	Fixed int
}

// AuditInput contains parameters for an audit
type AuditInput struct {
	Client redisclient.Client
	Clock  clock.Clock
	// Fix deletes corrupt records and restores the expiry of the rest
	Fix bool
}

// Audit scans every share key. In cluster mode only the node the client
// routes SCAN to is covered.
func Audit(ctx context.Context, input AuditInput) (*AuditReport, error) {
	if input.Client == nil {
		return nil, errors.InvalidArgument("redis client is required")
	}
	clk := input.Clock
	if clk == nil {
		clk = clock.New()
	}

	report := &AuditReport{}
	iter := input.Client.Scan(ctx, 0, shareKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		report.Checked++

		data, err := input.Client.Get(ctx, key).Bytes()
		if err != nil {
			if redisclient.IsNil(err) {
				continue
			}
			return report, unavailable(err, "read share")
		}

		var share SharedTeam
		if err := json.Unmarshal(data, &share); err != nil || share.Team == nil {
			report.Corrupt = append(report.Corrupt, key)
			if input.Fix {
				if err := input.Client.Del(ctx, key).Err(); err != nil {
					return report, unavailable(err, "delete share")
				}
				report.Fixed++
			}
			continue
		}

		ttl, err := input.Client.TTL(ctx, key).Result()
		if err != nil {
			return report, unavailable(err, "read share ttl")
		}
		// -1 means no expiry, -2 that the key vanished since the read
		if ttl != -1 {
			continue
		}

		report.NoExpiry = append(report.NoExpiry, key)
		if !input.Fix {
			continue
		}
		remaining := share.ExpiresAt.Sub(clk.Now())
		if remaining <= 0 {
			err = input.Client.Del(ctx, key).Err()
		} else {
			err = input.Client.Expire(ctx, key, remaining).Err()
		}
		if err != nil {
			return report, unavailable(err, "fix share expiry")
		}
		report.Fixed++
	}
	if err := iter.Err(); err != nil {
		return report, unavailable(err, "scan shares")
	}

	return report, nil
}
