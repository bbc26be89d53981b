package redis

import (
	"github.com/redis/go-redis/v9"
)

// Client is the subset of go-redis the stores depend on. Every topology
// returned by New satisfies it.
type Client interface {
	redis.UniversalClient
}
