package redis

import (
	"context"
	"net"

	"minihotel/config"

	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// New connects to the primary redis instance used for refresh-token
// sessions and the rate limiter. Startup aborts when it is unreachable.
func New(config *config.Config) *goRedis.Client {
	primary := config.Cache.Redis.Primary

	client := goRedis.NewClient(&goRedis.Options{
		Addr:     net.JoinHostPort(primary.Host, primary.Port),
		Password: primary.Password,
		DB:       primary.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}

	log.Info().
		Str("host", primary.Host).
		Str("port", primary.Port).
		Int("db", primary.DB).
		Msg("Connected to Redis")

	return client
}
