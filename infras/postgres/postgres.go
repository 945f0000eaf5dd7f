package postgres

//nolint:revive
import (
	"fmt"
	"net"
	"time"

	"minihotel/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	maxIdleConnections = 10
	maxOpenConnections = 10
)

// Connection holds the read/write pair. Collection loads go through Read,
// every mutation goes through Write.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

func New(config *config.Config) *Connection {
	postgres := config.DB.Postgres

	return &Connection{
		Read:  connect("read", postgres.Read, postgres.MaxRetry, postgres.RetryWaitTime),
		Write: connect("write", postgres.Write, postgres.MaxRetry, postgres.RetryWaitTime),
	}
}

func connect(name string, node config.PostgresNode, maxRetry, waitTime int) *sqlx.DB {
	descriptor := fmt.Sprintf(
		"postgres://%s:%s@%s/%s?sslmode=%s",
		node.Username,
		node.Password,
		net.JoinHostPort(node.Host, node.Port),
		node.Name,
		node.SSLMode,
	)

	for retry := range maxRetry {
		db, err := sqlx.Connect("postgres", descriptor)
		if err == nil {
			db.SetMaxIdleConns(maxIdleConnections)
			db.SetMaxOpenConns(maxOpenConnections)

			log.Info().
				Str("name", name).
				Str("host", node.Host).
				Str("port", node.Port).
				Str("dbName", node.Name).
				Msg("Connected to database")

			return db
		}

		log.Error().
			Err(err).
			Str("name", name).
			Int("attempt", retry+1).
			Msg("Failed connecting to database, retrying")

		time.Sleep(time.Duration(waitTime) * time.Second)
	}

	log.Fatal().
		Str("name", name).
		Int("maxRetry", maxRetry).
		Msg("Could not connect to database, giving up")

	return nil
}
