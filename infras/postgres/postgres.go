package postgres

//nolint:revive
import (
	"context"
	"fmt"
	"net"
	"nest/config"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	postgresMaxIdleConnection = 10
	postgresMaxOpenConnection = 10
	postgresConnMaxLifetime   = 30 * time.Minute
)

type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

func New(cfg *config.Config) *Connection {
	return &Connection{
		Read:  createConnection("read", *cfg, endpointFromRead(*cfg)),
		Write: createConnection("write", *cfg, endpointFromWrite(*cfg)),
	}
}

// WithTransaction runs fn inside a write transaction. The transaction is
// rolled back when fn returns an error and committed otherwise.
func (c *Connection) WithTransaction(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := c.Write.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err = fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Error().Err(rbErr).Msg("failed to rollback transaction")
		}

		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

type endpoint struct {
	username string
	password string
	host     string
	port     string
	name     string
	sslMode  string
}

func dbName(cfg config.Config, baseName string) string {
	if cfg.DB.Postgres.Prefix != "" {
		return cfg.DB.Postgres.Prefix + baseName
	}

	return baseName
}

func endpointFromWrite(cfg config.Config) endpoint {
	write := cfg.DB.Postgres.Write

	return endpoint{
		username: write.Username,
		password: write.Password,
		host:     write.Host,
		port:     write.Port,
		name:     dbName(cfg, write.Name),
		sslMode:  write.SSLMode,
	}
}

func endpointFromRead(cfg config.Config) endpoint {
	read := cfg.DB.Postgres.Read

	return endpoint{
		username: read.Username,
		password: read.Password,
		host:     read.Host,
		port:     read.Port,
		name:     dbName(cfg, read.Name),
		sslMode:  read.SSLMode,
	}
}

// DSN builds the lib/pq connection string for the write endpoint. The
// migrator uses it directly.
func DSN(cfg config.Config) string {
	return endpointFromWrite(cfg).dsn()
}

func (e endpoint) dsn() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s/%s?sslmode=%s",
		e.username,
		e.password,
		net.JoinHostPort(e.host, e.port),
		e.name,
		e.sslMode,
	)
}

func createConnection(name string, cfg config.Config, ep endpoint) *sqlx.DB {
	maxRetry := cfg.DB.Postgres.MaxRetry
	if maxRetry <= 0 {
		maxRetry = 1
	}

	for retry := range maxRetry {
		sqlDB, err := sqlx.Connect("postgres", ep.dsn())
		if err == nil {
			log.
				Info().
				Str("name", name).
				Str("host", ep.host).
				Str("port", ep.port).
				Str("dbName", ep.name).
				Msg("Connected to database")
			sqlDB.SetMaxIdleConns(postgresMaxIdleConnection)
			sqlDB.SetMaxOpenConns(postgresMaxOpenConnection)
			sqlDB.SetConnMaxLifetime(postgresConnMaxLifetime)

			return sqlDB
		}

		log.
			Error().
			Err(err).
			Str("name", name).
			Str("host", ep.host).
			Str("port", ep.port).
			Str("dbName", ep.name).
			Int("attempt", retry+1).
			Msg("Failed connecting to database, retrying")

		time.Sleep(time.Duration(cfg.DB.Postgres.RetryWaitTime) * time.Second)
	}

	log.Fatal().Str("name", name).Msg("Exhausted database connection retries")

	return nil
}
