package postgres

import (
	"context"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

const driverName = "pgx"

type DB struct {
	URL string `yaml:"url" envconfig:"DATABASE_URL" required:"true"`
}

// Connector hands out a fresh single-connection handle per call.
// Nothing is shared between handles, the caller owns Close.
type Connector struct {
	dsn string
}

func NewConnector(cfg DB) *Connector {
	return &Connector{dsn: cfg.URL}
}

func (c *Connector) Open(ctx context.Context) (*sqlx.DB, error) {
	if c.dsn == "" {
		return nil, errors.New("DATABASE_URL is empty")
	}
	db, err := sqlx.Open(driverName, c.dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(0)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
