package repository

import (
	"context"
	"database/sql"

	"github.com/Astemirdum/article-rating/rating/internal/errs"
	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

//go:generate go run github.com/golang/mock/mockgen -source=repository.go -destination=mocks/mock.go

type Repository interface {
	GetRating(ctx context.Context, articleID int) (int, error)
	UpsertRating(ctx context.Context, articleID, rating int) (int, error)
}

// Connector opens a connection that lives for a single call.
type Connector interface {
	Open(ctx context.Context) (*sqlx.DB, error)
}

type repository struct {
	conn Connector
	log  *zap.Logger
}

func NewRepository(conn Connector, log *zap.Logger) (*repository, error) {
	if conn == nil {
		return nil, errors.New("nil connector")
	}
	return &repository{
		conn: conn,
		log:  log.Named("repo"),
	}, nil
}

const (
	ratingTableName = `article_ratings`
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func (r *repository) GetRating(ctx context.Context, articleID int) (int, error) {
	q, args, err := qb.Select("rating").
		From(ratingTableName).
		Where(sq.Eq{"article_id": articleID}).
		ToSql()
	if err != nil {
		return 0, err
	}

	var rating int
	err = r.withConn(ctx, func(db *sqlx.DB) error {
		return db.GetContext(ctx, &rating, q, args...)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, errs.ErrNotFound
		}
		r.logErr("GetRating", err, q, args)
		return 0, err
	}
	return rating, nil
}

// UpsertRating writes the rating and returns the persisted value.
// The conflict clause keeps concurrent writers for one article atomic, last one wins.
func (r *repository) UpsertRating(ctx context.Context, articleID, rating int) (int, error) {
	q, args, err := qb.Insert(ratingTableName).
		Columns("article_id", "rating").
		Values(articleID, rating).
		Suffix(`on conflict (article_id)
	do update set rating = excluded.rating, created_at = current_timestamp
	returning rating`).
		ToSql()
	if err != nil {
		return 0, err
	}

	var stored int
	err = r.withConn(ctx, func(db *sqlx.DB) error {
		tx, err := db.BeginTxx(ctx, nil)
		if err != nil {
			return err
		}
		defer tx.Rollback() //nolint:errcheck

		if err := tx.QueryRowxContext(ctx, q, args...).Scan(&stored); err != nil {
			return err
		}
		return tx.Commit()
	})
	if err != nil {
		r.logErr("UpsertRating", err, q, args)
		return 0, err
	}
	return stored, nil
}

func (r *repository) withConn(ctx context.Context, fn func(db *sqlx.DB) error) error {
	db, err := r.conn.Open(ctx)
	if err != nil {
		return errors.WithMessage(err, "open connection")
	}
	defer func() {
		if err := db.Close(); err != nil {
			r.log.Warn("close connection", zap.Error(err))
		}
	}()
	return fn(db)
}

func (r *repository) logErr(op string, err error, q string, args []interface{}) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UndefinedTable {
		r.log.Error(op+": table is missing, schema is managed outside the service",
			zap.String("table", ratingTableName), zap.Error(err))
		return
	}
	r.log.Error(op, zap.String("q", q), zap.Any("args", args), zap.Error(err))
}
