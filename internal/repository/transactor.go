package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Код SQLSTATE ошибки сериализации PostgreSQL
const serializationFailure = "40001"

const maxSerializationRetries = 3

type txKey struct{}

// Transactor выполняет функцию в рамках одной транзакции БД.
// Репозитории, вызванные с контекстом из fn, работают внутри этой транзакции.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type gormTransactor struct {
	db   *gorm.DB
	opts *sql.TxOptions
}

// NewTransactor создаёт транзактор. Если serializable == true, транзакции открываются
// с уровнем изоляции SERIALIZABLE и повторяются при ошибке сериализации.
func NewTransactor(db *gorm.DB, serializable bool) Transactor {
	t := &gormTransactor{db: db}
	if serializable {
		t.opts = &sql.TxOptions{Isolation: sql.LevelSerializable}
	}
	return t
}

func (t *gormTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	// Вложенный вызов переиспользует внешнюю транзакцию
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}

	var err error
	for attempt := 0; attempt < maxSerializationRetries; attempt++ {
		err = t.run(ctx, fn)
		if !isSerializationFailure(err) {
			return err
		}
	}
	return fmt.Errorf("transaction aborted after %d attempts: %w", maxSerializationRetries, err)
}

func (t *gormTransactor) run(ctx context.Context, fn func(ctx context.Context) error) error {
	var opts []*sql.TxOptions
	if t.opts != nil {
		opts = append(opts, t.opts)
	}
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	}, opts...)
}

func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == serializationFailure
}

// conn возвращает сессию транзакции из контекста или базовое соединение
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}
