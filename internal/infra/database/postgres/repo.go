package postgres

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/BheruLalM/edustore-api/internal/domain"
)

// ---- Postgres репозиторий (pgxpool) + golang-migrate ----

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	defaultOpTimeout      = 5 * time.Second
)

type PGRepo struct {
	logger    zerolog.Logger
	pool      *pgxpool.Pool
	schema    string
	opTimeout time.Duration
}

// querier: общее у пула и транзакции
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func NewPGRepo(ctx context.Context, logger zerolog.Logger, dsn, schema string, opTimeout time.Duration) (*PGRepo, error) {
	if err := Migrate(dsn, MigrateUp, logger); err != nil {
		return nil, fmt.Errorf("migrations: %w", err)
	}

	logger.Info().Msg("initializing pgxpool...")
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open pool: %w", err)
	}
	logger.Info().Msg("pgxpool initialized")

	return NewFromPool(pool, logger, schema, opTimeout), nil
}

// NewFromPool: репозиторий поверх готового пула (миграции уже применены).
func NewFromPool(pool *pgxpool.Pool, logger zerolog.Logger, schema string, opTimeout time.Duration) *PGRepo {
	if schema == "" {
		schema = "public"
	}
	if opTimeout <= 0 {
		opTimeout = defaultOpTimeout
	}
	return &PGRepo{pool: pool, schema: schema, logger: logger, opTimeout: opTimeout}
}

func (r *PGRepo) Close() {
	r.logger.Info().Msg("closing pgxpool...")
	r.pool.Close()
	r.logger.Info().Msg("pgxpool closed")
}

func (r *PGRepo) Ping(ctx context.Context) error {
	if err := r.pool.Ping(ctx); err != nil {
		r.logger.Error().Err(err).Msg("ping failed")
		return err
	}
	r.logger.Debug().Msg("ping successful")
	return nil
}

// ---- Миграции через golang-migrate ----

type MigrateDirection string

const (
	MigrateUp   MigrateDirection = "up"
	MigrateDown MigrateDirection = "down"
)

//go:embed migrations/*.sql
var EmbeddedMigrations embed.FS

func Migrate(dsn string, dir MigrateDirection, logger zerolog.Logger) error {
	// отдельный *sql.DB через pgx stdlib, не пул
	sqldb, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("sql.Open pgx: %w", err)
	}
	defer sqldb.Close()

	driver, err := postgres.WithInstance(sqldb, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("postgres driver: %w", err)
	}

	src, err := iofs.New(EmbeddedMigrations, "migrations")
	if err != nil {
		return fmt.Errorf("iofs source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		return fmt.Errorf("migrate.New: %w", err)
	}
	defer m.Close()

	logger.Info().Str("direction", string(dir)).Msg("applying migrations...")
	switch dir {
	case MigrateUp:
		err = m.Up()
	case MigrateDown:
		err = m.Down()
	default:
		return fmt.Errorf("unknown migrate direction %q", dir)
	}
	if err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Info().Msg("no new migrations to apply")
			return nil
		}
		return fmt.Errorf("apply migrations: %w", err)
	}
	logger.Info().Msg("migrations applied successfully")
	return nil
}

// ---- Общие помощники ----

func (r *PGRepo) qb() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
}

// t возвращает имя таблицы со схемой
func (r *PGRepo) t(name string) string {
	return fmt.Sprintf("%s.%s", r.schema, name)
}

func (r *PGRepo) logSQL(op, sqlStr string, args []any) {
	r.logger.Trace().Str("op", op).Str("sql", sqlStr).Int("args", len(args)).Msg("sql")
}

// opCtx: короткий таймаут на каждый запрос: таймаут БД это жёсткая ошибка
func (r *PGRepo) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.opTimeout)
}

func (r *PGRepo) withTx(ctx context.Context, op string, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("%s: begin: %w", op, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: commit: %w", op, mapErr(err))
	}
	return nil
}

// mapErr переводит ошибки драйвера в доменные
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%w: %s", domain.ErrConflict, pgErr.ConstraintName)
		case pgForeignKeyViolation:
			return fmt.Errorf("%w: %s", domain.ErrNotFound, pgErr.ConstraintName)
		}
	}
	return err
}

func (r *PGRepo) done(op string, start time.Time, err error) {
	if err != nil {
		r.logger.Error().Err(err).Str("op", op).Dur("took", time.Since(start)).Msg("query failed")
		return
	}
	r.logger.Debug().Str("op", op).Dur("took", time.Since(start)).Msg("query ok")
}

// exec выполняет запрос без результата и возвращает число затронутых строк
func (r *PGRepo) exec(ctx context.Context, q querier, op string, b sq.Sqlizer) (int64, error) {
	sqlStr, args, err := b.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%s: build: %w", op, err)
	}
	r.logSQL(op, sqlStr, args)

	ctx, cancel := r.opCtx(ctx)
	defer cancel()

	start := time.Now()
	tag, err := q.Exec(ctx, sqlStr, args...)
	r.done(op, start, err)
	if err != nil {
		return 0, mapErr(err)
	}
	return tag.RowsAffected(), nil
}

// count выполняет SELECT count(*)
func (r *PGRepo) count(ctx context.Context, op string, b sq.SelectBuilder) (int64, error) {
	sqlStr, args, err := b.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%s: build: %w", op, err)
	}
	r.logSQL(op, sqlStr, args)

	ctx, cancel := r.opCtx(ctx)
	defer cancel()

	start := time.Now()
	var n int64
	err = r.pool.QueryRow(ctx, sqlStr, args...).Scan(&n)
	r.done(op, start, err)
	if err != nil {
		return 0, mapErr(err)
	}
	return n, nil
}

// ids выполняет запрос, возвращающий одну колонку bigint
func (r *PGRepo) ids(ctx context.Context, op string, b sq.SelectBuilder) ([]int64, error) {
	return collect(ctx, r, op, b, pgx.RowTo[int64])
}

// one выполняет запрос с одной строкой результата
func (r *PGRepo) one(ctx context.Context, q querier, op string, b sq.Sqlizer, dest ...any) error {
	sqlStr, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("%s: build: %w", op, err)
	}
	r.logSQL(op, sqlStr, args)

	ctx, cancel := r.opCtx(ctx)
	defer cancel()

	start := time.Now()
	err = q.QueryRow(ctx, sqlStr, args...).Scan(dest...)
	if errors.Is(err, pgx.ErrNoRows) {
		r.logger.Debug().Str("op", op).Dur("took", time.Since(start)).Msg("no rows")
		return domain.ErrNotFound
	}
	r.done(op, start, err)
	return mapErr(err)
}

// collect выполняет запрос и собирает строки через scan
func collect[T any](ctx context.Context, r *PGRepo, op string, b sq.Sqlizer, scan pgx.RowToFunc[T]) ([]T, error) {
	sqlStr, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: build: %w", op, err)
	}
	r.logSQL(op, sqlStr, args)

	ctx, cancel := r.opCtx(ctx)
	defer cancel()

	start := time.Now()
	rows, err := r.pool.Query(ctx, sqlStr, args...)
	if err != nil {
		r.done(op, start, err)
		return nil, mapErr(err)
	}
	out, err := pgx.CollectRows(rows, scan)
	r.done(op, start, err)
	if err != nil {
		return nil, mapErr(err)
	}
	return out, nil
}

var (
	_ domain.UsersRepo     = (*PGRepo)(nil)
	_ domain.ProfilesRepo  = (*PGRepo)(nil)
	_ domain.DocsRepo      = (*PGRepo)(nil)
	_ domain.FeedRepo      = (*PGRepo)(nil)
	_ domain.LikesRepo     = (*PGRepo)(nil)
	_ domain.BookmarksRepo = (*PGRepo)(nil)
	_ domain.FollowsRepo   = (*PGRepo)(nil)
	_ domain.CommentsRepo  = (*PGRepo)(nil)
)
