package sqlite

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	msqlite "modernc.org/sqlite"

	"github.com/msomdec/mercado-social/internal/domain"
	"github.com/msomdec/mercado-social/internal/repository/sqlite/migrations"
)

func init() {
	// casefold(x) lets queries compare names case-insensitively beyond ASCII,
	// which the built-in LIKE does not do.
	msqlite.MustRegisterDeterministicScalarFunction("casefold", 1,
		func(_ *msqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
			switch v := args[0].(type) {
			case nil:
				return nil, nil
			case string:
				return foldCase(v), nil
			case []byte:
				return foldCase(string(v)), nil
			default:
				return v, nil
			}
		})
}

func foldCase(s string) string {
	return cases.Fold().String(s)
}

// DB wraps the SQLite connection and hands out the repositories built on it.
type DB struct {
	SqlDB *sql.DB
}

var _ domain.Database = (*DB)(nil)

// New opens a SQLite database at the given path and configures it for use.
// It enables WAL mode and foreign keys.
func New(dbPath string) (*DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// A single connection serializes writers, so every transaction below
	// sees the counters it recomputes without interleaving.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	if _, err := db.ExecContext(context.Background(), "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	if err := db.PingContext(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &DB{SqlDB: db}, nil
}

// Migrate applies the embedded schema migrations.
func (d *DB) Migrate(ctx context.Context) error {
	return migrations.Run(ctx, d.SqlDB)
}

func (d *DB) Close() error {
	return d.SqlDB.Close()
}

func (d *DB) Users() *UserRepository {
	return NewUserRepository(d)
}

func (d *DB) Follows() domain.FollowRepository {
	return &followRepo{db: d.SqlDB}
}

func (d *DB) Posts() domain.PostRepository {
	return &postRepo{db: d.SqlDB}
}

func (d *DB) Notifications() domain.NotificationRepository {
	return &notificationRepo{db: d.SqlDB}
}

func (d *DB) Stores() domain.StoreRepository {
	return &storeRepo{db: d.SqlDB}
}

func (d *DB) Products() domain.ProductRepository {
	return &productRepo{db: d.SqlDB}
}

func (d *DB) Promotions() domain.PromotionRepository {
	return &promotionRepo{db: d.SqlDB}
}

// inClause builds "?,?,?" placeholders and the matching argument list.
func inClause(ids []int64) (string, []any) {
	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = "?"
		args[i] = id
	}
	return strings.Join(placeholders, ","), args
}

// likePattern turns a user query into a substring LIKE pattern over folded
// text, escaping the LIKE wildcards with a backslash.
func likePattern(query string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(foldCase(query)) + "%"
}

// isUniqueConstraintError checks if the error is a SQLite unique constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "unique constraint")
}

// isForeignKeyError checks if the error is a SQLite foreign key violation.
func isForeignKeyError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}
