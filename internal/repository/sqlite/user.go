package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/msomdec/mercado-social/internal/domain"
)

const userColumns = `id, username, email, password_hash, account_kind, name, bio, profile_photo,
	followers_count, following_count, post_count, created_at`

// UserRepository implements domain.UserRepository using SQLite.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new SQLite-backed UserRepository.
func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db.SqlDB}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	u := &domain.User{}
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.AccountKind, &u.Name, &u.Bio,
		&u.ProfilePhoto, &u.FollowersCount, &u.FollowingCount, &u.PostCount, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// Create inserts the user and, for business accounts, its store. Both rows
// are committed together or not at all.
func (r *UserRepository) Create(ctx context.Context, user *domain.User, store *domain.Store) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	result, err := tx.ExecContext(ctx,
		`INSERT INTO users (username, email, password_hash, account_kind, name, bio, profile_photo, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		user.Username, user.Email, user.PasswordHash, user.AccountKind, user.Name, user.Bio, user.ProfilePhoto, now,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("insert user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}

	if store != nil {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO stores (owner_id, name, address, district, city, phone, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			id, store.Name, store.Address, store.District, store.City, store.Phone, now,
		)
		if err != nil {
			return fmt.Errorf("insert store: %w", err)
		}
		storeID, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("get store id: %w", err)
		}
		store.ID = storeID
		store.OwnerID = id
		store.CreatedAt = now
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	user.ID = id
	user.CreatedAt = now
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query user by id: %w", err)
	}
	return user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ?`, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query user by email: %w", err)
	}
	return user, nil
}

func (r *UserRepository) GetProfiles(ctx context.Context, ids []int64) (map[int64]domain.PublicProfile, error) {
	profiles := make(map[int64]domain.PublicProfile, len(ids))
	if len(ids) == 0 {
		return profiles, nil
	}

	placeholders, args := inClause(ids)
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, username, name, profile_photo FROM users WHERE id IN (`+placeholders+`)`, args...)
	if err != nil {
		return nil, fmt.Errorf("query profiles: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p domain.PublicProfile
		if err := rows.Scan(&p.ID, &p.Username, &p.Name, &p.ProfilePhoto); err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		profiles[p.ID] = p
	}
	return profiles, rows.Err()
}

func (r *UserRepository) Update(ctx context.Context, id int64, update domain.ProfileUpdate) (*domain.User, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE users SET
			name = COALESCE(?, name),
			username = COALESCE(?, username),
			bio = COALESCE(?, bio),
			profile_photo = COALESCE(?, profile_photo)
		 WHERE id = ?`,
		update.Name, update.Username, update.Bio, update.ProfilePhoto, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	if err := expectOneRow(result); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// SearchByName matches the query as a case-folded substring of the name or
// the username.
func (r *UserRepository) SearchByName(ctx context.Context, query string) ([]domain.PublicProfile, error) {
	pattern := likePattern(query)
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, username, name, profile_photo FROM users
		 WHERE casefold(name) LIKE ? ESCAPE '\' OR casefold(username) LIKE ? ESCAPE '\'
		 ORDER BY name, id`, pattern, pattern)
	if err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}
	defer rows.Close()

	var users []domain.PublicProfile
	for rows.Next() {
		var p domain.PublicProfile
		if err := rows.Scan(&p.ID, &p.Username, &p.Name, &p.ProfilePhoto); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, p)
	}
	return users, rows.Err()
}
