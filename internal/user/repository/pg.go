package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	commoncrypto "github.com/AlibekovAA/notes-app/backend/internal/common/crypto"
	"github.com/AlibekovAA/notes-app/backend/internal/common/db"
	"github.com/AlibekovAA/notes-app/backend/internal/user/domain"
)

type PgRepository struct {
	pool        *pgxpool.Pool
	idGenerator commoncrypto.IDGenerator
}

func NewPgRepository(pool *pgxpool.Pool, idGenerator commoncrypto.IDGenerator) *PgRepository {
	return &PgRepository{pool: pool, idGenerator: idGenerator}
}

func (r *PgRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	start := time.Now()

	id, err := r.idGenerator.NewID()
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to generate user id: %w", err)
	}
	user.ID = domain.ID(id)

	_, err = r.pool.Exec(
		ctx,
		`INSERT INTO users (id, username, name, password_hash, created_at) VALUES ($1, $2, $3, $4, $5)`,
		string(user.ID),
		user.Username,
		user.Name,
		user.PasswordHash,
		user.CreatedAt,
	)
	if err := db.HandleStoreError(err, nil, "create user", db.UsersTable, start); err != nil {
		if errors.Is(err, db.ErrUniqueViolation) {
			return domain.User{}, ErrUsernameAlreadyExists
		}
		return domain.User{}, err
	}
	return user, nil
}

func (r *PgRepository) FindByUsername(ctx context.Context, username string) (domain.User, error) {
	start := time.Now()
	row := r.pool.QueryRow(
		ctx,
		`SELECT id, username, name, password_hash, created_at FROM users WHERE username = $1`,
		username,
	)

	var user domain.User
	err := row.Scan(&user.ID, &user.Username, &user.Name, &user.PasswordHash, &user.CreatedAt)
	if err := db.HandleStoreError(err, ErrUserNotFound, "find user by username", db.UsersTable, start); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

func (r *PgRepository) FindByID(ctx context.Context, id domain.ID) (domain.User, error) {
	if !r.idGenerator.Valid(string(id)) {
		return domain.User{}, db.ErrMalformedID
	}

	start := time.Now()
	row := r.pool.QueryRow(
		ctx,
		`SELECT id, username, name, password_hash, created_at FROM users WHERE id = $1`,
		string(id),
	)

	var user domain.User
	err := row.Scan(&user.ID, &user.Username, &user.Name, &user.PasswordHash, &user.CreatedAt)
	if err := db.HandleStoreError(err, ErrUserNotFound, "find user by id", db.UsersTable, start); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

func (r *PgRepository) List(ctx context.Context) ([]domain.Profile, error) {
	start := time.Now()
	rows, err := r.pool.Query(
		ctx,
		`SELECT u.id, u.username, u.name, u.created_at, n.id, n.content, n.important
		 FROM users u
		 LEFT JOIN notes n ON n.user_id = u.id
		 ORDER BY u.created_at ASC, u.id ASC, n.created_at ASC`,
	)
	if err := db.HandleStoreError(err, nil, "list users", db.UsersTable, start); err != nil {
		return nil, err
	}
	defer rows.Close()

	profiles := []domain.Profile{}
	index := map[domain.ID]int{}
	for rows.Next() {
		var (
			u         domain.User
			noteID    *string
			content   *string
			important *bool
		)
		if err := rows.Scan(&u.ID, &u.Username, &u.Name, &u.CreatedAt, &noteID, &content, &important); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}

		i, ok := index[u.ID]
		if !ok {
			i = len(profiles)
			index[u.ID] = i
			profiles = append(profiles, domain.Profile{User: u, Notes: []domain.NoteRef{}})
		}
		if noteID != nil {
			ref := domain.NoteRef{ID: *noteID}
			if content != nil {
				ref.Content = *content
			}
			if important != nil {
				ref.Important = *important
			}
			profiles[i].Notes = append(profiles[i].Notes, ref)
		}
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("rows iteration error: %w", rows.Err())
	}
	return profiles, nil
}

func (r *PgRepository) Count(ctx context.Context) (int64, error) {
	start := time.Now()
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM users`).Scan(&count)
	if err := db.HandleStoreError(err, nil, "count users", db.UsersTable, start); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PgRepository) DeleteAll(ctx context.Context) error {
	start := time.Now()
	_, err := r.pool.Exec(ctx, `DELETE FROM users`)
	return db.HandleStoreError(err, nil, "delete users", db.UsersTable, start)
}
