package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	commoncrypto "github.com/AlibekovAA/notes-app/backend/internal/common/crypto"
	"github.com/AlibekovAA/notes-app/backend/internal/common/db"
	"github.com/AlibekovAA/notes-app/backend/internal/note/domain"
	userdomain "github.com/AlibekovAA/notes-app/backend/internal/user/domain"
)

type PgRepository struct {
	pool        *pgxpool.Pool
	idGenerator commoncrypto.IDGenerator
}

func NewPgRepository(pool *pgxpool.Pool, idGenerator commoncrypto.IDGenerator) *PgRepository {
	return &PgRepository{pool: pool, idGenerator: idGenerator}
}

func (r *PgRepository) Create(ctx context.Context, note domain.Note) (domain.Note, error) {
	start := time.Now()

	id, err := r.idGenerator.NewID()
	if err != nil {
		return domain.Note{}, fmt.Errorf("failed to generate note id: %w", err)
	}
	note.ID = domain.ID(id)

	_, err = r.pool.Exec(
		ctx,
		`INSERT INTO notes (id, content, important, user_id, created_at) VALUES ($1, $2, $3, $4, $5)`,
		string(note.ID),
		note.Content,
		note.Important,
		string(note.Owner),
		note.CreatedAt,
	)
	if err := db.HandleStoreError(err, nil, "create note", db.NotesTable, start); err != nil {
		if errors.Is(err, db.ErrMissingReference) {
			return domain.Note{}, ErrOwnerMissing
		}
		return domain.Note{}, err
	}
	return note, nil
}

func (r *PgRepository) FindByID(ctx context.Context, id domain.ID) (domain.Note, error) {
	if !r.idGenerator.Valid(string(id)) {
		return domain.Note{}, db.ErrMalformedID
	}

	start := time.Now()
	row := r.pool.QueryRow(
		ctx,
		`SELECT id, content, important, user_id, created_at FROM notes WHERE id = $1`,
		string(id),
	)

	var note domain.Note
	err := row.Scan(&note.ID, &note.Content, &note.Important, &note.Owner, &note.CreatedAt)
	if err := db.HandleStoreError(err, ErrNoteNotFound, "find note", db.NotesTable, start); err != nil {
		return domain.Note{}, err
	}
	return note, nil
}

func (r *PgRepository) List(ctx context.Context) ([]domain.WithOwner, error) {
	start := time.Now()
	rows, err := r.pool.Query(
		ctx,
		`SELECT n.id, n.content, n.important, n.user_id, n.created_at, u.username, u.name
		 FROM notes n
		 JOIN users u ON u.id = n.user_id
		 ORDER BY n.created_at ASC, n.id ASC`,
	)
	if err := db.HandleStoreError(err, nil, "list notes", db.NotesTable, start); err != nil {
		return nil, err
	}
	defer rows.Close()

	notes := []domain.WithOwner{}
	for rows.Next() {
		var item domain.WithOwner
		if err := rows.Scan(
			&item.ID,
			&item.Content,
			&item.Important,
			&item.Owner,
			&item.CreatedAt,
			&item.OwnerSummary.Username,
			&item.OwnerSummary.Name,
		); err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		item.OwnerSummary.ID = item.Owner
		notes = append(notes, item)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("rows iteration error: %w", rows.Err())
	}
	return notes, nil
}

func (r *PgRepository) UpdateOwned(ctx context.Context, note domain.Note) (domain.Note, error) {
	if !r.idGenerator.Valid(string(note.ID)) {
		return domain.Note{}, db.ErrMalformedID
	}

	start := time.Now()
	row := r.pool.QueryRow(
		ctx,
		`UPDATE notes SET content = $3, important = $4
		 WHERE id = $1 AND user_id = $2
		 RETURNING id, content, important, user_id, created_at`,
		string(note.ID),
		string(note.Owner),
		note.Content,
		note.Important,
	)

	var updated domain.Note
	err := row.Scan(&updated.ID, &updated.Content, &updated.Important, &updated.Owner, &updated.CreatedAt)
	if err := db.HandleStoreError(err, ErrNoteNotFound, "update note", db.NotesTable, start); err != nil {
		return domain.Note{}, err
	}
	return updated, nil
}

func (r *PgRepository) DeleteOwned(ctx context.Context, id domain.ID, owner userdomain.ID) error {
	if !r.idGenerator.Valid(string(id)) {
		return db.ErrMalformedID
	}

	start := time.Now()
	tag, err := r.pool.Exec(
		ctx,
		`DELETE FROM notes WHERE id = $1 AND user_id = $2`,
		string(id),
		string(owner),
	)
	if err := db.HandleStoreError(err, nil, "delete note", db.NotesTable, start); err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNoteNotFound
	}
	return nil
}

func (r *PgRepository) Count(ctx context.Context) (int64, error) {
	start := time.Now()
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM notes`).Scan(&count)
	if err := db.HandleStoreError(err, nil, "count notes", db.NotesTable, start); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PgRepository) DeleteAll(ctx context.Context) error {
	start := time.Now()
	_, err := r.pool.Exec(ctx, `DELETE FROM notes`)
	return db.HandleStoreError(err, nil, "delete notes", db.NotesTable, start)
}
