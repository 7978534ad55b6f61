package documentRepo

import (
	"context"
	"errors"

	"dataroom-service/internal/model/document"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound — ряд документа отсутствует либо принадлежит другому владельцу.
var ErrNotFound = errors.New("document row not found")

type DocumentRepo struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *DocumentRepo {
	return &DocumentRepo{pool: pool}
}

// CreateWithStats вставляет документ и увеличивает счётчики профиля владельца
// в одной транзакции: ряд и агрегаты не могут разойтись.
func (r *DocumentRepo) CreateWithStats(ctx context.Context, doc *document.Document) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO documents (id, owner, name, key, size, type, uploaded_at, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		doc.ID, doc.Owner, doc.Name, doc.Key, doc.Size, doc.Type, doc.UploadedAt, doc.Status)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx,
		`UPDATE user_profiles
		 SET total_documents = total_documents + 1,
		     storage_used    = storage_used + $1,
		     last_active_at  = now(),
		     updated_at      = now()
		 WHERE owner = $2`,
		doc.Size, doc.Owner)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *DocumentRepo) GetByID(ctx context.Context, id uuid.UUID) (*document.Document, error) {
	var d document.Document
	err := r.pool.QueryRow(ctx,
		`SELECT id, owner, name, key, size, type, uploaded_at, status, created_at, updated_at
		 FROM documents WHERE id = $1`, id).
		Scan(&d.ID, &d.Owner, &d.Name, &d.Key, &d.Size, &d.Type,
			&d.UploadedAt, &d.Status, &d.CreatedAt, &d.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DocumentRepo) ListByOwner(ctx context.Context, owner string) ([]*document.Document, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, owner, name, key, size, type, uploaded_at, status, created_at, updated_at
		 FROM documents
		 WHERE owner = $1
		 ORDER BY uploaded_at DESC`, owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*document.Document
	for rows.Next() {
		var d document.Document
		if err := rows.Scan(&d.ID, &d.Owner, &d.Name, &d.Key, &d.Size, &d.Type,
			&d.UploadedAt, &d.Status, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		docs = append(docs, &d)
	}
	return docs, rows.Err()
}

// DeleteWithStats удаляет ряд документа и уменьшает счётчики профиля
// в одной транзакции. Фильтр по owner не даёт удалить чужой документ.
func (r *DocumentRepo) DeleteWithStats(ctx context.Context, id uuid.UUID, owner string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var size int64
	err = tx.QueryRow(ctx,
		`DELETE FROM documents WHERE id = $1 AND owner = $2 RETURNING size`,
		id, owner).Scan(&size)
	// ряд мог исчезнуть между проверкой в сервисе и удалением
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx,
		`UPDATE user_profiles
		 SET total_documents = greatest(total_documents - 1, 0),
		     storage_used    = greatest(storage_used - $1, 0),
		     last_active_at  = now(),
		     updated_at      = now()
		 WHERE owner = $2`,
		size, owner)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}
