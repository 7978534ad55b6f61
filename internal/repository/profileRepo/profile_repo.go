package profileRepo

import (
	"context"
	"fmt"

	"dataroom-service/internal/model/profile"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProfileRepo struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *ProfileRepo {
	return &ProfileRepo{pool: pool}
}

// GetOrCreate атомарно возвращает профиль владельца, создавая его при первом
// обращении. UNIQUE(owner) плюс upsert закрывают гонку двух первых заходов:
// ряд всегда ровно один.
func (r *ProfileRepo) GetOrCreate(ctx context.Context, owner, email string) (*profile.UserProfile, error) {
	var p profile.UserProfile
	err := r.pool.QueryRow(ctx,
		`INSERT INTO user_profiles (id, owner, email, total_documents, storage_used, last_active_at)
		 VALUES ($1, $2, $3, 0, 0, now())
		 ON CONFLICT (owner) DO UPDATE
		     SET last_active_at = now(),
		         updated_at     = now()
		 RETURNING id, owner, email, total_documents, storage_used, last_active_at, created_at, updated_at`,
		uuid.New(), owner, email).
		Scan(&p.ID, &p.Owner, &p.Email, &p.TotalDocuments, &p.StorageUsed,
			&p.LastActiveAt, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create profile: %w", err)
	}
	return &p, nil
}
