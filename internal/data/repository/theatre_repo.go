package repository

import (
	"context"
	"fmt"

	"movie-booking/internal/data/entity"
	"movie-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type TheatreRepository interface {
	Create(ctx context.Context, theatre *entity.Theatre) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Theatre, error)
	FindAll(ctx context.Context) ([]*entity.Theatre, error)
	Update(ctx context.Context, theatre *entity.Theatre) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type theatreRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTheatreRepository(db database.PgxIface, log *zap.Logger) TheatreRepository {
	return &theatreRepository{
		db:  db,
		log: log.With(zap.String("repository", "theatre")),
	}
}

func (r *theatreRepository) Create(ctx context.Context, theatre *entity.Theatre) error {
	query := `
		INSERT INTO theatres (id, name, location, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.Exec(ctx, query,
		theatre.ID,
		theatre.Name,
		theatre.Location,
		theatre.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create theatre",
			zap.Error(err),
			zap.String("name", theatre.Name),
		)
		return fmt.Errorf("create theatre %s: %w", theatre.Name, err)
	}

	return nil
}

func (r *theatreRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Theatre, error) {
	query := `
		SELECT id, name, location, created_at
		FROM theatres
		WHERE id = $1
	`

	var theatre entity.Theatre
	err := r.db.QueryRow(ctx, query, id).Scan(
		&theatre.ID,
		&theatre.Name,
		&theatre.Location,
		&theatre.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find theatre by ID",
			zap.Error(err),
			zap.String("theatre_id", id.String()),
		)
		return nil, fmt.Errorf("find theatre by ID %s: %w", id.String(), err)
	}

	return &theatre, nil
}

func (r *theatreRepository) FindAll(ctx context.Context) ([]*entity.Theatre, error) {
	query := `
		SELECT id, name, location, created_at
		FROM theatres
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find theatres", zap.Error(err))
		return nil, fmt.Errorf("find theatres: %w", err)
	}
	defer rows.Close()

	var theatres []*entity.Theatre
	for rows.Next() {
		var theatre entity.Theatre
		err := rows.Scan(
			&theatre.ID,
			&theatre.Name,
			&theatre.Location,
			&theatre.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan theatre row", zap.Error(err))
			return nil, fmt.Errorf("scan theatre row: %w", err)
		}
		theatres = append(theatres, &theatre)
	}

	return theatres, nil
}

func (r *theatreRepository) Update(ctx context.Context, theatre *entity.Theatre) error {
	query := `
		UPDATE theatres
		SET name = $2, location = $3
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		theatre.ID,
		theatre.Name,
		theatre.Location,
	)

	if err != nil {
		r.log.Error("Failed to update theatre",
			zap.Error(err),
			zap.String("theatre_id", theatre.ID.String()),
		)
		return fmt.Errorf("update theatre %s: %w", theatre.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("theatre %s not found", theatre.ID.String())
	}

	return nil
}

func (r *theatreRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM theatres WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete theatre",
			zap.Error(err),
			zap.String("theatre_id", id.String()),
		)
		return fmt.Errorf("delete theatre %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("theatre %s not found", id.String())
	}

	r.log.Info("Theatre deleted", zap.String("theatre_id", id.String()))
	return nil
}
