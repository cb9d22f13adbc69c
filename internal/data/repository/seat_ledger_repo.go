package repository

import (
	"context"
	"fmt"
	"time"

	"movie-booking/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SeatLedgerRepository is the single authority on seat availability per
// show. A claim row in seat_claims means the seat is held by an active
// booking. TryClaim locks the show row, so check-and-mark is serialized
// per show while different shows never contend. The unique index on
// (show_id, seat_id) backstops the lock.
type SeatLedgerRepository interface {
	TryClaim(ctx context.Context, showID uuid.UUID, seatIDs []uuid.UUID, bookingID uuid.UUID) ([]uuid.UUID, error)
	Release(ctx context.Context, showID uuid.UUID, seatIDs []uuid.UUID) error
	FindClaimedSeatIDs(ctx context.Context, showID uuid.UUID) ([]uuid.UUID, error)
}

type seatLedgerRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSeatLedgerRepository(db database.PgxIface, log *zap.Logger) SeatLedgerRepository {
	return &seatLedgerRepository{
		db:  db,
		log: log.With(zap.String("repository", "seat_ledger")),
	}
}

// TryClaim atomically claims every seat in seatIDs for the show, or
// claims nothing and returns the conflicting seat ids. The returned
// slice is non-empty exactly when the claim was refused.
func (r *seatLedgerRepository) TryClaim(ctx context.Context, showID uuid.UUID, seatIDs []uuid.UUID, bookingID uuid.UUID) ([]uuid.UUID, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		r.log.Error("Failed to begin claim transaction",
			zap.Error(err),
			zap.String("show_id", showID.String()),
		)
		return nil, fmt.Errorf("begin claim for show %s: %w", showID.String(), err)
	}
	defer tx.Rollback(ctx)

	// Lock the show row so concurrent claims for the same show run
	// one at a time. Claims for other shows are unaffected.
	var locked uuid.UUID
	err = tx.QueryRow(ctx, `SELECT id FROM shows WHERE id = $1 FOR UPDATE`, showID).Scan(&locked)
	if err != nil {
		r.log.Error("Failed to lock show for claim",
			zap.Error(err),
			zap.String("show_id", showID.String()),
		)
		return nil, fmt.Errorf("lock show %s: %w", showID.String(), err)
	}

	rows, err := tx.Query(ctx,
		`SELECT seat_id FROM seat_claims WHERE show_id = $1 AND seat_id = ANY($2)`,
		showID, seatIDs,
	)
	if err != nil {
		r.log.Error("Failed to check existing claims",
			zap.Error(err),
			zap.String("show_id", showID.String()),
		)
		return nil, fmt.Errorf("check claims for show %s: %w", showID.String(), err)
	}

	var conflicts []uuid.UUID
	for rows.Next() {
		var seatID uuid.UUID
		if err := rows.Scan(&seatID); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan claim row: %w", err)
		}
		conflicts = append(conflicts, seatID)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read claim rows: %w", err)
	}

	// All-or-nothing: any overlap refuses the whole claim.
	if len(conflicts) > 0 {
		r.log.Info("Seat claim refused",
			zap.String("show_id", showID.String()),
			zap.Int("requested", len(seatIDs)),
			zap.Int("conflicts", len(conflicts)),
		)
		return conflicts, nil
	}

	now := time.Now()
	for _, seatID := range seatIDs {
		_, err := tx.Exec(ctx,
			`INSERT INTO seat_claims (id, show_id, seat_id, booking_id, created_at)
			 VALUES ($1, $2, $3, $4, $5)`,
			uuid.New(), showID, seatID, bookingID, now,
		)
		if err != nil {
			r.log.Error("Failed to insert seat claim",
				zap.Error(err),
				zap.String("show_id", showID.String()),
				zap.String("seat_id", seatID.String()),
			)
			return nil, fmt.Errorf("claim seat %s for show %s: %w", seatID.String(), showID.String(), err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		r.log.Error("Failed to commit seat claim",
			zap.Error(err),
			zap.String("show_id", showID.String()),
		)
		return nil, fmt.Errorf("commit claim for show %s: %w", showID.String(), err)
	}

	r.log.Info("Seats claimed",
		zap.String("show_id", showID.String()),
		zap.String("booking_id", bookingID.String()),
		zap.Int("seat_count", len(seatIDs)),
	)

	return nil, nil
}

// Release frees the seats again after a downstream step of the
// booking flow failed; cancellation removes its claims inside the
// cancel transaction instead. Releasing seats that hold no claim is a
// no-op, so a compensating release can never fail on a partial state.
func (r *seatLedgerRepository) Release(ctx context.Context, showID uuid.UUID, seatIDs []uuid.UUID) error {
	_, err := r.db.Exec(ctx,
		`DELETE FROM seat_claims WHERE show_id = $1 AND seat_id = ANY($2)`,
		showID, seatIDs,
	)
	if err != nil {
		r.log.Error("Failed to release seat claims",
			zap.Error(err),
			zap.String("show_id", showID.String()),
			zap.Int("seat_count", len(seatIDs)),
		)
		return fmt.Errorf("release seats for show %s: %w", showID.String(), err)
	}

	r.log.Info("Seats released",
		zap.String("show_id", showID.String()),
		zap.Int("seat_count", len(seatIDs)),
	)

	return nil
}

func (r *seatLedgerRepository) FindClaimedSeatIDs(ctx context.Context, showID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx,
		`SELECT seat_id FROM seat_claims WHERE show_id = $1`,
		showID,
	)
	if err != nil {
		r.log.Error("Failed to find claimed seats",
			zap.Error(err),
			zap.String("show_id", showID.String()),
		)
		return nil, fmt.Errorf("find claimed seats for show %s: %w", showID.String(), err)
	}
	defer rows.Close()

	var seatIDs []uuid.UUID
	for rows.Next() {
		var seatID uuid.UUID
		if err := rows.Scan(&seatID); err != nil {
			return nil, fmt.Errorf("scan claimed seat row: %w", err)
		}
		seatIDs = append(seatIDs, seatID)
	}

	return seatIDs, rows.Err()
}
