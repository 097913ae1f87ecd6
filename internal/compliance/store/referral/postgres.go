package referral

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"vetgate/internal/compliance/models"
	id "vetgate/pkg/domain"
	"vetgate/pkg/platform/sentinel"
)

// PostgresStore persists referrals in PostgreSQL via pgx. Slot occupancy is
// enforced by a partial unique index on (carer_id, slot) over non-rejected
// rows, so a concurrent double-submit loses cleanly at the database. See
// db/schema.sql.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgres constructs a PostgreSQL-backed referral store.
func NewPostgres(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) CreateIfSlotFree(ctx context.Context, ref *models.Referral) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO referrals
			(id, carer_id, slot, referee_name, referee_email, referee_phone, relationship, status, submitted_at, version)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 0)
	`,
		uuid.UUID(ref.ID), uuid.UUID(ref.CarerID), int(ref.Slot),
		ref.Referee.Name, ref.Referee.Email, ref.Referee.Phone, ref.Referee.Relationship,
		string(ref.Status), ref.SubmittedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		// 23505 unique_violation: the live-slot index rejected the insert.
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return sentinel.ErrSlotOccupied
		}
		return fmt.Errorf("create referral: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, referralID id.ReferralID) (*models.Referral, error) {
	row := s.pool.QueryRow(ctx, selectReferral+` WHERE id = $1`, uuid.UUID(referralID))
	return scanReferral(row)
}

func (s *PostgresStore) ListByCarer(ctx context.Context, carerID id.CarerID) ([]*models.Referral, error) {
	rows, err := s.pool.Query(ctx, selectReferral+` WHERE carer_id = $1 ORDER BY submitted_at`, uuid.UUID(carerID))
	if err != nil {
		return nil, fmt.Errorf("list referrals: %w", err)
	}
	defer rows.Close()

	var out []*models.Referral
	for rows.Next() {
		ref, err := scanReferral(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate referrals: %w", err)
	}
	return out, nil
}

// Execute loads the referral FOR UPDATE, runs validate and mutate, and
// writes the result back with a version bump.
func (s *PostgresStore) Execute(
	ctx context.Context,
	referralID id.ReferralID,
	validate func(*models.Referral) error,
	mutate func(*models.Referral),
) (*models.Referral, error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	row := tx.QueryRow(ctx, selectReferral+` WHERE id = $1 FOR UPDATE`, uuid.UUID(referralID))
	ref, err := scanReferral(row)
	if err != nil {
		return nil, err
	}

	if validate != nil {
		if err := validate(ref); err != nil {
			return nil, err
		}
	}
	if mutate != nil {
		mutate(ref)
	}

	tag, err := tx.Exec(ctx, `
		UPDATE referrals
		SET status = $2, decided_at = $3, version = version + 1
		WHERE id = $1 AND version = $4
	`, uuid.UUID(referralID), string(ref.Status), ref.DecidedAt, ref.Version)
	if err != nil {
		return nil, fmt.Errorf("update referral: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, sentinel.ErrConflict
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	ref.Version++
	return ref, nil
}

const selectReferral = `
	SELECT id, carer_id, slot, referee_name, referee_email, referee_phone, relationship, status, submitted_at, decided_at, version
	FROM referrals`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReferral(row rowScanner) (*models.Referral, error) {
	var (
		refID, carer uuid.UUID
		slot         int
		status       string
		ref          models.Referral
	)
	err := row.Scan(&refID, &carer, &slot,
		&ref.Referee.Name, &ref.Referee.Email, &ref.Referee.Phone, &ref.Referee.Relationship,
		&status, &ref.SubmittedAt, &ref.DecidedAt, &ref.Version)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan referral: %w", err)
	}
	ref.ID = id.ReferralID(refID)
	ref.CarerID = id.CarerID(carer)
	ref.Slot = models.ReferralSlot(slot)
	ref.Status = models.ReferralStatus(status)
	return &ref, nil
}
