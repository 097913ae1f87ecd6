package credential

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"vetgate/internal/compliance/models"
	id "vetgate/pkg/domain"
	"vetgate/pkg/platform/sentinel"
)

// PostgresStore persists credential records in PostgreSQL via pgx.
//
// The four document sub-states live in one JSONB column: they are always
// read and written together (the evaluator needs all four), and a single row
// gives us a single FOR UPDATE lock per carer — exactly the serialization
// the review workflow needs. See db/schema.sql for the DDL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgres constructs a PostgreSQL-backed credential store.
func NewPostgres(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Ensure returns the carer's record, inserting an empty one on first contact.
// Safe under concurrent first contacts: the insert is ON CONFLICT DO NOTHING
// followed by a read.
func (s *PostgresStore) Ensure(ctx context.Context, carerID id.CarerID, now time.Time) (*models.CredentialRecord, error) {
	rec := models.NewCredentialRecord(carerID, now)
	docs, err := json.Marshal(rec.Documents)
	if err != nil {
		return nil, fmt.Errorf("marshal documents: %w", err)
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO credential_records (carer_id, documents, overall_status, version, created_at, updated_at)
		VALUES ($1, $2, $3, 0, $4, $4)
		ON CONFLICT (carer_id) DO NOTHING
	`, uuid.UUID(carerID), docs, string(rec.OverallStatus), now)
	if err != nil {
		return nil, fmt.Errorf("ensure credential record: %w", err)
	}
	return s.FindByCarer(ctx, carerID)
}

func (s *PostgresStore) FindByCarer(ctx context.Context, carerID id.CarerID) (*models.CredentialRecord, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT carer_id, documents, overall_status, last_verified_at, version, created_at, updated_at
		FROM credential_records
		WHERE carer_id = $1
	`, uuid.UUID(carerID))
	return scanRecord(row)
}

// Execute loads the carer's row FOR UPDATE inside a transaction, runs
// validate and mutate, and writes the result back with a version bump. The
// row lock serializes concurrent mutations per carer; the version predicate
// is a second line of defense and surfaces as ErrConflict if it ever trips.
func (s *PostgresStore) Execute(
	ctx context.Context,
	carerID id.CarerID,
	validate func(*models.CredentialRecord) error,
	mutate func(*models.CredentialRecord),
) (*models.CredentialRecord, error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	row := tx.QueryRow(ctx, `
		SELECT carer_id, documents, overall_status, last_verified_at, version, created_at, updated_at
		FROM credential_records
		WHERE carer_id = $1
		FOR UPDATE
	`, uuid.UUID(carerID))
	rec, err := scanRecord(row)
	if err != nil {
		return nil, err
	}

	if validate != nil {
		if err := validate(rec); err != nil {
			return nil, err
		}
	}
	if mutate != nil {
		mutate(rec)
	}

	docs, err := json.Marshal(rec.Documents)
	if err != nil {
		return nil, fmt.Errorf("marshal documents: %w", err)
	}
	tag, err := tx.Exec(ctx, `
		UPDATE credential_records
		SET documents = $2, overall_status = $3, last_verified_at = $4, version = version + 1, updated_at = $5
		WHERE carer_id = $1 AND version = $6
	`, uuid.UUID(carerID), docs, string(rec.OverallStatus), rec.LastVerifiedAt, rec.UpdatedAt, rec.Version)
	if err != nil {
		return nil, fmt.Errorf("update credential record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, sentinel.ErrConflict
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	rec.Version++
	return rec, nil
}

func (s *PostgresStore) ListByOverallStatus(ctx context.Context, status models.OverallStatus) ([]id.CarerID, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT carer_id FROM credential_records WHERE overall_status = $1
	`, string(status))
	if err != nil {
		return nil, fmt.Errorf("list by overall status: %w", err)
	}
	defer rows.Close()

	var out []id.CarerID
	for rows.Next() {
		var carer uuid.UUID
		if err := rows.Scan(&carer); err != nil {
			return nil, fmt.Errorf("scan carer id: %w", err)
		}
		out = append(out, id.CarerID(carer))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate carers: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*models.CredentialRecord, error) {
	var (
		carer   uuid.UUID
		docs    []byte
		overall string
		rec     models.CredentialRecord
	)
	err := row.Scan(&carer, &docs, &overall, &rec.LastVerifiedAt, &rec.Version, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan credential record: %w", err)
	}
	rec.CarerID = id.CarerID(carer)
	rec.OverallStatus = models.OverallStatus(overall)
	if err := json.Unmarshal(docs, &rec.Documents); err != nil {
		return nil, fmt.Errorf("unmarshal documents: %w", err)
	}
	return &rec, nil
}
