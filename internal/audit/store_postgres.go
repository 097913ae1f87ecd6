package audit

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	id "vetgate/pkg/domain"
)

// PostgresStore persists the audit trail in PostgreSQL over database/sql.
// The trail is append-only and read rarely, so it stays on plain SQL rather
// than the pooled pgx stack the hot-path stores use.
//
// Schema:
//
//	CREATE TABLE compliance_audit (
//	    id          BIGSERIAL PRIMARY KEY,
//	    at          TIMESTAMPTZ NOT NULL,
//	    carer_id    UUID NOT NULL,
//	    actor       TEXT NOT NULL,
//	    action      TEXT NOT NULL,
//	    subject     TEXT NOT NULL,
//	    from_state  TEXT NOT NULL DEFAULT '',
//	    to_state    TEXT NOT NULL,
//	    reason      TEXT NOT NULL DEFAULT '',
//	    client_ip   TEXT NOT NULL DEFAULT '',
//	    user_agent  TEXT NOT NULL DEFAULT '',
//	    request_id  TEXT NOT NULL DEFAULT ''
//	);
//	CREATE INDEX compliance_audit_carer_idx ON compliance_audit (carer_id, at);
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed audit store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// OpenPostgres opens a database/sql connection using the lib/pq driver.
func OpenPostgres(url string) (*sql.DB, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("open audit database: %w", err)
	}
	return db, nil
}

func (s *PostgresStore) Append(ctx context.Context, event Event) error {
	query := `
		INSERT INTO compliance_audit
			(at, carer_id, actor, action, subject, from_state, to_state, reason, client_ip, user_agent, request_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := s.db.ExecContext(ctx, query,
		event.Timestamp,
		uuid.UUID(event.CarerID),
		event.Actor,
		string(event.Action),
		event.Subject,
		event.FromState,
		event.ToState,
		event.Reason,
		event.ClientIP,
		event.UserAgent,
		event.RequestID,
	)
	if err != nil {
		return fmt.Errorf("append audit event: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListByCarer(ctx context.Context, carerID id.CarerID) ([]Event, error) {
	query := `
		SELECT at, carer_id, actor, action, subject, from_state, to_state, reason, client_ip, user_agent, request_id
		FROM compliance_audit
		WHERE carer_id = $1
		ORDER BY at, id
	`
	rows, err := s.db.QueryContext(ctx, query, uuid.UUID(carerID))
	if err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		var carer uuid.UUID
		var action string
		if err := rows.Scan(&e.Timestamp, &carer, &e.Actor, &action, &e.Subject,
			&e.FromState, &e.ToState, &e.Reason, &e.ClientIP, &e.UserAgent, &e.RequestID); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		e.CarerID = id.CarerID(carer)
		e.Action = Action(action)
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit events: %w", err)
	}
	return events, nil
}
