// internal/consultation/repository.go
package consultation

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"time"

	"salesops-workers/internal/common/database"
	"salesops-workers/internal/common/errors"
	"salesops-workers/internal/models"
	"salesops-workers/internal/triage"

	"github.com/google/uuid"
)

// Repository files consultations in PostgreSQL. The triage snapshot is
// stored verbatim in a JSONB column next to the record.
type Repository struct {
	db    *sql.DB
	now   func() time.Time
	newID func() string
}

var (
	_ triage.ConsultationFiler[models.ConsultationFields] = (*Repository)(nil)
	_ triage.SnapshotLoader                               = (*Repository)(nil)
)

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		db:    db,
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
}

// FileConsultation inserts the consultation and its audit entry in one
// transaction and returns the new consultation ID. snapshot may be nil.
func (r *Repository) FileConsultation(ctx context.Context, fields models.ConsultationFields, snapshot *triage.Snapshot) (string, error) {
	id := r.newID()
	createdAt := r.now()

	var snapshotJSON, outcome interface{}
	if snapshot != nil {
		raw, err := snapshot.Marshal()
		if err != nil {
			return "", errors.NewInternalError(err)
		}
		snapshotJSON = raw
		if snapshot.Outcome != nil {
			outcome = string(*snapshot.Outcome)
		}
	}

	auditJSON, err := json.Marshal(map[string]interface{}{
		"storeName":     fields.StoreName,
		"agentId":       fields.AgentID,
		"withTriage":    snapshot != nil,
		"triageOutcome": outcome,
	})
	if err != nil {
		auditJSON = []byte("{}")
	}

	err = database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO consultations (
				id, store_name, contact_name, contact_phone, region, agent_id, notes,
				triage_snapshot, triage_outcome, status, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11)`,
			id,
			fields.StoreName,
			fields.ContactName,
			fields.ContactPhone,
			fields.Region,
			fields.AgentID,
			fields.Notes,
			snapshotJSON,
			outcome,
			models.ConsultationStatusFiled,
			createdAt,
		); err != nil {
			return err
		}

		_, err := tx.ExecContext(ctx, `
			INSERT INTO audit_log (event_type, resource_type, resource_id, details, created_at)
			VALUES ($1, $2, $3, $4, $5)`,
			models.AuditEventConsultationFiled,
			models.AuditResourceConsultation,
			id,
			auditJSON,
			createdAt,
		)
		return err
	})
	if err != nil {
		return "", errors.NewDatabaseInsertFailedError(err)
	}
	return id, nil
}

// LoadTriageSnapshot returns the snapshot stored with the consultation, or
// nil when it was filed without triage.
func (r *Repository) LoadTriageSnapshot(ctx context.Context, consultationID string) (*triage.Snapshot, error) {
	var raw []byte
	err := r.db.QueryRowContext(ctx,
		`SELECT triage_snapshot FROM consultations WHERE id = $1`,
		consultationID,
	).Scan(&raw)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.NewConsultationNotFoundError(consultationID)
	}
	if err != nil {
		return nil, errors.NewQueryExecutionFailedError("load_triage_snapshot", err)
	}
	if len(raw) == 0 {
		return nil, nil
	}
	snap := triage.DecodeSnapshot(raw)
	return &snap, nil
}
