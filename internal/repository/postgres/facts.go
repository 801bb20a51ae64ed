package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mforoutan/nak-tender-manager-sub001/internal/model"
)

var _ model.FactSource = (*FactRepository)(nil)

// FactRepository is the derived-fact source: account task status and process
// participation counts computed from portal state.
type FactRepository struct {
	db *Connection
}

func NewFactRepository(db *Connection) *FactRepository {
	return &FactRepository{
		db: db,
	}
}

func (r *FactRepository) AccountTask(ctx context.Context, companyID uuid.UUID) (model.TaskStatus, error) {
	var (
		kind   string
		reason *string
	)
	query := `SELECT status, rejection_reason FROM account_tasks WHERE company_id = $1`

	err := r.db.QueryRow(ctx, query, companyID).Scan(&kind, &reason)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// No task row yet means verification has not started.
			return model.TaskStatus{Kind: model.TaskPending}, nil
		}
		return model.TaskStatus{}, fmt.Errorf("failed to get account task: %w", err)
	}

	task := model.TaskStatus{Kind: model.TaskKind(kind)}
	if reason != nil {
		task.RejectionReason = *reason
	}

	return task, nil
}

func (r *FactRepository) Participation(ctx context.Context, companyID uuid.UUID) (model.Participation, error) {
	var participation model.Participation
	query := `SELECT
				(SELECT count(*) FROM tender_participants WHERE company_id = $1),
				(SELECT count(*) FROM inquiry_participants WHERE company_id = $1),
				(SELECT count(*) FROM call_participants WHERE company_id = $1)`

	err := r.db.QueryRow(ctx, query, companyID).Scan(
		&participation.TenderCount, &participation.InquiryCount, &participation.CallCount,
	)
	if err != nil {
		return model.Participation{}, fmt.Errorf("failed to get participation counts: %w", err)
	}

	return participation, nil
}
