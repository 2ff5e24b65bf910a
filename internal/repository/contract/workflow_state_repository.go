package contract

import (
	"context"

	"paint-estimate-be/internal/entity"

	"github.com/google/uuid"
)

// WorkflowStateRepository is the durable home of in-progress sessions. Save
// runs after every state change; Load applies the schema-version gate and
// reports a mismatch as not-found.
type WorkflowStateRepository interface {
	Save(ctx context.Context, userId, sessionId uuid.UUID, state *entity.WorkflowState) error
	Load(ctx context.Context, userId, sessionId uuid.UUID) (*entity.WorkflowState, bool, error)
	Clear(ctx context.Context, userId, sessionId uuid.UUID) error
}
