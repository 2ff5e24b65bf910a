package workflow

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"paint-estimate-be/internal/entity"
)

// ErrVersionMismatch marks a stored state written under a different schema
// version. Restore treats it as non-fatal and starts fresh; there is no
// partial upgrade.
var ErrVersionMismatch = errors.New("stored workflow state version mismatch")

// Envelope is the durable wire form: the whole WorkflowState flattened
// together with a schema version tag and an epoch-ms timestamp.
type Envelope struct {
	entity.WorkflowState
	Version   int   `json:"version"`
	Timestamp int64 `json:"timestamp"`
}

// Seal serializes a state for durable storage, stamping the current schema
// version and time.
func Seal(st *entity.WorkflowState) ([]byte, error) {
	env := Envelope{
		WorkflowState: *st,
		Version:       entity.WorkflowSchemaVersion,
		Timestamp:     time.Now().UnixMilli(),
	}
	data, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("seal workflow state: %w", err)
	}
	return data, nil
}

// Open deserializes a stored envelope, enforcing the version gate.
func Open(data []byte) (*entity.WorkflowState, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("open workflow state: %w", err)
	}
	if env.Version != entity.WorkflowSchemaVersion {
		return nil, fmt.Errorf("%w: stored %d, current %d", ErrVersionMismatch, env.Version, entity.WorkflowSchemaVersion)
	}
	st := env.WorkflowState
	return &st, nil
}
