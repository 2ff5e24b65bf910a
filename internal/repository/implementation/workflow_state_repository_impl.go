package implementation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"paint-estimate-be/internal/entity"
	"paint-estimate-be/internal/pkg/logger"
	"paint-estimate-be/internal/repository/contract"
	"paint-estimate-be/internal/repository/memory"
	"paint-estimate-be/pkg/workflow"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Workflow sessions survive reloads for a week; after that the draft is stale
// enough to start over.
const workflowStateTTL = 7 * 24 * time.Hour

// WorkflowStateRepositoryImpl persists version-tagged workflow envelopes in
// redis with a write-through in-memory cache. When redis is unreachable the
// cache alone carries the session, which degrades durability, not
// correctness.
type WorkflowStateRepositoryImpl struct {
	rdb    *redis.Client
	cache  *memory.WorkflowCache
	logger logger.ILogger
}

func NewWorkflowStateRepository(rdb *redis.Client, cache *memory.WorkflowCache, log logger.ILogger) contract.WorkflowStateRepository {
	return &WorkflowStateRepositoryImpl{
		rdb:    rdb,
		cache:  cache,
		logger: log,
	}
}

func stateKey(userId, sessionId uuid.UUID) string {
	return fmt.Sprintf("workflow:%s:%s", userId, sessionId)
}

func (r *WorkflowStateRepositoryImpl) Save(ctx context.Context, userId, sessionId uuid.UUID, state *entity.WorkflowState) error {
	key := stateKey(userId, sessionId)
	r.cache.Save(key, state)

	data, err := workflow.Seal(state)
	if err != nil {
		return err
	}

	if err := r.rdb.Set(ctx, key, data, workflowStateTTL).Err(); err != nil {
		r.logger.Warn("workflow_store", "redis save failed, session held in memory only", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
	return nil
}

func (r *WorkflowStateRepositoryImpl) Load(ctx context.Context, userId, sessionId uuid.UUID) (*entity.WorkflowState, bool, error) {
	key := stateKey(userId, sessionId)

	if state, found := r.cache.Get(key); found {
		return state, true, nil
	}

	data, err := r.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load workflow state: %w", err)
	}

	state, err := workflow.Open(data)
	if err != nil {
		if errors.Is(err, workflow.ErrVersionMismatch) {
			// Forward-only migration policy: discard and start fresh.
			r.logger.Warn("workflow_store", "discarding stored state from older schema", map[string]interface{}{
				"key": key,
			})
			_ = r.rdb.Del(ctx, key).Err()
			return nil, false, nil
		}
		return nil, false, err
	}

	r.cache.Save(key, state)
	return state, true, nil
}

func (r *WorkflowStateRepositoryImpl) Clear(ctx context.Context, userId, sessionId uuid.UUID) error {
	key := stateKey(userId, sessionId)
	r.cache.Delete(key)
	if err := r.rdb.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("clear workflow state: %w", err)
	}
	return nil
}
