package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"paint-estimate-be/internal/config"
	"paint-estimate-be/internal/dto"
	"paint-estimate-be/internal/entity"
	"paint-estimate-be/internal/pkg/logger"
	"paint-estimate-be/internal/repository/contract"
	"paint-estimate-be/internal/repository/unitofwork"
	"paint-estimate-be/pkg/ai"
	"paint-estimate-be/pkg/estimate/matrix"
	"paint-estimate-be/pkg/estimate/schema"
	"paint-estimate-be/pkg/events"
	pktNats "paint-estimate-be/pkg/nats"
	"paint-estimate-be/pkg/workflow"

	"github.com/google/uuid"
)

// CollaboratorError wraps failures of the transcription or content
// collaborators. The pipeline never auto-retries: the caller surfaces this as
// a retryable error state and the client re-invokes the same idempotent call.
type CollaboratorError struct {
	Stage string
	Err   error
}

func (e *CollaboratorError) Error() string {
	return fmt.Sprintf("%s collaborator failed: %v", e.Stage, e.Err)
}

func (e *CollaboratorError) Unwrap() error {
	return e.Err
}

type IWorkflowService interface {
	Start(ctx context.Context, userId uuid.UUID, req *dto.StartWorkflowRequest) (*dto.WorkflowStateResponse, error)
	GetState(ctx context.Context, userId, sessionId uuid.UUID) (*dto.WorkflowStateResponse, error)
	SelectProjectType(ctx context.Context, userId uuid.UUID, req *dto.SelectProjectTypeRequest) (*dto.WorkflowStateResponse, error)
	CaptureInput(ctx context.Context, userId uuid.UUID, req *dto.CaptureInputRequest) (*dto.WorkflowStateResponse, error)
	CompleteReview(ctx context.Context, userId uuid.UUID, req *dto.CompleteReviewRequest) (*dto.WorkflowStateResponse, error)
	CompletePricing(ctx context.Context, userId uuid.UUID, req *dto.CompletePricingRequest) (*dto.WorkflowStateResponse, error)
	CompleteSuggestions(ctx context.Context, userId uuid.UUID, req *dto.CompleteSuggestionsRequest) (*dto.WorkflowStateResponse, error)
	GenerateContent(ctx context.Context, userId uuid.UUID, req *dto.GenerateContentRequest) (*dto.WorkflowStateResponse, error)
	CompleteContentEdit(ctx context.Context, userId uuid.UUID, req *dto.CompleteContentEditRequest) (*dto.WorkflowStateResponse, error)
	Navigate(ctx context.Context, userId uuid.UUID, req *dto.NavigateRequest) (*dto.WorkflowStateResponse, error)
	AddRoom(ctx context.Context, userId uuid.UUID, req *dto.AddRoomRequest) (*dto.WorkflowStateResponse, error)
	UpdateSurface(ctx context.Context, userId uuid.UUID, req *dto.UpdateSurfaceRequest) (*dto.WorkflowStateResponse, error)
	RemoveRoom(ctx context.Context, userId uuid.UUID, req *dto.RemoveRoomRequest) (*dto.WorkflowStateResponse, error)
	Restart(ctx context.Context, userId uuid.UUID, req *dto.RestartWorkflowRequest) (*dto.WorkflowStateResponse, error)
	Complete(ctx context.Context, userId uuid.UUID, req *dto.CompleteWorkflowRequest) (*dto.CompleteWorkflowResponse, error)
}

type workflowService struct {
	machine          *workflow.Machine
	stateRepo        contract.WorkflowStateRepository
	uowFactory       unitofwork.RepositoryFactory
	transcriber      ai.TranscriptionProvider
	contentProvider  ai.ContentProvider
	publisherService IPublisherService
	eventPublisher   *pktNats.Publisher
	estimateCfg      config.EstimateConfig
	logger           logger.ILogger
}

func NewWorkflowService(
	machine *workflow.Machine,
	stateRepo contract.WorkflowStateRepository,
	uowFactory unitofwork.RepositoryFactory,
	transcriber ai.TranscriptionProvider,
	contentProvider ai.ContentProvider,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
	estimateCfg config.EstimateConfig,
	log logger.ILogger,
) IWorkflowService {
	return &workflowService{
		machine:          machine,
		stateRepo:        stateRepo,
		uowFactory:       uowFactory,
		transcriber:      transcriber,
		contentProvider:  contentProvider,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		estimateCfg:      estimateCfg,
		logger:           log,
	}
}

func (s *workflowService) stateResponse(sessionId uuid.UUID, st *entity.WorkflowState, restored bool) *dto.WorkflowStateResponse {
	return &dto.WorkflowStateResponse{
		SessionId: sessionId,
		StepName:  workflow.StepName(st.CurrentStep),
		Restored:  restored,
		State:     st,
	}
}

func (s *workflowService) Start(ctx context.Context, userId uuid.UUID, req *dto.StartWorkflowRequest) (*dto.WorkflowStateResponse, error) {
	if req.SessionId != nil {
		st, found, err := s.stateRepo.Load(ctx, userId, *req.SessionId)
		if err != nil {
			return nil, err
		}
		if found {
			return s.stateResponse(*req.SessionId, st, true), nil
		}
	}

	sessionId := uuid.New()
	if req.SessionId != nil {
		// A stale or version-mismatched session keeps its id so the client
		// does not lose its bookmark; the state itself starts fresh.
		sessionId = *req.SessionId
	}

	st := entity.NewWorkflowState(s.estimateCfg.TaxRate)
	if err := s.stateRepo.Save(ctx, userId, sessionId, st); err != nil {
		return nil, err
	}
	return s.stateResponse(sessionId, st, false), nil
}

func (s *workflowService) GetState(ctx context.Context, userId, sessionId uuid.UUID) (*dto.WorkflowStateResponse, error) {
	st, err := s.load(ctx, userId, sessionId)
	if err != nil {
		return nil, err
	}
	return s.stateResponse(sessionId, st, false), nil
}

func (s *workflowService) load(ctx context.Context, userId, sessionId uuid.UUID) (*entity.WorkflowState, error) {
	st, found, err := s.stateRepo.Load(ctx, userId, sessionId)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("workflow session %s not found", sessionId)
	}
	return st, nil
}

// applyCompletion runs one transition end to end: load, apply, persist. The
// stored state is only replaced after Apply succeeds, so a failed completion
// leaves the session exactly where it was.
func (s *workflowService) applyCompletion(ctx context.Context, userId, sessionId uuid.UUID, c workflow.Completion) (*dto.WorkflowStateResponse, error) {
	st, err := s.load(ctx, userId, sessionId)
	if err != nil {
		return nil, err
	}

	next, err := s.machine.Apply(st, c)
	if err != nil {
		return nil, err
	}

	if err := s.stateRepo.Save(ctx, userId, sessionId, next); err != nil {
		return nil, err
	}
	return s.stateResponse(sessionId, next, false), nil
}

func (s *workflowService) SelectProjectType(ctx context.Context, userId uuid.UUID, req *dto.SelectProjectTypeRequest) (*dto.WorkflowStateResponse, error) {
	return s.applyCompletion(ctx, userId, req.SessionId, workflow.Completion{
		Step:        entity.StepProjectType,
		ProjectType: entity.ProjectType(req.ProjectType),
	})
}

func (s *workflowService) CaptureInput(ctx context.Context, userId uuid.UUID, req *dto.CaptureInputRequest) (*dto.WorkflowStateResponse, error) {
	transcript := req.Transcript
	summary := req.Summary
	extracted := req.ExtractedData

	if req.AudioBase64 != "" {
		audio, err := base64.StdEncoding.DecodeString(req.AudioBase64)
		if err != nil {
			return nil, fmt.Errorf("decode audio payload: %w", err)
		}
		resp, err := s.transcriber.Transcribe(ctx, audio, req.MimeType)
		if err != nil {
			return nil, &CollaboratorError{Stage: "transcription", Err: err}
		}
		transcript = resp.Transcript
		summary = resp.Summary
		extracted = resp.Extraction
	}

	return s.applyCompletion(ctx, userId, req.SessionId, workflow.Completion{
		Step:          entity.StepInputCapture,
		ExtractedData: extracted,
		Transcript:    transcript,
		Summary:       summary,
	})
}

func (s *workflowService) CompleteReview(ctx context.Context, userId uuid.UUID, req *dto.CompleteReviewRequest) (*dto.WorkflowStateResponse, error) {
	return s.applyCompletion(ctx, userId, req.SessionId, workflow.Completion{
		Step:           entity.StepReview,
		MissingInfo:    req.MissingInfo,
		EstimateFields: req.EstimateFields,
		ClientNotes:    req.ClientNotes,
	})
}

func (s *workflowService) CompletePricing(ctx context.Context, userId uuid.UUID, req *dto.CompletePricingRequest) (*dto.WorkflowStateResponse, error) {
	return s.applyCompletion(ctx, userId, req.SessionId, workflow.Completion{
		Step:    entity.StepPricing,
		Rooms:   req.Rooms,
		TaxRate: req.TaxRate,
	})
}

func (s *workflowService) CompleteSuggestions(ctx context.Context, userId uuid.UUID, req *dto.CompleteSuggestionsRequest) (*dto.WorkflowStateResponse, error) {
	return s.applyCompletion(ctx, userId, req.SessionId, workflow.Completion{
		Step:                entity.StepSuggestions,
		AcceptedSuggestions: req.AcceptedSuggestions,
	})
}

func (s *workflowService) GenerateContent(ctx context.Context, userId uuid.UUID, req *dto.GenerateContentRequest) (*dto.WorkflowStateResponse, error) {
	st, err := s.load(ctx, userId, req.SessionId)
	if err != nil {
		return nil, err
	}
	if st.CurrentStep != entity.StepContentGeneration {
		return nil, fmt.Errorf("content generation requested on step %d", st.CurrentStep)
	}

	sections, err := s.contentProvider.GenerateContent(ctx, &ai.ContentRequest{
		EstimateData: st.EstimateFields,
		ProjectType:  st.ProjectType,
		LineItems:    st.LineItems,
		Totals:       st.Totals,
		RoomsMatrix:  st.Rooms,
		ClientNotes:  st.ClientNotes,
	})
	if err != nil {
		return nil, &CollaboratorError{Stage: "content generation", Err: err}
	}

	return s.applyCompletion(ctx, userId, req.SessionId, workflow.Completion{
		Step:             entity.StepContentGeneration,
		GeneratedContent: sections,
	})
}

func (s *workflowService) CompleteContentEdit(ctx context.Context, userId uuid.UUID, req *dto.CompleteContentEditRequest) (*dto.WorkflowStateResponse, error) {
	return s.applyCompletion(ctx, userId, req.SessionId, workflow.Completion{
		Step:          entity.StepContentEdit,
		EditedContent: req.EditedContent,
	})
}

func (s *workflowService) Navigate(ctx context.Context, userId uuid.UUID, req *dto.NavigateRequest) (*dto.WorkflowStateResponse, error) {
	st, err := s.load(ctx, userId, req.SessionId)
	if err != nil {
		return nil, err
	}

	target := workflow.ResolveNavigation(req.TargetStep, req.CompactClient, req.FirstRender)
	if !workflow.IsValidStep(target) {
		return nil, fmt.Errorf("invalid navigation target %d", req.TargetStep)
	}
	if target != req.TargetStep {
		s.logger.Info("workflow", "compact client redirected away from pricing step", map[string]interface{}{
			"requested": req.TargetStep,
			"resolved":  target,
		})
	}

	st.CurrentStep = target
	if err := s.stateRepo.Save(ctx, userId, req.SessionId, st); err != nil {
		return nil, err
	}
	return s.stateResponse(req.SessionId, st, false), nil
}

// mutateMatrix applies one matrix operation, recomputes derived values, and
// persists. Mutations never advance the step.
func (s *workflowService) mutateMatrix(ctx context.Context, userId, sessionId uuid.UUID, op func(*matrix.Matrix) error) (*dto.WorkflowStateResponse, error) {
	st, err := s.load(ctx, userId, sessionId)
	if err != nil {
		return nil, err
	}

	m := matrix.New(st.Rooms)
	if err := op(m); err != nil {
		return nil, err
	}

	st.Rooms = m.Rooms()
	s.machine.Recompute(st)

	if err := s.stateRepo.Save(ctx, userId, sessionId, st); err != nil {
		return nil, err
	}
	return s.stateResponse(sessionId, st, false), nil
}

func (s *workflowService) AddRoom(ctx context.Context, userId uuid.UUID, req *dto.AddRoomRequest) (*dto.WorkflowStateResponse, error) {
	var tpl *entity.RoomTemplate
	for i := range schema.RoomTemplates {
		if schema.RoomTemplates[i].Category == req.Category {
			tpl = &schema.RoomTemplates[i]
			break
		}
	}
	if tpl == nil {
		return nil, fmt.Errorf("unknown room category %q", req.Category)
	}

	return s.mutateMatrix(ctx, userId, req.SessionId, func(m *matrix.Matrix) error {
		_, err := m.AddRoom(*tpl, req.CustomLabel)
		return err
	})
}

func (s *workflowService) UpdateSurface(ctx context.Context, userId uuid.UUID, req *dto.UpdateSurfaceRequest) (*dto.WorkflowStateResponse, error) {
	return s.mutateMatrix(ctx, userId, req.SessionId, func(m *matrix.Matrix) error {
		switch req.Surface {
		case entity.SurfaceDoors, entity.SurfaceWindows:
			if req.Count == nil {
				return fmt.Errorf("surface %q requires a count", req.Surface)
			}
			return m.SetSurfaceCount(req.RoomId, req.Surface, *req.Count)
		default:
			if req.Value == nil {
				return fmt.Errorf("surface %q requires a value", req.Surface)
			}
			return m.ToggleSurface(req.RoomId, req.Surface, *req.Value)
		}
	})
}

func (s *workflowService) RemoveRoom(ctx context.Context, userId uuid.UUID, req *dto.RemoveRoomRequest) (*dto.WorkflowStateResponse, error) {
	return s.mutateMatrix(ctx, userId, req.SessionId, func(m *matrix.Matrix) error {
		if !m.Remove(req.RoomId) {
			return fmt.Errorf("room %q not found", req.RoomId)
		}
		return nil
	})
}

func (s *workflowService) Restart(ctx context.Context, userId uuid.UUID, req *dto.RestartWorkflowRequest) (*dto.WorkflowStateResponse, error) {
	if err := s.stateRepo.Clear(ctx, userId, req.SessionId); err != nil {
		s.logger.Warn("workflow", "failed to clear durable state on restart", map[string]interface{}{
			"session_id": req.SessionId,
			"error":      err.Error(),
		})
	}

	st := entity.NewWorkflowState(s.estimateCfg.TaxRate)
	if err := s.stateRepo.Save(ctx, userId, req.SessionId, st); err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		evt := events.BaseEvent{
			Type: events.TypeWorkflowRestarted,
			Data: map[string]interface{}{
				"user_id":    userId,
				"session_id": req.SessionId,
			},
			OccurredAt: time.Now(),
		}
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.logger.Warn("workflow", "failed to publish restart event", map[string]interface{}{"error": err.Error()})
		}
	}

	return s.stateResponse(req.SessionId, st, false), nil
}

func (s *workflowService) Complete(ctx context.Context, userId uuid.UUID, req *dto.CompleteWorkflowRequest) (*dto.CompleteWorkflowResponse, error) {
	st, err := s.load(ctx, userId, req.SessionId)
	if err != nil {
		return nil, err
	}
	if st.CurrentStep != entity.StepDocument {
		return nil, fmt.Errorf("workflow is on step %d, not ready to complete", st.CurrentStep)
	}

	content := st.EditedContent
	if len(content) == 0 {
		content = st.GeneratedContent
	}

	estimate := entity.Estimate{
		Id:               uuid.New(),
		UserId:           userId,
		ProjectType:      st.ProjectType,
		ClientNotes:      st.ClientNotes,
		Transcript:       st.Transcript,
		Summary:          st.Summary,
		Rooms:            st.Rooms,
		LineItems:        st.LineItems,
		Totals:           st.Totals,
		TaxRate:          st.TaxRate,
		GeneratedContent: content,
		CreatedAt:        time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.EstimateRepository().Create(ctx, &estimate); err != nil {
		return nil, err
	}

	// Record is durable; the draft is done with.
	if err := s.stateRepo.Clear(ctx, userId, req.SessionId); err != nil {
		s.logger.Warn("workflow", "failed to clear durable state after completion", map[string]interface{}{
			"session_id": req.SessionId,
			"error":      err.Error(),
		})
	}

	msgPayload := dto.PublishEstimateCompletedMessage{
		EstimateId:   estimate.Id,
		UserId:       userId,
		SummaryEmail: req.SummaryEmail,
	}
	msgJson, err := json.Marshal(msgPayload)
	if err == nil {
		if err := s.publisherService.Publish(ctx, msgJson); err != nil {
			s.logger.Warn("workflow", "failed to publish completion message", map[string]interface{}{"error": err.Error()})
		}
	}

	if s.eventPublisher != nil {
		evt := events.BaseEvent{
			Type: events.TypeEstimateCompleted,
			Data: map[string]interface{}{
				"estimate_id": estimate.Id,
				"user_id":     userId,
				"total":       estimate.Totals.Total,
			},
			OccurredAt: time.Now(),
		}
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.logger.Warn("workflow", "failed to publish completion event", map[string]interface{}{"error": err.Error()})
		}
	}

	return &dto.CompleteWorkflowResponse{EstimateId: estimate.Id}, nil
}
