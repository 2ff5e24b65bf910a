// Package workflow sequences the estimate derivation pipeline across ordered
// steps. Each stage's completion event carries the data that populates the
// next stage; a completion replaces the relevant slice of state and advances
// the step in one application, so the step index can never run ahead of its
// data.
package workflow

import (
	"fmt"

	"paint-estimate-be/internal/entity"
	"paint-estimate-be/internal/pkg/logger"
	"paint-estimate-be/pkg/estimate/lineitem"
	"paint-estimate-be/pkg/estimate/matrix"
	"paint-estimate-be/pkg/estimate/normalize"
	"paint-estimate-be/pkg/estimate/totals"
)

var stepNames = [entity.StepCount]string{
	"project_type",
	"input_capture",
	"review",
	"pricing",
	"suggestions",
	"content_generation",
	"content_edit",
	"document",
}

func StepName(step int) string {
	if !IsValidStep(step) {
		return "unknown"
	}
	return stepNames[step]
}

func IsValidStep(step int) bool {
	return step >= 0 && step < entity.StepCount
}

// ResolveNavigation applies the compact-client step rule: a narrow viewport
// may not land on the pricing step via navigation and is redirected forward
// to suggestions. The rule is skipped on the very first render so a freshly
// restored session sitting on the pricing step is not clobbered.
func ResolveNavigation(target int, compactClient, firstRender bool) int {
	if compactClient && target == entity.StepPricing && !firstRender {
		return entity.StepSuggestions
	}
	return target
}

// Completion is a stage-completion event. Only the fields belonging to the
// completed step are consulted.
type Completion struct {
	Step                int
	ProjectType         entity.ProjectType
	ExtractedData       *entity.ExtractionResult
	Transcript          string
	Summary             string
	MissingInfo         []string
	EstimateFields      map[string]string
	Rooms               []entity.CanonicalRoom
	TaxRate             *float64
	AcceptedSuggestions []string
	GeneratedContent    []entity.DocumentSection
	EditedContent       []entity.DocumentSection
	ClientNotes         string
}

type Machine struct {
	normalizer *normalize.Normalizer
	generator  *lineitem.Generator
	logger     logger.ILogger
}

func NewMachine(normalizer *normalize.Normalizer, generator *lineitem.Generator, log logger.ILogger) *Machine {
	return &Machine{normalizer: normalizer, generator: generator, logger: log}
}

// Apply consumes a completion event against the current state and returns the
// successor state. The input state is never mutated: the caller persists the
// returned state and swaps it in, which is what makes the transition atomic.
func (m *Machine) Apply(st *entity.WorkflowState, c Completion) (*entity.WorkflowState, error) {
	if !IsValidStep(c.Step) {
		return nil, fmt.Errorf("completion for invalid step %d", c.Step)
	}
	if c.Step != st.CurrentStep {
		return nil, fmt.Errorf("completion for step %d but workflow is on step %d", c.Step, st.CurrentStep)
	}

	next := *st

	switch c.Step {
	case entity.StepProjectType:
		if c.ProjectType != entity.ProjectInterior && c.ProjectType != entity.ProjectExterior {
			return nil, fmt.Errorf("unknown project type %q", c.ProjectType)
		}
		next.ProjectType = c.ProjectType

	case entity.StepInputCapture:
		next.ExtractedData = c.ExtractedData
		next.Transcript = c.Transcript
		next.Summary = c.Summary
		if c.ExtractedData != nil {
			result := m.normalizer.Normalize(c.ExtractedData)
			next.Rooms = result.Rooms
			m.logger.Info("workflow", "normalized extracted rooms", map[string]interface{}{
				"admitted": len(result.Rooms),
			})
		} else {
			next.Rooms = []entity.CanonicalRoom{}
		}
		m.Recompute(&next)

	case entity.StepReview:
		next.MissingInfo = c.MissingInfo
		next.EstimateFields = c.EstimateFields
		if c.ClientNotes != "" {
			next.ClientNotes = c.ClientNotes
		}

	case entity.StepPricing:
		// The review path accepts an operator-adjusted matrix and an
		// operator-edited tax rate; the matrix is re-validated wholesale.
		next.Rooms = matrix.New(c.Rooms).Rooms()
		if c.TaxRate != nil && *c.TaxRate >= 0 {
			next.TaxRate = *c.TaxRate
		}
		m.Recompute(&next)

	case entity.StepSuggestions:
		next.AcceptedSuggestions = c.AcceptedSuggestions

	case entity.StepContentGeneration:
		next.GeneratedContent = c.GeneratedContent

	case entity.StepContentEdit:
		next.EditedContent = c.EditedContent

	case entity.StepDocument:
		// Terminal step. Completion is confirmed via the service's Complete
		// path, which persists the record; nothing to fold into state here.
	}

	if next.CurrentStep < entity.StepDocument {
		next.CurrentStep = c.Step + 1
	}

	return &next, nil
}

// Recompute derives line items and totals from the room matrix as pure
// functions. Invoked after every committed mutation, never cached.
func (m *Machine) Recompute(st *entity.WorkflowState) {
	taxRate := st.TaxRate
	if taxRate <= 0 {
		taxRate = totals.DefaultTaxRate
		st.TaxRate = taxRate
	}
	st.LineItems = m.generator.Generate(st.Rooms)
	st.Totals = totals.Calculate(st.LineItems, taxRate)
}
