package workflow

import (
	"testing"

	"paint-estimate-be/internal/entity"
	"paint-estimate-be/pkg/estimate/lineitem"
	"paint-estimate-be/pkg/estimate/normalize"
)

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

func newTestMachine() *Machine {
	log := nopLogger{}
	return NewMachine(
		normalize.NewNormalizer(normalize.DefaultConfidenceThreshold, log),
		lineitem.NewGenerator(log),
		log,
	)
}

func confidence(v float64) *float64 { return &v }

func TestApplyRejectsWrongStep(t *testing.T) {
	m := newTestMachine()
	st := entity.NewWorkflowState(0.08)

	if _, err := m.Apply(st, Completion{Step: entity.StepPricing}); err == nil {
		t.Error("completing a future step must fail")
	}
	if _, err := m.Apply(st, Completion{Step: -1}); err == nil {
		t.Error("invalid step index must fail")
	}
	if _, err := m.Apply(st, Completion{Step: entity.StepCount}); err == nil {
		t.Error("out-of-range step index must fail")
	}
}

func TestApplyProjectType(t *testing.T) {
	m := newTestMachine()
	st := entity.NewWorkflowState(0.08)

	next, err := m.Apply(st, Completion{Step: entity.StepProjectType, ProjectType: entity.ProjectInterior})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if next.ProjectType != entity.ProjectInterior {
		t.Errorf("project type = %q", next.ProjectType)
	}
	if next.CurrentStep != entity.StepInputCapture {
		t.Errorf("current step = %d, want %d", next.CurrentStep, entity.StepInputCapture)
	}
	if st.CurrentStep != entity.StepProjectType {
		t.Error("input state was mutated")
	}

	if _, err := m.Apply(st, Completion{Step: entity.StepProjectType, ProjectType: "boat"}); err == nil {
		t.Error("unknown project type must fail")
	}
}

func TestApplyInputCaptureNormalizesAndPrices(t *testing.T) {
	m := newTestMachine()
	st := entity.NewWorkflowState(0.08)
	st.CurrentStep = entity.StepInputCapture

	next, err := m.Apply(st, Completion{
		Step: entity.StepInputCapture,
		ExtractedData: &entity.ExtractionResult{
			Rooms: []entity.ExtractedRoom{
				{
					RoomId:     "kitchen",
					Label:      "Kitchen",
					Surfaces:   map[string]interface{}{"walls": true, "doors": float64(2)},
					Confidence: confidence(0.9),
				},
			},
		},
		Transcript: "kitchen walls and two doors",
	})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if len(next.Rooms) != 1 {
		t.Fatalf("rooms = %d, want 1", len(next.Rooms))
	}
	// walls + doors + two fixed items
	if len(next.LineItems) != 4 {
		t.Fatalf("line items = %d, want 4", len(next.LineItems))
	}
	if next.Totals.Subtotal != 1400 || next.Totals.Total != 1512 {
		t.Errorf("totals = %+v, want subtotal 1400 total 1512", next.Totals)
	}
	if next.Transcript != "kitchen walls and two doors" {
		t.Errorf("transcript not carried: %q", next.Transcript)
	}
}

func TestApplyPricingRevalidatesAndAppliesTaxRate(t *testing.T) {
	m := newTestMachine()
	st := entity.NewWorkflowState(0.08)
	st.CurrentStep = entity.StepPricing

	rate := 0.1
	next, err := m.Apply(st, Completion{
		Step: entity.StepPricing,
		Rooms: []entity.CanonicalRoom{
			{Id: "kitchen", Label: "Kitchen", Walls: true, Confidence: 1},
			{Id: "", Label: "Invalid", Walls: true},
		},
		TaxRate: &rate,
	})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if len(next.Rooms) != 1 {
		t.Errorf("rooms = %d, invalid room must be dropped", len(next.Rooms))
	}
	if next.TaxRate != 0.1 {
		t.Errorf("tax rate = %v, want 0.1", next.TaxRate)
	}
	// 400 walls + 350 prep + 450 materials = 1200, tax 120
	if next.Totals.Subtotal != 1200 || next.Totals.Tax != 120 {
		t.Errorf("totals = %+v", next.Totals)
	}
}

func TestApplyDocumentStepIsTerminal(t *testing.T) {
	m := newTestMachine()
	st := entity.NewWorkflowState(0.08)
	st.CurrentStep = entity.StepDocument

	next, err := m.Apply(st, Completion{Step: entity.StepDocument})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if next.CurrentStep != entity.StepDocument {
		t.Errorf("current step advanced past terminal: %d", next.CurrentStep)
	}
}

func TestRecomputeDefaultsTaxRate(t *testing.T) {
	m := newTestMachine()
	st := entity.NewWorkflowState(0)
	st.Rooms = []entity.CanonicalRoom{{Id: "kitchen", Label: "Kitchen", Walls: true, Confidence: 1}}

	m.Recompute(st)
	if st.TaxRate != 0.08 {
		t.Errorf("tax rate = %v, want default 0.08", st.TaxRate)
	}
}

func TestResolveNavigation(t *testing.T) {
	tests := []struct {
		name          string
		target        int
		compactClient bool
		firstRender   bool
		want          int
	}{
		{name: "full client to pricing", target: entity.StepPricing, want: entity.StepPricing},
		{name: "compact client redirected past pricing", target: entity.StepPricing, compactClient: true, want: entity.StepSuggestions},
		{name: "compact client first render stays", target: entity.StepPricing, compactClient: true, firstRender: true, want: entity.StepPricing},
		{name: "compact client other steps untouched", target: entity.StepReview, compactClient: true, want: entity.StepReview},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveNavigation(tt.target, tt.compactClient, tt.firstRender); got != tt.want {
				t.Errorf("ResolveNavigation(%d, %v, %v) = %d, want %d", tt.target, tt.compactClient, tt.firstRender, got, tt.want)
			}
		})
	}
}

func TestStepNames(t *testing.T) {
	if name := StepName(entity.StepProjectType); name != "project_type" {
		t.Errorf("step 0 name = %q", name)
	}
	if name := StepName(entity.StepDocument); name != "document" {
		t.Errorf("document step name = %q", name)
	}
	if name := StepName(99); name != "unknown" {
		t.Errorf("out-of-range step name = %q", name)
	}
}
