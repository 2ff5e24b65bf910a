package entity

// ProjectType selects the estimate flavor at the first workflow step.
type ProjectType string

const (
	ProjectInterior ProjectType = "interior"
	ProjectExterior ProjectType = "exterior"
)

// Workflow step indices, in completion order.
const (
	StepProjectType = iota
	StepInputCapture
	StepReview
	StepPricing
	StepSuggestions
	StepContentGeneration
	StepContentEdit
	StepDocument
	StepCount
)

// WorkflowSchemaVersion gates restore: a stored state whose version does not
// match is discarded and the workflow starts fresh.
const WorkflowSchemaVersion = 1

// DocumentSection is one block of the generated estimate document.
type DocumentSection struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// WorkflowState is the whole of one estimate-creation session. It is replaced
// wholesale on each step transition and serialized after every change.
type WorkflowState struct {
	CurrentStep         int               `json:"current_step"`
	ProjectType         ProjectType       `json:"project_type"`
	ExtractedData       *ExtractionResult `json:"extracted_data,omitempty"`
	Transcript          string            `json:"transcript,omitempty"`
	Summary             string            `json:"summary,omitempty"`
	MissingInfo         []string          `json:"missing_info,omitempty"`
	EstimateFields      map[string]string `json:"estimate_fields,omitempty"`
	Rooms               []CanonicalRoom   `json:"rooms"`
	LineItems           []LineItem        `json:"line_items"`
	Totals              Totals            `json:"totals"`
	TaxRate             float64           `json:"tax_rate"`
	AcceptedSuggestions []string          `json:"accepted_suggestions,omitempty"`
	GeneratedContent    []DocumentSection `json:"generated_content,omitempty"`
	EditedContent       []DocumentSection `json:"edited_content,omitempty"`
	ClientNotes         string            `json:"client_notes,omitempty"`
}

// Clone returns a state the caller may mutate without affecting the
// original. Slices and the fields map are copied; ExtractedData is shared
// because it is immutable once captured.
func (s *WorkflowState) Clone() *WorkflowState {
	if s == nil {
		return nil
	}
	out := *s
	out.MissingInfo = append([]string(nil), s.MissingInfo...)
	out.Rooms = append([]CanonicalRoom(nil), s.Rooms...)
	out.LineItems = append([]LineItem(nil), s.LineItems...)
	out.AcceptedSuggestions = append([]string(nil), s.AcceptedSuggestions...)
	out.GeneratedContent = append([]DocumentSection(nil), s.GeneratedContent...)
	out.EditedContent = append([]DocumentSection(nil), s.EditedContent...)
	if s.EstimateFields != nil {
		out.EstimateFields = make(map[string]string, len(s.EstimateFields))
		for k, v := range s.EstimateFields {
			out.EstimateFields[k] = v
		}
	}
	return &out
}

// NewWorkflowState returns the defaults a session starts from.
func NewWorkflowState(taxRate float64) *WorkflowState {
	return &WorkflowState{
		CurrentStep: StepProjectType,
		ProjectType: ProjectInterior,
		Rooms:       []CanonicalRoom{},
		LineItems:   []LineItem{},
		TaxRate:     taxRate,
	}
}
