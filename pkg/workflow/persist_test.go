package workflow

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"paint-estimate-be/internal/entity"
)

func TestSealOpenRoundTrip(t *testing.T) {
	st := entity.NewWorkflowState(0.08)
	st.CurrentStep = entity.StepPricing
	st.ProjectType = entity.ProjectInterior
	st.Rooms = []entity.CanonicalRoom{{Id: "kitchen", Label: "Kitchen", Walls: true, Confidence: 1}}
	st.EstimateFields = map[string]string{"client_name": "Dana Fisher"}

	data, err := Seal(st)
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}

	restored, err := Open(data)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if restored.CurrentStep != entity.StepPricing || restored.ProjectType != entity.ProjectInterior {
		t.Errorf("restored state wrong: step=%d type=%q", restored.CurrentStep, restored.ProjectType)
	}
	if len(restored.Rooms) != 1 || restored.Rooms[0].Id != "kitchen" {
		t.Errorf("rooms not restored: %+v", restored.Rooms)
	}
	if restored.EstimateFields["client_name"] != "Dana Fisher" {
		t.Errorf("fields not restored: %+v", restored.EstimateFields)
	}
}

func TestSealStampsVersionAndTimestamp(t *testing.T) {
	before := time.Now().UnixMilli()
	data, err := Seal(entity.NewWorkflowState(0.08))
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	after := time.Now().UnixMilli()

	var env struct {
		Version   int   `json:"version"`
		Timestamp int64 `json:"timestamp"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}
	if env.Version != entity.WorkflowSchemaVersion {
		t.Errorf("version = %d, want %d", env.Version, entity.WorkflowSchemaVersion)
	}
	if env.Timestamp < before || env.Timestamp > after {
		t.Errorf("timestamp %d outside [%d, %d]", env.Timestamp, before, after)
	}
}

func TestOpenRejectsVersionMismatch(t *testing.T) {
	st := entity.NewWorkflowState(0.08)
	data, err := Seal(st)
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}
	raw["version"] = entity.WorkflowSchemaVersion + 1
	stale, _ := json.Marshal(raw)

	if _, err := Open(stale); !errors.Is(err, ErrVersionMismatch) {
		t.Errorf("Open returned %v, want ErrVersionMismatch", err)
	}
}

func TestOpenRejectsGarbage(t *testing.T) {
	if _, err := Open([]byte("{not json")); err == nil {
		t.Error("garbage payload must fail")
	}
}
