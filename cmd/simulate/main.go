package main

import (
	"encoding/json"
	"log"

	"paint-estimate-be/internal/entity"
	"paint-estimate-be/internal/pkg/logger"
	"paint-estimate-be/pkg/estimate/lineitem"
	"paint-estimate-be/pkg/estimate/normalize"
	"paint-estimate-be/pkg/workflow"

	"github.com/fatih/color"
)

// Sample extraction payload shaped like the transcription collaborator's
// output: one clean room, one below the confidence gate, one malformed.
const sampleExtraction = `{
	"rooms": [
		{
			"room_id": "kitchen",
			"label": "Kitchen",
			"surfaces": {"walls": true, "cabinets": "yes", "doors": "2"},
			"confidence": 0.91
		},
		{
			"room_id": "garage",
			"label": "Garage",
			"surfaces": {"walls": true},
			"confidence": 0.12
		},
		{
			"room_id": 42,
			"label": "Mystery",
			"surfaces": {"walls": true}
		}
	]
}`

func main() {
	color.Cyan("🚀 Estimate Pipeline Simulation\n")

	sysLogger := mustLogger()
	normalizer := normalize.NewNormalizer(normalize.DefaultConfidenceThreshold, sysLogger)
	generator := lineitem.NewGenerator(sysLogger)
	machine := workflow.NewMachine(normalizer, generator, sysLogger)

	var extraction entity.ExtractionResult
	if err := json.Unmarshal([]byte(sampleExtraction), &extraction); err != nil {
		color.Red("Failed to parse sample extraction: %v", err)
		return
	}

	color.Yellow("\n[1] Select project type")
	st := entity.NewWorkflowState(0.08)
	st = step(machine, st, workflow.Completion{
		Step:        entity.StepProjectType,
		ProjectType: entity.ProjectInterior,
	})

	color.Yellow("\n[2] Capture walkthrough input")
	st = step(machine, st, workflow.Completion{
		Step:          entity.StepInputCapture,
		ExtractedData: &extraction,
		Transcript:    "We want the kitchen walls and cabinets painted, two doors too.",
		Summary:       "Kitchen repaint with cabinets and doors.",
	})
	for _, room := range st.Rooms {
		color.Green("  admitted room: %s (%s)", room.Label, room.Id)
	}

	color.Yellow("\n[3] Review estimate details")
	st = step(machine, st, workflow.Completion{
		Step:           entity.StepReview,
		EstimateFields: map[string]string{"client_name": "Dana Fisher"},
		ClientNotes:    "Prefers low-VOC paint.",
	})

	color.Yellow("\n[4] Confirm pricing")
	st = step(machine, st, workflow.Completion{
		Step:  entity.StepPricing,
		Rooms: st.Rooms,
	})
	for _, item := range st.LineItems {
		color.Green("  %-40s x%d  $%.2f", item.Description, item.Quantity, item.Total)
	}
	color.Green("  subtotal $%.2f  tax $%.2f  total $%.2f", st.Totals.Subtotal, st.Totals.Tax, st.Totals.Total)

	color.Yellow("\n[5] Navigation on a compact client")
	resolved := workflow.ResolveNavigation(entity.StepPricing, true, false)
	color.Green("  pricing request resolved to step %d (%s)", resolved, workflow.StepName(resolved))

	color.Cyan("\nDone.")
}

func step(machine *workflow.Machine, st *entity.WorkflowState, c workflow.Completion) *entity.WorkflowState {
	next, err := machine.Apply(st, c)
	if err != nil {
		color.Red("step %d failed: %v", c.Step, err)
		return st
	}
	return next
}

func mustLogger() logger.ILogger {
	defer func() {
		if r := recover(); r != nil {
			log.Fatalf("logger init failed: %v", r)
		}
	}()
	return logger.NewIsolatedLogger("logs/simulate.log")
}
