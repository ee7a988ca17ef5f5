package level

import (
	"strings"
	"testing"

	"gsnake-editor-api/internal/shared/errors"
)

const validFixture = `{
  "id": 101,
  "name": "Fixture",
  "gridSize": {"width": 12, "height": 10},
  "snake": [{"x": 5, "y": 6}, {"x": 4, "y": 6}],
  "obstacles": [{"x": 2, "y": 2}],
  "food": [{"x": 8, "y": 5}],
  "exit": {"x": 11, "y": 8},
  "snakeDirection": "East",
  "totalFood": 1
}`

func newTestValidator(t *testing.T) *Validator {
	t.Helper()
	v, err := NewValidator()
	if err != nil {
		t.Fatalf("NewValidator: %v", err)
	}
	return v
}

func validate(t *testing.T, payload string) []ValidationDetail {
	t.Helper()
	details, err := newTestValidator(t).Validate([]byte(payload))
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	return details
}

func hasDetail(details []ValidationDetail, field, keyword string) bool {
	for _, d := range details {
		if d.Field == field && d.Keyword == keyword {
			return true
		}
	}
	return false
}

func TestValidateMinimalLevel(t *testing.T) {
	if details := validate(t, validFixture); len(details) != 0 {
		t.Fatalf("expected no violations, got %v", details)
	}
}

func TestValidateMissingOptionalArrays(t *testing.T) {
	// Omitting stones, spikes, floatingFood and fallingFood entirely is the
	// same as sending them empty.
	payload := `{
	  "id": 0,
	  "name": "Sparse",
	  "gridSize": {"width": 5, "height": 5},
	  "snake": [],
	  "exit": null,
	  "snakeDirection": "North",
	  "totalFood": 0
	}`
	if details := validate(t, payload); len(details) != 0 {
		t.Fatalf("expected no violations, got %v", details)
	}
}

func TestValidateOutOfRangeCoordinate(t *testing.T) {
	payload := `{
	  "id": 101,
	  "name": "Fixture",
	  "gridSize": {"width": 12, "height": 10},
	  "snake": [{"x": 5, "y": 6}, {"x": 4, "y": 6}],
	  "food": [{"x": -3, "y": 3}],
	  "exit": {"x": 11, "y": 8},
	  "snakeDirection": "East",
	  "totalFood": 1
	}`
	details := validate(t, payload)
	if !hasDetail(details, "food.0.x", "minimum") {
		t.Fatalf("expected food.0.x minimum violation, got %v", details)
	}
}

func TestValidateCoordinateAboveGrid(t *testing.T) {
	payload := `{
	  "id": 101,
	  "name": "Fixture",
	  "gridSize": {"width": 12, "height": 10},
	  "snake": [{"x": 5, "y": 6}],
	  "food": [{"x": 12, "y": 3}],
	  "exit": null,
	  "snakeDirection": "East",
	  "totalFood": 1
	}`
	details := validate(t, payload)
	if !hasDetail(details, "food.0.x", "maximum") {
		t.Fatalf("expected food.0.x maximum violation, got %v", details)
	}
}

func TestValidateCollectsAllStructuralErrors(t *testing.T) {
	// Three independent defects must yield at least three details.
	payload := `{
	  "id": "abc",
	  "name": "Broken",
	  "gridSize": {"width": "wide", "height": 10},
	  "snake": [],
	  "exit": null,
	  "snakeDirection": "Up",
	  "totalFood": 0
	}`
	details := validate(t, payload)
	if len(details) < 3 {
		t.Fatalf("expected at least 3 details, got %d: %v", len(details), details)
	}
	for _, field := range []string{"id", "gridSize.width", "snakeDirection"} {
		found := false
		for _, d := range details {
			if d.Field == field {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("no detail addressing %s in %v", field, details)
		}
	}
}

func TestValidateMissingRequiredFields(t *testing.T) {
	payload := `{
	  "id": 1,
	  "gridSize": {"width": 10, "height": 10},
	  "exit": null,
	  "snakeDirection": "East",
	  "totalFood": 0
	}`
	details := validate(t, payload)
	if !hasDetail(details, "name", "required") {
		t.Errorf("expected required violation for name, got %v", details)
	}
	if !hasDetail(details, "snake", "required") {
		t.Errorf("expected required violation for snake, got %v", details)
	}
}

func TestValidateRejectsUnknownFields(t *testing.T) {
	payload := `{
	  "id": 1,
	  "name": "Extra",
	  "gridSize": {"width": 10, "height": 10},
	  "snake": [],
	  "exit": null,
	  "snakeDirection": "East",
	  "totalFood": 0,
	  "hacked": true
	}`
	details := validate(t, payload)
	if !hasDetail(details, "hacked", "additionalProperties") {
		t.Fatalf("expected additionalProperties violation for hacked, got %v", details)
	}
}

func TestValidateIncompleteExitYieldsSingleDetail(t *testing.T) {
	// exit is a nullable position. An exit missing a coordinate must be
	// reported once, at the missing property, with no type-mismatch noise
	// from the null alternative.
	payload := strings.Replace(validFixture, `"exit": {"x": 11, "y": 8}`, `"exit": {"x": 11}`, 1)
	details := validate(t, payload)
	if len(details) != 1 {
		t.Fatalf("expected exactly 1 detail, got %d: %v", len(details), details)
	}
	if details[0].Field != "exit.y" || details[0].Keyword != "required" {
		t.Fatalf("detail = %+v", details[0])
	}
}

func TestValidateNullExitAccepted(t *testing.T) {
	payload := strings.Replace(validFixture, `"exit": {"x": 11, "y": 8}`, `"exit": null`, 1)
	if details := validate(t, payload); len(details) != 0 {
		t.Fatalf("expected no violations, got %v", details)
	}
}

func TestValidateBoundsRunOnlyAfterStructuralPass(t *testing.T) {
	// Enum defect plus an out-of-bounds coordinate: the structural failure
	// must suppress the bounds pass.
	payload := `{
	  "id": 1,
	  "name": "Mixed",
	  "gridSize": {"width": 10, "height": 10},
	  "snake": [],
	  "food": [{"x": 99, "y": 0}],
	  "exit": null,
	  "snakeDirection": "Up",
	  "totalFood": 1
	}`
	details := validate(t, payload)
	if len(details) == 0 {
		t.Fatal("expected structural violations")
	}
	for _, d := range details {
		if d.Keyword == "maximum" && d.Field == "food.0.x" {
			t.Fatalf("bounds detail present despite structural failure: %v", details)
		}
	}
}

func TestValidateMalformedJSON(t *testing.T) {
	_, err := newTestValidator(t).Validate([]byte(`{"id": 1,`))
	if err == nil {
		t.Fatal("expected error for malformed JSON")
	}
	if errors.GetType(err) != errors.ErrorTypeMalformedJSON {
		t.Fatalf("error type = %s, want malformed_json", errors.GetType(err))
	}
}

func TestValidateDerivedTotalFoodNotRecomputedByValidator(t *testing.T) {
	// A hand-edited totalFood inconsistent with the arrays is still
	// structurally valid; recomputation is the exporter's job.
	payload := `{
	  "id": 1,
	  "name": "Stale",
	  "gridSize": {"width": 10, "height": 10},
	  "snake": [{"x": 1, "y": 1}],
	  "food": [{"x": 2, "y": 2}],
	  "exit": null,
	  "snakeDirection": "East",
	  "totalFood": 7
	}`
	if details := validate(t, payload); len(details) != 0 {
		t.Fatalf("expected no violations, got %v", details)
	}
}
