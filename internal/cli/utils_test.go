package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/worldjourney/platoo/internal/models"
	"github.com/worldjourney/platoo/internal/suggest"
)

func TestWriteCorrection_Text(t *testing.T) {
	result := &models.CorrectionResult{
		Original:  "bangok",
		Corrected: "Bangkok",
		Tokens: []models.TokenDecision{
			{Token: "bangok", Output: "Bangkok", Action: models.TokenCorrected, Alias: "Bangkok", Score: 0.86},
		},
	}
	var buf bytes.Buffer
	if err := WriteCorrection(&buf, result, OutputText); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "Corrected: Bangkok") {
		t.Errorf("output missing corrected line:\n%s", out)
	}
	if !strings.Contains(out, "bangok -> Bangkok") {
		t.Errorf("output missing token line:\n%s", out)
	}
}

func TestWriteCorrection_JSON(t *testing.T) {
	result := &models.CorrectionResult{Original: "x", Corrected: "x"}
	var buf bytes.Buffer
	if err := WriteCorrection(&buf, result, OutputJSON); err != nil {
		t.Fatal(err)
	}
	var parsed models.CorrectionResult
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
}

func TestWriteResolution_Text(t *testing.T) {
	tests := []struct {
		name string
		res  *models.Resolution
		want string
	}{
		{
			"resolved",
			&models.Resolution{
				Outcome: models.OutcomeResolved,
				Entry:   &models.GazetteerEntry{Name: "ตลาดน้ำอัมพวา", Province: "สมุทรสงคราม"},
				Lead:    0.31,
			},
			"Resolved: ตลาดน้ำอัมพวา",
		},
		{
			"ambiguous",
			&models.Resolution{
				Outcome: models.OutcomeAmbiguous,
				Tied: []*models.Candidate{
					{Entry: &models.GazetteerEntry{Name: "วัดกลาง บางแพ"}},
					{Entry: &models.GazetteerEntry{Name: "วัดกลาง เมืองสุพรรณ"}},
				},
			},
			"Ambiguous between:",
		},
		{
			"no match",
			&models.Resolution{Outcome: models.OutcomeNoMatch},
			"No confident match",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := WriteResolution(&buf, tt.res, OutputText); err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("output = %q, want substring %q", buf.String(), tt.want)
			}
		})
	}
}

func TestWriteSuggestions_Text(t *testing.T) {
	res := &suggest.Result{
		Query:  "อัมพวา",
		Source: suggest.SourceLocal,
		Suggestions: []models.Suggestion{
			{Name: "ตลาดน้ำอัมพวา", Subtitle: "สมุทรสงคราม", Kind: "exact", Score: 1.0},
		},
	}
	var buf bytes.Buffer
	if err := WriteSuggestions(&buf, res, OutputText); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "ตลาดน้ำอัมพวา") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestWriteSuggestions_EmptyAndAdvisory(t *testing.T) {
	res := &suggest.Result{
		Query:    "nowhere",
		Source:   suggest.SourceLocal,
		Advisory: "remote place directory unavailable, showing local matches only",
	}
	var buf bytes.Buffer
	if err := WriteSuggestions(&buf, res, OutputText); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "note:") {
		t.Errorf("advisory not printed:\n%s", out)
	}
	if !strings.Contains(out, "No suggestions") {
		t.Errorf("empty result not reported:\n%s", out)
	}
}
