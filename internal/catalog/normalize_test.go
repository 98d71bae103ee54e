package catalog

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestNormalizeCategoryPage_FieldPriority(t *testing.T) {
	cases := []struct {
		name      string
		payload   string
		wantNames []string
		wantTotal int
	}{
		{"results and totalPages", `{"results":[{"name":"abs"}],"totalPages":5}`, []string{"abs"}, 5},
		{"exercises and total_pages", `{"exercises":[{"name":"back"}],"total_pages":2}`, []string{"back"}, 2},
		{"pageCount", `{"results":[],"pageCount":"7"}`, nil, 7},
		{"results wins over exercises", `{"results":[{"name":"a"}],"exercises":[{"name":"b"}]}`, []string{"a"}, 1},
		{"bare array", `[{"name":"chest"}]`, []string{"chest"}, 1},
		{"zero page count falls through", `{"results":[],"totalPages":0,"pageCount":3}`, nil, 3},
		{"no list", `{"page":1}`, nil, 1},
		{"null", `null`, nil, 1},
		{"empty", ``, nil, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			page, err := normalizeCategoryPage(json.RawMessage(tc.payload))
			if err != nil {
				t.Fatalf("normalizeCategoryPage returned error: %v", err)
			}
			if page.TotalPages != tc.wantTotal {
				t.Fatalf("TotalPages = %d, want %d", page.TotalPages, tc.wantTotal)
			}
			if len(page.Categories) != len(tc.wantNames) {
				t.Fatalf("Categories = %#v, want names %v", page.Categories, tc.wantNames)
			}
			for i, name := range tc.wantNames {
				if page.Categories[i].Name != name {
					t.Fatalf("Categories[%d].Name = %q, want %q", i, page.Categories[i].Name, name)
				}
			}
		})
	}
}

func TestNormalizeExercisePage_DecodesExercises(t *testing.T) {
	page, err := normalizeExercisePage(json.RawMessage(`{"totalPages":2,"results":[{"_id":"1","name":"pull up","burnedCalories":120,"time":3,"rating":3.6}]}`))
	if err != nil {
		t.Fatalf("normalizeExercisePage returned error: %v", err)
	}
	if page.TotalPages != 2 || len(page.Exercises) != 1 {
		t.Fatalf("page = %#v", page)
	}
	ex := page.Exercises[0]
	if ex.ID != "1" || ex.BurnedCalories != 120 || ex.Time != 3 || ex.Rating != 3.6 {
		t.Fatalf("exercise = %#v", ex)
	}
}

func TestNormalizeExercisePage_SkipsMismatchedElements(t *testing.T) {
	page, err := normalizeExercisePage(json.RawMessage(`{"totalPages":1,"results":[{"_id":"1","time":"5"},{"_id":"2","time":5}]}`))
	if err == nil || !strings.Contains(err.Error(), "item 0") {
		t.Fatalf("err = %v, want the mismatched element reported", err)
	}
	if len(page.Exercises) != 1 || page.Exercises[0].ID != "2" {
		t.Fatalf("Exercises = %#v, want only the decodable element", page.Exercises)
	}
	if page.TotalPages != 1 {
		t.Fatalf("TotalPages = %d, want 1", page.TotalPages)
	}
}
