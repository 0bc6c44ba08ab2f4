package util

import (
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"studysync/backend/internal/shared"
)

func TestDecodeMergeJSON(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected []shared.GradeCategory
	}{
		{"replaces categories", `{"gradeCategories":[{"name":"Labs"}]}`, []shared.GradeCategory{{Name: "Labs"}}},
		{"key case ignored", `{"GradeCategories":[{"name":"Labs","weight":60}]}`, []shared.GradeCategory{{Name: "Labs", Weight: 60}}},
		{"absent keeps existing", `{"name":"Renamed"}`, shared.DefaultGradeCategories()},
		{"null clears", `{"gradeCategories":null}`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := shared.Course{Name: "Mechanics", GradeCategories: shared.DefaultGradeCategories()}
			r := httptest.NewRequest("PUT", "/", strings.NewReader(tt.body))
			if err := DecodeMergeJSON(httptest.NewRecorder(), r, &c); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if !reflect.DeepEqual(c.GradeCategories, tt.expected) {
				t.Errorf("Expected %+v, got %+v", tt.expected, c.GradeCategories)
			}
		})
	}

	t.Run("embedded struct slices", func(t *testing.T) {
		type view struct {
			shared.Student
			Extra string `json:"extra"`
		}
		v := view{Student: shared.Student{Name: "Ada", SubjectsEnrolled: []string{"Math", "Logic", "Art"}}}
		r := httptest.NewRequest("PUT", "/", strings.NewReader(`{"subjectsEnrolled":["Music"]}`))
		if err := DecodeMergeJSON(httptest.NewRecorder(), r, &v); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if !reflect.DeepEqual(v.SubjectsEnrolled, []string{"Music"}) || v.Name != "Ada" {
			t.Errorf("Unexpected merge result: %+v", v.Student)
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		var c shared.Course
		r := httptest.NewRequest("PUT", "/", strings.NewReader(`{"name":`))
		if err := DecodeMergeJSON(httptest.NewRecorder(), r, &c); err == nil {
			t.Error("Expected an error")
		}
	})
}
