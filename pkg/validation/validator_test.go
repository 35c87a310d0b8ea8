package validation

import (
	"strings"
	"testing"
)

type penaltySample struct {
	Weight float64 `validate:"gte=0"`
	Policy string  `validate:"oneof=forbid share"`
	Name   string  `validate:"required"`
}

func TestStruct(t *testing.T) {
	tests := []struct {
		name    string
		input   penaltySample
		wantErr string
	}{
		{"valid", penaltySample{Weight: 1, Policy: "forbid", Name: "x"}, ""},
		{"negative weight", penaltySample{Weight: -1, Policy: "forbid", Name: "x"}, "Weight"},
		{"bad policy", penaltySample{Weight: 1, Policy: "prefer", Name: "x"}, "Policy"},
		{"missing name", penaltySample{Weight: 1, Policy: "share"}, "Name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(&tt.input)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Expected no error, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Expected error mentioning %s", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Error %q does not mention %s", err, tt.wantErr)
			}
		})
	}
}

func TestStruct_Nil(t *testing.T) {
	if err := Struct(nil); err == nil {
		t.Error("Expected error for nil value")
	}
}

func TestVar(t *testing.T) {
	if err := Var("max_reach", 2, "gte=0,lte=3"); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}

	err := Var("max_reach", 7, "gte=0,lte=3")
	if err == nil {
		t.Fatal("Expected error for out-of-range value")
	}
	if !strings.Contains(err.Error(), "max_reach") {
		t.Errorf("Error %q does not name the field", err)
	}
}
