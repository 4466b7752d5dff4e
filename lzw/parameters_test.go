package lzw

import (
	"errors"
	"testing"
)

func TestParametersFromMap(t *testing.T) {
	tests := []struct {
		name         string
		in           map[string]interface{}
		wantWidth    int
		wantParallel bool
		wantErr      error
	}{
		{"nil map", nil, 0, false, nil},
		{"ints", map[string]interface{}{"codeword_width": 3, "parallel": true}, 3, true, nil},
		{"yaml strings", map[string]interface{}{"codeword_width": "2", "parallel": "true"}, 2, true, nil},
		{"automatic", map[string]interface{}{"codeword_width": 0}, 0, false, nil},
		{"invalid width", map[string]interface{}{"codeword_width": 4}, 0, false, ErrInvalidWidth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ParametersFromMap(tt.in)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParametersFromMap error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParametersFromMap failed: %v", err)
			}
			if p.CodewordWidth != tt.wantWidth {
				t.Errorf("CodewordWidth = %d, want %d", p.CodewordWidth, tt.wantWidth)
			}
			if p.Parallel != tt.wantParallel {
				t.Errorf("Parallel = %v, want %v", p.Parallel, tt.wantParallel)
			}
		})
	}
}

func TestParametersFromMapKeepsUnknownKeys(t *testing.T) {
	p, err := ParametersFromMap(map[string]interface{}{
		"codeword_width": 2,
		"label":          "scan-01",
	})
	if err != nil {
		t.Fatalf("ParametersFromMap failed: %v", err)
	}
	if got := p.GetParameter("label"); got != "scan-01" {
		t.Errorf("GetParameter(label) = %v, want scan-01", got)
	}
	if got := p.GetParameter("codeword_width"); got != 2 {
		t.Errorf("GetParameter(codeword_width) = %v, want 2", got)
	}
}

func TestParametersGetSet(t *testing.T) {
	p := NewParameters()
	p.SetParameter("codeword_width", 3)
	p.SetParameter("parallel", true)
	p.SetParameter("custom", 1.5)

	if p.CodewordWidth != 3 || !p.Parallel {
		t.Errorf("SetParameter did not update fields: %+v", p)
	}
	if got := p.GetParameter("parallel"); got != true {
		t.Errorf("GetParameter(parallel) = %v, want true", got)
	}
	if got := p.GetParameter("custom"); got != 1.5 {
		t.Errorf("GetParameter(custom) = %v, want 1.5", got)
	}

	// Values of the wrong type are ignored for known keys.
	p.SetParameter("codeword_width", "2")
	if p.CodewordWidth != 3 {
		t.Errorf("CodewordWidth = %d after string SetParameter, want 3", p.CodewordWidth)
	}

	var zero Parameters
	zero.SetParameter("custom", "x")
	if zero.GetParameter("custom") != "x" {
		t.Error("SetParameter on zero Parameters lost the value")
	}
}

func TestParametersValidate(t *testing.T) {
	for _, w := range []int{0, 2, 3} {
		if err := (&Parameters{CodewordWidth: w}).Validate(); err != nil {
			t.Errorf("Validate(width %d) = %v, want nil", w, err)
		}
	}
	for _, w := range []int{1, 4, -2} {
		if err := (&Parameters{CodewordWidth: w}).Validate(); !errors.Is(err, ErrInvalidWidth) {
			t.Errorf("Validate(width %d) = %v, want %v", w, err, ErrInvalidWidth)
		}
	}
}

// mapParameters is a minimal foreign codec.Parameters implementation.
type mapParameters map[string]interface{}

func (m mapParameters) GetParameter(name string) interface{}        { return m[name] }
func (m mapParameters) SetParameter(name string, value interface{}) { m[name] = value }
func (m mapParameters) Validate() error                             { return nil }

func TestFromGeneric(t *testing.T) {
	p, err := fromGeneric(nil)
	if err != nil || p.CodewordWidth != 0 || p.Parallel {
		t.Errorf("fromGeneric(nil) = %+v, %v; want defaults", p, err)
	}

	own := NewParameters().WithCodewordWidth(Width24)
	p, err = fromGeneric(own)
	if err != nil || p != own {
		t.Errorf("fromGeneric(*Parameters) = %p, %v; want the same value", p, err)
	}

	p, err = fromGeneric(mapParameters{"codeword_width": 2, "parallel": true, "quality": 90})
	if err != nil {
		t.Fatalf("fromGeneric(foreign) failed: %v", err)
	}
	if p.CodewordWidth != 2 || !p.Parallel {
		t.Errorf("fromGeneric(foreign) = %+v, want width 2, parallel", p)
	}

	if _, err := fromGeneric(mapParameters{"codeword_width": 5}); !errors.Is(err, ErrInvalidWidth) {
		t.Errorf("fromGeneric(width 5) error = %v, want %v", err, ErrInvalidWidth)
	}
}
