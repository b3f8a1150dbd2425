package srs

import (
	"testing"
)

func TestNewDefaultParams(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	if params.EaseFloor != 1.3 {
		t.Errorf("Expected ease floor 1.3, got %v", params.EaseFloor)
	}
	if params.FirstInterval != 1 {
		t.Errorf("Expected first interval 1, got %d", params.FirstInterval)
	}
	if params.SecondInterval != 6 {
		t.Errorf("Expected second interval 6, got %d", params.SecondInterval)
	}
	if params.MatureThresholdDays != 21 {
		t.Errorf("Expected mature threshold 21, got %d", params.MatureThresholdDays)
	}
}

func TestNewParamsOverrides(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		config ParamsConfig
		check  func(t *testing.T, p *Params)
	}{
		{
			name:   "Zero config keeps defaults",
			config: ParamsConfig{},
			check: func(t *testing.T, p *Params) {
				if *p != *NewDefaultParams() {
					t.Errorf("expected defaults, got %+v", p)
				}
			},
		},
		{
			name:   "Ease floor override",
			config: ParamsConfig{EaseFloor: 1.5},
			check: func(t *testing.T, p *Params) {
				if p.EaseFloor != 1.5 {
					t.Errorf("expected ease floor 1.5, got %v", p.EaseFloor)
				}
				if p.SecondInterval != 6 {
					t.Errorf("unrelated field changed: %d", p.SecondInterval)
				}
			},
		},
		{
			name: "Interval ladder override",
			config: ParamsConfig{
				FirstInterval:  2,
				SecondInterval: 10,
			},
			check: func(t *testing.T, p *Params) {
				if p.FirstInterval != 2 || p.SecondInterval != 10 {
					t.Errorf("expected 2/10, got %d/%d", p.FirstInterval, p.SecondInterval)
				}
			},
		},
		{
			name:   "Mature threshold override",
			config: ParamsConfig{MatureThresholdDays: 28},
			check: func(t *testing.T, p *Params) {
				if p.MatureThresholdDays != 28 {
					t.Errorf("expected 28, got %d", p.MatureThresholdDays)
				}
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tc.check(t, NewParams(tc.config))
		})
	}
}
