package analysis

import (
	"errors"
	"testing"
)

func validResult() Result {
	return Result{
		OverallScore:    85,
		Pace:            &PaceMetric{Score: 80, WordsPerMinute: 160},
		Clarity:         &ClarityMetric{Score: 90},
		FillerWords:     &FillerWordsMetric{Score: 70, Count: 3, Types: []string{"um"}},
		Volume:          &VolumeMetric{Score: 85, Consistency: "Good"},
		DurationSeconds: 120,
		Transcript:      "hello",
	}
}

func TestValidateAcceptsValidResult(t *testing.T) {
	r := validResult()
	if err := r.Validate(); err != nil {
		t.Fatalf("expected valid result, got %v", err)
	}
}

func TestValidateAcceptsMissingMetrics(t *testing.T) {
	r := Result{OverallScore: 80, DurationSeconds: 60}
	if err := r.Validate(); err != nil {
		t.Fatalf("metrics are optional, got %v", err)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := map[string]func(*Result){
		"overall too high":     func(r *Result) { r.OverallScore = 101 },
		"overall negative":     func(r *Result) { r.OverallScore = -1 },
		"zero duration":        func(r *Result) { r.DurationSeconds = 0 },
		"pace out of range":    func(r *Result) { r.Pace.Score = 200 },
		"clarity out of range": func(r *Result) { r.Clarity.Score = -5 },
		"filler out of range":  func(r *Result) { r.FillerWords.Score = 150 },
		"negative count":       func(r *Result) { r.FillerWords.Count = -1 },
		"volume out of range":  func(r *Result) { r.Volume.Score = 101 },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			r := validResult()
			mutate(&r)
			if err := r.Validate(); !errors.Is(err, ErrInvalidResult) {
				t.Fatalf("expected ErrInvalidResult, got %v", err)
			}
		})
	}
}
