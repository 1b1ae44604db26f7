package main

import (
	"net/http/httptest"
	"testing"

	"github.com/mlorentedev/fonttree/internal/adapter"
	"github.com/mlorentedev/fonttree/internal/analysis"
	"github.com/mlorentedev/fonttree/internal/middleware"
	"github.com/mlorentedev/fonttree/internal/server"
)

func TestBenchmarkAgainstMockServer(t *testing.T) {
	ts := httptest.NewServer(server.New(analysis.NewService(&adapter.MockAdapter{}), adapter.ProviderMock, middleware.Options{}))
	defer ts.Close()

	if got := discoverModel(ts.Client(), ts.URL); got != "Mock" {
		t.Errorf("model: got %q, want %q", got, "Mock")
	}

	for _, s := range Samples {
		r := benchmark(ts.Client(), ts.URL, "", s, 1)
		if r.Error != "" {
			t.Errorf("%s: %s", s.Name, r.Error)
		}
		if r.Evaluations != 2 {
			t.Errorf("%s: evaluations got %d, want 2", s.Name, r.Evaluations)
		}
	}
}

func TestBenchmarkReportsHTTPError(t *testing.T) {
	ts := httptest.NewServer(server.New(analysis.NewService(nil), adapter.ProviderGemini, middleware.Options{}))
	defer ts.Close()

	r := benchmark(ts.Client(), ts.URL, "", Samples[0], 1)
	if r.Error == "" {
		t.Fatal("expected error from unconfigured server")
	}
}

func TestCheckShape(t *testing.T) {
	reason := "too playful"
	tests := []struct {
		name    string
		rep     analysis.Report
		wantErr bool
	}{
		{"valid", analysis.Report{Purpose: "p", Mood: "m", FontEvaluations: []analysis.FontEvaluation{
			{FontName: "Arial", Evaluation: analysis.EvaluationGood},
			{FontName: "Comic Sans", Evaluation: analysis.EvaluationNotIdeal, Reason: &reason},
		}}, false},
		{"no fonts", analysis.Report{Purpose: "p", Mood: "m"}, false},
		{"missing purpose", analysis.Report{Mood: "m"}, true},
		{"missing mood", analysis.Report{Purpose: "p"}, true},
		{"bad evaluation", analysis.Report{Purpose: "p", Mood: "m", FontEvaluations: []analysis.FontEvaluation{
			{FontName: "Arial", Evaluation: "Great"},
		}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := checkShape(tt.rep); (err != nil) != tt.wantErr {
				t.Errorf("checkShape: got %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

