package workspace

import "github.com/dixra/hpp_smart_pricing/internal/pricing"

// AnalysisStatus is the state of the latest AI analysis
type AnalysisStatus string

const (
	StatusIdle      AnalysisStatus = "idle"
	StatusInFlight  AnalysisStatus = "in_flight"
	StatusSucceeded AnalysisStatus = "succeeded"
	StatusFailed    AnalysisStatus = "failed"
)

// Analysis is a tagged variant: Result is set only when succeeded and Error only when failed.
// Generation identifies the request that produced it.
type Analysis struct {
	Status     AnalysisStatus          `json:"status"`
	Generation uint64                  `json:"generation"`
	Result     *pricing.AIResponseData `json:"result,omitempty"`
	Error      string                  `json:"error,omitempty"`
}

func idleAnalysis() Analysis {
	return Analysis{Status: StatusIdle}
}

func inFlightAnalysis(generation uint64) Analysis {
	return Analysis{Status: StatusInFlight, Generation: generation}
}

func succeededAnalysis(generation uint64, result *pricing.AIResponseData) Analysis {
	return Analysis{Status: StatusSucceeded, Generation: generation, Result: result}
}

func failedAnalysis(generation uint64, message string) Analysis {
	return Analysis{Status: StatusFailed, Generation: generation, Error: message}
}
