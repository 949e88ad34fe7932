package models

// Status is the outcome of geocoding a single record.
type Status string

const (
	// StatusSuccess means the lookup service resolved the address to coordinates.
	StatusSuccess Status = "Success"
	// StatusFailed means the address did not resolve, for any reason.
	StatusFailed Status = "Failed"
)

// RunState tracks the lifecycle of one pipeline run.
type RunState string

const (
	StateIdle      RunState = "idle"
	StateRunning   RunState = "running"
	StateCompleted RunState = "completed"
)

// GeocodeResult is the outcome of geocoding one AddressRecord. Exactly one is
// created per input record and it is never mutated afterwards.
type GeocodeResult struct {
	Record      AddressRecord // Record is the input row this result belongs to.
	Coordinates *Coordinates  // Coordinates is nil when geocoding failed.
	Status      Status        // Status is Success or Failed.
	ErrorDetail string        // ErrorDetail is a human-readable failure reason, empty on success.
}

// PipelineReport aggregates all GeocodeResults of one run, in input order.
// It lives only for the duration of the run and is never persisted.
type PipelineReport struct {
	Results []GeocodeResult // Results preserves the order of the input records.
	State   RunState        // State is the run lifecycle marker.
	Warning string          // Warning is set when the lookup service looks unreachable.
}

// NewPipelineReport returns an empty report in the Idle state.
func NewPipelineReport() *PipelineReport {
	return &PipelineReport{State: StateIdle}
}

// Append adds a result to the report, preserving input order.
func (r *PipelineReport) Append(res GeocodeResult) {
	r.Results = append(r.Results, res)
}

// Len returns the number of results collected so far.
func (r *PipelineReport) Len() int {
	return len(r.Results)
}

// Succeeded returns the results that resolved to coordinates, in input order.
func (r *PipelineReport) Succeeded() []GeocodeResult {
	return r.filter(StatusSuccess)
}

// Failed returns the results that did not resolve, in input order.
func (r *PipelineReport) Failed() []GeocodeResult {
	return r.filter(StatusFailed)
}

func (r *PipelineReport) filter(status Status) []GeocodeResult {
	var out []GeocodeResult
	for _, res := range r.Results {
		if res.Status == status {
			out = append(out, res)
		}
	}
	return out
}
