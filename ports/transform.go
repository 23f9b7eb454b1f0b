package ports

// RealPlan performs inverse transforms from fftLen/2+1 half-complex
// coefficients to fftLen real samples, for one fixed transform length.
type RealPlan interface {
	// Len returns the transform length.
	Len() int

	// Inverse converts Fourier coefficients to a normalized real sequence
	// of Len() samples.
	Inverse(coeff []complex128) []float64
}

// PlanStorePort caches transform plans by length so repeated same-length
// syntheses amortize workspace allocation. The orchestrator clears the store
// between observations to bound peak memory.
type PlanStorePort interface {
	// Plan returns the cached plan for length n, creating it on first use.
	Plan(n int) RealPlan

	// Clear drops every cached plan. Safe to call between, never during,
	// a synthesis.
	Clear()

	// Size returns the number of cached plans.
	Size() int
}
