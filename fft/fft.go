// Package fft provides a real-input fourier transform plan.
package fft

// InitPlan builds a plan over input and output. len(output) must be
// len(input)/2+1.
func InitPlan(pointer **Plan, input []float64, output []complex128) {
	(*pointer) = &Plan{
		Input:  input,
		Output: output,
	}

	(*pointer).init()
}

// NewPlan returns a plan over input and output.
func NewPlan(input []float64, output []complex128) *Plan {
	var plan *Plan
	InitPlan(&plan, input, output)
	return plan
}
