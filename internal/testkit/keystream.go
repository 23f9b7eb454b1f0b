package testkit

import (
	"todsim/domain/stream"
	"todsim/ports"
)

// CountingKeystream wraps a keystream generator and counts draw requests,
// so tests can assert how many syntheses actually ran.
type CountingKeystream struct {
	Inner         ports.KeystreamPort
	GaussianCalls int
	UniformCalls  int
}

func (c *CountingKeystream) Gaussian(key stream.Key, n int) []float64 {
	c.GaussianCalls++
	return c.Inner.Gaussian(key, n)
}

func (c *CountingKeystream) Uniform(key stream.Key, n int) []float64 {
	c.UniformCalls++
	return c.Inner.Uniform(key, n)
}
