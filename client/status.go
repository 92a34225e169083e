package client

import (
	"fmt"
	"slices"
)

// StatusCodes reports whether a response status code is acceptable.
type StatusCodes interface {
	Contains(code int) bool
}

// StatusRange is the half-open range [Min, Max).
type StatusRange struct {
	Min int
	Max int
}

// NewStatusRange returns the half-open range [lower, upper).
func NewStatusRange(lower, upper int) StatusRange {
	return StatusRange{Min: lower, Max: upper}
}

func (r StatusRange) Contains(code int) bool {
	return code >= r.Min && code < r.Max
}

func (r StatusRange) String() string {
	return fmt.Sprintf("[%d,%d)", r.Min, r.Max)
}

// StatusSet accepts exactly the listed codes.
type StatusSet []int

func (s StatusSet) Contains(code int) bool {
	return slices.Contains(s, code)
}

// DefaultStatusCodes accepts every 2xx and 3xx status.
var DefaultStatusCodes StatusCodes = NewStatusRange(200, 400)
