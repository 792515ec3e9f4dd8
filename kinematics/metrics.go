package kinematics

import (
	"go.viam.com/urkin/referenceframe"
)

// Metric scores how far a candidate joint vector is from a reference one.
type Metric interface {
	Distance(from, to referenceframe.JointVector) float64
}

type flexibleMetric struct {
	f func(from, to referenceframe.JointVector) float64
}

func (m *flexibleMetric) Distance(from, to referenceframe.JointVector) float64 {
	return m.f(from, to)
}

// NewBasicMetric wraps a function as a Metric.
func NewBasicMetric(f func(from, to referenceframe.JointVector) float64) Metric {
	return &flexibleMetric{f}
}

// NewSquaredNormMetric returns the default metric: the squared euclidean distance in joint space.
func NewSquaredNormMetric() Metric {
	return &flexibleMetric{sqNormDist}
}

func sqNormDist(from, to referenceframe.JointVector) float64 {
	return from.SquaredDistance(to)
}
