package challenge

import "time"

// SampleInterval is how often an active run scores the latest observation.
// Sampling on a fixed cadence bounds recomputation cost regardless of how
// fast the UI pushes state changes.
const SampleInterval = 100 * time.Millisecond

// UnknownDistance is returned for challenge kinds missing from the scoring
// table. It is large enough that no threshold can be crossed.
const UnknownDistance = 1e9

// Kind identifies a scoring rule. The set of kinds is closed; content that
// references an unlisted kind can never be won.
type Kind string

const (
	// KindVectorTarget scores the Euclidean distance between the sum of all
	// observed vectors and the target point.
	KindVectorTarget Kind = "vector-target"

	// KindOrthogonal scores |u · v| for the two observed vectors "u" and "v".
	KindOrthogonal Kind = "orthogonal"

	// KindMagnitude scores | |v| - target | for the observed vector "v".
	KindMagnitude Kind = "magnitude"

	// KindScalarMatch scores |params["value"] - target|.
	KindScalarMatch Kind = "scalar-match"

	// KindProjection scores the distance between proj_b(a) and the target point.
	KindProjection Kind = "projection"
)

// Vec2 is a 2D vector in challenge space.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns the component-wise sum.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns the component-wise difference.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns the vector scaled by s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Dot returns the dot product.
func (v Vec2) Dot(o Vec2) float64 { return v.X*o.X + v.Y*o.Y }

// Criteria is the numeric completion rule for a challenge.
type Criteria struct {
	// Type names the comparison, currently always "distance-below".
	Type string `json:"type"`

	// Target is the win threshold. Zero or negative means "use the
	// kind-specific default".
	Target float64 `json:"target"`

	// Metric is a display hint ("euclidean", "absolute"), not used in scoring.
	Metric string `json:"metric,omitempty"`
}

// Spec describes one challenge as authored in module content.
type Spec struct {
	ID       string             `json:"id"`
	Kind     Kind               `json:"kind"`
	Title    string             `json:"title"`
	Prompt   string             `json:"prompt"`
	Criteria Criteria           `json:"completionCriteria"`
	Target   Vec2               `json:"targetPoint"`
	Params   map[string]float64 `json:"params,omitempty"`
}

// Observation is the latest user-manipulated state, pushed by the view.
// Positions holds named draggable vectors; Params holds scalar controls.
type Observation struct {
	Positions map[string]Vec2
	Params    map[string]float64
}
