package challenge

import "math"

// scoreFunc maps an observation to a distance-to-goal. Always >= 0.
type scoreFunc func(obs Observation, spec Spec) float64

// scoreFuncs is the closed table of scoring rules. Kinds not listed here
// score UnknownDistance so that malformed content can never be won.
var scoreFuncs = map[Kind]scoreFunc{
	KindVectorTarget: scoreVectorTarget,
	KindOrthogonal:   scoreOrthogonal,
	KindMagnitude:    scoreMagnitude,
	KindScalarMatch:  scoreScalarMatch,
	KindProjection:   scoreProjection,
}

// Score computes the distance-to-goal for an observation against a spec.
func Score(obs Observation, spec Spec) float64 {
	fn, ok := scoreFuncs[spec.Kind]
	if !ok {
		return UnknownDistance
	}
	return fn(obs, spec)
}

// Threshold returns the win threshold for a spec: the authored criteria
// target when positive, otherwise a kind-specific default.
func Threshold(spec Spec) float64 {
	if spec.Criteria.Target > 0 {
		return spec.Criteria.Target
	}
	switch spec.Kind {
	case KindOrthogonal:
		return 0.05
	default:
		return 0.25
	}
}

func scoreVectorTarget(obs Observation, spec Spec) float64 {
	var sum Vec2
	for _, v := range obs.Positions {
		sum = sum.Add(v)
	}
	d := sum.Sub(spec.Target)
	return math.Hypot(d.X, d.Y)
}

func scoreOrthogonal(obs Observation, spec Spec) float64 {
	u, okU := obs.Positions["u"]
	v, okV := obs.Positions["v"]
	if !okU || !okV {
		return UnknownDistance
	}
	return math.Abs(u.Dot(v))
}

func scoreMagnitude(obs Observation, spec Spec) float64 {
	v, ok := obs.Positions["v"]
	if !ok {
		return UnknownDistance
	}
	target := spec.Params["magnitude"]
	return math.Abs(math.Hypot(v.X, v.Y) - target)
}

func scoreScalarMatch(obs Observation, spec Spec) float64 {
	val, ok := obs.Params["value"]
	if !ok {
		return UnknownDistance
	}
	return math.Abs(val - spec.Params["value"])
}

// scoreProjection projects a onto b and measures distance to the target point.
func scoreProjection(obs Observation, spec Spec) float64 {
	a, okA := obs.Positions["a"]
	b, okB := obs.Positions["b"]
	if !okA || !okB {
		return UnknownDistance
	}
	bLenSq := b.Dot(b)
	if bLenSq == 0 {
		return UnknownDistance
	}
	proj := b.Scale(a.Dot(b) / bLenSq)
	d := proj.Sub(spec.Target)
	return math.Hypot(d.X, d.Y)
}
