package content

// Built-in curriculum. Tier "foundations" covers the linear algebra every ML
// concept leans on; tier "core-ml" builds the first learning algorithms on
// top of it. Bundles are authored as JSON so that Resolve exercises the same
// validation path external content packs will use.

func seedMetadata() []ModuleMetadata {
	return []ModuleMetadata{
		{
			ID: "vectors", Title: "Vectors", TierID: "foundations",
			ClusterID: "linear-algebra", Difficulty: "intro", EstimatedMinutes: 15,
		},
		{
			ID: "dot-products", Title: "Dot Products", TierID: "foundations",
			ClusterID: "linear-algebra", Prerequisites: []string{"vectors"},
			Difficulty: "intro", EstimatedMinutes: 20,
		},
		{
			ID: "matrices", Title: "Matrices as Maps", TierID: "foundations",
			ClusterID: "linear-algebra", Prerequisites: []string{"vectors"},
			Difficulty: "core", EstimatedMinutes: 25,
		},
		{
			ID: "gradient-descent", Title: "Gradient Descent", TierID: "core-ml",
			ClusterID: "optimization", Prerequisites: []string{"dot-products"},
			Difficulty: "core", EstimatedMinutes: 30,
		},
		{
			ID: "linear-regression", Title: "Linear Regression", TierID: "core-ml",
			ClusterID: "models", Prerequisites: []string{"gradient-descent", "matrices"},
			Difficulty: "core", EstimatedMinutes: 30,
		},
	}
}

func seedLoaders() map[string]Loader {
	return map[string]Loader{
		"vectors":           staticBundle(vectorsBundle),
		"dot-products":      staticBundle(dotProductsBundle),
		"matrices":          staticBundle(matricesBundle),
		"gradient-descent":  staticBundle(gradientDescentBundle),
		"linear-regression": staticBundle(linearRegressionBundle),
	}
}

func staticBundle(raw string) Loader {
	return func() ([]byte, error) { return []byte(raw), nil }
}

const vectorsBundle = `{
	"id": "vectors",
	"title": "Vectors",
	"description": "Arrows, coordinates, and why ML lives in vector spaces.",
	"steps": [
		{"id": "v-intro", "title": "What is a vector?", "kind": "concept", "required": true,
		 "body": "A vector is a list of numbers with a geometric life: a point, or an arrow from the origin. Every input your model ever sees is one."},
		{"id": "v-addition", "title": "Adding vectors", "kind": "concept", "required": true,
		 "body": "Vector addition is tip-to-tail: walk along the first arrow, then the second. Component-wise, just add coordinates."},
		{"id": "v-scaling", "title": "Scaling", "kind": "concept", "required": true,
		 "body": "Multiplying a vector by a scalar stretches it. Negative scalars flip it. Direction and magnitude separate cleanly."},
		{"id": "v-quiz-1", "title": "Check: components", "kind": "quiz", "required": true,
		 "quiz": {"question": "What is (1,2) + (2,2)?",
		          "options": ["(2,4)", "(3,4)", "(3,2)", "(1,4)"],
		          "correctIndex": 1}},
		{"id": "v-challenge", "title": "Challenge: reach the target", "kind": "challenge", "required": true,
		 "challengeId": "vec-reach-target",
		 "body": "Adjust the two vectors so their sum lands on the target."},
		{"id": "v-playground", "title": "Playground", "kind": "playground", "required": false,
		 "body": "Drag vectors around freely and watch their sum."}
	],
	"challenges": [
		{"id": "vec-reach-target", "kind": "vector-target",
		 "title": "Reach the Target",
		 "prompt": "Make a + b land on the marked point.",
		 "completionCriteria": {"type": "distance-below", "target": 0.25, "metric": "euclidean"},
		 "targetPoint": {"x": 3, "y": 4}}
	],
	"playground": {"controls": {"ax": 1, "ay": 0, "bx": 0, "by": 1}}
}`

const dotProductsBundle = `{
	"id": "dot-products",
	"title": "Dot Products",
	"description": "Similarity, projection, and the workhorse of every neuron.",
	"steps": [
		{"id": "d-intro", "title": "Multiplying vectors?", "kind": "concept", "required": true,
		 "body": "The dot product multiplies matching components and sums them. One number out: how much two vectors agree."},
		{"id": "d-geometry", "title": "The geometric view", "kind": "concept", "required": true,
		 "body": "u . v equals |u||v|cos(theta). Aligned vectors score high, perpendicular ones score zero, opposed ones go negative."},
		{"id": "d-quiz-1", "title": "Check: orthogonality", "kind": "quiz", "required": true,
		 "quiz": {"question": "Two nonzero vectors have dot product 0. The angle between them is:",
		          "options": ["0 degrees", "45 degrees", "90 degrees", "180 degrees"],
		          "correctIndex": 2}},
		{"id": "d-challenge", "title": "Challenge: make them orthogonal", "kind": "challenge", "required": true,
		 "challengeId": "dot-orthogonal",
		 "body": "Rotate v until it is perpendicular to u."},
		{"id": "d-neuron", "title": "Why neurons care", "kind": "concept", "required": true,
		 "body": "A neuron computes a dot product between its weights and the input, then applies a nonlinearity. Similarity detection, all the way down."}
	],
	"challenges": [
		{"id": "dot-orthogonal", "kind": "orthogonal",
		 "title": "Make Them Orthogonal",
		 "prompt": "Adjust v so that u . v = 0.",
		 "completionCriteria": {"type": "distance-below", "target": 0.05, "metric": "absolute"}}
	]
}`

const matricesBundle = `{
	"id": "matrices",
	"title": "Matrices as Maps",
	"description": "A matrix is a machine that moves every vector at once.",
	"steps": [
		{"id": "m-intro", "title": "Beyond grids of numbers", "kind": "concept", "required": true,
		 "body": "Read a matrix by its columns: they are where the basis vectors land. The whole plane follows along linearly."},
		{"id": "m-compose", "title": "Composition", "kind": "concept", "required": true,
		 "body": "Applying one matrix after another multiplies them. Deep networks are long chains of such maps with nonlinearities between."},
		{"id": "m-quiz-1", "title": "Check: identity", "kind": "quiz", "required": true,
		 "quiz": {"question": "Which matrix leaves every vector unchanged?",
		          "options": ["The zero matrix", "The identity matrix", "Any diagonal matrix", "Any rotation"],
		          "correctIndex": 1}},
		{"id": "m-challenge", "title": "Challenge: unit output", "kind": "challenge", "required": true,
		 "challengeId": "mat-unit",
		 "body": "Scale v until its length is exactly 1."},
		{"id": "m-playground", "title": "Playground", "kind": "playground", "required": false,
		 "body": "Edit matrix entries and watch the grid deform."}
	],
	"challenges": [
		{"id": "mat-unit", "kind": "magnitude",
		 "title": "Unit Vector",
		 "prompt": "Make |v| = 1.",
		 "completionCriteria": {"type": "distance-below", "target": 0.1, "metric": "absolute"},
		 "params": {"magnitude": 1}}
	],
	"playground": {"controls": {"m00": 1, "m01": 0, "m10": 0, "m11": 1}}
}`

const gradientDescentBundle = `{
	"id": "gradient-descent",
	"title": "Gradient Descent",
	"description": "Rolling downhill on a loss surface, one step at a time.",
	"steps": [
		{"id": "g-intro", "title": "The loss landscape", "kind": "concept", "required": true,
		 "body": "Training is search: find parameters that make the loss small. Picture the loss as terrain over parameter space."},
		{"id": "g-gradient", "title": "Which way is down?", "kind": "concept", "required": true,
		 "body": "The gradient points uphill, steepest first. Step against it, scaled by a learning rate, and repeat."},
		{"id": "g-quiz-1", "title": "Check: learning rate", "kind": "quiz", "required": true,
		 "quiz": {"question": "What happens with a learning rate that is far too large?",
		          "options": ["Convergence, but slowly", "The loss can diverge", "Nothing changes", "The gradient becomes zero"],
		          "correctIndex": 1}},
		{"id": "g-challenge", "title": "Challenge: find the minimum", "kind": "challenge", "required": true,
		 "challengeId": "gd-minimum",
		 "body": "Slide the parameter to the bottom of the bowl."},
		{"id": "g-playground", "title": "Playground", "kind": "playground", "required": false,
		 "body": "Tune the learning rate and watch descent trajectories."}
	],
	"challenges": [
		{"id": "gd-minimum", "kind": "scalar-match",
		 "title": "Find the Minimum",
		 "prompt": "Move w to the minimum of the loss curve.",
		 "completionCriteria": {"type": "distance-below", "target": 0.2, "metric": "absolute"},
		 "params": {"value": 2.5}}
	],
	"playground": {"controls": {"learningRate": 0.1, "startW": -3}}
}`

const linearRegressionBundle = `{
	"id": "linear-regression",
	"title": "Linear Regression",
	"description": "The first model: a line, a loss, and descent.",
	"steps": [
		{"id": "lr-intro", "title": "Fitting a line", "kind": "concept", "required": true,
		 "body": "Predict y as w*x + b. Two parameters, one loss: mean squared error over the data."},
		{"id": "lr-descent", "title": "Descent on w and b", "kind": "concept", "required": true,
		 "body": "The MSE gradient has a closed form. Each step nudges the line toward the cloud of points."},
		{"id": "lr-quiz-1", "title": "Check: residuals", "kind": "quiz", "required": true,
		 "quiz": {"question": "Mean squared error averages the squares of the:",
		          "options": ["Inputs", "Weights", "Residuals", "Gradients"],
		          "correctIndex": 2}},
		{"id": "lr-challenge", "title": "Challenge: project the data", "kind": "challenge", "required": true,
		 "challengeId": "lr-projection",
		 "body": "Align b so the projection of a onto it hits the target."},
		{"id": "lr-outro", "title": "From lines to networks", "kind": "concept", "required": true,
		 "body": "Stack linear maps with nonlinearities between and the same descent recipe trains a neural network."}
	],
	"challenges": [
		{"id": "lr-projection", "kind": "projection",
		 "title": "Project the Data",
		 "prompt": "Make proj_b(a) land on the marked point.",
		 "completionCriteria": {"type": "distance-below", "target": 0.25, "metric": "euclidean"},
		 "targetPoint": {"x": 2, "y": 1}}
	]
}`
