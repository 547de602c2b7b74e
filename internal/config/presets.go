package config

func intp(v int) *int { return &v }

var Presets = map[string]*Scenario{
	"crossing": {
		Name: "crossing", Dt: 0.1, Horizon: 50,
		Agents: []Agent{
			{Model: "double_integrator", ID: intp(0), X0: []float64{0, 0, 1, 0}},
			{Model: "double_integrator", ID: intp(1), X0: []float64{10, 0, -1, 0}},
		},
		Graph: map[int][]int{
			0: {0, 1},
			1: {0, 1},
		},
	},
	"merge": {
		Name: "merge", Dt: 0.05, Horizon: 100,
		Agents: []Agent{
			{Model: "unicycle", ID: intp(0), X0: []float64{0, 0, 1.5, 0}, U: []float64{0, 0.1}},
			{Model: "unicycle", ID: intp(1), X0: []float64{0, 4, 1.5, 0}, U: []float64{0, -0.1}},
			{Model: "car", ID: intp(2), X0: []float64{-6, 2, 0}, U: []float64{2.0, 0}},
		},
		Graph: map[int][]int{
			0: {0, 1},
			1: {0, 1, 2},
			2: {1, 2},
		},
	},
	"convoy": {
		Name: "convoy", Dt: 0.05, Horizon: 120,
		Agents: []Agent{
			{Model: "bike", ID: intp(0), X0: []float64{0, 0, 2, 0, 0}, U: []float64{0.2, 0}},
			{Model: "bike", ID: intp(1), X0: []float64{-4, 0, 2, 0, 0}, U: []float64{0.2, 0}},
			{Model: "bike", ID: intp(2), X0: []float64{-8, 0, 2, 0, 0}, U: []float64{0.2, 0}},
		},
		Graph: map[int][]int{
			0: {0, 1},
			1: {0, 1, 2},
			2: {1, 2},
		},
	},
}
