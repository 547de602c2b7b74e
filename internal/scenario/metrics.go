package scenario

import (
	"math"

	"github.com/san-kum/swarmdyn/internal/dynamo"
)

// ControlEffort averages the absolute control magnitude over a rollout.
type ControlEffort struct {
	sum     float64
	samples int
}

func NewControlEffort() *ControlEffort { return &ControlEffort{} }

func (c *ControlEffort) Name() string { return "control_effort" }

func (c *ControlEffort) Observe(x dynamo.State, u dynamo.Control, t float64) {
	for _, v := range u {
		c.sum += math.Abs(v)
	}
	c.samples++
}

func (c *ControlEffort) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return c.sum / float64(c.samples)
}

func (c *ControlEffort) Reset() {
	c.sum = 0
	c.samples = 0
}

// PathLength accumulates the state-space distance travelled.
type PathLength struct {
	prev dynamo.State
	sum  float64
}

func NewPathLength() *PathLength { return &PathLength{} }

func (p *PathLength) Name() string { return "path_length" }

func (p *PathLength) Observe(x dynamo.State, u dynamo.Control, t float64) {
	if p.prev != nil {
		p.sum += x.Sub(p.prev).Norm()
	}
	p.prev = x.Clone()
}

func (p *PathLength) Value() float64 { return p.sum }

func (p *PathLength) Reset() {
	p.prev = nil
	p.sum = 0
}
