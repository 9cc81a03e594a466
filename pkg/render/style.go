package render

import (
	"hash/fnv"

	"github.com/goccy/go-graphviz/cgraph"
	"github.com/lucasb-eyer/go-colorful"
)

// Style is the cosmetic styling applied by the in-process renderer after the
// DOT file is parsed back.
type Style struct {
	Background    string  // Graph background; "a:b" draws a gradient
	GradientAngle int     // Background gradient angle in degrees
	Fill          string  // Node fill colour
	PenWidth      float64 // Node border width
}

// DefaultStyle is a white-to-grey vertical gradient background with white,
// boxed, filled nodes and thick coloured borders.
var DefaultStyle = Style{
	Background:    "white:#888888",
	GradientAngle: 90,
	Fill:          "white",
	PenWidth:      4,
}

// BorderColor returns the border colour for a node. The hue is derived from
// the node name, so a node keeps its colour across runs and renderers.
func BorderColor(name string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(name))
	hue := float64(h.Sum32()%360) + 0.5
	return colorful.Hsv(hue, 0.65, 0.8).Hex()
}

// Apply styles g in place.
func (s Style) Apply(g *cgraph.Graph) error {
	g.SetBackgroundColor(s.Background)
	g.SetGradientAngle(s.GradientAngle)

	n, err := g.FirstNode()
	for ; err == nil && n != nil; n, err = g.NextNode(n) {
		name, nerr := n.Name()
		if nerr != nil {
			return nerr
		}
		n.SetColor(BorderColor(name))
		n.SetFillColor(s.Fill)
		n.SetPenWidth(s.PenWidth)
		n.SetStyle(cgraph.FilledNodeStyle)
		n.SetShape(cgraph.BoxShape)
	}
	return err
}
