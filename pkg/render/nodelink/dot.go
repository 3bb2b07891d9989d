package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/forcegraph/pkg/errors"
	"github.com/matzehuels/forcegraph/pkg/layout/force"
)

// Colors used for node fills.
const (
	FreeColor   = "#4a90d9"
	PinnedColor = "#e4572e"
)

// Options configures frame rendering.
type Options struct {
	// Labels draws each node's name under it.
	Labels bool

	// Scale converts layout units to points. Zero means 1.
	Scale float64
}

// ToDOT converts a snapshot to Graphviz DOT with every node pinned at its
// layout position. The y axis is flipped so that screen-down stays down.
//
// Nodes whose position is not finite get no pos attribute and are left for
// neato to place.
func ToDOT(s force.Snapshot, opts Options) string {
	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  inputscale=72;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  splines=false;\n")
	buf.WriteString("  overlap=true;\n")
	fmt.Fprintf(&buf, "  node [shape=circle, style=filled, fillcolor=%q, color=\"#2c3e50\", fixedsize=true, width=0.3, label=\"\", fontsize=12];\n", FreeColor)
	buf.WriteString("  edge [color=gray];\n")
	buf.WriteString("\n")

	for _, n := range s.Nodes {
		attrs := fmtAttrs(n, scale, opts.Labels)
		if len(attrs) == 0 {
			fmt.Fprintf(&buf, "  \"%d\";\n", n.ID)
			continue
		}
		fmt.Fprintf(&buf, "  \"%d\" [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range s.Edges {
		fmt.Fprintf(&buf, "  \"%d\" -- \"%d\";\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtAttrs(n force.NodeState, scale float64, labels bool) []string {
	var attrs []string
	if n.Pos.IsFinite() {
		x, y := n.Pos.X*scale, -n.Pos.Y*scale
		attrs = append(attrs, fmt.Sprintf("pos=\"%s,%s!\"", fmtCoord(x), fmtCoord(y)))
	}
	if n.Pinned {
		attrs = append(attrs, fmt.Sprintf("fillcolor=%q", PinnedColor))
	}
	if labels && n.Name != "" {
		attrs = append(attrs, fmt.Sprintf("xlabel=%q", n.Name))
	}
	return attrs
}

func fmtCoord(v float64) string {
	if v == 0 {
		v = math.Abs(v)
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// RenderSVG renders a DOT graph to SVG with the neato engine, which keeps
// pinned positions.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	out, err := renderDOT(ctx, dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(out), nil
}

// RenderPNG renders a DOT graph to PNG in process.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return renderDOT(ctx, dot, graphviz.PNG)
}

func renderDOT(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "init graphviz")
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "render %s", format)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the Graphviz svg header with one whose width and
// height match the viewBox, so browsers scale the frame consistently.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
