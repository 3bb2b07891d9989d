package render

import (
	"context"
	"strings"
	"time"

	"github.com/matzehuels/forcegraph/pkg/errors"
	"github.com/matzehuels/forcegraph/pkg/layout/force"
	"github.com/matzehuels/forcegraph/pkg/observability"
	"github.com/matzehuels/forcegraph/pkg/render/nodelink"
	"github.com/matzehuels/forcegraph/pkg/render/term"
)

// Format is an output format for [Frame].
type Format string

const (
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
	FormatPDF Format = "pdf"
	FormatDOT Format = "dot"
	FormatTXT Format = "txt"
)

// Formats lists every supported format.
var Formats = []Format{FormatSVG, FormatPNG, FormatPDF, FormatDOT, FormatTXT}

// ParseFormat validates a format name. Matching is case-insensitive.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unknown format %q (want svg, png, pdf, dot or txt)", s)
}

// ContentType returns the MIME type of a format.
func (f Format) ContentType() string {
	switch f {
	case FormatSVG:
		return "image/svg+xml"
	case FormatPNG:
		return "image/png"
	case FormatPDF:
		return "application/pdf"
	case FormatDOT:
		return "text/vnd.graphviz; charset=utf-8"
	default:
		return "text/plain; charset=utf-8"
	}
}

// Options configures [Frame].
type Options struct {
	// Labels draws node names.
	Labels bool

	// Scale converts layout units to points for graphviz formats.
	Scale float64

	// Width and Height size the txt canvas in cells.
	Width  int
	Height int
}

// Frame renders a snapshot in the given format.
func Frame(ctx context.Context, s force.Snapshot, f Format, opts Options) (out []byte, err error) {
	hooks := observability.Render()
	hooks.OnRenderStart(ctx, string(f))
	start := time.Now()
	defer func() {
		hooks.OnRenderComplete(ctx, string(f), len(out), time.Since(start), err)
	}()

	if f == FormatTXT {
		w, h := opts.Width, opts.Height
		if w <= 0 {
			w = 80
		}
		if h <= 0 {
			h = 24
		}
		c := term.Render(s, term.Options{Width: w, Height: h, Labels: opts.Labels})
		return []byte(c.String() + "\n"), nil
	}

	dot := nodelink.ToDOT(s, nodelink.Options{Labels: opts.Labels, Scale: opts.Scale})
	switch f {
	case FormatDOT:
		return []byte(dot), nil
	case FormatSVG:
		return nodelink.RenderSVG(ctx, dot)
	case FormatPNG:
		return nodelink.RenderPNG(ctx, dot)
	case FormatPDF:
		svg, err := nodelink.RenderSVG(ctx, dot)
		if err != nil {
			return nil, err
		}
		return ToPDF(ctx, svg)
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown format %q", f)
}
