package render

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/matzehuels/forcegraph/pkg/errors"
)

// rsvgConvert is the librsvg converter looked up on PATH.
var rsvgConvert = "rsvg-convert"

// ToPDF converts an SVG document to PDF with rsvg-convert. The converter is
// killed when ctx ends.
//
// Install librsvg with: brew install librsvg (macOS), apt install
// librsvg2-bin (Debian/Ubuntu).
func ToPDF(ctx context.Context, svg []byte) ([]byte, error) {
	bin, err := exec.LookPath(rsvgConvert)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "pdf output needs %s on PATH", rsvgConvert)
	}

	cmd := exec.CommandContext(ctx, bin, "--format", "pdf")
	cmd.Stdin = bytes.NewReader(svg)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "%s: %s", rsvgConvert, strings.TrimSpace(stderr.String()))
	}
	return out, nil
}
