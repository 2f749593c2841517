package viz

import (
	"fmt"

	"github.com/guptarohit/asciigraph"
)

// Plot renders series as an ascii line chart. Series longer than width are
// downsampled by asciigraph.
func Plot(series []float64, caption string, width, height int) (string, error) {
	if len(series) == 0 {
		return "", fmt.Errorf("no data to plot")
	}
	return asciigraph.Plot(series,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	), nil
}
