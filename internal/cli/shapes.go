package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/railgen/internal/shapes"
)

// newShapesCmd creates the shapes command, which lists the frame shapes the
// generate command can build and the flags that size them.
func newShapesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shapes",
		Short: "List the available frame shapes",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			for _, shapeType := range shapes.Available() {
				p, err := shapes.DefaultParams(shapeType)
				if err != nil {
					return err
				}
				c.Printf("%s\n", shapeType)
				for _, dim := range shapeDimensions(p) {
					c.Printf("  %s\n", dim)
				}
				c.Printf("\n")
			}
			return nil
		},
	}
}

// shapeDimensions renders the sizing flags relevant to a shape type, with
// their stock defaults.
func shapeDimensions(p shapes.Params) []string {
	switch p.Type {
	case shapes.TypeRectangular:
		return []string{
			fmt.Sprintf("--width         frame width in cm (default %g)", p.WidthCm),
			fmt.Sprintf("--height        frame height in cm (default %g)", p.HeightCm),
		}
	case shapes.TypeParallelogram:
		return []string{
			fmt.Sprintf("--post-length   post length in cm (default %g)", p.PostLengthCm),
			fmt.Sprintf("--slope-width   horizontal slope run in cm (default %g)", p.SlopeWidthCm),
			fmt.Sprintf("--slope-height  vertical slope rise in cm (default %g)", p.SlopeHeightCm),
		}
	default:
		return []string{
			fmt.Sprintf("--post-length   post length in cm (default %g)", p.PostLengthCm),
			fmt.Sprintf("--stair-width   total stair run in cm (default %g)", p.StairWidthCm),
			fmt.Sprintf("--stair-height  total stair rise in cm (default %g)", p.StairHeightCm),
			fmt.Sprintf("--steps         number of steps (default %d)", p.NumSteps),
		}
	}
}
