package cli

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/potplant/pkg/errors"
	"github.com/matzehuels/potplant/pkg/pipeline"
)

// documentCacheKinds are the caches a one-shot document command may use.
var documentCacheKinds = []string{cacheFile, cacheMemory, cacheNull}

// documentOptions holds flags shared by the geometry and diagram commands.
type documentOptions struct {
	output string
	cache  string
}

func (o *documentOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVar(&o.cache, "cache", cacheFile, "document cache: file, memory, null")
}

// geometryCommand creates the geometry command, which writes the vertices
// of every mesh in a plant as JSON.
func (c *CLI) geometryCommand() *cobra.Command {
	var (
		opts   documentOptions
		indent bool
	)

	cmd := &cobra.Command{
		Use:   "geometry [genotype|-]",
		Short: "Write the mesh geometry of a genotype as JSON",
		Example: `  potplant geometry '>1Sd...' -o plant.json
  potplant random | potplant geometry --indent`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := c.readCode(args)
			if err != nil {
				return err
			}
			doc, hit, err := c.document(cmd, opts, func(r *pipeline.Runner) ([]byte, bool, error) {
				return r.Geometry(cmd.Context(), code)
			})
			if err != nil {
				return err
			}
			if indent {
				var buf bytes.Buffer
				if err := json.Indent(&buf, doc, "", "  "); err != nil {
					return errs.Wrap(errs.ErrCodeInternal, err, "indent geometry")
				}
				doc = append(buf.Bytes(), '\n')
			} else {
				doc = append(doc, '\n')
			}
			loggerFromContext(cmd.Context()).Debug("geometry", "bytes", len(doc), "cached", hit)
			return writeOutput(cmd.OutOrStdout(), opts.output, doc)
		},
	}

	opts.register(cmd)
	cmd.Flags().BoolVar(&indent, "indent", false, "indent the JSON output")

	return cmd
}

// diagramCommand creates the diagram command, which draws the pot, stalk
// and leaf structure of a plant.
func (c *CLI) diagramCommand() *cobra.Command {
	var (
		opts     documentOptions
		format   string
		detailed bool
	)

	cmd := &cobra.Command{
		Use:   "diagram [genotype|-]",
		Short: "Draw the structure of a genotype as SVG or DOT",
		Example: `  potplant diagram '>1Sd...' -o plant.svg
  potplant diagram '>1Sd...' --format dot --detailed`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := errs.ValidateFormat(format, pipeline.DiagramFormats...); err != nil {
				return err
			}
			code, err := c.readCode(args)
			if err != nil {
				return err
			}
			doc, hit, err := c.document(cmd, opts, func(r *pipeline.Runner) ([]byte, bool, error) {
				return r.Diagram(cmd.Context(), code, format, detailed)
			})
			if err != nil {
				return err
			}
			loggerFromContext(cmd.Context()).Debug("diagram", "format", format, "bytes", len(doc), "cached", hit)
			return writeOutput(cmd.OutOrStdout(), opts.output, doc)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", pipeline.DiagramSVG, "diagram format: svg, dot")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "label nodes with mesh parameters")

	return cmd
}

// document runs build against a runner backed by the requested cache.
func (c *CLI) document(cmd *cobra.Command, opts documentOptions, build func(*pipeline.Runner) ([]byte, bool, error)) ([]byte, bool, error) {
	if err := errs.ValidateFormat(opts.cache, documentCacheKinds...); err != nil {
		return nil, false, fmt.Errorf("--cache: %w", err)
	}
	runner, err := c.newRunner(cmd.Context(), opts.cache)
	if err != nil {
		return nil, false, err
	}
	defer runner.Close()
	return build(runner)
}
