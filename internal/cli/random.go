package cli

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/potplant/pkg/pipeline"
)

// randomOptions holds flags for the random command.
type randomOptions struct {
	count  int
	seed   uint64
	format string
	output string
}

// randomCommand creates the random command for growing new plants.
func (c *CLI) randomCommand() *cobra.Command {
	opts := randomOptions{}

	cmd := &cobra.Command{
		Use:   "random",
		Short: "Grow random plants",
		Long: `Grow random plants and print their genotypes.

Each plant is reproducible from its seed. With -n, plants are grown from
consecutive seeds starting at --seed.`,
		Example: `  potplant random
  potplant random --seed 42 --format yaml
  potplant random -n 20 -o plants.txt`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("seed") {
				opts.seed = c.Config.Seed
			}
			if !cmd.Flags().Changed("format") {
				opts.format = c.Config.Format
			}
			return c.runRandom(cmd, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.count, "count", "n", pipeline.DefaultCount, "number of plants to grow")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "seed of the first plant (0 picks one)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", pipeline.FormatCode, "output format: code, json, yaml")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")

	return cmd
}

func (c *CLI) runRandom(cmd *cobra.Command, opts randomOptions) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	popts := pipeline.Options{Seed: opts.seed, Count: opts.count, Format: opts.format}
	if err := popts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, cacheNull)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger)
	var results []*pipeline.Result
	if popts.Count == 1 {
		res, err := runner.Random(ctx, popts)
		if err != nil {
			return err
		}
		results = []*pipeline.Result{res}
	} else {
		spinner := newSpinner(ctx, "Growing plants", popts.Count)
		popts.Progress = func(int, int) { spinner.Advance(1) }
		spinner.Start()
		results, err = runner.Batch(ctx, popts)
		spinner.Stop()
		if err != nil {
			return err
		}
	}

	var buf bytes.Buffer
	for i, res := range results {
		if i > 0 && popts.Format != pipeline.FormatCode {
			buf.WriteString(separator(popts.Format))
		}
		if err := pipeline.WriteResult(&buf, res, popts.Format); err != nil {
			return err
		}
	}
	if err := writeOutput(cmd.OutOrStdout(), opts.output, buf.Bytes()); err != nil {
		return err
	}

	if popts.Count == 1 {
		logger.Info("grew plant", "seed", popts.Seed)
	} else {
		prog.done(fmt.Sprintf("grew %d plants from seed %d", popts.Count, popts.Seed))
	}
	return nil
}

// separator splits consecutive documents of a multi-plant tree stream.
func separator(format string) string {
	if format == pipeline.FormatYAML {
		return "---\n"
	}
	return ""
}
