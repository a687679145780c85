package cli

import (
	"bytes"
	"context"
	"fmt"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/potplant/pkg/errors"
	"github.com/matzehuels/potplant/pkg/genotype"
	plantio "github.com/matzehuels/potplant/pkg/io"
	"github.com/matzehuels/potplant/pkg/pipeline"
	"github.com/matzehuels/potplant/pkg/plant"
)

// treeFormats are the parameter tree formats decode can write.
var treeFormats = []string{pipeline.FormatJSON, pipeline.FormatYAML}

// decodeCommand creates the decode command, which prints a genotype's
// parameter tree.
func (c *CLI) decodeCommand() *cobra.Command {
	var format, output string

	cmd := &cobra.Command{
		Use:   "decode [genotype|-]",
		Short: "Print the parameter tree of a genotype",
		Long: `Decode a genotype into its parameter tree.

The genotype is read from the argument, or from stdin when the argument is
"-" or missing.`,
		Example: `  potplant decode '>1Sd...'
  potplant random | potplant decode --format yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := errs.ValidateFormat(format, treeFormats...); err != nil {
				return err
			}
			res, err := c.load(cmd, args)
			if err != nil {
				return err
			}
			if output != "" && output != "-" && !cmd.Flags().Changed("format") {
				format = plantio.FormatFromPath(output)
			}
			var buf bytes.Buffer
			if err := plantio.WriteTree(&buf, res.Data, format); err != nil {
				return err
			}
			if err := writeOutput(cmd.OutOrStdout(), output, buf.Bytes()); err != nil {
				return err
			}
			if output != "" && output != "-" {
				printNextStep("Encode it again", "potplant encode "+output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", pipeline.FormatJSON, "output format: json, yaml")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (format follows the extension)")

	return cmd
}

// validateCommand creates the validate command. It exits non-zero when the
// genotype is rejected.
func (c *CLI) validateCommand() *cobra.Command {
	var expand bool

	cmd := &cobra.Command{
		Use:   "validate [genotype|-]",
		Short: "Check that a genotype decodes to a plant",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := c.readCode(args)
			if err != nil {
				return err
			}
			if expand {
				fmt.Fprintln(cmd.OutOrStdout(), genotype.Expand(code))
			}
			res, err := c.loadCode(cmd.Context(), code)
			if err != nil {
				printError("%s", errs.UserMessage(err))
				loggerFromContext(cmd.Context()).Debug("rejected genotype", "detail", errs.Detail(err))
				return err
			}
			printSuccess("valid genotype")
			printStats(res.Stats, false)
			return nil
		},
	}

	cmd.Flags().BoolVar(&expand, "expand", false, "print the expanded genotype text")

	return cmd
}

// encodeCommand creates the encode command, which turns a parameter tree
// file back into a genotype.
func (c *CLI) encodeCommand() *cobra.Command {
	var stdinFormat string

	cmd := &cobra.Command{
		Use:   "encode <file|->",
		Short: "Encode a JSON or YAML parameter tree as a genotype",
		Example: `  potplant decode '>1Sd...' -o plant.yaml
  potplant encode plant.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var (
				d   plant.Data
				err error
			)
			if args[0] == "-" {
				d, err = plantio.ReadTree(c.stdin, stdinFormat)
			} else {
				d, err = plantio.ImportTree(args[0])
			}
			if err != nil {
				return err
			}

			runner, err := c.newRunner(ctx, cacheNull)
			if err != nil {
				return err
			}
			defer runner.Close()

			res, err := runner.Encode(ctx, d)
			if err != nil {
				return err
			}
			return pipeline.WriteResult(cmd.OutOrStdout(), res, pipeline.FormatCode)
		},
	}

	cmd.Flags().StringVarP(&stdinFormat, "format", "f", pipeline.FormatYAML, "stdin format: json, yaml")

	return cmd
}

// load reads a genotype from args or stdin and decodes it.
func (c *CLI) load(cmd *cobra.Command, args []string) (*pipeline.Result, error) {
	code, err := c.readCode(args)
	if err != nil {
		return nil, err
	}
	return c.loadCode(cmd.Context(), code)
}

func (c *CLI) loadCode(ctx context.Context, code string) (*pipeline.Result, error) {
	runner, err := c.newRunner(ctx, cacheNull)
	if err != nil {
		return nil, err
	}
	defer runner.Close()
	return runner.Load(ctx, code)
}
