package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/wbrown/imtool"
)

var rootCmd = &cobra.Command{
	Use:   "imtool <input> <output> <operation> [args...]",
	Short: "Batch operations on PPM and compressed PPM images",
	Long: `imtool reads one image, applies one operation and writes the result.

Operations:
  compress              PPM -> palette-indexed C6 (zstd framed for .zst outputs)
  decompress            C6 -> PPM
  resize <w> <h>        bilinear resize (see --filter)
  maxlevel <max>        rescale channels to a new max color (0-65535)
  cutfreq <n>           replace the n least frequent colors with neighbors
  info                  print format, size, max level and color count
  export                PPM -> PNG, JPEG, GIF or TIFF by output extension
  import                PNG, JPEG, GIF or TIFF -> 8-bit PPM`,
	Args:          cobra.MinimumNArgs(3),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().BoolP("verbose", "v", false, "Log progress to stderr")
	rootCmd.Flags().String("filter", "bilinear",
		"Resize filter: bilinear, xbilinear, nearest, approxbilinear, catmullrom, "+
			"bicubic, mitchell, lanczos2, lanczos3")
	rootCmd.Flags().Bool("zstd", false, "Wrap compress output in a zstd frame")
	rootCmd.Flags().Bool("exact-fallback", false,
		"cutfreq: search all retained colors when no grid neighbor exists")
	rootCmd.Flags().Bool("retained-only", false,
		"cutfreq: only pick replacements among retained colors")
}

func run(cmd *cobra.Command, args []string) error {
	req, err := parseRequest(args)
	if err != nil {
		return err
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	if !verbose {
		log.SetOutput(io.Discard)
	}
	filter, _ := cmd.Flags().GetString("filter")
	useZstd, _ := cmd.Flags().GetBool("zstd")
	exactFallback, _ := cmd.Flags().GetBool("exact-fallback")
	retainedOnly, _ := cmd.Flags().GetBool("retained-only")

	switch req.op {
	case opCompress:
		return imtool.Compress(req.input, req.output, imtool.CompressOptions{Zstd: useZstd})
	case opDecompress:
		return imtool.Decompress(req.input, req.output)
	case opResize:
		return imtool.ResizeFile(req.input, req.output, req.width, req.height, filter)
	case opMaxLevel:
		return imtool.MaxLevelFile(req.input, req.output, req.level)
	case opCutfreq:
		return imtool.CutfreqFile(req.input, req.output, req.count, imtool.CutfreqOptions{
			RetainedOnly:  retainedOnly,
			ExactFallback: exactFallback,
		})
	case opInfo:
		info, err := imtool.Info(req.input)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), info)
		return nil
	case opExport:
		return imtool.Export(req.input, req.output)
	case opImport:
		return imtool.Import(req.input, req.output)
	}
	return fmt.Errorf("unknown operation %q", req.op)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "imtool: %v\n", err)
		os.Exit(1)
	}
}
