// Command spvlink normalizes and links compiled SPIR-V shader stages.
//
// Usage:
//
//	spvlink info shader.frag.spv            # print the module interface
//	spvlink strip -o out.spv shader.spv     # normalize and strip a module
//	spvlink link pipeline.toml              # link a whole pipeline
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/gogpu/spvlink"
)

const spvlinkVersion = "0.1.0-dev"

var rootCmd = &cobra.Command{
	Use:   "spvlink",
	Short: "SPIR-V shader module linker",
	Long:  `spvlink normalizes compiled SPIR-V shader stages and links them into pipelines`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		verbose, _ := cmd.Flags().GetBool("verbose")
		if verbose {
			spvlink.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			})))
		}
	},
}

func main() {
	rootCmd.Version = spvlinkVersion

	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(stripCmd)
	rootCmd.AddCommand(linkCmd)

	rootCmd.PersistentFlags().Bool("verbose", false, "enable debug logging")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
