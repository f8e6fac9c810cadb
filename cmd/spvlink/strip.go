package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gogpu/spvlink"
	"github.com/gogpu/spvlink/shadertype"
)

var stripCmd = &cobra.Command{
	Use:   "strip <file.spv>",
	Short: "Normalize a shader module and strip its debug instructions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		stage, err := stageForFile(cmd, args[0])
		if err != nil {
			return err
		}

		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		module, err := spvlink.LoadBytes(stage, data, shadertype.Default())
		if err != nil {
			return err
		}

		out, _ := cmd.Flags().GetString("output")
		if out == "" {
			out = strings.TrimSuffix(args[0], ".spv") + ".stripped.spv"
		}
		if err := os.WriteFile(out, module.Bytes(), 0o644); err != nil {
			return err
		}
		fmt.Printf("%s: %d words -> %s: %d words\n",
			args[0], len(data)/4, out, len(module.Words()))
		return nil
	},
}

func init() {
	stripCmd.Flags().StringP("output", "o", "", "output file (default <file>.stripped.spv)")
	stripCmd.Flags().String("stage", "", "pipeline stage (vertex|tess_control|tess_evaluation|geometry|fragment|compute)")
}
