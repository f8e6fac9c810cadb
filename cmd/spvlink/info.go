package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/gogpu/spvlink"
	"github.com/gogpu/spvlink/shadertype"
)

var (
	headingColor  = color.New(color.FgCyan, color.Bold)
	locationColor = color.New(color.FgYellow)
)

var infoCmd = &cobra.Command{
	Use:   "info <file.spv>",
	Short: "Print the interface variables of a shader module",
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

		fmt.Printf("%s (%s, %d words)\n", args[0], module.Stage(), len(module.Words()))
		printVariables("Inputs", module.Inputs())
		printVariables("Outputs", module.Outputs())
		printVariables("Parameters", module.Parameters())
		return nil
	},
}

func init() {
	infoCmd.Flags().String("stage", "", "pipeline stage (vertex|tess_control|tess_evaluation|geometry|fragment|compute)")
}

func printVariables(heading string, vars []spvlink.Variable) {
	if len(vars) == 0 {
		return
	}
	headingColor.Printf("%s:\n", heading)
	for _, v := range vars {
		loc := "-"
		if v.HasLocation() {
			loc = fmt.Sprintf("%d", v.Location)
		}
		fmt.Printf("  %-24s %-16s location %s\n", v.Name, typeString(v), locationColor.Sprint(loc))
	}
}

func typeString(v spvlink.Variable) string {
	if v.Type == nil {
		return "void"
	}
	return v.Type.String()
}

// stageForFile resolves the pipeline stage from the --stage flag, or
// from conventional file name suffixes like shader.vert.spv.
func stageForFile(cmd *cobra.Command, path string) (spvlink.Stage, error) {
	if name, _ := cmd.Flags().GetString("stage"); name != "" {
		return spvlink.ParseStage(name)
	}
	base := strings.TrimSuffix(path, ".spv")
	switch {
	case strings.HasSuffix(base, ".vert"):
		return spvlink.StageVertex, nil
	case strings.HasSuffix(base, ".tesc"):
		return spvlink.StageTessControl, nil
	case strings.HasSuffix(base, ".tese"):
		return spvlink.StageTessEvaluation, nil
	case strings.HasSuffix(base, ".geom"):
		return spvlink.StageGeometry, nil
	case strings.HasSuffix(base, ".frag"):
		return spvlink.StageFragment, nil
	case strings.HasSuffix(base, ".comp"):
		return spvlink.StageCompute, nil
	default:
		return 0, fmt.Errorf("cannot infer stage from %q, pass --stage", path)
	}
}
