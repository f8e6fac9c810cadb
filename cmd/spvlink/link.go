package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/gogpu/spvlink"
	"github.com/gogpu/spvlink/shadertype"
)

// pipelineManifest describes the ordered stages of a shader pipeline.
type pipelineManifest struct {
	Stages []pipelineStage `toml:"stages"`
}

type pipelineStage struct {
	Stage string `toml:"stage"`
	Path  string `toml:"path"`
}

var linkCmd = &cobra.Command{
	Use:   "link <pipeline.toml>",
	Short: "Link the stages of a shader pipeline",
	Long: `Link loads every stage named by the manifest, matches each stage's
inputs against the previous stage's outputs, and writes the normalized
binaries back out. A manifest lists stages in pipeline order:

    [[stages]]
    stage = "vertex"
    path  = "shader.vert.spv"

    [[stages]]
    stage = "fragment"
    path  = "shader.frag.spv"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var manifest pipelineManifest
		if _, err := toml.DecodeFile(args[0], &manifest); err != nil {
			return err
		}
		if len(manifest.Stages) == 0 {
			return fmt.Errorf("%s: manifest names no stages", args[0])
		}

		registry := shadertype.Default()
		modules := make([]*spvlink.Module, len(manifest.Stages))
		for i, entry := range manifest.Stages {
			stage, err := spvlink.ParseStage(entry.Stage)
			if err != nil {
				return err
			}
			data, err := os.ReadFile(entry.Path)
			if err != nil {
				return err
			}
			modules[i], err = spvlink.LoadBytes(stage, data, registry)
			if err != nil {
				return fmt.Errorf("%s: %w", entry.Path, err)
			}
		}

		for i := 1; i < len(modules); i++ {
			if err := modules[i].LinkInputs(modules[i-1]); err != nil {
				return fmt.Errorf("%s: %w", manifest.Stages[i].Path, err)
			}
		}

		outDir, _ := cmd.Flags().GetString("out-dir")
		for i, module := range modules {
			out := outputPath(manifest.Stages[i].Path, outDir)
			if err := os.WriteFile(out, module.Bytes(), 0o644); err != nil {
				return err
			}
			fmt.Printf("%-16s %s\n", module.Stage(), out)
		}

		if reflectPath, _ := cmd.Flags().GetString("reflect"); reflectPath != "" {
			return writeReflection(reflectPath, modules)
		}
		return nil
	},
}

func init() {
	linkCmd.Flags().String("out-dir", "", "directory for linked binaries (default next to inputs)")
	linkCmd.Flags().String("reflect", "", "write msgpack reflection data for all stages to this file")
}

func outputPath(input, outDir string) string {
	base := strings.TrimSuffix(filepath.Base(input), ".spv") + ".linked.spv"
	if outDir == "" {
		return filepath.Join(filepath.Dir(input), base)
	}
	return filepath.Join(outDir, base)
}

func writeReflection(path string, modules []*spvlink.Module) error {
	infos := make([]*spvlink.ModuleInfo, len(modules))
	for i, module := range modules {
		infos[i] = module.Info()
	}
	data, err := spvlink.EncodePipelineReflection(infos)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
