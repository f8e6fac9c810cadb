package spvlink

import "fmt"

// Stage identifies a pipeline stage. Values are ordered by pipeline
// position, so earlier stages compare less than later ones.
type Stage uint8

const (
	StageVertex Stage = iota
	StageTessControl
	StageTessEvaluation
	StageGeometry
	StageFragment
	StageCompute
)

// String returns the lowercase stage name.
func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageTessControl:
		return "tess_control"
	case StageTessEvaluation:
		return "tess_evaluation"
	case StageGeometry:
		return "geometry"
	case StageFragment:
		return "fragment"
	case StageCompute:
		return "compute"
	default:
		return fmt.Sprintf("stage(%d)", uint8(s))
	}
}

// ParseStage converts a stage name as used in pipeline manifests.
func ParseStage(name string) (Stage, error) {
	switch name {
	case "vertex":
		return StageVertex, nil
	case "tess_control":
		return StageTessControl, nil
	case "tess_evaluation":
		return StageTessEvaluation, nil
	case "geometry":
		return StageGeometry, nil
	case "fragment":
		return StageFragment, nil
	case "compute":
		return StageCompute, nil
	default:
		return 0, fmt.Errorf("spvlink: unknown stage %q", name)
	}
}
