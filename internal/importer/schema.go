package importer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// PlanDocument is the canonical JSON structure of a plan.
type PlanDocument struct {
	Tasks    []TaskDocument  `json:"tasks"`
	Settings json.RawMessage `json:"settings,omitempty"`
}

// TaskDocument defines a task in the plan document.
type TaskDocument struct {
	ID               string            `json:"id"`
	Name             string            `json:"name"`
	Description      string            `json:"description"`
	StartDate        *string           `json:"startDate"`
	EndDate          *string           `json:"endDate"`
	Responsible      string            `json:"responsible"`
	Progress         int               `json:"progress"`
	CapacityMode     string            `json:"capacityMode"`
	RequiredCapacity *float64          `json:"requiredCapacity"`
	CapacitySegments []SegmentDocument `json:"capacitySegments"`
	Indent           int               `json:"indent"`
	Dependencies     []string          `json:"dependencies"`
	MilestoneType    string            `json:"milestoneType"`
	Color            string            `json:"color"`
	Archived         bool              `json:"archived"`
	Baseline         *BaselineDocument `json:"baseline,omitempty"`
	SourceTaskID     string            `json:"sourceTaskId,omitempty"`
}

// SegmentDocument defines one capacity segment of a variable-capacity task.
type SegmentDocument struct {
	ID        string  `json:"id"`
	StartDate string  `json:"startDate"`
	EndDate   string  `json:"endDate"`
	Capacity  float64 `json:"capacity"`
}

// BaselineDocument defines the frozen snapshot attached to an actuals task.
type BaselineDocument struct {
	Name             string   `json:"name"`
	Description      string   `json:"description"`
	StartDate        *string  `json:"startDate"`
	EndDate          *string  `json:"endDate"`
	Responsible      string   `json:"responsible"`
	MilestoneType    string   `json:"milestoneType"`
	RequiredCapacity *float64 `json:"requiredCapacity"`
}

// LoadPlanDocument reads a plan file and returns its content as JSON bytes.
// YAML files (.yaml, .yml) are converted to JSON so that both formats go
// through the same normalizer. The content itself is not validated here.
func LoadPlanDocument(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yamlToJSON(data)
	default:
		return data, nil
	}
}

func yamlToJSON(data []byte) ([]byte, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing plan yaml: %w", err)
	}
	out, err := json.Marshal(jsonCompatible(doc))
	if err != nil {
		return nil, fmt.Errorf("converting plan yaml: %w", err)
	}
	return out, nil
}

// jsonCompatible rewrites YAML-decoded values into shapes encoding/json
// accepts: non-string map keys are stringified and timestamps become dates.
func jsonCompatible(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = jsonCompatible(item)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[fmt.Sprint(k)] = jsonCompatible(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = jsonCompatible(item)
		}
		return out
	case time.Time:
		return val.UTC().Format(time.RFC3339)
	default:
		return val
	}
}
