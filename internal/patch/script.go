package patch

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// Step operations.
const (
	OpAdd       = "add"
	OpRemove    = "remove"
	OpLink      = "link"
	OpUnlink    = "unlink"
	OpUnlinkAll = "unlink-all"
	OpRetire    = "retire"
	OpSet       = "set"
	OpDump      = "dump"
	OpProcess   = "process"
)

// Script is a YAML control script: the objects to create, then the steps to
// run against them in order.
type Script struct {
	SampleRate float64      `yaml:"sample_rate,omitempty"`
	BlockSize  int          `yaml:"block_size,omitempty"`
	Objects    []ObjectSpec `yaml:"objects"`
	Steps      []Step       `yaml:"steps"`
}

// ObjectSpec names an object and the parameters it is built with.
type ObjectSpec struct {
	Name   string         `yaml:"name"`
	Type   string         `yaml:"type"`
	Params map[string]any `yaml:"params,omitempty"`
}

// Step is one matrix edit or processing request.
type Step struct {
	Op    string   `yaml:"op"`
	Src   string   `yaml:"src,omitempty"`
	Dest  string   `yaml:"dest,omitempty"`
	Param string   `yaml:"param,omitempty"`
	Name  string   `yaml:"name,omitempty"`
	Value *float64 `yaml:"value,omitempty"`
	// Blocks is the number of blocks a process step runs; 0 means one.
	Blocks int `yaml:"blocks,omitempty"`
	// Type and Params describe the object an add step creates.
	Type   string         `yaml:"type,omitempty"`
	Params map[string]any `yaml:"params,omitempty"`
}

// ParseScript decodes and validates a YAML script.
func ParseScript(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}

	return &s, nil
}

// LoadScript reads and parses the script at path.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	s, err := ParseScript(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return s, nil
}

// Validate checks the script's shape. Names and parameters are resolved
// only when the script runs.
func (s *Script) Validate() error {
	if s.SampleRate < 0 {
		return fmt.Errorf("sample_rate must be >= 0: %g", s.SampleRate)
	}

	if s.BlockSize < 0 {
		return fmt.Errorf("block_size must be >= 0: %d", s.BlockSize)
	}

	for i, o := range s.Objects {
		if o.Name == "" || o.Type == "" {
			return fmt.Errorf("object %d: name and type are required", i+1)
		}
	}

	for i, st := range s.Steps {
		if err := st.Validate(); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
	}

	return nil
}

// Validate checks that st carries the fields its operation needs.
func (st Step) Validate() error {
	need := func(fields ...string) error {
		for i := 0; i < len(fields); i += 2 {
			if fields[i+1] == "" {
				return fmt.Errorf("%s: %s is required", st.Op, fields[i])
			}
		}

		return nil
	}

	switch st.Op {
	case OpAdd:
		return need("name", st.Name, "type", st.Type)
	case OpRemove:
		return need("name", st.Name)
	case OpLink:
		return need("src", st.Src, "dest", st.Dest, "param", st.Param)
	case OpUnlink:
		return need("dest", st.Dest, "param", st.Param)
	case OpUnlinkAll:
		return need("dest", st.Dest)
	case OpRetire:
		return need("src", st.Src)
	case OpSet:
		if st.Value == nil {
			return fmt.Errorf("%s: value is required", st.Op)
		}

		return need("dest", st.Dest, "param", st.Param)
	case OpDump:
		return nil
	case OpProcess:
		if st.Blocks < 0 {
			return fmt.Errorf("%s: blocks must be >= 0: %d", st.Op, st.Blocks)
		}

		return nil
	default:
		return fmt.Errorf("unknown op %q", st.Op)
	}
}
