// Package workflow generates the GitHub Actions descriptor that checks every
// configured feature-flag combination.
package workflow

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
	"pkt.systems/vprop/internal/config"
)

// FileName is the generated workflow file, relative to .github/workflows.
const FileName = "test.yml"

type document struct {
	Name string  `yaml:"name"`
	On   trigger `yaml:"on"`
	Jobs jobList `yaml:"jobs"`
}

type trigger struct {
	Push        branchFilter `yaml:"push"`
	PullRequest branchFilter `yaml:"pull_request"`
}

type branchFilter struct {
	Branches []string `yaml:"branches"`
}

type job struct {
	RunsOn string `yaml:"runs-on"`
	Steps  []step `yaml:"steps"`
}

type step struct {
	Name string `yaml:"name,omitempty"`
	Uses string `yaml:"uses,omitempty"`
	Run  string `yaml:"run,omitempty"`
}

type namedJob struct {
	name string
	job  job
}

// jobList marshals as a mapping while keeping insertion order, so the
// generated descriptor is deterministic.
type jobList []namedJob

func (l jobList) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, nj := range l {
		var key, val yaml.Node
		key.SetString(nj.name)
		if err := val.Encode(nj.job); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, &key, &val)
	}
	return node, nil
}

// Generate renders the workflow YAML for the configured feature matrix. With
// no features configured a single default check job is emitted.
func Generate(cfg *config.Config) ([]byte, error) {
	doc := document{
		Name: "test",
		On: trigger{
			Push:        branchFilter{Branches: []string{"main"}},
			PullRequest: branchFilter{Branches: []string{"main"}},
		},
	}

	checkout := step{Name: "Checkout", Uses: "actions/checkout@v4"}
	if len(cfg.Features) == 0 {
		doc.Jobs = jobList{{
			name: "check",
			job: job{
				RunsOn: "ubuntu-latest",
				Steps: []step{
					checkout,
					{Name: "Check", Run: "cargo check"},
					{Name: "Test", Run: "cargo test"},
				},
			},
		}}
	}
	for _, fs := range cfg.Features {
		flags := ""
		for i, f := range fs.Flags {
			if i > 0 {
				flags += ","
			}
			flags += f
		}
		doc.Jobs = append(doc.Jobs, namedJob{
			name: "check-" + fs.Name,
			job: job{
				RunsOn: "ubuntu-latest",
				Steps: []step{
					checkout,
					{Name: "Check", Run: fmt.Sprintf("cargo check --features %s", flags)},
					{Name: "Test", Run: fmt.Sprintf("cargo test --features %s", flags)},
				},
			},
		})
	}

	return yaml.Marshal(doc)
}

// Write renders the workflow and writes it under dir/.github/workflows.
func Write(dir string, cfg *config.Config) (string, error) {
	data, err := Generate(cfg)
	if err != nil {
		return "", err
	}
	outDir := filepath.Join(dir, ".github", "workflows")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(outDir, FileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
