// # internal/output/json.go
package output

import (
	"encoding/json"

	"classmap/internal/index"
)

type JSONGenerator struct {
	index *index.Index
}

type jsonReport struct {
	Classes      map[string]string   `json:"classes"`
	Dependencies map[string][]string `json:"dependencies"`
}

func NewJSONGenerator(idx *index.Index) *JSONGenerator {
	return &JSONGenerator{index: idx}
}

func (j *JSONGenerator) Generate() (string, error) {
	report := jsonReport{
		Classes:      j.index.AllMappedNames(),
		Dependencies: j.index.AllFileDependencies(),
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data) + "\n", nil
}
