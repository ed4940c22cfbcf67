package sframe

import (
	"bytes"
	"embed"
	"fmt"
	"sort"
	"strings"

	"github.com/apache/arrow-go/v18/arrow/memory"
)

//go:embed datasets/*.csv
var datasetFS embed.FS

// LoadDataset loads one of the bundled reference datasets ("mtcars", "iris")
// as a tagged tabular object. These stand in for the host runtime's dataset
// packages in examples and tests.
func LoadDataset(mem memory.Allocator, name string) (*DataFrame, error) {
	data, err := datasetFS.ReadFile("datasets/" + name + ".csv")
	if err != nil {
		return nil, fmt.Errorf("unknown dataset %q (have: %s)", name, strings.Join(DatasetNames(), ", "))
	}
	return ReadCSVFromReader(mem, bytes.NewReader(data))
}

// DatasetNames lists the bundled datasets in sorted order.
func DatasetNames() []string {
	entries, err := datasetFS.ReadDir("datasets")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".csv"))
	}
	sort.Strings(names)
	return names
}
