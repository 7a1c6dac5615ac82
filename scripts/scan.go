//go:build ignore

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/specvital/testdoc/pkg/docmodel"
	"github.com/specvital/testdoc/pkg/domain"
	"github.com/specvital/testdoc/pkg/records"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: go run scripts/scan.go <path> [glob...]\n")
		os.Exit(1)
	}

	path := os.Args[1]
	patterns := os.Args[2:]
	if len(patterns) == 0 {
		patterns = []string{"**/*.yaml", "**/*.json"}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	start := time.Now()
	loaded, err := records.Load(os.DirFS(path), patterns)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load error: %v\n", err)
		os.Exit(1)
	}

	model, err := docmodel.New(docmodel.Config{Settings: domain.Settings{TagsChart: true}}).Assemble(ctx, loaded.Classes)
	if err != nil {
		fmt.Fprintf(os.Stderr, "assemble error: %v\n", err)
		os.Exit(1)
	}

	output := map[string]interface{}{
		"filesRead":     len(loaded.Files),
		"classCount":    len(model.Classes),
		"methodCount":   model.TotalMethods,
		"duration":      time.Since(start).String(),
		"tagCategories": countTags(model),
	}
	json.NewEncoder(os.Stdout).Encode(output)
}

func countTags(model *domain.DocumentModel) map[string]int {
	if model.Tags == nil {
		return map[string]int{}
	}
	return model.Tags.Counts
}
