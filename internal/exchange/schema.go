package exchange

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// PlanDocument is the JSON form of a lesson plan.
type PlanDocument struct {
	Title         string         `json:"title"`
	StartTime     string         `json:"startTime,omitempty"`
	BudgetSeconds int            `json:"budgetSeconds,omitempty"`
	StageOrder    []string       `json:"stageOrder,omitempty"`
	Items         []PlanItemJSON `json:"items"`
}

// PlanItemJSON is one item of a PlanDocument. Durations are in seconds.
type PlanItemJSON struct {
	StageID      string `json:"stageId"`
	StageName    string `json:"stageName"`
	ExerciseID   string `json:"exerciseId"`
	ExerciseName string `json:"exerciseName"`
	Duration     int    `json:"duration"`
	Order        int    `json:"order,omitempty"`
}

// CatalogDocument is the JSON seed format for stages and their exercises.
type CatalogDocument struct {
	Stages []StageJSON `json:"stages"`
}

type StageJSON struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Exercises   []ExerciseJSON `json:"exercises,omitempty"`
}

type ExerciseJSON struct {
	Name        string `json:"name"`
	Duration    int    `json:"duration"`
	Description string `json:"description,omitempty"`
}

// LoadPlanDocument reads and parses a plan JSON file.
func LoadPlanDocument(path string) (*PlanDocument, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadPlanDocument(f)
}

func ReadPlanDocument(r io.Reader) (*PlanDocument, error) {
	var doc PlanDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("parsing plan file: %w", err)
	}
	return &doc, nil
}

// WritePlanDocument encodes doc as indented JSON.
func WritePlanDocument(w io.Writer, doc *PlanDocument) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding plan: %w", err)
	}
	return nil
}

// LoadCatalogDocument reads and parses a catalog seed file.
func LoadCatalogDocument(path string) (*CatalogDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc CatalogDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing catalog file: %w", err)
	}
	return &doc, nil
}

// WriteCatalogDocument encodes doc as indented JSON.
func WriteCatalogDocument(w io.Writer, doc *CatalogDocument) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding catalog: %w", err)
	}
	return nil
}
