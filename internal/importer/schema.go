// Package importer reads project documents from JSON, validates them, and
// converts them into domain records. The accepted shape is the one the JSON
// export writes, so an exported project can be imported again as a copy.
package importer

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/alexanderramin/sitemap/internal/domain"
	"github.com/alexanderramin/sitemap/internal/geom"
)

// ImportSchema is the top-level JSON structure for project import.
type ImportSchema struct {
	Project ProjectImport `json:"project"`
	Floors  []FloorImport `json:"floors"`
}

// ProjectImport defines the project-level fields in the import file.
type ProjectImport struct {
	ShortID string `json:"shortId"`
	Name    string `json:"name"`
	Site    string `json:"site,omitempty"`
}

// FloorImport defines one floor. Order is optional; floors without one keep
// their position in the file.
type FloorImport struct {
	Name  string       `json:"name"`
	Order *int         `json:"order,omitempty"`
	Image *ImageImport `json:"image,omitempty"`
	Scene SceneImport  `json:"scene"`
}

type ImageImport struct {
	URI    string `json:"uri"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

type SceneImport struct {
	Nodes  []NodeImport  `json:"nodes"`
	Cables []CableImport `json:"cables"`
}

// NodeImport defines a placed device. Rotation defaults to 0 and scale to 1.
type NodeImport struct {
	ID           string           `json:"id"`
	Type         string           `json:"type"`
	X            float64          `json:"x"`
	Y            float64          `json:"y"`
	Rotation     *float64         `json:"rotation,omitempty"`
	Scale        *float64         `json:"scale,omitempty"`
	ParentRackID string           `json:"parentRackId,omitempty"`
	Status       string           `json:"status,omitempty"`
	Evidence     *domain.Evidence `json:"evidence,omitempty"`
}

// CableImport defines a routed cable. An empty color is assigned from the
// palette on conversion.
type CableImport struct {
	ID       string           `json:"id"`
	Points   []geom.Point     `json:"points"`
	Color    string           `json:"color,omitempty"`
	Status   string           `json:"status,omitempty"`
	Evidence *domain.Evidence `json:"evidence,omitempty"`
}

// LoadImportSchema reads and parses a project import JSON file.
func LoadImportSchema(path string) (*ImportSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseImportSchema(data)
}

// ParseImportSchema parses an import document.
func ParseImportSchema(data []byte) (*ImportSchema, error) {
	var schema ImportSchema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &schema, nil
}
