package export

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/alexanderramin/sitemap/internal/domain"
)

// Document is the JSON export shape.
type Document struct {
	Project    ProjectDoc `json:"project"`
	Floors     []FloorDoc `json:"floors"`
	ExportedAt time.Time  `json:"exportedAt"`
}

type ProjectDoc struct {
	ID      string `json:"id"`
	ShortID string `json:"shortId,omitempty"`
	Name    string `json:"name"`
	Site    string `json:"site,omitempty"`
	Status  string `json:"status"`
}

type FloorDoc struct {
	ID    string       `json:"id"`
	Name  string       `json:"name"`
	Order int          `json:"order"`
	Image *ImageDoc    `json:"image,omitempty"`
	Scene domain.Scene `json:"scene"`
}

type ImageDoc struct {
	URI    string `json:"uri"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// NewDocument builds the export document. Scenes are normalized copies.
func NewDocument(p *domain.Project, floors []*domain.Floor, now time.Time) Document {
	doc := Document{
		Project: ProjectDoc{
			ID: p.ID, ShortID: p.ShortID, Name: p.Name, Site: p.Site, Status: string(p.Status),
		},
		Floors:     make([]FloorDoc, 0, len(floors)),
		ExportedAt: now.UTC(),
	}
	for _, f := range floors {
		sc := f.Scene.Clone()
		sc.Normalize()
		fd := FloorDoc{ID: f.ID, Name: f.Name, Order: f.OrderIndex, Scene: sc}
		if f.ImageURI != "" {
			fd.Image = &ImageDoc{URI: f.ImageURI, Width: f.ImageWidth, Height: f.ImageHeight}
		}
		doc.Floors = append(doc.Floors, fd)
	}
	return doc
}

// WriteJSON writes an indented JSON document.
func WriteJSON(w io.Writer, p *domain.Project, floors []*domain.Floor) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewDocument(p, floors, time.Now())); err != nil {
		return fmt.Errorf("encoding export: %w", err)
	}
	return nil
}
