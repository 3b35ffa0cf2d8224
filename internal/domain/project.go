package domain

import (
	"fmt"
	"regexp"
	"time"
)

var shortIDPattern = regexp.MustCompile(`^[A-Z]{3,6}[0-9]{2,4}$`)

// Project is a customer site whose floor plans are annotated.
type Project struct {
	ID         string
	ShortID    string
	Name       string
	Site       string // street address or free-text location
	Status     ProjectStatus
	ArchivedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ValidateShortID checks that ShortID is non-empty and matches the required
// format: 3-6 uppercase letters followed by 2-4 digits (e.g. HQ01 is too
// short, ACME01 is fine).
func (p *Project) ValidateShortID() error {
	if p.ShortID == "" {
		return fmt.Errorf("short ID is required (use --id flag)")
	}
	if !shortIDPattern.MatchString(p.ShortID) {
		return fmt.Errorf("short ID %q must be 3-6 uppercase letters followed by 2-4 digits (e.g. ACME01)", p.ShortID)
	}
	return nil
}

// DisplayID returns the best short identifier for display.
func (p *Project) DisplayID() string {
	return DisplayID(p.ShortID, p.ID)
}

// DisplayID prefers shortID; if empty it truncates id to 8 characters.
func DisplayID(shortID, id string) string {
	if shortID != "" {
		return shortID
	}
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}
