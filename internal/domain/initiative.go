package domain

import (
	"fmt"
	"regexp"
	"time"
)

var shortIDPattern = regexp.MustCompile(`^[A-Z]{3,6}[0-9]{2,4}$`)

// Initiative is a tracked portfolio item. Stage is owned by the approval
// workflow and stored here as an opaque label.
type Initiative struct {
	ID         string
	ShortID    string
	Name       string
	Stage      string
	Status     InitiativeStatus
	ArchivedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ValidateShortID checks that ShortID is non-empty and matches the required
// format: 3-6 uppercase letters followed by 2-4 digits (e.g. CRM01, PAY0234).
func (i *Initiative) ValidateShortID() error {
	if i.ShortID == "" {
		return fmt.Errorf("short ID is required (use --id flag)")
	}
	if !shortIDPattern.MatchString(i.ShortID) {
		return fmt.Errorf("short ID %q must be 3-6 uppercase letters followed by 2-4 digits (e.g. CRM01)", i.ShortID)
	}
	return nil
}

// DisplayID returns the best short identifier for display.
// It prefers ShortID; if empty it truncates ID to 8 characters.
func (i *Initiative) DisplayID() string {
	if i.ShortID != "" {
		return i.ShortID
	}
	if len(i.ID) >= 8 {
		return i.ID[:8]
	}
	return i.ID
}

// IsActive reports whether the initiative contributes to cross-plan load.
func (i *Initiative) IsActive() bool {
	return i.ArchivedAt == nil && i.Status != InitiativeArchived && i.Status != InitiativeDone
}
