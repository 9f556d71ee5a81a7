package importer

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/alexanderramin/portfolio/internal/domain"
)

// ToDocument converts a plan into its wire representation. Nil collections
// are emitted as empty lists so consumers never see null.
func ToDocument(p domain.Plan) PlanDocument {
	doc := PlanDocument{
		Tasks:    make([]TaskDocument, 0, len(p.Tasks)),
		Settings: p.Settings,
	}
	for _, t := range p.Tasks {
		td := TaskDocument{
			ID:               t.ID,
			Name:             t.Name,
			Description:      t.Description,
			StartDate:        dateString(t.StartDate),
			EndDate:          dateString(t.EndDate),
			Responsible:      t.Responsible,
			Progress:         t.Progress,
			CapacityMode:     string(t.CapacityMode),
			RequiredCapacity: t.RequiredCapacity,
			CapacitySegments: make([]SegmentDocument, 0, len(t.CapacitySegments)),
			Indent:           t.Indent,
			Dependencies:     make([]string, 0, len(t.Dependencies)),
			MilestoneType:    string(t.MilestoneType),
			Color:            t.Color,
			Archived:         t.Archived,
			SourceTaskID:     t.SourceTaskID,
		}
		td.Dependencies = append(td.Dependencies, t.Dependencies...)
		for _, s := range t.CapacitySegments {
			td.CapacitySegments = append(td.CapacitySegments, SegmentDocument{
				ID:        s.ID,
				StartDate: s.StartDate.Format(domain.DateLayout),
				EndDate:   s.EndDate.Format(domain.DateLayout),
				Capacity:  s.Capacity,
			})
		}
		if t.Baseline != nil {
			b := t.Baseline
			td.Baseline = &BaselineDocument{
				Name:             b.Name,
				Description:      b.Description,
				StartDate:        dateString(b.StartDate),
				EndDate:          dateString(b.EndDate),
				Responsible:      b.Responsible,
				MilestoneType:    string(b.MilestoneType),
				RequiredCapacity: b.RequiredCapacity,
			}
		}
		doc.Tasks = append(doc.Tasks, td)
	}
	return doc
}

// Marshal encodes a plan as an indented JSON document that NormalizePlan
// reads back to an equal plan.
func Marshal(p domain.Plan) ([]byte, error) {
	out, err := json.MarshalIndent(ToDocument(p), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding plan: %w", err)
	}
	return out, nil
}

func dateString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(domain.DateLayout)
	return &s
}
