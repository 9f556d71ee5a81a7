package domain

import "encoding/json"

// Plan is an ordered task sequence plus display settings. Settings are
// opaque to the engine and carried through unchanged.
type Plan struct {
	Tasks    []Task
	Settings json.RawMessage
}

// TaskByID returns the first task with the given ID.
func (p *Plan) TaskByID(id string) (*Task, bool) {
	for i := range p.Tasks {
		if p.Tasks[i].ID == id {
			return &p.Tasks[i], true
		}
	}
	return nil, false
}

// Clone returns a deep copy of the plan.
func (p Plan) Clone() Plan {
	out := Plan{}
	if p.Tasks != nil {
		out.Tasks = make([]Task, len(p.Tasks))
		for i, t := range p.Tasks {
			out.Tasks[i] = t.Clone()
		}
	}
	if p.Settings != nil {
		out.Settings = append(json.RawMessage(nil), p.Settings...)
	}
	return out
}
