package importer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/alexanderramin/portfolio/internal/domain"
)

// DefaultMaxIndent is the deepest nesting level a plan may encode.
const DefaultMaxIndent = 8

// Report lists every repair applied while normalizing a document. Repairs
// are informational; normalization never fails.
type Report struct {
	Repairs []string
}

func (r *Report) add(format string, args ...any) {
	if r == nil {
		return
	}
	r.Repairs = append(r.Repairs, fmt.Sprintf(format, args...))
}

// Normalizer turns untrusted plan documents into canonical plans.
type Normalizer struct {
	MaxIndent int
}

// New returns a Normalizer with the given indent ceiling. Non-positive
// values fall back to DefaultMaxIndent.
func New(maxIndent int) *Normalizer {
	if maxIndent <= 0 {
		maxIndent = DefaultMaxIndent
	}
	return &Normalizer{MaxIndent: maxIndent}
}

// NormalizePlan normalizes raw with the default settings.
func NormalizePlan(raw []byte) domain.Plan {
	p, _ := New(DefaultMaxIndent).Normalize(raw)
	return p
}

// Canonicalize re-applies the plan invariants to an already-typed plan,
// e.g. after an edit. The input is not modified.
func Canonicalize(p domain.Plan) domain.Plan {
	return New(DefaultMaxIndent).Canonicalize(p)
}

// Normalize decodes raw best-effort and returns the canonical plan together
// with the list of repairs. Malformed JSON yields an empty plan; malformed
// fields fall back to safe defaults. A top-level array is read as the task
// list.
func (n *Normalizer) Normalize(raw []byte) (domain.Plan, Report) {
	var rep Report
	var plan domain.Plan

	raw = bytes.TrimSpace(raw)
	var taskList []json.RawMessage
	switch {
	case len(raw) == 0:
		rep.add("document: empty")
	case raw[0] == '[':
		items, ok := decodeList(raw)
		if !ok {
			rep.add("document: malformed task list")
		}
		taskList = items
	default:
		doc, ok := decodeObject(raw)
		if !ok {
			rep.add("document: not a JSON object")
			break
		}
		if doc.has("tasks") {
			items, ok := doc.list("tasks")
			if !ok {
				rep.add("tasks: expected a list")
			}
			taskList = items
		}
		if doc.has("settings") {
			if settings, ok := compactObject(doc["settings"]); ok {
				plan.Settings = settings
			} else {
				rep.add("settings: expected an object")
			}
		}
	}

	for i, item := range taskList {
		f, ok := decodeObject(item)
		if !ok {
			rep.add("tasks[%d]: expected an object, dropped", i)
			continue
		}
		plan.Tasks = append(plan.Tasks, decodeTask(fmt.Sprintf("tasks[%d]", i), f, &rep))
	}

	return n.canonicalize(plan, &rep), rep
}

// Canonicalize applies the plan invariants to a typed plan.
func (n *Normalizer) Canonicalize(p domain.Plan) domain.Plan {
	return n.canonicalize(p.Clone(), nil)
}

func decodeTask(prefix string, f fields, rep *Report) domain.Task {
	var t domain.Task

	t.ID = stringField(prefix, f, "id", rep)
	t.Name = stringField(prefix, f, "name", rep)
	t.Description = stringField(prefix, f, "description", rep)
	t.Responsible = stringField(prefix, f, "responsible", rep)
	t.Color = stringField(prefix, f, "color", rep)
	t.SourceTaskID = stringField(prefix, f, "sourceTaskId", rep)
	t.StartDate = dateField(prefix, f, "startDate", rep)
	t.EndDate = dateField(prefix, f, "endDate", rep)
	t.CapacityMode = domain.CapacityMode(stringField(prefix, f, "capacityMode", rep))
	t.MilestoneType = domain.MilestoneType(stringField(prefix, f, "milestoneType", rep))

	if v, ok := f.number("progress"); ok {
		t.Progress = saturatingInt(v)
	} else if f.has("progress") {
		rep.add("%s.progress: not a number, using 0", prefix)
	}
	if v, ok := f.number("indent"); ok {
		t.Indent = saturatingInt(v)
	} else if f.has("indent") {
		rep.add("%s.indent: not a number, using 0", prefix)
	}
	if v, ok := f.number("requiredCapacity"); ok {
		t.RequiredCapacity = &v
	} else if f.has("requiredCapacity") {
		rep.add("%s.requiredCapacity: not a number, cleared", prefix)
	}
	if v, ok := f.boolean("archived"); ok {
		t.Archived = v
	} else if f.has("archived") {
		rep.add("%s.archived: not a boolean, using false", prefix)
	}

	if f.has("dependencies") {
		items, ok := f.list("dependencies")
		if !ok {
			rep.add("%s.dependencies: expected a list", prefix)
		}
		for j, item := range items {
			id, ok := fields{"v": item}.str("v")
			if !ok {
				rep.add("%s.dependencies[%d]: not an id, dropped", prefix, j)
				continue
			}
			t.Dependencies = append(t.Dependencies, id)
		}
	}

	if f.has("capacitySegments") {
		items, ok := f.list("capacitySegments")
		if !ok {
			rep.add("%s.capacitySegments: expected a list", prefix)
		}
		for j, item := range items {
			segPrefix := fmt.Sprintf("%s.capacitySegments[%d]", prefix, j)
			sf, ok := decodeObject(item)
			if !ok {
				rep.add("%s: expected an object, dropped", segPrefix)
				continue
			}
			start, okStart := sf.date("startDate")
			end, okEnd := sf.date("endDate")
			capacity, okCap := sf.number("capacity")
			if !okStart || !okEnd || !okCap {
				rep.add("%s: missing or invalid startDate/endDate/capacity, dropped", segPrefix)
				continue
			}
			id, _ := sf.str("id")
			t.CapacitySegments = append(t.CapacitySegments, domain.CapacitySegment{
				ID:        id,
				StartDate: *start,
				EndDate:   *end,
				Capacity:  capacity,
			})
		}
	}

	if f.has("baseline") {
		bf, ok := f.object("baseline")
		if !ok {
			rep.add("%s.baseline: expected an object, dropped", prefix)
		} else {
			t.Baseline = decodeBaseline(prefix+".baseline", bf, rep)
		}
	}

	return t
}

func decodeBaseline(prefix string, f fields, rep *Report) *domain.Baseline {
	b := &domain.Baseline{
		Name:          stringField(prefix, f, "name", rep),
		Description:   stringField(prefix, f, "description", rep),
		Responsible:   stringField(prefix, f, "responsible", rep),
		StartDate:     dateField(prefix, f, "startDate", rep),
		EndDate:       dateField(prefix, f, "endDate", rep),
		MilestoneType: domain.MilestoneType(stringField(prefix, f, "milestoneType", rep)),
	}
	if v, ok := f.number("requiredCapacity"); ok {
		b.RequiredCapacity = &v
	} else if f.has("requiredCapacity") {
		rep.add("%s.requiredCapacity: not a number, cleared", prefix)
	}
	return b
}

func stringField(prefix string, f fields, key string, rep *Report) string {
	s, ok := f.str(key)
	if !ok && f.has(key) {
		rep.add("%s.%s: not a string, using empty", prefix, key)
	}
	return s
}

func dateField(prefix string, f fields, key string, rep *Report) *time.Time {
	t, ok := f.date(key)
	if !ok && f.has(key) {
		raw, _ := f.str(key)
		rep.add("%s.%s: invalid date %q (expected YYYY-MM-DD), cleared", prefix, key, raw)
	}
	return t
}

func compactObject(raw json.RawMessage) (json.RawMessage, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return nil, false
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return nil, false
	}
	return json.RawMessage(buf.Bytes()), true
}

// canonicalize enforces every plan invariant in place on p, which must not
// be shared with the caller.
func (n *Normalizer) canonicalize(p domain.Plan, rep *Report) domain.Plan {
	if p.Settings != nil {
		if settings, ok := compactObject(p.Settings); ok {
			p.Settings = settings
		} else {
			rep.add("settings: expected an object, dropped")
			p.Settings = nil
		}
	}
	if len(p.Tasks) == 0 {
		p.Tasks = nil
		return p
	}

	assignTaskIDs(p.Tasks, rep)

	known := make(map[string]bool, len(p.Tasks))
	for _, t := range p.Tasks {
		known[t.ID] = true
	}

	valueStepSeen := false
	for i := range p.Tasks {
		t := &p.Tasks[i]
		prefix := fmt.Sprintf("tasks[%d]", i)

		t.Responsible = strings.TrimSpace(t.Responsible)
		n.repairScalars(prefix, t, rep)
		repairDates(prefix, t, rep)
		repairCapacity(prefix, t, rep)

		if !domain.ValidMilestoneTypes[string(t.MilestoneType)] {
			if t.MilestoneType != "" {
				rep.add("%s.milestoneType: unknown value %q, using %q", prefix, t.MilestoneType, domain.DefaultMilestoneType)
			}
			t.MilestoneType = domain.DefaultMilestoneType
		}
		if t.MilestoneType == domain.MilestoneValueStep {
			if valueStepSeen {
				rep.add("%s.milestoneType: only the first value step is kept, demoted", prefix)
				t.MilestoneType = domain.DefaultMilestoneType
			}
			valueStepSeen = true
		}

		t.Dependencies = cleanDependencies(prefix, t.ID, t.Dependencies, known, rep)

		if t.Baseline != nil {
			repairBaseline(t.Baseline)
		}
	}
	return p
}

func (n *Normalizer) repairScalars(prefix string, t *domain.Task, rep *Report) {
	if t.Progress < 0 || t.Progress > 100 {
		clamped := clamp(t.Progress, 0, 100)
		rep.add("%s.progress: %d out of range, clamped to %d", prefix, t.Progress, clamped)
		t.Progress = clamped
	}
	if t.Indent < 0 || t.Indent > n.MaxIndent {
		clamped := clamp(t.Indent, 0, n.MaxIndent)
		rep.add("%s.indent: %d out of range, clamped to %d", prefix, t.Indent, clamped)
		t.Indent = clamped
	}
}

// repairDates mirrors a lone date onto the missing side and pulls an end
// date that precedes the start forward to the start.
func repairDates(prefix string, t *domain.Task, rep *Report) {
	if t.StartDate != nil {
		d := domain.Day(*t.StartDate)
		t.StartDate = &d
	}
	if t.EndDate != nil {
		d := domain.Day(*t.EndDate)
		t.EndDate = &d
	}
	switch {
	case t.StartDate != nil && t.EndDate == nil:
		end := *t.StartDate
		t.EndDate = &end
		rep.add("%s.endDate: missing, mirrored from startDate", prefix)
	case t.StartDate == nil && t.EndDate != nil:
		start := *t.EndDate
		t.StartDate = &start
		rep.add("%s.startDate: missing, mirrored from endDate", prefix)
	}
	if t.HasDates() && t.EndDate.Before(*t.StartDate) {
		end := *t.StartDate
		t.EndDate = &end
		rep.add("%s.endDate: before startDate, set to startDate", prefix)
	}
}

func repairCapacity(prefix string, t *domain.Task, rep *Report) {
	if t.CapacityMode != domain.CapacityFixed && t.CapacityMode != domain.CapacityVariable {
		if t.CapacityMode != "" {
			rep.add("%s.capacityMode: unknown value %q, using fixed", prefix, t.CapacityMode)
		}
		t.CapacityMode = domain.CapacityFixed
	}
	if t.RequiredCapacity != nil {
		v := *t.RequiredCapacity
		switch {
		case math.IsNaN(v) || math.IsInf(v, 0):
			rep.add("%s.requiredCapacity: not finite, cleared", prefix)
			t.RequiredCapacity = nil
		case v < 0:
			rep.add("%s.requiredCapacity: negative, set to 0", prefix)
			zero := 0.0
			t.RequiredCapacity = &zero
		}
	}

	t.CapacitySegments = validSegments(prefix, t, rep)
	if t.CapacityMode == domain.CapacityVariable && len(t.CapacitySegments) == 0 {
		rep.add("%s.capacityMode: no valid segments, degraded to fixed", prefix)
		t.CapacityMode = domain.CapacityFixed
	}
}

// validSegments keeps the segments that lie inside the task span, sorted by
// start. A segment overlapping an already-kept one is dropped.
func validSegments(prefix string, t *domain.Task, rep *Report) []domain.CapacitySegment {
	if len(t.CapacitySegments) == 0 {
		return nil
	}
	if !t.HasDates() {
		rep.add("%s.capacitySegments: task has no dates, %d segment(s) dropped", prefix, len(t.CapacitySegments))
		return nil
	}

	candidates := make([]domain.CapacitySegment, 0, len(t.CapacitySegments))
	for j, seg := range t.CapacitySegments {
		seg.StartDate = domain.Day(seg.StartDate)
		seg.EndDate = domain.Day(seg.EndDate)
		switch {
		case seg.EndDate.Before(seg.StartDate):
			rep.add("%s.capacitySegments[%d]: ends before it starts, dropped", prefix, j)
		case seg.StartDate.Before(*t.StartDate) || seg.EndDate.After(*t.EndDate):
			rep.add("%s.capacitySegments[%d]: outside task dates, dropped", prefix, j)
		case math.IsNaN(seg.Capacity) || math.IsInf(seg.Capacity, 0) || seg.Capacity < 0:
			rep.add("%s.capacitySegments[%d]: invalid capacity, dropped", prefix, j)
		default:
			candidates = append(candidates, seg)
		}
	}

	sort.SliceStable(candidates, func(a, b int) bool {
		if !candidates[a].StartDate.Equal(candidates[b].StartDate) {
			return candidates[a].StartDate.Before(candidates[b].StartDate)
		}
		return candidates[a].EndDate.Before(candidates[b].EndDate)
	})

	var kept []domain.CapacitySegment
	for _, seg := range candidates {
		if len(kept) > 0 && !seg.StartDate.After(kept[len(kept)-1].EndDate) {
			rep.add("%s.capacitySegments: segment starting %s overlaps a previous one, dropped", prefix, seg.StartDate.Format(domain.DateLayout))
			continue
		}
		kept = append(kept, seg)
	}

	assignSegmentIDs(t.ID, kept)
	return kept
}

func assignSegmentIDs(taskID string, segs []domain.CapacitySegment) {
	taken := make(map[string]bool, len(segs))
	for _, s := range segs {
		if s.ID != "" {
			taken[s.ID] = true
		}
	}
	claimed := make(map[string]bool, len(segs))
	for i := range segs {
		if segs[i].ID != "" && !claimed[segs[i].ID] {
			claimed[segs[i].ID] = true
			continue
		}
		segs[i].ID = uniqueID(fmt.Sprintf("%s-seg-%d", taskID, i+1), taken, claimed)
	}
}

// assignTaskIDs gives every task a unique ID. The first occurrence of an ID
// keeps it; blanks and later duplicates get a position-derived ID so that
// normalizing the same document twice yields the same IDs.
func assignTaskIDs(tasks []domain.Task, rep *Report) {
	taken := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		t.ID = strings.TrimSpace(t.ID)
		if t.ID != "" {
			taken[t.ID] = true
		}
	}
	claimed := make(map[string]bool, len(tasks))
	for i := range tasks {
		tasks[i].ID = strings.TrimSpace(tasks[i].ID)
		id := tasks[i].ID
		if id != "" && !claimed[id] {
			claimed[id] = true
			continue
		}
		newID := uniqueID(fmt.Sprintf("task-%d", i+1), taken, claimed)
		if id == "" {
			rep.add("tasks[%d].id: missing, assigned %q", i, newID)
		} else {
			rep.add("tasks[%d].id: duplicate %q, reassigned %q", i, id, newID)
		}
		tasks[i].ID = newID
	}
}

func uniqueID(base string, taken, claimed map[string]bool) string {
	candidate := base
	for k := 2; taken[candidate] || claimed[candidate]; k++ {
		candidate = fmt.Sprintf("%s-%d", base, k)
	}
	taken[candidate] = true
	claimed[candidate] = true
	return candidate
}

func cleanDependencies(prefix, selfID string, deps []string, known map[string]bool, rep *Report) []string {
	if len(deps) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(deps))
	var out []string
	for _, d := range deps {
		d = strings.TrimSpace(d)
		switch {
		case d == "" || seen[d]:
			continue
		case d == selfID:
			rep.add("%s.dependencies: self-dependency dropped", prefix)
			continue
		case !known[d]:
			rep.add("%s.dependencies: unknown task %q dropped", prefix, d)
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	return out
}

func repairBaseline(b *domain.Baseline) {
	if b.StartDate != nil {
		d := domain.Day(*b.StartDate)
		b.StartDate = &d
	}
	if b.EndDate != nil {
		d := domain.Day(*b.EndDate)
		b.EndDate = &d
	}
	if !domain.ValidMilestoneTypes[string(b.MilestoneType)] {
		b.MilestoneType = domain.DefaultMilestoneType
	}
	if b.RequiredCapacity != nil && (math.IsNaN(*b.RequiredCapacity) || math.IsInf(*b.RequiredCapacity, 0)) {
		b.RequiredCapacity = nil
	}
}

// saturatingInt rounds v and pins it to the int32 range so huge inputs keep
// their sign through the conversion; repairScalars clamps the rest.
func saturatingInt(v float64) int {
	return int(math.Round(math.Max(math.MinInt32, math.Min(math.MaxInt32, v))))
}

func clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
