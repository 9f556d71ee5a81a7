package domain

type InitiativeStatus string

const (
	InitiativeActive   InitiativeStatus = "active"
	InitiativePaused   InitiativeStatus = "paused"
	InitiativeDone     InitiativeStatus = "done"
	InitiativeArchived InitiativeStatus = "archived"
)

type CapacityMode string

const (
	CapacityFixed    CapacityMode = "fixed"
	CapacityVariable CapacityMode = "variable"
)

type MilestoneType string

const (
	MilestoneTask      MilestoneType = "task"
	MilestoneMilestone MilestoneType = "milestone"
	MilestoneDecision  MilestoneType = "decision"
	// MilestoneValueStep is reserved: at most one task per plan may carry it.
	MilestoneValueStep MilestoneType = "value_step"
)

// DefaultMilestoneType is what unknown or missing milestone types degrade to.
const DefaultMilestoneType = MilestoneTask

// ValidMilestoneTypes is the canonical set of accepted milestone type strings.
var ValidMilestoneTypes = map[string]bool{
	"task": true, "milestone": true, "decision": true, "value_step": true,
}

// PlanVariant distinguishes the working plan from its actuals copy.
type PlanVariant string

const (
	VariantPlan    PlanVariant = "plan"
	VariantActuals PlanVariant = "actuals"
)

// GroupUnit is the calendar unit used to bucket load over time.
type GroupUnit string

const (
	GroupWeek    GroupUnit = "week"
	GroupMonth   GroupUnit = "month"
	GroupQuarter GroupUnit = "quarter"
)

// ValidGroupUnits is the canonical set of accepted grouping units.
var ValidGroupUnits = map[string]bool{
	"week": true, "month": true, "quarter": true,
}
