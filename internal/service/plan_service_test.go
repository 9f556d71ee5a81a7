package service

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/portfolio/internal/app"
	"github.com/alexanderramin/portfolio/internal/domain"
	"github.com/alexanderramin/portfolio/internal/importer"
	"github.com/alexanderramin/portfolio/internal/repository"
	"github.com/alexanderramin/portfolio/internal/testutil"
)

const treePlan = `{"tasks":[
	{"id":"p","name":"Parent","progress":5},
	{"id":"c1","name":"Build","indent":1,"progress":40,"startDate":"2025-01-06","endDate":"2025-01-10","requiredCapacity":50,"responsible":"Ada","dependencies":["c2"]},
	{"id":"c2","name":"Test","indent":1,"progress":80,"startDate":"2025-01-13","endDate":"2025-01-17","requiredCapacity":20,"responsible":"Grace","dependencies":["c1"]}
]}`

func TestPlanService_ImportBytesReportsRepairs(t *testing.T) {
	_, initiatives, plans := setupRepos(t)
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	obs := &recordingObserver{}
	svc := NewPlanService(initiatives, plans, nil, logger, obs)
	ctx := context.Background()

	ini := testutil.NewTestInitiative("Checkout")
	require.NoError(t, initiatives.Create(ctx, ini))

	raw := `{"tasks":[{"name":"No id","progress":150,"startDate":"2025-02-10","endDate":"2025-02-01"}]}`
	result, err := svc.ImportBytes(ctx, ini.ID, domain.VariantPlan, []byte(raw))
	require.NoError(t, err)

	assert.Equal(t, 1, result.TaskCount)
	assert.NotEmpty(t, result.Repairs)
	assert.Contains(t, logs.String(), "plan_repair")

	stored, err := plans.Get(ctx, ini.ID, domain.VariantPlan)
	require.NoError(t, err)
	assert.Equal(t, len(result.Repairs), stored.RepairCount)

	plan, err := svc.Get(ctx, ini.ID, domain.VariantPlan)
	require.NoError(t, err)
	require.Len(t, plan.Tasks, 1)
	assert.Equal(t, "task-1", plan.Tasks[0].ID)
	assert.Equal(t, 100, plan.Tasks[0].Progress)
	assert.False(t, plan.Tasks[0].EndDate.Before(*plan.Tasks[0].StartDate))

	require.Len(t, obs.events, 1)
	assert.Equal(t, "import-plan", obs.events[0].Name)
	assert.Equal(t, 1, obs.events[0].Fields["task_count"])
}

func TestPlanService_ImportUnknownInitiative(t *testing.T) {
	_, initiatives, plans := setupRepos(t)
	svc := NewPlanService(initiatives, plans, nil, nil)

	_, err := svc.ImportBytes(context.Background(), "missing", domain.VariantPlan, []byte(`{"tasks":[]}`))
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestPlanService_ImportRejectsUnknownVariant(t *testing.T) {
	_, initiatives, plans := setupRepos(t)
	svc := NewPlanService(initiatives, plans, nil, nil)

	_, err := svc.ImportBytes(context.Background(), "any", domain.PlanVariant("draft"), []byte(`{}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown plan variant")
}

func TestPlanService_GetMissingPlanIsEmpty(t *testing.T) {
	_, initiatives, plans := setupRepos(t)
	svc := NewPlanService(initiatives, plans, nil, nil)

	plan, err := svc.Get(context.Background(), "nobody", domain.VariantPlan)
	require.NoError(t, err)
	assert.Empty(t, plan.Tasks)
}

func TestPlanService_ExportRoundTrips(t *testing.T) {
	_, initiatives, plans := setupRepos(t)
	svc := NewPlanService(initiatives, plans, nil, nil)
	ctx := context.Background()

	ini := testutil.NewTestInitiative("Checkout")
	require.NoError(t, initiatives.Create(ctx, ini))
	_, err := svc.ImportBytes(ctx, ini.ID, domain.VariantPlan, []byte(treePlan))
	require.NoError(t, err)

	exported, err := svc.Export(ctx, ini.ID, domain.VariantPlan)
	require.NoError(t, err)

	original, err := svc.Get(ctx, ini.ID, domain.VariantPlan)
	require.NoError(t, err)
	assert.Equal(t, original, importer.NormalizePlan(exported))
}

func TestPlanService_Timeline(t *testing.T) {
	_, initiatives, plans := setupRepos(t)
	svc := NewPlanService(initiatives, plans, nil, nil)
	ctx := context.Background()

	ini := testutil.NewTestInitiative("Checkout")
	require.NoError(t, initiatives.Create(ctx, ini))
	_, err := svc.ImportBytes(ctx, ini.ID, domain.VariantPlan, []byte(treePlan))
	require.NoError(t, err)

	resp, err := svc.Timeline(ctx, app.TimelineRequest{InitiativeID: ini.ID})
	require.NoError(t, err)

	require.Len(t, resp.Rows, 3)
	assert.Equal(t, domain.VariantPlan, resp.Variant)

	parent := resp.Rows[0]
	assert.Equal(t, 0, parent.Depth)
	assert.Equal(t, 60, parent.Progress)
	assert.True(t, parent.AutoProgress)
	assert.Empty(t, parent.Slices)

	build := resp.Rows[1]
	assert.Equal(t, 1, build.Depth)
	assert.Equal(t, 40, build.Progress)
	assert.False(t, build.AutoProgress)
	require.Len(t, build.Slices, 1)
	assert.Equal(t, 50.0, build.Slices[0].Capacity)

	assert.False(t, parent.InCycle)
	assert.True(t, build.InCycle)
	assert.True(t, resp.Rows[2].InCycle)
	assert.NotEmpty(t, resp.Cycles)
	assert.Nil(t, build.Variance)

	require.NotNil(t, resp.Start)
	require.NotNil(t, resp.End)
	assert.Equal(t, testutil.Date("2025-01-06"), *resp.Start)
	assert.Equal(t, testutil.Date("2025-01-17"), *resp.End)
}

func TestPlanService_TimelineActualsCarriesVariance(t *testing.T) {
	_, initiatives, plans := setupRepos(t)
	svc := NewPlanService(initiatives, plans, nil, nil)
	ctx := context.Background()

	ini := testutil.NewTestInitiative("Checkout")
	require.NoError(t, initiatives.Create(ctx, ini))
	_, err := svc.ImportBytes(ctx, ini.ID, domain.VariantPlan, []byte(treePlan))
	require.NoError(t, err)

	actuals := `{"tasks":[
		{"id":"x1","name":"Build later","sourceTaskId":"c1","startDate":"2025-01-06","endDate":"2025-01-10","requiredCapacity":50,"responsible":"Ada"},
		{"id":"x2","name":"Brand new"}
	]}`
	_, err = svc.ImportBytes(ctx, ini.ID, domain.VariantActuals, []byte(actuals))
	require.NoError(t, err)

	resp, err := svc.Timeline(ctx, app.TimelineRequest{InitiativeID: ini.ID, Variant: domain.VariantActuals})
	require.NoError(t, err)
	require.Len(t, resp.Rows, 2)

	first := resp.Rows[0].Variance
	require.NotNil(t, first)
	assert.False(t, first.NewlyAdded)
	assert.Equal(t, []string{"name"}, fieldNames(first.Changed.List()))

	second := resp.Rows[1].Variance
	require.NotNil(t, second)
	assert.True(t, second.NewlyAdded)
}

func TestPlanService_TimelineNestedRollup(t *testing.T) {
	_, initiatives, plans := setupRepos(t)
	svc := NewPlanService(initiatives, plans, nil, nil)
	ini := testutil.NewTestInitiative("Launch")
	seedPlan(t, initiatives, plans, ini, testutil.NewTestPlan(
		testutil.NewTestTask("root", "Launch"),
		testutil.NewTestTask("phase", "Phase 1", testutil.WithIndent(1)),
		testutil.NewTestTask("x", "Spec", testutil.WithIndent(2), testutil.WithProgress(100)),
		testutil.NewTestTask("y", "Code", testutil.WithIndent(2), testutil.WithProgress(50)),
		testutil.NewTestTask("gate", "Go/no-go", testutil.WithIndent(1), testutil.WithMilestone(domain.MilestoneDecision)),
	))

	resp, err := svc.Timeline(context.Background(), app.TimelineRequest{InitiativeID: ini.ID})
	require.NoError(t, err)
	require.Len(t, resp.Rows, 5)

	assert.Equal(t, 75, resp.Rows[1].Progress)
	assert.True(t, resp.Rows[1].AutoProgress)
	// Root averages the rolled-up phase and the gate at 0.
	assert.Equal(t, 38, resp.Rows[0].Progress)
	assert.Equal(t, domain.MilestoneDecision, resp.Rows[4].Task.MilestoneType)
	assert.Nil(t, resp.Start)
	assert.Empty(t, resp.Cycles)
}
