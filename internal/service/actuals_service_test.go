package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/portfolio/internal/baseline"
	"github.com/alexanderramin/portfolio/internal/domain"
	"github.com/alexanderramin/portfolio/internal/importer"
	"github.com/alexanderramin/portfolio/internal/repository"
	"github.com/alexanderramin/portfolio/internal/testutil"
)

func fieldNames(fs []baseline.Field) []string {
	out := make([]string, len(fs))
	for i, f := range fs {
		out[i] = string(f)
	}
	return out
}

func seedActualsFixture(t *testing.T, initiatives repository.InitiativeRepo, plans repository.PlanRepo) *domain.Initiative {
	t.Helper()
	ini := testutil.NewTestInitiative("Checkout")
	seedPlan(t, initiatives, plans, ini, testutil.NewTestPlan(
		testutil.NewTestTask("a", "Design", testutil.WithDates("2025-01-06", "2025-01-10"), testutil.WithCapacity(40), testutil.WithOwner("Ada")),
		testutil.NewTestTask("b", "Build", testutil.WithDates("2025-01-13", "2025-01-24"), testutil.WithCapacity(60), testutil.WithOwner("Grace"), testutil.WithDependencies("a")),
	))
	return ini
}

func TestActualsService_ReseedCopiesPlan(t *testing.T) {
	database, initiatives, plans := setupRepos(t)
	ini := seedActualsFixture(t, initiatives, plans)
	obs := &recordingObserver{}
	svc := NewActualsService(initiatives, plans, testutil.NewTestUoW(database), nil, obs)
	seq := 0
	svc.(*actualsService).newID = func() string {
		seq++
		return fmt.Sprintf("act-%d", seq)
	}
	ctx := context.Background()

	result, err := svc.Reseed(ctx, ini.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, result.TaskCount)
	assert.False(t, result.Replaced)

	stored, err := plans.Get(ctx, ini.ID, domain.VariantActuals)
	require.NoError(t, err)
	actuals := importer.NormalizePlan(stored.Document)
	require.Len(t, actuals.Tasks, 2)

	first, second := actuals.Tasks[0], actuals.Tasks[1]
	assert.Equal(t, "a", first.SourceTaskID)
	assert.Equal(t, "act-1", first.ID)
	assert.Equal(t, "act-2", second.ID)
	require.NotNil(t, first.Baseline)
	assert.Equal(t, "Design", first.Baseline.Name)
	assert.Equal(t, []string{"act-1"}, second.Dependencies)

	again, err := svc.Reseed(ctx, ini.ID)
	require.NoError(t, err)
	assert.True(t, again.Replaced)

	require.Len(t, obs.events, 2)
	assert.Equal(t, "reseed-actuals", obs.events[1].Name)
	assert.Equal(t, true, obs.events[1].Fields["replaced"])
}

func TestActualsService_ReseedWithoutPlan(t *testing.T) {
	database, initiatives, plans := setupRepos(t)
	svc := NewActualsService(initiatives, plans, testutil.NewTestUoW(database), nil)
	ctx := context.Background()

	ini := testutil.NewTestInitiative("Empty")
	require.NoError(t, initiatives.Create(ctx, ini))

	_, err := svc.Reseed(ctx, ini.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = svc.Reseed(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestActualsService_ReseedRollsBackOnWriteFailure(t *testing.T) {
	database, initiatives, plans := setupRepos(t)
	ini := seedActualsFixture(t, initiatives, plans)
	ctx := context.Background()

	good := NewActualsService(initiatives, plans, testutil.NewTestUoW(database), nil)
	_, err := good.Reseed(ctx, ini.ID)
	require.NoError(t, err)
	before, err := plans.Get(ctx, ini.ID, domain.VariantActuals)
	require.NoError(t, err)

	injected := errors.New("disk full")
	failing := NewActualsService(initiatives, plans, &testutil.FailOnNthExecUoW{DB: database, FailOn: 1, Err: injected}, nil)
	_, err = failing.Reseed(ctx, ini.ID)
	require.ErrorIs(t, err, injected)

	after, err := plans.Get(ctx, ini.ID, domain.VariantActuals)
	require.NoError(t, err)
	assert.Equal(t, string(before.Document), string(after.Document))
}

func TestActualsService_Variance(t *testing.T) {
	database, initiatives, plans := setupRepos(t)
	ini := seedActualsFixture(t, initiatives, plans)
	obs := &recordingObserver{}
	svc := NewActualsService(initiatives, plans, testutil.NewTestUoW(database), nil, obs)
	planSvc := NewPlanService(initiatives, plans, nil, nil)
	ctx := context.Background()

	_, err := svc.Reseed(ctx, ini.ID)
	require.NoError(t, err)

	resp, err := svc.Variance(ctx, ini.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Summary.Unchanged)

	actuals, err := planSvc.Get(ctx, ini.ID, domain.VariantActuals)
	require.NoError(t, err)
	actuals.Tasks[1].EndDate = domain.DatePtr(testutil.Date("2025-01-31"))
	actuals.Tasks[1].Responsible = "Ada"
	actuals.Tasks = append(actuals.Tasks, testutil.NewTestTask("extra", "Hotfix"))
	doc, err := importer.Marshal(actuals)
	require.NoError(t, err)
	_, err = planSvc.ImportBytes(ctx, ini.ID, domain.VariantActuals, doc)
	require.NoError(t, err)

	resp, err = svc.Variance(ctx, ini.ID)
	require.NoError(t, err)
	require.Len(t, resp.Rows, 3)

	assert.Empty(t, resp.Rows[0].Changed)
	assert.Equal(t, "Build", resp.Rows[1].Name)
	assert.Equal(t, []string{"endDate", "responsible"}, fieldNames(resp.Rows[1].Changed))
	assert.True(t, resp.Rows[2].NewlyAdded)

	assert.Equal(t, 3, resp.Summary.Tasks)
	assert.Equal(t, 1, resp.Summary.Unchanged)
	assert.Equal(t, 1, resp.Summary.NewlyAdded)
	assert.Equal(t, 1, resp.Summary.ByField[baseline.FieldEndDate])

	require.Len(t, obs.events, 3)
	last := obs.events[2]
	assert.Equal(t, "actuals-variance", last.Name)
	assert.True(t, last.Success)
	assert.Equal(t, 3, last.Fields["task_count"])
	assert.Equal(t, 1, last.Fields["unchanged"])
}

func TestActualsService_VarianceWithoutActuals(t *testing.T) {
	database, initiatives, plans := setupRepos(t)
	ini := seedActualsFixture(t, initiatives, plans)
	obs := &recordingObserver{}
	svc := NewActualsService(initiatives, plans, testutil.NewTestUoW(database), nil, obs)

	_, err := svc.Variance(context.Background(), ini.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	require.Len(t, obs.events, 1)
	assert.False(t, obs.events[0].Success)
}
