package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/portfolio/internal/domain"
	"github.com/alexanderramin/portfolio/internal/importer"
	"github.com/alexanderramin/portfolio/internal/repository"
	"github.com/alexanderramin/portfolio/internal/testutil"
)

func setupRepos(t *testing.T) (*sql.DB, repository.InitiativeRepo, repository.PlanRepo) {
	t.Helper()
	db := testutil.NewTestDB(t)
	return db, repository.NewSQLiteInitiativeRepo(db), repository.NewSQLitePlanRepo(db)
}

// seedPlan creates an initiative and stores plan as its working document.
func seedPlan(t *testing.T, initiatives repository.InitiativeRepo, plans repository.PlanRepo, ini *domain.Initiative, plan domain.Plan) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, initiatives.Create(ctx, ini))
	doc, err := importer.Marshal(plan)
	require.NoError(t, err)
	require.NoError(t, plans.Save(ctx, &repository.StoredPlan{
		InitiativeID: ini.ID,
		Variant:      domain.VariantPlan,
		Document:     doc,
	}))
}

type recordingObserver struct {
	events []UseCaseEvent
}

func (r *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	r.events = append(r.events, e)
}
