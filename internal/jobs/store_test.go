package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Mohmmed-Zaid/jobluu-client/internal/model"
)

type fakeSource struct {
	jobs  []model.Job
	err   error
	calls int
}

func (f *fakeSource) Jobs(ctx context.Context) ([]model.Job, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([]model.Job, len(f.jobs))
	copy(out, f.jobs)
	return out, nil
}

type fakeWriteAPI struct {
	nextID  int
	deleted []int
	getErr  error
}

func (f *fakeWriteAPI) Get(ctx context.Context, id int) (*model.Job, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return &model.Job{ID: id, JobTitle: "From Backend"}, nil
}

func (f *fakeWriteAPI) Post(ctx context.Context, create model.JobCreate) (*model.Job, error) {
	f.nextID++
	return &model.Job{
		ID:             f.nextID + 100,
		JobTitle:       create.JobTitle,
		Company:        create.Company,
		Location:       create.Location,
		JobType:        create.JobType,
		PackageOffered: create.PackageOffered,
		SkillsRequired: create.SkillsRequired,
		PostTime:       time.Now(),
		JobStatus:      model.JobActive,
	}, nil
}

func (f *fakeWriteAPI) Update(ctx context.Context, id int, create model.JobCreate) (*model.Job, error) {
	return &model.Job{ID: id, JobTitle: create.JobTitle, JobStatus: model.JobActive}, nil
}

func (f *fakeWriteAPI) Delete(ctx context.Context, id int) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func TestAllFetchesOnceAndCaches(t *testing.T) {
	source := &fakeSource{jobs: []model.Job{
		{ID: 1, JobTitle: "Go Developer", JobStatus: model.JobActive},
		{ID: 2, JobTitle: "Designer", JobStatus: model.JobActive},
	}}
	store := NewStore(source, &fakeWriteAPI{}, zap.NewNop())

	ctx := context.Background()
	first, err := store.All(ctx)
	require.NoError(t, err)
	require.Len(t, first, 2)

	second, err := store.All(ctx)
	require.NoError(t, err)
	require.Len(t, second, 2)
	require.Equal(t, 1, source.calls)

	// Callers get copies, not the cache itself
	second[0].JobTitle = "Mutated"
	again, err := store.All(ctx)
	require.NoError(t, err)
	require.Equal(t, "Go Developer", again[0].JobTitle)
}

func TestAllPropagatesSourceError(t *testing.T) {
	source := &fakeSource{err: errors.New("backend down")}
	store := NewStore(source, &fakeWriteAPI{}, zap.NewNop())

	_, err := store.All(context.Background())
	require.Error(t, err)

	// The failed fetch is not cached as an empty result
	source.err = nil
	source.jobs = []model.Job{{ID: 1, JobStatus: model.JobActive}}
	all, err := store.All(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)
}

func TestPostFoldsIntoLoadedCache(t *testing.T) {
	source := &fakeSource{jobs: []model.Job{{ID: 1, JobStatus: model.JobActive}}}
	store := NewStore(source, &fakeWriteAPI{}, zap.NewNop())
	ctx := context.Background()

	_, err := store.All(ctx)
	require.NoError(t, err)

	posted, err := store.Post(ctx, model.JobCreate{
		JobTitle:       "Site Reliability Engineer",
		Company:        "Gridworks",
		Location:       "Bengaluru",
		JobType:        "Full-time",
		PackageOffered: 1800000,
	})
	require.NoError(t, err)

	all, err := store.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, 1, source.calls)

	got, err := store.Get(ctx, posted.ID)
	require.NoError(t, err)
	require.Equal(t, "Site Reliability Engineer", got.JobTitle)
}

func TestGetFallsBackToBackendWhenNotCached(t *testing.T) {
	source := &fakeSource{}
	store := NewStore(source, &fakeWriteAPI{}, zap.NewNop())

	got, err := store.Get(context.Background(), 42)
	require.NoError(t, err)
	require.Equal(t, "From Backend", got.JobTitle)
	require.Zero(t, source.calls)
}

func TestUpdateAndDeleteKeepCacheInStep(t *testing.T) {
	source := &fakeSource{jobs: []model.Job{
		{ID: 1, JobTitle: "Go Developer", JobStatus: model.JobActive},
		{ID: 2, JobTitle: "Designer", JobStatus: model.JobActive},
	}}
	api := &fakeWriteAPI{}
	store := NewStore(source, api, zap.NewNop())
	ctx := context.Background()

	_, err := store.All(ctx)
	require.NoError(t, err)

	updated, err := store.Update(ctx, 1, model.JobCreate{
		JobTitle:       "Senior Go Developer",
		Company:        "Gridworks",
		Location:       "Remote",
		JobType:        "Full-time",
		PackageOffered: 3000000,
	})
	require.NoError(t, err)
	require.Equal(t, "Senior Go Developer", updated.JobTitle)

	got, err := store.Get(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, "Senior Go Developer", got.JobTitle)

	require.NoError(t, store.Delete(ctx, 2))
	require.Equal(t, []int{2}, api.deleted)

	all, err := store.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Equal(t, 1, all[0].ID)
}
