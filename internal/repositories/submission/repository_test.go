package submission

import (
	"context"
	"errors"
	"testing"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/veranda/pkg/models"
	"github.com/Ramsey-B/veranda/pkg/storage"
)

func testLogger() ectologger.Logger {
	return ectologger.NewEctoLogger(func(_ ectologger.EctoLogMessage) {})
}

func testBridge() *storage.Bridge {
	return storage.NewBridge(storage.NewMemoryBackend(), "test", testLogger())
}

func newTestRepository() *Repository {
	return NewRepository(testBridge(), testLogger())
}

func createRequest() models.CreateSubmissionRequest {
	return models.CreateSubmissionRequest{
		Title:        "2BHK Flat",
		Price:        2500000,
		City:         "Pune",
		PropertyType: "Flat",
		ListingType:  models.ListingTypeSell,
		Category:     models.CategoryResidential,
	}
}

func TestAddStartsPending(t *testing.T) {
	repo := newTestRepository()
	ctx := context.Background()

	first, err := repo.Add(ctx, createRequest())
	require.NoError(t, err)
	second, err := repo.Add(ctx, createRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, first.ID)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, models.SubmissionStatusPending, first.Status)
	assert.Equal(t, models.SubmissionSourceUser, first.Source)
	assert.False(t, first.SubmittedAt.IsZero())
	assert.Nil(t, first.ApprovedAt)
	assert.Nil(t, first.PublishedAt)
}

func TestCreateAdminStampsTimestamps(t *testing.T) {
	repo := newTestRepository()
	ctx := context.Background()

	tests := []struct {
		name          string
		status        string
		wantApproved  bool
		wantPublished bool
	}{
		{name: "pending has no stamps", status: models.SubmissionStatusPending},
		{name: "approved stamps approval", status: models.SubmissionStatusApproved, wantApproved: true},
		{name: "published stamps both", status: models.SubmissionStatusPublished, wantApproved: true, wantPublished: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub, err := repo.CreateAdmin(ctx, models.CreateAdminSubmissionRequest{
				CreateSubmissionRequest: createRequest(),
				Status:                  tt.status,
			})
			require.NoError(t, err)

			assert.Equal(t, models.SubmissionSourceAdmin, sub.Source)
			assert.Equal(t, tt.status, sub.Status)
			assert.Equal(t, tt.wantApproved, sub.ApprovedAt != nil)
			assert.Equal(t, tt.wantPublished, sub.PublishedAt != nil)
		})
	}
}

func TestApprovePublishUnpublishLifecycle(t *testing.T) {
	repo := newTestRepository()
	ctx := context.Background()

	sub, err := repo.Add(ctx, createRequest())
	require.NoError(t, err)

	approved, err := repo.Approve(ctx, sub.ID, "looks good")
	require.NoError(t, err)
	assert.Equal(t, models.SubmissionStatusApproved, approved.Status)
	require.NotNil(t, approved.ApprovedAt)
	assert.Equal(t, "looks good", approved.AdminNotes)

	published, err := repo.Publish(ctx, sub.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SubmissionStatusPublished, published.Status)
	require.NotNil(t, published.PublishedAt)

	unpublished, err := repo.Unpublish(ctx, sub.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SubmissionStatusApproved, unpublished.Status)
	assert.Nil(t, unpublished.PublishedAt)
	assert.NotNil(t, unpublished.ApprovedAt)
}

func TestRejectKeepsNotesOptional(t *testing.T) {
	repo := newTestRepository()
	ctx := context.Background()

	sub, err := repo.Add(ctx, createRequest())
	require.NoError(t, err)

	rejected, err := repo.Reject(ctx, sub.ID, "")
	require.NoError(t, err)
	assert.Equal(t, models.SubmissionStatusRejected, rejected.Status)
	assert.Empty(t, rejected.AdminNotes)
}

func TestPublishedOnlyReturnsPublished(t *testing.T) {
	repo := newTestRepository()
	ctx := context.Background()

	pending, err := repo.Add(ctx, createRequest())
	require.NoError(t, err)

	toPublish, err := repo.Add(ctx, createRequest())
	require.NoError(t, err)
	_, err = repo.Approve(ctx, toPublish.ID, "")
	require.NoError(t, err)
	_, err = repo.Publish(ctx, toPublish.ID)
	require.NoError(t, err)

	published := repo.Published(ctx)
	require.Len(t, published, 1)
	assert.Equal(t, toPublish.ID, published[0].ID)
	assert.NotEqual(t, pending.ID, published[0].ID)
}

func TestPendingFiltersByListingType(t *testing.T) {
	repo := newTestRepository()
	ctx := context.Background()

	sell := createRequest()
	_, err := repo.Add(ctx, sell)
	require.NoError(t, err)

	lease := createRequest()
	lease.ListingType = models.ListingTypeLease
	_, err = repo.Add(ctx, lease)
	require.NoError(t, err)

	assert.Len(t, repo.Pending(ctx, ""), 2)
	assert.Len(t, repo.Pending(ctx, models.ListingTypeSell), 1)
	assert.Len(t, repo.Pending(ctx, models.ListingTypeLease), 1)
}

func TestSoftDeleteKeepsRecordInAll(t *testing.T) {
	repo := newTestRepository()
	ctx := context.Background()

	sub, err := repo.Add(ctx, createRequest())
	require.NoError(t, err)

	require.NoError(t, repo.SoftDelete(ctx, sub.ID))

	all := repo.All(ctx)
	require.Len(t, all, 1)
	assert.Equal(t, models.SubmissionStatusDeleted, all[0].Status)

	got, err := repo.GetByID(ctx, sub.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SubmissionStatusDeleted, got.Status)
	assert.Empty(t, repo.Published(ctx))
}

func TestUpdateMergesSetFieldsOnly(t *testing.T) {
	repo := newTestRepository()
	ctx := context.Background()

	sub, err := repo.Add(ctx, createRequest())
	require.NoError(t, err)

	title := "3BHK Flat"
	price := int64(4500000)
	updated, err := repo.Update(ctx, sub.ID, models.UpdateSubmissionRequest{
		Title: &title,
		Price: &price,
	})
	require.NoError(t, err)

	assert.Equal(t, "3BHK Flat", updated.Title)
	assert.Equal(t, int64(4500000), updated.Price)
	assert.Equal(t, "Pune", updated.City)
	assert.Equal(t, models.SubmissionStatusPending, updated.Status)
}

func TestEmptyUpdateIsIdempotent(t *testing.T) {
	repo := newTestRepository()
	ctx := context.Background()

	sub, err := repo.Add(ctx, createRequest())
	require.NoError(t, err)

	updated, err := repo.Update(ctx, sub.ID, models.UpdateSubmissionRequest{})
	require.NoError(t, err)
	assert.Equal(t, *sub, *updated)
}

func TestStatsInvariants(t *testing.T) {
	repo := newTestRepository()
	ctx := context.Background()

	sell := createRequest()
	lease := createRequest()
	lease.ListingType = models.ListingTypeLease

	_, err := repo.Add(ctx, sell)
	require.NoError(t, err)
	_, err = repo.Add(ctx, lease)
	require.NoError(t, err)

	approved, err := repo.Add(ctx, sell)
	require.NoError(t, err)
	_, err = repo.Approve(ctx, approved.ID, "")
	require.NoError(t, err)

	published, err := repo.Add(ctx, sell)
	require.NoError(t, err)
	_, err = repo.Publish(ctx, published.ID)
	require.NoError(t, err)

	rejected, err := repo.Add(ctx, sell)
	require.NoError(t, err)
	_, err = repo.Reject(ctx, rejected.ID, "")
	require.NoError(t, err)

	deleted, err := repo.Add(ctx, sell)
	require.NoError(t, err)
	require.NoError(t, repo.SoftDelete(ctx, deleted.ID))

	stats := repo.Stats(ctx)

	assert.Equal(t, 6, stats.Total)
	assert.Equal(t, stats.Total, stats.Pending+stats.Approved+stats.Rejected+stats.Published+stats.Deleted)
	assert.Equal(t, stats.Pending, stats.PendingSell+stats.PendingLease)
	assert.Equal(t, 2, stats.Pending)
	assert.Equal(t, 1, stats.PendingLease)
	assert.Equal(t, 1, stats.Published)
	assert.Equal(t, 1, stats.Deleted)
}

func TestNotFoundReturns404(t *testing.T) {
	repo := newTestRepository()
	ctx := context.Background()

	_, err := repo.GetByID(ctx, "missing")
	require.Error(t, err)
	assert.Equal(t, 404, httperror.GetStatusCode(err))

	_, err = repo.Approve(ctx, "missing", "")
	assert.Equal(t, 404, httperror.GetStatusCode(err))

	err = repo.SoftDelete(ctx, "missing")
	assert.Equal(t, 404, httperror.GetStatusCode(err))
}

func TestPersistenceSurvivesRestart(t *testing.T) {
	bridge := testBridge()
	ctx := context.Background()

	repo := NewRepository(bridge, testLogger())
	sub, err := repo.Add(ctx, createRequest())
	require.NoError(t, err)

	reloaded := NewRepository(bridge, testLogger())
	got, err := reloaded.GetByID(ctx, sub.ID)
	require.NoError(t, err)
	assert.Equal(t, sub.Title, got.Title)
}

// brokenBackend errors on every operation.
type brokenBackend struct{}

func (b *brokenBackend) Name() string { return "broken" }
func (b *brokenBackend) Get(ctx context.Context, key string) (string, bool, error) {
	return "", false, errors.New("down")
}
func (b *brokenBackend) Set(ctx context.Context, key string, value string) error {
	return errors.New("down")
}
func (b *brokenBackend) Delete(ctx context.Context, key string) error { return errors.New("down") }
func (b *brokenBackend) Ping(ctx context.Context) error               { return errors.New("down") }
func (b *brokenBackend) Close() error                                 { return nil }

func TestOperationsSucceedWhenPersistenceFails(t *testing.T) {
	bridge := storage.NewBridge(&brokenBackend{}, "test", testLogger())
	repo := NewRepository(bridge, testLogger())
	ctx := context.Background()

	sub, err := repo.Add(ctx, createRequest())
	require.NoError(t, err)

	_, err = repo.Approve(ctx, sub.ID, "")
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, sub.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SubmissionStatusApproved, got.Status)
}
