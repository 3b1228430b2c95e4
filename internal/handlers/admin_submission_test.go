package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/veranda/internal/repositories/submission"
	"github.com/Ramsey-B/veranda/pkg/events"
	"github.com/Ramsey-B/veranda/pkg/models"
	"github.com/Ramsey-B/veranda/pkg/storage"
)

func newAdminSubmissionHandler() (*AdminSubmissionHandler, *submission.Repository) {
	logger := testLogger()
	bridge := storage.NewBridge(storage.NewMemoryBackend(), "test", logger)
	repo := submission.NewRepository(bridge, logger)
	return NewAdminSubmissionHandler(repo, events.NewEmitter(nil, logger), logger), repo
}

func addSubmission(t *testing.T, repo *submission.Repository, listingType string) *models.Submission {
	t.Helper()
	sub, err := repo.Add(context.Background(), models.CreateSubmissionRequest{
		Title: "2BHK Flat", Price: 2500000, City: "Pune", PropertyType: "Flat",
		ListingType: listingType, Category: models.CategoryResidential,
	})
	require.NoError(t, err)
	return sub
}

func TestAdminListFiltersPending(t *testing.T) {
	handler, repo := newAdminSubmissionHandler()
	e := echo.New()
	ctx := context.Background()

	addSubmission(t, repo, models.ListingTypeSell)
	lease := addSubmission(t, repo, models.ListingTypeLease)
	approved := addSubmission(t, repo, models.ListingTypeSell)
	_, err := repo.Approve(ctx, approved.ID, "")
	require.NoError(t, err)

	req, rec := jsonRequest(http.MethodGet, "/api/v1/admin/submissions?status=pending&listing_type=lease", "")
	c := e.NewContext(req, rec)
	require.NoError(t, handler.List(c))

	var resp models.SubmissionListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.TotalCount)
	assert.Equal(t, lease.ID, resp.Items[0].ID)

	// Without the status filter the whole ledger comes back.
	req, rec = jsonRequest(http.MethodGet, "/api/v1/admin/submissions", "")
	c = e.NewContext(req, rec)
	require.NoError(t, handler.List(c))
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.TotalCount)
}

func TestAdminCreateRequiresStatus(t *testing.T) {
	handler, _ := newAdminSubmissionHandler()
	e := echo.New()

	body := `{"title":"Office Space","price":9000000,"city":"Mumbai","property_type":"Office","listing_type":"lease","category":"commercial"}`
	req, rec := jsonRequest(http.MethodPost, "/api/v1/admin/submissions", body)
	c := e.NewContext(req, rec)

	err := handler.Create(c)
	require.Error(t, err)
}

func TestAdminCreatePublishedDirectly(t *testing.T) {
	handler, repo := newAdminSubmissionHandler()
	e := echo.New()

	body := `{"title":"Office Space","price":9000000,"city":"Mumbai","property_type":"Office","listing_type":"lease","category":"commercial","status":"published","is_featured":true}`
	req, rec := jsonRequest(http.MethodPost, "/api/v1/admin/submissions", body)
	c := e.NewContext(req, rec)

	require.NoError(t, handler.Create(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var created models.Submission
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, models.SubmissionStatusPublished, created.Status)
	assert.Equal(t, models.SubmissionSourceAdmin, created.Source)
	assert.True(t, created.IsFeatured)
	assert.NotNil(t, created.PublishedAt)

	assert.Len(t, repo.Published(context.Background()), 1)
}

func TestApproveCarriesNotes(t *testing.T) {
	handler, repo := newAdminSubmissionHandler()
	e := echo.New()

	sub := addSubmission(t, repo, models.ListingTypeSell)

	req, rec := jsonRequest(http.MethodPost, "/api/v1/admin/submissions/"+sub.ID+"/approve", `{"notes":"verified docs"}`)
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(sub.ID)

	require.NoError(t, handler.Approve(c))

	var approved models.Submission
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &approved))
	assert.Equal(t, models.SubmissionStatusApproved, approved.Status)
	assert.Equal(t, "verified docs", approved.AdminNotes)
}

func TestStatsEndpoint(t *testing.T) {
	handler, repo := newAdminSubmissionHandler()
	e := echo.New()
	ctx := context.Background()

	addSubmission(t, repo, models.ListingTypeSell)
	published := addSubmission(t, repo, models.ListingTypeLease)
	_, err := repo.Publish(ctx, published.ID)
	require.NoError(t, err)

	req, rec := jsonRequest(http.MethodGet, "/api/v1/admin/stats", "")
	c := e.NewContext(req, rec)
	require.NoError(t, handler.Stats(c))

	var stats models.SubmissionStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.Pending)
	assert.Equal(t, 1, stats.Published)
	assert.Equal(t, stats.Pending, stats.PendingSell+stats.PendingLease)
}

func TestDeleteSoftDeletes(t *testing.T) {
	handler, repo := newAdminSubmissionHandler()
	e := echo.New()
	ctx := context.Background()

	sub := addSubmission(t, repo, models.ListingTypeSell)

	req, rec := jsonRequest(http.MethodDelete, "/api/v1/admin/submissions/"+sub.ID, "")
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(sub.ID)

	require.NoError(t, handler.Delete(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	got, err := repo.GetByID(ctx, sub.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SubmissionStatusDeleted, got.Status)
}
