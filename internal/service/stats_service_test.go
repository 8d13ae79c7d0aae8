package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/manypost/manypost/internal/models"
)

const videoStatsJSON = `{
	"items": [
		{
			"id": "yt123",
			"statistics": {"viewCount": "1500", "likeCount": "120", "commentCount": "14"}
		}
	]
}`

func TestSyncStats_SnapshotsCounters(t *testing.T) {
	ctx := context.Background()

	apiSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "videos") {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(videoStatsJSON))
			return
		}
		http.NotFound(w, r)
	}))
	defer apiSrv.Close()

	history := []*models.PostHistory{
		{ID: 1, UserID: 7, IntegrationID: 3, PlatformPostID: "yt123", Platform: models.PlatformYoutube},
	}
	integration := &models.Integration{ID: 3, UserID: 7, Platform: models.PlatformYoutube}

	ph := new(PostHistoryRepoMock)
	ir := new(IntegrationRepoMock)
	vs := new(VideoStatRepoMock)
	ts := new(TokenServiceMock)

	ph.On("ListSuccessful", mock.Anything, int64(7), models.PlatformYoutube).Return(history, nil).Once()
	ir.On("GetByID", mock.Anything, int64(3)).Return(integration, nil).Once()
	ts.On("EnsureValid", mock.Anything, integration).Return("tok", nil).Once()

	var snapshot *models.VideoStat
	vs.On("Create", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			snapshot = args.Get(1).(*models.VideoStat)
		}).
		Return(int64(1), nil).
		Once()

	svc := NewStatsService(ph, ir, vs, ts).(*statsService)
	svc.apiBase = apiSrv.URL

	synced, err := svc.Sync(ctx, 7)
	require.NoError(t, err)
	require.Equal(t, 1, synced)

	require.NotNil(t, snapshot)
	require.Equal(t, int64(7), snapshot.UserID)
	require.Equal(t, int64(1), snapshot.PostHistoryID)
	require.Equal(t, "yt123", snapshot.PlatformPostID)
	require.Equal(t, int64(1500), snapshot.ViewCount)
	require.Equal(t, int64(120), snapshot.LikeCount)
	require.Equal(t, int64(14), snapshot.CommentCount)

	vs.AssertExpectations(t)
}

func TestSyncStats_SkipsFailingPosts(t *testing.T) {
	ctx := context.Background()

	apiSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(videoStatsJSON))
	}))
	defer apiSrv.Close()

	history := []*models.PostHistory{
		{ID: 1, UserID: 7, IntegrationID: 3, PlatformPostID: "gone", Platform: models.PlatformYoutube},
		{ID: 2, UserID: 7, IntegrationID: 4, PlatformPostID: "yt123", Platform: models.PlatformYoutube},
	}

	ph := new(PostHistoryRepoMock)
	ir := new(IntegrationRepoMock)
	vs := new(VideoStatRepoMock)
	ts := new(TokenServiceMock)

	ph.On("ListSuccessful", mock.Anything, int64(0), models.PlatformYoutube).Return(history, nil).Once()
	// First post's integration was disconnected.
	ir.On("GetByID", mock.Anything, int64(3)).Return(nil, nil).Once()
	ir.On("GetByID", mock.Anything, int64(4)).Return(&models.Integration{ID: 4, UserID: 7}, nil).Once()
	ts.On("EnsureValid", mock.Anything, mock.Anything).Return("tok", nil).Once()
	vs.On("Create", mock.Anything, mock.Anything).Return(int64(1), nil).Once()

	svc := NewStatsService(ph, ir, vs, ts).(*statsService)
	svc.apiBase = apiSrv.URL

	synced, err := svc.Sync(ctx, 0)
	require.NoError(t, err)
	require.Equal(t, 1, synced)
}
