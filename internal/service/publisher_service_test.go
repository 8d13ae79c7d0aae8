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
	"github.com/manypost/manypost/internal/transfer"
)

func okResult(id string) *transfer.PublishResult {
	return &transfer.PublishResult{Success: true, VideoID: id}
}

// mp4Bytes is a minimal ftyp box so the content sniff accepts the payload.
var mp4Bytes = append([]byte{
	0x00, 0x00, 0x00, 0x18, 'f', 't', 'y', 'p', 'i', 's', 'o', 'm',
	0x00, 0x00, 0x02, 0x00, 'i', 's', 'o', 'm', 'i', 's', 'o', '2',
}, make([]byte, 64)...)

func publisherFixture(storageURL string) (*models.ScheduledPost, *models.Integration, *models.Video) {
	post := &models.ScheduledPost{
		ID:            42,
		UserID:        7,
		IntegrationID: 3,
		VideoID:       9,
		Platform:      models.PlatformYoutube,
		Status:        models.PostStatusPending,
		Title:         "My upload",
		Description:   "desc",
		Tags:          []string{"go"},
		PrivacyStatus: models.PrivacyPublic,
		VideoType:     models.VideoTypeNormal,
	}
	integration := &models.Integration{ID: 3, UserID: 7, Platform: models.PlatformYoutube}
	video := &models.Video{ID: 9, UserID: 7, StorageURL: storageURL, UploadStatus: models.UploadStatusCompleted}
	return post, integration, video
}

func TestPublish_Success(t *testing.T) {
	ctx := context.Background()

	storage := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(mp4Bytes)
	}))
	defer storage.Close()

	var uploads *httptest.Server
	uploads = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			w.Header().Set("Location", uploads.URL+"/session")
			w.WriteHeader(http.StatusOK)
		case http.MethodPut:
			w.Write([]byte(`{"id":"yt123"}`))
		}
	}))
	defer uploads.Close()

	post, integration, video := publisherFixture(storage.URL)

	sp := new(ScheduledPostRepoMock)
	ph := new(PostHistoryRepoMock)
	ts := new(TokenServiceMock)

	sp.On("GetWithRelations", mock.Anything, int64(42)).Return(post, integration, video, nil).Once()
	sp.On("ClaimForProcessing", mock.Anything, int64(42)).Return(true, nil).Once()
	ts.On("EnsureValid", mock.Anything, integration).Return("tok", nil).Once()
	sp.On("UpdateStatus", mock.Anything, models.PostStatusPosted, int64(42)).Return(nil).Once()

	var history *models.PostHistory
	ph.On("Create", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			history = args.Get(1).(*models.PostHistory)
		}).
		Return(int64(1), nil).
		Once()

	uploader := NewYoutubeUploader()
	uploader.BaseURL = uploads.URL

	svc := NewPublisherService(sp, ph, ts, uploader)

	result, err := svc.Publish(ctx, 42)
	require.NoError(t, err)
	require.True(t, result.Success)
	require.Equal(t, "yt123", result.VideoID)
	require.Equal(t, "https://www.youtube.com/watch?v=yt123", result.VideoURL)

	require.NotNil(t, history)
	require.Equal(t, models.HistoryStatusSuccess, history.Status)
	require.Equal(t, "yt123", history.PlatformPostID)
	require.Equal(t, "https://www.youtube.com/watch?v=yt123", history.PlatformPostURL)
	require.Empty(t, history.ErrorMessage)

	sp.AssertExpectations(t)
	ph.AssertExpectations(t)
	ts.AssertExpectations(t)
}

func TestPublish_UploadInitFailure(t *testing.T) {
	ctx := context.Background()

	storage := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(mp4Bytes)
	}))
	defer storage.Close()

	uploads := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusForbidden)
	}))
	defer uploads.Close()

	post, integration, video := publisherFixture(storage.URL)

	sp := new(ScheduledPostRepoMock)
	ph := new(PostHistoryRepoMock)
	ts := new(TokenServiceMock)

	sp.On("GetWithRelations", mock.Anything, int64(42)).Return(post, integration, video, nil).Once()
	sp.On("ClaimForProcessing", mock.Anything, int64(42)).Return(true, nil).Once()
	ts.On("EnsureValid", mock.Anything, integration).Return("tok", nil).Once()
	sp.On("UpdateStatus", mock.Anything, models.PostStatusFailed, int64(42)).Return(nil).Once()

	var history *models.PostHistory
	ph.On("Create", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			history = args.Get(1).(*models.PostHistory)
		}).
		Return(int64(1), nil).
		Once()

	uploader := NewYoutubeUploader()
	uploader.BaseURL = uploads.URL

	svc := NewPublisherService(sp, ph, ts, uploader)

	result, err := svc.Publish(ctx, 42)
	require.ErrorIs(t, err, models.ErrUploadInit)
	require.Nil(t, result)

	require.NotNil(t, history)
	require.Equal(t, models.HistoryStatusFailed, history.Status)
	require.NotEmpty(t, history.ErrorMessage)
	require.Empty(t, history.PlatformPostID)

	sp.AssertExpectations(t)
	ph.AssertExpectations(t)
}

func TestPublish_NotFound(t *testing.T) {
	ctx := context.Background()

	sp := new(ScheduledPostRepoMock)
	ph := new(PostHistoryRepoMock)
	ts := new(TokenServiceMock)

	sp.On("GetWithRelations", mock.Anything, int64(99)).Return(nil, nil, nil, nil).Once()

	svc := NewPublisherService(sp, ph, ts, NewYoutubeUploader())

	result, err := svc.Publish(ctx, 99)
	require.ErrorIs(t, err, models.ErrNotFound)
	require.Nil(t, result)

	// A missing post must not be claimed or leave history behind.
	sp.AssertNotCalled(t, "ClaimForProcessing", mock.Anything, mock.Anything)
	ph.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPublish_ClaimRejected(t *testing.T) {
	ctx := context.Background()

	post, integration, video := publisherFixture("http://storage.invalid/video")
	post.Status = models.PostStatusProcessing

	sp := new(ScheduledPostRepoMock)
	ph := new(PostHistoryRepoMock)
	ts := new(TokenServiceMock)

	sp.On("GetWithRelations", mock.Anything, int64(42)).Return(post, integration, video, nil).Once()
	sp.On("ClaimForProcessing", mock.Anything, int64(42)).Return(false, nil).Once()

	svc := NewPublisherService(sp, ph, ts, NewYoutubeUploader())

	result, err := svc.Publish(ctx, 42)
	require.ErrorIs(t, err, models.ErrNotPublishable)
	require.Nil(t, result)

	// A lost claim means another worker owns the post: no upload, no history.
	ts.AssertNotCalled(t, "EnsureValid", mock.Anything, mock.Anything)
	ph.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	sp.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestPublish_NonVideoPayload(t *testing.T) {
	ctx := context.Background()

	storage := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not a video</html>"))
	}))
	defer storage.Close()

	post, integration, video := publisherFixture(storage.URL)

	sp := new(ScheduledPostRepoMock)
	ph := new(PostHistoryRepoMock)
	ts := new(TokenServiceMock)

	sp.On("GetWithRelations", mock.Anything, int64(42)).Return(post, integration, video, nil).Once()
	sp.On("ClaimForProcessing", mock.Anything, int64(42)).Return(true, nil).Once()
	ts.On("EnsureValid", mock.Anything, integration).Return("tok", nil).Once()
	sp.On("UpdateStatus", mock.Anything, models.PostStatusFailed, int64(42)).Return(nil).Once()
	ph.On("Create", mock.Anything, mock.Anything).Return(int64(1), nil).Once()

	svc := NewPublisherService(sp, ph, ts, NewYoutubeUploader())

	result, err := svc.Publish(ctx, 42)
	require.Error(t, err)
	require.Nil(t, result)
	require.Contains(t, err.Error(), "not a video")

	sp.AssertExpectations(t)
	ph.AssertExpectations(t)
}

func TestPublishTitle(t *testing.T) {
	cases := []struct {
		name      string
		title     string
		videoType string
		want      string
	}{
		{name: "normal untouched", title: "My upload", videoType: models.VideoTypeNormal, want: "My upload"},
		{name: "short gets tag", title: "My upload", videoType: models.VideoTypeShort, want: "My upload #Shorts"},
		{name: "short keeps existing tag", title: "My upload #Shorts", videoType: models.VideoTypeShort, want: "My upload #Shorts"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, PublishTitle(tc.title, tc.videoType))
		})
	}
}

func TestPublishTitle_TruncatesBeforeSuffix(t *testing.T) {
	long := strings.Repeat("a", 150)

	got := PublishTitle(long, models.VideoTypeShort)
	require.Len(t, []rune(got), 100)
	require.True(t, strings.HasSuffix(got, " #Shorts"))

	got = PublishTitle(long, models.VideoTypeNormal)
	require.Len(t, []rune(got), 100)
}

func TestScan_OneFailureDoesNotAbortBatch(t *testing.T) {
	ctx := context.Background()

	sp := new(ScheduledPostRepoMock)
	pub := new(PublisherServiceMock)

	sp.On("ListDue", mock.Anything, mock.Anything).Return([]int64{1, 2, 3}, nil).Once()
	pub.On("Publish", mock.Anything, int64(1)).Return(okResult("a"), nil).Once()
	pub.On("Publish", mock.Anything, int64(2)).Return(nil, models.ErrUpload).Once()
	pub.On("Publish", mock.Anything, int64(3)).Return(okResult("c"), nil).Once()

	svc := NewScannerService(sp, pub)

	results, err := svc.Scan(ctx)
	require.NoError(t, err)
	require.Len(t, results, 3)

	require.True(t, results[0].Success)
	require.False(t, results[1].Success)
	require.NotEmpty(t, results[1].Error)
	require.True(t, results[2].Success)

	sp.AssertExpectations(t)
	pub.AssertExpectations(t)
}

func TestScan_NothingDue(t *testing.T) {
	ctx := context.Background()

	sp := new(ScheduledPostRepoMock)
	pub := new(PublisherServiceMock)

	sp.On("ListDue", mock.Anything, mock.Anything).Return([]int64(nil), nil).Once()

	svc := NewScannerService(sp, pub)

	results, err := svc.Scan(ctx)
	require.NoError(t, err)
	require.Empty(t, results)
	pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}
