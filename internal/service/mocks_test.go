package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/manypost/manypost/internal/models"
	"github.com/manypost/manypost/internal/transfer"
)

type ScheduledPostRepoMock struct {
	mock.Mock
}

func (m *ScheduledPostRepoMock) Create(ctx context.Context, p *models.ScheduledPost) (int64, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(int64), args.Error(1)
}

func (m *ScheduledPostRepoMock) GetByID(ctx context.Context, id int64) (*models.ScheduledPost, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*models.ScheduledPost), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ScheduledPostRepoMock) GetWithRelations(ctx context.Context, id int64) (*models.ScheduledPost, *models.Integration, *models.Video, error) {
	args := m.Called(ctx, id)
	var p *models.ScheduledPost
	var in *models.Integration
	var v *models.Video
	if a := args.Get(0); a != nil {
		p = a.(*models.ScheduledPost)
	}
	if a := args.Get(1); a != nil {
		in = a.(*models.Integration)
	}
	if a := args.Get(2); a != nil {
		v = a.(*models.Video)
	}
	return p, in, v, args.Error(3)
}

func (m *ScheduledPostRepoMock) ListByUserID(ctx context.Context, userID int64) ([]*models.ScheduledPost, error) {
	args := m.Called(ctx, userID)
	if v := args.Get(0); v != nil {
		return v.([]*models.ScheduledPost), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ScheduledPostRepoMock) ListDue(ctx context.Context, now time.Time) ([]int64, error) {
	args := m.Called(ctx, now)
	if v := args.Get(0); v != nil {
		return v.([]int64), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ScheduledPostRepoMock) ClaimForProcessing(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *ScheduledPostRepoMock) UpdateStatus(ctx context.Context, status string, postID int64) error {
	args := m.Called(ctx, status, postID)
	return args.Error(0)
}

func (m *ScheduledPostRepoMock) Cancel(ctx context.Context, postID, userID int64) (bool, error) {
	args := m.Called(ctx, postID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *ScheduledPostRepoMock) CheckByUserID(ctx context.Context, postID, userID int64) (bool, error) {
	args := m.Called(ctx, postID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *ScheduledPostRepoMock) Remove(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type PostHistoryRepoMock struct {
	mock.Mock
}

func (m *PostHistoryRepoMock) Create(ctx context.Context, ph *models.PostHistory) (int64, error) {
	args := m.Called(ctx, ph)
	return args.Get(0).(int64), args.Error(1)
}

func (m *PostHistoryRepoMock) ListByUserID(ctx context.Context, userID int64) ([]*models.PostHistory, error) {
	args := m.Called(ctx, userID)
	if v := args.Get(0); v != nil {
		return v.([]*models.PostHistory), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *PostHistoryRepoMock) ListSuccessful(ctx context.Context, userID int64, platform string) ([]*models.PostHistory, error) {
	args := m.Called(ctx, userID, platform)
	if v := args.Get(0); v != nil {
		return v.([]*models.PostHistory), args.Error(1)
	}
	return nil, args.Error(1)
}

type IntegrationRepoMock struct {
	mock.Mock
}

func (m *IntegrationRepoMock) Upsert(ctx context.Context, in *models.Integration) (int64, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(int64), args.Error(1)
}

func (m *IntegrationRepoMock) GetByID(ctx context.Context, id int64) (*models.Integration, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*models.Integration), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *IntegrationRepoMock) ListByUserID(ctx context.Context, userID int64) ([]*models.Integration, error) {
	args := m.Called(ctx, userID)
	if v := args.Get(0); v != nil {
		return v.([]*models.Integration), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *IntegrationRepoMock) ListExpiring(ctx context.Context, initialTime, finalTime time.Time) ([]*models.Integration, error) {
	args := m.Called(ctx, initialTime, finalTime)
	if v := args.Get(0); v != nil {
		return v.([]*models.Integration), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *IntegrationRepoMock) CheckByUserID(ctx context.Context, integrationID, userID int64) (bool, error) {
	args := m.Called(ctx, integrationID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *IntegrationRepoMock) SetToken(ctx context.Context, id int64, accessToken, refreshToken string, expiresAt time.Time) error {
	args := m.Called(ctx, id, accessToken, refreshToken, expiresAt)
	return args.Error(0)
}

func (m *IntegrationRepoMock) Remove(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type VideoRepoMock struct {
	mock.Mock
}

func (m *VideoRepoMock) Create(ctx context.Context, v *models.Video) (int64, error) {
	args := m.Called(ctx, v)
	return args.Get(0).(int64), args.Error(1)
}

func (m *VideoRepoMock) GetByID(ctx context.Context, id int64) (*models.Video, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*models.Video), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *VideoRepoMock) ListByUserID(ctx context.Context, userID int64) ([]*models.Video, error) {
	args := m.Called(ctx, userID)
	if v := args.Get(0); v != nil {
		return v.([]*models.Video), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *VideoRepoMock) CheckByUserID(ctx context.Context, videoID, userID int64) (bool, error) {
	args := m.Called(ctx, videoID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *VideoRepoMock) Remove(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type DraftRepoMock struct {
	mock.Mock
}

func (m *DraftRepoMock) Create(ctx context.Context, d *models.Draft) (int64, error) {
	args := m.Called(ctx, d)
	return args.Get(0).(int64), args.Error(1)
}

func (m *DraftRepoMock) GetByID(ctx context.Context, id int64) (*models.Draft, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*models.Draft), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *DraftRepoMock) ListByUserID(ctx context.Context, userID int64) ([]*models.Draft, error) {
	args := m.Called(ctx, userID)
	if v := args.Get(0); v != nil {
		return v.([]*models.Draft), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *DraftRepoMock) Update(ctx context.Context, d *models.Draft) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *DraftRepoMock) CheckByUserID(ctx context.Context, draftID, userID int64) (bool, error) {
	args := m.Called(ctx, draftID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *DraftRepoMock) Remove(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type ApiKeyRepoMock struct {
	mock.Mock
}

func (m *ApiKeyRepoMock) Create(ctx context.Context, apiKey *models.ApiKey) (int64, error) {
	args := m.Called(ctx, apiKey)
	return args.Get(0).(int64), args.Error(1)
}

func (m *ApiKeyRepoMock) GetByHash(ctx context.Context, keyHash string) (*models.ApiKey, bool, error) {
	args := m.Called(ctx, keyHash)
	if v := args.Get(0); v != nil {
		return v.(*models.ApiKey), args.Bool(1), args.Error(2)
	}
	return nil, args.Bool(1), args.Error(2)
}

func (m *ApiKeyRepoMock) ListByUserID(ctx context.Context, userID int64) ([]*models.ApiKey, error) {
	args := m.Called(ctx, userID)
	if v := args.Get(0); v != nil {
		return v.([]*models.ApiKey), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ApiKeyRepoMock) CheckByUserID(ctx context.Context, keyID, userID int64) (bool, error) {
	args := m.Called(ctx, keyID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *ApiKeyRepoMock) TouchLastUsed(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *ApiKeyRepoMock) Remove(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type VideoStatRepoMock struct {
	mock.Mock
}

func (m *VideoStatRepoMock) Create(ctx context.Context, vs *models.VideoStat) (int64, error) {
	args := m.Called(ctx, vs)
	return args.Get(0).(int64), args.Error(1)
}

func (m *VideoStatRepoMock) ListLatestByUserID(ctx context.Context, userID int64) ([]*models.VideoStat, error) {
	args := m.Called(ctx, userID)
	if v := args.Get(0); v != nil {
		return v.([]*models.VideoStat), args.Error(1)
	}
	return nil, args.Error(1)
}

type TokenServiceMock struct {
	mock.Mock
}

func (m *TokenServiceMock) Refresh(ctx context.Context, refreshToken string) (string, time.Time, error) {
	args := m.Called(ctx, refreshToken)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *TokenServiceMock) RefreshIntegration(ctx context.Context, in *models.Integration) (string, error) {
	args := m.Called(ctx, in)
	return args.String(0), args.Error(1)
}

func (m *TokenServiceMock) EnsureValid(ctx context.Context, in *models.Integration) (string, error) {
	args := m.Called(ctx, in)
	return args.String(0), args.Error(1)
}

type PublisherServiceMock struct {
	mock.Mock
}

func (m *PublisherServiceMock) Publish(ctx context.Context, scheduledPostID int64) (*transfer.PublishResult, error) {
	args := m.Called(ctx, scheduledPostID)
	if v := args.Get(0); v != nil {
		return v.(*transfer.PublishResult), args.Error(1)
	}
	return nil, args.Error(1)
}

type PostServiceMock struct {
	mock.Mock
}

func (m *PostServiceMock) Schedule(ctx context.Context, userID int64, t transfer.SchedulePostRequest) (int64, time.Duration, error) {
	args := m.Called(ctx, userID, t)
	return args.Get(0).(int64), args.Get(1).(time.Duration), args.Error(2)
}

func (m *PostServiceMock) List(ctx context.Context, userID int64) ([]*models.ScheduledPost, error) {
	args := m.Called(ctx, userID)
	if v := args.Get(0); v != nil {
		return v.([]*models.ScheduledPost), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *PostServiceMock) PostInfo(ctx context.Context, userID, postID int64) (*models.ScheduledPost, error) {
	args := m.Called(ctx, userID, postID)
	if v := args.Get(0); v != nil {
		return v.(*models.ScheduledPost), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *PostServiceMock) Cancel(ctx context.Context, userID, postID int64) error {
	args := m.Called(ctx, userID, postID)
	return args.Error(0)
}
