package usecase_test

import (
	"context"

	"transcript-app/domain/dto"
	"transcript-app/domain/model"
	"transcript-app/domain/repository"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string, withPassword bool) (*model.User, error) {
	args := m.Called(ctx, email, withPassword)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id bson.ObjectID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) LinkGoogle(ctx context.Context, id bson.ObjectID, googleID, name, photoURL string) (*model.User, error) {
	args := m.Called(ctx, id, googleID, name, photoURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, id bson.ObjectID, name, photoURL string) (*model.User, error) {
	args := m.Called(ctx, id, name, photoURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Create(ctx context.Context, session *model.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionRepository) Get(ctx context.Context, id string) (*model.Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Session), args.Error(1)
}

func (m *MockSessionRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockTranscriptRepository struct {
	mock.Mock
}

func (m *MockTranscriptRepository) Create(ctx context.Context, transcript *model.Transcript) error {
	args := m.Called(ctx, transcript)
	return args.Error(0)
}

func (m *MockTranscriptRepository) ListByUser(ctx context.Context, userID bson.ObjectID) ([]model.Transcript, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]model.Transcript), args.Error(1)
}

func (m *MockTranscriptRepository) Delete(ctx context.Context, userID, id bson.ObjectID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *MockTranscriptRepository) DeleteAllByUser(ctx context.Context, userID bson.ObjectID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

type MockMemoryRepository struct {
	mock.Mock
}

func (m *MockMemoryRepository) Create(ctx context.Context, memory *model.Memory) error {
	args := m.Called(ctx, memory)
	return args.Error(0)
}

func (m *MockMemoryRepository) ListByUser(ctx context.Context, userID bson.ObjectID) ([]model.Memory, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]model.Memory), args.Error(1)
}

func (m *MockMemoryRepository) Delete(ctx context.Context, userID, id bson.ObjectID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

type MockVideoSource struct {
	mock.Mock
}

func (m *MockVideoSource) GetVideoInfo(ctx context.Context, videoID string) (*model.VideoInfo, error) {
	args := m.Called(ctx, videoID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.VideoInfo), args.Error(1)
}

func (m *MockVideoSource) GetTranscript(ctx context.Context, videoID string) ([]model.Segment, error) {
	args := m.Called(ctx, videoID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Segment), args.Error(1)
}

func (m *MockVideoSource) GetChannelVideos(ctx context.Context, ref repository.ChannelRef, limit int) (*model.ChannelData, error) {
	args := m.Called(ctx, ref, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ChannelData), args.Error(1)
}

type MockRemoteAPI struct {
	mock.Mock
}

func (m *MockRemoteAPI) GetVideoInfo(ctx context.Context, videoURL string) (*model.VideoInfo, error) {
	args := m.Called(ctx, videoURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.VideoInfo), args.Error(1)
}

func (m *MockRemoteAPI) GetTranscript(ctx context.Context, videoURL string) (*dto.TranscriptResponse, error) {
	args := m.Called(ctx, videoURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TranscriptResponse), args.Error(1)
}

func (m *MockRemoteAPI) GetChannelVideos(ctx context.Context, channelURL string, limit int) (*model.ChannelData, error) {
	args := m.Called(ctx, channelURL, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ChannelData), args.Error(1)
}

func (m *MockRemoteAPI) SaveTranscript(ctx context.Context, req dto.SaveTranscriptRequest) (*model.Transcript, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Transcript), args.Error(1)
}
