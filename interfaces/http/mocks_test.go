package http_test

import (
	"context"

	"transcript-app/domain/dto"
	"transcript-app/domain/model"
	"transcript-app/usecase"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type MockAuthUsecase struct {
	mock.Mock
}

func (m *MockAuthUsecase) SignUp(ctx context.Context, req dto.SignUpRequest) (*model.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAuthUsecase) SignIn(ctx context.Context, req dto.SignInRequest) (*model.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAuthUsecase) GoogleSignIn(ctx context.Context, req dto.GoogleSignInRequest) (*model.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAuthUsecase) CurrentUser(ctx context.Context, userID bson.ObjectID) (*model.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAuthUsecase) StartSession(ctx context.Context, userID bson.ObjectID) (*usecase.SessionGrant, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.SessionGrant), args.Error(1)
}

func (m *MockAuthUsecase) ResolveSession(ctx context.Context, token string) (*model.Session, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Session), args.Error(1)
}

func (m *MockAuthUsecase) EndSession(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

type MockUserUsecase struct {
	mock.Mock
}

func (m *MockUserUsecase) GetProfile(ctx context.Context, userID bson.ObjectID) (*model.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserUsecase) UpdateProfile(ctx context.Context, userID bson.ObjectID, req dto.ProfileUpdateRequest) (*model.User, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

type MockVideoUsecase struct {
	mock.Mock
}

func (m *MockVideoUsecase) GetVideoInfo(ctx context.Context, url string) (*model.VideoInfo, error) {
	args := m.Called(ctx, url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.VideoInfo), args.Error(1)
}

func (m *MockVideoUsecase) GetTranscript(ctx context.Context, url string) (*dto.TranscriptResponse, error) {
	args := m.Called(ctx, url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TranscriptResponse), args.Error(1)
}

func (m *MockVideoUsecase) GetChannelVideos(ctx context.Context, channelURL string, limit int) (*model.ChannelData, error) {
	args := m.Called(ctx, channelURL, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ChannelData), args.Error(1)
}

type MockTranscriptUsecase struct {
	mock.Mock
}

func (m *MockTranscriptUsecase) Save(ctx context.Context, userID bson.ObjectID, req dto.SaveTranscriptRequest) (*model.Transcript, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Transcript), args.Error(1)
}

func (m *MockTranscriptUsecase) List(ctx context.Context, userID bson.ObjectID) ([]model.Transcript, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Transcript), args.Error(1)
}

func (m *MockTranscriptUsecase) Delete(ctx context.Context, userID bson.ObjectID, id string) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *MockTranscriptUsecase) DeleteAll(ctx context.Context, userID bson.ObjectID) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

type MockMemoryUsecase struct {
	mock.Mock
}

func (m *MockMemoryUsecase) Save(ctx context.Context, userID bson.ObjectID, req dto.SaveMemoryRequest) (*model.Memory, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Memory), args.Error(1)
}

func (m *MockMemoryUsecase) List(ctx context.Context, userID bson.ObjectID) ([]model.Memory, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Memory), args.Error(1)
}

func (m *MockMemoryUsecase) Delete(ctx context.Context, userID bson.ObjectID, id string) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

type MockAISettingsUsecase struct {
	mock.Mock
}

func (m *MockAISettingsUsecase) Get(ctx context.Context, userID bson.ObjectID) (*model.AISettings, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AISettings), args.Error(1)
}

func (m *MockAISettingsUsecase) Update(ctx context.Context, userID bson.ObjectID, req dto.AISettingsUpdateRequest) (*model.AISettings, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AISettings), args.Error(1)
}
