package mocks

import (
	"context"

	"docupload/internal/model"
	"docupload/internal/service"
	"docupload/internal/session"

	"github.com/stretchr/testify/mock"
)

type MockFormService struct {
	mock.Mock
}

func (m *MockFormService) Open(ctx context.Context, store session.Storage) (*service.View, error) {
	args := m.Called(ctx, store)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.View), args.Error(1)
}

func (m *MockFormService) View(ctx context.Context, id string) (*service.View, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.View), args.Error(1)
}

func (m *MockFormService) SelectFile(ctx context.Context, id string, key model.SlotKey, file model.File) (*service.View, error) {
	args := m.Called(ctx, id, key, file)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.View), args.Error(1)
}

func (m *MockFormService) Submit(ctx context.Context, id string) (*service.View, service.Outcome, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Get(1).(service.Outcome), args.Error(2)
	}
	return args.Get(0).(*service.View), args.Get(1).(service.Outcome), args.Error(2)
}

func (m *MockFormService) Close(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
