package mocks

import (
	"context"

	"docupload/internal/model"
	"docupload/internal/remote"

	"github.com/stretchr/testify/mock"
)

type MockEmployeeAPI struct {
	mock.Mock
}

func (m *MockEmployeeAPI) GetEmployee(ctx context.Context, phone string) (*model.Employee, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Employee), args.Error(1)
}

func (m *MockEmployeeAPI) UploadDocuments(ctx context.Context, req remote.UploadRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockEmployeeAPI) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
