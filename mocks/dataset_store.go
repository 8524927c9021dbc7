package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/checkmarble/heatmap-backend/models"
)

type DatasetStore struct {
	mock.Mock
}

func (m *DatasetStore) ListFiles(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}

func (m *DatasetStore) ListSheets(ctx context.Context, filename string) ([]string, error) {
	args := m.Called(ctx, filename)
	return args.Get(0).([]string), args.Error(1)
}

func (m *DatasetStore) GetContent(ctx context.Context, key models.DatasetKey) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *DatasetStore) Save(ctx context.Context, key models.DatasetKey, content string) error {
	args := m.Called(ctx, key, content)
	return args.Error(0)
}

func (m *DatasetStore) Delete(ctx context.Context, filename string) error {
	args := m.Called(ctx, filename)
	return args.Error(0)
}

func (m *DatasetStore) Liveness(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
