package fansearchartists

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fanclub/internal/catalog"
	"fanclub/internal/common/config"
	"fanclub/internal/common/errors"
	"fanclub/internal/common/logger"
	"fanclub/internal/common/validation"
	"fanclub/internal/models"
	"fanclub/internal/search"
)

// ==========================
// Mock Implementations
// ==========================

type MockSearcher struct {
	mock.Mock
}

func (m *MockSearcher) Index(ctx context.Context, artists []models.Artist) error {
	return m.Called(ctx, artists).Error(0)
}

func (m *MockSearcher) Search(ctx context.Context, query string, limit int) ([]models.Artist, error) {
	args := m.Called(ctx, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Artist), args.Error(1)
}

func memorySearcher(t *testing.T) search.Searcher {
	t.Helper()
	snap, err := catalog.LoadFixtures("")
	require.NoError(t, err)
	s := search.NewMemorySearcher(3)
	require.NoError(t, s.Index(context.Background(), snap.Artists))
	return s
}

// ==========================
// Tests
// ==========================

func TestHandler_Execute_MemoryBackend(t *testing.T) {
	h := NewHandler(DefaultConfig(), memorySearcher(t), logger.NewTestLogger(t))

	out, err := h.Execute(context.Background(), &Input{Query: "  luna "})
	require.NoError(t, err)
	require.Equal(t, 1, out.Total)
	assert.Equal(t, "artist-1", out.Artists[0].ID)

	out, err = h.Execute(context.Background(), &Input{Query: "lunna"})
	require.NoError(t, err)
	require.NotEmpty(t, out.Artists, "typo falls back to fuzzy matching")
	assert.Equal(t, "artist-1", out.Artists[0].ID)

	result, err := validation.ValidateStruct(out, GetOutputSchema())
	require.NoError(t, err)
	assert.True(t, result.Valid, result.GetErrorMessages())
}

func TestHandler_Execute_ClampsLimit(t *testing.T) {
	searcher := new(MockSearcher)
	searcher.On("Search", mock.Anything, "kofi", 10).Return([]models.Artist{{ID: "artist-3", Name: "Kofi Mensah"}}, nil).Once()
	searcher.On("Search", mock.Anything, "kofi", 2).Return([]models.Artist{}, nil).Once()

	h := NewHandler(&Config{Timeout: DefaultConfig().Timeout, MaxResults: 10}, searcher, logger.NewTestLogger(t))

	out, err := h.Execute(context.Background(), &Input{Query: "kofi", Limit: 50})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Total)

	out, err = h.Execute(context.Background(), &Input{Query: "kofi", Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 0, out.Total)

	searcher.AssertExpectations(t)
}

func TestHandler_Execute_SearchFailure(t *testing.T) {
	searcher := new(MockSearcher)
	searcher.On("Search", mock.Anything, "luna", search.DefaultLimit).
		Return(nil, errors.NewSearchTimeoutError("luna"))

	h := NewHandler(DefaultConfig(), searcher, logger.NewTestLogger(t))
	_, err := h.Execute(context.Background(), &Input{Query: "luna"})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeSearchTimeout, errors.CodeOf(err))
	assert.True(t, errors.IsRetryableErrorCode(errors.CodeOf(err)))
}

func TestLoadConfig(t *testing.T) {
	cfg := LoadConfig(config.WorkerConfig{Timeout: 1000}, config.SearchConfig{MaxResults: 7})
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 7, cfg.MaxResults)

	assert.Error(t, (&Config{Timeout: 1}).Validate())
}
