package persistence

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/checkmarble/heatmap-backend/mocks"
	"github.com/checkmarble/heatmap-backend/models"
	"github.com/checkmarble/heatmap-backend/utils"
)

// fakeTimer records the requested delays and fires immediately.
type fakeTimer struct {
	mu     sync.Mutex
	delays []time.Duration
}

func (f *fakeTimer) After(d time.Duration) <-chan time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.delays = append(f.delays, d)

	c := make(chan time.Time, 1)
	c <- time.Now()
	return c
}

func newTestGateway() (*Gateway, *mocks.DatasetStore, *fakeTimer) {
	store := new(mocks.DatasetStore)
	timer := &fakeTimer{}
	return NewGateway(store, WithTimer(timer)), store, timer
}

var withDeadline = mock.MatchedBy(func(ctx context.Context) bool {
	_, ok := ctx.Deadline()
	return ok
})

func TestGateway_TransientFailureIsRetriedUpToMaxAttempts(t *testing.T) {
	gateway, store, timer := newTestGateway()
	internal := &pgconn.PgError{Code: "XX000", Message: "internal error"}
	store.On("ListFiles", withDeadline).Return([]string(nil), internal)

	_, err := gateway.ListFiles(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, models.TransientBackendError)
	assert.ErrorIs(t, err, internal)
	store.AssertNumberOfCalls(t, "ListFiles", 3)
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, timer.delays)
}

func TestGateway_DelaysFollowTheBackoff(t *testing.T) {
	store := new(mocks.DatasetStore)
	timer := &fakeTimer{}
	gateway := NewGateway(store, WithTimer(timer), WithRetryPolicy(RetryPolicy{
		MaxAttempts:      5,
		BaseDelay:        100 * time.Millisecond,
		OperationTimeout: time.Second,
	}))
	store.On("Delete", mock.Anything, "report.csv").Return(errors.New("connection terminated unexpectedly"))

	err := gateway.Delete(context.Background(), "report.csv")

	assert.ErrorIs(t, err, models.TransientBackendError)
	store.AssertNumberOfCalls(t, "Delete", 5)
	assert.Equal(t, []time.Duration{
		100 * time.Millisecond,
		200 * time.Millisecond,
		400 * time.Millisecond,
		800 * time.Millisecond,
	}, timer.delays)
}

func TestGateway_NonRetryableFailureIsAttemptedOnce(t *testing.T) {
	t.Run("not found passes through", func(t *testing.T) {
		gateway, store, timer := newTestGateway()
		key := models.DatasetKey{Filename: "missing.csv"}
		store.On("GetContent", withDeadline, key).Return("", errors.Wrap(models.NotFoundError, "no row"))

		_, err := gateway.GetContent(context.Background(), key)

		assert.ErrorIs(t, err, models.NotFoundError)
		assert.NotErrorIs(t, err, models.TransientBackendError)
		assert.NotErrorIs(t, err, models.FatalBackendError)
		store.AssertNumberOfCalls(t, "GetContent", 1)
		assert.Empty(t, timer.delays)
	})

	t.Run("constraint violation is fatal", func(t *testing.T) {
		gateway, store, timer := newTestGateway()
		key := models.DatasetKey{Filename: "report.csv"}
		store.On("Save", withDeadline, key, "content").
			Return(&pgconn.PgError{Code: "23514", Message: "check constraint"})

		err := gateway.Save(context.Background(), key, "content")

		assert.ErrorIs(t, err, models.FatalBackendError)
		assert.NotErrorIs(t, err, models.TransientBackendError)
		store.AssertNumberOfCalls(t, "Save", 1)
		assert.Empty(t, timer.delays)
	})
}

func TestGateway_RecoversAfterTransientFailure(t *testing.T) {
	gateway, store, timer := newTestGateway()
	store.On("ListSheets", withDeadline, "report.xlsx").
		Return([]string(nil), context.DeadlineExceeded).Once()
	store.On("ListSheets", withDeadline, "report.xlsx").
		Return([]string{"Q1", "Q2"}, nil).Once()

	sheets, err := gateway.ListSheets(context.Background(), "report.xlsx")

	require.NoError(t, err)
	assert.Equal(t, []string{"Q1", "Q2"}, sheets)
	store.AssertNumberOfCalls(t, "ListSheets", 2)
	assert.Equal(t, []time.Duration{time.Second}, timer.delays)
}

func TestGateway_EveryAttemptHasItsOwnTimeout(t *testing.T) {
	store := new(mocks.DatasetStore)
	gateway := NewGateway(store, WithTimer(&fakeTimer{}), WithRetryPolicy(RetryPolicy{
		MaxAttempts:      2,
		BaseDelay:        time.Millisecond,
		OperationTimeout: 20 * time.Millisecond,
	}))

	var deadlines []time.Time
	store.On("ListFiles", mock.Anything).
		Run(func(args mock.Arguments) {
			ctx := args.Get(0).(context.Context)
			deadline, _ := ctx.Deadline()
			deadlines = append(deadlines, deadline)
			<-ctx.Done()
		}).
		Return([]string(nil), context.DeadlineExceeded)

	_, err := gateway.ListFiles(context.Background())

	assert.ErrorIs(t, err, models.TransientBackendError)
	require.Len(t, deadlines, 2)
	assert.True(t, deadlines[1].After(deadlines[0]))
}

func TestGateway_Liveness(t *testing.T) {
	gateway, store, _ := newTestGateway()
	store.On("Liveness", withDeadline).Return(errors.New("database is not reachable")).Once()

	err := gateway.Liveness(context.Background())

	assert.ErrorIs(t, err, models.FatalBackendError)
	store.AssertNumberOfCalls(t, "Liveness", 1)
}

func TestDefaultRetryPolicy(t *testing.T) {
	gateway := NewGateway(new(mocks.DatasetStore))
	assert.Equal(t, RetryPolicy{
		MaxAttempts:      3,
		BaseDelay:        time.Second,
		OperationTimeout: 5 * time.Second,
	}, gateway.Policy())
}

func TestClassify_VisibleToBothErrorPackages(t *testing.T) {
	internal := &pgconn.PgError{Code: "XX000", Message: "internal error"}

	wrapped := errors.Wrap(internal, "list files")
	transient := classify(wrapped)
	assert.True(t, stderrors.Is(transient, models.TransientBackendError))
	assert.True(t, errors.Is(transient, models.TransientBackendError))
	assert.False(t, stderrors.Is(transient, models.FatalBackendError))
	assert.False(t, errors.Is(transient, models.FatalBackendError))

	var pgErr *pgconn.PgError
	require.True(t, stderrors.As(transient, &pgErr))
	assert.Equal(t, "XX000", pgErr.Code)
	assert.Equal(t, wrapped.Error(), transient.Error())

	fatal := classify(&pgconn.PgError{Code: "23505", Message: "duplicate key"})
	assert.True(t, stderrors.Is(fatal, models.FatalBackendError))
	assert.True(t, errors.Is(fatal, models.FatalBackendError))
}

func TestGateway_RetryWarningCarriesTheErrorKind(t *testing.T) {
	gateway, store, _ := newTestGateway()
	store.On("ListFiles", withDeadline).Return([]string(nil), &pgconn.PgError{Code: "57P01", Message: "admin shutdown"}).Once()
	store.On("ListFiles", withDeadline).Return([]string{"report.csv"}, nil).Once()

	var buf bytes.Buffer
	ctx := utils.StoreLoggerInContext(context.Background(), slog.New(slog.NewJSONHandler(&buf, nil)))

	files, err := gateway.ListFiles(ctx)

	require.NoError(t, err)
	assert.Equal(t, []string{"report.csv"}, files)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "storage operation attempt failed", line["msg"])
	assert.Equal(t, "transient", line["kind"])
	assert.Equal(t, 1.0, line["attempt"])
}
