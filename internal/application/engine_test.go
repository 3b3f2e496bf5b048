package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/seckill-cli/internal/domain"
	portmocks "github.com/bnema/seckill-cli/internal/ports/mocks"
)

type engineFixture struct {
	authEndpoints  *portmocks.MockAuthEndpoints
	orderEndpoints *portmocks.MockOrderEndpoints
	transport      *portmocks.MockSessionTransport
	backend        *memSecretStore
	acquisition    *fakeAcquisition
	recorder       *memRecorder
	runs           *memRunRepo
	engine         *Engine
}

func newEngineFixture(t *testing.T, opts WorkerOptions) engineFixture {
	t.Helper()

	clock := fixedClock{now: testNow()}
	f := engineFixture{
		authEndpoints:  portmocks.NewMockAuthEndpoints(t),
		orderEndpoints: portmocks.NewMockOrderEndpoints(t),
		transport:      portmocks.NewMockSessionTransport(t),
		backend:        newMemSecretStore(),
		acquisition:    &fakeAcquisition{},
		recorder:       &memRecorder{},
		runs:           &memRunRepo{},
	}
	sessions := NewSessionStore(f.backend, "", clock)
	auth := NewAuthenticator(f.authEndpoints, f.transport, sessions, portmocks.NewMockChallengePresenter(t), AuthOptions{})
	f.engine = NewEngine(EngineDeps{
		Sessions:    sessions,
		Transport:   f.transport,
		Auth:        auth,
		Resolver:    NewOrderResolver(auth, f.orderEndpoints, nil),
		Scheduler:   NewScheduler(clock, domain.DefaultScheduleRule, nil),
		Acquisition: f.acquisition,
		Recorder:    f.recorder,
		Runs:        f.runs,
		Clock:       clock,
	}, opts)
	return f
}

func TestEnginePlanRestoresSessionAndFreezesTemplate(t *testing.T) {
	t.Parallel()

	f := newEngineFixture(t, WorkerOptions{StopOnSuccess: true})
	stored := domain.Session{Cookies: []domain.Cookie{{Name: "thor", Value: "abc", Domain: "jd.com", Path: "/"}}, UserAgent: "ua"}
	require.NoError(t, NewSessionStore(f.backend, "", fixedClock{now: testNow()}).Save(context.Background(), stored))

	f.transport.EXPECT().ImportSession(mock.MatchedBy(func(s domain.Session) bool {
		return len(s.Cookies) == 1 && s.Cookies[0].Value == "abc"
	})).Return().Once()
	f.authEndpoints.EXPECT().ProbeSession(mock.Anything).Return(true, nil)
	f.orderEndpoints.EXPECT().FetchOrderContext(mock.Anything, testItem()).Return(testOrderContext(), nil).Once()

	plan, err := f.engine.Plan(context.Background(), RunRequest{Item: testItem(), Buyer: testBuyer(), Workers: 3})
	require.NoError(t, err)
	assert.NotEmpty(t, plan.ID)
	assert.Equal(t, 3, plan.Workers)
	assert.Equal(t, "tok-1", plan.Template.Token)
	assert.Equal(t, time.Date(2026, 10, 18, 9, 59, 59, 0, time.UTC), plan.Target.At)
	assert.Empty(t, f.runs.runs)
}

func TestEnginePlanAbortsOnNullOrderContext(t *testing.T) {
	t.Parallel()

	f := newEngineFixture(t, WorkerOptions{})
	f.authEndpoints.EXPECT().ProbeSession(mock.Anything).Return(true, nil)
	f.orderEndpoints.EXPECT().FetchOrderContext(mock.Anything, testItem()).Return(domain.OrderContext{}, domain.ErrOrderContextNull).Once()

	_, err := f.engine.Plan(context.Background(), RunRequest{Item: testItem(), Buyer: testBuyer(), Workers: 1})
	require.ErrorIs(t, err, domain.ErrOrderContextNull)
	assert.True(t, domain.IsFatal(err))

	runs, err := f.runs.List(context.Background())
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, domain.RunStatusAborted, runs[0].Status)
	assert.Contains(t, runs[0].Error, "order context payload is null")
}

func TestEnginePlanRejectsEmptyAddressList(t *testing.T) {
	t.Parallel()

	f := newEngineFixture(t, WorkerOptions{})
	f.authEndpoints.EXPECT().ProbeSession(mock.Anything).Return(true, nil)
	f.orderEndpoints.EXPECT().FetchOrderContext(mock.Anything, testItem()).Return(domain.OrderContext{Token: "tok"}, nil).Once()

	_, err := f.engine.Plan(context.Background(), RunRequest{Item: testItem(), Buyer: testBuyer(), Workers: 1})
	require.ErrorIs(t, err, domain.ErrNoShippingAddress)
	assert.True(t, domain.IsFatal(err))
}

func TestEngineExecuteFansOutAndRecordsRun(t *testing.T) {
	t.Parallel()

	f := newEngineFixture(t, WorkerOptions{StopOnSuccess: true})
	f.authEndpoints.EXPECT().ProbeSession(mock.Anything).Return(true, nil)

	plan := RunPlan{
		ID:       "run-1",
		Item:     testItem(),
		Workers:  5,
		Target:   domain.ScheduledInstant{At: testNow()},
		Template: testTemplate(),
	}
	record, err := f.engine.Execute(context.Background(), plan)
	require.NoError(t, err)

	assert.Equal(t, domain.RunStatusAcquired, record.Status)
	assert.Equal(t, 5, record.Attempts)
	assert.Len(t, record.PurchaseURLs, 5)

	workers := map[int]bool{}
	for _, attempt := range f.recorder.all() {
		workers[attempt.Worker] = true
		assert.Equal(t, "run-1", attempt.RunID)
	}
	assert.Len(t, workers, 5)

	saved, err := f.runs.GetByID(context.Background(), "run-1")
	require.NoError(t, err)
	assert.Equal(t, domain.RunStatusAcquired, saved.Status)
}

func TestEngineExecuteStopsOnCancellation(t *testing.T) {
	t.Parallel()

	f := newEngineFixture(t, WorkerOptions{StopOnSuccess: true})
	f.authEndpoints.EXPECT().ProbeSession(mock.Anything).Return(true, nil)
	ctx, cancel := context.WithCancel(context.Background())
	f.acquisition.submit = func(context.Context, int) (domain.Outcome, error) {
		cancel()
		return domain.Rejected("sold out", 600158), nil
	}

	record, err := f.engine.Execute(ctx, RunPlan{ID: "run-2", Item: testItem(), Workers: 1, Template: testTemplate()})
	require.NoError(t, err)
	assert.Equal(t, domain.RunStatusStopped, record.Status)
	assert.Equal(t, 1, record.Attempts)
	assert.Empty(t, record.PurchaseURLs)
}

func TestEngineReserveBooksAndResolves(t *testing.T) {
	t.Parallel()

	f := newEngineFixture(t, WorkerOptions{})
	f.authEndpoints.EXPECT().ProbeSession(mock.Anything).Return(true, nil)
	f.orderEndpoints.EXPECT().Reserve(mock.Anything, testItem().SKU).Return("already reserved", nil).Once()
	f.orderEndpoints.EXPECT().FetchOrderContext(mock.Anything, testItem()).Return(testOrderContext(), nil).Once()

	result, err := f.engine.Reserve(context.Background(), ReserveRequest{Item: testItem(), Buyer: testBuyer()})
	require.NoError(t, err)
	assert.Equal(t, "already reserved", result.Message)
	assert.Equal(t, "tok-1", result.Template.Token)
	assert.Empty(t, f.runs.runs)
}

func TestEngineReserveStopsOnReservationFailure(t *testing.T) {
	t.Parallel()

	f := newEngineFixture(t, WorkerOptions{})
	f.authEndpoints.EXPECT().ProbeSession(mock.Anything).Return(true, nil)
	f.orderEndpoints.EXPECT().Reserve(mock.Anything, testItem().SKU).Return("", errBoom).Once()

	_, err := f.engine.Reserve(context.Background(), ReserveRequest{Item: testItem(), Buyer: testBuyer()})
	require.ErrorIs(t, err, errBoom)
	assert.True(t, domain.IsFatal(err))
}

func TestEngineClearSessionAndHistory(t *testing.T) {
	t.Parallel()

	f := newEngineFixture(t, WorkerOptions{})
	require.NoError(t, NewSessionStore(f.backend, "", fixedClock{now: testNow()}).Save(context.Background(), domain.Session{UserAgent: "ua"}))

	require.NoError(t, f.engine.ClearSession(context.Background()))
	_, found, err := NewSessionStore(f.backend, "", fixedClock{now: testNow()}).Load(context.Background())
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, f.runs.Save(context.Background(), domain.RunRecord{ID: "run-9"}))
	runs, err := f.engine.History(context.Background())
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "run-9", runs[0].ID)
}

func TestEngineRunLooksUpRecordByID(t *testing.T) {
	t.Parallel()

	runs := portmocks.NewMockRunRepository(t)
	runs.EXPECT().GetByID(mock.Anything, "run-9").Return(domain.RunRecord{ID: "run-9", Status: domain.RunStatusAcquired}, nil).Once()
	runs.EXPECT().GetByID(mock.Anything, "run-missing").Return(domain.RunRecord{}, domain.ErrRunNotFound).Once()
	engine := NewEngine(EngineDeps{Runs: runs, Clock: fixedClock{now: testNow()}}, WorkerOptions{})

	record, err := engine.Run(context.Background(), "run-9")
	require.NoError(t, err)
	assert.Equal(t, domain.RunStatusAcquired, record.Status)

	_, err = engine.Run(context.Background(), "run-missing")
	require.ErrorIs(t, err, domain.ErrRunNotFound)
}

func TestEngineRunWithoutRepository(t *testing.T) {
	t.Parallel()

	engine := NewEngine(EngineDeps{Clock: fixedClock{now: testNow()}}, WorkerOptions{})
	_, err := engine.Run(context.Background(), "run-9")
	require.ErrorIs(t, err, domain.ErrRunNotFound)
}
