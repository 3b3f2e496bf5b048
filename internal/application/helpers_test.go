package application

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/bnema/seckill-cli/internal/domain"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

type memSecretStore struct {
	mu     sync.Mutex
	values map[string]string
}

func newMemSecretStore() *memSecretStore {
	return &memSecretStore{values: map[string]string{}}
}

func (s *memSecretStore) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.values[key]
	if !ok {
		return "", domain.ErrSecretNotFound
	}
	return value, nil
}

func (s *memSecretStore) Put(_ context.Context, key string, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *memSecretStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

// fakeAcquisition scripts the per-iteration endpoints. Nil funcs succeed.
type fakeAcquisition struct {
	mu sync.Mutex

	resolve  func(call int) (string, error)
	warmup   func(call int) error
	checkout func(call int) error
	submit   func(ctx context.Context, call int) (domain.Outcome, error)

	resolveCalls  int
	warmupCalls   int
	checkoutCalls int
	submitCalls   int
}

func (f *fakeAcquisition) ResolvePurchaseURL(_ context.Context, _ domain.SKU) (string, error) {
	f.mu.Lock()
	f.resolveCalls++
	call := f.resolveCalls
	f.mu.Unlock()
	if f.resolve == nil {
		return "https://marathon.example/captcha.html", nil
	}
	return f.resolve(call)
}

func (f *fakeAcquisition) Warmup(_ context.Context, _ string, _ domain.SKU) error {
	f.mu.Lock()
	f.warmupCalls++
	call := f.warmupCalls
	f.mu.Unlock()
	if f.warmup == nil {
		return nil
	}
	return f.warmup(call)
}

func (f *fakeAcquisition) Checkout(_ context.Context, _ domain.Item) error {
	f.mu.Lock()
	f.checkoutCalls++
	call := f.checkoutCalls
	f.mu.Unlock()
	if f.checkout == nil {
		return nil
	}
	return f.checkout(call)
}

func (f *fakeAcquisition) Submit(ctx context.Context, _ domain.OrderTemplate) (domain.Outcome, error) {
	f.mu.Lock()
	f.submitCalls++
	call := f.submitCalls
	f.mu.Unlock()
	if f.submit == nil {
		return domain.Success("https://pay.example/order"), nil
	}
	return f.submit(ctx, call)
}

func (f *fakeAcquisition) calls() (resolve, warmup, checkout, submit int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.resolveCalls, f.warmupCalls, f.checkoutCalls, f.submitCalls
}

type memRecorder struct {
	mu       sync.Mutex
	attempts []domain.AcquisitionAttempt
}

func (r *memRecorder) Record(attempt domain.AcquisitionAttempt) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.attempts = append(r.attempts, attempt)
	return nil
}

func (r *memRecorder) all() []domain.AcquisitionAttempt {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.AcquisitionAttempt(nil), r.attempts...)
}

type memRunRepo struct {
	mu   sync.Mutex
	runs []domain.RunRecord
}

func (r *memRunRepo) GetByID(_ context.Context, id string) (domain.RunRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, run := range r.runs {
		if run.ID == id {
			return run, nil
		}
	}
	return domain.RunRecord{}, domain.ErrRunNotFound
}

func (r *memRunRepo) List(_ context.Context) ([]domain.RunRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.RunRecord(nil), r.runs...), nil
}

func (r *memRunRepo) Save(_ context.Context, run domain.RunRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs = append(r.runs, run)
	return nil
}

func noSleep(ctx context.Context, _ time.Duration) error {
	return ctx.Err()
}

var errBoom = errors.New("boom")

func testItem() domain.Item {
	return domain.Item{SKU: "100012043978", Quantity: 1}
}

func testBuyer() domain.BuyerCredentials {
	return domain.BuyerCredentials{PaymentPassword: "123456", EID: "eid", FP: "fp"}
}

func testOrderContext() domain.OrderContext {
	return domain.OrderContext{
		Addresses: []domain.Address{{ID: "138", Name: "Li", Mobile: "13800000000"}},
		Token:     "tok-1",
	}
}

func testTemplate() domain.OrderTemplate {
	template, err := domain.NewOrderTemplate(testItem(), testBuyer(), testOrderContext())
	if err != nil {
		panic(err)
	}
	return template
}

func testNow() time.Time {
	return time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
}
