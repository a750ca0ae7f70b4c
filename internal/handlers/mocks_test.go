package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/v2/bson"

	"fit1-backend/internal/enrichment"
	"fit1-backend/internal/identity"
	"fit1-backend/internal/middleware"
	"fit1-backend/internal/models"
	"fit1-backend/internal/notify"
	"fit1-backend/internal/session"
)

const testSecret = "0123456789abcdef0123456789abcdef"

// fakeUserStore keeps users in memory so read-after-write paths can be tested.
type fakeUserStore struct {
	mu      sync.Mutex
	users   map[bson.ObjectID]*models.User
	weights []float64
}

func newFakeUserStore(users ...*models.User) *fakeUserStore {
	s := &fakeUserStore{users: map[bson.ObjectID]*models.User{}}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (s *fakeUserStore) FindByID(_ context.Context, id bson.ObjectID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (s *fakeUserStore) UpsertFromProvider(_ context.Context, pu identity.ProviderUser) (*models.User, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ProviderID == pu.ProviderID {
			u.Email = pu.Email
			cp := *u
			return &cp, false, nil
		}
	}
	u := &models.User{ID: bson.NewObjectID(), ProviderID: pu.ProviderID, Email: pu.Email, Name: pu.DisplayName()}
	s.users[u.ID] = u
	cp := *u
	return &cp, true, nil
}

func (s *fakeUserStore) ReplaceDetails(_ context.Context, id bson.ObjectID, details models.UserDetails) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	d := details
	u.Details = &d
	cp := *u
	return &cp, nil
}

func (s *fakeUserStore) UpdateCurrentWeight(_ context.Context, id bson.ObjectID, weight float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.weights = append(s.weights, weight)
	if u, ok := s.users[id]; ok && u.Details != nil {
		u.Details.Weight = weight
	}
	return nil
}

type MockNutritionStore struct {
	mock.Mock
}

func (m *MockNutritionStore) Create(ctx context.Context, entry *models.NutritionEntry) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *MockNutritionStore) FindByDate(ctx context.Context, userID bson.ObjectID, date string) ([]models.NutritionEntry, error) {
	args := m.Called(ctx, userID, date)
	entries, _ := args.Get(0).([]models.NutritionEntry)
	return entries, args.Error(1)
}

func (m *MockNutritionStore) Recent(ctx context.Context, userID bson.ObjectID, date string, limit int64) ([]models.NutritionEntry, error) {
	args := m.Called(ctx, userID, date, limit)
	entries, _ := args.Get(0).([]models.NutritionEntry)
	return entries, args.Error(1)
}

func (m *MockNutritionStore) Stats(ctx context.Context, userID bson.ObjectID) (*models.NutritionStats, error) {
	args := m.Called(ctx, userID)
	stats, _ := args.Get(0).(*models.NutritionStats)
	return stats, args.Error(1)
}

type MockWaterStore struct {
	mock.Mock
}

func (m *MockWaterStore) Create(ctx context.Context, entry *models.WaterEntry) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *MockWaterStore) FindByDate(ctx context.Context, userID bson.ObjectID, date string) ([]models.WaterEntry, error) {
	args := m.Called(ctx, userID, date)
	entries, _ := args.Get(0).([]models.WaterEntry)
	return entries, args.Error(1)
}

type MockWeightStore struct {
	mock.Mock
}

func (m *MockWeightStore) Create(ctx context.Context, entry *models.WeightEntry) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *MockWeightStore) Recent(ctx context.Context, userID bson.ObjectID, date string, limit int64) ([]models.WeightEntry, error) {
	args := m.Called(ctx, userID, date, limit)
	entries, _ := args.Get(0).([]models.WeightEntry)
	return entries, args.Error(1)
}

type MockSleepStore struct {
	mock.Mock
}

func (m *MockSleepStore) Create(ctx context.Context, entry *models.SleepEntry) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *MockSleepStore) FindByDate(ctx context.Context, userID bson.ObjectID, date string) ([]models.SleepEntry, error) {
	args := m.Called(ctx, userID, date)
	entries, _ := args.Get(0).([]models.SleepEntry)
	return entries, args.Error(1)
}

type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) AuthorizationURL(state string) (string, error) {
	args := m.Called(state)
	return args.String(0), args.Error(1)
}

func (m *MockProvider) Authenticate(ctx context.Context, code string) (*identity.Authentication, error) {
	args := m.Called(ctx, code)
	auth, _ := args.Get(0).(*identity.Authentication)
	return auth, args.Error(1)
}

func (m *MockProvider) LogoutURL(sessionID string) (string, error) {
	args := m.Called(sessionID)
	return args.String(0), args.Error(1)
}

type MockRevoker struct {
	mock.Mock
}

func (m *MockRevoker) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	return m.Called(ctx, tokenID, expiresAt).Error(0)
}

// chanNotifier hands sent messages to the test goroutine.
type chanNotifier chan notify.Message

func (c chanNotifier) Send(_ context.Context, msg notify.Message) error {
	c <- msg
	return nil
}

type stubResolver struct {
	id session.Identity
	ok bool
}

func (s stubResolver) Resolve(context.Context, string) (session.Identity, bool) {
	return s.id, s.ok
}

type testEnv struct {
	userID    bson.ObjectID
	users     *fakeUserStore
	nutrition *MockNutritionStore
	water     *MockWaterStore
	weight    *MockWeightStore
	sleep     *MockSleepStore
	provider  *MockProvider
	revoker   *MockRevoker
	notifier  chanNotifier
	issuer    *session.Issuer
	resolver  stubResolver
	now       time.Time
}

// newTestEnv signs in a user who has no stored details. Enrichment runs
// without a remote strategy, which is the same path a failed upstream takes.
func newTestEnv() *testEnv {
	user := &models.User{ID: bson.NewObjectID(), ProviderID: "user_01", Email: "ada@example.com", Name: "Ada"}
	return &testEnv{
		userID:    user.ID,
		users:     newFakeUserStore(user),
		nutrition: &MockNutritionStore{},
		water:     &MockWaterStore{},
		weight:    &MockWeightStore{},
		sleep:     &MockSleepStore{},
		provider:  &MockProvider{},
		revoker:   &MockRevoker{},
		notifier:  make(chanNotifier, 1),
		issuer:    session.NewIssuer(testSecret),
		resolver:  stubResolver{id: session.Identity{UserID: user.ID, TokenID: "jti-1"}, ok: true},
		now:       time.Date(2024, 1, 15, 18, 30, 0, 0, time.UTC),
	}
}

func (e *testEnv) withDetails(d models.UserDetails) *testEnv {
	e.users.users[e.userID].Details = &d
	return e
}

func (e *testEnv) router() http.Handler {
	enricher := enrichment.NewEnricher(nil, time.Second)
	clock := func() time.Time { return e.now }

	h := Handlers{
		Auth: NewAuthHandler(e.provider, e.users, e.issuer, e.resolver, e.revoker, e.notifier,
			AuthConfig{AppURL: "https://fit1.example.com", CookieSecure: true}),
		User:      NewUserHandler(e.users, enricher),
		Nutrition: NewNutritionHandler(e.nutrition, e.users, enricher),
		Water:     NewWaterHandler(e.water, e.users, enricher),
		Weight:    NewWeightHandler(e.weight, e.users, enricher),
		Sleep:     NewSleepHandler(e.sleep, e.users, enricher),
	}
	h.Nutrition.now = clock
	h.Water.now = clock
	h.Weight.now = clock
	h.Sleep.now = clock

	r := chi.NewRouter()
	h.Mount(r, middleware.SessionAuth(e.resolver))
	return r
}

func (e *testEnv) do(method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	e.router().ServeHTTP(rec, req)
	return rec
}

func sampleProfile() models.Profile {
	return models.Profile{Height: 180, Weight: 80, Age: 30, Gender: "male", Goal: "maintenance", ActivityLevel: "moderately_active"}
}

func sampleDetails() models.UserDetails {
	p := sampleProfile()
	return models.UserDetails{Profile: p, DerivedMetrics: enrichment.Metrics(p)}
}
