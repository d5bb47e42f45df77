package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"foodforall/internal/storage"
	"foodforall/pkg/types"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

type testStores struct {
	users       *stubUserStore
	donations   *stubDonationStore
	requests    *stubRequestStore
	feedback    *stubFeedbackStore
	referrals   *stubReferralStore
	leaderboard *stubLeaderboardStore
	db          *stubPinger
}

func newTestService(t *testing.T) (*Service, *testStores) {
	t.Helper()

	stores := &testStores{
		users:       &stubUserStore{users: map[string]*types.User{}},
		donations:   &stubDonationStore{donations: map[string]*types.Donation{}},
		requests:    &stubRequestStore{},
		feedback:    &stubFeedbackStore{},
		referrals:   &stubReferralStore{},
		leaderboard: &stubLeaderboardStore{},
		db:          &stubPinger{},
	}

	uploads, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	config := &types.Config{
		ServerPort:    0,
		JWTSecret:     "test-secret-test-secret-test-sec",
		TokenTTLHours: 1,
	}

	s, err := New(
		config,
		logger,
		stores.db,
		uploads,
		stores.users,
		stores.donations,
		stores.requests,
		stores.feedback,
		stores.referrals,
		stores.leaderboard,
	)
	require.NoError(t, err)

	return s, stores
}

func (s *Service) serve(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()

	rec := httptest.NewRecorder()
	s.server.Handler.ServeHTTP(rec, req)
	return rec
}

func bearerFor(t *testing.T, s *Service, userID string, role types.Role) string {
	t.Helper()

	token, err := s.issueToken(&types.User{ID: userID, Role: role})
	require.NoError(t, err)
	return "Bearer " + token
}

type responseBody struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) responseBody {
	t.Helper()

	var body responseBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

type stubPinger struct {
	err error
}

func (p *stubPinger) Ping(ctx context.Context) error {
	return p.err
}

type stubUserStore struct {
	users     map[string]*types.User
	createErr error
	created   []*types.User
}

func (s *stubUserStore) User(ctx context.Context, userID string) (*types.User, error) {
	for _, user := range s.users {
		if user.ID == userID {
			return user, nil
		}
	}
	return nil, types.ErrUserNotFound
}

func (s *stubUserStore) UserByEmail(ctx context.Context, email string) (*types.User, error) {
	user, ok := s.users[email]
	if !ok {
		return nil, types.ErrUserNotFound
	}
	return user, nil
}

func (s *stubUserStore) Create(ctx context.Context, user *types.User) error {
	if s.createErr != nil {
		return s.createErr
	}
	user.ID = "user_new"
	s.created = append(s.created, user)
	s.users[user.Email] = user
	return nil
}

func (s *stubUserStore) UpdateProfile(ctx context.Context, userID string, update *types.UpdateUserProfile) (*types.User, error) {
	for _, user := range s.users {
		if user.ID == userID {
			if update.FullName != nil {
				user.FullName = *update.FullName
			}
			if update.PhoneNumber != nil {
				user.PhoneNumber = *update.PhoneNumber
			}
			if update.Address != nil {
				user.Address = *update.Address
			}
			return user, nil
		}
	}
	return nil, types.ErrUserNotFound
}

func (s *stubUserStore) SetProfilePicture(ctx context.Context, userID, filename string) error {
	return nil
}

type stubDonationStore struct {
	donations map[string]*types.Donation
	joined    []*types.DonationWithDonor
	createErr error
	created   *types.Donation
	updated   *types.Donation
}

func (s *stubDonationStore) Create(ctx context.Context, donation *types.Donation) error {
	if s.createErr != nil {
		return s.createErr
	}
	donation.ID = "donation_new"
	donation.Status = types.DonationStatusAvailable
	s.created = donation
	s.donations[donation.ID] = donation
	return nil
}

func (s *stubDonationStore) Donation(ctx context.Context, donationID string) (*types.Donation, error) {
	donation, ok := s.donations[donationID]
	if !ok {
		return nil, types.ErrDonationNotFound
	}
	return donation, nil
}

func (s *stubDonationStore) DonationWithDonor(ctx context.Context, donationID string) (*types.DonationWithDonor, error) {
	for _, joined := range s.joined {
		if joined.ID == donationID {
			return joined, nil
		}
	}
	return nil, types.ErrDonationNotFound
}

func (s *stubDonationStore) Donations(ctx context.Context, filter types.DonationFilter) ([]*types.DonationWithDonor, error) {
	var out []*types.DonationWithDonor
	for _, joined := range s.joined {
		if filter.Status != "" && joined.Status != filter.Status {
			continue
		}
		if filter.DonorID != "" && joined.DonorID != filter.DonorID {
			continue
		}
		out = append(out, joined)
	}
	return out, nil
}

func (s *stubDonationStore) UpdateStatus(ctx context.Context, donationID string, status types.DonationStatus) (*types.Donation, error) {
	donation, ok := s.donations[donationID]
	if !ok {
		return nil, types.ErrDonationNotFound
	}
	donation.Status = status
	s.updated = donation
	return donation, nil
}

type stubRequestStore struct {
	createErr error
	created   *types.Request

	listed     []*types.RequestWithDetails
	total      int
	listErr    error
	lastFilter types.RequestFilter
	lastPage   int
	lastLimit  int

	acceptErr    error
	rejectErr    error
	lastRequest  string
	lastActingID string
}

func (s *stubRequestStore) Create(ctx context.Context, request *types.Request) error {
	if s.createErr != nil {
		return s.createErr
	}
	request.ID = "request_new"
	request.Status = types.RequestStatusPending
	s.created = request
	return nil
}

func (s *stubRequestStore) Requests(ctx context.Context, filter types.RequestFilter, page, limit int) ([]*types.RequestWithDetails, int, error) {
	s.lastFilter = filter
	s.lastPage = page
	s.lastLimit = limit
	if s.listErr != nil {
		return nil, 0, s.listErr
	}
	return s.listed, s.total, nil
}

func (s *stubRequestStore) Accept(ctx context.Context, requestID, actingUserID string) error {
	s.lastRequest = requestID
	s.lastActingID = actingUserID
	return s.acceptErr
}

func (s *stubRequestStore) Reject(ctx context.Context, requestID, actingUserID string) error {
	s.lastRequest = requestID
	s.lastActingID = actingUserID
	return s.rejectErr
}

type stubFeedbackStore struct {
	createErr error
	created   *types.Feedback
	all       []*types.FeedbackWithUser
	byUser    []*types.Feedback
}

func (s *stubFeedbackStore) Create(ctx context.Context, feedback *types.Feedback) error {
	if s.createErr != nil {
		return s.createErr
	}
	feedback.ID = "feedback_new"
	s.created = feedback
	return nil
}

func (s *stubFeedbackStore) AllFeedback(ctx context.Context) ([]*types.FeedbackWithUser, error) {
	return s.all, nil
}

func (s *stubFeedbackStore) FeedbackByUser(ctx context.Context, userID string) ([]*types.Feedback, error) {
	return s.byUser, nil
}

type stubReferralStore struct {
	createErr error
	created   *types.Referral
	exists    bool
	mine      []*types.Referral
	all       []*types.ReferralWithReferrer
}

func (s *stubReferralStore) Create(ctx context.Context, referral *types.Referral) error {
	if s.createErr != nil {
		return s.createErr
	}
	referral.ID = "referral_new"
	s.created = referral
	return nil
}

func (s *stubReferralStore) ExistsForReferrer(ctx context.Context, referrerID, referredEmail string) (bool, error) {
	return s.exists, nil
}

func (s *stubReferralStore) ReferralsByReferrer(ctx context.Context, referrerID string) ([]*types.Referral, error) {
	return s.mine, nil
}

func (s *stubReferralStore) AllReferrals(ctx context.Context) ([]*types.ReferralWithReferrer, error) {
	return s.all, nil
}

type stubLeaderboardStore struct {
	entries   []*types.LeaderboardEntry
	lastLimit int
	monthly   bool
}

func (s *stubLeaderboardStore) TopDonors(ctx context.Context, limit int, monthly bool) ([]*types.LeaderboardEntry, error) {
	s.lastLimit = limit
	s.monthly = monthly
	return s.entries, nil
}

func TestHealthz(t *testing.T) {
	s, stores := newTestService(t)

	rec := s.serve(t, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	stores.db.err = context.DeadlineExceeded

	rec = s.serve(t, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	body := decodeBody(t, rec)
	require.Equal(t, "error", body.Status)
	require.Equal(t, "Database unreachable", body.Message)
}
