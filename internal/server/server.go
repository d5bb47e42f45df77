package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"foodforall/internal/storage"
	"foodforall/pkg/types"

	"github.com/alexedwards/flow"
	"github.com/go-playground/form/v4"
	"github.com/go-playground/validator/v10"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/sirupsen/logrus"
)

var (
	decoder  = form.NewDecoder()
	validate = validator.New()
)

type userStore interface {
	User(ctx context.Context, userID string) (*types.User, error)
	UserByEmail(ctx context.Context, email string) (*types.User, error)
	Create(ctx context.Context, user *types.User) error
	UpdateProfile(ctx context.Context, userID string, update *types.UpdateUserProfile) (*types.User, error)
	SetProfilePicture(ctx context.Context, userID, filename string) error
}

type donationStore interface {
	Create(ctx context.Context, donation *types.Donation) error
	Donation(ctx context.Context, donationID string) (*types.Donation, error)
	DonationWithDonor(ctx context.Context, donationID string) (*types.DonationWithDonor, error)
	Donations(ctx context.Context, filter types.DonationFilter) ([]*types.DonationWithDonor, error)
	UpdateStatus(ctx context.Context, donationID string, status types.DonationStatus) (*types.Donation, error)
}

type requestStore interface {
	Create(ctx context.Context, request *types.Request) error
	Requests(ctx context.Context, filter types.RequestFilter, page, limit int) ([]*types.RequestWithDetails, int, error)
	Accept(ctx context.Context, requestID, actingUserID string) error
	Reject(ctx context.Context, requestID, actingUserID string) error
}

type feedbackStore interface {
	Create(ctx context.Context, feedback *types.Feedback) error
	AllFeedback(ctx context.Context) ([]*types.FeedbackWithUser, error)
	FeedbackByUser(ctx context.Context, userID string) ([]*types.Feedback, error)
}

type referralStore interface {
	Create(ctx context.Context, referral *types.Referral) error
	ExistsForReferrer(ctx context.Context, referrerID, referredEmail string) (bool, error)
	ReferralsByReferrer(ctx context.Context, referrerID string) ([]*types.Referral, error)
	AllReferrals(ctx context.Context) ([]*types.ReferralWithReferrer, error)
}

type leaderboardStore interface {
	TopDonors(ctx context.Context, limit int, monthly bool) ([]*types.LeaderboardEntry, error)
}

type pinger interface {
	Ping(ctx context.Context) error
}

type Service struct {
	logger *logrus.Logger
	config *types.Config

	users       userStore
	donations   donationStore
	requests    requestStore
	feedback    feedbackStore
	referrals   referralStore
	leaderboard leaderboardStore

	db      pinger
	uploads storage.Store

	signingKey jwk.Key

	server *http.Server
}

func New(
	config *types.Config,
	logger *logrus.Logger,
	db pinger,
	uploads storage.Store,
	userRepo userStore,
	donationRepo donationStore,
	requestRepo requestStore,
	feedbackRepo feedbackStore,
	referralRepo referralStore,
	leaderboardRepo leaderboardStore,
) (*Service, error) {
	mux := flow.New()

	signingKey, err := jwk.Import([]byte(config.JWTSecret))
	if err != nil {
		return nil, fmt.Errorf("import jwt signing key: %w", err)
	}

	s := &Service{
		logger: logger,
		config: config,

		users:       userRepo,
		donations:   donationRepo,
		requests:    requestRepo,
		feedback:    feedbackRepo,
		referrals:   referralRepo,
		leaderboard: leaderboardRepo,

		db:      db,
		uploads: uploads,

		signingKey: signingKey,

		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", config.ServerPort),
			Handler:           mux,
			ReadTimeout:       time.Duration(config.ReadTimeoutSec) * time.Second,
			ReadHeaderTimeout: time.Duration(config.ReadTimeoutSec) * time.Second,
			WriteTimeout:      time.Duration(config.WriteTimeoutSec) * time.Second,
			MaxHeaderBytes:    1 << 20,
		},
	}

	s.buildRouter(mux)

	return s, nil
}

func (s *Service) Start() error {
	return s.server.ListenAndServe()
}

func (s *Service) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Service) buildRouter(r *flow.Mux) {
	r.Use(s.StripTrailingSlash)
	r.Use(s.LoggingMiddleware)

	r.HandleFunc("/healthz", s.handleHealth, http.MethodGet)

	r.HandleFunc("/api/user/register", s.handleRegister, http.MethodPost)
	r.HandleFunc("/api/user/login", s.handleLogin, http.MethodPost)

	r.HandleFunc("/api/leaderboard", s.handleLeaderboard, http.MethodGet)
	r.HandleFunc("/api/leaderboard/monthly", s.handleMonthlyLeaderboard, http.MethodGet)

	r.Group(func(r *flow.Mux) {
		r.Use(s.RequireAuth)

		r.HandleFunc("/api/user/profile/:id", s.handleGetProfile, http.MethodGet)
		r.HandleFunc("/api/user/profile/:id", s.handleUpdateProfile, http.MethodPut)
		r.HandleFunc("/api/user/upload-profile-picture/:id", s.handleUploadProfilePicture, http.MethodPost)

		r.HandleFunc("/api/donations", s.requireRoles(s.handleCreateDonation, types.RoleDonor), http.MethodPost)
		r.HandleFunc("/api/donations", s.handleListDonations, http.MethodGet)
		r.HandleFunc("/api/donations/:id", s.handleGetDonation, http.MethodGet)
		r.HandleFunc("/api/donations/:id", s.requireRoles(s.handleUpdateDonationStatus, types.RoleNGO, types.RoleAdmin), http.MethodPut)

		r.HandleFunc("/api/requests", s.requireRoles(s.handleCreateRequest, types.RoleConsumer, types.RoleNGO), http.MethodPost)
		r.HandleFunc("/api/requests/pending", s.requireRoles(s.handleListPendingRequests, types.RoleDonor, types.RoleNGO, types.RoleAdmin), http.MethodGet)
		r.HandleFunc("/api/requests/my-requests", s.handleListMyRequests, http.MethodGet)
		r.HandleFunc("/api/requests/:id/accept", s.requireRoles(s.handleAcceptRequest, types.RoleDonor), http.MethodPost)
		r.HandleFunc("/api/requests/:id/reject", s.requireRoles(s.handleRejectRequest, types.RoleDonor), http.MethodPost)

		r.HandleFunc("/api/feedback", s.handleSubmitFeedback, http.MethodPost)
		r.HandleFunc("/api/feedback", s.requireRoles(s.handleListAllFeedback, types.RoleAdmin), http.MethodGet)
		r.HandleFunc("/api/feedback/my-feedback", s.handleListMyFeedback, http.MethodGet)

		r.HandleFunc("/api/referrals", s.handleCreateReferral, http.MethodPost)
		r.HandleFunc("/api/referrals", s.handleListMyReferrals, http.MethodGet)
		r.HandleFunc("/api/referrals/all", s.requireRoles(s.handleListAllReferrals, types.RoleAdmin), http.MethodGet)
	})

	// Locally stored uploads are served straight off disk. The S3 backend
	// hands out absolute object URLs instead, so this mount stays unused
	// there.
	if local, ok := s.uploads.(*storage.LocalStorage); ok {
		fileServer := http.FileServer(http.Dir(local.BaseDir()))
		r.Handle("/uploads/...", http.StripPrefix("/uploads/", fileServer), http.MethodGet)
	}
}

func (s *Service) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.db != nil {
		if err := s.db.Ping(r.Context()); err != nil {
			s.logger.WithError(err).Error("health check database ping failed")
			s.respondError(w, http.StatusServiceUnavailable, "Database unreachable", "Service unavailable")
			return
		}
	}

	s.respondSuccess(w, http.StatusOK, "ok", nil)
}
