package api

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/terraincognita07/paaga/internal/db"
	"github.com/terraincognita07/paaga/internal/services"
	"go.uber.org/zap"
)

const (
	authTokenTTL        = 7 * 24 * time.Hour
	loginAttemptsLimit  = 5
	loginAttemptsWindow = 15 * time.Minute
)

type Handler struct {
	authService      *services.AuthService
	challengeService *services.ChallengeService
	depositService   *services.DepositService
	progressService  *services.ProgressService

	secretKey    []byte
	cookieSecure bool
	logger       *zap.Logger
	validate     *validator.Validate
	loginLimiter *attemptLimiter
	now          func() time.Time
}

type Options struct {
	SecretKey    []byte
	CookieSecure bool
	Location     *time.Location
	Logger       *zap.Logger
	Audit        services.AuditSink
	Guard        services.OwnershipGuard
}

func NewHandler(repositories *db.Repositories, options Options) (*Handler, error) {
	if repositories == nil {
		return nil, errors.New("repositories are required")
	}
	if len(options.SecretKey) == 0 {
		return nil, errors.New("secret key is required")
	}
	if options.Logger == nil {
		options.Logger = zap.NewNop()
	}
	if options.Guard == nil {
		options.Guard = services.IdentityOwnershipGuard{}
	}

	return &Handler{
		authService:      services.NewAuthService(repositories.Users),
		challengeService: services.NewChallengeService(repositories.Challenges, options.Guard, options.Audit, options.Location),
		depositService:   services.NewDepositService(repositories.Deposits, repositories.Challenges, options.Guard, options.Audit),
		progressService:  services.NewProgressService(repositories.Challenges, options.Guard, options.Location),
		secretKey:        options.SecretKey,
		cookieSecure:     options.CookieSecure,
		logger:           options.Logger.Named("api"),
		validate:         newPayloadValidator(),
		loginLimiter:     newAttemptLimiter(loginAttemptsLimit, loginAttemptsWindow),
		now:              func() time.Time { return time.Now().UTC() },
	}, nil
}
