package app

import (
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/symtons/leavedesk/internal/approval"
	"github.com/symtons/leavedesk/internal/directory"
	"github.com/symtons/leavedesk/internal/leave"
	"github.com/symtons/leavedesk/internal/session"
	"github.com/symtons/leavedesk/internal/shared/backend"
	"github.com/symtons/leavedesk/internal/shared/clock"
)

// Config is everything the engine needs from the environment. The session is
// built here and injected explicitly; no component reads ambient state.
type Config struct {
	BaseURL           string
	Token             string
	Timeout           time.Duration
	RequestsPerSecond float64 // 0 disables client-side throttling
	Employee          session.Employee
}

// ConfigFromEnv reads LEAVEDESK_* variables (godotenv is loaded by main).
func ConfigFromEnv() Config {
	cfg := Config{
		BaseURL: os.Getenv("LEAVEDESK_API_URL"),
		Token:   os.Getenv("LEAVEDESK_TOKEN"),
		Employee: session.Employee{
			EmployeeID:     os.Getenv("LEAVEDESK_EMPLOYEE_ID"),
			FullName:       os.Getenv("LEAVEDESK_EMPLOYEE_NAME"),
			Classification: session.Classification(os.Getenv("LEAVEDESK_CLASSIFICATION")),
			FullTime:       os.Getenv("LEAVEDESK_FULL_TIME") != "false",
		},
	}
	if cfg.Employee.Classification == "" {
		cfg.Employee.Classification = session.ClassificationAdminStaff
	}
	if v := os.Getenv("LEAVEDESK_TIMEOUT_SECONDS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			cfg.Timeout = time.Duration(secs) * time.Second
		}
	}
	if v := os.Getenv("LEAVEDESK_RPS"); v != "" {
		if rps, err := strconv.ParseFloat(v, 64); err == nil && rps > 0 {
			cfg.RequestsPerSecond = rps
		}
	}
	return cfg
}

// App bundles the wired engine for the presentation layer.
type App struct {
	Session   *session.Session
	Clock     clock.Clock
	Leave     leave.Service
	Client    leave.Client
	Approvals *approval.Workflow
	Directory *directory.Service
}

func Build(cfg Config, logger ...*zap.Logger) *App {
	l := zap.L()
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}

	api := backend.NewClient(backend.Config{
		BaseURL: cfg.BaseURL,
		Token:   cfg.Token,
		Timeout: cfg.Timeout,
		Limiter: limiter,
	}, l)

	sess := &session.Session{Employee: cfg.Employee, Token: cfg.Token}
	client := leave.NewClient(api)

	return &App{
		Session:   sess,
		Clock:     clock.New(),
		Leave:     leave.NewService(client, sess, l),
		Client:    client,
		Approvals: approval.NewWorkflow(client, l),
		Directory: directory.NewService(directory.NewClient(api), l),
	}
}
