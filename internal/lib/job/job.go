// Package job provides background job processing using Asynq.
//
// Asynq is a Redis-backed job queue: tasks are enqueued with
// asynq.Client and executed by workers running in asynq.Server.
// The queue carries email sends and the consent expiry sweep so the
// request path never waits on external providers.
package job

import (
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/wellnest-hq/wellness-api/internal/config"
)

// JobService holds the Asynq client (enqueue) and server (workers).
type JobService struct {
	// Client is used to enqueue tasks into Redis.
	Client *asynq.Client

	server *asynq.Server
	logger *zerolog.Logger
}

// NewJobService creates a JobService backed by Redis from config.
//
// Queue weights give "critical" tasks roughly 6 of every 10 worker slots,
// "default" 3, and "low" 1.
func NewJobService(logger *zerolog.Logger, cfg *config.Config) *JobService {
	redisAddr := cfg.Redis.Address

	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr: redisAddr,
	})

	server := asynq.NewServer(
		asynq.RedisClientOpt{Addr: redisAddr},
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
		},
	)

	return &JobService{
		Client: client,
		server: server,
		logger: logger,
	}
}

// Start registers task handlers and launches the worker server. Asynq's
// Start is non-blocking; workers run until Stop.
func (j *JobService) Start() error {
	mux := asynq.NewServeMux()

	mux.HandleFunc(TaskWelcomeEmail, j.handleWelcomeEmailTask)
	mux.HandleFunc(TaskWebinarRegistrationEmail, j.handleWebinarRegistrationEmailTask)
	mux.HandleFunc(TaskConsentExpiryEmail, j.handleConsentExpiryEmailTask)

	j.logger.Info().Msg("Starting background job server")

	if err := j.server.Start(mux); err != nil {
		return err
	}

	return nil
}

// Stop gracefully stops the workers and closes the enqueue client.
func (j *JobService) Stop() {
	j.logger.Info().Msg("Stopping background job server")
	j.server.Shutdown()
	j.Client.Close()
}
