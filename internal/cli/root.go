// Package cli implements the planner command line. Every invocation loads
// the session user's plans from the configured store, applies one action
// through the planner model and prints the resulting plan.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/studyplanner-backend/internal/adapter/provider/gemini"
	"github.com/heartmarshall/studyplanner-backend/internal/app"
	"github.com/heartmarshall/studyplanner-backend/internal/config"
	"github.com/heartmarshall/studyplanner-backend/internal/domain"
	"github.com/heartmarshall/studyplanner-backend/internal/planner"
	"github.com/heartmarshall/studyplanner-backend/internal/service/studyplan"
	"github.com/heartmarshall/studyplanner-backend/pkg/ctxutil"
)

// Options configures the root command. Zero values use the process
// environment and standard streams.
type Options struct {
	LoadConfig func() (*config.Config, error)
	Stdout     io.Writer
	Stderr     io.Writer
}

func (o *Options) defaults() {
	if o.LoadConfig == nil {
		o.LoadConfig = config.Load
	}
	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}
	if o.Stderr == nil {
		o.Stderr = os.Stderr
	}
}

// session is everything one command invocation needs.
type session struct {
	cfg    *config.Config
	log    *slog.Logger
	model  *planner.Model
	userID uuid.UUID
	out    io.Writer
}

// NewRootCmd builds the planner command tree.
func NewRootCmd(opts Options) *cobra.Command {
	opts.defaults()

	root := &cobra.Command{
		Use:   "planner",
		Short: "Generate and track AI study plans",
		Long: `planner asks a generative model for an ordered study plan on a topic,
stores it, and lets you tick tasks off and ask for details on any step.

The store is chosen by STORE_DRIVER (postgres or sqlite) and the user by
PLANNER_USER_ID.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(opts.Stdout)
	root.SetErr(opts.Stderr)

	var planFlag string
	root.PersistentFlags().StringVarP(&planFlag, "plan", "p", "", "plan id to act on (default: most recent plan)")

	run := func(fn func(ctx context.Context, s *session, args []string) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			s, closeFn, err := openSession(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer closeFn()
			ctx := ctxutil.WithUserID(cmd.Context(), s.userID)
			return fn(ctx, s, args)
		}
	}
	load := func(ctx context.Context, s *session) error {
		if planFlag == "" {
			return s.model.Load(ctx)
		}
		id, err := parseID("plan", planFlag)
		if err != nil {
			return err
		}
		return s.model.Select(ctx, id)
	}

	root.AddCommand(
		newGenerateCmd(run),
		newRegenerateCmd(run),
		newShowCmd(run, load),
		newListCmd(run),
		newSetCompletedCmd(run, load, "done", true),
		newSetCompletedCmd(run, load, "undo", false),
		newDetailsCmd(run, load),
		newDeleteCmd(run),
		newTokenCmd(opts),
	)
	return root
}

// Execute runs the planner command line with the process environment.
func Execute(ctx context.Context) error {
	return NewRootCmd(Options{}).ExecuteContext(ctx)
}

func openSession(ctx context.Context, opts Options) (*session, func(), error) {
	cfg, err := opts.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	userID, err := sessionUser(cfg)
	if err != nil {
		return nil, nil, err
	}

	logger := app.NewLoggerTo(opts.Stderr, cfg.Log)
	store, err := app.OpenStore(ctx, cfg, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}

	client := gemini.NewClient(cfg.Gemini, logger)
	svc := studyplan.NewService(logger, client, store.Plans, store.Tx, studyplan.Limits{
		MaxTopicLength:  cfg.Planner.MaxTopicLength,
		MaxTasksPerPlan: cfg.Planner.MaxTasksPerPlan,
	})

	return &session{
		cfg:    cfg,
		log:    logger,
		model:  planner.New(logger, svc),
		userID: userID,
		out:    opts.Stdout,
	}, store.Close, nil
}

func sessionUser(cfg *config.Config) (uuid.UUID, error) {
	if cfg.Session.UserID == "" {
		return uuid.Nil, fmt.Errorf("%w: PLANNER_USER_ID is not set", domain.ErrUnauthorized)
	}
	id, err := uuid.Parse(cfg.Session.UserID)
	if err != nil {
		return uuid.Nil, domain.NewValidationError("PLANNER_USER_ID", "must be a UUID")
	}
	return id, nil
}

// ErrorMessage is the line printed for a failed command. Known failures
// get the user notice; anything else is printed as is.
func ErrorMessage(err error) string {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return verr.Error()
	case errors.Is(err, domain.ErrUnauthorized):
		return err.Error()
	}
	for _, known := range []error{
		domain.ErrAIMisconfigured, domain.ErrAIUnavailable, domain.ErrAIInvalidResponse,
		domain.ErrAIFormat, domain.ErrAIRequestFailed, domain.ErrNotFound, domain.ErrConflict,
	} {
		if errors.Is(err, known) {
			return domain.UserMessage(err)
		}
	}
	return err.Error()
}
