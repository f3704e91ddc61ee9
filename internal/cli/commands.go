package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/studyplanner-backend/internal/auth"
	"github.com/heartmarshall/studyplanner-backend/internal/domain"
	"github.com/heartmarshall/studyplanner-backend/internal/planner"
)

type runFunc func(fn func(ctx context.Context, s *session, args []string) error) func(*cobra.Command, []string) error

type loadFunc func(ctx context.Context, s *session) error

func newGenerateCmd(run runFunc) *cobra.Command {
	return &cobra.Command{
		Use:     "generate <topic>",
		Aliases: []string{"new"},
		Short:   "Generate a new study plan",
		Example: `  planner generate Linear Algebra`,
		Args:    cobra.MinimumNArgs(1),
		RunE: run(func(ctx context.Context, s *session, args []string) error {
			s.model.SetTopic(strings.Join(args, " "))
			if err := s.model.Generate(ctx); err != nil {
				return err
			}
			return render(s.out, s.model.Snapshot())
		}),
	}
}

func newRegenerateCmd(run runFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "regenerate <plan-id> [topic]",
		Short: "Replace the tasks of a plan, optionally with a new topic",
		Args:  cobra.MinimumNArgs(1),
		RunE: run(func(ctx context.Context, s *session, args []string) error {
			id, err := parseID("plan", args[0])
			if err != nil {
				return err
			}
			if err := s.model.Select(ctx, id); err != nil {
				return err
			}
			if len(args) > 1 {
				s.model.SetTopic(strings.Join(args[1:], " "))
			}
			if err := s.model.Generate(ctx); err != nil {
				return err
			}
			return render(s.out, s.model.Snapshot())
		}),
	}
}

func newShowCmd(run runFunc, load loadFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "show [plan-id]",
		Short: "Show a plan with its progress",
		Args:  cobra.MaximumNArgs(1),
		RunE: run(func(ctx context.Context, s *session, args []string) error {
			if len(args) == 1 {
				id, err := parseID("plan", args[0])
				if err != nil {
					return err
				}
				if err := s.model.Select(ctx, id); err != nil {
					return err
				}
			} else if err := load(ctx, s); err != nil {
				return err
			}
			return render(s.out, s.model.Snapshot())
		}),
	}
}

func newListCmd(run runFunc) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List your plans, newest first",
		Args:    cobra.NoArgs,
		RunE: run(func(ctx context.Context, s *session, _ []string) error {
			plans, err := s.model.Plans(ctx)
			if err != nil {
				return err
			}
			if len(plans) == 0 {
				_, err := fmt.Fprintln(s.out, "No plans yet. Create one with: planner generate <topic>")
				return err
			}
			w := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tCREATED\tTOPIC")
			for _, p := range plans {
				fmt.Fprintf(w, "%s\t%s\t%s\n", p.ID, p.CreatedAt.Local().Format("2006-01-02 15:04"), p.Topic)
			}
			return w.Flush()
		}),
	}
}

func newSetCompletedCmd(run runFunc, load loadFunc, name string, completed bool) *cobra.Command {
	short := "Mark a task as done"
	if !completed {
		short = "Mark a task as not done"
	}
	return &cobra.Command{
		Use:   name + " <task>",
		Short: short,
		Long: short + `.

<task> is the task number shown by "planner show" or the task id.`,
		Args: cobra.ExactArgs(1),
		RunE: run(func(ctx context.Context, s *session, args []string) error {
			if err := load(ctx, s); err != nil {
				return err
			}
			itemID, err := resolveItem(s.model.Snapshot(), args[0])
			if err != nil {
				return err
			}
			if err := s.model.SetCompleted(ctx, itemID, completed); err != nil {
				return err
			}
			return render(s.out, s.model.Snapshot())
		}),
	}
}

func newDetailsCmd(run runFunc, load loadFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "details <task>",
		Short: "Explain one task in more depth",
		Long: `Explain one task in more depth. The explanation is generated once and
stored with the task.

<task> is the task number shown by "planner show" or the task id.`,
		Args: cobra.ExactArgs(1),
		RunE: run(func(ctx context.Context, s *session, args []string) error {
			if err := load(ctx, s); err != nil {
				return err
			}
			itemID, err := resolveItem(s.model.Snapshot(), args[0])
			if err != nil {
				return err
			}
			if err := s.model.ToggleDetails(ctx, itemID); err != nil {
				return err
			}
			for _, it := range s.model.Snapshot().Items {
				if it.ID == itemID && it.Details != nil {
					_, err := fmt.Fprintf(s.out, "%s\n\n%s\n", it.Task, *it.Details)
					return err
				}
			}
			return nil
		}),
	}
}

func newDeleteCmd(run runFunc) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <plan-id>",
		Aliases: []string{"rm"},
		Short:   "Delete a plan and its tasks",
		Args:    cobra.ExactArgs(1),
		RunE: run(func(ctx context.Context, s *session, args []string) error {
			id, err := parseID("plan", args[0])
			if err != nil {
				return err
			}
			if err := s.model.DeletePlan(ctx, id); err != nil {
				return err
			}
			_, err = fmt.Fprintf(s.out, "Deleted plan %s\n", id)
			return err
		}),
	}
}

func newTokenCmd(opts Options) *cobra.Command {
	return &cobra.Command{
		Use:   "token",
		Short: "Print a bearer token for the session user (development only)",
		Long: `Print an HS256 bearer token for PLANNER_USER_ID signed with AUTH_JWT_SECRET.
Use it against a local API server; production tokens come from the auth
provider.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.LoadConfig()
			if err != nil {
				return err
			}
			if err := cfg.Auth.Validate(); err != nil {
				return fmt.Errorf("auth config: %w", err)
			}
			userID, err := sessionUser(cfg)
			if err != nil {
				return err
			}
			token, err := auth.NewJWTManager(cfg.Auth).GenerateAccessToken(userID)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(opts.Stdout, token)
			return err
		},
	}
}

func parseID(field, s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, domain.NewValidationError(field, "must be a UUID")
	}
	return id, nil
}

// resolveItem accepts a 1-based task number of the shown plan or a task id.
func resolveItem(snap planner.Snapshot, ref string) (uuid.UUID, error) {
	if snap.Plan == nil {
		return uuid.Nil, fmt.Errorf("%w: no study plan yet", domain.ErrNotFound)
	}
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(snap.Items) {
			return uuid.Nil, domain.NewValidationError("task", fmt.Sprintf("must be between 1 and %d", len(snap.Items)))
		}
		return snap.Items[n-1].ID, nil
	}
	return parseID("task", ref)
}
