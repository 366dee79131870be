package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/claude/liftrank/internal/localstore"
	"github.com/claude/liftrank/internal/models"
	"github.com/claude/liftrank/internal/progress"
	"github.com/claude/liftrank/internal/recommend"
	"github.com/claude/liftrank/internal/session"
)

var errNoActiveSession = errors.New("no active session: run 'liftcalc session start <workout>'")

// restNotice remembers the rest period started by the last completed set so
// the command can print it.
type restNotice struct {
	d time.Duration
}

func (r *restNotice) Start(d time.Duration) { r.d = d }

func (a *app) controller(store *localstore.Store, timer session.RestTimer, unit models.Unit) *session.Controller {
	log := a.logger()
	return session.NewController(session.Deps{
		Catalog:     store,
		Store:       store,
		Recommender: recommend.New(store, log, recommend.Options{}),
		Timer:       timer,
		Logger:      log,
		Unit:        unit,
	})
}

// withSession restores the active session, applies fn and saves the result.
func (a *app) withSession(cmd *cobra.Command, fn func(ctx context.Context, c *session.Controller) error) error {
	ctx := cmd.Context()
	store, err := a.open()
	if err != nil {
		return err
	}
	defer store.Close()

	st, err := store.LoadActive(ctx)
	if err != nil {
		return err
	}
	if st == nil {
		return errNoActiveSession
	}

	timer := &restNotice{}
	c := a.controller(store, timer, st.Unit)
	c.Restore(*st)
	if err := fn(ctx, c); err != nil {
		return err
	}
	if err := store.SaveActive(ctx, c.State()); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printSession(out, c.State())
	if timer.d > 0 {
		_, _ = fmt.Fprintf(out, "rest %s\n", timer.d)
	}
	return nil
}

func printSession(w io.Writer, st session.State) {
	_, _ = fmt.Fprintf(w, "%s (%s), started %s\n", st.Title, st.Status, st.StartTime.Local().Format("15:04"))
	for i, ex := range st.Exercises {
		marker := " "
		if i == st.CurrentExerciseIndex {
			marker = ">"
		}
		sets := make([]string, 0, len(ex.CompletedSets))
		for _, s := range ex.CompletedSets {
			if s.Completed {
				sets = append(sets, fmt.Sprintf("%gx%d", s.Weight, s.Reps))
			} else {
				sets = append(sets, "skip")
			}
		}
		line := fmt.Sprintf("%s %d. %s %dx%s [%s] %s", marker, i, ex.Name, ex.TargetSets, ex.TargetReps, ex.Status(), strings.Join(sets, " "))
		if i == st.CurrentExerciseIndex && ex.SuggestedWeight > 0 && !ex.IsCompleted {
			line += fmt.Sprintf(" (suggested %g %s)", ex.SuggestedWeight, st.Unit)
		}
		_, _ = fmt.Fprintln(w, strings.TrimRight(line, " "))
	}
	if st.EditingSetIndex != nil {
		_, _ = fmt.Fprintf(w, "editing set %d\n", *st.EditingSetIndex)
	}
}

func parseSet(weightArg, repsArg string) (float64, int, error) {
	w, err := strconv.ParseFloat(weightArg, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid weight %q", weightArg)
	}
	r, err := strconv.Atoi(repsArg)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid reps %q", repsArg)
	}
	return w, r, nil
}

func parseIndex(arg string) (int, error) {
	i, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid index %q", arg)
	}
	return i, nil
}

func newSessionCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "session", Short: "Track a workout session"}
	cmd.AddCommand(newSessionStartCmd(a))
	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show the active session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withSession(cmd, func(context.Context, *session.Controller) error { return nil })
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "set <weight> <reps>",
		Short: "Complete a set of the current exercise",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, r, err := parseSet(args[0], args[1])
			if err != nil {
				return err
			}
			return a.withSession(cmd, func(_ context.Context, c *session.Controller) error {
				return c.CompleteSet(w, r)
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "skip",
		Short: "Skip a set of the current exercise",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withSession(cmd, func(_ context.Context, c *session.Controller) error {
				return c.SkipSet(0, 0)
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "edit <set-index> <weight> <reps>",
		Short: "Correct a recorded set of the current exercise",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			i, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			w, r, err := parseSet(args[1], args[2])
			if err != nil {
				return err
			}
			return a.withSession(cmd, func(_ context.Context, c *session.Controller) error {
				if err := c.BeginEdit(i); err != nil {
					return err
				}
				return c.UpdateSet(i, w, r)
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "jump <exercise-index>",
		Short: "Move to another exercise",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			i, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			return a.withSession(cmd, func(ctx context.Context, c *session.Controller) error {
				return c.JumpToExercise(ctx, i)
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "next",
		Short: "Move to the next exercise",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withSession(cmd, func(ctx context.Context, c *session.Controller) error {
				return c.NextExercise(ctx)
			})
		},
	})
	cmd.AddCommand(newSessionFinishCmd(a))
	cmd.AddCommand(&cobra.Command{
		Use:   "cancel",
		Short: "Discard the active session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := a.open()
			if err != nil {
				return err
			}
			defer store.Close()
			st, err := store.LoadActive(cmd.Context())
			if err != nil {
				return err
			}
			if st == nil {
				return errNoActiveSession
			}
			if err := store.ClearActive(cmd.Context()); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "cancelled %s\n", st.Title)
			return nil
		},
	})
	return cmd
}

func newSessionStartCmd(a *app) *cobra.Command {
	var unit string
	cmd := &cobra.Command{
		Use:   "start <workout-id>",
		Short: "Start a session from a workout template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			u, err := models.ParseUnit(unit)
			if err != nil {
				return err
			}
			store, err := a.open()
			if err != nil {
				return err
			}
			defer store.Close()

			active, err := store.LoadActive(ctx)
			if err != nil {
				return err
			}
			if active != nil {
				return fmt.Errorf("session %q already active: finish or cancel it first", active.Title)
			}

			c := a.controller(store, nil, u)
			if err := c.Initialize(ctx, args[0]); err != nil {
				return err
			}
			if err := store.SaveActive(ctx, c.State()); err != nil {
				return err
			}
			printSession(cmd.OutOrStdout(), c.State())
			return nil
		},
	}
	cmd.Flags().StringVar(&unit, "unit", "lbs", "weight unit: lbs|kg")
	return cmd
}

func newSessionFinishCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "finish",
		Short: "Finish the session and record personal records",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, err := a.open()
			if err != nil {
				return err
			}
			defer store.Close()

			st, err := store.LoadActive(ctx)
			if err != nil {
				return err
			}
			if st == nil {
				return errNoActiveSession
			}
			c := a.controller(store, nil, st.Unit)
			c.Restore(*st)
			res, err := c.Finish(ctx)
			if err != nil {
				return err
			}

			profile, err := store.GetProfile(ctx)
			if err != nil {
				return err
			}
			if profile == nil {
				profile = &models.UserProfile{UserID: localstore.LocalUserID}
			}
			engine, err := a.engine()
			if err != nil {
				return err
			}
			updates := progress.NewUpdater(engine).FromResult(*profile, res)

			id, err := store.SaveSession(ctx, res, updates)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "saved workout %s\n", id)
			_, _ = fmt.Fprintf(out, "duration %s, %d sets, volume %g %s\n",
				res.Stats.Duration.Round(time.Second), res.Stats.TotalSets, res.Stats.TotalVolume, res.State.Unit)
			for _, pr := range res.Stats.Records {
				_, _ = fmt.Fprintf(out, "new record: %s %g lbs (was %g)\n", pr.ExerciseName, pr.EstimatedMax, pr.Previous)
			}
			return nil
		},
	}
}
