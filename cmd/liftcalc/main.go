// Command liftcalc is the offline LiftRank client: strength calculators plus
// workout sessions tracked in a local SQLite database.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/claude/liftrank/internal/calc"
	"github.com/claude/liftrank/internal/ingest"
	"github.com/claude/liftrank/internal/localstore"
	"github.com/claude/liftrank/internal/logging"
	"github.com/claude/liftrank/internal/models"
	"github.com/claude/liftrank/internal/progress"
	"github.com/claude/liftrank/internal/recommend"
	"github.com/claude/liftrank/internal/strength/percentile"
	"github.com/claude/liftrank/internal/strength/standards"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app carries the global flags shared by every command.
type app struct {
	dataDir       string
	logLevel      string
	standardsFile string
}

func (a *app) logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logging.Level(a.logLevel)}))
}

func (a *app) open() (*localstore.Store, error) {
	return localstore.Open(a.dataDir)
}

func (a *app) engine() (*percentile.Engine, error) {
	e, _, err := a.standards()
	return e, err
}

// standards returns the percentile engine and the exercise aliases, from
// --standards when set.
func (a *app) standards() (*percentile.Engine, standards.Resolver, error) {
	if a.standardsFile == "" {
		return percentile.NewDefault(), standards.DefaultAliases(), nil
	}
	table, aliases, err := standards.LoadFile(a.standardsFile)
	if err != nil {
		return nil, nil, err
	}
	return percentile.New(table, aliases), aliases, nil
}

func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "liftrank")
	}
	return ".liftrank"
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "liftcalc",
		Short:         "Strength calculators and offline workout tracking",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&a.dataDir, "data-dir", defaultDataDir(), "directory holding liftrank.db")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "warn", "log level: debug|info|warn|error")
	root.PersistentFlags().StringVar(&a.standardsFile, "standards", "", "YAML strength standards overrides")

	root.AddCommand(newOneRMCmd())
	root.AddCommand(newTierCmd())
	root.AddCommand(newPercentileCmd(a))
	root.AddCommand(newRecommendCmd(a))
	root.AddCommand(newProfileCmd(a))
	root.AddCommand(newProgressCmd(a))
	root.AddCommand(newWorkoutCmd(a))
	root.AddCommand(newSessionCmd(a))
	return root
}

func newOneRMCmd() *cobra.Command {
	var weight float64
	var reps int
	var unit string
	var table bool

	cmd := &cobra.Command{
		Use:   "onerm --weight <w> --reps <n>",
		Short: "Estimate a one-rep max",
		RunE: func(cmd *cobra.Command, _ []string) error {
			u, err := models.ParseUnit(unit)
			if err != nil {
				return err
			}
			res, err := calc.OneRM(models.LiftAttempt{Weight: weight, Unit: u, Reps: reps})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "estimated 1RM: %g %s\n", res.EstimatedMax, res.Unit)
			_, _ = fmt.Fprintf(out, "epley %.1f  brzycki %.1f  lombardi %.1f\n", res.Formulas.Epley, res.Formulas.Brzycki, res.Formulas.Lombardi)
			if table {
				for _, row := range res.Table {
					_, _ = fmt.Fprintf(out, "%2d reps\t%3.0f%%\t%g %s\n", row.Reps, row.Percentage, row.Weight, res.Unit)
				}
			}
			return nil
		},
	}
	cmd.Flags().Float64Var(&weight, "weight", 0, "weight lifted")
	cmd.Flags().IntVar(&reps, "reps", 1, "repetitions performed")
	cmd.Flags().StringVar(&unit, "unit", "lbs", "weight unit: lbs|kg")
	cmd.Flags().BoolVar(&table, "table", false, "print the weight for 1 to 12 reps")
	return cmd
}

func newTierCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tier <percentile>",
		Short: "Show the strength tier of a percentile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := strconv.ParseFloat(args[0], 64)
			if err != nil || p < 0 || p > 100 {
				return fmt.Errorf("percentile must be a number between 0 and 100")
			}
			res := calc.Tier(p)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "tier %s (%s)\n", res.Tier, res.Color)
			if res.Next != nil {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "next: %s at percentile %d\n", *res.Next, res.Needed)
			}
			return nil
		},
	}
}

func newPercentileCmd(a *app) *cobra.Command {
	var exercise, unit, bwUnit, gender string
	var weight, bodyWeight float64
	var reps, age int

	cmd := &cobra.Command{
		Use:   "percentile --exercise <id> --weight <w>",
		Short: "Rank a lift against the strength standards",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(exercise) == "" {
				return fmt.Errorf("--exercise is required")
			}
			u, err := models.ParseUnit(unit)
			if err != nil {
				return err
			}

			var profile models.UserProfile
			if bodyWeight <= 0 {
				store, err := a.open()
				if err != nil {
					return err
				}
				defer store.Close()
				p, err := store.GetProfile(cmd.Context())
				if err != nil {
					return err
				}
				if p == nil {
					return fmt.Errorf("no profile: pass --body-weight or run 'liftcalc profile set'")
				}
				profile = *p
			} else {
				bu, err := models.ParseUnit(bwUnit)
				if err != nil {
					return err
				}
				profile.BodyWeight, profile.BodyWeightUnit = bodyWeight, bu
			}
			if gender != "" {
				g, err := standards.ParseGender(gender)
				if err != nil {
					return err
				}
				profile.Gender = g
			}
			if age > 0 {
				profile.Age = &age
			}

			engine, err := a.engine()
			if err != nil {
				return err
			}
			res, err := calc.Rank(engine, profile, standards.Normalize(exercise), models.LiftAttempt{Weight: weight, Unit: u, Reps: reps})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "%s: estimated 1RM %g lbs at %g lbs body weight\n", res.Exercise, res.EstimatedMax, res.BodyWeightLbs)
			if !res.Ranked {
				_, _ = fmt.Fprintln(out, "no strength standard for this exercise; shown as unranked")
			}
			_, _ = fmt.Fprintf(out, "percentile %.1f, tier %s\n", res.Percentile, res.Tier)
			return nil
		},
	}
	cmd.Flags().StringVar(&exercise, "exercise", "", "exercise name or ID")
	cmd.Flags().Float64Var(&weight, "weight", 0, "weight lifted")
	cmd.Flags().IntVar(&reps, "reps", 1, "repetitions performed")
	cmd.Flags().StringVar(&unit, "unit", "lbs", "weight unit: lbs|kg")
	cmd.Flags().Float64Var(&bodyWeight, "body-weight", 0, "body weight; defaults to the stored profile")
	cmd.Flags().StringVar(&bwUnit, "body-weight-unit", "lbs", "body weight unit: lbs|kg")
	cmd.Flags().StringVar(&gender, "gender", "", "male|female; defaults to the profile")
	cmd.Flags().IntVar(&age, "age", 0, "age; defaults to the profile")
	return cmd
}

func newRecommendCmd(a *app) *cobra.Command {
	var reps int
	var increment float64

	cmd := &cobra.Command{
		Use:   "recommend <exercise>",
		Short: "Suggest a working weight from the stored personal record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.open()
			if err != nil {
				return err
			}
			defer store.Close()

			exercise := standards.Normalize(args[0])
			engine := recommend.New(store, a.logger(), recommend.Options{Increment: increment})
			pr, err := engine.PersonalRecord(cmd.Context(), exercise)
			if err != nil {
				return err
			}
			if pr == 0 {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "no personal record for %s yet\n", exercise)
				return nil
			}
			w := engine.RecommendedWeight(cmd.Context(), exercise, reps)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %g lbs for %d reps (1RM %g lbs)\n", exercise, w, reps, pr)
			return nil
		},
	}
	cmd.Flags().IntVar(&reps, "reps", 5, "target repetitions")
	cmd.Flags().Float64Var(&increment, "increment", recommend.DefaultIncrement, "plate increment to round to")
	return cmd
}

func newProfileCmd(a *app) *cobra.Command {
	profile := &cobra.Command{Use: "profile", Short: "Lifter profile used for rankings"}

	profile.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the stored profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := a.open()
			if err != nil {
				return err
			}
			defer store.Close()
			p, err := store.GetProfile(cmd.Context())
			if err != nil {
				return err
			}
			if p == nil {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no profile")
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "body weight: %g %s\ngender: %s\n", p.BodyWeight, p.BodyWeightUnit, p.Gender)
			if p.Age != nil {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "age: %d\n", *p.Age)
			}
			return nil
		},
	})

	var bodyWeight float64
	var unit, gender string
	var age int
	set := &cobra.Command{
		Use:   "set --body-weight <w> --gender <g>",
		Short: "Store the profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			u, err := models.ParseUnit(unit)
			if err != nil {
				return err
			}
			g, err := standards.ParseGender(gender)
			if err != nil {
				return err
			}
			p := models.UserProfile{UserID: localstore.LocalUserID, BodyWeight: bodyWeight, BodyWeightUnit: u, Gender: g}
			if age > 0 {
				p.Age = &age
			}

			store, err := a.open()
			if err != nil {
				return err
			}
			defer store.Close()
			if err := store.SaveProfile(cmd.Context(), p); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "profile saved")
			return nil
		},
	}
	set.Flags().Float64Var(&bodyWeight, "body-weight", 0, "body weight")
	set.Flags().StringVar(&unit, "unit", "lbs", "body weight unit: lbs|kg")
	set.Flags().StringVar(&gender, "gender", "male", "male|female")
	set.Flags().IntVar(&age, "age", 0, "age (optional)")
	profile.AddCommand(set)
	return profile
}

func newProgressCmd(a *app) *cobra.Command {
	var featured bool
	progress := &cobra.Command{
		Use:   "progress",
		Short: "List personal records",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := a.open()
			if err != nil {
				return err
			}
			defer store.Close()
			entries, err := store.ListProgress(cmd.Context(), featured)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no personal records")
				return nil
			}
			for _, p := range entries {
				star := " "
				if p.Featured {
					star = "*"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\t%g lbs\t%.1f\t%s\t%s\n", star, p.WorkoutID, p.PersonalRecord, p.PercentileRanking, p.StrengthLevel, p.LastUpdated.Format("2006-01-02"))
			}
			return nil
		},
	}
	progress.Flags().BoolVar(&featured, "featured", false, "only featured lifts")

	var unfeature bool
	feature := &cobra.Command{
		Use:   "feature <exercise>",
		Short: "Feature a lift on the dashboard",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.open()
			if err != nil {
				return err
			}
			defer store.Close()
			return store.SetFeatured(cmd.Context(), standards.Normalize(args[0]), !unfeature)
		},
	}
	feature.Flags().BoolVar(&unfeature, "remove", false, "remove from the featured lifts")
	progress.AddCommand(feature)
	return progress
}

func newWorkoutCmd(a *app) *cobra.Command {
	workout := &cobra.Command{Use: "workout", Short: "Workout templates and history"}

	workout.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List workout templates",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := a.open()
			if err != nil {
				return err
			}
			defer store.Close()
			templates, err := store.ListTemplates(cmd.Context())
			if err != nil {
				return err
			}
			for _, t := range templates {
				names := make([]string, 0, len(t.Exercises))
				for _, ex := range t.Exercises {
					names = append(names, fmt.Sprintf("%s %dx%s", ex.Name, ex.Sets, ex.Reps))
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", t.ID, t.Name, strings.Join(names, ", "))
			}
			return nil
		},
	})

	workout.AddCommand(&cobra.Command{
		Use:   "import <file.yaml>",
		Short: "Import or replace workout templates from a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.open()
			if err != nil {
				return err
			}
			defer store.Close()
			n, err := store.ImportTemplates(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "imported %d templates\n", n)
			return nil
		},
	})

	workout.AddCommand(&cobra.Command{
		Use:   "import-alpha <export.csv>",
		Short: "Import workout history from an Alpha Progression CSV export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			engine, aliases, err := a.standards()
			if err != nil {
				return err
			}
			store, err := a.open()
			if err != nil {
				return err
			}
			defer store.Close()
			profile, err := store.GetProfile(ctx)
			if err != nil {
				return err
			}
			if profile == nil {
				profile = &models.UserProfile{UserID: localstore.LocalUserID}
			}

			im := ingest.New(progress.NewUpdater(engine), aliases, a.logger())
			res, err := im.Alpha(ctx, f, store, *profile)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s (%d skipped, %d sets, %d records)\n",
				res.Message, res.WorkoutsSkipped, res.SetsInserted, res.Records)
			return nil
		},
	})

	var limit int
	history := &cobra.Command{
		Use:   "history",
		Short: "List finished workouts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := a.open()
			if err != nil {
				return err
			}
			defer store.Close()
			workouts, err := store.ListWorkouts(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(workouts) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no workouts")
				return nil
			}
			for _, w := range workouts {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%d sets\t%g %s\t%d PRs\n",
					w.ID, w.StartTime.Local().Format("2006-01-02 15:04"), w.Title, w.TotalSets, w.TotalVolume, w.Unit, w.ProgressUpdates)
			}
			return nil
		},
	}
	history.Flags().IntVar(&limit, "limit", 20, "maximum workouts to list")
	workout.AddCommand(history)
	return workout
}
