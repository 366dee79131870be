package storage

import (
	"context"
	"fmt"
	"time"
)

// DataStats holds aggregate statistics about a user's logged training.
type DataStats struct {
	TotalWorkouts   int64                 `json:"total_workouts"`
	TotalSets       int64                 `json:"total_sets"`
	SkippedSets     int64                 `json:"skipped_sets"`
	TotalVolume     float64               `json:"total_volume"`
	RankedLifts     int64                 `json:"ranked_lifts"`
	EarliestWorkout *time.Time            `json:"earliest_workout"`
	LatestWorkout   *time.Time            `json:"latest_workout"`
	WorkoutsByTitle []WorkoutTemplateStat `json:"workouts_by_title"`
}

// WorkoutTemplateStat holds summary stats for one workout template.
type WorkoutTemplateStat struct {
	Title         string  `json:"title"`
	Count         int64   `json:"count"`
	TotalDuration float64 `json:"total_duration_sec"`
	TotalVolume   float64 `json:"total_volume"`
}

// GetDataStats returns aggregate statistics for a user's stored data.
func (db *DB) GetDataStats(ctx context.Context, userID int) (*DataStats, error) {
	stats := &DataStats{}

	err := db.Pool.QueryRow(ctx,
		`SELECT COUNT(*), MIN(start_time), MAX(start_time), COALESCE(SUM(total_volume), 0)
		 FROM workouts WHERE user_id = $1`, userID,
	).Scan(&stats.TotalWorkouts, &stats.EarliestWorkout, &stats.LatestWorkout, &stats.TotalVolume)
	if err != nil {
		return nil, fmt.Errorf("counting workouts: %w", err)
	}

	err = db.Pool.QueryRow(ctx,
		`SELECT COUNT(*), COUNT(*) FILTER (WHERE NOT completed)
		 FROM workout_sets WHERE user_id = $1`, userID,
	).Scan(&stats.TotalSets, &stats.SkippedSets)
	if err != nil {
		return nil, fmt.Errorf("counting sets: %w", err)
	}

	err = db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM user_progress WHERE user_id = $1 AND personal_record > 0`, userID,
	).Scan(&stats.RankedLifts)
	if err != nil {
		return nil, fmt.Errorf("counting ranked lifts: %w", err)
	}

	rows, err := db.Pool.Query(ctx,
		`SELECT title, COUNT(*), COALESCE(SUM(duration_sec), 0), COALESCE(SUM(total_volume), 0)
		 FROM workouts
		 WHERE user_id = $1
		 GROUP BY title
		 ORDER BY COUNT(*) DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying workouts by title: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s WorkoutTemplateStat
		if err := rows.Scan(&s.Title, &s.Count, &s.TotalDuration, &s.TotalVolume); err != nil {
			return nil, fmt.Errorf("scanning workout stat: %w", err)
		}
		stats.WorkoutsByTitle = append(stats.WorkoutsByTitle, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return stats, nil
}

// VolumeSummaryPeriod holds aggregated strength volume for one time period.
type VolumeSummaryPeriod struct {
	Period            string  `json:"period"`
	Sessions          int     `json:"sessions"`
	WorkingSets       int     `json:"working_sets"`
	TotalReps         int     `json:"total_reps"`
	Volume            float64 `json:"volume"`
	AvgSetsPerSession float64 `json:"avg_sets_per_session"`
}

// GetVolumeSummary returns completed-set volume per week or month.
func (db *DB) GetVolumeSummary(ctx context.Context, start, end time.Time, bucket string, userID int) ([]VolumeSummaryPeriod, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT date_trunc($1, w.start_time)::date AS period,
		        COUNT(DISTINCT w.id)::int AS sessions,
		        COUNT(s.*) FILTER (WHERE s.completed)::int AS working_sets,
		        COALESCE(SUM(s.reps) FILTER (WHERE s.completed), 0)::int AS total_reps,
		        COALESCE(SUM(s.weight * s.reps) FILTER (WHERE s.completed), 0) AS volume
		 FROM workouts w
		 LEFT JOIN workout_sets s ON s.workout_id = w.id
		 WHERE w.start_time >= $2 AND w.start_time < $3 AND w.user_id = $4
		 GROUP BY period
		 ORDER BY period DESC`,
		truncInterval(bucket), start, end, userID)
	if err != nil {
		return nil, fmt.Errorf("querying volume summary: %w", err)
	}
	defer rows.Close()

	result := []VolumeSummaryPeriod{}
	for rows.Next() {
		var (
			periodTime time.Time
			p          VolumeSummaryPeriod
		)
		if err := rows.Scan(&periodTime, &p.Sessions, &p.WorkingSets, &p.TotalReps, &p.Volume); err != nil {
			return nil, fmt.Errorf("scanning volume summary: %w", err)
		}
		p.Period = periodTime.Format("2006-01-02")
		if p.Sessions > 0 {
			p.AvgSetsPerSession = float64(p.WorkingSets) / float64(p.Sessions)
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

// truncInterval converts bucket strings like "1 month" to the interval name
// that date_trunc expects (e.g. "month", "week").
func truncInterval(bucket string) string {
	switch bucket {
	case "1 week", "week", "weekly":
		return "week"
	default:
		return "month"
	}
}
