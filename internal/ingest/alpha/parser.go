// Package alpha reads Alpha Progression CSV exports and turns each logged
// session into a finished workout session.
package alpha

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Session is one workout of the export. Weights are in kilograms.
type Session struct {
	Name      string
	Date      time.Time
	Duration  string
	Exercises []Exercise
}

// Exercise is one numbered exercise block of a session.
type Exercise struct {
	Number     int
	Name       string
	Equipment  string
	TargetReps int
	Sets       []Set
}

// Set is one logged set. For bodyweight-plus sets WeightKg is the added load.
type Set struct {
	Number           int
	WeightKg         float64
	IsBodyweightPlus bool
	Reps             int
	RIR              float64
	IsWarmup         bool
}

var (
	// "Session Name";"2026-02-19 4:54 h";"1:02 hr"
	sessionHeaderRe = regexp.MustCompile(`^"(.+)";"(\d{4}-\d{2}-\d{2}\s+\d+:\d+)\s+h";"(.+)"$`)

	// "1. Exercise Name · Equipment · 8 reps[· modifiers]"[;"warmup info"]
	exerciseHeaderRe = regexp.MustCompile(`^"(\d+)\.\s+(.+?)(?:\s+·\s+(\S.*?))?\s+·\s+(\d+)\s+reps(.*?)"(?:;"(.+)")?$`)

	// 1;115;8;1
	setDataRe = regexp.MustCompile(`^(\d+);(.+);(\d+);(.+)$`)

	// WU1 · 37,5 kg · 9 reps
	warmupRe = regexp.MustCompile(`WU(\d+)\s+·\s+(.+?)\s+kg\s+·\s+(\d+)\s+reps`)

	columnHeaderRe = regexp.MustCompile(`^#;KG;REPS;RIR$`)

	// 1:02 hr, 45 min
	hoursRe   = regexp.MustCompile(`^(\d+):(\d{2})\s*hr?s?$`)
	minutesRe = regexp.MustCompile(`^(\d+)\s*min$`)
)

// Parse reads an export. Sessions are separated by blank lines; lines that
// match no known shape are ignored.
func Parse(r io.Reader) ([]Session, error) {
	scanner := bufio.NewScanner(r)
	var (
		sessions []Session
		current  *Session
		exercise *Exercise
	)

	flushExercise := func() {
		if current != nil && exercise != nil {
			current.Exercises = append(current.Exercises, *exercise)
		}
		exercise = nil
	}
	flushSession := func() {
		flushExercise()
		if current != nil {
			sessions = append(sessions, *current)
		}
		current = nil
	}

	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "":
			flushSession()

		case columnHeaderRe.MatchString(line):

		case sessionHeaderRe.MatchString(line):
			m := sessionHeaderRe.FindStringSubmatch(line)
			flushSession()
			date, err := parseSessionDate(m[2])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			current = &Session{Name: m[1], Date: date, Duration: m[3]}

		case exerciseHeaderRe.MatchString(line):
			m := exerciseHeaderRe.FindStringSubmatch(line)
			if current == nil {
				return nil, fmt.Errorf("line %d: exercise without session: %q", lineNo, line)
			}
			flushExercise()
			num, _ := strconv.Atoi(m[1])
			target, _ := strconv.Atoi(m[4])
			exercise = &Exercise{
				Number:     num,
				Name:       strings.TrimSpace(m[2]),
				Equipment:  strings.TrimSpace(m[3]),
				TargetReps: target,
			}
			if m[6] != "" {
				exercise.Sets = append(exercise.Sets, parseWarmups(m[6])...)
			}

		case setDataRe.MatchString(line):
			m := setDataRe.FindStringSubmatch(line)
			if exercise == nil {
				return nil, fmt.Errorf("line %d: set without exercise: %q", lineNo, line)
			}
			num, _ := strconv.Atoi(m[1])
			weight, bw := parseWeight(m[2])
			reps, _ := strconv.Atoi(m[3])
			exercise.Sets = append(exercise.Sets, Set{
				Number:           num,
				WeightKg:         weight,
				IsBodyweightPlus: bw,
				Reps:             reps,
				RIR:              parseDecimal(m[4]),
			})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading export: %w", err)
	}
	flushSession()
	return sessions, nil
}

// Length parses the session duration; unknown formats yield 0.
func (s Session) Length() time.Duration {
	d := strings.TrimSpace(s.Duration)
	if m := hoursRe.FindStringSubmatch(d); m != nil {
		h, _ := strconv.Atoi(m[1])
		mins, _ := strconv.Atoi(m[2])
		return time.Duration(h)*time.Hour + time.Duration(mins)*time.Minute
	}
	if m := minutesRe.FindStringSubmatch(d); m != nil {
		mins, _ := strconv.Atoi(m[1])
		return time.Duration(mins) * time.Minute
	}
	return 0
}

// parseSessionDate accepts "2026-02-19 4:54" and "2026-02-19 16:54".
func parseSessionDate(s string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02 15:04", "2006-01-02 3:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse session date %q", s)
}

// parseWarmups reads "WU1 · 37,5 kg · 9 reps<br>WU2 · 72,5 kg · 7 reps".
func parseWarmups(s string) []Set {
	var sets []Set
	for _, part := range strings.Split(s, "<br>") {
		m := warmupRe.FindStringSubmatch(part)
		if m == nil {
			continue
		}
		num, _ := strconv.Atoi(m[1])
		weight, bw := parseWeight(m[2])
		reps, _ := strconv.Atoi(m[3])
		sets = append(sets, Set{Number: num, WeightKg: weight, IsBodyweightPlus: bw, Reps: reps, IsWarmup: true})
	}
	return sets
}

// parseWeight handles decimal commas and the "+35" bodyweight-plus notation.
func parseWeight(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if rest, ok := strings.CutPrefix(s, "+"); ok {
		return parseDecimal(rest), true
	}
	return parseDecimal(s), false
}

// parseDecimal reads "102,5" as 102.5.
func parseDecimal(s string) float64 {
	f, _ := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", "."), 64)
	return f
}
