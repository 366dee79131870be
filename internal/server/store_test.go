package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/claude/liftrank/internal/metrics"
	"github.com/claude/liftrank/internal/models"
	"github.com/claude/liftrank/internal/storage"
)

// memStore is an in-memory Store.
type memStore struct {
	mu        sync.Mutex
	users     map[string]int
	profiles  map[int]models.UserProfile
	progress  map[int]map[string]models.UserProgress
	templates map[string]models.WorkoutTemplate
	workouts  []storage.WorkoutDetail
	saveErr   error
}

var _ Store = (*memStore)(nil)

func newMemStore() *memStore {
	m := &memStore{
		users:     make(map[string]int),
		profiles:  make(map[int]models.UserProfile),
		progress:  make(map[int]map[string]models.UserProgress),
		templates: make(map[string]models.WorkoutTemplate),
	}
	for _, t := range models.DefaultTemplates() {
		m.templates[t.ID] = t
	}
	return m
}

func (m *memStore) GetOrCreateUser(_ context.Context, login, _ string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if id, ok := m.users[login]; ok {
		return id, nil
	}
	id := len(m.users) + 1
	m.users[login] = id
	return id, nil
}

func (m *memStore) GetProfile(_ context.Context, userID int) (*models.UserProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[userID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (m *memStore) UpdateProfile(_ context.Context, p models.UserProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[p.UserID] = p
	return nil
}

func (m *memStore) GetTopLift(_ context.Context, userID int, workoutID string) (*models.UserProgress, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.progress[userID][workoutID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (m *memStore) QueryProgress(_ context.Context, userID int, featuredOnly bool) ([]models.UserProgress, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.UserProgress
	for _, p := range m.progress[userID] {
		if featuredOnly && !p.Featured {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].WorkoutID < out[j].WorkoutID })
	return out, nil
}

func (m *memStore) UpsertProgress(_ context.Context, userID int, updates []models.UserProgress) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.upsert(userID, updates), nil
}

func (m *memStore) upsert(userID int, updates []models.UserProgress) int64 {
	if m.progress[userID] == nil {
		m.progress[userID] = make(map[string]models.UserProgress)
	}
	var n int64
	for _, u := range updates {
		cur, ok := m.progress[userID][u.WorkoutID]
		if ok && cur.PersonalRecord >= u.PersonalRecord {
			continue
		}
		u.Featured = cur.Featured
		m.progress[userID][u.WorkoutID] = u
		n++
	}
	return n
}

func (m *memStore) SetFeatured(_ context.Context, userID int, workoutID string, featured bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.progress[userID][workoutID]
	if !ok {
		return storage.ErrNotFound
	}
	p.Featured = featured
	m.progress[userID][workoutID] = p
	return nil
}

func (m *memStore) GetWorkoutTemplate(_ context.Context, id string) (*models.WorkoutTemplate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.templates[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (m *memStore) ListWorkoutTemplates(_ context.Context) ([]models.WorkoutTemplate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.WorkoutTemplate, 0, len(m.templates))
	for _, t := range m.templates {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memStore) UpsertWorkoutTemplate(_ context.Context, t models.WorkoutTemplate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.templates[t.ID] = t
	return nil
}

func (m *memStore) SaveWorkout(_ context.Context, row models.WorkoutRow, sets []models.WorkoutSetRow, updates []models.UserProgress) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	for _, w := range m.workouts {
		if w.ID == row.ID {
			return errors.New("duplicate workout")
		}
	}
	m.workouts = append(m.workouts, storage.WorkoutDetail{WorkoutRow: row, Sets: sets})
	m.upsert(row.UserID, updates)
	return nil
}

func (m *memStore) QueryWorkouts(_ context.Context, start, end time.Time, userID int) ([]models.WorkoutRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.WorkoutRow
	for _, w := range m.workouts {
		if w.UserID == userID && !w.StartTime.Before(start) && w.StartTime.Before(end) {
			out = append(out, w.WorkoutRow)
		}
	}
	return out, nil
}

func (m *memStore) GetWorkout(_ context.Context, workoutID uuid.UUID, userID int) (*storage.WorkoutDetail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, w := range m.workouts {
		if w.ID == workoutID && w.UserID == userID {
			return &w, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (m *memStore) GetDataStats(_ context.Context, userID int) (*storage.DataStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st := &storage.DataStats{}
	for _, w := range m.workouts {
		if w.UserID != userID {
			continue
		}
		st.TotalWorkouts++
		st.TotalSets += int64(w.TotalSets)
		st.TotalVolume += w.TotalVolume
	}
	return st, nil
}

func (m *memStore) GetVolumeSummary(_ context.Context, _, _ time.Time, _ string, _ int) ([]storage.VolumeSummaryPeriod, error) {
	return []storage.VolumeSummaryPeriod{}, nil
}

func (m *memStore) workoutCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.workouts)
}

func newTestServer(db Store, opts Options) *Server {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(db, nil, metrics.NewTestManager(), opts, log)
}
