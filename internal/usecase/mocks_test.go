package usecase

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"jobtrack/internal/database"
	"jobtrack/internal/domain/job"
	"jobtrack/internal/repository"
)

type mockJobRepo struct {
	items      []job.Job
	listErr    error
	lastFilter repository.JobListFilter

	existing map[int64]bool

	nextID    int64
	inserted  []job.Job
	insertErr error
	failAfter int // insert fails once this many rows were written; 0 = never

	replaced   []job.Job
	replaceErr error

	deletedIDs  [][]int64
	deleteCount int64
	deleteErr   error

	truncated bool

	statusUpdates map[int64]int
	updateErr     error
}

func (m *mockJobRepo) List(_ context.Context, f repository.JobListFilter) ([]job.Job, error) {
	m.lastFilter = f
	return m.items, m.listErr
}

func (m *mockJobRepo) GetByID(_ context.Context, id int64) (job.Job, error) {
	for _, j := range m.items {
		if j.ID == id {
			return j, nil
		}
	}
	return job.Job{}, repository.ErrNotFound
}

func (m *mockJobRepo) Search(_ context.Context, _ string, limit int) ([]job.Job, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	if len(m.items) > limit {
		return m.items[:limit], nil
	}
	return m.items, nil
}

func (m *mockJobRepo) UpdateStatus(_ context.Context, id int64, statusID int) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	if m.statusUpdates == nil {
		m.statusUpdates = make(map[int64]int)
	}
	m.statusUpdates[id] = statusID
	return nil
}

func (m *mockJobRepo) Exists(_ context.Context, _ database.Querier, id int64) (bool, error) {
	return m.existing[id], nil
}

func (m *mockJobRepo) Insert(_ context.Context, _ database.Querier, j job.Job) (int64, error) {
	if m.insertErr != nil && (m.failAfter == 0 || len(m.inserted) >= m.failAfter) {
		return 0, m.insertErr
	}
	m.nextID++
	m.inserted = append(m.inserted, j)
	return m.nextID, nil
}

func (m *mockJobRepo) Replace(_ context.Context, _ database.Querier, j job.Job) error {
	if m.replaceErr != nil {
		return m.replaceErr
	}
	m.replaced = append(m.replaced, j)
	return nil
}

func (m *mockJobRepo) DeleteByIDs(_ context.Context, _ database.Querier, ids []int64) (int64, error) {
	if m.deleteErr != nil {
		return 0, m.deleteErr
	}
	m.deletedIDs = append(m.deletedIDs, ids)
	if m.deleteCount > 0 {
		return m.deleteCount, nil
	}
	return int64(len(ids)), nil
}

func (m *mockJobRepo) TruncateAll(_ context.Context, _ database.Querier) error {
	m.truncated = true
	return nil
}

type mockMetaRepo struct {
	byJob      map[int64][]job.Meta
	cascadedTo [][]int64
	deleteErr  error
}

func (m *mockMetaRepo) ListByJobID(_ context.Context, jobID int64) ([]job.Meta, error) {
	return m.byJob[jobID], nil
}

func (m *mockMetaRepo) Insert(_ context.Context, _ database.Querier, meta job.Meta) (int64, error) {
	return 1, nil
}

func (m *mockMetaRepo) DeleteByJobIDs(_ context.Context, _ database.Querier, jobIDs []int64) (int64, error) {
	if m.deleteErr != nil {
		return 0, m.deleteErr
	}
	m.cascadedTo = append(m.cascadedTo, jobIDs)
	return int64(len(jobIDs)), nil
}

// mockDB hands out transactions that record commit/rollback ordering.
type mockDB struct {
	begins    int
	beginErr  error
	commits   int
	rollbacks int
}

func (m *mockDB) Exec(context.Context, string, ...any) (int64, error)         { return 0, nil }
func (m *mockDB) Query(context.Context, string, ...any) (database.Rows, error) { return nil, nil }
func (m *mockDB) QueryRow(context.Context, string, ...any) database.Row      { return nil }
func (m *mockDB) Ping(context.Context) error                                 { return nil }
func (m *mockDB) Close() error                                               { return nil }
func (m *mockDB) SQLDB() *sql.DB                                             { return nil }

func (m *mockDB) Begin(context.Context) (database.Tx, error) {
	if m.beginErr != nil {
		return nil, m.beginErr
	}
	m.begins++
	return &mockTx{db: m}, nil
}

type mockTx struct {
	db        *mockDB
	committed bool
}

func (t *mockTx) Exec(context.Context, string, ...any) (int64, error)         { return 0, nil }
func (t *mockTx) Query(context.Context, string, ...any) (database.Rows, error) { return nil, nil }
func (t *mockTx) QueryRow(context.Context, string, ...any) database.Row      { return nil }

func (t *mockTx) Commit(context.Context) error {
	t.committed = true
	t.db.commits++
	return nil
}

func (t *mockTx) Rollback(context.Context) error {
	if !t.committed {
		t.db.rollbacks++
	}
	return nil
}

// mockCache stores marshaled values so GetJSON exercises the same
// round-trip the redis client does.
type mockCache struct {
	store    map[string][]byte
	getErr   error
	setErr   error
	patterns []string
}

func newMockCache() *mockCache {
	return &mockCache{store: make(map[string][]byte)}
}

func (m *mockCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	if m.getErr != nil {
		return false, m.getErr
	}
	raw, ok := m.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, out)
}

func (m *mockCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	if m.setErr != nil {
		return m.setErr
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.store[key] = raw
	return nil
}

func (m *mockCache) Delete(_ context.Context, key string) error {
	delete(m.store, key)
	return nil
}

func (m *mockCache) DeleteByPattern(_ context.Context, pattern string) error {
	m.patterns = append(m.patterns, pattern)
	return nil
}

func testStatuses() job.StatusMap {
	return job.NewStatusMap(job.StatusSeed())
}
