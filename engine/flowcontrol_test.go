package engine

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/TheLab-ms/styler/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPollWorkqueue(t *testing.T) {
	tests := []struct {
		name         string
		items        []string
		getError     error
		processError error
		updateError  error
		expectResult bool
	}{
		{
			name:         "successful processing",
			items:        []string{"save-1"},
			expectResult: true,
		},
		{
			name:         "empty queue",
			items:        []string{},
			expectResult: false,
		},
		{
			name:         "table backed queue with no rows",
			getError:     sql.ErrNoRows,
			expectResult: false,
		},
		{
			name:         "get next error",
			getError:     errors.New("db error"),
			expectResult: false,
		},
		{
			name:         "process error marks failed",
			items:        []string{"save-1"},
			processError: errors.New("write failed"),
			expectResult: true,
		},
		{
			name:         "update error",
			items:        []string{"save-1"},
			updateError:  errors.New("update error"),
			expectResult: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wq := &mockWorkqueue{
				items:        tt.items,
				getError:     tt.getError,
				processError: tt.processError,
				updateError:  tt.updateError,
			}

			result := PollWorkqueue[string](wq)(context.Background())
			assert.Equal(t, tt.expectResult, result)

			if tt.processError != nil && tt.updateError == nil {
				assert.Equal(t, []bool{false}, wq.updates)
			}
		})
	}
}

func TestPollWorkqueueSequential(t *testing.T) {
	wq := &mockWorkqueue{items: []string{"save-1", "save-2"}}
	poll := PollWorkqueue[string](wq)

	assert.True(t, poll(testContext(t)))
	assert.True(t, poll(testContext(t)))
	assert.False(t, poll(testContext(t)))
	assert.Equal(t, []bool{true, true}, wq.updates)
}

func TestWithRateLimiting(t *testing.T) {
	wq := &mockWorkqueue{items: []string{"a", "b", "c"}}
	poll := PollWorkqueue(WithRateLimiting[string](wq, 1000))

	for poll(testContext(t)) {
	}
	assert.Equal(t, 3, wq.processed)

	// A canceled context fails the item instead of blocking
	slow := &mockWorkqueue{items: []string{"a", "b"}}
	limited := WithRateLimiting[string](slow, 1)
	require.NoError(t, limited.ProcessItem(testContext(t), "a"))

	ctx, cancel := context.WithTimeout(testContext(t), time.Millisecond)
	defer cancel()
	assert.Error(t, limited.ProcessItem(ctx, "b"))
}

func TestCleanup(t *testing.T) {
	database := db.OpenTest(t)
	db.MustMigrate(database, `CREATE TABLE things (id INTEGER PRIMARY KEY, created INTEGER NOT NULL)`)
	_, err := database.Exec(`INSERT INTO things (created) VALUES (1), (2), (unixepoch())`)
	require.NoError(t, err)

	assert.False(t, Cleanup(database, "things", "DELETE FROM things WHERE created < ?", 100)(testContext(t)))

	var count int
	require.NoError(t, database.QueryRow("SELECT COUNT(*) FROM things").Scan(&count))
	assert.Equal(t, 1, count)
}

type mockWorkqueue struct {
	items        []string
	currentIndex int
	getError     error
	processError error
	updateError  error
	processed    int
	updates      []bool
}

func (m *mockWorkqueue) GetItem(ctx context.Context) (string, error) {
	if m.getError != nil {
		return "", m.getError
	}
	if m.currentIndex >= len(m.items) {
		return "", ErrQueueEmpty
	}
	item := m.items[m.currentIndex]
	m.currentIndex++
	return item, nil
}

func (m *mockWorkqueue) ProcessItem(ctx context.Context, item string) error {
	m.processed++
	return m.processError
}

func (m *mockWorkqueue) UpdateItem(ctx context.Context, item string, ok bool) error {
	if m.updateError == nil {
		m.updates = append(m.updates, ok)
	}
	return m.updateError
}
