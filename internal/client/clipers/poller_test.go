package clipers

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clipers/clipers-cli/internal/models"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// TestPollStatus проверяет, что опрос сам останавливается
// при первом терминальном статусе
func TestPollStatus(t *testing.T) {
	statuses := []models.CliperStatus{
		models.CliperStatusProcessing,
		models.CliperStatusProcessing,
		models.CliperStatusDone,
	}
	var mu sync.Mutex
	polls := 0

	apiClient := &mockAPI{
		getFunc: func(path string, result any) error {
			require.Equal(t, "/clipers/c1", path)
			mu.Lock()
			status := statuses[len(statuses)-1]
			if polls < len(statuses) {
				status = statuses[polls]
			}
			polls++
			mu.Unlock()
			decodeInto(t, models.Cliper{ID: "c1", Status: status}, result)
			return nil
		},
	}
	store := NewStore(apiClient, 10)

	var updates []models.CliperStatus
	var updatesMu sync.Mutex
	done := make(chan struct{})

	stop := store.PollStatus(context.Background(), "c1", 5*time.Millisecond, testLogger(),
		func(c models.Cliper) {
			updatesMu.Lock()
			updates = append(updates, c.Status)
			updatesMu.Unlock()
			if c.Status.Terminal() {
				close(done)
			}
		})
	defer stop()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("poller did not reach terminal status")
	}

	// Даем опросу шанс ошибочно продолжиться
	time.Sleep(30 * time.Millisecond)

	mu.Lock()
	finalPolls := polls
	mu.Unlock()
	assert.Equal(t, 3, finalPolls)

	updatesMu.Lock()
	defer updatesMu.Unlock()
	require.Len(t, updates, 3)
	assert.Equal(t, models.CliperStatusDone, updates[2])
}

// TestPollStatus_Stop проверяет явную остановку опроса вызывающим
func TestPollStatus_Stop(t *testing.T) {
	var mu sync.Mutex
	polls := 0

	apiClient := &mockAPI{
		getFunc: func(path string, result any) error {
			mu.Lock()
			polls++
			mu.Unlock()
			decodeInto(t, models.Cliper{ID: "c1", Status: models.CliperStatusProcessing}, result)
			return nil
		},
	}
	store := NewStore(apiClient, 10)

	stop := store.PollStatus(context.Background(), "c1", 5*time.Millisecond, testLogger(), nil)

	time.Sleep(25 * time.Millisecond)
	stop()

	mu.Lock()
	stopped := polls
	mu.Unlock()

	time.Sleep(25 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	// После stop новых опросов нет (один мог быть в полете)
	assert.LessOrEqual(t, polls, stopped+1)

	// Повторный stop безопасен
	stop()
}

// TestPollStatus_ErrorContinues проверяет, что ошибка одного опроса
// не останавливает таймер
func TestPollStatus_ErrorContinues(t *testing.T) {
	var mu sync.Mutex
	polls := 0

	apiClient := &mockAPI{
		getFunc: func(path string, result any) error {
			mu.Lock()
			polls++
			n := polls
			mu.Unlock()
			if n == 1 {
				return fmt.Errorf("temporary network error")
			}
			decodeInto(t, models.Cliper{ID: "c1", Status: models.CliperStatusDone}, result)
			return nil
		},
	}
	store := NewStore(apiClient, 10)

	done := make(chan struct{})
	stop := store.PollStatus(context.Background(), "c1", 5*time.Millisecond, testLogger(),
		func(c models.Cliper) {
			if c.Status.Terminal() {
				close(done)
			}
		})
	defer stop()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("poller did not survive a failed poll")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 2, polls)
}
