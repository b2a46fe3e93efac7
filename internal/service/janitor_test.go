package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/aliskhannn/spicy-vs-sweet/internal/apperror"
	"github.com/aliskhannn/spicy-vs-sweet/internal/domain/entities"
)

type expiredCall struct {
	roomID   int64
	question string
	records  int
}

type fakeNotifier struct {
	mu    sync.Mutex
	calls []expiredCall
	err   error
}

func (n *fakeNotifier) QuestionExpired(roomID int64, q *entities.Question, records []entities.VerdictRecord) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, expiredCall{roomID: roomID, question: q.ID, records: len(records)})
	return n.err
}

func newJanitor(f *gameFixture, questionTTL, idleTTL, ahead time.Duration) (*RoomJanitor, *fakeNotifier) {
	j := NewRoomJanitor(f.svc, f.rooms, "@every 1m", questionTTL, idleTTL, zap.NewNop())
	j.now = func() time.Time { return time.Now().Add(ahead) }

	n := &fakeNotifier{}
	j.SetNotifier(n)
	return j, n
}

func TestJanitorClosesExpiredQuestions(t *testing.T) {
	f := newGameFixture()
	ctx := context.Background()

	_, err := f.svc.OpenQuestion(ctx, 1, entities.CategorySweet)
	require.NoError(t, err)
	_, err = f.svc.SubmitAnswer(ctx, entities.NewSubmission(1, "", 10, "Ana", "Paris"))
	require.NoError(t, err)
	_, err = f.svc.OpenQuestion(ctx, 2, entities.CategorySpicy)
	require.NoError(t, err)

	j, n := newJanitor(f, 10*time.Minute, time.Hour, 15*time.Minute)

	closed, evicted := j.Sweep(ctx)
	assert.Equal(t, 2, closed)
	assert.Zero(t, evicted)

	_, open := f.rooms.Current(1)
	assert.False(t, open)
	_, open = f.rooms.Current(2)
	assert.False(t, open)

	require.Len(t, n.calls, 2)
	assert.ElementsMatch(t, []expiredCall{
		{roomID: 1, question: "en-1", records: 1},
		{roomID: 2, question: "en-2", records: 0},
	}, n.calls)

	// The same question can be opened by hand again.
	_, err = f.svc.OpenQuestion(ctx, 1, entities.CategorySweet)
	assert.NoError(t, err)
}

func TestJanitorKeepsFreshQuestionsAndEvictsIdleRooms(t *testing.T) {
	f := newGameFixture()
	ctx := context.Background()

	_, err := f.svc.OpenQuestion(ctx, 1, entities.CategorySweet)
	require.NoError(t, err)
	require.NoError(t, f.svc.SetLocale(2, "fr"))

	j, n := newJanitor(f, 3*time.Hour, time.Hour, 2*time.Hour)

	closed, evicted := j.Sweep(ctx)
	assert.Zero(t, closed)
	assert.Equal(t, 1, evicted)
	assert.Empty(t, n.calls)

	_, open := f.rooms.Current(1)
	assert.True(t, open, "rooms with an open question are never evicted")
	assert.Equal(t, "en", f.svc.RoomLocale(2), "evicted rooms fall back to the default locale")
}

func TestJanitorLeavesQuestionOpenWhenClosingFails(t *testing.T) {
	f := newGameFixture()
	ctx := context.Background()

	_, err := f.svc.OpenQuestion(ctx, 1, entities.CategorySweet)
	require.NoError(t, err)
	f.store.listErrs = []error{apperror.New(apperror.KindPermission, "list verdicts", errors.New("permission denied"))}

	j, n := newJanitor(f, time.Minute, time.Hour, time.Hour)

	closed, _ := j.Sweep(ctx)
	assert.Zero(t, closed)
	assert.Empty(t, n.calls)

	_, open := f.rooms.Current(1)
	require.True(t, open)

	// The next sweep succeeds.
	closed, _ = j.Sweep(ctx)
	assert.Equal(t, 1, closed)
}

func TestJanitorNotifyFailureStillCloses(t *testing.T) {
	f := newGameFixture()
	ctx := context.Background()

	_, err := f.svc.OpenQuestion(ctx, 1, entities.CategorySweet)
	require.NoError(t, err)

	j, n := newJanitor(f, time.Minute, time.Hour, time.Hour)
	n.err = errors.New("chat not found")

	closed, _ := j.Sweep(ctx)
	assert.Equal(t, 1, closed)
	assert.Len(t, n.calls, 1)
}

func TestJanitorStart(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	f := newGameFixture()
	j, _ := newJanitor(f, time.Minute, time.Hour, 0)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- j.Start(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("janitor did not stop")
	}
}

func TestJanitorStartInvalidSchedule(t *testing.T) {
	f := newGameFixture()
	j := NewRoomJanitor(f.svc, f.rooms, "every minute", time.Minute, time.Hour, zap.NewNop())

	err := j.Start(context.Background())
	assert.Error(t, err)
}
