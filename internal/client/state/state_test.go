package state

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/moviedeck/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu     sync.Mutex
	states []Status
}

func (r *recorder) record(s RequestState[int]) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s.Status == Success && s.Err != nil {
		panic("success carrying an error")
	}
	r.states = append(r.states, s.Status)
}

func (r *recorder) seen() []Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Status(nil), r.states...)
}

func TestContainer_SuccessThenConsume(t *testing.T) {
	c := New[int]("list")
	rec := &recorder{}
	c.Subscribe(rec.record)

	assert.Equal(t, Idle, c.State().Status)

	st := c.Run(context.Background(), func(context.Context) (int, error) { return 42, nil })
	assert.Equal(t, Success, st.Status)
	assert.Equal(t, 42, st.Value)
	assert.Equal(t, st, c.State())

	got := c.Consume()
	assert.Equal(t, 42, got.Value)
	assert.Equal(t, Idle, c.State().Status)

	again := c.Consume()
	assert.Equal(t, Idle, again.Status)

	assert.Equal(t, []Status{Loading, Success, Idle}, rec.seen())
}

func TestContainer_ErrorCarriesKindAndMessage(t *testing.T) {
	c := New[int]("get", WithMessages(func(err error) string {
		if common.KindOf(err) == common.KindNotFound {
			return "movie not found"
		}
		return "something went wrong"
	}))

	cause := common.E(common.KindNotFound, "GetMovie", nil)
	st := c.Run(context.Background(), func(context.Context) (int, error) { return 0, cause })

	assert.Equal(t, Error, st.Status)
	assert.Equal(t, common.KindNotFound, st.Kind)
	assert.Equal(t, "movie not found", st.Message)
	assert.ErrorIs(t, st.Err, common.ErrNotFound)
	assert.Zero(t, st.Value)

	c.Reset()
	assert.Equal(t, RequestState[int]{}, c.State())
}

func TestContainer_DefaultMessageIsErrorText(t *testing.T) {
	c := New[int]("x")
	st := c.Run(context.Background(), func(context.Context) (int, error) { return 0, errors.New("boom") })
	assert.Equal(t, "boom", st.Message)
	assert.Equal(t, common.KindUnknown, st.Kind)
}

func TestContainer_ConcurrentRunsShareOneCall(t *testing.T) {
	c := New[int]("favorites")
	rec := &recorder{}
	c.Subscribe(rec.record)

	release := make(chan struct{})
	var calls int32
	op := func(context.Context) (int, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return 7, nil
	}

	var wg sync.WaitGroup
	results := make([]RequestState[int], 5)
	wg.Add(1)
	go func() {
		defer wg.Done()
		results[0] = c.Run(context.Background(), op)
	}()
	require.Eventually(t, func() bool { return c.State().Status == Loading }, time.Second, time.Millisecond)

	for i := 1; i < len(results); i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = c.Run(context.Background(), op)
		}(i)
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	for _, r := range results {
		assert.Equal(t, RequestState[int]{Status: Success, Value: 7}, r)
	}
	assert.Equal(t, []Status{Loading, Success}, rec.seen())
}

func TestContainer_ResetDropsLateResult(t *testing.T) {
	c := New[int]("search")
	rec := &recorder{}
	c.Subscribe(rec.record)

	release := make(chan struct{})
	done := make(chan RequestState[int])
	go func() {
		done <- c.Run(context.Background(), func(context.Context) (int, error) {
			<-release
			return 1, nil
		})
	}()
	require.Eventually(t, func() bool { return len(rec.seen()) == 1 }, time.Second, time.Millisecond)

	c.Reset()
	close(release)
	<-done

	assert.Equal(t, Idle, c.State().Status)
	assert.Equal(t, []Status{Loading, Idle}, rec.seen())
}

func TestContainer_RunAfterResetIsNotJoinedToStaleCall(t *testing.T) {
	c := New[int]("search")

	releaseOld := make(chan struct{})
	oldDone := make(chan struct{})
	go func() {
		defer close(oldDone)
		c.Run(context.Background(), func(context.Context) (int, error) {
			<-releaseOld
			return 1, nil
		})
	}()
	require.Eventually(t, func() bool { return c.State().Status == Loading }, time.Second, time.Millisecond)
	c.Reset()

	var newCalls int32
	fresh := make(chan RequestState[int])
	go func() {
		fresh <- c.Run(context.Background(), func(context.Context) (int, error) {
			atomic.AddInt32(&newCalls, 1)
			return 2, nil
		})
	}()
	st := <-fresh
	close(releaseOld)
	<-oldDone

	assert.Equal(t, int32(1), atomic.LoadInt32(&newCalls))
	assert.Equal(t, 2, st.Value)
	assert.Equal(t, RequestState[int]{Status: Success, Value: 2}, c.State())
}

func TestContainer_Unsubscribe(t *testing.T) {
	c := New[int]("x")
	rec := &recorder{}
	unsubscribe := c.Subscribe(rec.record)
	unsubscribe()

	c.Run(context.Background(), func(context.Context) (int, error) { return 1, nil })
	assert.Empty(t, rec.seen())
}

func TestContainer_NeverSuccessAndErrorTogether(t *testing.T) {
	c := New[int]("x")
	for i := 0; i < 50; i++ {
		i := i
		st := c.Run(context.Background(), func(context.Context) (int, error) {
			if i%2 == 0 {
				return i, nil
			}
			return 0, errors.New("odd")
		})
		switch st.Status {
		case Success:
			assert.NoError(t, st.Err)
			assert.Empty(t, st.Message)
		case Error:
			assert.Error(t, st.Err)
			assert.Zero(t, st.Value)
		default:
			t.Fatalf("non-terminal state %s after Run", st.Status)
		}
		c.Consume()
	}
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "loading", Loading.String())
	assert.Equal(t, "success", Success.String())
	assert.Equal(t, "error", Error.String())
}
