package client_test

import (
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/adamwoolhether/firework/client"
)

func TestSerialQueue_Order(t *testing.T) {
	q := client.NewSerialQueue()

	var (
		mu  sync.Mutex
		got []int
	)
	for i := range 100 {
		q.Dispatch(func() {
			mu.Lock()
			got = append(got, i)
			mu.Unlock()
		})
	}
	q.Close()

	exp := make([]int, 100)
	for i := range exp {
		exp[i] = i
	}

	mu.Lock()
	defer mu.Unlock()
	if diff := cmp.Diff(exp, got); diff != "" {
		t.Errorf("dispatch order mismatch (-want +got):\n%s", diff)
	}
}

func TestSerialQueue_DispatchAfterClose(t *testing.T) {
	q := client.NewSerialQueue()
	q.Close()
	q.Close()

	ran := false
	q.Dispatch(func() { ran = true })

	if !ran {
		t.Error("exp work dispatched after Close to run inline")
	}
}

func TestQueues(t *testing.T) {
	testCases := map[string]client.Queue{
		"immediate": client.Immediate,
		"async":     client.Async,
		"func": client.QueueFunc(func(fn func()) {
			go fn()
		}),
	}

	for name, q := range testCases {
		t.Run(name, func(t *testing.T) {
			done := make(chan struct{})
			q.Dispatch(func() { close(done) })
			<-done
		})
	}
}
