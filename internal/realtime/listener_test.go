package realtime

import "testing"

func TestSubscribeAndFanout(t *testing.T) {
	l := &Listener{subs: make(map[int]func()), done: make(chan struct{})}

	var first, second int
	idFirst := l.Subscribe(func() { first++ })
	l.Subscribe(func() { second++ })

	l.fanout()
	if first != 1 || second != 1 {
		t.Fatalf("after one signal: first=%d second=%d", first, second)
	}

	l.Unsubscribe(idFirst)
	l.fanout()
	if first != 1 {
		t.Errorf("unsubscribed callback still invoked: %d", first)
	}
	if second != 2 {
		t.Errorf("remaining callback not invoked: %d", second)
	}
}

func TestUnsubscribeUnknownID(t *testing.T) {
	l := &Listener{subs: make(map[int]func()), done: make(chan struct{})}
	l.Unsubscribe(42) // must not panic
	l.fanout()
}
