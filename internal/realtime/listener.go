// Package realtime carries the change-notification feed: a Postgres
// LISTEN/NOTIFY channel fired by a trigger on the transactions table, fanned
// out to in-process subscribers and connected WebSocket clients. The signal
// carries no payload; subscribers react by re-reading the transaction log.
package realtime

import (
	"sync"
	"time"

	"github.com/lib/pq"
	log "github.com/sirupsen/logrus"
)

// Channel is the NOTIFY channel installed by the migration trigger.
const Channel = "transactions_changed"

// Listener wraps a pq.Listener and invokes every subscriber on each
// notification. A reconnect also fans out once, because writes committed while
// the connection was down would otherwise be missed; the only guarantee is
// that at least one refresh eventually follows any committed write.
type Listener struct {
	pl *pq.Listener

	mu   sync.Mutex
	subs map[int]func()
	next int

	done chan struct{}
}

func NewListener(dsn string) (*Listener, error) {
	l := &Listener{
		subs: make(map[int]func()),
		done: make(chan struct{}),
	}

	l.pl = pq.NewListener(dsn, 2*time.Second, time.Minute, func(event pq.ListenerEventType, err error) {
		if err != nil {
			log.Warnf("realtime listener event %d: %v", event, err)
		}
	})
	if err := l.pl.Listen(Channel); err != nil {
		l.pl.Close()
		return nil, err
	}

	go l.run()
	return l, nil
}

func (l *Listener) run() {
	for {
		select {
		case n, ok := <-l.pl.Notify:
			if !ok {
				return
			}
			// A nil notification means the underlying connection was
			// re-established; treat it as a change signal.
			if n == nil {
				log.Debug("realtime listener reconnected, forcing refresh")
			}
			l.fanout()
		case <-l.done:
			return
		}
	}
}

func (l *Listener) fanout() {
	l.mu.Lock()
	fns := make([]func(), 0, len(l.subs))
	for _, fn := range l.subs {
		fns = append(fns, fn)
	}
	l.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// Subscribe registers fn to run on every change signal and returns a handle
// for Unsubscribe.
func (l *Listener) Subscribe(fn func()) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	id := l.next
	l.next++
	l.subs[id] = fn
	return id
}

func (l *Listener) Unsubscribe(id int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.subs, id)
}

// Close tears the feed down. Safe to call once, typically deferred from main.
func (l *Listener) Close() error {
	close(l.done)
	return l.pl.Close()
}
