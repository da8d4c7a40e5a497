package repository

import (
	"context"
	"time"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

// changeChannel is the NOTIFY channel fired by row triggers on the loans and
// reserves tables; the payload is the table name.
const changeChannel = "loanboard_changes"

// ChangeListener delivers store change notifications so callers can re-fetch
// and recompute. It carries no schedule state of its own.
type ChangeListener struct {
	listener *pq.Listener
	log      *logrus.Logger
}

// NewChangeListener connects a LISTEN session on the change channel.
func NewChangeListener(conninfo string, log *logrus.Logger) (*ChangeListener, error) {
	l := pq.NewListener(conninfo, 10*time.Second, time.Minute, func(ev pq.ListenerEventType, err error) {
		if err != nil {
			log.Errorf("change listener event %d: %v", ev, err)
		}
	})
	if err := l.Listen(changeChannel); err != nil {
		l.Close()
		return nil, err
	}
	return &ChangeListener{listener: l, log: log}, nil
}

// Run forwards notifications to fn until ctx is cancelled. The payload is the
// table that changed ("loans" or "reserves"); a reconnect delivers an empty
// payload, which callers should treat as "anything may have changed".
func (c *ChangeListener) Run(ctx context.Context, fn func(table string)) {
	ping := time.NewTicker(90 * time.Second)
	defer ping.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case n := <-c.listener.Notify:
			if n == nil {
				// Connection was re-established; notifications may be lost.
				fn("")
				continue
			}
			fn(n.Extra)
		case <-ping.C:
			if err := c.listener.Ping(); err != nil {
				c.log.Errorf("change listener ping: %v", err)
			}
		}
	}
}

// Close tears down the LISTEN session.
func (c *ChangeListener) Close() error {
	return c.listener.Close()
}
