// Package viewmodel exposes the services to front ends as observable state
// snapshots. Each view model keeps one state value, replaces it after every
// operation and pushes the new snapshot to its subscribers.
package viewmodel

import (
	"sync"

	"github.com/msomdec/edunova/internal/observe"
)

// MsgMissingToken is reported when an operation needs a session and none exists.
const MsgMissingToken = "Token d'authentification manquant"

type binding[S any] struct {
	mu    sync.Mutex
	state S
	feed  observe.Feed[S]
}

func (b *binding[S]) snapshot() S {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// update applies fn under the lock and publishes the result outside it, so
// subscribers may call back into the view model.
func (b *binding[S]) update(fn func(*S)) {
	b.mu.Lock()
	fn(&b.state)
	s := b.state
	b.mu.Unlock()
	b.feed.Publish(s)
}

func (b *binding[S]) subscribe(fn func(S)) (unsubscribe func()) {
	return b.feed.Subscribe(fn)
}
