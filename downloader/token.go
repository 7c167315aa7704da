package downloader

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/streambinder/mediadownloader/entity"
)

// Token is the cancellation handle of a single download job
type Token struct {
	ID     uuid.UUID
	Kind   entity.Kind
	ctx    context.Context
	cancel context.CancelFunc
}

func (token *Token) Context() context.Context {
	return token.ctx
}

func (token *Token) Cancel() {
	token.cancel()
}

func (token *Token) Cancelled() bool {
	return token.ctx.Err() != nil
}

// Session keeps track of the running jobs, so that
// they can be cancelled by kind
type Session struct {
	lock   sync.Mutex
	tokens map[uuid.UUID]*Token
}

func NewSession() *Session {
	return &Session{tokens: make(map[uuid.UUID]*Token)}
}

// Start registers a fresh token: cancellations requested
// before this call never affect it
func (session *Session) Start(ctx context.Context, kind entity.Kind) *Token {
	ctx, cancel := context.WithCancel(ctx)
	token := &Token{uuid.New(), kind, ctx, cancel}

	session.lock.Lock()
	defer session.lock.Unlock()
	session.tokens[token.ID] = token
	return token
}

// Stop releases the token resources and forgets it
func (session *Session) Stop(token *Token) {
	session.lock.Lock()
	delete(session.tokens, token.ID)
	session.lock.Unlock()
	token.cancel()
}

// CancelKind cancels every running job of the given kind
// and returns how many were hit
func (session *Session) CancelKind(kind entity.Kind) int {
	session.lock.Lock()
	defer session.lock.Unlock()

	var count int
	for _, token := range session.tokens {
		if token.Kind == kind {
			token.Cancel()
			count++
		}
	}
	return count
}

func (session *Session) CancelAll() int {
	return session.CancelKind(entity.Audio) + session.CancelKind(entity.Video)
}

func (session *Session) Running(kind entity.Kind) int {
	session.lock.Lock()
	defer session.lock.Unlock()

	var count int
	for _, token := range session.tokens {
		if token.Kind == kind && !token.Cancelled() {
			count++
		}
	}
	return count
}
