package domain

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

type Span struct {
	Name    string    `json:"name"`
	startTs time.Time `json:"-"`

	Elapsed *int64 `json:"elapsedMs"`
}

type profileCtxKey struct{}

// Profile is simply a list of spans for one request
type Profile struct {
	mu      sync.Mutex
	Spans   []*Span `json:"spans"`
	startTs time.Time
	TotalMs *int64 `json:"totalMs"`
}

func NewProfile() (newProfile *Profile, endNewProfile func()) {
	newProfile = &Profile{
		Spans:   []*Span{},
		startTs: time.Now(),
	}

	return newProfile, newProfile.End
}

func (p *Profile) End() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.TotalMs == nil {
		t := time.Since(p.startTs).Milliseconds()
		p.TotalMs = &t
	}
	for _, s := range p.Spans {
		s.end()
	}
}

func (s *Span) end() {
	if s.Elapsed == nil {
		t := time.Since(s.startTs).Milliseconds()
		s.Elapsed = &t
	}
}

// StartNewSpan ends the last span and begins a new one
func (p *Profile) StartNewSpan(name string) (endSpan func()) {
	newSpan := &Span{
		Name:    name,
		startTs: time.Now(),
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.Spans) > 0 {
		p.Spans[len(p.Spans)-1].end()
	}
	p.Spans = append(p.Spans, newSpan)

	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		newSpan.end()
	}
}

func (p *Profile) ToJsonBytes() ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return json.Marshal(p.Spans)
}

func NewCtxWithProfile(ctx context.Context, p *Profile) context.Context {
	return context.WithValue(ctx, profileCtxKey{}, p)
}

// StartSpan begins a span on the profile carried by ctx. it is a
// no-op when the caller did not attach a profile
func StartSpan(ctx context.Context, name string) (endSpan func()) {
	p, ok := ctx.Value(profileCtxKey{}).(*Profile)
	if !ok || p == nil {
		return func() {}
	}
	return p.StartNewSpan(name)
}

func ProfileFromContext(ctx context.Context) (*Profile, bool) {
	p, ok := ctx.Value(profileCtxKey{}).(*Profile)
	return p, ok && p != nil
}
