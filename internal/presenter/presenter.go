// Package presenter holds the interactive state shared by front-ends: the
// topic input, generated content, trending suggestions and the loading and
// error flags of each operation.
package presenter

import (
	"context"
	"strings"
	"sync"

	"github.com/iconidentify/blogsmith/internal/domain"
)

// MsgEmptyTopic is shown when a blank topic is submitted.
const MsgEmptyTopic = "Please enter a topic."

// Gateway is the pair of operations the presenter drives.
type Gateway interface {
	CredentialConfigured() bool
	GenerateBlogPostContent(ctx context.Context, topic string) (*domain.GeneratedContent, error)
	GenerateTrendingTopics(ctx context.Context) (*domain.TrendingTopicsResult, error)
}

// State is a snapshot of the presentation state.
type State struct {
	Topic string

	Content        *domain.GeneratedContent
	ContentLoading bool
	ContentError   string

	Topics        []string
	Sources       []domain.GroundingChunk
	TopicsLoading bool
	TopicsError   string
}

// Presenter coordinates the two operations. Calls block until the gateway
// returns; front-ends run them on their own goroutines. When requests
// overlap, the last one to finish determines the state.
type Presenter struct {
	gw Gateway

	mu              sync.Mutex
	state           State
	contentInFlight int
	topicsInFlight  int
	onChange        func(State)
}

// New creates a presenter for gw.
func New(gw Gateway) *Presenter {
	return &Presenter{gw: gw}
}

// OnChange registers fn to receive a snapshot after every state change.
// fn is called without the presenter lock held.
func (p *Presenter) OnChange(fn func(State)) {
	p.mu.Lock()
	p.onChange = fn
	p.mu.Unlock()
}

// State returns a snapshot of the current state.
func (p *Presenter) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshotLocked()
}

func (p *Presenter) snapshotLocked() State {
	s := p.state
	s.Topics = append([]string(nil), p.state.Topics...)
	s.Sources = append([]domain.GroundingChunk(nil), p.state.Sources...)
	s.ContentLoading = p.contentInFlight > 0
	s.TopicsLoading = p.topicsInFlight > 0
	return s
}

// update applies fn under the lock and notifies the listener.
func (p *Presenter) update(fn func()) {
	p.mu.Lock()
	fn()
	snap := p.snapshotLocked()
	listener := p.onChange
	p.mu.Unlock()

	if listener != nil {
		listener(snap)
	}
}

// Mount fetches trending topics when a credential is configured and
// otherwise shows the missing-credential placeholder.
func (p *Presenter) Mount(ctx context.Context) {
	if p.gw.CredentialConfigured() {
		p.RefreshTopics(ctx)
		return
	}
	p.update(func() {
		p.state.Topics = []string{domain.PlaceholderMissingCredential}
		p.state.Sources = nil
	})
}

// RefreshTopics fetches trending topics.
func (p *Presenter) RefreshTopics(ctx context.Context) {
	p.update(func() {
		p.topicsInFlight++
		p.state.TopicsError = ""
		p.state.Topics = nil
		p.state.Sources = nil
	})

	result, err := p.gw.GenerateTrendingTopics(ctx)

	p.update(func() {
		p.topicsInFlight--
		if err != nil {
			p.state.TopicsError = err.Error()
			p.state.Topics = []string{domain.PlaceholderTopicsFailed}
			p.state.Sources = nil
			return
		}
		if len(result.Topics) > 0 {
			p.state.Topics = result.Topics
		} else {
			p.state.Topics = []string{domain.PlaceholderNoTopics}
		}
		p.state.Sources = result.Sources
	})
}

// SetTopic replaces the topic input.
func (p *Presenter) SetTopic(topic string) {
	p.update(func() { p.state.Topic = topic })
}

// Submit generates content for topic. A blank topic only sets the
// content error.
func (p *Presenter) Submit(ctx context.Context, topic string) {
	if strings.TrimSpace(topic) == "" {
		p.update(func() {
			p.state.Topic = topic
			p.state.ContentError = MsgEmptyTopic
		})
		return
	}

	p.update(func() {
		p.state.Topic = topic
		p.contentInFlight++
		p.state.ContentError = ""
		p.state.Content = nil
	})

	content, err := p.gw.GenerateBlogPostContent(ctx, topic)

	p.update(func() {
		p.contentInFlight--
		if err != nil {
			p.state.ContentError = err.Error()
			p.state.Content = nil
			return
		}
		p.state.Content = content
	})
}

// SelectTopic copies a suggestion into the topic input. Placeholder and
// error suggestions are ignored; the return value reports whether the
// topic was taken.
func (p *Presenter) SelectTopic(suggestion string) bool {
	if !IsSelectable(suggestion) {
		return false
	}
	p.SetTopic(suggestion)
	return true
}

// DismissContentError clears the content error.
func (p *Presenter) DismissContentError() {
	p.update(func() { p.state.ContentError = "" })
}

var placeholderMarkers = []string{
	"could not fetch",
	"failed to load",
	"api key not detected",
	"could not extract topic titles",
}

// IsSelectable reports whether a suggestion is a real topic rather than a
// built-in placeholder or error string.
func IsSelectable(suggestion string) bool {
	s := strings.ToLower(strings.TrimSpace(suggestion))
	if s == "" {
		return false
	}
	for _, m := range placeholderMarkers {
		if strings.Contains(s, m) {
			return false
		}
	}
	return true
}
