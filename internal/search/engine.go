package search

import (
	"context"
	"crypto/rand"
	"io"
	"log"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/oklog/ulid/v2"

	"github.com/aerosky/aerosky/internal/geo"
)

// minQueryRunes is the shortest query that triggers a suggestion fetch.
const minQueryRunes = 2

// Key identifies the keyboard events the engine reacts to.
type Key string

const (
	KeyArrowDown Key = "ArrowDown"
	KeyArrowUp   Key = "ArrowUp"
	KeyEnter     Key = "Enter"
	KeyEscape    Key = "Escape"
)

// Suggester is the place-search endpoint the engine queries.
type Suggester interface {
	SearchPlaces(ctx context.Context, query string, limit int, language string) ([]geo.PlaceSuggestion, error)
}

// Session is the live state of one autocomplete session. Selected is -1 when
// nothing is highlighted.
type Session struct {
	Query               string
	Suggestions         []geo.PlaceSuggestion
	Selected            int
	Loading             bool
	FetchingSuggestions bool
	Open                bool
}

// Options wires an Engine. Suggester and Sink are required; everything else
// has defaults.
type Options struct {
	Suggester Suggester
	Sink      Sink
	Scheduler Scheduler
	View      View
	Logger    *log.Logger

	Debounce     time.Duration // default 300ms
	Limit        int           // default 8
	Language     string        // default "fr"
	FetchTimeout time.Duration // default 10s
}

// Engine drives the search box: debounced suggestion fetches, keyboard
// navigation over the dropdown, and commit of either a picked place or the
// raw text. One engine serves one input; a mutex guards state because timer
// callbacks and suggestion responses arrive on their own goroutines.
type Engine struct {
	suggester Suggester
	sink      Sink
	scheduler Scheduler
	view      View
	logger    *log.Logger

	debounce     time.Duration
	limit        int
	language     string
	fetchTimeout time.Duration

	mu             sync.Mutex
	session        Session
	cancelDebounce CancelFunc
	entropy        io.Reader
	latest         ulid.ULID // token of the only fetch whose response counts
}

// NewEngine constructs an engine from opts, filling in defaults.
func NewEngine(opts Options) *Engine {
	if opts.Scheduler == nil {
		opts.Scheduler = NewTimerScheduler()
	}
	if opts.View == nil {
		opts.View = NopView{}
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Debounce <= 0 {
		opts.Debounce = 300 * time.Millisecond
	}
	if opts.Limit <= 0 {
		opts.Limit = 8
	}
	if opts.Language == "" {
		opts.Language = "fr"
	}
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = 10 * time.Second
	}
	return &Engine{
		suggester:    opts.Suggester,
		sink:         opts.Sink,
		scheduler:    opts.Scheduler,
		view:         opts.View,
		logger:       opts.Logger,
		debounce:     opts.Debounce,
		limit:        opts.Limit,
		language:     opts.Language,
		fetchTimeout: opts.FetchTimeout,
		session:      Session{Selected: -1},
		entropy:      ulid.Monotonic(rand.Reader, 0),
	}
}

// Session returns a snapshot of the current state.
func (e *Engine) Session() Session {
	e.mu.Lock()
	defer e.mu.Unlock()
	snap := e.session
	snap.Suggestions = append([]geo.PlaceSuggestion(nil), e.session.Suggestions...)
	return snap
}

// Input records the text after a keystroke. Each call restarts the debounce
// timer; only the text standing when the timer fires is fetched. Queries
// under two characters clear the dropdown immediately and never fetch.
func (e *Engine) Input(text string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.session.Query = text
	e.session.Selected = -1
	e.invalidateLocked()

	if utf8.RuneCountInString(text) < minQueryRunes {
		e.session.Suggestions = nil
		e.session.Open = false
		e.session.FetchingSuggestions = false
		return
	}

	query := text
	e.cancelDebounce = e.scheduler.Schedule(e.debounce, func() {
		e.fetchSuggestions(query)
	})
}

// fetchSuggestions queries the place-search endpoint. The token taken at
// start must still be the latest when the response lands, otherwise the
// response is stale and dropped.
func (e *Engine) fetchSuggestions(query string) {
	e.mu.Lock()
	token := ulid.MustNew(ulid.Now(), e.entropy)
	e.latest = token
	e.session.FetchingSuggestions = true
	e.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), e.fetchTimeout)
	defer cancel()
	results, err := e.suggester.SearchPlaces(ctx, query, e.limit, e.language)

	e.mu.Lock()
	defer e.mu.Unlock()
	if token != e.latest {
		return
	}
	e.session.FetchingSuggestions = false

	if err != nil {
		// Suggestions are a soft-fail affordance: log and degrade to none.
		e.logger.Printf("suggestion fetch %s failed: %v", token, err)
		e.session.Suggestions = nil
		e.session.Open = false
		return
	}
	if len(results) == 0 {
		e.session.Suggestions = nil
		e.session.Open = false
		return
	}

	e.session.Suggestions = results
	e.session.Open = true
	e.session.Selected = -1
}

// KeyDown handles a navigation key. Keys only act while the dropdown is open
// with a non-empty list; Enter then commits the highlighted suggestion or,
// with nothing highlighted, submits the raw text.
func (e *Engine) KeyDown(ctx context.Context, key Key) error {
	e.mu.Lock()
	if !e.session.Open || len(e.session.Suggestions) == 0 {
		e.mu.Unlock()
		return nil
	}

	switch key {
	case KeyArrowDown:
		if e.session.Selected < len(e.session.Suggestions)-1 {
			e.session.Selected++
			e.view.EnsureVisible(e.session.Selected)
		}
	case KeyArrowUp:
		if e.session.Selected > -1 {
			e.session.Selected--
			if e.session.Selected >= 0 {
				e.view.EnsureVisible(e.session.Selected)
			}
		}
	case KeyEnter:
		if e.session.Selected >= 0 {
			picked := e.session.Suggestions[e.session.Selected]
			e.mu.Unlock()
			return e.commitSuggestion(ctx, picked)
		}
		if strings.TrimSpace(e.session.Query) != "" {
			e.mu.Unlock()
			return e.Submit(ctx)
		}
	case KeyEscape:
		e.session.Open = false
		e.session.Selected = -1
		e.view.ReleaseFocus()
	}

	e.mu.Unlock()
	return nil
}

// Pick commits the suggestion at index, as a pointer click would.
func (e *Engine) Pick(ctx context.Context, index int) error {
	e.mu.Lock()
	if index < 0 || index >= len(e.session.Suggestions) {
		e.mu.Unlock()
		return nil
	}
	picked := e.session.Suggestions[index]
	e.mu.Unlock()
	return e.commitSuggestion(ctx, picked)
}

// commitSuggestion fills the input with the composite display name, closes
// the dropdown, and hands the structured place to the sink. The loading flag
// is released whatever the sink does.
func (e *Engine) commitSuggestion(ctx context.Context, s geo.PlaceSuggestion) error {
	e.mu.Lock()
	e.session.Query = s.DisplayName()
	e.session.Open = false
	e.session.Suggestions = nil
	e.session.Selected = -1
	e.invalidateLocked()
	e.session.Loading = true
	e.mu.Unlock()

	defer e.releaseLoading()
	return e.sink(ctx, ByPlace{
		CityName:  s.Name,
		Latitude:  s.Latitude,
		Longitude: s.Longitude,
	})
}

// Submit commits the raw trimmed text. Empty or whitespace-only input is a
// no-op. The input is cleared only when the sink succeeds; the loading flag
// is released regardless.
func (e *Engine) Submit(ctx context.Context) error {
	e.mu.Lock()
	query := strings.TrimSpace(e.session.Query)
	if query == "" {
		e.mu.Unlock()
		return nil
	}
	e.session.Open = false
	e.session.Selected = -1
	e.invalidateLocked()
	e.session.Loading = true
	e.mu.Unlock()

	defer e.releaseLoading()
	if err := e.sink(ctx, ByText{Text: query}); err != nil {
		return err
	}

	e.mu.Lock()
	e.session.Query = ""
	e.mu.Unlock()
	return nil
}

// Clear resets the whole session and puts focus back in the input.
func (e *Engine) Clear() {
	e.mu.Lock()
	e.session.Query = ""
	e.session.Suggestions = nil
	e.session.Open = false
	e.session.Selected = -1
	e.session.FetchingSuggestions = false
	e.invalidateLocked()
	e.mu.Unlock()
	e.view.RequestFocus()
}

// Focus reopens the dropdown when a long-enough query still has a retained
// suggestion list.
func (e *Engine) Focus() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if utf8.RuneCountInString(e.session.Query) >= minQueryRunes && len(e.session.Suggestions) > 0 {
		e.session.Open = true
	}
}

// ShowHint reports whether the idle hint should render: empty query, closed
// dropdown. Any typed text suppresses it.
func (e *Engine) ShowHint() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session.Query == "" && !e.session.Open
}

// invalidateLocked cancels a pending debounce and orphans any in-flight
// fetch so its response is discarded on arrival. Caller holds the mutex.
func (e *Engine) invalidateLocked() {
	if e.cancelDebounce != nil {
		e.cancelDebounce()
		e.cancelDebounce = nil
	}
	e.latest = ulid.ULID{}
}

func (e *Engine) releaseLoading() {
	e.mu.Lock()
	e.session.Loading = false
	e.mu.Unlock()
}
