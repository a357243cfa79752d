package server

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/DrmagicE/gcolor"
	"github.com/DrmagicE/gcolor/config"
	"github.com/DrmagicE/gcolor/pkg/packedcolor"
)

// ErrInvalidInput is the only error class reported for bad requests.
// Every error returned because of a participant, test, subject, color or n out of range wraps it.
var ErrInvalidInput = errors.New("invalid input")

// Cell addresses a single rating. All indices are 1-based.
type Cell struct {
	Participant int `json:"participant"`
	Test        int `json:"test"`
	Subject     int `json:"subject"`
}

// Ranking is a participant (1-based) with its weighted score.
type Ranking struct {
	Participant int `json:"participant"`
	Score       int `json:"score"`
}

// ColorService is the concurrency-safe request/response API over the packed store.
// All indices are 1-based. A request that fails validation returns an error wrapping ErrInvalidInput
// and does not modify the store.
type ColorService interface {
	// SetColor stores the color for the cell.
	SetColor(ctx context.Context, cell Cell, color gcolor.Color) error
	// GetColor returns the color stored for the cell.
	GetColor(ctx context.Context, cell Cell) (gcolor.Color, error)
	// Averages returns the mean color code of every cell, indexed [test-1][subject-1].
	Averages(ctx context.Context) ([][]float64, error)
	// TopByColor returns the first n participants, in ascending id order, holding color in the given cell.
	// n == 0 means the configured default.
	TopByColor(ctx context.Context, test, subject int, color gcolor.Color, n int) ([]int, error)
	// TopInTest returns the n best participants of the test by subject weighted score.
	TopInTest(ctx context.Context, test, n int) ([]Ranking, error)
	// TopOverall returns the n best participants by subject weighted score over all tests.
	TopOverall(ctx context.Context, n int) ([]Ranking, error)
	// Randomize refills every cell with random codes. seed == 0 means time seeded.
	Randomize(ctx context.Context, seed int64) error
	// Dimensions returns the shape of the store.
	Dimensions() packedcolor.Dimensions
	// ColorCounts returns how many cells hold each color.
	ColorCounts() [gcolor.NumColors]uint64
}

var _ ColorService = (*colorService)(nil)

type colorService struct {
	// mu guards store and counts. Writers take the write lock so readers never see a half written field.
	mu     sync.RWMutex
	store  *packedcolor.Store
	counts [gcolor.NumColors]uint64
	// notifyMu is taken before mu is released, so hooks observe writes in store order.
	// Hooks must not call SetColor or Randomize.
	notifyMu sync.Mutex
	query    config.Query
	stats    *statsManager
	hooks    *Hooks
}

func newColorService(store *packedcolor.Store, query config.Query, stats *statsManager, hooks *Hooks) *colorService {
	return &colorService{
		store:  store,
		counts: store.ColorCounts(),
		query:  query,
		stats:  stats,
		hooks:  hooks,
	}
}

func invalidArgument(name string, v, max int) error {
	return errors.Wrapf(ErrInvalidInput, "%s must be in [1,%d], got %d", name, max, v)
}

func (c *colorService) validateRange(name string, v, max int) error {
	if v < 1 || v > max {
		c.stats.invalidInput()
		return invalidArgument(name, v, max)
	}
	return nil
}

func (c *colorService) validateCell(cell Cell) error {
	d := c.store.Dimensions()
	if err := c.validateRange("participant", cell.Participant, d.NumUsers); err != nil {
		return err
	}
	if err := c.validateRange("test", cell.Test, d.NumTests); err != nil {
		return err
	}
	return c.validateRange("subject", cell.Subject, d.NumSubjects)
}

func (c *colorService) validateColor(color gcolor.Color) error {
	if !color.Valid() {
		c.stats.invalidInput()
		return errors.Wrapf(ErrInvalidInput, "color must be in [0,%d], got %d", gcolor.NumColors-1, color)
	}
	return nil
}

func (c *colorService) topN(n int) (int, error) {
	if n == 0 {
		return c.query.DefaultTopN, nil
	}
	if err := c.validateRange("n", n, c.query.MaxTopN); err != nil {
		return 0, err
	}
	return n, nil
}

func (c *colorService) SetColor(ctx context.Context, cell Cell, color gcolor.Color) error {
	if err := c.validateCell(cell); err != nil {
		return err
	}
	if err := c.validateColor(color); err != nil {
		return err
	}
	c.mu.Lock()
	u, t, s := cell.Participant-1, cell.Test-1, cell.Subject-1
	old := gcolor.Color(c.store.GetColor(u, t, s))
	c.store.SetColor(u, t, s, uint8(color))
	c.counts[old]--
	c.counts[color]++
	c.notifyMu.Lock()
	c.mu.Unlock()
	defer c.notifyMu.Unlock()

	c.stats.colorSet()
	if c.hooks.OnColorSet != nil {
		c.hooks.OnColorSet(ctx, cell, old, color)
	}
	return nil
}

func (c *colorService) GetColor(ctx context.Context, cell Cell) (gcolor.Color, error) {
	if err := c.validateCell(cell); err != nil {
		return 0, err
	}
	c.mu.RLock()
	code := c.store.GetColor(cell.Participant-1, cell.Test-1, cell.Subject-1)
	c.mu.RUnlock()
	c.stats.colorGot()
	return gcolor.Color(code), nil
}

func (c *colorService) Averages(ctx context.Context) ([][]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	c.stats.queried(queryAverages)
	return c.store.ComputeAverages(), nil
}

func (c *colorService) TopByColor(ctx context.Context, test, subject int, color gcolor.Color, n int) ([]int, error) {
	d := c.store.Dimensions()
	if err := c.validateRange("test", test, d.NumTests); err != nil {
		return nil, err
	}
	if err := c.validateRange("subject", subject, d.NumSubjects); err != nil {
		return nil, err
	}
	if err := c.validateColor(color); err != nil {
		return nil, err
	}
	n, err := c.topN(n)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.mu.RLock()
	users := c.store.TopNByColor(test-1, subject-1, uint8(color), n)
	c.mu.RUnlock()
	c.stats.queried(queryTopByColor)
	for i := range users {
		users[i]++
	}
	return users, nil
}

func (c *colorService) TopInTest(ctx context.Context, test, n int) ([]Ranking, error) {
	if err := c.validateRange("test", test, c.store.Dimensions().NumTests); err != nil {
		return nil, err
	}
	n, err := c.topN(n)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.mu.RLock()
	scores := c.store.TopNWeightedInTest(test-1, n)
	c.mu.RUnlock()
	c.stats.queried(queryTopInTest)
	return toRankings(scores), nil
}

func (c *colorService) TopOverall(ctx context.Context, n int) ([]Ranking, error) {
	n, err := c.topN(n)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.mu.RLock()
	scores := c.store.TopNWeightedOverall(n)
	c.mu.RUnlock()
	c.stats.queried(queryTopOverall)
	return toRankings(scores), nil
}

func (c *colorService) Randomize(ctx context.Context, seed int64) error {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	c.mu.Lock()
	c.store.Randomize(rand.New(rand.NewSource(seed)))
	c.counts = c.store.ColorCounts()
	c.notifyMu.Lock()
	c.mu.Unlock()
	defer c.notifyMu.Unlock()

	c.stats.randomized()
	if c.hooks.OnRandomized != nil {
		c.hooks.OnRandomized(ctx, seed)
	}
	return nil
}

func (c *colorService) Dimensions() packedcolor.Dimensions {
	return c.store.Dimensions()
}

// ColorCounts returns the counts maintained by SetColor and Randomize without scanning the store.
func (c *colorService) ColorCounts() [gcolor.NumColors]uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.counts
}

func toRankings(scores []packedcolor.UserScore) []Ranking {
	rs := make([]Ranking, len(scores))
	for i, v := range scores {
		rs[i] = Ranking{
			Participant: v.User + 1,
			Score:       v.Score,
		}
	}
	return rs
}

// NewColorService returns a standalone ColorService over store, without hooks.
func NewColorService(store *packedcolor.Store, query config.Query) ColorService {
	return newColorService(store, query, newStatsManager(), &Hooks{})
}
