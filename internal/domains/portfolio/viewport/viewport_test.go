package viewport_test

import (
	"nest/internal/domains/portfolio/viewport"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScrollDispatch(t *testing.T) {
	vp := viewport.New()

	var first, second float64

	subA := vp.Subscribe(func(y float64) { first = y })
	vp.Subscribe(func(y float64) { second = y })

	vp.Scroll(120)

	assert.InDelta(t, 120, first, 0)
	assert.InDelta(t, 120, second, 0)
	assert.InDelta(t, 120, vp.ScrollY(), 0)

	subA.Unsubscribe()
	vp.Scroll(10)

	assert.InDelta(t, 120, first, 0)
	assert.InDelta(t, 10, second, 0)
}

func TestUnsubscribeIdempotent(t *testing.T) {
	vp := viewport.New()

	sub := vp.Subscribe(func(float64) {})
	other := vp.Subscribe(func(float64) {})
	assert.Equal(t, 2, vp.Listeners())

	sub.Unsubscribe()
	sub.Unsubscribe()
	assert.Equal(t, 1, vp.Listeners())

	other.Unsubscribe()
	assert.Equal(t, 0, vp.Listeners())
}

func TestListenerMayUnsubscribeItself(t *testing.T) {
	vp := viewport.New()

	var calls int

	var sub *viewport.Subscription
	sub = vp.Subscribe(func(float64) {
		calls++
		sub.Unsubscribe()
	})

	vp.Scroll(1)
	vp.Scroll(2)

	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, vp.Listeners())
}

func TestConcurrentScroll(t *testing.T) {
	vp := viewport.New()

	var count atomic.Int64

	vp.Subscribe(func(float64) { count.Add(1) })

	var wg sync.WaitGroup

	for i := range 50 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			sub := vp.Subscribe(func(float64) {})
			vp.Scroll(float64(i))
			sub.Unsubscribe()
		}()
	}

	wg.Wait()

	assert.Equal(t, int64(50), count.Load())
	assert.Equal(t, 1, vp.Listeners())
}
