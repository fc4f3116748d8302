package crawl_test

import (
	"fmt"
	"sync"
	"testing"

	helpdesk "github.com/DylanNgo1808/AI-Helpdesk"
	"github.com/DylanNgo1808/AI-Helpdesk/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrontier_PushPop(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(1000, 0.01)

	ok := f.Push(helpdesk.DiscoveredLink{
		URL:      "https://example.com/docs",
		Priority: helpdesk.PriorityContent,
	})
	assert.True(t, ok)
	assert.Equal(t, 1, f.Len())

	link, ok := f.Pop()
	require.True(t, ok)
	assert.Equal(t, "https://example.com/docs", link.URL)
	assert.Equal(t, 0, f.Len())
}

func TestFrontier_PopEmpty(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(1000, 0.01)

	_, ok := f.Pop()
	assert.False(t, ok)
}

func TestFrontier_DuplicatesRejected(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(1000, 0.01)

	link := helpdesk.DiscoveredLink{URL: "https://example.com/docs"}
	assert.True(t, f.Push(link))
	assert.False(t, f.Push(link))
	assert.Equal(t, 1, f.Len())
}

func TestFrontier_FragmentsStrippedForDedup(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(1000, 0.01)

	assert.True(t, f.Push(helpdesk.DiscoveredLink{URL: "https://example.com/docs#intro"}))
	assert.False(t, f.Push(helpdesk.DiscoveredLink{URL: "https://example.com/docs#usage"}))

	link, ok := f.Pop()
	require.True(t, ok)
	assert.Equal(t, "https://example.com/docs", link.URL)
}

func TestFrontier_PriorityOrdering(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(1000, 0.01)

	f.Push(helpdesk.DiscoveredLink{
		URL:      "https://example.com/page",
		Priority: helpdesk.PriorityContent,
	})
	f.Push(helpdesk.DiscoveredLink{
		URL:      "https://example.com/nav",
		Priority: helpdesk.PriorityNavigation,
	})

	first, ok := f.Pop()
	require.True(t, ok)
	assert.Equal(t, "https://example.com/nav", first.URL)

	second, ok := f.Pop()
	require.True(t, ok)
	assert.Equal(t, "https://example.com/page", second.URL)
}

func TestFrontier_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier(10000, 0.01)

	var wg sync.WaitGroup
	for i := range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range 100 {
				f.Push(helpdesk.DiscoveredLink{
					URL: fmt.Sprintf("https://example.com/%d/%d", i, j),
				})
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1000, f.Len())
}
