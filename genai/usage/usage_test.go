package usage

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAggregator(t *testing.T) {
	agg := &Aggregator{}
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			agg.OnUsage("openai", "gpt-3.5-turbo", 5)
		}()
	}
	wg.Wait()
	agg.OnUsage("gemini", "gemini-1.5-flash", 7)

	calls, tokens := agg.Totals()
	assert.EqualValues(t, 11, calls)
	assert.EqualValues(t, 57, tokens)
	assert.EqualValues(t, []Stat{
		{Provider: "gemini", Model: "gemini-1.5-flash", Calls: 1, Tokens: 7},
		{Provider: "openai", Model: "gpt-3.5-turbo", Calls: 10, Tokens: 50},
	}, agg.Stats())
}

func TestAggregator_Empty(t *testing.T) {
	agg := &Aggregator{}
	calls, tokens := agg.Totals()
	assert.Zero(t, calls)
	assert.Zero(t, tokens)
	assert.Empty(t, agg.Stats())
}
