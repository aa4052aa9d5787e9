// Package usage accumulates token usage reported by provider clients.
package usage

import (
	"sort"
	"sync"
)

// Stat accumulates numbers for a single provider model.
type Stat struct {
	Provider string `json:"provider"`
	Model    string `json:"model"`
	Calls    int    `json:"calls"`
	Tokens   int    `json:"tokens"`
}

// Aggregator collects usage grouped by provider and model.
type Aggregator struct {
	mux   sync.RWMutex
	stats map[string]*Stat
}

// OnUsage satisfies the provider/base.UsageListener signature so that a method
// value can be passed directly to provider clients.
func (a *Aggregator) OnUsage(provider, model string, tokens int) {
	a.mux.Lock()
	defer a.mux.Unlock()
	if a.stats == nil {
		a.stats = map[string]*Stat{}
	}
	key := provider + "/" + model
	stat, ok := a.stats[key]
	if !ok {
		stat = &Stat{Provider: provider, Model: model}
		a.stats[key] = stat
	}
	stat.Calls++
	stat.Tokens += tokens
}

// Totals returns calls and tokens across all tracked models.
func (a *Aggregator) Totals() (calls, tokens int) {
	a.mux.RLock()
	defer a.mux.RUnlock()
	for _, stat := range a.stats {
		calls += stat.Calls
		tokens += stat.Tokens
	}
	return calls, tokens
}

// Stats returns a copy of every stat ordered by provider then model.
func (a *Aggregator) Stats() []Stat {
	a.mux.RLock()
	ret := make([]Stat, 0, len(a.stats))
	for _, stat := range a.stats {
		ret = append(ret, *stat)
	}
	a.mux.RUnlock()
	sort.Slice(ret, func(i, j int) bool {
		if ret[i].Provider != ret[j].Provider {
			return ret[i].Provider < ret[j].Provider
		}
		return ret[i].Model < ret[j].Model
	})
	return ret
}
