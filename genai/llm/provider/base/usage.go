package base

// UsageListener is a callback used by provider clients to report token usage
// for each successful request.
type UsageListener func(provider, model string, tokens int)

// OnUsage invokes the listener when set and tokens are known.
func (f UsageListener) OnUsage(provider, model string, tokens int) {
	if f == nil || tokens <= 0 {
		return
	}
	f(provider, model, tokens)
}
