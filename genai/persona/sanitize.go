package persona

import (
	"regexp"
	"strings"
)

var (
	scriptBlock   = regexp.MustCompile(`(?is)<script\b.*?</script>`)
	scriptScheme  = regexp.MustCompile(`(?i)javascript:`)
	eventHandlers = regexp.MustCompile(`(?i)on\w+\s*=`)
)

// Sanitize removes script blocks, javascript: schemes and inline event
// handler attributes, then trims surrounding whitespace.
func Sanitize(text string) string {
	text = scriptBlock.ReplaceAllString(text, "")
	text = scriptScheme.ReplaceAllString(text, "")
	text = eventHandlers.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}
