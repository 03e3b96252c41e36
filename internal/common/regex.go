package common

import (
	"regexp"
	"strings"
	"sync"
)

var (
	regexCache   = make(map[string]*regexp.Regexp)
	regexCacheMu sync.RWMutex
)

// CompileInsensitive compiles a case-insensitive regex, caching the result
// per pattern. An invalid pattern returns nil; rule evaluation treats nil
// as "never matches" rather than an error, so one bad user-authored regex
// cannot abort a batch.
func CompileInsensitive(pattern string) *regexp.Regexp {
	if !strings.HasPrefix(pattern, "(?i)") {
		pattern = "(?i)" + pattern
	}

	regexCacheMu.RLock()
	re, ok := regexCache[pattern]
	regexCacheMu.RUnlock()
	if ok {
		return re
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		re = nil
	}

	regexCacheMu.Lock()
	regexCache[pattern] = re
	regexCacheMu.Unlock()

	return re
}
