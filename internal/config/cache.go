package config

import (
    "os"
    "strconv"
    "strings"
    "time"
)

// CacheConfig controls the Redis response cache in front of the desk's GET
// endpoints.  Entries live for TTL at most; any successful write bumps the
// cache generation, so TTL only bounds memory, not staleness.
//
//   CACHE_ENABLED         "true" (default) or "false"
//   CACHE_METHODS         comma separated methods to cache (default GET)
//   CACHE_TTL             entry lifetime (default 60s)
//   CACHE_KEY_STRATEGY    route | method_route | route_query | method_route_query
//   CACHE_PREFIX          key namespace (default frontdesk:cache)
//   CACHE_MAX_BODY_BYTES  larger responses are not stored (default 1 MiB)
type CacheConfig struct {
    Enabled      bool
    Methods      map[string]bool
    TTL          time.Duration
    KeyStrategy  string
    Prefix       string
    MaxBodyBytes int
}

func LoadCacheConfig() CacheConfig {
    return CacheConfig{
        Enabled:      envBool("CACHE_ENABLED", true),
        Methods:      parseMethods(getenv("CACHE_METHODS", "GET")),
        TTL:          envDur("CACHE_TTL", time.Minute),
        KeyStrategy:  getenv("CACHE_KEY_STRATEGY", "route_query"),
        Prefix:       getenv("CACHE_PREFIX", "frontdesk:cache"),
        MaxBodyBytes: atoi(getenv("CACHE_MAX_BODY_BYTES", "1048576")),
    }
}

// Cacheable reports whether responses to method are cached.
func (c CacheConfig) Cacheable(method string) bool { return c.Methods[strings.ToUpper(method)] }

func parseMethods(s string) map[string]bool {
    m := map[string]bool{}
    for _, p := range strings.Split(s, ",") {
        p = strings.TrimSpace(strings.ToUpper(p))
        if p != "" {
            m[p] = true
        }
    }
    return m
}

func getenv(key, def string) string {
    if v := os.Getenv(key); v != "" {
        return v
    }
    return def
}

func atoi(s string) int {
    i, _ := strconv.Atoi(s)
    return i
}
