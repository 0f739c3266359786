package middleware

import (
    "bytes"
    "context"
    "crypto/sha1"
    "encoding/binary"
    "encoding/json"
    "fmt"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"
    "go.uber.org/zap"

    "github.com/iliyamo/hotel-front-desk/internal/config"
)

// captureWriter captures response body/status while forwarding to the client.
type captureWriter struct {
    http.ResponseWriter
    status int
    buf    bytes.Buffer
    size   int64
    limit  int64
}
func (cw *captureWriter) WriteHeader(code int) { cw.status = code; cw.ResponseWriter.WriteHeader(code) }

// Write forwards b and keeps at most limit bytes; size counts everything.
func (cw *captureWriter) Write(b []byte) (int, error) {
    if cw.limit <= 0 {
        cw.buf.Write(b)
    } else if remain := cw.limit - int64(cw.buf.Len()); remain > 0 {
        if int64(len(b)) <= remain {
            cw.buf.Write(b)
        } else {
            cw.buf.Write(b[:remain])
        }
    }
    cw.size += int64(len(b))
    return cw.ResponseWriter.Write(b)
}

// cacheKeyFrom builds a stable cache key honoring prefix/strategy.  gen is
// the current cache generation; bumping it orphans every older entry.
func cacheKeyFrom(cfg config.CacheConfig, gen string, c echo.Context) string {
    r := c.Request()
    method := r.Method
    // the concrete path, not the route pattern: /v1/rooms/1 and /v1/rooms/2 differ
    route := r.URL.Path
    query := r.URL.RawQuery

    parts := []string{cfg.Prefix}
    switch strings.ToLower(cfg.KeyStrategy) {
    case "route":
        parts = append(parts, "route", route)
    case "method_route":
        parts = append(parts, "method", method, "route", route)
    case "method_route_query":
        parts = append(parts, "method", method, "route", route, "q", query)
    default: // "route_query"
        parts = append(parts, "route", route, "q", query)
    }

    tail := strings.Join(parts[1:], ":")
    sum := sha1.Sum([]byte(tail))
    return fmt.Sprintf("%s:%s:%x", parts[0], gen, sum[:])
}

// encodePayload packs: [4 bytes status][4 bytes headerLen][headerJSON][body]
func encodePayload(status int, header http.Header, body []byte) ([]byte, error) {
    hdrJSON, err := json.Marshal(header)
    if err != nil {
        return nil, err
    }
    total := 4 + 4 + len(hdrJSON) + len(body)
    out := make([]byte, total)
    binary.BigEndian.PutUint32(out[0:4], uint32(status))
    binary.BigEndian.PutUint32(out[4:8], uint32(len(hdrJSON)))
    copy(out[8:8+len(hdrJSON)], hdrJSON)
    copy(out[8+len(hdrJSON):], body)
    return out, nil
}

func decodePayload(bs []byte) (status int, header http.Header, body []byte, ok bool) {
    if len(bs) < 8 {
        return 0, nil, nil, false
    }
    status = int(binary.BigEndian.Uint32(bs[0:4]))
    hlen := int(binary.BigEndian.Uint32(bs[4:8]))
    if 8+hlen > len(bs) || hlen < 0 {
        return 0, nil, nil, false
    }
    var hdr http.Header
    if hlen > 0 {
        if err := json.Unmarshal(bs[8:8+hlen], &hdr); err != nil {
            return 0, nil, nil, false
        }
    } else {
        hdr = make(http.Header)
    }
    body = bs[8+hlen:]
    return status, hdr, body, true
}

// Cache is a Redis response cache for GET endpoints.  It stores headers
// and body so clients see identical formatting on a hit.  Entries are
// namespaced by a generation counter kept in Redis; InvalidateOnWrite bumps
// the counter after every successful write so a desk list never shows a
// room or reservation status older than the last change.
type Cache struct {
    cfg config.CacheConfig
    rdb *redis.Client
    log *zap.Logger
}

// NewCache returns a Cache.  With caching disabled or no Redis client its
// middlewares pass requests straight through.
func NewCache(cfg config.CacheConfig, rdb *redis.Client, log *zap.Logger) *Cache {
    return &Cache{cfg: cfg, rdb: rdb, log: log}
}

func (rc *Cache) enabled() bool { return rc.cfg.Enabled && rc.rdb != nil }

func (rc *Cache) genKey() string { return rc.cfg.Prefix + ":gen" }

// generation returns the current generation, "0" before the first write.
func (rc *Cache) generation(ctx context.Context) string {
    g, err := rc.rdb.Get(ctx, rc.genKey()).Result()
    if err != nil {
        return "0"
    }
    return g
}

// Invalidate bumps the generation.
func (rc *Cache) Invalidate(ctx context.Context) error {
    if !rc.enabled() {
        return nil
    }
    return rc.rdb.Incr(ctx, rc.genKey()).Err()
}

func passThrough(next echo.HandlerFunc) echo.HandlerFunc { return next }

// Middleware serves cached responses and stores fresh 200 responses.
func (rc *Cache) Middleware() echo.MiddlewareFunc {
    if !rc.enabled() {
        return passThrough
    }
    cfg := rc.cfg
    ttl := cfg.TTL
    if ttl <= 0 { ttl = 5 * time.Minute } // sane default longer TTL

    maxBody := int64(cfg.MaxBodyBytes)

    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            if !cfg.Cacheable(c.Request().Method) {
                return next(c)
            }

            ctx := c.Request().Context()
            key := cacheKeyFrom(cfg, rc.generation(ctx), c)

            if bs, err := rc.rdb.Get(ctx, key).Bytes(); err == nil && len(bs) >= 8 {
                if status, hdr, body, ok := decodePayload(bs); ok {
                    for k, vals := range hdr {
                        // skip Content-Length (Echo will handle)
                        if strings.EqualFold(k, "Content-Length") { continue }
                        for _, v := range vals {
                            c.Response().Header().Add(k, v)
                        }
                    }
                    c.Response().Header().Set("X-Cache", "HIT")
                    c.Response().WriteHeader(status)
                    if len(body) > 0 {
                        _, _ = c.Response().Write(body)
                    }
                    return nil
                }
            }

            // Miss: capture
            cw := &captureWriter{ResponseWriter: c.Response().Writer, status: http.StatusOK, limit: maxBody}
            c.Response().Writer = cw
            c.Response().Header().Set("X-Cache", "MISS")

            if err := next(c); err != nil {
                return err
            }

            // a truncated body must never be served from cache
            if cw.status == http.StatusOK && (maxBody <= 0 || cw.size <= maxBody) {
                hdr := make(http.Header, len(c.Response().Header()))
                for k, vals := range c.Response().Header() {
                    if strings.EqualFold(k, "X-Cache") { continue }
                    hdr[k] = append([]string(nil), vals...)
                }
                if payload, err := encodePayload(cw.status, hdr, cw.buf.Bytes()); err == nil {
                    if err := rc.rdb.SetEx(context.Background(), key, payload, ttl).Err(); err != nil {
                        rc.log.Debug("cache store failed", zap.String("key", key), zap.Error(err))
                    }
                }
            }
            return nil
        }
    }
}

// InvalidateOnWrite bumps the generation after every successful request
// whose method is not cached.
func (rc *Cache) InvalidateOnWrite() echo.MiddlewareFunc {
    if !rc.enabled() {
        return passThrough
    }
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            err := next(c)
            if rc.cfg.Cacheable(c.Request().Method) {
                return err
            }
            if err == nil && c.Response().Status < http.StatusBadRequest {
                if ierr := rc.Invalidate(context.Background()); ierr != nil {
                    rc.log.Warn("cache invalidation failed", zap.Error(ierr))
                }
            }
            return err
        }
    }
}
