package middleware

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"

	"minihotel/config"
	"minihotel/infras/otel"
	"minihotel/shared/cache"
	"minihotel/shared/constant"
	"minihotel/transport/http/response"
)

const (
	otelHTTPScopeName = "http"
	cacheKeyRateLimit = "limiter"
)

type AppMiddleware interface {
	Tracing(next http.Handler) http.Handler
	RateLimit(next http.Handler) http.Handler
}

type appMiddleware struct {
	otel   otel.Otel
	config *config.Config
	cache  cache.RedisCache
}

func NewAppMiddleware(otel otel.Otel, config *config.Config, cache cache.RedisCache) AppMiddleware {
	return &appMiddleware{
		otel:   otel,
		config: config,
		cache:  cache,
	}
}

func (a *appMiddleware) Tracing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		spanName := fmt.Sprintf("%s %s", request.Method, request.URL.Path)

		ctx, scope := a.otel.NewScope(request.Context(), otelHTTPScopeName, spanName)
		defer scope.End()

		scope.SetAttributes(map[string]any{
			"app.name":        a.config.App.Name,
			"http.path":       request.URL.Path,
			"http.method":     request.Method,
			"http.user_agent": request.Header.Get(constant.RequestHeaderUserAgent),
			"http.host":       request.Host,
			"http.source":     clientIP(request),
		})

		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

// RateLimit caps requests per client address inside a fixed window backed by
// redis. A cache outage fails open.
func (a *appMiddleware) RateLimit(next http.Handler) http.Handler {
	if !a.config.App.RateLimiter.Enable {
		return next
	}

	maxReqs := a.config.App.RateLimiter.MaxRequests
	windowSecs := a.config.App.RateLimiter.WindowSeconds

	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		cacheKey := cache.BuildCacheKey(cacheKeyRateLimit, clientIP(request))

		var count int

		err := a.cache.Get(request.Context(), cacheKey, &count)
		if err != nil {
			if !errors.Is(err, cache.Nil) {
				next.ServeHTTP(writer, request)

				return
			}

			count = 0
		}

		count++

		if count > maxReqs {
			response.WithRequestLimitExceeded(writer)

			return
		}

		if err = a.cache.Save(request.Context(), cacheKey, count, windowSecs); err != nil {
			next.ServeHTTP(writer, request)

			return
		}

		writer.Header().Set(constant.RequestHeaderRateLimit, strconv.Itoa(maxReqs))
		writer.Header().Set(constant.RequestHeaderRateLimitRemaining, strconv.Itoa(max(0, maxReqs-count)))
		writer.Header().Set(constant.RequestHeaderRateLimitWindow, strconv.Itoa(windowSecs))

		next.ServeHTTP(writer, request)
	})
}

func clientIP(request *http.Request) string {
	if forwarded := request.Header.Get(constant.RequestHeaderForwardedFor); forwarded != "" {
		return forwarded
	}

	if realIP := request.Header.Get(constant.RequestHeaderRealIP); realIP != "" {
		return realIP
	}

	host, _, err := net.SplitHostPort(request.RemoteAddr)
	if err != nil {
		return request.RemoteAddr
	}

	return host
}
