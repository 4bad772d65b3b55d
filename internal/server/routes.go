package server

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	v1 "github.com/gosuda/estatehub/internal/api/v1"
	"github.com/gosuda/estatehub/internal/api/ws"
)

func registerAPIRoutes(api huma.API, d v1.Dispatcher) {
	v1.RegisterEstateRoutes(api, d)
	v1.RegisterMerchantRoutes(api, d)
	v1.RegisterOperatorRoutes(api, d)
	v1.RegisterContractRoutes(api, d)
	v1.RegisterAnalyticsRoutes(api, d)
}

func registerWSRoutes(r chi.Router, hub *ws.Hub) {
	r.Get("/estates/{estateID}", hub.ServeEstate)
}

// requestLogger writes one zerolog line per request.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		defer func() {
			log.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Int("bytes", ww.BytesWritten()).
				Dur("duration", time.Since(start)).
				Str("request_id", chimw.GetReqID(r.Context())).
				Msg("http request")
		}()

		next.ServeHTTP(ww, r)
	})
}
