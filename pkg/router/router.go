package router

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/cors"
	"github.com/wechest/backend/config"
	"github.com/wechest/backend/pkg/logger"
	"github.com/wechest/backend/pkg/xcontext"
	"gorm.io/gorm"
)

// HandlerFunc is a typed endpoint handler. The router binds the query string
// (GET) or JSON body (POST) into Request and serializes Response as JSON.
type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)

// MiddlewareFunc runs before the handler. It may derive a new context. A
// non-nil error stops the chain and is written as the response.
type MiddlewareFunc func(ctx context.Context) (context.Context, error)

// CloserFunc runs after the response has been written, successful or not.
type CloserFunc func(ctx context.Context)

type Router struct {
	routes map[string]map[string]http.HandlerFunc

	cfg    config.Configs
	log    logger.Logger
	db     *gorm.DB
	static http.Handler

	befores []MiddlewareFunc
	afters  []MiddlewareFunc
	closers []CloserFunc
}

func New(db *gorm.DB, cfg config.Configs, log logger.Logger) *Router {
	return &Router{
		routes: make(map[string]map[string]http.HandlerFunc),
		cfg:    cfg,
		log:    log,
		db:     db,
	}
}

// Branch returns a router sharing the same route table but with an
// independent middleware chain, seeded from the current one.
func (r *Router) Branch() *Router {
	branch := *r
	branch.befores = append([]MiddlewareFunc{}, r.befores...)
	branch.afters = append([]MiddlewareFunc{}, r.afters...)
	branch.closers = append([]CloserFunc{}, r.closers...)
	return &branch
}

func (r *Router) Before(m MiddlewareFunc) {
	r.befores = append(r.befores, m)
}

func (r *Router) After(m MiddlewareFunc) {
	r.afters = append(r.afters, m)
}

func (r *Router) AddCloser(c CloserFunc) {
	r.closers = append(r.closers, c)
}

func (r *Router) Static(root string) {
	r.static = http.FileServer(http.Dir(root))
}

func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	register(r, http.MethodGet, pattern, handler)
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	register(r, http.MethodPost, pattern, handler)
}

func register[Request, Response any](
	r *Router, method, pattern string, handler HandlerFunc[Request, Response],
) {
	// Snapshot the middleware chain; Before/After calls made after
	// registration do not apply retroactively.
	befores := append([]MiddlewareFunc{}, r.befores...)
	afters := append([]MiddlewareFunc{}, r.afters...)
	closers := append([]CloserFunc{}, r.closers...)

	if r.routes[pattern] == nil {
		r.routes[pattern] = make(map[string]http.HandlerFunc)
	}

	r.routes[pattern][method] = func(w http.ResponseWriter, req *http.Request) {
		ctx := req.Context()
		ctx = xcontext.WithConfigs(ctx, r.cfg)
		ctx = xcontext.WithLogger(ctx, r.log)
		if r.db != nil {
			ctx = xcontext.WithDB(ctx, r.db)
		}
		ctx = xcontext.WithHTTPRequest(ctx, req)
		ctx = xcontext.WithHTTPWriter(ctx, w)
		ctx = xcontext.WithStartTime(ctx, time.Now())
		ctx = xcontext.WithRequestOutcome(ctx)

		defer func() {
			for _, closer := range closers {
				closer(ctx)
			}
		}()

		for _, m := range befores {
			newCtx, err := m(ctx)
			if err != nil {
				// A middleware that already wrote the response records its
				// own outcome; keep it.
				if xcontext.Error(ctx) == nil {
					xcontext.SetError(ctx, err)
				}
				writeError(w, err)
				return
			}
			ctx = newCtx
		}

		var request Request
		if err := bindRequest(req, method, &request); err != nil {
			xcontext.Logger(ctx).Debugf("Cannot bind the request: %v", err)
			errx := errorxBadRequest()
			xcontext.SetError(ctx, errx)
			writeError(w, errx)
			return
		}

		resp, err := handler(ctx, &request)
		if err != nil {
			xcontext.SetError(ctx, err)
			writeError(w, err)
			return
		}

		xcontext.SetResponse(ctx, resp)

		for _, m := range afters {
			newCtx, err := m(ctx)
			if err != nil {
				xcontext.SetError(ctx, err)
				writeError(w, err)
				return
			}
			ctx = newCtx
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

// Handler builds the http.Handler serving all registered routes, wrapped with
// the CORS policy from the configuration. Unlisted origins receive no
// Access-Control-Allow-Origin header.
func (r *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	for pattern, methods := range r.routes {
		methods := methods
		mux.HandleFunc(pattern, func(w http.ResponseWriter, req *http.Request) {
			if handle, ok := methods[req.Method]; ok {
				handle(w, req)
				return
			}

			writeJSON(w, http.StatusMethodNotAllowed, errorBody{
				Success: false,
				Error:   "Method not allowed",
			})
		})
	}

	if r.static != nil {
		mux.Handle("/", r.static)
	}

	c := cors.New(cors.Options{
		AllowedOrigins: r.cfg.ApiServer.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	})

	return c.Handler(mux)
}
