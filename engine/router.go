package engine

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
)

// Handler is a route handler. Returning a Response rather than writing to the
// ResponseWriter keeps error handling uniform across modules.
type Handler func(*http.Request, httprouter.Params) Response

type Router struct {
	router *httprouter.Router
}

// NewRouter builds a router. notFound is optional.
func NewRouter(notFound http.Handler) *Router {
	r := httprouter.New()
	if notFound != nil {
		r.NotFound = notFound
	}
	return &Router{router: r}
}

// Serve wires up the stdlib http server to the engine.
func (r *Router) Serve(addr string) Proc {
	return func(ctx context.Context) error {
		svr := &http.Server{Handler: r, Addr: addr}
		go func() {
			<-ctx.Done()
			slog.Warn("gracefully shutting down http server...")
			svr.Shutdown(context.Background())
		}()
		if err := svr.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		slog.Info("the http server has shut down")
		return nil
	}
}

func (r *Router) ServeHTTP(w http.ResponseWriter, rr *http.Request) { r.router.ServeHTTP(w, rr) }

func (r *Router) Handle(method, path string, fn Handler) {
	r.router.Handle(method, path, func(w http.ResponseWriter, req *http.Request, ps httprouter.Params) {
		start := time.Now()
		status := fn(req, ps).write(w)
		slog.Info("http request", "url", req.URL.Path, "method", req.Method, "userAgent", req.UserAgent(), "latencyMS", time.Since(start).Milliseconds(), "status", status)
	})
}

// HandleFunc registers a plain http handler, e.g. for probes.
func (r *Router) HandleFunc(method, path string, fn http.HandlerFunc) {
	r.router.HandlerFunc(method, path, fn)
}
