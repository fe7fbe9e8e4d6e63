package router

import (
	"log"
	"net/http"
	"strings"
	"time"
)

// --- ANSI color codes ---
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorCyan   = "\033[36m"
)

type HandlerFunc func(http.ResponseWriter, *http.Request)

type route struct {
	method   string
	segments []string
	handler  HandlerFunc
}

// Router is a small method-aware dispatcher over http.ServeMux with '*'
// path segments. Routes are matched in registration order, so narrower
// patterns must be registered before wider ones.
type Router struct {
	mux    *http.ServeMux
	routes []route
}

func New() *Router {
	r := &Router{mux: http.NewServeMux()}

	r.mux.HandleFunc("/", func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		lrw := &loggingResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		if handler, pathKnown := r.match(req.Method, req.URL.Path); handler != nil {
			handler(lrw, req)
		} else if pathKnown {
			http.Error(lrw, "Method Not Allowed", http.StatusMethodNotAllowed)
		} else {
			http.Error(lrw, "Not Found", http.StatusNotFound)
		}

		duration := time.Since(start)
		log.Printf("%s[%s]%s %s%s%s %s %s%d%s %s(%v)%s",
			colorCyan, start.Format("2006-01-02 15:04:05"), colorReset,
			methodColor(req.Method), req.Method, colorReset,
			req.URL.Path,
			statusColor(lrw.statusCode), lrw.statusCode, colorReset,
			colorBlue, duration, colorReset,
		)
	})

	return r
}

// match finds the first registered route for the request. pathKnown is true
// when some route matches the path with a different method.
func (r *Router) match(method, path string) (handler HandlerFunc, pathKnown bool) {
	segments := splitPath(path)
	for _, rt := range r.routes {
		if !segmentsMatch(segments, rt.segments) {
			continue
		}
		if rt.method == method {
			return rt.handler, true
		}
		pathKnown = true
	}
	return nil, pathKnown
}

func splitPath(p string) []string {
	return strings.Split(strings.Trim(p, "/"), "/")
}

// segmentsMatch compares a request path against a route pattern. '*'
// matches exactly one segment; a trailing '*' matches one or more.
func segmentsMatch(path, pattern []string) bool {
	trailing := len(pattern) > 0 && pattern[len(pattern)-1] == "*"
	if trailing {
		if len(path) < len(pattern) {
			return false
		}
	} else if len(path) != len(pattern) {
		return false
	}

	for i, seg := range pattern {
		if seg == "*" {
			continue
		}
		if path[i] != seg {
			return false
		}
	}
	return true
}

// --- Register paths ---
func (r *Router) register(method, path string, handler HandlerFunc) {
	r.routes = append(r.routes, route{
		method:   method,
		segments: splitPath(path),
		handler:  handler,
	})
}

func (r *Router) GET(path string, handler HandlerFunc)   { r.register(http.MethodGet, path, handler) }
func (r *Router) POST(path string, handler HandlerFunc)  { r.register(http.MethodPost, path, handler) }
func (r *Router) PUT(path string, handler HandlerFunc)   { r.register(http.MethodPut, path, handler) }
func (r *Router) PATCH(path string, handler HandlerFunc) { r.register(http.MethodPatch, path, handler) }
func (r *Router) DELETE(path string, handler HandlerFunc) {
	r.register(http.MethodDelete, path, handler)
}

// Handler exposes the underlying mux, mainly for httptest servers.
func (r *Router) Handler() http.Handler {
	return r.mux
}

// --- Start server ---
func (r *Router) Start(addr string) {
	log.Printf("🚀 Server started on %shttp://localhost%s%s", colorGreen, addr, colorReset)
	log.Fatal(http.ListenAndServe(addr, r.mux))
}

// --- Logging response writer to capture status codes ---
type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

// --- Color helpers ---
func statusColor(code int) string {
	switch {
	case code >= 200 && code < 300:
		return colorGreen
	case code >= 300 && code < 400:
		return colorCyan
	case code >= 400 && code < 500:
		return colorYellow
	default:
		return colorRed
	}
}

func methodColor(method string) string {
	switch method {
	case http.MethodGet:
		return colorGreen
	case http.MethodPost:
		return colorBlue
	case http.MethodPut, http.MethodPatch:
		return colorYellow
	case http.MethodDelete:
		return colorRed
	default:
		return colorCyan
	}
}
