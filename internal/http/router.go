package httpserver

import "net/http"

// Routes groups handlers.
type Routes struct {
	GPSStream http.HandlerFunc
	Latest    http.HandlerFunc
	Health    http.HandlerFunc
	Metrics   http.Handler
}

// NewRouter registers endpoints.
func NewRouter(routes Routes) http.Handler {
	mux := http.NewServeMux()
	if routes.GPSStream != nil {
		mux.Handle("/ws/gps", method(http.MethodGet, routes.GPSStream))
	}
	if routes.Latest != nil {
		mux.Handle("/gps/latest", method(http.MethodGet, routes.Latest))
	}
	if routes.Health != nil {
		mux.Handle("/health", method(http.MethodGet, routes.Health))
	}
	if routes.Metrics != nil {
		mux.Handle("/metrics", routes.Metrics)
	}
	return mux
}

func method(expected string, handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != expected {
			w.Header().Set("Allow", expected)
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		handler(w, r)
	}
}
