package httpapi

import "net/http"

// NewMux wires every handler; main() wraps it in the middleware chain.
func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	rh := RecordsHandler{Tracker: d.Tracker, Hub: d.Hub, CfgVal: d.CfgVal}
	mux.HandleFunc("/records", methodMux(map[string]http.HandlerFunc{
		http.MethodGet:  rh.List,
		http.MethodPost: rh.Create,
	}))
	mux.HandleFunc("/records/", methodMux(map[string]http.HandlerFunc{
		http.MethodPut:    rh.UpdateByPath,  // /records/{id}
		http.MethodDelete: rh.DeleteByPath,  // /records/{id}
	}))
	mux.HandleFunc("/records/import", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: rh.Import,
	}))
	mux.HandleFunc("/records/export", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: rh.Export,
	}))
	mux.HandleFunc("/storage", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: rh.Storage,
	}))

	ch := ConfigHandler{
		CfgVal:      d.CfgVal,
		UserCfgPath: d.UserCfgPath,
		LoadCfg:     d.LoadCfg,
	}
	mux.HandleFunc("/config", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Get,
		http.MethodPut: ch.Put,
	}))
	mux.HandleFunc("/config/path", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Path,
	}))

	eh := EventsHandler{Hub: d.Hub}
	mux.HandleFunc("/events", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: eh.ServeSSE,
	}))

	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: HealthHandler{}.Health,
	}))

	return mux
}
