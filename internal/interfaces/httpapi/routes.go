package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerAPIRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /api/hero-data", handler.HeroData)
	mux.HandleFunc("POST /api/resolve-image", handler.ResolveImage)
	mux.HandleFunc("POST /api/standings", handler.Standings)
	mux.HandleFunc("GET /api/suggestions/{sport}", handler.Suggestions)
	mux.HandleFunc("GET /api/cache", handler.CacheInfo)
	mux.HandleFunc("DELETE /api/cache", handler.ClearCache)
	mux.HandleFunc("GET /api/preferences/{profileID}", handler.GetPreferences)
	mux.HandleFunc("PUT /api/preferences/{profileID}", handler.PutPreferences)
}

func registerPageRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /{$}", handler.HomePage)
	mux.HandleFunc("GET /sport/{sport}", handler.SportPage)
	mux.HandleFunc("GET /settings", handler.SettingsPage)
	mux.Handle("GET /static/", handler.StaticAssets())
}
