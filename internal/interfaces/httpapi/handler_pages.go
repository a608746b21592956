package httpapi

import (
	"context"
	"fmt"
	"html/template"
	"net/http"
	"strconv"

	sonic "github.com/bytedance/sonic"

	"github.com/matchboard/matchboard/internal/domain/event"
	"github.com/matchboard/matchboard/internal/domain/sport"
	"github.com/matchboard/matchboard/internal/prefs"
	"github.com/matchboard/matchboard/internal/usecase"
)

const profileCookie = "mb_profile"

type sportTab struct {
	Key      string `json:"key"`
	Name     string `json:"name"`
	Icon     string `json:"icon"`
	Selected bool   `json:"selected"`
}

type eventView struct {
	ID        string
	SportKey  string
	Status    string
	Live      bool
	DateLabel string
	Detail    string
	HasSides  bool
	HomeName  string
	HomeAbbr  string
	HomeScore string
	AwayName  string
	AwayAbbr  string
	AwayScore string
	Title     string
}

type homePageData struct {
	Title      string
	Sports     []sportTab
	Upcoming   []eventView
	Recent     []eventView
	EventsJSON template.JS
	ModalJSON  template.JS
}

type sportPageData struct {
	Title      string
	Sport      sport.Info
	Live       []eventView
	Upcoming   []eventView
	Recent     []eventView
	EventsJSON template.JS
}

func (h *Handler) HomePage(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.HomePage")
	defer span.End()

	profile := h.profileFor(r)
	selected := h.selectedSports(profile)

	timeline, err := h.timeline.Build(ctx, selected, profile.Favorites)
	if err != nil {
		h.logger.ErrorContext(ctx, "timeline build failed", "error", err)
		writeInternalError(ctx, w)
		return
	}

	eventsJSON, err := embedJSON(map[string]any{
		"upcoming": timeline.Upcoming,
		"recent":   timeline.Recent,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "encode events data failed", "error", err)
		writeInternalError(ctx, w)
		return
	}
	modalJSON, err := embedJSON(h.initialModal(ctx, timeline, profile.Favorites))
	if err != nil {
		h.logger.ErrorContext(ctx, "encode modal data failed", "error", err)
		writeInternalError(ctx, w)
		return
	}

	data := homePageData{
		Title:      "Matchboard",
		Sports:     h.sportTabs(profile),
		Upcoming:   toEventViews(timeline.Upcoming),
		Recent:     toEventViews(timeline.Recent),
		EventsJSON: eventsJSON,
		ModalJSON:  modalJSON,
	}
	if err := h.pages.Render(ctx, w, "index.html.tmpl", data); err != nil {
		h.logger.ErrorContext(ctx, "render home page failed", "error", err)
	}
}

func (h *Handler) SportPage(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SportPage")
	defer span.End()

	key, ok := h.sports.Parse(r.PathValue("sport"))
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: sport=%s", usecase.ErrUnsupportedSport, r.PathValue("sport")))
		return
	}
	info, _ := h.sports.Info(key)

	games, err := h.resolver.SportGames(ctx, string(key))
	if err != nil {
		h.logger.ErrorContext(ctx, "sport page fetch failed", "sport", string(key), "error", err)
		writeInternalError(ctx, w)
		return
	}

	eventsJSON, err := embedJSON(games)
	if err != nil {
		h.logger.ErrorContext(ctx, "encode events data failed", "error", err)
		writeInternalError(ctx, w)
		return
	}

	data := sportPageData{
		Title:      info.Name + " | Matchboard",
		Sport:      info,
		Live:       toEventViews(games.Live),
		Upcoming:   toEventViews(games.Upcoming),
		Recent:     toEventViews(games.Recent),
		EventsJSON: eventsJSON,
	}
	if err := h.pages.Render(ctx, w, "sport.html.tmpl", data); err != nil {
		h.logger.ErrorContext(ctx, "render sport page failed", "sport", string(key), "error", err)
	}
}

type settingsPageData struct {
	Title     string
	ProfileID string
	Sports    []sportTab
	Favorites []string
}

// SettingsPage renders sport selection and the favorites picker for the
// request's profile.
func (h *Handler) SettingsPage(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SettingsPage")
	defer span.End()

	profile := h.profileFor(r)
	data := settingsPageData{
		Title:     "Settings | Matchboard",
		ProfileID: profileID(r),
		Sports:    h.sportTabs(profile),
		Favorites: profile.Favorites,
	}
	if err := h.pages.Render(ctx, w, "settings.html.tmpl", data); err != nil {
		h.logger.ErrorContext(ctx, "render settings page failed", "error", err)
	}
}

type initialModal struct {
	Event  event.Event        `json:"event"`
	Bundle usecase.HeroBundle `json:"bundle"`
}

// initialModal pre-renders the hero bundle for the first timeline event
// so the page paints without an extra round trip. Nil when the timeline
// is empty or the bundle fails; the client then falls back to on-demand
// fetching.
func (h *Handler) initialModal(ctx context.Context, timeline usecase.Timeline, favorites []string) *initialModal {
	var first *event.Event
	switch {
	case len(timeline.Upcoming) > 0:
		first = &timeline.Upcoming[0]
	case len(timeline.Recent) > 0:
		first = &timeline.Recent[0]
	default:
		return nil
	}

	bundle, err := h.heroService.Bundle(ctx, *first, favorites)
	if err != nil {
		h.logger.WarnContext(ctx, "initial modal bundle failed", "event_id", first.ID, "error", err)
		return nil
	}
	return &initialModal{Event: *first, Bundle: bundle}
}

func (h *Handler) profileFor(r *http.Request) prefs.Profile {
	profile, err := h.prefsStore.Load(r.Context(), profileID(r))
	if err != nil {
		return prefs.DefaultProfile()
	}
	return profile
}

func profileID(r *http.Request) string {
	if cookie, err := r.Cookie(profileCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	return "default"
}

func (h *Handler) selectedSports(profile prefs.Profile) []string {
	out := make([]string, 0, len(profile.SelectedSports))
	for _, raw := range profile.SelectedSports {
		if key, ok := h.sports.Parse(raw); ok {
			out = append(out, string(key))
		}
	}
	if len(out) == 0 {
		for _, key := range h.sports.Keys() {
			out = append(out, string(key))
		}
	}
	return out
}

func (h *Handler) sportTabs(profile prefs.Profile) []sportTab {
	selected := make(map[string]bool, len(profile.SelectedSports))
	for _, s := range h.selectedSports(profile) {
		selected[s] = true
	}

	tabs := make([]sportTab, 0, len(h.sports.Keys()))
	for _, key := range h.sports.Keys() {
		info, _ := h.sports.Info(key)
		tabs = append(tabs, sportTab{
			Key:      string(key),
			Name:     info.Name,
			Icon:     info.Icon,
			Selected: selected[string(key)],
		})
	}
	return tabs
}

func toEventViews(events []event.Event) []eventView {
	out := make([]eventView, 0, len(events))
	for _, ev := range events {
		out = append(out, toEventView(ev))
	}
	return out
}

func toEventView(ev event.Event) eventView {
	view := eventView{
		ID:        ev.ID,
		SportKey:  ev.SportKey,
		Status:    string(ev.Status),
		Live:      ev.IsLive(),
		DateLabel: ev.Date.UTC().Format("Mon, Jan 2 3:04 PM"),
		Detail:    ev.Detail,
	}
	if ev.Home != nil && ev.Away != nil {
		view.HasSides = true
		view.HomeName = ev.Home.Name
		view.HomeAbbr = ev.Home.Abbreviation
		view.HomeScore = scoreLabel(ev.Home.Score)
		view.AwayName = ev.Away.Name
		view.AwayAbbr = ev.Away.Abbreviation
		view.AwayScore = scoreLabel(ev.Away.Score)
		view.Title = ev.Away.Name + " @ " + ev.Home.Name
	} else {
		view.Title = ev.Venue.Name
		if view.Title == "" {
			view.Title = ev.League.Name
		}
	}
	return view
}

func scoreLabel(score *int) string {
	if score == nil {
		return ""
	}
	return strconv.Itoa(*score)
}

// embedJSON serializes a value for inclusion inside a <script> block.
// ConfigStd escapes angle brackets the way encoding/json does, which is
// what makes the embed safe.
func embedJSON(value any) (template.JS, error) {
	raw, err := sonic.ConfigStd.Marshal(value)
	if err != nil {
		return "", err
	}
	return template.JS(raw), nil
}
