package sport

import "strings"

// Key identifies one of the supported sports.
type Key string

const (
	NFL      Key = "nfl"
	NHL      Key = "nhl"
	NBA      Key = "nba"
	MLB      Key = "mlb"
	Cricket  Key = "cricket"
	Formula1 Key = "formula1"
	Tennis   Key = "tennis"
	Golf     Key = "golf"
)

// ParticipantType describes what kind of competitor a sport has.
type ParticipantType string

const (
	ParticipantTeam   ParticipantType = "team"
	ParticipantDriver ParticipantType = "driver"
	ParticipantPlayer ParticipantType = "player"
)

// Info holds display metadata for a sport.
type Info struct {
	Key         Key
	Name        string
	Icon        string
	Participant ParticipantType
}

// Registry is an explicit, immutable-by-convention set of supported sports.
// It is constructed once and injected; nothing reads package-level state.
type Registry struct {
	order []Key
	byKey map[Key]Info
}

func NewRegistry(infos ...Info) *Registry {
	r := &Registry{byKey: make(map[Key]Info, len(infos))}
	for _, info := range infos {
		if _, ok := r.byKey[info.Key]; ok {
			continue
		}
		r.order = append(r.order, info.Key)
		r.byKey[info.Key] = info
	}
	return r
}

// DefaultRegistry returns the eight sports the dashboard ships with.
func DefaultRegistry() *Registry {
	return NewRegistry(
		Info{Key: NFL, Name: "NFL", Icon: "🏈", Participant: ParticipantTeam},
		Info{Key: NHL, Name: "NHL", Icon: "🏒", Participant: ParticipantTeam},
		Info{Key: NBA, Name: "NBA", Icon: "🏀", Participant: ParticipantTeam},
		Info{Key: MLB, Name: "MLB", Icon: "⚾", Participant: ParticipantTeam},
		Info{Key: Cricket, Name: "Cricket", Icon: "🏏", Participant: ParticipantTeam},
		Info{Key: Formula1, Name: "Formula 1", Icon: "🏎️", Participant: ParticipantDriver},
		Info{Key: Tennis, Name: "Tennis", Icon: "🎾", Participant: ParticipantPlayer},
		Info{Key: Golf, Name: "Golf", Icon: "⛳", Participant: ParticipantPlayer},
	)
}

func (r *Registry) Keys() []Key {
	out := make([]Key, len(r.order))
	copy(out, r.order)
	return out
}

func (r *Registry) Info(key Key) (Info, bool) {
	info, ok := r.byKey[key]
	return info, ok
}

func (r *Registry) Supported(key Key) bool {
	_, ok := r.byKey[key]
	return ok
}

// Parse normalizes a raw sport identifier to a registry key.
func (r *Registry) Parse(raw string) (Key, bool) {
	key := Key(strings.ToLower(strings.TrimSpace(raw)))
	if !r.Supported(key) {
		return "", false
	}
	return key, true
}
