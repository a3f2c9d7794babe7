// Package server exposes the rules engine over HTTP. The engine itself is
// single-threaded; the server serializes access to each run with a mutex.
package server

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/mux"

	"github.com/samdwyer/delvecore/internal/game"
	"github.com/samdwyer/delvecore/internal/gamedata"
	"github.com/samdwyer/delvecore/internal/id"
	"github.com/samdwyer/delvecore/internal/item"
	"github.com/samdwyer/delvecore/internal/store"
)

// Server hosts dungeon runs in memory and persists snapshots to the store.
type Server struct {
	router *mux.Router
	store  *store.Store
	ids    id.Generator

	enemies *gamedata.EnemyRegistry
	items   *gamedata.ItemRegistry
	sets    *gamedata.SetRegistry

	mu   sync.Mutex
	runs map[string]*game.Dungeon
}

// New creates a server. The store may be nil; saving is then disabled.
func New(st *store.Store, ids id.Generator) *Server {
	s := &Server{
		router:  mux.NewRouter(),
		store:   st,
		ids:     ids,
		enemies: gamedata.MustLoadEnemyRegistry(),
		items:   gamedata.MustLoadItemRegistry(),
		sets:    gamedata.MustLoadSetRegistry(),
		runs:    make(map[string]*game.Dungeon),
	}
	s.setupRoutes()
	return s
}

// Handler returns the HTTP handler for the server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupRoutes() {
	s.router.Use(corsMiddleware([]string{"*"}))

	s.router.HandleFunc("/health", s.handleHealth).Methods("GET", "OPTIONS")

	api := s.router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/runs", s.handleNewRun).Methods("POST", "OPTIONS")
	api.HandleFunc("/runs/{id}", s.handleGetRun).Methods("GET", "OPTIONS")
	api.HandleFunc("/runs/{id}/move", s.handleMove).Methods("POST", "OPTIONS")
	api.HandleFunc("/runs/{id}/resolve", s.handleResolve).Methods("POST", "OPTIONS")
	api.HandleFunc("/runs/{id}/inventory", s.handleInventory).Methods("GET", "OPTIONS")
	api.HandleFunc("/runs/{id}/auto-equip", s.handleAutoEquip).Methods("POST", "OPTIONS")
	api.HandleFunc("/runs/{id}/save", s.handleSave).Methods("POST", "OPTIONS")
}

// corsMiddleware allows browser clients to call the API.
func corsMiddleware(allowedOrigins []string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			allowed := false
			for _, o := range allowedOrigins {
				if o == "*" || o == origin {
					allowed = true
					break
				}
			}
			if allowed {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (s *Server) run(r *http.Request) *game.Dungeon {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runs[mux.Vars(r)["id"]]
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// resultJSON is the wire form of a game.Result.
type resultJSON struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Reward  *rewardJSON  `json:"reward,omitempty"`
	Damage  []damageJSON `json:"damage,omitempty"`
}

type rewardJSON struct {
	Gold       int           `json:"gold,omitempty"`
	Items      []item.Record `json:"items,omitempty"`
	Experience int           `json:"experience,omitempty"`
}

type damageJSON struct {
	Hero   string `json:"hero"`
	Damage int    `json:"damage"`
}

func toResultJSON(res game.Result) resultJSON {
	out := resultJSON{Success: res.Success, Message: res.Message}
	if res.Reward != nil {
		reward := &rewardJSON{
			Gold:       res.Reward.Gold,
			Experience: res.Reward.Experience,
		}
		for _, it := range res.Reward.Items {
			reward.Items = append(reward.Items, it.Record())
		}
		out.Reward = reward
	}
	for _, d := range res.Damage {
		out.Damage = append(out.Damage, damageJSON{Hero: d.Hero.GetName(), Damage: d.Damage})
	}
	return out
}
