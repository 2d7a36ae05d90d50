// Package roomtest provides an in-memory fake of the room service for tests.
// It speaks the room API wire format but implements no game rules beyond
// alternating markers and rejecting occupied or out-of-range cells.
package roomtest

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"

	"github.com/mcoot/tictactoe-go/internal/middleware"
	"github.com/mcoot/tictactoe-go/internal/model"
	"github.com/mcoot/tictactoe-go/internal/roomapi"
)

// Route names, usable with FailNext, Hook and Requests
const (
	RouteCreate  = "create"
	RouteGet     = "get"
	RouteBoard   = "board"
	RouteMove    = "move"
	RouteRestart = "restart"
)

type room struct {
	id        string
	board     model.Board
	next      model.Marker
	createdAt time.Time
}

type failure struct {
	status  int
	message string
}

// Server is a fake room service
type Server struct {
	mu       sync.Mutex
	rooms    map[string]*room
	failures map[string][]failure
	hooks    map[string]func(*http.Request)
	requests map[string]int

	handler http.Handler
	// URL is set by Start
	URL string
	// Now stamps new rooms; replace it before the first request
	Now func() time.Time
}

// New creates a fake room service
func New(logger *slog.Logger) *Server {
	s := &Server{
		rooms:    make(map[string]*room),
		failures: make(map[string][]failure),
		hooks:    make(map[string]func(*http.Request)),
		requests: make(map[string]int),
		Now:      time.Now,
	}

	r := mux.NewRouter()
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(logger, roomapi.RequestIDHeader))

	sala := r.PathPrefix("/sala/{room}").Subrouter()
	sala.HandleFunc("", s.wrap(RouteCreate, s.create)).Methods(http.MethodPost)
	sala.HandleFunc("", s.wrap(RouteGet, s.get)).Methods(http.MethodGet)
	sala.HandleFunc("/tabuleiro", s.wrap(RouteBoard, s.board)).Methods(http.MethodGet)
	sala.HandleFunc("/jogar", s.wrap(RouteMove, s.move)).Methods(http.MethodPost)
	sala.HandleFunc("/reiniciar", s.wrap(RouteRestart, s.restart)).Methods(http.MethodPost)

	s.handler = r
	return s
}

// Start runs the fake behind an httptest server closed at test cleanup
func Start(t testing.TB, logger *slog.Logger) *Server {
	t.Helper()

	s := New(logger)
	ts := httptest.NewServer(s.handler)
	t.Cleanup(ts.Close)
	s.URL = ts.URL
	return s
}

// Handler returns the HTTP handler
func (s *Server) Handler() http.Handler {
	return s.handler
}

// FailNext makes the next request to route answer with status and
// {"error": message}. An empty message sends an empty JSON object instead.
// Calls queue up.
func (s *Server) FailNext(route string, status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[route] = append(s.failures[route], failure{status: status, message: message})
}

// Hook registers fn to run at the start of every request to route, before
// any state is read. Used to hold requests in flight.
func (s *Server) Hook(route string, fn func(*http.Request)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hooks[route] = fn
}

// Requests returns how many requests route has received
func (s *Server) Requests(route string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests[route]
}

// AddRoom creates a room directly, bypassing the API
func (s *Server) AddRoom(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rooms[id] = s.newRoom(id)
}

// SetBoard replaces a room's board, creating the room if needed
func (s *Server) SetBoard(id string, b model.Board) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rooms[id]
	if !ok {
		r = s.newRoom(id)
		s.rooms[id] = r
	}
	r.board = b
}

// Board returns a room's board and whether the room exists
func (s *Server) Board(id string) (model.Board, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rooms[id]
	if !ok {
		return model.Board{}, false
	}
	return r.board, true
}

func (s *Server) newRoom(id string) *room {
	return &room{
		id:        id,
		board:     model.NewBoard(),
		next:      model.X,
		createdAt: s.Now().UTC(),
	}
}

// wrap counts the request, runs hooks and injected failures
func (s *Server) wrap(route string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests[route]++
		hook := s.hooks[route]
		s.mu.Unlock()

		if hook != nil {
			hook(r)
		}

		s.mu.Lock()
		var f *failure
		if queued := s.failures[route]; len(queued) > 0 {
			f = &queued[0]
			s.failures[route] = queued[1:]
		}
		s.mu.Unlock()

		if f != nil {
			if f.message == "" {
				writeJSON(w, f.status, map[string]string{})
				return
			}
			writeError(w, f.status, f.message)
			return
		}

		next(w, r)
	}
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["room"]

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rooms[id]; ok {
		writeError(w, http.StatusConflict, "room already exists")
		return
	}
	rm := s.newRoom(id)
	s.rooms[id] = rm

	writeJSON(w, http.StatusCreated, roomResponse(rm, "room created"))
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["room"]

	s.mu.Lock()
	defer s.mu.Unlock()

	rm, ok := s.rooms[id]
	if !ok {
		writeError(w, http.StatusNotFound, "room not found")
		return
	}
	writeJSON(w, http.StatusOK, roomResponse(rm, ""))
}

func (s *Server) board(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["room"]

	s.mu.Lock()
	defer s.mu.Unlock()

	rm, ok := s.rooms[id]
	if !ok {
		writeError(w, http.StatusNotFound, "room not found")
		return
	}
	writeJSON(w, http.StatusOK, rm.board)
}

func (s *Server) move(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["room"]

	var req roomapi.MoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	pos := model.Position{Row: req.Row, Col: req.Col}

	s.mu.Lock()
	defer s.mu.Unlock()

	rm, ok := s.rooms[id]
	if !ok {
		writeError(w, http.StatusNotFound, "room not found")
		return
	}
	if !pos.IsValid() {
		writeError(w, http.StatusBadRequest, "invalid position")
		return
	}
	if !rm.board.Get(pos).IsEmpty() {
		writeError(w, http.StatusConflict, "cell occupied")
		return
	}

	mover := rm.next
	rm.board.Set(pos, mover)
	if mover == model.X {
		rm.next = model.O
	} else {
		rm.next = model.X
	}

	board := rm.board
	writeJSON(w, http.StatusOK, roomapi.MoveResult{
		Board:   &board,
		Message: "Player " + string(mover) + " moved",
	})
}

func (s *Server) restart(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["room"]

	s.mu.Lock()
	defer s.mu.Unlock()

	rm, ok := s.rooms[id]
	if !ok {
		writeError(w, http.StatusNotFound, "room not found")
		return
	}
	rm.board = model.NewBoard()
	rm.next = model.X

	writeJSON(w, http.StatusOK, roomapi.RestartResult{Message: "Game restarted"})
}

func roomResponse(rm *room, message string) roomapi.Room {
	return roomapi.Room{
		ID:        rm.id,
		CreatedAt: rm.createdAt.Format(time.RFC3339),
		Message:   message,
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
