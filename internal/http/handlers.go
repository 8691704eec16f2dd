package http

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/urban-bracket/internal/apperr"
	"github.com/mauv0809/urban-bracket/internal/arena"
	"github.com/mauv0809/urban-bracket/internal/pubsub"
	"golang.org/x/sync/errgroup"
)

// membershipRequest is the JSON body for the join and leave endpoints.
type membershipRequest struct {
	UserID    string `json:"userID"`
	BracketID string `json:"bracketID"`
}

// writeError maps a classified error onto an HTTP status. Internal
// detail stays out of the response body.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch apperr.KindOf(err) {
	case apperr.KindNotFound:
		status = http.StatusNotFound
	case apperr.KindForbidden:
		status = http.StatusForbidden
	case apperr.KindConflict:
		status = http.StatusConflict
	case apperr.KindBadRequest:
		status = http.StatusBadRequest
	}
	http.Error(w, apperr.Message(err), status)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to encode response", "error", err)
	}
}

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

func (s *Server) ClearStoreHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.URL.Query().Get("userID")
		if userID != "" {
			log.Info("Received request to clear a specific user", "userID", userID)
			s.Store.ClearUser(userID)
			w.WriteHeader(http.StatusOK)
			fmt.Fprintf(w, "Cleared user %s from store!", userID)
			log.Info("Successfully cleared user from store", "userID", userID)
		} else {
			log.Info("Received request to clear entire store")
			s.Store.Clear()
			w.WriteHeader(http.StatusOK)
			fmt.Fprint(w, "Store cleared!")
			log.Info("Store cleared successfully")
		}
	}
}

// UsersHandler serves the user collection: GET lists every user, POST
// creates or renames one.
func (s *Server) UsersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			users, err := s.Store.ListUsers()
			if err != nil {
				log.Error("Failed to list users", "error", err)
				writeError(w, apperr.Internal("list users", err))
				return
			}
			writeJSON(w, http.StatusOK, users)
		case http.MethodPost:
			var req struct {
				UserID string `json:"userID"`
				Name   string `json:"name"`
			}
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				writeError(w, apperr.BadRequest("invalid JSON body"))
				return
			}
			if req.UserID == "" || req.Name == "" {
				writeError(w, apperr.BadRequest("userID and name are required"))
				return
			}
			created, err := s.Store.UpsertUser(req.UserID, req.Name)
			if err != nil {
				log.Error("Failed to upsert user", "userID", req.UserID, "error", err)
				writeError(w, apperr.Internal("upsert user", err))
				return
			}
			status := http.StatusOK
			if created {
				status = http.StatusCreated
			}
			writeJSON(w, status, map[string]any{"id": req.UserID, "created": created})
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

// GetUserHandler aggregates the user record with their player records
// and queue entries across all brackets. The three reads run in
// parallel.
func (s *Server) GetUserHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.URL.Query().Get("userID")
		if userID == "" {
			writeError(w, apperr.BadRequest("userID is required"))
			return
		}

		var (
			user    *arena.User
			players []arena.Player
			entries []arena.QueueEntry
		)
		g, _ := errgroup.WithContext(r.Context())
		g.Go(func() error {
			var err error
			user, err = s.Store.GetUser(userID)
			return err
		})
		g.Go(func() error {
			var err error
			players, err = s.Store.PlayersForUser(userID)
			return err
		})
		g.Go(func() error {
			var err error
			entries, err = s.Store.EntriesForUser(userID)
			return err
		})
		if err := g.Wait(); err != nil {
			log.Error("Failed to load user profile", "userID", userID, "error", err)
			writeError(w, apperr.Internal("load user profile", err))
			return
		}

		if user == nil {
			writeError(w, apperr.NotFound("user does not exist"))
			return
		}

		writeJSON(w, http.StatusOK, arena.UserProfile{
			User:    *user,
			Players: players,
			Queues:  entries,
		})
	}
}

func (s *Server) ListBracketsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		brackets, err := s.Brackets.List()
		if err != nil {
			log.Error("Failed to list brackets", "error", err)
			writeError(w, apperr.Internal("list brackets", err))
			return
		}
		writeJSON(w, http.StatusOK, brackets)
	}
}

func (s *Server) JoinQueueHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req membershipRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, apperr.BadRequest("invalid JSON body"))
			return
		}
		if req.UserID == "" || req.BracketID == "" {
			writeError(w, apperr.BadRequest("userID and bracketID are required"))
			return
		}

		result, err := s.Queue.Join(r.Context(), req.UserID, req.BracketID)
		if err != nil {
			log.Warn("Join rejected", "userID", req.UserID, "bracketID", req.BracketID, "error", err)
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, result)
	}
}

func (s *Server) LeaveQueueHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req membershipRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, apperr.BadRequest("invalid JSON body"))
			return
		}
		if req.UserID == "" || req.BracketID == "" {
			writeError(w, apperr.BadRequest("userID and bracketID are required"))
			return
		}

		result, err := s.Queue.Leave(r.Context(), req.UserID, req.BracketID)
		if err != nil {
			log.Warn("Leave rejected", "userID", req.UserID, "bracketID", req.BracketID, "error", err)
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}

// decodePushMessage unwraps a Pub/Sub push delivery: outer JSON
// wrapper, base64 payload, MessagePack-encoded event.
func (s *Server) decodePushMessage(r *http.Request, event *pubsub.QueueEvent) error {
	bodyBytes, err := io.ReadAll(r.Body)
	if err != nil {
		return apperr.Internal("read request body", err)
	}
	log.Debug("Received push message", "body", string(bodyBytes))

	var pubsubMsg struct {
		Subscription string `json:"subscription"`
		Message      struct {
			Data string `json:"data"` // base64-encoded message payload
		} `json:"message"`
	}
	if err := json.Unmarshal(bodyBytes, &pubsubMsg); err != nil {
		return apperr.BadRequest("invalid JSON")
	}
	rawData, err := base64.StdEncoding.DecodeString(pubsubMsg.Message.Data)
	if err != nil {
		return apperr.BadRequest("invalid base64 data")
	}
	if err := s.pubsub.ProcessMessage(rawData, event); err != nil {
		return apperr.BadRequest("invalid message payload")
	}
	return nil
}

func (s *Server) NotifyQueueJoinedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var event pubsub.QueueEvent
		if err := s.decodePushMessage(r, &event); err != nil {
			log.Error("Failed to decode queue-joined message", "error", err)
			writeError(w, err)
			return
		}
		isDryRun := isDryRunFromContext(r)
		if err := s.Notifier.SendQueueJoined(event, isDryRun); err != nil {
			log.Error("Failed to notify queue joined", "error", err)
			http.Error(w, "Failed to notify queue joined", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}
}

func (s *Server) NotifyQueueLeftHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var event pubsub.QueueEvent
		if err := s.decodePushMessage(r, &event); err != nil {
			log.Error("Failed to decode queue-left message", "error", err)
			writeError(w, err)
			return
		}
		isDryRun := isDryRunFromContext(r)
		if err := s.Notifier.SendQueueLeft(event, isDryRun); err != nil {
			log.Error("Failed to notify queue left", "error", err)
			http.Error(w, "Failed to notify queue left", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}
}
