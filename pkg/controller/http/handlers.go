package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"

	"github.com/mailcrest/mailcrest/pkg/domain/interfaces"
	"github.com/mailcrest/mailcrest/pkg/domain/model"
	"github.com/mailcrest/mailcrest/pkg/domain/types"
	"github.com/mailcrest/mailcrest/pkg/usecase"
	"github.com/mailcrest/mailcrest/pkg/utils/errutil"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

type resolveRequest struct {
	UserID          types.UserID         `json:"userId"`
	EmailID         types.EmailID        `json:"emailId"`
	Classification  model.Classification `json:"classification"`
	PrimaryActionID types.ActionID       `json:"primaryActionId,omitempty"`
}

func (s *Server) resolveHandler(w http.ResponseWriter, r *http.Request) {
	var req resolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid resolve request body"), http.StatusBadRequest)
		return
	}

	result, err := s.uc.ResolveEmail(r.Context(), usecase.ResolveEmailInput{
		UserID:          req.UserID,
		EmailID:         req.EmailID,
		Classification:  req.Classification,
		PrimaryActionID: req.PrimaryActionID,
	})
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, usecase.ErrNoEligibleCandidates) {
			// The catalog has no generic fallback family; still a
			// client-visible condition, not a server fault.
			status = http.StatusUnprocessableEntity
		}
		errutil.HandleHTTP(r.Context(), w, err, status)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) listActionsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"actions": s.uc.Actions().All(),
	})
}

func (s *Server) getActionHandler(w http.ResponseWriter, r *http.Request) {
	actionID := types.ActionID(chi.URLParam(r, "actionID"))

	def := s.uc.Actions().Lookup(actionID)
	if def == nil {
		errutil.HandleHTTP(r.Context(), w,
			goerr.Wrap(usecase.ErrUnknownAction, "no such action", goerr.V("action_id", actionID)),
			http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, def)
}

func (s *Server) listCompoundActionsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"compoundActions": s.uc.Compounds().All(),
	})
}

type overrideRequest struct {
	UserID   types.UserID   `json:"userId"`
	EmailID  types.EmailID  `json:"emailId"`
	ActionID types.ActionID `json:"actionId"`
}

func (s *Server) putOverrideHandler(w http.ResponseWriter, r *http.Request) {
	var req overrideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid override request body"), http.StatusBadRequest)
		return
	}

	if err := s.uc.RecordOverride(r.Context(), req.UserID, req.EmailID, req.ActionID); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, usecase.ErrUnknownAction) {
			status = http.StatusBadRequest
		}
		errutil.HandleHTTP(r.Context(), w, err, status)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) deleteOverrideHandler(w http.ResponseWriter, r *http.Request) {
	userID := types.UserID(r.URL.Query().Get("userId"))
	emailID := types.EmailID(r.URL.Query().Get("emailId"))
	if userID == "" || emailID == "" {
		errutil.HandleHTTP(r.Context(), w, goerr.New("userId and emailId are required"), http.StatusBadRequest)
		return
	}

	if err := s.uc.ClearOverride(r.Context(), userID, emailID); err != nil && !errors.Is(err, interfaces.ErrNotFound) {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) putSelectionHandler(w http.ResponseWriter, r *http.Request) {
	var req overrideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid selection request body"), http.StatusBadRequest)
		return
	}

	if err := s.uc.RecordSelection(r.Context(), req.UserID, req.EmailID, req.ActionID); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, usecase.ErrUnknownAction) {
			status = http.StatusBadRequest
		}
		errutil.HandleHTTP(r.Context(), w, err, status)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) registryHandler(w http.ResponseWriter, r *http.Request) {
	userID := types.UserID(r.URL.Query().Get("userId"))
	mode := r.URL.Query().Get("mode")
	if mode == "" {
		mode = "inbox"
	}

	windowDays := 30
	if raw := r.URL.Query().Get("windowDays"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			errutil.HandleHTTP(r.Context(), w, goerr.New("invalid windowDays", goerr.V("windowDays", raw)), http.StatusBadRequest)
			return
		}
		windowDays = parsed
	}

	registry, err := s.uc.Registry(r.Context(), userID, mode, windowDays)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, registry)
}

func (s *Server) invalidateRegistryHandler(w http.ResponseWriter, r *http.Request) {
	userID := types.UserID(chi.URLParam(r, "userID"))
	if userID == "" {
		errutil.HandleHTTP(r.Context(), w, goerr.New("userID is required"), http.StatusBadRequest)
		return
	}

	s.uc.InvalidateRegistry(userID)
	w.WriteHeader(http.StatusNoContent)
}
