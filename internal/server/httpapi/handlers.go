package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/todovault/todovault/internal/common"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

// writeServiceError maps sentinel errors to HTTP statuses.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrValidation):
		writeError(w, http.StatusBadRequest, "invalid request")
	case errors.Is(err, common.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "invalid username or password")
	case errors.Is(err, common.ErrCodeMismatch):
		writeError(w, http.StatusForbidden, "recovery code does not match")
	case errors.Is(err, common.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, common.ErrAlreadyExists):
		writeError(w, http.StatusConflict, "username already taken")
	default:
		s.logger.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err.Error())
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "malformed json")
		return false
	}
	return true
}

func (s *Server) registerHandler(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, token, err := s.userService.Register(r.Context(), req.Username, req.Password, req.ProfileImage)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, AuthResponse{User: toUserDTO(user), Token: token})
}

func (s *Server) loginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, token, err := s.userService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, AuthResponse{User: toUserDTO(user), Token: token})
}

func (s *Server) checkUsernameHandler(w http.ResponseWriter, r *http.Request) {
	var req CheckUsernameRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := s.userService.CheckUsername(r.Context(), req.Username); err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) verifyRecoveryHandler(w http.ResponseWriter, r *http.Request) {
	var req RecoveryVerifyRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := s.userService.VerifyRecoveryCode(r.Context(), req.Username, req.Code); err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) resetPasswordHandler(w http.ResponseWriter, r *http.Request) {
	var req RecoveryResetRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := s.userService.ResetPassword(r.Context(), req.Username, req.Code, req.NewPassword); err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) getProfileHandler(w http.ResponseWriter, r *http.Request) {
	user, err := s.userService.GetByID(r.Context(), userIDFromContext(r.Context()))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserDTO(user))
}

func (s *Server) updateProfileHandler(w http.ResponseWriter, r *http.Request) {
	var req UpdateProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := s.userService.UpdateProfile(r.Context(), userIDFromContext(r.Context()),
		req.Username, req.NewPassword, req.ProfileImage)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserDTO(user))
}

func (s *Server) deleteAccountHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.userService.Delete(r.Context(), userIDFromContext(r.Context())); err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listTodosHandler(w http.ResponseWriter, r *http.Request) {
	list, err := s.todoService.List(r.Context(), userIDFromContext(r.Context()))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toTodoDTOs(list))
}

func (s *Server) addTodoHandler(w http.ResponseWriter, r *http.Request) {
	var req AddTodoRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	todo, err := s.todoService.Add(r.Context(), userIDFromContext(r.Context()), req.Text)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toTodoDTO(todo))
}

func (s *Server) setCompletedHandler(w http.ResponseWriter, r *http.Request) {
	var req SetCompletedRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	id := mux.Vars(r)["id"]
	if err := s.todoService.SetCompleted(r.Context(), userIDFromContext(r.Context()), id, req.Completed); err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) deleteTodoHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := s.todoService.Delete(r.Context(), userIDFromContext(r.Context()), id); err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) clearCompletedHandler(w http.ResponseWriter, r *http.Request) {
	deleted, err := s.todoService.ClearCompleted(r.Context(), userIDFromContext(r.Context()))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, ClearCompletedResponse{Deleted: deleted})
}

func (s *Server) imageUploadURLHandler(w http.ResponseWriter, r *http.Request) {
	key, url, err := s.imageService.GetPresignedPutUrl(r.Context(), userIDFromContext(r.Context()))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, UploadURLResponse{Key: key, URL: url})
}

func (s *Server) imageGetURLHandler(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		writeError(w, http.StatusBadRequest, "missing key")
		return
	}

	url, err := s.imageService.GetPresignedGetUrl(r.Context(), key)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, ImageURLResponse{URL: url})
}
