package studentapi

import (
	"log/slog"
	"net/http"
	"time"

	"studentfees/cmd/internal/students/session"
	"studentfees/cmd/student"
)

// Handler wires the student REST endpoints to the session service.
type Handler struct {
	log      *slog.Logger
	cfg      Config
	sessions *session.Service
}

// NewHandler constructs a student API Handler.
func NewHandler(log *slog.Logger, cfg Config, sessions *session.Service) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{log: log, cfg: cfg, sessions: sessions}
}

// Register wires student routes onto the provided mux.
func (h *Handler) Register(mux *http.ServeMux) {
	if h == nil || mux == nil {
		return
	}
	mux.HandleFunc("/api/v1/students/register", h.handleRegister)
	mux.HandleFunc("/api/v1/students/login", h.handleLogin)
	mux.HandleFunc("/api/v1/students/get-all", h.handleGetAll)
	mux.HandleFunc("/api/v1/students/update", h.handleUpdate)
	mux.HandleFunc("/api/v1/students/toggle-fees", h.handleToggleFees)
	mux.HandleFunc("/api/v1/students/logout", h.handleLogout)
	mux.HandleFunc("/api/v1/students/current", h.handleCurrent)
}

// ---- handlers ----

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req registerRequest
	if err := decodeJSON(w, r, h.cfg.MaxBodyBytes, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	view, err := h.sessions.Register(r.Context(), req.FullName, req.Email, req.Password)
	if err != nil {
		switch {
		case student.IsConflict(err):
			writeError(w, http.StatusBadRequest, "student already exists")
		case student.IsInvalidInput(err):
			writeError(w, http.StatusBadRequest, "please fill all details")
		default:
			h.log.Error("students.register.fail", "err", err)
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	h.log.Info("students.register", "id", view.ID)
	writeData(w, http.StatusOK, view, "Student registered successfully")
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req loginRequest
	if err := decodeJSON(w, r, h.cfg.MaxBodyBytes, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	issued, err := h.sessions.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case student.IsInvalidInput(err):
			writeError(w, http.StatusBadRequest, "please fill all details")
		case student.IsNotFound(err):
			writeError(w, http.StatusBadRequest, "student not registered")
		case student.IsUnauthorized(err):
			writeError(w, http.StatusUnauthorized, "invalid credentials")
		default:
			h.log.Error("students.login.fail", "err", err)
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	h.setSessionCookies(w, issued.AccessToken, issued.AccessExp, issued.RefreshToken, issued.RefreshExp)
	h.log.Info("students.login", "id", issued.Student.ID)
	writeData(w, http.StatusOK, loginResponse{
		Student:      issued.Student,
		AccessToken:  issued.AccessToken,
		RefreshToken: issued.RefreshToken,
	}, "Student logged in successfully")
}

// handleGetAll has no gate: the listing is public and clients depend on it.
// Records are sanitized views only.
func (h *Handler) handleGetAll(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	views, err := h.sessions.List(r.Context())
	if err != nil {
		h.log.Error("students.get_all.fail", "err", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeData(w, http.StatusOK, views, "All the registered students")
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPatch {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req updateRequest
	if err := decodeJSON(w, r, h.cfg.MaxBodyBytes, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	caller, ok := h.requireAuth(w, r, req.AccessToken)
	if !ok {
		return
	}

	// Ownership: the target id comes from the verified token, never the body.
	view, err := h.sessions.UpdateProfile(r.Context(), caller.ID, req.FullName, req.Email)
	if err != nil {
		switch {
		case student.IsInvalidInput(err):
			writeError(w, http.StatusBadRequest, "enter valid details")
		case student.IsConflict(err):
			writeError(w, http.StatusBadRequest, "email already in use")
		case student.IsNotFound(err):
			writeError(w, http.StatusBadRequest, "student not found")
		default:
			h.log.Error("students.update.fail", "err", err)
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	writeData(w, http.StatusOK, view, "Details updated successfully")
}

func (h *Handler) handleToggleFees(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPatch {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	caller, ok := h.requireAuth(w, r, h.bodyToken(w, r))
	if !ok {
		return
	}

	view, err := h.sessions.SetFeesPaid(r.Context(), caller.ID)
	if err != nil {
		switch {
		case student.IsInvalidInput(err):
			writeError(w, http.StatusBadRequest, "enter valid student id")
		case student.IsNotFound(err):
			writeError(w, http.StatusBadRequest, "student not found")
		default:
			h.log.Error("students.toggle_fees.fail", "err", err)
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	h.log.Info("students.fees_paid", "id", view.ID)
	writeData(w, http.StatusOK, view, "Fees payment made true")
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	caller, ok := h.requireAuth(w, r, h.bodyToken(w, r))
	if !ok {
		return
	}

	if err := h.sessions.Logout(r.Context(), caller.ID); err != nil {
		h.log.Error("students.logout.fail", "err", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.clearSessionCookies(w)
	h.log.Info("students.logout", "id", caller.ID)
	writeData(w, http.StatusOK, struct{}{}, "Student logged out successfully")
}

func (h *Handler) handleCurrent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	caller, ok := h.requireAuth(w, r, "")
	if !ok {
		return
	}

	writeData(w, http.StatusOK, caller.ID, "Current student fetched successfully")
}

// ---- helpers ----

// requireAuth is the per-request gate. Any decode or lookup failure collapses
// into the same 401 shape (information hiding across bad signature / expired /
// unknown identity).
func (h *Handler) requireAuth(w http.ResponseWriter, r *http.Request, bodyToken string) (student.View, bool) {
	token := h.accessTokenFrom(r, bodyToken)
	if token == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return student.View{}, false
	}

	caller, err := h.sessions.Authenticate(r.Context(), token, time.Now().UTC())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid access token")
		return student.View{}, false
	}
	return caller, true
}

// bodyToken reads an optional JSON body carrying only an accessToken field.
// Routes without a documented body still accept the body token location.
func (h *Handler) bodyToken(w http.ResponseWriter, r *http.Request) string {
	if r.ContentLength == 0 {
		return ""
	}
	var req tokenOnlyRequest
	if err := decodeJSON(w, r, h.cfg.MaxBodyBytes, &req); err != nil {
		return ""
	}
	return req.AccessToken
}
