// Package mockapi is an in-memory implementation of the EduNova HTTP API.
// It backs the remote client tests and the serve-mock command.
package mockapi

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/msomdec/edunova/internal/domain"
	"github.com/msomdec/edunova/internal/remote/wire"
)

// Messages returned in auth payloads.
const (
	MsgLoginOK         = "Connexion réussie"
	MsgRegisterOK      = "Inscription réussie"
	MsgBadCredentials  = "Identifiants incorrects"
	MsgEmailTaken      = "Email déjà utilisé"
	MsgTokenRefreshed  = "Jeton renouvelé"
	MsgLoggedOut       = "Déconnexion réussie"
	MsgTooManyRequests = "Trop de tentatives, réessayez plus tard"
)

// Options configures a Server.
type Options struct {
	// JWTSecret signs bearer tokens. It must be at least 32 characters.
	JWTSecret  string
	BcryptCost int
	TokenTTL   time.Duration
	// AuthRate and AuthBurst bound login and register attempts per client address.
	AuthRate  float64
	AuthBurst float64
	// Accounts are registered at startup. Nil means DefaultAccounts.
	Accounts []Account
	// Courses are created at startup.
	Courses []wire.CourseRequest
	Now     func() time.Time
	Logger  *slog.Logger
}

// DefaultAccounts returns the seeded demo users. The student matches the
// client's offline test credential.
func DefaultAccounts() []Account {
	return []Account{
		{FirstName: "Test", LastName: "User", Email: "test@edunova.com", Password: "password123", Role: domain.RoleStudent},
		{FirstName: "Ada", LastName: "Admin", Email: "admin@edunova.com", Password: "admin123", Role: domain.RoleAdmin},
		{FirstName: "Paul", LastName: "Prof", Email: "prof@edunova.com", Password: "prof1234", Role: domain.RoleTeacher},
	}
}

// Server is the mock backend.
type Server struct {
	accounts *accounts
	catalog  *catalog
	limiter  *tokenBucket
	logger   *slog.Logger
}

// New creates a Server and seeds it.
func New(opts Options) (*Server, error) {
	if len(opts.JWTSecret) < 32 {
		return nil, fmt.Errorf("%w: jwt secret must be at least 32 characters", domain.ErrInvalidInput)
	}
	if opts.BcryptCost == 0 {
		opts.BcryptCost = 10
	}
	if opts.TokenTTL == 0 {
		opts.TokenTTL = 24 * time.Hour
	}
	if opts.AuthRate == 0 {
		opts.AuthRate = 1
	}
	if opts.AuthBurst == 0 {
		opts.AuthBurst = 10
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Accounts == nil {
		opts.Accounts = DefaultAccounts()
	}

	s := &Server{
		accounts: newAccounts(opts.JWTSecret, opts.BcryptCost, opts.TokenTTL, opts.Now),
		catalog:  newCatalog(opts.Now),
		limiter:  newTokenBucket(opts.AuthRate, opts.AuthBurst, opts.Now),
		logger:   opts.Logger,
	}
	for _, acc := range opts.Accounts {
		user, err := s.accounts.register(acc)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("seed account %s: %w", acc.Email, err)
		}
		s.catalog.profileFor(user)
	}
	for _, c := range opts.Courses {
		s.catalog.createCourse(c)
	}
	return s, nil
}

// Close stops background work.
func (s *Server) Close() {
	s.limiter.close()
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(s.logRequests)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.With(s.rateLimit).Post("/auth/login", s.handleLogin)
	r.With(s.rateLimit).Post("/auth/register", s.handleRegister)
	r.With(s.requireAuth).Post("/auth/logout", s.handleLogout)
	r.With(s.requireAuth).Post("/auth/refresh-token", s.handleRefresh)

	r.Group(func(r chi.Router) {
		r.Use(s.requireAuth)

		r.Get("/courses", s.handleListCourses)
		r.With(requireRole(domain.RoleTeacher, domain.RoleAdmin)).Post("/courses", s.handleCreateCourse)
		r.Get("/courses/{courseID}", s.handleGetCourse)
		r.With(requireRole(domain.RoleTeacher, domain.RoleAdmin)).Put("/courses/{courseID}", s.handleUpdateCourse)
		r.With(requireRole(domain.RoleTeacher, domain.RoleAdmin)).Delete("/courses/{courseID}", s.handleDeleteCourse)
		r.Get("/courses/teacher/{teacherID}", s.handleListTeacherCourses)

		r.Get("/profile", s.handleGetProfile)
		r.Put("/profile", s.handleUpdateProfile)
		r.Get("/profiles", s.handleListProfiles)
		r.Get("/profiles/{profileID}", s.handleGetProfileByID)

		r.With(requireRole(domain.RoleAdmin)).Get("/users", s.handleListUsers)
		r.Get("/users/{userID}", s.handleGetUser)
		r.Put("/users/{userID}", s.handleUpdateUser)
		r.With(requireRole(domain.RoleAdmin)).Delete("/users/{userID}", s.handleDeleteUser)

		r.Get("/sessions", s.handleListSessions)
		r.Delete("/sessions/{sessionID}", s.handleDeleteSession)
	})

	return r
}

// Auth

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req wire.AuthRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, token, err := s.accounts.login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			writeJSON(w, http.StatusOK, wire.AuthResponse{Success: false, Message: MsgBadCredentials})
			return
		}
		s.logger.Error("login", "error", err)
		writeError(w, http.StatusInternalServerError, "login failed")
		return
	}
	writeJSON(w, http.StatusOK, wire.AuthResponse{Success: true, Message: MsgLoginOK, User: &user, Token: token})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req wire.AuthRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := s.accounts.register(Account{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	switch {
	case errors.Is(err, domain.ErrDuplicateEmail):
		writeJSON(w, http.StatusOK, wire.AuthResponse{Success: false, Message: MsgEmailTaken})
		return
	case errors.Is(err, domain.ErrInvalidInput):
		writeJSON(w, http.StatusOK, wire.AuthResponse{Success: false, Message: err.Error()})
		return
	case err != nil:
		s.logger.Error("register", "error", err)
		writeError(w, http.StatusInternalServerError, "registration failed")
		return
	}

	token, err := s.accounts.issue(user.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "registration failed")
		return
	}
	s.catalog.profileFor(user)
	writeJSON(w, http.StatusCreated, wire.AuthResponse{Success: true, Message: MsgRegisterOK, User: &user, Token: token})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.accounts.revoke(sessionIDFromContext(r.Context()))
	writeData(w, http.StatusOK, MsgLoggedOut, true)
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	s.accounts.revoke(sessionIDFromContext(r.Context()))

	token, err := s.accounts.issue(user.ID)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "session expired")
		return
	}
	writeJSON(w, http.StatusOK, wire.AuthResponse{Success: true, Message: MsgTokenRefreshed, User: &user, Token: token})
}

// Courses

func (s *Server) handleListCourses(w http.ResponseWriter, _ *http.Request) {
	writeData(w, http.StatusOK, "", s.catalog.listCourses(0))
}

func (s *Server) handleListTeacherCourses(w http.ResponseWriter, r *http.Request) {
	teacherID, ok := idParam(r, "teacherID")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid teacher id")
		return
	}
	writeData(w, http.StatusOK, "", s.catalog.listCourses(teacherID))
}

func (s *Server) handleGetCourse(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "courseID")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid course id")
		return
	}
	course, err := s.catalog.course(id)
	if err != nil {
		writeError(w, http.StatusNotFound, "course not found")
		return
	}
	writeData(w, http.StatusOK, "", course)
}

func (s *Server) readCourse(w http.ResponseWriter, r *http.Request) (wire.CourseRequest, bool) {
	var req wire.CourseRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return req, false
	}
	if req.Title == "" {
		writeError(w, http.StatusUnprocessableEntity, "title is required")
		return req, false
	}
	if req.TeacherID == 0 {
		req.TeacherID = userFromContext(r.Context()).ID
	}
	return req, true
}

func (s *Server) handleCreateCourse(w http.ResponseWriter, r *http.Request) {
	req, ok := s.readCourse(w, r)
	if !ok {
		return
	}
	writeData(w, http.StatusCreated, "course created", s.catalog.createCourse(req))
}

func (s *Server) handleUpdateCourse(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "courseID")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid course id")
		return
	}
	req, ok := s.readCourse(w, r)
	if !ok {
		return
	}
	course, err := s.catalog.updateCourse(id, req)
	if err != nil {
		writeError(w, http.StatusNotFound, "course not found")
		return
	}
	writeData(w, http.StatusOK, "course updated", course)
}

func (s *Server) handleDeleteCourse(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "courseID")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid course id")
		return
	}
	if err := s.catalog.deleteCourse(id); err != nil {
		writeError(w, http.StatusNotFound, "course not found")
		return
	}
	writeJSON(w, http.StatusOK, wire.Envelope{Success: true, Message: "course deleted"})
}

// Profiles

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, "", s.catalog.profileFor(userFromContext(r.Context())))
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req wire.ProfileUpdate
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Age != nil && *req.Age < 0 {
		writeError(w, http.StatusUnprocessableEntity, "age must not be negative")
		return
	}
	writeData(w, http.StatusOK, "profile updated", s.catalog.updateProfile(userFromContext(r.Context()), req))
}

func (s *Server) handleListProfiles(w http.ResponseWriter, _ *http.Request) {
	writeData(w, http.StatusOK, "", s.catalog.listProfiles())
}

func (s *Server) handleGetProfileByID(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "profileID")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid profile id")
		return
	}
	p, err := s.catalog.profile(id)
	if err != nil {
		writeError(w, http.StatusNotFound, "profile not found")
		return
	}
	writeData(w, http.StatusOK, "", p)
}

// Users

func (s *Server) handleListUsers(w http.ResponseWriter, _ *http.Request) {
	writeData(w, http.StatusOK, "", s.accounts.list())
}

// selfOrAdmin resolves the user id path parameter and checks the caller may act on it.
func (s *Server) selfOrAdmin(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, ok := idParam(r, "userID")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return 0, false
	}
	caller := userFromContext(r.Context())
	if caller.ID != id && domain.Role(caller.Role) != domain.RoleAdmin {
		writeError(w, http.StatusForbidden, "forbidden")
		return 0, false
	}
	return id, true
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := s.selfOrAdmin(w, r)
	if !ok {
		return
	}
	user, err := s.accounts.get(id)
	if err != nil {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	writeData(w, http.StatusOK, "", user)
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := s.selfOrAdmin(w, r)
	if !ok {
		return
	}
	var patch wire.User
	if err := readJSON(r, &patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if domain.Role(userFromContext(r.Context()).Role) != domain.RoleAdmin {
		patch.Role = ""
	}

	user, err := s.accounts.update(id, patch)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "user not found")
	case errors.Is(err, domain.ErrDuplicateEmail):
		writeError(w, http.StatusConflict, MsgEmailTaken)
	case err != nil:
		writeError(w, http.StatusInternalServerError, "update failed")
	default:
		writeData(w, http.StatusOK, "user updated", user)
	}
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "userID")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	if err := s.accounts.remove(id); err != nil {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	s.catalog.deleteProfile(id)
	writeJSON(w, http.StatusOK, wire.Envelope{Success: true, Message: "user deleted"})
}

// Sessions

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	caller := userFromContext(r.Context())
	var owner int64
	if domain.Role(caller.Role) != domain.RoleAdmin {
		owner = caller.ID
	}
	writeData(w, http.StatusOK, "", s.accounts.listSessions(owner))
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "sessionID")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid session id")
		return
	}
	sess, found := s.accounts.session(id)
	caller := userFromContext(r.Context())
	if !found || (sess.UserID != caller.ID && domain.Role(caller.Role) != domain.RoleAdmin) {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}
	s.accounts.revoke(id)
	writeJSON(w, http.StatusOK, wire.Envelope{Success: true, Message: "session revoked"})
}
