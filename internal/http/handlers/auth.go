package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/hongminglow/user-auth-be/internal/auth"
	"github.com/hongminglow/user-auth-be/internal/config"
	"github.com/hongminglow/user-auth-be/internal/http/respond"
	"github.com/hongminglow/user-auth-be/internal/middleware"
	"github.com/hongminglow/user-auth-be/internal/models"
	"github.com/hongminglow/user-auth-be/internal/models/dto"
	"github.com/hongminglow/user-auth-be/internal/storage"
)

// Response messages for the auth endpoints.
const (
	MsgRegistered         = "User registered successfully"
	MsgEmailInUse         = "Email already in use"
	MsgRegisterFailed     = "Error registering user"
	MsgLoginSuccessful    = "Login successful"
	MsgInvalidCredentials = "Invalid credentials"
	MsgLoginFailed        = "Error logging in"
	MsgForgotPassword     = "Forgot password logic to be implemented"
	MsgInvalidBody        = "Invalid request body"
	MsgMethodNotAllowed   = "Method not allowed"

	genericErrorDetail = "internal server error"
)

// AuthHandler owns the register, login and forgot-password endpoints.
type AuthHandler struct {
	store        storage.UserStore
	hasher       *auth.PasswordHasher
	timeout      time.Duration
	exposeErrors bool
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(store storage.UserStore, hasher *auth.PasswordHasher, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		store:        store,
		hasher:       hasher,
		timeout:      cfg.DBTimeout,
		exposeErrors: cfg.ExposeInternalErrors,
	}
}

// Register attaches auth routes to the mux.
func (h *AuthHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/auth/register", h.handleRegister)
	mux.HandleFunc("/api/auth/login", h.handleLogin)
	mux.HandleFunc("/api/auth/forgot-password", h.handleForgotPassword)
}

func (h *AuthHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	var req dto.RegisterRequest
	if err := decodeBody(r, &req); err != nil {
		respond.Message(w, http.StatusBadRequest, MsgInvalidBody)
		return
	}

	ctx, cancel := h.storeContext(r.Context())
	defer cancel()

	_, err := h.store.FindByEmail(ctx, req.Email)
	switch {
	case err == nil:
		respond.Message(w, http.StatusBadRequest, MsgEmailInUse)
		return
	case !errors.Is(err, storage.ErrNotFound):
		h.internalError(w, r, MsgRegisterFailed, err)
		return
	}

	passwordHash, err := h.hasher.Hash(req.Password)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			respond.Message(w, http.StatusBadRequest, MsgInvalidBody)
			return
		}
		h.internalError(w, r, MsgRegisterFailed, err)
		return
	}

	created, err := h.store.CreateUser(ctx, models.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PhoneNumber:  req.PhoneNumber,
		Email:        req.Email,
		Gender:       req.Gender,
		DOB:          req.DOB,
		Role:         models.RoleOrDefault(req.Role),
		PasswordHash: passwordHash,
	})
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			respond.Message(w, http.StatusBadRequest, MsgEmailInUse)
			return
		}
		h.internalError(w, r, MsgRegisterFailed, err)
		return
	}

	respond.JSON(w, http.StatusCreated, dto.UserResponse{Message: MsgRegistered, User: created})
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	var req dto.LoginRequest
	if err := decodeBody(r, &req); err != nil {
		respond.Message(w, http.StatusBadRequest, MsgInvalidBody)
		return
	}

	ctx, cancel := h.storeContext(r.Context())
	defer cancel()

	user, err := h.store.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			h.hasher.CompareDummy(req.Password)
			respond.Message(w, http.StatusBadRequest, MsgInvalidCredentials)
			return
		}
		h.internalError(w, r, MsgLoginFailed, err)
		return
	}
	if err := h.hasher.Compare(user.PasswordHash, req.Password); err != nil {
		if !errors.Is(err, auth.ErrMismatch) {
			log.Printf("login: unusable password hash for user %d request_id=%s: %v", user.ID, middleware.RequestID(r.Context()), err)
		}
		respond.Message(w, http.StatusBadRequest, MsgInvalidCredentials)
		return
	}

	respond.JSON(w, http.StatusOK, dto.UserResponse{Message: MsgLoginSuccessful, User: user})
}

func (h *AuthHandler) handleForgotPassword(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	respond.Message(w, http.StatusOK, MsgForgotPassword)
}

func (h *AuthHandler) storeContext(parent context.Context) (context.Context, context.CancelFunc) {
	if h.timeout <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, h.timeout)
}

func (h *AuthHandler) internalError(w http.ResponseWriter, r *http.Request, message string, err error) {
	log.Printf("%s %s failed request_id=%s: %v", r.Method, r.URL.Path, middleware.RequestID(r.Context()), err)
	detail := genericErrorDetail
	if h.exposeErrors {
		detail = err.Error()
	}
	respond.Error(w, http.StatusInternalServerError, message, detail)
}

func requireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method == method {
		return true
	}
	w.Header().Set("Allow", method)
	respond.Message(w, http.StatusMethodNotAllowed, MsgMethodNotAllowed)
	return false
}

// decodeBody decodes a JSON body into dst; an empty body leaves dst zero.
func decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
