package server

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/arjunmehra/folio/internal/common"
	"github.com/arjunmehra/folio/internal/models"
)

// --- JWT helpers ---

// signJWT creates a signed HMAC-SHA256 JWT for the given user.
func signJWT(user *models.User, config *common.AuthConfig) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   user.UserID,
		"email": user.Email,
		"name":  user.Name,
		"iss":   "folio-server",
		"iat":   now.Unix(),
		"exp":   now.Add(config.GetTokenExpiry()).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.JWTSecret))
}

// validateJWT parses and validates a JWT token string using the given secret.
func validateJWT(tokenString string, secret []byte) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// --- Validation ---

func validateName(name string) string {
	if len(name) < 2 || len(name) > 50 {
		return "name must be between 2 and 50 characters"
	}
	return ""
}

func validateEmail(email string) string {
	if email == "" || !strings.Contains(email, "@") || !strings.Contains(email, ".") {
		return "a valid email address is required"
	}
	return ""
}

func validatePassword(password string) string {
	if len(password) < 6 || len(password) > 100 {
		return "password must be between 6 and 100 characters"
	}
	return ""
}

// userResponse builds a response map without the password hash.
func userResponse(user *models.User) map[string]interface{} {
	return map[string]interface{}{
		"user_id":         user.UserID,
		"name":            user.Name,
		"email":           user.Email,
		"risk_preference": user.RiskPreference,
		"created_at":      user.CreatedAt,
	}
}

// --- Handlers ---

// handleAuthRegister handles POST /api/auth/register.
func (s *Server) handleAuthRegister(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req struct {
		Name           string `json:"name"`
		Email          string `json:"email"`
		Password       string `json:"password"`
		RiskPreference string `json:"risk_preference"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	for _, msg := range []string{
		validateName(req.Name),
		validateEmail(req.Email),
		validatePassword(req.Password),
	} {
		if msg != "" {
			WriteError(w, http.StatusBadRequest, msg)
			return
		}
	}

	if req.RiskPreference == "" {
		req.RiskPreference = models.RiskModerate
	}
	if !models.ValidRiskPreference(req.RiskPreference) {
		WriteError(w, http.StatusBadRequest, "risk_preference must be conservative, moderate or aggressive")
		return
	}

	ctx := r.Context()
	store := s.app.Storage.Users()

	existing, err := store.GetByEmail(ctx, req.Email)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to check existing user")
		WriteError(w, http.StatusInternalServerError, "failed to register")
		return
	}
	if existing != nil {
		WriteError(w, http.StatusConflict, "an account with this email already exists")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to hash password")
		WriteError(w, http.StatusInternalServerError, "failed to register")
		return
	}

	now := time.Now()
	user := &models.User{
		UserID:         "usr_" + uuid.New().String()[:8],
		Name:           req.Name,
		Email:          req.Email,
		PasswordHash:   string(hash),
		RiskPreference: req.RiskPreference,
		CreatedAt:      now,
		ModifiedAt:     now,
	}
	if err := store.Save(ctx, user); err != nil {
		s.logger.Error().Err(err).Msg("Failed to save user")
		WriteError(w, http.StatusInternalServerError, "failed to register")
		return
	}

	token, err := signJWT(user, &s.app.Config.Auth)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to sign JWT")
		WriteError(w, http.StatusInternalServerError, "failed to sign token")
		return
	}

	s.logger.Info().Str("user_id", user.UserID).Msg("User registered")

	WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"token": token,
		"user":  userResponse(user),
	})
}

// handleAuthLogin handles POST /api/auth/login.
func (s *Server) handleAuthLogin(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.app.Storage.Users().GetByEmail(r.Context(), req.Email)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to look up user")
		WriteError(w, http.StatusInternalServerError, "failed to log in")
		return
	}
	// Same response for unknown email and wrong password.
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		WriteError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	token, err := signJWT(user, &s.app.Config.Auth)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to sign JWT")
		WriteError(w, http.StatusInternalServerError, "failed to sign token")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  userResponse(user),
	})
}

// handleAuthProfile handles GET and PUT /api/auth/profile.
func (s *Server) handleAuthProfile(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodPut) {
		return
	}

	uc, ok := requireUser(w, r)
	if !ok {
		return
	}

	ctx := r.Context()
	store := s.app.Storage.Users()

	user, err := store.Get(ctx, uc.UserID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", uc.UserID).Msg("Failed to load user")
		WriteError(w, http.StatusInternalServerError, "failed to load profile")
		return
	}
	if user == nil {
		WriteError(w, http.StatusUnauthorized, "account no longer exists")
		return
	}

	if r.Method == http.MethodGet {
		WriteJSON(w, http.StatusOK, userResponse(user))
		return
	}

	var req struct {
		Name           *string `json:"name"`
		RiskPreference *string `json:"risk_preference"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if msg := validateName(name); msg != "" {
			WriteError(w, http.StatusBadRequest, msg)
			return
		}
		user.Name = name
	}
	if req.RiskPreference != nil {
		if !models.ValidRiskPreference(*req.RiskPreference) {
			WriteError(w, http.StatusBadRequest, "risk_preference must be conservative, moderate or aggressive")
			return
		}
		user.RiskPreference = *req.RiskPreference
	}
	user.ModifiedAt = time.Now()

	if err := store.Save(ctx, user); err != nil {
		s.logger.Error().Err(err).Str("user_id", user.UserID).Msg("Failed to save profile")
		WriteError(w, http.StatusInternalServerError, "failed to save profile")
		return
	}

	WriteJSON(w, http.StatusOK, userResponse(user))
}
