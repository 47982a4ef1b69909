package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"meubolso/internal/api/middlewares"
	"meubolso/internal/repositories/ledger"
	"meubolso/internal/repositories/sqlconnect"
	"meubolso/pkg/utils"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (req registerRequest) validate() error {
	if utf8.RuneCountInString(strings.TrimSpace(req.Name)) < 2 {
		return errors.New("nome muito curto")
	}
	if !emailPattern.MatchString(req.Email) {
		return errors.New("email inválido")
	}
	if len(req.Password) < 6 {
		return errors.New("senha deve ter pelo menos 6 caracteres")
	}
	return nil
}

func setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middlewares.SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   os.Getenv("APP_ENV") == "production",
		MaxAge:   int(utils.TokenValidity.Seconds()),
		SameSite: http.SameSiteLaxMode,
	})
}

// FUNC TO REGISTER USERS
func RegisterHandler(w http.ResponseWriter, r *http.Request) {
	db := sqlconnect.DB
	if db == nil {
		utils.Logger.Error("DB is not initialized")
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	var req registerRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		utils.WriteError(w, "Dados inválidos para cadastro", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if err := req.validate(); err != nil {
		utils.WriteError(w, "Dados inválidos para cadastro", http.StatusBadRequest)
		return
	}

	req.Email = strings.ToLower(req.Email)
	req.Name = strings.TrimSpace(req.Name)

	hashedPwd, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.WriteError(w, "error hashing password", http.StatusInternalServerError)
		return
	}

	repo := ledger.NewRepository(db)
	user, err := repo.CreateUser(r.Context(), req.Name, req.Email, hashedPwd)
	if err != nil {
		if errors.Is(err, ledger.ErrDuplicateEmail) {
			utils.WriteError(w, "E-mail já cadastrado", http.StatusConflict)
			return
		}
		utils.Logger.Errorf("failed to register user: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	token, err := utils.SignToken(user.ID)
	if err != nil {
		utils.Logger.Error("could not create login token")
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}
	setSessionCookie(w, token)

	if utils.EmailEnabled() {
		go func(email, name string) {
			if err := utils.SendWelcomeEmail(email, name); err != nil {
				utils.Logger.Errorf("failed to send welcome email to %s: %v", email, err)
			}
		}(user.Email, user.Name)
	}

	utils.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"ok": true,
		"user": map[string]interface{}{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
		},
	})
}

// FUNC TO LOGIN
func LoginHandler(w http.ResponseWriter, r *http.Request) {
	db := sqlconnect.DB
	if db == nil {
		utils.Logger.Error("DB is not initialized")
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	type loginRequest struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, "Credenciais inválidas", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if !emailPattern.MatchString(req.Email) || len(req.Password) < 6 {
		utils.WriteError(w, "Credenciais inválidas", http.StatusBadRequest)
		return
	}

	repo := ledger.NewRepository(db)
	user, err := repo.FindUserByEmail(r.Context(), strings.ToLower(req.Email))
	if err != nil {
		if errors.Is(err, ledger.ErrUserNotFound) {
			utils.WriteError(w, "Usuário ou senha incorretos", http.StatusUnauthorized)
			return
		}
		utils.Logger.Errorf("login query failed: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if err := utils.VerifyPassword(req.Password, user.PasswordHash); err != nil {
		utils.WriteError(w, "Usuário ou senha incorretos", http.StatusUnauthorized)
		return
	}

	token, err := utils.SignToken(user.ID)
	if err != nil {
		utils.Logger.Error("could not create login token")
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}
	setSessionCookie(w, token)

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"ok":    true,
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
	})
}

// FUNC FOR LOGOUT
func LogoutHandler(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middlewares.SessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   os.Getenv("APP_ENV") == "production",
		Expires:  time.Unix(0, 0),
		SameSite: http.SameSiteLaxMode,
	})

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"ok": true})
}

// MeHandler reports who is logged in. It reads the cookie when present but
// never rejects: an anonymous caller gets authenticated=false.
func MeHandler(w http.ResponseWriter, r *http.Request) {
	db := sqlconnect.DB
	if db == nil {
		utils.Logger.Error("DB is not initialized")
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	anonymous := map[string]interface{}{
		"ok":            true,
		"authenticated": false,
		"userId":        nil,
	}

	cookie, err := r.Cookie(middlewares.SessionCookie)
	if err != nil || cookie.Value == "" {
		utils.WriteJSON(w, http.StatusOK, anonymous)
		return
	}

	userID, err := utils.VerifyToken(cookie.Value)
	if err != nil {
		utils.WriteJSON(w, http.StatusOK, anonymous)
		return
	}

	repo := ledger.NewRepository(db)
	user, err := repo.FindUserByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, ledger.ErrUserNotFound) {
			utils.WriteJSON(w, http.StatusOK, anonymous)
			return
		}
		utils.Logger.Errorf("me query failed: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"ok":            true,
		"authenticated": true,
		"userId":        user.ID,
		"name":          user.Name,
		"email":         user.Email,
	})
}
