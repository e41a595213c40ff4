package handlers

import (
	"net/http"

	"benchmate/internal/auth"
)

func (a *API) handleSignUp(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name      string `json:"name"`
		Email     string `json:"email"`
		Password  string `json:"password"`
		Major     string `json:"major"`
		Institute string `json:"institute"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	user, err := a.auth.SignUp(r.Context(), auth.SignUpInput{
		Name:      req.Name,
		Email:     req.Email,
		Password:  req.Password,
		Major:     req.Major,
		Institute: req.Institute,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respond(w, http.StatusCreated, "Signed Up succesfully", map[string]any{
		"id":            user.ID,
		"name":          user.Name,
		"email":         user.Email,
		"institute":     user.Institute,
		"major":         user.Major,
		"emailVerified": user.IsEmailVerified,
	})
}

func (a *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	tok, user, err := a.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(w, err)
		return
	}

	http.SetCookie(w, a.sessionCookie(tok, int(a.cookieMaxAge.Seconds())))
	respond(w, http.StatusOK, "Logged in successfully", user)
}

func (a *API) handleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, a.sessionCookie("", -1))
	respond(w, http.StatusOK, "Logged out successfully", nil)
}

func (a *API) handleVerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
		OTP   string `json:"otp"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	if err := a.auth.VerifyOTP(r.Context(), req.Email, req.OTP); err != nil {
		respondError(w, err)
		return
	}

	respond(w, http.StatusOK, "Email verified successfully", nil)
}

func (a *API) handleResendVerification(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	if err := a.auth.ResendEmailVerification(r.Context(), req.Email); err != nil {
		respondError(w, err)
		return
	}

	respond(w, http.StatusOK, "Verification email sent", nil)
}
