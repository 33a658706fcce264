package mockapi

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Mohmmed-Zaid/jobluu-client/internal/model"
)

func (s *Server) tokenResponse(c *gin.Context, a *account) {
	accessToken, err := s.issueAccessToken(a.ID)
	if err != nil {
		s.logger.Error("failed to sign token", zap.Error(err))
		fail(c, http.StatusInternalServerError, "failed to issue token")
		return
	}

	c.JSON(http.StatusOK, model.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: s.issueRefreshToken(a.ID),
		User:         a.User,
	})
}

func (s *Server) handleLogin(c *gin.Context) {
	var req model.Credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}

	a, ok := s.state.userByEmail(req.Email)
	if !ok {
		fail(c, http.StatusUnauthorized, "invalid email or password")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(req.Password)); err != nil {
		fail(c, http.StatusUnauthorized, "invalid email or password")
		return
	}

	s.tokenResponse(c, a)
}

// handleGoogleLogin accepts an identity credential plus a chosen account
// type. The double trusts the credential: it reads email/name claims from
// an unverified JWT, or treats the raw value as an email address.
func (s *Server) handleGoogleLogin(c *gin.Context) {
	var req model.GoogleLogin
	if err := c.ShouldBindJSON(&req); err != nil || req.Credential == "" {
		fail(c, http.StatusBadRequest, "credential required")
		return
	}

	email := req.Credential
	name := ""
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(req.Credential, claims); err == nil {
		if v, ok := claims["email"].(string); ok {
			email = v
		}
		if v, ok := claims["name"].(string); ok {
			name = v
		}
	}

	a, ok := s.state.userByEmail(email)
	if !ok {
		accountType := req.AccountType
		if accountType == "" {
			accountType = model.AccountTypeApplicant
		}
		if name == "" {
			name = email
		}
		a = s.state.createUser(name, email, accountType, "")
	}

	s.tokenResponse(c, a)
}

func (s *Server) handleValidate(c *gin.Context) {
	var req struct {
		Token string `json:"token"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}

	userID, err := s.parseAccessToken(req.Token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"valid": false})
		return
	}
	a, ok := s.state.userByID(userID)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"valid": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"valid": true, "user": a.User})
}

func (s *Server) handleRefresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.RefreshToken == "" {
		fail(c, http.StatusBadRequest, "refresh token required")
		return
	}

	userID, ok := s.redeemRefreshToken(req.RefreshToken)
	if !ok {
		fail(c, http.StatusUnauthorized, "invalid refresh token")
		return
	}
	a, ok := s.state.userByID(userID)
	if !ok {
		fail(c, http.StatusUnauthorized, "invalid refresh token")
		return
	}

	s.tokenResponse(c, a)
}

func (s *Server) handleLogout(c *gin.Context) {
	userID := c.GetInt("userID")
	s.revokeRefreshTokens(userID)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) handleRegister(c *gin.Context) {
	var req model.Registration
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if _, exists := s.state.userByEmail(req.Email); exists {
		fail(c, http.StatusConflict, "email already in use")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		fail(c, http.StatusInternalServerError, "failed to hash password")
		return
	}

	a := s.state.createUser(req.Name, req.Email, req.AccountType, string(hash))
	c.JSON(http.StatusCreated, a.User)
}

func (s *Server) handleSendOTP(c *gin.Context) {
	email := c.Param("email")
	if _, ok := s.state.userByEmail(email); !ok {
		fail(c, http.StatusNotFound, "no account for this email")
		return
	}

	// Derive six digits from a fresh uuid; a real backend would mail these
	otp := fmt.Sprintf("%06d", uuid.New().ID()%1000000)
	s.state.mu.Lock()
	s.state.otps[email] = otp
	s.state.mu.Unlock()

	s.logger.Info("issued otp", zap.String("email", email), zap.String("otp", otp))
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) handleVerifyOTP(c *gin.Context) {
	email := c.Param("email")
	otp := c.Param("otp")

	s.state.mu.Lock()
	expected, ok := s.state.otps[email]
	if ok && expected == otp {
		delete(s.state.otps, email)
	}
	s.state.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"verified": ok && expected == otp})
}

func (s *Server) handleChangePassword(c *gin.Context) {
	var req model.PasswordChange
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}

	a, ok := s.state.userByEmail(req.Email)
	if !ok {
		fail(c, http.StatusNotFound, "no account for this email")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		fail(c, http.StatusInternalServerError, "failed to hash password")
		return
	}

	s.state.mu.Lock()
	a.PasswordHash = string(hash)
	s.state.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"success": true})
}
