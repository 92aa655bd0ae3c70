package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"errors"
	"log"
	"strings"
	"time"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"isp392_backend/internals/configs"
	"isp392_backend/internals/constants"
	authHelper "isp392_backend/internals/features/users/auth/helper"
	authModel "isp392_backend/internals/features/users/auth/model"
	staffModel "isp392_backend/internals/features/users/staff/model"
	helper "isp392_backend/internals/helpers"
)

const (
	accessTTLDefault  = 15 * time.Minute
	refreshTTLDefault = 7 * 24 * time.Hour
)

func nowUTC() time.Time { return time.Now().UTC() }

func getJWTSecret() (string, error) {
	if configs.JWTSecret == "" {
		return "", errors.New("JWT secret not configured")
	}
	return configs.JWTSecret, nil
}

func getRefreshSecret() (string, error) {
	if configs.JWTRefreshSecret == "" {
		return "", errors.New("JWT refresh secret not configured")
	}
	return configs.JWTRefreshSecret, nil
}

func strptr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func computeRefreshHash(token, secret string) []byte {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(token))
	return mac.Sum(nil)
}

/* ==========================
   LOGIN (username/password)
========================== */

func Login(db *gorm.DB, c *fiber.Ctx) error {
	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid input format")
	}
	input.Username = strings.TrimSpace(input.Username)

	if err := authHelper.ValidateLoginInput(input.Username, input.Password); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var staff staffModel.StaffModel
	if err := db.Where("staff_user_name = ? OR staff_email = ?", input.Username, input.Username).
		First(&staff).Error; err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Incorrect username or password")
	}
	if !staff.StaffIsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Your account has been deactivated. Contact the admin.")
	}
	if err := authHelper.CheckPasswordHash(staff.StaffPassword, input.Password); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Incorrect username or password")
	}

	return issueTokens(c, db, staff)
}

/* ==========================
   LOGIN GOOGLE
========================== */

func LoginGoogle(db *gorm.DB, c *fiber.Ctx) error {
	var input struct {
		IDToken string `json:"id_token"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(input.IDToken, []string{configs.GoogleClientID}); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid Google ID Token")
	}

	claimSet, err := googleAuthIDTokenVerifier.Decode(input.IDToken)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to decode ID Token")
	}
	email, name, googleID := claimSet.Email, claimSet.Name, claimSet.Sub

	var staff staffModel.StaffModel
	err = db.Where("staff_google_id = ?", googleID).First(&staff).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// First Google sign-in: provision a STAFF account
		dummy, err := authHelper.HashPassword(uuid.New().String())
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create Google account")
		}
		staff = staffModel.StaffModel{
			StaffUserName: email,
			StaffFullName: name,
			StaffEmail:    strptr(email),
			StaffPassword: dummy,
			StaffRole:     constants.RoleStaff,
			StaffGoogleID: &googleID,
			StaffIsActive: true,
		}
		if err := db.Create(&staff).Error; err != nil {
			low := strings.ToLower(err.Error())
			if strings.Contains(low, "duplicate key") || strings.Contains(low, "unique") {
				return helper.JsonError(c, fiber.StatusBadRequest, "Email already registered")
			}
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create Google account")
		}
	} else if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch account")
	}

	if !staff.StaffIsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Your account has been deactivated. Contact the admin.")
	}
	return issueTokens(c, db, staff)
}

/* ==========================
   ISSUE TOKENS + Response
========================== */

func buildAccessClaims(staff staffModel.StaffModel, now time.Time) jwt.MapClaims {
	return jwt.MapClaims{
		"typ":      "access",
		"sub":      staff.StaffID.String(),
		"id":       staff.StaffID.String(),
		"staff_id": staff.StaffID.String(),
		"username": staff.StaffUserName,
		"role":     staff.StaffRole,
		"iat":      now.Unix(),
		"exp":      now.Add(accessTTLDefault).Unix(),
	}
}

func buildRefreshClaims(staffID uuid.UUID, now time.Time) jwt.MapClaims {
	return jwt.MapClaims{
		"typ": "refresh",
		"sub": staffID.String(),
		"id":  staffID.String(),
		"iat": now.Unix(),
		"exp": now.Add(refreshTTLDefault).Unix(),
	}
}

func issueTokens(c *fiber.Ctx, db *gorm.DB, staff staffModel.StaffModel) error {
	jwtSecret, err := getJWTSecret()
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	refreshSecret, err := getRefreshSecret()
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	now := nowUTC()

	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, buildAccessClaims(staff, now)).
		SignedString([]byte(jwtSecret))
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create access token")
	}
	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, buildRefreshClaims(staff.StaffID, now)).
		SignedString([]byte(refreshSecret))
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create refresh token")
	}

	ua, ip := c.Get("User-Agent"), c.IP()
	rt := authModel.RefreshToken{
		StaffID:   staff.StaffID,
		TokenHash: computeRefreshHash(refreshToken, refreshSecret),
		ExpiresAt: now.Add(refreshTTLDefault),
		UserAgent: strptr(ua),
		IP:        strptr(ip),
	}
	if err := db.Create(&rt).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to store refresh token")
	}

	setAuthCookies(c, accessToken, refreshToken, now)

	return helper.JsonOK(c, "Login successful", fiber.Map{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"authenticated": true,
		"user": fiber.Map{
			"staff_id":  staff.StaffID,
			"username":  staff.StaffUserName,
			"full_name": staff.StaffFullName,
			"role":      staff.StaffRole,
		},
	})
}

func setAuthCookies(c *fiber.Ctx, accessToken, refreshToken string, now time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    accessToken,
		HTTPOnly: true,
		Secure:   true,
		SameSite: "None",
		Path:     "/",
		Expires:  now.Add(accessTTLDefault),
	})
	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    refreshToken,
		HTTPOnly: true,
		Secure:   true,
		SameSite: "None",
		Path:     "/",
		Expires:  now.Add(refreshTTLDefault),
	})
}

/* ==========================
   REFRESH
========================== */

func Refresh(db *gorm.DB, c *fiber.Ctx) error {
	refreshSecret, err := getRefreshSecret()
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var input struct {
		RefreshToken string `json:"refresh_token"`
	}
	_ = c.BodyParser(&input)
	tokenString := strings.TrimSpace(input.RefreshToken)
	if tokenString == "" {
		tokenString = strings.TrimSpace(c.Cookies("refresh_token"))
	}
	if tokenString == "" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Missing refresh token")
	}

	claims := jwt.MapClaims{}
	if _, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(refreshSecret), nil
	}); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid refresh token")
	}
	if typ, _ := claims["typ"].(string); typ != "refresh" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid refresh token")
	}

	sub, _ := claims["sub"].(string)
	staffID, err := uuid.Parse(sub)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid refresh token")
	}

	// token must match a live stored hash
	hash := computeRefreshHash(tokenString, refreshSecret)
	var stored authModel.RefreshToken
	if err := db.Where("staff_id = ? AND token_hash = ? AND revoked_at IS NULL AND expires_at > ?",
		staffID, hash, nowUTC()).First(&stored).Error; err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Refresh token revoked or expired")
	}

	var staff staffModel.StaffModel
	if err := db.First(&staff, "staff_id = ?", staffID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Account no longer exists")
	}
	if !staff.StaffIsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Your account has been deactivated. Contact the admin.")
	}

	// rotate: revoke the used token before issuing a new pair
	now := nowUTC()
	if err := db.Model(&stored).Update("revoked_at", &now).Error; err != nil {
		log.Println("[WARN] failed to revoke refresh token:", err)
	}
	return issueTokens(c, db, staff)
}

/* ==========================
   LOGOUT
========================== */

func Logout(db *gorm.DB, c *fiber.Ctx) error {
	accessToken := strings.TrimSpace(c.Cookies("access_token"))
	if authHeader := strings.TrimSpace(c.Get("Authorization")); strings.HasPrefix(authHeader, "Bearer ") {
		accessToken = strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}

	if accessToken != "" {
		entry := authModel.TokenBlacklist{
			Token:     accessToken,
			ExpiredAt: time.Now().Add(resolveBlacklistTTL(accessToken)),
		}
		if err := db.Create(&entry).Error; err != nil {
			low := strings.ToLower(err.Error())
			// already blacklisted is fine
			if !strings.Contains(low, "duplicate key") && !strings.Contains(low, "unique") {
				log.Println("[ERROR] blacklist insert failed:", err)
				return helper.JsonError(c, fiber.StatusInternalServerError, "Logout failed")
			}
		}
	}

	// revoke all refresh tokens for this staff if we know who they are
	if staffIDStr, ok := c.Locals("staff_id").(string); ok && staffIDStr != "" {
		now := nowUTC()
		if err := db.Model(&authModel.RefreshToken{}).
			Where("staff_id = ? AND revoked_at IS NULL", staffIDStr).
			Update("revoked_at", &now).Error; err != nil {
			log.Println("[WARN] refresh token revoke failed:", err)
		}
	}

	clearAuthCookies(c)
	return helper.JsonOK(c, "Logged out", nil)
}

func clearAuthCookies(c *fiber.Ctx) {
	expired := time.Now().Add(-time.Hour)
	for _, name := range []string{"access_token", "refresh_token"} {
		c.Cookie(&fiber.Cookie{
			Name:     name,
			Value:    "",
			HTTPOnly: true,
			Secure:   true,
			SameSite: "None",
			Path:     "/",
			Expires:  expired,
		})
	}
}

// resolveBlacklistTTL keeps the blacklist entry alive as long as the token
// itself is valid; fall back to the default access TTL when exp is unreadable.
func resolveBlacklistTTL(accessToken string) time.Duration {
	claims := jwt.MapClaims{}
	parser := jwt.Parser{SkipClaimsValidation: true}
	if _, _, err := parser.ParseUnverified(accessToken, claims); err != nil {
		return accessTTLDefault
	}
	expVal, ok := claims["exp"].(float64)
	if !ok {
		return accessTTLDefault
	}
	ttl := time.Until(time.Unix(int64(expVal), 0))
	if ttl <= 0 {
		return time.Minute
	}
	return ttl
}
