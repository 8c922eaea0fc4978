package handlers

import (
	"encoding/json"
	"net/http"
	"net/url"

	"campus-cravings-api/config"
	"campus-cravings-api/middleware"
	"campus-cravings-api/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const stateCookie = "oauth_state"

func googleOAuthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     config.C.GoogleClientID,
		ClientSecret: config.C.GoogleClientSecret,
		RedirectURL:  config.C.GoogleRedirectURL,
		Scopes:       []string{"openid", "email", "profile"},
		Endpoint:     google.Endpoint,
	}
}

type googleProfile struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// GoogleLogin redirects the caller to the Google consent screen.
func GoogleLogin(c *gin.Context) {
	state := uuid.NewString()
	c.SetCookie(stateCookie, state, 300, "/", "", false, true)
	c.Redirect(http.StatusTemporaryRedirect, googleOAuthConfig().AuthCodeURL(state))
}

// GoogleCallback exchanges the authorization code, finds or creates
// the user by verified email, and redirects to the frontend with the
// token as a query parameter.
func GoogleCallback(c *gin.Context) {
	wantState, err := c.Cookie(stateCookie)
	if err != nil || c.Query("state") != wantState {
		loginRedirect(c, "invalid oauth state")
		return
	}

	code := c.Query("code")
	if code == "" {
		loginRedirect(c, "missing authorization code")
		return
	}

	ctx := c.Request.Context()
	oauthCfg := googleOAuthConfig()
	tok, err := oauthCfg.Exchange(ctx, code)
	if err != nil {
		log.Warn("google code exchange failed")
		loginRedirect(c, "authentication failed")
		return
	}

	resp, err := oauthCfg.Client(ctx, tok).Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		loginRedirect(c, "failed to fetch profile")
		return
	}
	defer resp.Body.Close()

	var profile googleProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil || profile.Email == "" {
		loginRedirect(c, "invalid profile response")
		return
	}

	// Find or create by verified email
	var user models.User
	if err := config.DB.WithContext(ctx).Where("email = ?", profile.Email).First(&user).Error; err != nil {
		user = models.User{
			Name:     profile.Name,
			Email:    profile.Email,
			GoogleID: profile.ID,
			Role:     models.RoleClient,
		}
		if err := config.DB.Create(&user).Error; err != nil {
			loginRedirect(c, "failed to create account")
			return
		}
	} else if user.GoogleID == "" {
		config.DB.Model(&user).Update("google_id", profile.ID)
	}

	token, err := middleware.GenerateToken(&user)
	if err != nil {
		loginRedirect(c, "failed to generate token")
		return
	}

	// Token travels as a query parameter; the frontend extracts it on
	// its callback page.
	c.Redirect(http.StatusTemporaryRedirect,
		config.C.FrontendURL+"/auth/google/callback?token="+url.QueryEscape(token))
}

func loginRedirect(c *gin.Context, reason string) {
	c.Redirect(http.StatusTemporaryRedirect,
		config.C.FrontendURL+"/login?error="+url.QueryEscape(reason))
}
