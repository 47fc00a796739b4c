package controllers

import (
	"net/http"

	"storefront/auth"
	"storefront/errs"
	"storefront/middleware"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Signup(c *gin.Context) {
	var input auth.SignupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badBody(c)
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	user, err := h.Auth.Signup(ctx, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"user":    user,
	})
}

func (h *Handler) Login(c *gin.Context) {
	var input auth.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badBody(c)
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	session, err := h.Auth.Login(ctx, input)
	if errs.Is(err, errs.KindNotFound) || errs.Is(err, errs.KindInvalidCredentials) {
		message, _ := errs.Public(err)
		c.JSON(http.StatusBadRequest, gin.H{"message": message})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	maxAge := int(h.Auth.Tokens().TTL().Seconds())
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(h.Cookie.Name, session.Token, maxAge, "/", "", h.Cookie.Secure, true)
	c.JSON(http.StatusOK, gin.H{"message": "Login successful"})
}

func (h *Handler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(h.Cookie.Name, "", -1, "/", "", h.Cookie.Secure, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func (h *Handler) AuthStatus(c *gin.Context) {
	_, ok := h.Auth.Status(middleware.TokenFromRequest(c, h.Cookie.Name))
	c.JSON(http.StatusOK, gin.H{"authenticated": ok})
}
