package controllers

import (
	"errors"
	"net/http"

	"Gin_postgres_redis_inventory_ledger/app"
	"Gin_postgres_redis_inventory_ledger/auth"
	"Gin_postgres_redis_inventory_ledger/db"
	"Gin_postgres_redis_inventory_ledger/models"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type AccountController struct{ *Srv }

func GetAccountController(s *Srv) *AccountController { return &AccountController{Srv: s} }

type createAccountReq struct {
	FullName string `json:"fullName" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginReq struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func userExists(c *gin.Context) {
	c.JSON(http.StatusOK, app.H{"error": true, "message": "User already exist"})
}

// POST /create-account
func (ac *AccountController) CreateAccount(c *gin.Context) {
	var req createAccountReq
	if !bindAndValidate(c, &req) {
		return
	}
	ctx := c.Request.Context()

	if _, err := ac.Accounts.FindUserByEmail(ctx, req.Email); err == nil {
		userExists(c)
		return
	} else if !errors.Is(err, db.ErrNotFound) {
		internalError(c, err, "Failed to create account")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		internalError(c, err, "Failed to create account")
		return
	}
	u := &models.User{FullName: req.FullName, Email: req.Email, PasswordHash: hash}
	if err := ac.Accounts.CreateUser(ctx, u); err != nil {
		// 并发注册同一邮箱：唯一索引兜底
		if errors.Is(err, db.ErrUserExists) {
			userExists(c)
			return
		}
		internalError(c, err, "Failed to create account")
		return
	}

	token, err := ac.Tokens.Issue(u)
	if err != nil {
		internalError(c, err, "Failed to create account")
		return
	}
	log.Info().Str("user", u.ID).Msg("account created")
	c.JSON(http.StatusOK, app.H{
		"error":       false,
		"user":        u.Profile(),
		"accessToken": token,
		"message":     "Registration Successful",
	})
}

// POST /login
func (ac *AccountController) Login(c *gin.Context) {
	var req loginReq
	if !bindAndValidate(c, &req) {
		return
	}

	u, err := ac.Accounts.FindUserByEmail(c.Request.Context(), req.Email)
	if errors.Is(err, db.ErrNotFound) {
		fail(c, http.StatusBadRequest, "User not found")
		return
	}
	if err != nil {
		internalError(c, err, "Failed to log in")
		return
	}
	if !auth.CheckPassword(u.PasswordHash, req.Password) {
		fail(c, http.StatusBadRequest, "Invalid Credentials")
		return
	}

	token, err := ac.Tokens.Issue(u)
	if err != nil {
		internalError(c, err, "Failed to log in")
		return
	}
	c.JSON(http.StatusOK, app.H{
		"error":       false,
		"message":     "Login successful",
		"email":       req.Email,
		"accessToken": token,
	})
}

// GET /get-user（需要 BearerAuth）
func (ac *AccountController) GetUser(c *gin.Context) {
	claims := app.GetClaims(c)
	if claims == nil {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	u, err := ac.Accounts.FindUserByID(c.Request.Context(), claims.User.ID)
	if errors.Is(err, db.ErrNotFound) {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	if err != nil {
		internalError(c, err, "Failed to load user")
		return
	}
	c.JSON(http.StatusOK, app.H{"user": u.Profile(), "message": ""})
}
