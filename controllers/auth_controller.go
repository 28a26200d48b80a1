package controllers

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"go-cropadvisor/config"
	"go-cropadvisor/middleware"
	"go-cropadvisor/models"
	"go-cropadvisor/utils"
)

// AuthController 处理用户认证相关的请求
type AuthController struct {
	DB     *sql.DB
	JWT    config.JWTConfig
	Logger *zap.Logger
}

// NewAuthController 创建一个新的AuthController实例
func NewAuthController(db *sql.DB, jwtCfg config.JWTConfig, logger *zap.Logger) *AuthController {
	return &AuthController{DB: db, JWT: jwtCfg, Logger: logger}
}

// CredentialsRequest 注册与登录请求
type CredentialsRequest struct {
	Username string `json:"username" binding:"required,min=3,max=64"`
	Password string `json:"password" binding:"required,min=6,max=72"`
}

// Register 用户注册
func (c *AuthController) Register(ctx *gin.Context) {
	if c.DB == nil {
		utils.ServiceUnavailable(ctx, "user accounts are disabled")
		return
	}

	var req CredentialsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(ctx, err.Error())
		return
	}

	// 检查用户名是否已存在
	var count int
	err := c.DB.QueryRowContext(ctx.Request.Context(), "SELECT COUNT(*) FROM users WHERE username = ?", req.Username).Scan(&count)
	if err != nil {
		c.Logger.Error("failed to check username", zap.Error(err))
		utils.InternalServerError(ctx, "数据库查询失败")
		return
	}
	if count > 0 {
		utils.Conflict(ctx, "用户名已存在")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.InternalServerError(ctx, "密码加密失败")
		return
	}

	result, err := c.DB.ExecContext(ctx.Request.Context(),
		"INSERT INTO users (username, password_hash, created_at) VALUES (?, ?, ?)",
		req.Username, string(hashed), time.Now(),
	)
	if err != nil {
		c.Logger.Error("failed to insert user", zap.Error(err))
		utils.InternalServerError(ctx, "注册失败")
		return
	}

	userID, err := result.LastInsertId()
	if err != nil {
		utils.InternalServerError(ctx, "获取用户ID失败")
		return
	}

	token, err := c.generateToken(int(userID))
	if err != nil {
		utils.InternalServerError(ctx, "生成令牌失败")
		return
	}

	utils.Created(ctx, gin.H{
		"token":    token,
		"username": req.Username,
		"userId":   userID,
	})
}

// Login 用户登录
func (c *AuthController) Login(ctx *gin.Context) {
	if c.DB == nil {
		utils.ServiceUnavailable(ctx, "user accounts are disabled")
		return
	}

	var req CredentialsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(ctx, err.Error())
		return
	}

	var user models.User
	err := c.DB.QueryRowContext(ctx.Request.Context(),
		"SELECT id, password_hash FROM users WHERE username = ?", req.Username,
	).Scan(&user.ID, &user.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			utils.Unauthorized(ctx, "用户名或密码错误")
		} else {
			c.Logger.Error("failed to query user", zap.Error(err))
			utils.InternalServerError(ctx, "数据库查询失败")
		}
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		utils.Unauthorized(ctx, "用户名或密码错误")
		return
	}

	token, err := c.generateToken(user.ID)
	if err != nil {
		utils.InternalServerError(ctx, "生成令牌失败")
		return
	}

	ctx.JSON(http.StatusOK, utils.Response{
		Code:    http.StatusOK,
		Message: "登录成功",
		Data: gin.H{
			"token":    token,
			"username": req.Username,
			"userId":   user.ID,
		},
	})
}

// 生成JWT令牌
func (c *AuthController) generateToken(userID int) (string, error) {
	now := time.Now()
	claims := middleware.Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.JWT.TTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(c.JWT.Secret))
}
