package webserver

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/defi-mexico/platform-backend/src/api/types"
)

type Auth struct {
	db        *gorm.DB
	jwtSecret []byte
}

func NewAuth(db *gorm.DB, secret []byte) Auth {
	return Auth{db: db, jwtSecret: secret}
}

func (a Auth) Register(c *gin.Context) {
	var req struct {
		Email       string `json:"email" binding:"required,email,max=256"`
		Password    string `json:"password" binding:"required,min=8,max=128"`
		DisplayName string `json:"displayName" binding:"max=128"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": "registration failed"})
		return
	}

	user := types.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		DisplayName:  req.DisplayName,
	}
	if err := a.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"err": "email already registered"})
			return
		}
		log.Printf("Failed to create user: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"err": "registration failed"})
		return
	}

	token, err := a.issueJWT(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": "registration failed"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"token": token, "id": user.ID})
}

func (a Auth) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	var user types.User
	if err := a.db.First(&user, "email = ?", req.Email).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"err": "invalid credentials"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		log.Printf("Failed login for %s from IP %s", req.Email, c.ClientIP())
		c.JSON(http.StatusUnauthorized, gin.H{"err": "invalid credentials"})
		return
	}

	token, err := a.issueJWT(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": "login failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (a Auth) issueJWT(user types.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"uid":   user.ID,
		"admin": user.IsAdmin,
		"exp":   time.Now().Add(24 * time.Hour).Unix(),
	})
	return token.SignedString(a.jwtSecret)
}
