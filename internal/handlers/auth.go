package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/microsoft/customer-chatbot-solution-accelerator-sub001/internal/database"
	"github.com/microsoft/customer-chatbot-solution-accelerator-sub001/internal/middleware"
	"github.com/microsoft/customer-chatbot-solution-accelerator-sub001/internal/models"
	"github.com/microsoft/customer-chatbot-solution-accelerator-sub001/internal/utils"
)

type AuthHandler struct {
	Store *database.Store
}

func NewAuthHandler(store *database.Store) *AuthHandler {
	return &AuthHandler{Store: store}
}

// Me retourne l'identité résolue — utilisateur authentifié ou invité
// synthétisé, jamais un 401 (endpoint accessible aux invités par design).
func (h *AuthHandler) Me(c *gin.Context) {
	user := middleware.CurrentUser(c)

	if !user.IsGuest {
		if stored := h.Store.GetUser(c.Request.Context(), user.ID); stored != nil {
			user = *stored
		}
	}

	c.JSON(http.StatusOK, user)
}

// Register crée un compte local (email unique, mot de passe bcrypt).
func (h *AuthHandler) Register(c *gin.Context) {
	var input struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Données invalides"})
		return
	}
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))
	if input.Name == "" || input.Email == "" || len(input.Password) < 8 {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "name, email et password (8 caractères minimum) requis"})
		return
	}

	ctx := c.Request.Context()
	if existing := h.Store.GetUserByEmail(ctx, input.Email); existing != nil {
		c.JSON(http.StatusConflict, gin.H{"detail": "Un compte avec cet email existe déjà"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Erreur création compte"})
		return
	}

	user := models.User{
		ID:        uuid.NewString(),
		Name:      input.Name,
		Email:     input.Email,
		Password:  string(hashed),
		IsGuest:   false,
		CreatedAt: time.Now().UTC(),
	}
	h.Store.CreateUser(ctx, user)

	token, err := utils.GenerateJWT(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Erreur génération token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"token": token, "user": user})
}

// Login authentifie un compte local et retourne un JWT.
func (h *AuthHandler) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Données invalides"})
		return
	}
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))

	user := h.Store.GetUserByEmail(c.Request.Context(), input.Email)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Email ou mot de passe incorrect"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Email ou mot de passe incorrect"})
		return
	}

	token, err := utils.GenerateJWT(*user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Erreur génération token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

// DebugAuth montre ce que le serveur voit (headers d'authentification et
// identité résolue) pour diagnostiquer les problèmes de session côté client.
func (h *AuthHandler) DebugAuth(c *gin.Context) {
	user := middleware.CurrentUser(c)

	c.JSON(http.StatusOK, gin.H{
		"authorization_header": c.GetHeader("Authorization") != "",
		"guest_id_header":      c.GetHeader("X-Guest-ID"),
		"resolved_user":        user,
	})
}
