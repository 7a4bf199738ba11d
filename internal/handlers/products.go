package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/microsoft/customer-chatbot-solution-accelerator-sub001/internal/cache"
	"github.com/microsoft/customer-chatbot-solution-accelerator-sub001/internal/database"
	"github.com/microsoft/customer-chatbot-solution-accelerator-sub001/internal/models"
	"github.com/microsoft/customer-chatbot-solution-accelerator-sub001/internal/services"
)

type ProductHandler struct {
	Store *database.Store
}

func NewProductHandler(store *database.Store) *ProductHandler {
	return &ProductHandler{Store: store}
}

// List retourne le catalogue, filtrable par catégorie et prix minimum.
// La liste non filtrée passe par le cache Redis (clé products:all, TTL 1h).
func (h *ProductHandler) List(c *gin.Context) {
	category := c.Query("category")
	minPriceParam := c.Query("min_price")

	minPrice := 0.0
	if minPriceParam != "" {
		v, err := strconv.ParseFloat(minPriceParam, 64)
		if err != nil || v < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "min_price doit être un nombre positif"})
			return
		}
		minPrice = v
	}

	// ✅ Cache uniquement pour la liste complète
	cacheKey := "products:all"
	if category == "" && minPrice == 0 {
		if val, err := cache.GetCache(cacheKey); err == nil && val != "" {
			var cached []models.Product
			if err := json.Unmarshal([]byte(val), &cached); err == nil {
				c.JSON(http.StatusOK, cached)
				return
			}
		}
	}

	products := h.Store.ListProducts(c.Request.Context(), category, minPrice)

	if category == "" && minPrice == 0 {
		if data, err := json.Marshal(products); err == nil {
			cache.SetCache(cacheKey, data, time.Hour)
		}
	}

	c.JSON(http.StatusOK, products)
}

// Get retourne un produit par id, 404 sinon.
func (h *ProductHandler) Get(c *gin.Context) {
	id := c.Param("id")

	product := h.Store.GetProduct(c.Request.Context(), id)
	if product == nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Produit introuvable"})
		return
	}
	c.JSON(http.StatusOK, product)
}

// Categories retourne les catégories distinctes du catalogue.
func (h *ProductHandler) Categories(c *gin.Context) {
	categories := h.Store.ListCategories(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// Search cherche dans Elasticsearch, avec repli sur un scan du catalogue si
// l'index est absent ou vide.
func (h *ProductHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "paramètre 'q' manquant"})
		return
	}

	// 🔎 1️⃣ Recherche Elasticsearch (prioritaire)
	results, err := services.SearchProducts(c.Request.Context(), query)
	if err == nil && len(results) > 0 {
		c.JSON(http.StatusOK, results)
		return
	}

	// 🔁 2️⃣ Repli : scan du catalogue et filtre en mémoire
	products := h.Store.ListProducts(c.Request.Context(), "", 0)
	matched := []models.Product{}
	for _, p := range products {
		if containsIgnoreCase(p.Title, query) || containsIgnoreCase(p.Description, query) || containsTagsIgnoreCase(p.Tags, query) {
			matched = append(matched, p)
		}
	}
	c.JSON(http.StatusOK, matched)
}

func containsIgnoreCase(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func containsTagsIgnoreCase(tags []string, query string) bool {
	for _, tag := range tags {
		if containsIgnoreCase(tag, query) {
			return true
		}
	}
	return false
}
