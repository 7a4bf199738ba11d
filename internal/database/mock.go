package database

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/microsoft/customer-chatbot-solution-accelerator-sub001/internal/models"
)

// mockStore est le repli en mémoire quand Cosmos n'est pas configuré.
// Il permet de faire tourner toute la démo (catalogue, panier, chat) sans
// aucune dépendance cloud. Protégé par mutex : l'état est partagé entre
// requêtes concurrentes.
type mockStore struct {
	mu       sync.RWMutex
	products map[string]models.Product
	users    map[string]models.User
	carts    map[string]models.Cart // user_id → panier
	messages []models.ChatMessage
	orders   map[string]models.Order
}

func newMockStore() *mockStore {
	m := &mockStore{
		products: make(map[string]models.Product),
		users:    make(map[string]models.User),
		carts:    make(map[string]models.Cart),
		orders:   make(map[string]models.Order),
	}
	for _, p := range mockCatalog() {
		m.products[p.ID] = p
	}
	return m
}

// mockCatalog retourne le catalogue de démonstration. Timestamps figés pour
// garder des réponses déterministes.
func mockCatalog() []models.Product {
	seeded := time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC)
	return []models.Product{
		{
			ID: "prod-001", Title: "ProBook Laptop 15\"", Price: 899.99, OriginalPrice: 1099.99,
			Rating: 4.6, ReviewCount: 284, Image: "https://img.example.com/products/probook-15.jpg",
			Category: "Computers", InStock: true,
			Description: "Lightweight 15-inch laptop with 16GB RAM and a 512GB SSD.",
			Tags:        []string{"laptop", "portable", "work"},
			Specifications: map[string]string{
				"cpu": "8-core", "ram": "16GB", "storage": "512GB SSD",
			},
			CreatedAt: seeded, UpdatedAt: seeded,
		},
		{
			ID: "prod-002", Title: "Aurora Wireless Headphones", Price: 149.99, OriginalPrice: 199.99,
			Rating: 4.4, ReviewCount: 512, Image: "https://img.example.com/products/aurora-headphones.jpg",
			Category: "Audio", InStock: true,
			Description: "Noise-cancelling over-ear headphones with 30h battery life.",
			Tags:        []string{"headphones", "wireless", "audio"},
			Specifications: map[string]string{
				"battery": "30h", "connectivity": "Bluetooth 5.3",
			},
			CreatedAt: seeded, UpdatedAt: seeded,
		},
		{
			ID: "prod-003", Title: "Pulse Smartwatch", Price: 249.0, OriginalPrice: 249.0,
			Rating: 4.2, ReviewCount: 198, Image: "https://img.example.com/products/pulse-watch.jpg",
			Category: "Wearables", InStock: true,
			Description: "Fitness tracking smartwatch with GPS and heart-rate monitoring.",
			Tags:        []string{"smartwatch", "fitness", "gps"},
			Specifications: map[string]string{
				"battery": "7 days", "waterproof": "5 ATM",
			},
			CreatedAt: seeded, UpdatedAt: seeded,
		},
		{
			ID: "prod-004", Title: "Nimbus Mechanical Keyboard", Price: 89.99, OriginalPrice: 119.99,
			Rating: 4.7, ReviewCount: 341, Image: "https://img.example.com/products/nimbus-keyboard.jpg",
			Category: "Accessories", InStock: true,
			Description: "Hot-swappable mechanical keyboard with RGB backlight.",
			Tags:        []string{"keyboard", "mechanical", "rgb"},
			Specifications: map[string]string{
				"switches": "tactile", "layout": "TKL",
			},
			CreatedAt: seeded, UpdatedAt: seeded,
		},
		{
			ID: "prod-005", Title: "Vista 4K Monitor 27\"", Price: 329.99, OriginalPrice: 399.99,
			Rating: 4.5, ReviewCount: 156, Image: "https://img.example.com/products/vista-monitor.jpg",
			Category: "Computers", InStock: true,
			Description: "27-inch 4K IPS monitor with USB-C and 99% sRGB coverage.",
			Tags:        []string{"monitor", "4k", "usb-c"},
			Specifications: map[string]string{
				"resolution": "3840x2160", "panel": "IPS",
			},
			CreatedAt: seeded, UpdatedAt: seeded,
		},
		{
			ID: "prod-006", Title: "Echo Portable Speaker", Price: 59.99, OriginalPrice: 79.99,
			Rating: 4.1, ReviewCount: 623, Image: "https://img.example.com/products/echo-speaker.jpg",
			Category: "Audio", InStock: false,
			Description: "Compact waterproof Bluetooth speaker with 12h playtime.",
			Tags:        []string{"speaker", "bluetooth", "portable"},
			Specifications: map[string]string{
				"battery": "12h", "waterproof": "IPX7",
			},
			CreatedAt: seeded, UpdatedAt: seeded,
		},
		{
			ID: "prod-007", Title: "Glide Wireless Mouse", Price: 39.99, OriginalPrice: 49.99,
			Rating: 4.3, ReviewCount: 789, Image: "https://img.example.com/products/glide-mouse.jpg",
			Category: "Accessories", InStock: true,
			Description: "Ergonomic wireless mouse with adjustable DPI up to 16000.",
			Tags:        []string{"mouse", "wireless", "ergonomic"},
			Specifications: map[string]string{
				"dpi": "16000", "battery": "70 days",
			},
			CreatedAt: seeded, UpdatedAt: seeded,
		},
		{
			ID: "prod-008", Title: "Core USB-C Hub 8-in-1", Price: 45.0, OriginalPrice: 45.0,
			Rating: 4.0, ReviewCount: 267, Image: "https://img.example.com/products/core-hub.jpg",
			Category: "Accessories", InStock: true,
			Description: "8-in-1 USB-C hub with HDMI, Ethernet and 100W pass-through.",
			Tags:        []string{"hub", "usb-c", "adapter"},
			Specifications: map[string]string{
				"ports": "8", "power": "100W PD",
			},
			CreatedAt: seeded, UpdatedAt: seeded,
		},
	}
}

// ---------------- Produits ----------------

func (m *mockStore) GetProduct(id string) *models.Product {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if p, ok := m.products[id]; ok {
		return &p
	}
	return nil
}

func (m *mockStore) ListProducts(category string, minPrice float64) []models.Product {
	m.mu.RLock()
	defer m.mu.RUnlock()
	products := []models.Product{}
	for _, p := range m.products {
		if category != "" && !strings.EqualFold(p.Category, category) {
			continue
		}
		if minPrice > 0 && p.Price < minPrice {
			continue
		}
		products = append(products, p)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products
}

func (m *mockStore) ListCategories() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	seen := map[string]bool{}
	categories := []string{}
	for _, p := range m.products {
		if !seen[p.Category] {
			seen[p.Category] = true
			categories = append(categories, p.Category)
		}
	}
	sort.Strings(categories)
	return categories
}

func (m *mockStore) CreateProduct(p models.Product) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products[p.ID] = p
}

func (m *mockStore) UpdateProduct(p models.Product) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[p.ID]; ok {
		m.products[p.ID] = p
	}
}

func (m *mockStore) DeleteProduct(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.products, id)
}

// ---------------- Utilisateurs ----------------

func (m *mockStore) GetUser(id string) *models.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if u, ok := m.users[id]; ok {
		return &u
	}
	return nil
}

func (m *mockStore) GetUserByEmail(email string) *models.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			return &u
		}
	}
	return nil
}

func (m *mockStore) CreateUser(u models.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.ID] = u
}

// ---------------- Paniers ----------------

func (m *mockStore) GetCart(userID string) *models.Cart {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if c, ok := m.carts[userID]; ok {
		return &c
	}
	return nil
}

func (m *mockStore) SaveCart(cart models.Cart) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.carts[cart.UserID] = cart
}

func (m *mockStore) DeleteCart(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.carts, userID)
}

// ---------------- Messages de chat ----------------

func (m *mockStore) AppendChatMessage(msg models.ChatMessage) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, msg)
}

func (m *mockStore) ListChatMessages(sessionID string) []models.ChatMessage {
	m.mu.RLock()
	defer m.mu.RUnlock()
	messages := []models.ChatMessage{}
	for _, msg := range m.messages {
		if msg.SessionID == sessionID {
			messages = append(messages, msg)
		}
	}
	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].Timestamp.Before(messages[j].Timestamp)
	})
	return messages
}

// ---------------- Commandes ----------------

func (m *mockStore) CreateOrder(order models.Order) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders[order.ID] = order
}

func (m *mockStore) GetOrder(id string) *models.Order {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if o, ok := m.orders[id]; ok {
		return &o
	}
	return nil
}

func (m *mockStore) ListOrdersForCustomer(customerID string, limit int64) []models.Order {
	m.mu.RLock()
	defer m.mu.RUnlock()
	orders := []models.Order{}
	for _, o := range m.orders {
		if o.UserID == customerID {
			orders = append(orders, o)
		}
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	if limit > 0 && int64(len(orders)) > limit {
		orders = orders[:limit]
	}
	return orders
}
