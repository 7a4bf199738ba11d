package database

import (
	"context"
	"errors"
	"log"
	"sort"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/microsoft/customer-chatbot-solution-accelerator-sub001/internal/models"
)

// Contrat de la couche d'accès : aucune opération ne remonte d'erreur pour
// une indisponibilité. Base non configurée → données mock ; requête en échec
// → log ❌ et valeur sûre (nil pour un item, slice vide pour une liste).
// Les handlers traitent "pas de donnée" — jamais une erreur fatale.

// ---------------- Produits ----------------

func (s *Store) GetProduct(ctx context.Context, id string) *models.Product {
	if !s.Configured() {
		s.warnNotConfigured()
		return s.mock.GetProduct(id)
	}
	db, err := s.database(ctx)
	if err != nil {
		log.Println("❌ Cosmos injoignable (GetProduct):", err)
		return nil
	}
	var p models.Product
	if err := db.Collection(s.col("products")).FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			log.Println("❌ Erreur lecture produit:", err)
		}
		return nil
	}
	return &p
}

// ListProducts filtre par catégorie et prix minimum (zéro = pas de filtre).
func (s *Store) ListProducts(ctx context.Context, category string, minPrice float64) []models.Product {
	if !s.Configured() {
		s.warnNotConfigured()
		return s.mock.ListProducts(category, minPrice)
	}
	db, err := s.database(ctx)
	if err != nil {
		log.Println("❌ Cosmos injoignable (ListProducts):", err)
		return []models.Product{}
	}

	filter := bson.M{}
	if category != "" {
		filter["category"] = category
	}
	if minPrice > 0 {
		filter["price"] = bson.M{"$gte": minPrice}
	}

	cursor, err := db.Collection(s.col("products")).Find(ctx, filter)
	if err != nil {
		log.Println("❌ Erreur requête produits:", err)
		return []models.Product{}
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		log.Println("❌ Erreur décodage produits:", err)
		return []models.Product{}
	}
	return products
}

// ListCategories retourne les catégories distinctes, triées.
func (s *Store) ListCategories(ctx context.Context) []string {
	if !s.Configured() {
		s.warnNotConfigured()
		return s.mock.ListCategories()
	}
	db, err := s.database(ctx)
	if err != nil {
		log.Println("❌ Cosmos injoignable (ListCategories):", err)
		return []string{}
	}
	raw, err := db.Collection(s.col("products")).Distinct(ctx, "category", bson.M{})
	if err != nil {
		log.Println("❌ Erreur lecture catégories:", err)
		return []string{}
	}
	categories := []string{}
	for _, v := range raw {
		if c, ok := v.(string); ok && c != "" {
			categories = append(categories, c)
		}
	}
	sort.Strings(categories)
	return categories
}

func (s *Store) CreateProduct(ctx context.Context, p models.Product) {
	if !s.Configured() {
		s.warnNotConfigured()
		s.mock.CreateProduct(p)
		return
	}
	db, err := s.database(ctx)
	if err != nil {
		log.Println("❌ Cosmos injoignable (CreateProduct):", err)
		return
	}
	if _, err := db.Collection(s.col("products")).InsertOne(ctx, p); err != nil {
		log.Println("❌ Erreur création produit:", err)
	}
}

func (s *Store) UpdateProduct(ctx context.Context, p models.Product) {
	if !s.Configured() {
		s.warnNotConfigured()
		s.mock.UpdateProduct(p)
		return
	}
	db, err := s.database(ctx)
	if err != nil {
		log.Println("❌ Cosmos injoignable (UpdateProduct):", err)
		return
	}
	_, err = db.Collection(s.col("products")).ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if err != nil {
		log.Println("❌ Erreur mise à jour produit:", err)
	}
}

func (s *Store) DeleteProduct(ctx context.Context, id string) {
	if !s.Configured() {
		s.warnNotConfigured()
		s.mock.DeleteProduct(id)
		return
	}
	db, err := s.database(ctx)
	if err != nil {
		log.Println("❌ Cosmos injoignable (DeleteProduct):", err)
		return
	}
	if _, err := db.Collection(s.col("products")).DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		log.Println("❌ Erreur suppression produit:", err)
	}
}

// ---------------- Utilisateurs ----------------

func (s *Store) GetUser(ctx context.Context, id string) *models.User {
	if !s.Configured() {
		s.warnNotConfigured()
		return s.mock.GetUser(id)
	}
	db, err := s.database(ctx)
	if err != nil {
		log.Println("❌ Cosmos injoignable (GetUser):", err)
		return nil
	}
	var u models.User
	if err := db.Collection(s.col("users")).FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			log.Println("❌ Erreur lecture utilisateur:", err)
		}
		return nil
	}
	return &u
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) *models.User {
	if !s.Configured() {
		s.warnNotConfigured()
		return s.mock.GetUserByEmail(email)
	}
	db, err := s.database(ctx)
	if err != nil {
		log.Println("❌ Cosmos injoignable (GetUserByEmail):", err)
		return nil
	}
	var u models.User
	if err := db.Collection(s.col("users")).FindOne(ctx, bson.M{"email": email}).Decode(&u); err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			log.Println("❌ Erreur lecture utilisateur:", err)
		}
		return nil
	}
	return &u
}

func (s *Store) CreateUser(ctx context.Context, u models.User) {
	if !s.Configured() {
		s.warnNotConfigured()
		s.mock.CreateUser(u)
		return
	}
	db, err := s.database(ctx)
	if err != nil {
		log.Println("❌ Cosmos injoignable (CreateUser):", err)
		return
	}
	if _, err := db.Collection(s.col("users")).InsertOne(ctx, u); err != nil {
		log.Println("❌ Erreur création utilisateur:", err)
	}
}

// ---------------- Paniers ----------------

func (s *Store) GetCart(ctx context.Context, userID string) *models.Cart {
	if !s.Configured() {
		s.warnNotConfigured()
		return s.mock.GetCart(userID)
	}
	db, err := s.database(ctx)
	if err != nil {
		log.Println("❌ Cosmos injoignable (GetCart):", err)
		return nil
	}
	var cart models.Cart
	if err := db.Collection(s.col("carts")).FindOne(ctx, bson.M{"user_id": userID}).Decode(&cart); err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			log.Println("❌ Erreur lecture panier:", err)
		}
		return nil
	}
	return &cart
}

// SaveCart upsert le panier complet — la sérialisation est laissée au store,
// dernier écrivain gagnant.
func (s *Store) SaveCart(ctx context.Context, cart models.Cart) {
	if !s.Configured() {
		s.warnNotConfigured()
		s.mock.SaveCart(cart)
		return
	}
	db, err := s.database(ctx)
	if err != nil {
		log.Println("❌ Cosmos injoignable (SaveCart):", err)
		return
	}
	opts := options.Replace().SetUpsert(true)
	if _, err := db.Collection(s.col("carts")).ReplaceOne(ctx, bson.M{"_id": cart.ID}, cart, opts); err != nil {
		log.Println("❌ Erreur sauvegarde panier:", err)
	}
}

func (s *Store) DeleteCart(ctx context.Context, userID string) {
	if !s.Configured() {
		s.warnNotConfigured()
		s.mock.DeleteCart(userID)
		return
	}
	db, err := s.database(ctx)
	if err != nil {
		log.Println("❌ Cosmos injoignable (DeleteCart):", err)
		return
	}
	if _, err := db.Collection(s.col("carts")).DeleteMany(ctx, bson.M{"user_id": userID}); err != nil {
		log.Println("❌ Erreur suppression panier:", err)
	}
}

// ---------------- Messages de chat ----------------

// AppendChatMessage persiste un message, best-effort : un échec est loggé
// mais ne doit jamais bloquer la réponse au client.
func (s *Store) AppendChatMessage(ctx context.Context, msg models.ChatMessage) {
	if !s.Configured() {
		s.warnNotConfigured()
		s.mock.AppendChatMessage(msg)
		return
	}
	db, err := s.database(ctx)
	if err != nil {
		log.Println("❌ Cosmos injoignable (AppendChatMessage):", err)
		return
	}
	if _, err := db.Collection(s.col("chat_messages")).InsertOne(ctx, msg); err != nil {
		log.Println("❌ Erreur persistance message chat:", err)
	}
}

// ListChatMessages retourne l'historique d'une session, ordonné par timestamp.
func (s *Store) ListChatMessages(ctx context.Context, sessionID string) []models.ChatMessage {
	if !s.Configured() {
		s.warnNotConfigured()
		return s.mock.ListChatMessages(sessionID)
	}
	db, err := s.database(ctx)
	if err != nil {
		log.Println("❌ Cosmos injoignable (ListChatMessages):", err)
		return []models.ChatMessage{}
	}
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}})
	cursor, err := db.Collection(s.col("chat_messages")).Find(ctx, bson.M{"session_id": sessionID}, opts)
	if err != nil {
		log.Println("❌ Erreur lecture historique chat:", err)
		return []models.ChatMessage{}
	}
	defer cursor.Close(ctx)

	messages := []models.ChatMessage{}
	if err := cursor.All(ctx, &messages); err != nil {
		log.Println("❌ Erreur décodage historique chat:", err)
		return []models.ChatMessage{}
	}
	return messages
}

// ---------------- Commandes ----------------

func (s *Store) CreateOrder(ctx context.Context, order models.Order) {
	if !s.Configured() {
		s.warnNotConfigured()
		s.mock.CreateOrder(order)
		return
	}
	db, err := s.database(ctx)
	if err != nil {
		log.Println("❌ Cosmos injoignable (CreateOrder):", err)
		return
	}
	if _, err := db.Collection(s.col("transactions")).InsertOne(ctx, order); err != nil {
		log.Println("❌ Erreur création commande:", err)
	}
}

func (s *Store) GetOrder(ctx context.Context, id string) *models.Order {
	if !s.Configured() {
		s.warnNotConfigured()
		return s.mock.GetOrder(id)
	}
	db, err := s.database(ctx)
	if err != nil {
		log.Println("❌ Cosmos injoignable (GetOrder):", err)
		return nil
	}
	var order models.Order
	if err := db.Collection(s.col("transactions")).FindOne(ctx, bson.M{"_id": id}).Decode(&order); err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			log.Println("❌ Erreur lecture commande:", err)
		}
		return nil
	}
	return &order
}

// ListOrdersForCustomer retourne les commandes d'un client, les plus récentes
// d'abord, plafonnées à limit. Les requêtes traversent les partitions : le
// filtre est par client, pas par clé de partition.
func (s *Store) ListOrdersForCustomer(ctx context.Context, customerID string, limit int64) []models.Order {
	if !s.Configured() {
		s.warnNotConfigured()
		return s.mock.ListOrdersForCustomer(customerID, limit)
	}
	db, err := s.database(ctx)
	if err != nil {
		log.Println("❌ Cosmos injoignable (ListOrdersForCustomer):", err)
		return []models.Order{}
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts = opts.SetLimit(limit)
	}
	cursor, err := db.Collection(s.col("transactions")).Find(ctx, bson.M{"user_id": customerID}, opts)
	if err != nil {
		log.Println("❌ Erreur lecture commandes:", err)
		return []models.Order{}
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		log.Println("❌ Erreur décodage commandes:", err)
		return []models.Order{}
	}
	return orders
}
