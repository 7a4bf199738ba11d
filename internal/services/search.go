package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/microsoft/customer-chatbot-solution-accelerator-sub001/internal/database"
	"github.com/microsoft/customer-chatbot-solution-accelerator-sub001/internal/models"
)

const productIndex = "products"

var ElasticClient *elasticsearch.Client

// InitElastic initialise le client Elasticsearch. La recherche plein texte
// est optionnelle : sans ELASTIC_URL on retombe sur un scan du catalogue.
func InitElastic() error {
	url := os.Getenv("ELASTIC_URL")
	if url == "" {
		return fmt.Errorf("ELASTIC_URL non configuré")
	}

	cfg := elasticsearch.Config{
		Addresses: []string{url},
		Username:  os.Getenv("ELASTIC_USER"),
		Password:  os.Getenv("ELASTIC_PASSWORD"),
	}

	client, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return fmt.Errorf("erreur création client Elasticsearch: %v", err)
	}

	res, err := client.Info()
	if err != nil {
		return fmt.Errorf("erreur connexion Elasticsearch: %v", err)
	}
	defer res.Body.Close()

	ElasticClient = client
	log.Println("✅ Connecté à Elasticsearch")
	return nil
}

// PingElastic vérifie la joignabilité d'Elasticsearch pour /health.
func PingElastic(ctx context.Context) error {
	if ElasticClient == nil {
		return fmt.Errorf("non configuré")
	}
	res, err := ElasticClient.Ping(ElasticClient.Ping.WithContext(ctx))
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("elasticsearch a répondu %s", res.Status())
	}
	return nil
}

//
// --- INDEXATION ---
//

// IndexProduct indexe un produit dans Elasticsearch.
func IndexProduct(p models.Product) {
	if ElasticClient == nil {
		return
	}

	data, _ := json.Marshal(p)
	req := esapi.IndexRequest{
		Index:      productIndex,
		DocumentID: p.ID,
		Body:       bytes.NewReader(data),
		Refresh:    "true",
	}

	res, err := req.Do(context.Background(), ElasticClient)
	if err != nil {
		log.Println("❌ Erreur envoi Elastic:", err)
		return
	}
	defer res.Body.Close()

	if res.IsError() {
		log.Printf("⚠️ Elastic a renvoyé une erreur pour %s: %s", p.Title, res.String())
	}
}

// IndexCatalog indexe tout le catalogue (lancé en tâche de fond au démarrage).
func IndexCatalog(ctx context.Context, store *database.Store) {
	if ElasticClient == nil {
		return
	}
	products := store.ListProducts(ctx, "", 0)
	for _, p := range products {
		IndexProduct(p)
	}
	log.Printf("✅ %d produits indexés dans Elasticsearch", len(products))
}

//
// --- RECHERCHE ---
//

// SearchProducts cherche des produits par titre, description ou tags.
func SearchProducts(ctx context.Context, query string) ([]models.Product, error) {
	if ElasticClient == nil {
		return nil, errors.New("client Elasticsearch non initialisé")
	}

	var buf bytes.Buffer
	q := map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  query,
				"fields": []string{"title", "description", "tags"},
			},
		},
	}
	if err := json.NewEncoder(&buf).Encode(q); err != nil {
		return nil, fmt.Errorf("erreur encodage requête: %v", err)
	}

	req := esapi.SearchRequest{
		Index: []string{productIndex},
		Body:  &buf,
	}
	res, err := req.Do(ctx, ElasticClient)
	if err != nil {
		return nil, fmt.Errorf("erreur requête Elastic: %v", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("index non trouvé ou vide: %s", res.Status())
	}

	var r struct {
		Hits struct {
			Hits []struct {
				Source models.Product `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, fmt.Errorf("erreur décodage JSON: %v", err)
	}

	results := make([]models.Product, 0, len(r.Hits.Hits))
	for _, hit := range r.Hits.Hits {
		results = append(results, hit.Source)
	}
	return results, nil
}
