package agents

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"

	"github.com/microsoft/customer-chatbot-solution-accelerator-sub001/internal/config"
	"github.com/microsoft/customer-chatbot-solution-accelerator-sub001/internal/credentials"
	"github.com/microsoft/customer-chatbot-solution-accelerator-sub001/internal/models"
)

// Client parle au service d'agents conversationnels hébergé :
// POST {endpoint}/agents/{id}/messages → {reply}.
type Client struct {
	endpoint string
	cred     azcore.TokenCredential
	http     *http.Client
}

func NewClient(endpoint string, cred azcore.TokenCredential) *Client {
	return &Client{
		endpoint: endpoint,
		cred:     cred,
		http:     &http.Client{Timeout: 60 * time.Second},
	}
}

type agentMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type agentRequest struct {
	Message string         `json:"message"`
	History []agentMessage `json:"history,omitempty"`
}

type agentResponse struct {
	Reply string `json:"reply"`
}

// SendMessage envoie le message (plus le contexte minimal de session) à
// l'agent nommé et attend sa réponse. Le timeout est porté par le ctx de
// l'appelant — c'est le routeur qui le borne, jamais un appel illimité.
func (c *Client) SendMessage(ctx context.Context, agentID, message string, history []models.ChatMessage) (string, error) {
	payload := agentRequest{Message: message}
	for _, m := range history {
		payload.History = append(payload.History, agentMessage{Role: m.Role, Content: m.Content})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encodage requête agent: %w", err)
	}

	url := fmt.Sprintf("%s/agents/%s/messages", c.endpoint, agentID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	if c.cred != nil {
		scope := config.Getenv("AGENT_TOKEN_SCOPE", "https://ai.azure.com/.default")
		token, err := credentials.Token(ctx, c.cred, scope)
		if err != nil {
			return "", fmt.Errorf("jeton agent impossible à obtenir: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return "", fmt.Errorf("agent %s a répondu %d: %s", agentID, res.StatusCode, string(data))
	}

	var out agentResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("décodage réponse agent: %w", err)
	}
	return out.Reply, nil
}

// Ping vérifie la joignabilité du service d'agents pour /health.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"/health", nil)
	if err != nil {
		return err
	}
	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode >= 500 {
		return fmt.Errorf("service agents a répondu %d", res.StatusCode)
	}
	return nil
}
