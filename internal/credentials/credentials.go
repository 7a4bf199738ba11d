package credentials

import (
	"context"
	"fmt"
	"os"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"

	"github.com/microsoft/customer-chatbot-solution-accelerator-sub001/internal/config"
)

// New résout l'identité cloud selon l'environnement d'exécution :
//   - APP_ENV=dev → credential interactive locale (Azure CLI)
//   - sinon       → managed identity, scopée sur le client id fourni
//
// Les erreurs de résolution remontent telles quelles à l'appelant — ce
// composant n'avale jamais une erreur.
func New(clientID string) (azcore.TokenCredential, error) {
	if config.IsDev() {
		cred, err := azidentity.NewAzureCLICredential(nil)
		if err != nil {
			return nil, fmt.Errorf("credential CLI locale impossible à résoudre: %w", err)
		}
		return cred, nil
	}

	opts := &azidentity.ManagedIdentityCredentialOptions{}
	if clientID != "" {
		opts.ID = azidentity.ClientID(clientID)
	}
	cred, err := azidentity.NewManagedIdentityCredential(opts)
	if err != nil {
		return nil, fmt.Errorf("managed identity impossible à résoudre: %w", err)
	}
	return cred, nil
}

// NewFromEnv résout la credential avec le client id configuré (AZURE_CLIENT_ID).
func NewFromEnv() (azcore.TokenCredential, error) {
	return New(os.Getenv("AZURE_CLIENT_ID"))
}

// Token récupère un jeton d'accès pour le scope donné.
func Token(ctx context.Context, cred azcore.TokenCredential, scope string) (string, error) {
	tk, err := cred.GetToken(ctx, policy.TokenRequestOptions{Scopes: []string{scope}})
	if err != nil {
		return "", err
	}
	return tk.Token, nil
}
