package storefront

import (
	"context"
	"net/http"
	"regexp"
	"strings"
)

// PaymentMethods are the supported mobile money providers.
var PaymentMethods = []string{"OM", "WAVE"}

// Senegalese mobile numbers: 9 digits starting with 7.
var phonePattern = regexp.MustCompile(`^7[0-9]{8}$`)

// SubmitOrderInput is the checkout form payload.
type SubmitOrderInput struct {
	Adresse        string `json:"adresse"`
	AdditionalInfo string `json:"additionalInfo,omitempty"`
	PaymentMethod  string `json:"paymentMethod"`
	PhoneNumber    string `json:"phoneNumber"`
}

// OrderReceipt is the confirmation returned on successful submission.
type OrderReceipt struct {
	OrderID string `json:"orderId"`
	Message string `json:"message"`
}

// SubmitOrder validates the checkout form and posts the order. Validation
// failures never reach the network. The cart is not cleared locally; the
// server owns the cart-to-order transition and the next FetchCart reflects it.
func (c *Client) SubmitOrder(ctx context.Context, input SubmitOrderInput) (*OrderReceipt, error) {
	if err := validateSubmitOrder(input); err != nil {
		return nil, err
	}

	var receipt OrderReceipt
	if err := c.do(ctx, http.MethodPost, "/orders/submit-order", input, &receipt); err != nil {
		return nil, err
	}
	return &receipt, nil
}

func validateSubmitOrder(input SubmitOrderInput) *ValidationError {
	if strings.TrimSpace(input.Adresse) == "" {
		return &ValidationError{Message: "L'adresse de livraison est requise"}
	}
	if !validPaymentMethod(input.PaymentMethod) {
		return &ValidationError{Message: "Veuillez choisir un moyen de paiement"}
	}
	if !phonePattern.MatchString(input.PhoneNumber) {
		return &ValidationError{Message: "Le numéro de téléphone est invalide"}
	}
	return nil
}

func validPaymentMethod(method string) bool {
	for _, allowed := range PaymentMethods {
		if method == allowed {
			return true
		}
	}
	return false
}
