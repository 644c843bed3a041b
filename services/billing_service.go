package services

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"
)

// Response from the hosted billing API. Entitlements with a nil or future
// expires_date are active.
type billingSubscriberResponse struct {
	Subscriber struct {
		OriginalAppUserID string `json:"original_app_user_id"`
		Entitlements      map[string]struct {
			ExpiresDate *time.Time `json:"expires_date"`
		} `json:"entitlements"`
	} `json:"subscriber"`
}

type SubscriptionStatus struct {
	HasActiveSubscription bool     `json:"hasActiveSubscription"`
	ActiveEntitlements    []string `json:"activeEntitlements"`
	CustomerID            string   `json:"customerId,omitempty"`
}

// CheckSubscription asks the billing API which entitlements the user holds.
// Uses BILLING_ENDPOINT and BILLING_API_KEY from env; when billing is not
// configured the user is treated as unsubscribed so local development works
// without an account.
func CheckSubscription(userID uint) (SubscriptionStatus, error) {
	endpoint := os.Getenv("BILLING_ENDPOINT")
	apiKey := os.Getenv("BILLING_API_KEY")

	if endpoint == "" || apiKey == "" {
		log.Printf("[MOCK BILLING] billing not configured, user %d treated as unsubscribed", userID)
		return SubscriptionStatus{ActiveEntitlements: []string{}}, nil
	}

	url := fmt.Sprintf("%s/subscribers/%d", strings.TrimRight(endpoint, "/"), userID)
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return SubscriptionStatus{}, fmt.Errorf("cannot build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return SubscriptionStatus{}, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return SubscriptionStatus{}, fmt.Errorf("HTTP error %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var br billingSubscriberResponse
	if err := json.Unmarshal(bodyBytes, &br); err != nil {
		return SubscriptionStatus{}, fmt.Errorf("JSON parse error: %w", err)
	}

	now := time.Now().UTC()
	active := []string{}
	for name, ent := range br.Subscriber.Entitlements {
		if ent.ExpiresDate == nil || ent.ExpiresDate.After(now) {
			active = append(active, name)
		}
	}

	return SubscriptionStatus{
		HasActiveSubscription: len(active) > 0,
		ActiveEntitlements:    active,
		CustomerID:            br.Subscriber.OriginalAppUserID,
	}, nil
}
