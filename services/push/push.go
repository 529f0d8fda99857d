package push

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	webpush "github.com/SherClockHolmes/webpush-go"
)

/*
 * Web push delivery, the offline fallback for challenge invitations. Delivery is
 * best-effort: the challenge record is durable regardless of whether the push
 * reaches the browser, so failures here are logged, never surfaced to the sender.
 */

// Notifier sends web push messages using the VAPID keys from the environment.
type Notifier struct {
	subscriber      string
	vapidPublicKey  string
	vapidPrivateKey string
}

func NewNotifier() *Notifier {
	return &Notifier{
		subscriber:      os.Getenv("VAPID_SUBSCRIBER"),
		vapidPublicKey:  os.Getenv("VAPID_PUBLIC_KEY"),
		vapidPrivateKey: os.Getenv("VAPID_PRIVATE_KEY"),
	}
}

// Configured reports whether VAPID keys are present. Without them Send is a no-op.
func (n *Notifier) Configured() bool {
	return n.vapidPublicKey != "" && n.vapidPrivateKey != ""
}

// Send pushes a payload to a stored browser PushSubscription blob.
func (n *Notifier) Send(subscriptionJSON []byte, payload interface{}) error {
	if !n.Configured() {
		log.Println("[PUSH] VAPID keys not configured, skipping push delivery")
		return nil
	}
	if len(subscriptionJSON) == 0 {
		return fmt.Errorf("empty push subscription")
	}

	var sub webpush.Subscription
	if err := json.Unmarshal(subscriptionJSON, &sub); err != nil {
		return fmt.Errorf("error parsing push subscription: %v", err)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("error marshaling push payload: %v", err)
	}

	resp, err := webpush.SendNotification(body, &sub, &webpush.Options{
		Subscriber:      n.subscriber,
		VAPIDPublicKey:  n.vapidPublicKey,
		VAPIDPrivateKey: n.vapidPrivateKey,
		TTL:             60,
	})
	if err != nil {
		return fmt.Errorf("error sending push notification: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("push endpoint returned status %d", resp.StatusCode)
	}
	return nil
}
