package event

import "time"

// SubscriptionCreatedDestination is the subject accepted subscriptions are announced on.
const SubscriptionCreatedDestination string = "subscription.created"

// SubscriptionCreatedMessage omits cpf and phone; consumers needing them read the record.
type SubscriptionCreatedMessage struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
