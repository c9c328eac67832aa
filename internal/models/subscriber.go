package models

// SubscribeRequest registers an address for job alerts.
type SubscribeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// SubscribeResponse reports the registration outcome. AlreadySubscribed is
// set when the address was registered before this call.
type SubscribeResponse struct {
	Email             string `json:"email"`
	Subscribed        bool   `json:"subscribed"`
	AlreadySubscribed bool   `json:"already_subscribed"`
}

// SubscriptionStatus answers a public membership check.
type SubscriptionStatus struct {
	Email      string `json:"email"`
	Subscribed bool   `json:"subscribed"`
}

// SubscriberList is the admin roster view. Addresses are masked unless the
// admin explicitly asked to reveal them.
type SubscriberList struct {
	Total    int      `json:"total"`
	Revealed bool     `json:"revealed"`
	Emails   []string `json:"emails"`
}
