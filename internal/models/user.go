package models

// User is a dashboard account. Password holds a bcrypt hash and is never serialized.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"-"`
}

// Revenue is the revenue booked for one month
type Revenue struct {
	Month   string `json:"month"`
	Revenue int64  `json:"revenue"`
}
