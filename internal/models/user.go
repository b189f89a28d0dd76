package models

import "time"

// Budget is the traveler's spending tier.
type Budget string

const (
	BudgetLow    Budget = "Low"
	BudgetMedium Budget = "Medium"
	BudgetHigh   Budget = "High"
)

// ValidBudget reports whether b is one of the three known tiers.
func ValidBudget(b Budget) bool {
	return b == BudgetLow || b == BudgetMedium || b == BudgetHigh
}

// Travel style tags. Profiles carry any combination of these.
const (
	StyleBackpacker = "Backpacker"
	StyleLuxury     = "Luxury"
	StyleAdventure  = "Adventure"
	StyleCultural   = "Cultural"
	StyleRelax      = "Relax"
	StyleParty      = "Party"
)

// User roles.
const (
	RoleCustomer = "customer"
	RoleBusiness = "business"
)

// UserProfile is the flat per-user document stored in the "profiles" collection.
// The password hash is never serialized to JSON.
type UserProfile struct {
	ID          string   `bson:"id" json:"id"`
	Name        string   `bson:"name" json:"name"`
	Age         int      `bson:"age,omitempty" json:"age,omitempty"`
	Country     string   `bson:"country,omitempty" json:"country,omitempty"`
	Bio         string   `bson:"bio,omitempty" json:"bio,omitempty"`
	Budget      Budget   `bson:"budget,omitempty" json:"budget,omitempty"`
	TravelStyle []string `bson:"travel_style,omitempty" json:"travelStyle"`
	Interests   []string `bson:"interests,omitempty" json:"interests"`
	AvatarURL   string   `bson:"avatar_url,omitempty" json:"avatarUrl,omitempty"`
	Destination string   `bson:"destination,omitempty" json:"destination,omitempty"`
	Dates       string   `bson:"dates,omitempty" json:"dates,omitempty"`

	Email    string `bson:"email,omitempty" json:"email,omitempty"`
	Password string `bson:"password,omitempty" json:"-"`
	Role     string `bson:"role,omitempty" json:"role,omitempty"`
	Language string `bson:"language,omitempty" json:"language,omitempty"`
	Theme    string `bson:"theme,omitempty" json:"theme,omitempty"`

	CreatedAt time.Time `bson:"created_at,omitempty" json:"createdAt,omitempty"`
	UpdatedAt time.Time `bson:"updated_at,omitempty" json:"updatedAt,omitempty"`
}

// ProfileFieldBSON maps the profile's JSON field names to their BSON keys.
// Partial updates arrive keyed by JSON name; unknown keys are dropped.
var ProfileFieldBSON = map[string]string{
	"name":        "name",
	"age":         "age",
	"country":     "country",
	"bio":         "bio",
	"budget":      "budget",
	"travelStyle": "travel_style",
	"interests":   "interests",
	"avatarUrl":   "avatar_url",
	"destination": "destination",
	"dates":       "dates",
	"email":       "email",
	"role":        "role",
	"language":    "language",
	"theme":       "theme",
}
