package domain

type Favorite struct {
	PropertyID  int64  `db:"property_id" json:"propertyId"`
	Title       string `db:"title" json:"title"`
	Address     string `db:"address" json:"address"`
	Deposit     int64  `db:"deposit" json:"deposit"`
	MonthlyRent int64  `db:"monthly_rent" json:"monthlyRent"`
	IsActive    bool   `db:"is_active" json:"isActive"`
	CreatedAt   string `db:"created_at" json:"createdAt"`
}
