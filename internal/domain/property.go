package domain

type Property struct {
	ID             int64    `db:"id" json:"id"`
	Title          string   `db:"title" json:"title"`
	Address        string   `db:"address" json:"address"`
	Deposit        int64    `db:"deposit" json:"deposit"`
	MonthlyRent    int64    `db:"monthly_rent" json:"monthlyRent"`
	MaintenanceFee *int64   `db:"maintenance_fee" json:"maintenanceFee"` // nil = unknown, 0 = no fee
	Description    string   `db:"description" json:"description"`
	PhotosJSON     string   `db:"photos_json" json:"-"`
	Photos         []string `db:"-" json:"photos"`
	Category       string   `db:"category" json:"category"`
	OriginalURL    string   `db:"original_url" json:"originalUrl"`
	IsActive       bool     `db:"is_active" json:"isActive"`
	IsDeleted      bool     `db:"is_deleted" json:"isDeleted"`
	DeletedAt      *string  `db:"deleted_at" json:"deletedAt"`
	CreatedAt      string   `db:"created_at" json:"createdAt"`
	UpdatedAt      string   `db:"updated_at" json:"updatedAt"`
}

// Translatable fields of a property, in the order they are sent for translation.
var PropertyTextFields = []string{"title", "address", "description"}

// Text returns the source text of one of PropertyTextFields.
func (p Property) Text(field string) string {
	switch field {
	case "title":
		return p.Title
	case "address":
		return p.Address
	case "description":
		return p.Description
	}
	return ""
}
