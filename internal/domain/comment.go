package domain

type Comment struct {
	ID            int64   `db:"id"`
	PropertyID    int64   `db:"property_id"`
	UserID        *string `db:"user_id"`
	AuthorName    string  `db:"author_name"`
	Content       string  `db:"content"`
	AuthorContact *string `db:"author_contact"`
	IsAdminOnly   bool    `db:"is_admin_only"`
	AdminMemo     string  `db:"admin_memo"`
	AdminReply    string  `db:"admin_reply"`
	IsDeleted     bool    `db:"is_deleted"`
	CreatedAt     string  `db:"created_at"`
	UpdatedAt     string  `db:"updated_at"`
}

func (c Comment) AuthoredBy(userID string) bool {
	return userID != "" && c.UserID != nil && *c.UserID == userID
}

// CommentView is what a particular viewer is allowed to see of a comment.
// Restricted fields are omitted rather than rejected.
type CommentView struct {
	ID            int64   `json:"id"`
	PropertyID    int64   `json:"propertyId"`
	AuthorName    string  `json:"authorName"`
	Content       *string `json:"content,omitempty"`
	AuthorContact *string `json:"authorContact,omitempty"`
	IsAdminOnly   bool    `json:"isAdminOnly"`
	AdminMemo     *string `json:"adminMemo,omitempty"`
	AdminReply    *string `json:"adminReply,omitempty"`
	Hidden        bool    `json:"hidden"`
	Mine          bool    `json:"mine"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
}
