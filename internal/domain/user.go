package domain

type User struct {
	ID       string `db:"id" json:"id"`
	Email    string `db:"email" json:"email"`
	Name     string `db:"name" json:"name"`
	Hash     string `db:"password_hash" json:"-"`
	Verified bool   `db:"verified" json:"verified"`
}

func (u *User) LogID() string { return u.ID }
