package repos

import (
	"log"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// One connection: keeps ":memory:" databases and PRAGMAs stable across the pool.
	db.SetMaxOpenConns(1)
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Seed baseline listings if DB is empty
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}
	// Ensure demo users exist (idempotent; safe to run every start)
	if err := seedUsers(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Users & Sessions
CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  verified INTEGER NOT NULL DEFAULT 0,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(LOWER(email));

CREATE TABLE IF NOT EXISTS verification_tokens(
  token TEXT PRIMARY KEY,
  user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  expires_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_verification_user ON verification_tokens(user_id);

CREATE TABLE IF NOT EXISTS sessions(
  id TEXT PRIMARY KEY,               -- same value as the 'sid' cookie
  user_id TEXT NULL REFERENCES users(id) ON DELETE SET NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  last_seen  TEXT
);
CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id);

-- Properties
CREATE TABLE IF NOT EXISTS properties(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  title TEXT NOT NULL,
  address TEXT NOT NULL,
  deposit INTEGER NOT NULL DEFAULT 0 CHECK (deposit >= 0),
  monthly_rent INTEGER NOT NULL DEFAULT 0 CHECK (monthly_rent >= 0),
  maintenance_fee INTEGER NULL CHECK (maintenance_fee IS NULL OR maintenance_fee >= 0),
  description TEXT NOT NULL DEFAULT '',
  photos_json TEXT NOT NULL DEFAULT '[]',
  category TEXT NOT NULL DEFAULT '',
  original_url TEXT NOT NULL DEFAULT '',
  is_active INTEGER NOT NULL DEFAULT 1,
  is_deleted INTEGER NOT NULL DEFAULT 0,
  deleted_at TEXT NULL,
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL DEFAULT '',
  CHECK ((is_deleted = 1) = (deleted_at IS NOT NULL))
);
CREATE INDEX IF NOT EXISTS idx_properties_deleted    ON properties(is_deleted);
CREATE INDEX IF NOT EXISTS idx_properties_category   ON properties(category);
CREATE INDEX IF NOT EXISTS idx_properties_created_at ON properties(created_at);

-- Comments (inquiries)
CREATE TABLE IF NOT EXISTS comments(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  property_id INTEGER NOT NULL REFERENCES properties(id) ON DELETE CASCADE,
  user_id TEXT NULL REFERENCES users(id) ON DELETE SET NULL,
  author_name TEXT NOT NULL,
  content TEXT NOT NULL,
  author_contact TEXT NULL,
  is_admin_only INTEGER NOT NULL DEFAULT 0,
  admin_memo TEXT NOT NULL DEFAULT '',
  admin_reply TEXT NOT NULL DEFAULT '',
  is_deleted INTEGER NOT NULL DEFAULT 0,
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_comments_property ON comments(property_id, is_deleted);

-- Favorites
CREATE TABLE IF NOT EXISTS favorites(
  user_id     TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  property_id INTEGER NOT NULL REFERENCES properties(id) ON DELETE CASCADE,
  created_at  TEXT DEFAULT CURRENT_TIMESTAMP,
  PRIMARY KEY (user_id, property_id)
);

-- Per-session UI state (language overlay, admin flag, custom categories)
CREATE TABLE IF NOT EXISTS ui_state(
  session_id TEXT NOT NULL,
  key TEXT NOT NULL,
  value TEXT NOT NULL,
  updated_at TEXT DEFAULT CURRENT_TIMESTAMP,
  PRIMARY KEY (session_id, key)
);
`
	_, err := db.Exec(schema)
	return err
}

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM properties`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo properties")

	tx := db.MustBegin()
	tx.MustExec(`INSERT INTO properties(title,address,deposit,monthly_rent,maintenance_fee,description,photos_json,category,original_url,created_at) VALUES
	  ('역세권 풀옵션 원룸','서울 마포구 서교동 123-4',5000000,550000,70000,'홍대입구역 도보 5분, 채광 좋은 남향 원룸입니다.','["https://res.cloudinary.com/demo/image/upload/room-1.jpg"]','원룸','https://example.com/listing/1','2025-01-10T09:00:00Z'),
	  ('신축 투룸 오피스텔','서울 관악구 봉천동 45-6',10000000,800000,NULL,'신축 건물, 엘리베이터와 주차 가능.','[]','오피스텔','','2025-01-12T09:00:00Z'),
	  ('조용한 주택가 원룸','서울 동작구 흑석동 7-8',3000000,450000,0,'중앙대 인근, 관리비 없음.','[]','원룸','','2025-01-15T09:00:00Z')`)

	return tx.Commit()
}

// seedUsers ensures two verified demo users exist (idempotent).
func seedUsers(db *sqlx.DB) error {
	type u struct {
		ID, Email, Name, Hash string
	}
	mk := func(id, email, name, raw string) u {
		h, _ := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
		return u{ID: id, Email: email, Name: name, Hash: string(h)}
	}

	users := []u{
		mk("u-alice", "alice@housingbuddy.test", "Alice", "Passw0rd!"),
		mk("u-bob", "bob@housingbuddy.test", "Bob", "Passw0rd!"),
	}

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	for _, x := range users {
		if _, err := tx.Exec(`
			INSERT INTO users(id,email,name,password_hash,verified)
			VALUES(?,?,?,?,1)
			ON CONFLICT(email) DO NOTHING
		`, x.ID, x.Email, x.Name, x.Hash); err != nil {
			return err
		}
	}

	return tx.Commit()
}
