package config

import "os"

// Configはアプリ全体の設定
type Config struct {
	Port string // サーバーポート（8080）

	DatabaseURL string // Postgres DSN（指定があれば最優先）
	SQLitePath  string // SQLiteファイルパス（デフォルトの保存先）

	JWTSecret string // JWT署名シークレット

	StaticDir string // フロント静的ファイルのディレクトリ
	GoEnv     string // dev/prod
}

// Loadは環境変数から読む。未設定はトイ運用向けの安全なデフォルト。
// 本番ハードニングはスコープ外。
func Load() Config {
	return Config{
		Port:        getenv("PORT", "8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		SQLitePath:  getenv("SQLITE_DB_PATH", "./ecommerce.db"),
		JWTSecret:   getenv("JWT_SECRET", "dev_secret_change_me"),
		StaticDir:   getenv("STATIC_DIR", "./web"),
		GoEnv:       getenv("GO_ENV", "dev"),
	}
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}
