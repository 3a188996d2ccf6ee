package model

// Config はサーバー全体の設定を表す
type Config struct {
	TransportDefaults TransportDefaults `json:"transportDefaults"`
	HTTP              HTTPConfig        `json:"http"`
	Store             StoreConfig       `json:"store"`
	Paths             PathsConfig       `json:"paths"`
}

// TransportDefaults はtransportのデフォルト設定
type TransportDefaults struct {
	DefaultTransport string `json:"defaultTransport"` // "http" | "stdio"
}

// HTTPConfig はHTTPサーバー設定
type HTTPConfig struct {
	Host        string   `json:"host"`                  // デフォルト "127.0.0.1"
	Port        int      `json:"port"`                  // デフォルト 3456
	CORSOrigins []string `json:"corsOrigins,omitempty"` // 許可オリジン、"*"で全許可、空ならCORS無効
}

// StoreConfig はノートストア設定
type StoreConfig struct {
	Type string  `json:"type"`           // "memory" | "sqlite"
	Path *string `json:"path,omitempty"` // nullable（SQLite用）
}

// PathsConfig はファイルパス設定
type PathsConfig struct {
	ConfigPath string `json:"configPath"` // 設定ファイルパス
	DataDir    string `json:"dataDir"`    // データディレクトリ
}

// Transport定数
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Store Type定数
const (
	StoreTypeMemory = "memory"
	StoreTypeSQLite = "sqlite"
)
