package config

type Config struct {
	StorageDriver string // "file" | "sqlite"
	StoragePath   string
}
