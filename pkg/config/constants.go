package config

const (
	EnvPrefix = "POS"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	StoreBackendFile   = "file"
	StoreBackendMemory = "memory"
	StoreBackendRedis  = "redis"

	EnvAppEnv       = "POS_APP_ENV"
	EnvPort         = "POS_APP_PORT"
	EnvStoreBackend = "POS_STORE_BACKEND"
	EnvStoreDataDir = "POS_STORE_DATA_DIR"
	EnvRedisURL     = "POS_REDIS_URL"
	EnvTaxRate      = "POS_TAX_RATE"
	EnvCurrency     = "POS_CURRENCY"
)
