package constants

// Хранилища
const (
	StoreDriverBolt     = "bolt"
	StoreDriverPostgres = "postgres"
	StoreDriverRedis    = "redis"
	StoreDriverMemory   = "memory"

	BoltBucketExposes = "exposes"
	RedisKeyPrefix    = "flathunter:expose:"
)

// Загрузчики страниц
const (
	FetcherColly  = "colly"
	FetcherChrome = "chrome"
)
