package configs

import (
	"os"
	"strconv"
)

// Env returns the value of key, or fallback when the variable is unset or empty.
func Env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// EnvInt64 returns the value of key parsed as int64, or fallback.
func EnvInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}

func MongoURI() string {
	return Env("MONGO_URI", "mongodb://localhost:27017")
}

func MongoDatabase() string {
	return Env("MONGO_DB", "naturemart")
}

func JWTSecret() string {
	return os.Getenv("JWT_SECRET")
}

// RedisAddr is empty when no cache is configured.
func RedisAddr() string {
	return os.Getenv("REDIS_ADDR")
}

// ShippingFee is the flat fee, in minor currency units, added to every order total.
func ShippingFee() int64 {
	return EnvInt64("SHIPPING_FEE", 50)
}
