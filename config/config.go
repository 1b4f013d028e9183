package config

import (
	"fmt"
	"os"

	"github.com/redis/go-redis/v9"
	"gopkg.in/yaml.v3"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"shopease/models"
)

type ServerConfig struct {
	Port      string `yaml:"port"`
	JWTSecret string `yaml:"jwtSecret"`
}

type DatabaseConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	Database string `yaml:"database"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	Database int    `yaml:"database"`
}

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
}

// LoadConfig reads the yaml config file and applies environment overrides.
// A missing file is not an error; everything can come from the environment.
func LoadConfig(filename string) (Config, error) {
	var config Config

	file, err := os.Open(filename)
	if err == nil {
		defer file.Close()
		decoder := yaml.NewDecoder(file)
		if err := decoder.Decode(&config); err != nil {
			return config, err
		}
	} else if !os.IsNotExist(err) {
		return config, err
	}

	applyEnv(&config)

	if config.Server.Port == "" {
		config.Server.Port = "5000"
	}
	if config.Server.JWTSecret == "" {
		return config, fmt.Errorf("jwt secret is not configured")
	}

	return config, nil
}

func applyEnv(config *Config) {
	setFromEnv(&config.Server.Port, "PORT")
	setFromEnv(&config.Server.JWTSecret, "JWT_SECRET")
	setFromEnv(&config.Database.Username, "DB_USERNAME")
	setFromEnv(&config.Database.Password, "DB_PASSWORD")
	setFromEnv(&config.Database.Host, "DB_HOST")
	setFromEnv(&config.Database.Port, "DB_PORT")
	setFromEnv(&config.Database.Database, "DB_NAME")
	setFromEnv(&config.Redis.Addr, "REDIS_ADDR")
	setFromEnv(&config.Redis.Password, "REDIS_PASSWORD")
}

func setFromEnv(target *string, key string) {
	if value, exists := os.LookupEnv(key); exists {
		*target = value
	}
}

func SetupMySQLConnection(config DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		config.Username,
		config.Password,
		config.Host,
		config.Port,
		config.Database,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Category{},
		&models.Cart{},
		&models.CartItem{},
		&models.Wishlist{},
		&models.WishlistItem{},
		&models.Order{},
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}

// SetupRedisConnection returns nil when no address is configured; the
// server then runs without the cache and the token revocation set.
func SetupRedisConnection(config RedisConfig) *redis.Client {
	if config.Addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.Database,
	})
}
