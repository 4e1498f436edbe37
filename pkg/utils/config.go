package utils

import (
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Hotel    HotelConfig
	Redis    RedisConfig
	AMQP     AMQPConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type JWTConfig struct {
	Secret      string
	ExpiryHours int
}

// HotelConfig holds the property-level business rules.
type HotelConfig struct {
	Timezone                string
	CheckInDeadlineHour     int
	CheckOutHour            int
	EarlyBirdDays           int
	EarlyBirdPercent        float64
	FreeCancellationHours   int
	CancellationFeePercent  float64
	StandardDeposit         float64
	LateCheckOutFee         float64
	MaxStayNights           int
	MaxGuests               int
	ConfirmationMaxAttempts int
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	CacheTTL int // seconds
}

type AMQPConfig struct {
	URL string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("JWT_EXPIRY_HOURS", 24)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("HOTEL_TIMEZONE", "America/Bogota")
	viper.SetDefault("CHECKIN_DEADLINE_HOUR", 18)
	viper.SetDefault("CHECKOUT_HOUR", 12)
	viper.SetDefault("EARLY_BIRD_DAYS", 30)
	viper.SetDefault("EARLY_BIRD_PERCENT", 15.0)
	viper.SetDefault("FREE_CANCELLATION_HOURS", 24)
	viper.SetDefault("CANCELLATION_FEE_PERCENT", 10.0)
	viper.SetDefault("STANDARD_DEPOSIT", 200000.0)
	viper.SetDefault("LATE_CHECKOUT_FEE", 50000.0)
	viper.SetDefault("MAX_STAY_NIGHTS", 30)
	viper.SetDefault("MAX_GUESTS", 10)
	viper.SetDefault("CONFIRMATION_MAX_ATTEMPTS", 10)
	viper.SetDefault("REDIS_CACHE_TTL", 60)

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		JWT: JWTConfig{
			Secret:      viper.GetString("JWT_SECRET"),
			ExpiryHours: viper.GetInt("JWT_EXPIRY_HOURS"),
		},
		Hotel: HotelConfig{
			Timezone:                viper.GetString("HOTEL_TIMEZONE"),
			CheckInDeadlineHour:     viper.GetInt("CHECKIN_DEADLINE_HOUR"),
			CheckOutHour:            viper.GetInt("CHECKOUT_HOUR"),
			EarlyBirdDays:           viper.GetInt("EARLY_BIRD_DAYS"),
			EarlyBirdPercent:        viper.GetFloat64("EARLY_BIRD_PERCENT"),
			FreeCancellationHours:   viper.GetInt("FREE_CANCELLATION_HOURS"),
			CancellationFeePercent:  viper.GetFloat64("CANCELLATION_FEE_PERCENT"),
			StandardDeposit:         viper.GetFloat64("STANDARD_DEPOSIT"),
			LateCheckOutFee:         viper.GetFloat64("LATE_CHECKOUT_FEE"),
			MaxStayNights:           viper.GetInt("MAX_STAY_NIGHTS"),
			MaxGuests:               viper.GetInt("MAX_GUESTS"),
			ConfirmationMaxAttempts: viper.GetInt("CONFIRMATION_MAX_ATTEMPTS"),
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("REDIS_ADDR"),
			Password: viper.GetString("REDIS_PASS"),
			DB:       viper.GetInt("REDIS_DB"),
			CacheTTL: viper.GetInt("REDIS_CACHE_TTL"),
		},
		AMQP: AMQPConfig{
			URL: viper.GetString("AMQP_URL"),
		},
	}

	return config, nil
}
