package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

func Load() error {
	// .env is optional; real environment variables win over it
	_ = godotenv.Load()

	// Servers
	viper.SetDefault("API_ADDR", ":8080")
	viper.SetDefault("WEB_ADDR", ":3000")
	viper.SetDefault("API_URL", "http://localhost:8080")
	// peers allowed to set X-Forwarded-For; the web front runs alongside the API
	viper.SetDefault("TRUSTED_PROXIES", "127.0.0.1,::1")
	viper.SetDefault("LOG_LEVEL", "info")

	// Demo timing
	viper.SetDefault("REFRESH_INTERVAL", "3s")
	viper.SetDefault("SCENE_FPS", 10)
	viper.SetDefault("CONTACT_RATE_PER_MIN", 5)
	viper.SetDefault("CONTACT_BURST", 2)

	// MQTT
	viper.SetDefault("MQTT_ENABLED", "false")
	viper.SetDefault("MQTT_BROKER", "tcp://localhost:1883")
	viper.SetDefault("MQTT_CLIENT_ID", "wattr-demo")
	viper.SetDefault("MQTT_FRAMES_TOPIC", "wattr/frames")
	viper.SetDefault("MQTT_CONTROLS_TOPIC", "wattr/controls")

	// AWS
	viper.SetDefault("AWS_REGION", "eu-west-2")
	viper.SetDefault("AWS_SNS_TOPIC_ARN", "")
	viper.SetDefault("USE_CLOUD_SERVICES", "false")

	viper.AutomaticEnv()
	return nil
}

func APIAddr() string { return viper.GetString("API_ADDR") }
func WebAddr() string { return viper.GetString("WEB_ADDR") }
func APIURL() string  { return viper.GetString("API_URL") }

// TrustedProxies is the comma separated TRUSTED_PROXIES list.
func TrustedProxies() []string {
	var out []string
	for _, p := range strings.Split(viper.GetString("TRUSTED_PROXIES"), ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// LogLevel falls back to info on an unknown level name.
func LogLevel() zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(viper.GetString("LOG_LEVEL")))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

func RefreshInterval() time.Duration { return positiveDuration("REFRESH_INTERVAL", 3*time.Second) }
func SceneFPS() int                  { return positiveInt("SCENE_FPS", 10) }
func ContactRatePerMin() int         { return positiveInt("CONTACT_RATE_PER_MIN", 5) }
func ContactBurst() int              { return positiveInt("CONTACT_BURST", 2) }

func MQTTEnabled() bool         { return viper.GetBool("MQTT_ENABLED") }
func MQTTBroker() string        { return viper.GetString("MQTT_BROKER") }
func MQTTClientID() string      { return viper.GetString("MQTT_CLIENT_ID") }
func MQTTFramesTopic() string   { return viper.GetString("MQTT_FRAMES_TOPIC") }
func MQTTControlsTopic() string { return viper.GetString("MQTT_CONTROLS_TOPIC") }

func AWSRegion() string      { return viper.GetString("AWS_REGION") }
func SNSTopicArn() string    { return viper.GetString("AWS_SNS_TOPIC_ARN") }
func UseCloudServices() bool { return viper.GetBool("USE_CLOUD_SERVICES") }

func positiveDuration(key string, def time.Duration) time.Duration {
	if d := viper.GetDuration(key); d > 0 {
		return d
	}
	return def
}

func positiveInt(key string, def int) int {
	if n := viper.GetInt(key); n > 0 {
		return n
	}
	return def
}
