package config

import (
	"slices"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestDefaults(t *testing.T) {
	if err := Load(); err != nil {
		t.Fatal(err)
	}
	if APIAddr() != ":8080" || WebAddr() != ":3000" {
		t.Errorf("addrs %q %q", APIAddr(), WebAddr())
	}
	if RefreshInterval() != 3*time.Second || SceneFPS() != 10 {
		t.Errorf("timing %v %d", RefreshInterval(), SceneFPS())
	}
	if MQTTFramesTopic() != "wattr/frames" || MQTTControlsTopic() != "wattr/controls" {
		t.Errorf("topics %q %q", MQTTFramesTopic(), MQTTControlsTopic())
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("API_ADDR", ":9999")
	t.Setenv("USE_CLOUD_SERVICES", "true")
	t.Setenv("REFRESH_INTERVAL", "500ms")
	t.Setenv("SCENE_FPS", "0")
	if err := Load(); err != nil {
		t.Fatal(err)
	}
	if APIAddr() != ":9999" {
		t.Errorf("API_ADDR = %q", APIAddr())
	}
	if !UseCloudServices() {
		t.Error("USE_CLOUD_SERVICES should be true")
	}
	if RefreshInterval() != 500*time.Millisecond {
		t.Errorf("REFRESH_INTERVAL = %v", RefreshInterval())
	}
	if SceneFPS() != 10 {
		t.Errorf("non-positive SCENE_FPS should fall back, got %d", SceneFPS())
	}
}

func TestLogLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "DEBUG")
	_ = Load()
	if LogLevel() != zerolog.DebugLevel {
		t.Errorf("got %v", LogLevel())
	}
	t.Setenv("LOG_LEVEL", "loud")
	if LogLevel() != zerolog.InfoLevel {
		t.Errorf("unknown level should fall back to info, got %v", LogLevel())
	}
}

func TestTrustedProxies(t *testing.T) {
	_ = Load()
	if got := TrustedProxies(); !slices.Equal(got, []string{"127.0.0.1", "::1"}) {
		t.Errorf("default %v", got)
	}
	t.Setenv("TRUSTED_PROXIES", " 10.0.0.5 , ,192.168.1.2")
	if got := TrustedProxies(); !slices.Equal(got, []string{"10.0.0.5", "192.168.1.2"}) {
		t.Errorf("override %v", got)
	}
}
