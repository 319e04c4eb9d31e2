package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/tubebridge/server/internal/app"
)

type configVar[T any] struct {
	envKey       string
	flagKey      string
	defaultValue T
}

var (
	host = configVar[string]{
		envKey:       "TUBEBRIDGE_HOST",
		flagKey:      "host",
		defaultValue: "0.0.0.0",
	}
	port = configVar[int]{
		envKey:       "TUBEBRIDGE_PORT",
		flagKey:      "port",
		defaultValue: 8080,
	}
	logLevel = configVar[string]{
		envKey:       "TUBEBRIDGE_LOG_LEVEL",
		flagKey:      "log-level",
		defaultValue: "INFO",
	}
	sessionsLimit = configVar[int]{
		envKey:       "TUBEBRIDGE_SESSIONS_LIMIT",
		flagKey:      "sessions-limit",
		defaultValue: 16,
	}
	playerOrigin = configVar[string]{
		envKey:       "TUBEBRIDGE_PLAYER_ORIGIN",
		flagKey:      "player-origin",
		defaultValue: "about:blank",
	}
)

func loadAppConfig() *app.AppConfig {
	pflag.String(host.flagKey, host.defaultValue, "Server host")
	pflag.Int(port.flagKey, port.defaultValue, "Server port")
	pflag.String(logLevel.flagKey, logLevel.defaultValue, "Logging level")
	pflag.Int(sessionsLimit.flagKey, sessionsLimit.defaultValue, "Maximum number of concurrent player sessions")
	pflag.String(playerOrigin.flagKey, playerOrigin.defaultValue, "Base URL handed to the player page for origin purposes")
	pflag.Parse()

	viper.BindPFlags(pflag.CommandLine)

	viper.BindEnv(host.flagKey, host.envKey)
	viper.BindEnv(port.flagKey, port.envKey)
	viper.BindEnv(logLevel.flagKey, logLevel.envKey)
	viper.BindEnv(sessionsLimit.flagKey, sessionsLimit.envKey)
	viper.BindEnv(playerOrigin.flagKey, playerOrigin.envKey)

	viper.SetDefault(host.flagKey, host.defaultValue)
	viper.SetDefault(port.flagKey, port.defaultValue)
	viper.SetDefault(logLevel.flagKey, logLevel.defaultValue)
	viper.SetDefault(sessionsLimit.flagKey, sessionsLimit.defaultValue)
	viper.SetDefault(playerOrigin.flagKey, playerOrigin.defaultValue)

	return &app.AppConfig{
		Host:          viper.GetString(host.flagKey),
		Port:          viper.GetInt(port.flagKey),
		LogLevel:      viper.GetString(logLevel.flagKey),
		SessionsLimit: viper.GetInt(sessionsLimit.flagKey),
		PlayerOrigin:  viper.GetString(playerOrigin.flagKey),
	}
}

func main() {
	ctx := context.Background()

	appConfig := loadAppConfig()

	jsonConfig, _ := json.MarshalIndent(appConfig, "", "  ")
	fmt.Printf("starting app with config: %s\n", jsonConfig)

	log.Fatal(app.Run(ctx, appConfig))
}
