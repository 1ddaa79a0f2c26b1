package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/groovesync/server/internal/app"
)

type configVar[T any] struct {
	envKey       string
	flagKey      string
	defaultValue T
}

var (
	host = configVar[string]{
		envKey:       "SERVER_HOST",
		flagKey:      "host",
		defaultValue: "0.0.0.0",
	}
	port = configVar[int]{
		envKey:       "SERVER_PORT",
		flagKey:      "port",
		defaultValue: 8000,
	}
	logLevel = configVar[string]{
		envKey:       "SERVER_LOG_LEVEL",
		flagKey:      "log-level",
		defaultValue: "INFO",
	}
	musicPath = configVar[string]{
		envKey:       "SERVER_MUSIC_PATH",
		flagKey:      "music-path",
		defaultValue: "music/sample.mp3",
	}
	contentType = configVar[string]{
		envKey:       "SERVER_CONTENT_TYPE",
		flagKey:      "content-type",
		defaultValue: "audio/mpeg",
	}
	streamChunkSize = configVar[int64]{
		envKey:       "SERVER_STREAM_CHUNK_SIZE",
		flagKey:      "stream-chunk-size",
		defaultValue: 5 * 1024 * 1024,
	}
	playerURL = configVar[string]{
		envKey:       "SERVER_PLAYER_URL",
		flagKey:      "player-url",
		defaultValue: "http://localhost:3000",
	}
	redisHost = configVar[string]{
		envKey:       "REDIS_HOST",
		flagKey:      "redis-host",
		defaultValue: "localhost",
	}
	redisPort = configVar[int]{
		envKey:       "REDIS_PORT",
		flagKey:      "redis-port",
		defaultValue: 6379,
	}
	redisPassword = configVar[string]{
		envKey:       "REDIS_PASSWORD",
		flagKey:      "redis-password",
		defaultValue: "",
	}
)

func loadAppConfig() *app.AppConfig {
	pflag.String(host.flagKey, host.defaultValue, "Server host")
	pflag.Int(port.flagKey, port.defaultValue, "Server port")
	pflag.String(logLevel.flagKey, logLevel.defaultValue, "Logging level")
	pflag.String(musicPath.flagKey, musicPath.defaultValue, "Path of the audio asset to serve")
	pflag.String(contentType.flagKey, contentType.defaultValue, "Content type of the audio asset")
	pflag.Int64(streamChunkSize.flagKey, streamChunkSize.defaultValue, "Maximum bytes returned for an open-ended range request")
	pflag.String(playerURL.flagKey, playerURL.defaultValue, "Base url of the player client")
	pflag.String(redisHost.flagKey, redisHost.defaultValue, "Redis host")
	pflag.Int(redisPort.flagKey, redisPort.defaultValue, "Redis port")
	pflag.String(redisPassword.flagKey, redisPassword.defaultValue, "Redis password")
	pflag.Parse()

	viper.BindPFlags(pflag.CommandLine)

	viper.BindEnv(host.flagKey, host.envKey)
	viper.BindEnv(port.flagKey, port.envKey)
	viper.BindEnv(logLevel.flagKey, logLevel.envKey)
	viper.BindEnv(musicPath.flagKey, musicPath.envKey)
	viper.BindEnv(contentType.flagKey, contentType.envKey)
	viper.BindEnv(streamChunkSize.flagKey, streamChunkSize.envKey)
	viper.BindEnv(playerURL.flagKey, playerURL.envKey)
	viper.BindEnv(redisHost.flagKey, redisHost.envKey)
	viper.BindEnv(redisPort.flagKey, redisPort.envKey)
	viper.BindEnv(redisPassword.flagKey, redisPassword.envKey)

	viper.SetDefault(host.flagKey, host.defaultValue)
	viper.SetDefault(port.flagKey, port.defaultValue)
	viper.SetDefault(logLevel.flagKey, logLevel.defaultValue)
	viper.SetDefault(musicPath.flagKey, musicPath.defaultValue)
	viper.SetDefault(contentType.flagKey, contentType.defaultValue)
	viper.SetDefault(streamChunkSize.flagKey, streamChunkSize.defaultValue)
	viper.SetDefault(playerURL.flagKey, playerURL.defaultValue)
	viper.SetDefault(redisHost.flagKey, redisHost.defaultValue)
	viper.SetDefault(redisPort.flagKey, redisPort.defaultValue)
	viper.SetDefault(redisPassword.flagKey, redisPassword.defaultValue)

	config := &app.AppConfig{
		Host:            viper.GetString(host.flagKey),
		Port:            viper.GetInt(port.flagKey),
		LogLevel:        viper.GetString(logLevel.flagKey),
		MusicPath:       viper.GetString(musicPath.flagKey),
		ContentType:     viper.GetString(contentType.flagKey),
		StreamChunkSize: viper.GetInt64(streamChunkSize.flagKey),
		PlayerURL:       viper.GetString(playerURL.flagKey),
		RedisHost:       viper.GetString(redisHost.flagKey),
		RedisPort:       viper.GetInt(redisPort.flagKey),
		RedisPassword:   viper.GetString(redisPassword.flagKey),
	}

	return config
}

func main() {
	ctx := context.Background()

	appConfig := loadAppConfig()

	jsonConfig, _ := json.MarshalIndent(appConfig, "", "  ")
	fmt.Printf("starting app with config: %s\n", jsonConfig)

	log.Fatal(app.Run(ctx, appConfig))
}
