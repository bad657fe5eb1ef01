package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/sharetube/watchroom/internal/app"
)

type configVar[T any] struct {
	envKey       string
	flagKey      string
	defaultValue T
	usage        string
}

var (
	port = configVar[int]{
		envKey:       "SERVER_PORT",
		flagKey:      "port",
		defaultValue: 8080,
		usage:        "Server port",
	}
	host = configVar[string]{
		envKey:       "SERVER_HOST",
		flagKey:      "host",
		defaultValue: "0.0.0.0",
		usage:        "Server host",
	}
	logLevel = configVar[string]{
		envKey:       "SERVER_LOG_LEVEL",
		flagKey:      "log-level",
		defaultValue: "INFO",
		usage:        "Logging level",
	}
	membersLimit = configVar[int]{
		envKey:       "SERVER_MEMBERS_LIMIT",
		flagKey:      "members-limit",
		defaultValue: 0,
		usage:        "Maximum number of members in a room, 0 for unlimited",
	}
	chatMessageMaxLength = configVar[int]{
		envKey:       "SERVER_CHAT_MESSAGE_MAX_LENGTH",
		flagKey:      "chat-message-max-length",
		defaultValue: 1000,
		usage:        "Maximum chat message length in characters, 0 for unlimited",
	}
	nameMaxLength = configVar[int]{
		envKey:       "SERVER_NAME_MAX_LENGTH",
		flagKey:      "name-max-length",
		defaultValue: 32,
		usage:        "Maximum display name length in characters, 0 for unlimited",
	}
	strictAccessControl = configVar[bool]{
		envKey:       "SERVER_STRICT_ACCESS_CONTROL",
		flagKey:      "strict-access-control",
		defaultValue: false,
		usage:        "Only the room admin may grant or deny control requests",
	}
	roomCodeStore = configVar[string]{
		envKey:       "ROOM_CODE_STORE",
		flagKey:      "room-code-store",
		defaultValue: app.RoomCodeStoreMemory,
		usage:        "Room code store: memory or redis",
	}
	roomCodeTTL = configVar[time.Duration]{
		envKey:       "ROOM_CODE_TTL",
		flagKey:      "room-code-ttl",
		defaultValue: 24 * time.Hour,
		usage:        "Lifetime of an issued room code",
	}
	redisPort = configVar[int]{
		envKey:       "REDIS_PORT",
		flagKey:      "redis-port",
		defaultValue: 6379,
		usage:        "Redis port",
	}
	redisHost = configVar[string]{
		envKey:       "REDIS_HOST",
		flagKey:      "redis-host",
		defaultValue: "localhost",
		usage:        "Redis host",
	}
	redisPassword = configVar[string]{
		envKey:       "REDIS_PASSWORD",
		flagKey:      "redis-password",
		defaultValue: "",
		usage:        "Redis password",
	}
	wsSendBuffer = configVar[int]{
		envKey:       "SERVER_WS_SEND_BUFFER",
		flagKey:      "ws-send-buffer",
		defaultValue: 256,
		usage:        "Outbound message queue size per websocket connection",
	}
	wsReadLimit = configVar[int64]{
		envKey:       "SERVER_WS_READ_LIMIT",
		flagKey:      "ws-read-limit",
		defaultValue: 65536,
		usage:        "Maximum inbound websocket frame size in bytes",
	}
)

func bind[T any](v configVar[T]) {
	viper.BindEnv(v.flagKey, v.envKey)
	viper.SetDefault(v.flagKey, v.defaultValue)
}

func loadAppConfig() *app.AppConfig {
	pflag.Int(port.flagKey, port.defaultValue, port.usage)
	pflag.String(host.flagKey, host.defaultValue, host.usage)
	pflag.String(logLevel.flagKey, logLevel.defaultValue, logLevel.usage)
	pflag.Int(membersLimit.flagKey, membersLimit.defaultValue, membersLimit.usage)
	pflag.Int(chatMessageMaxLength.flagKey, chatMessageMaxLength.defaultValue, chatMessageMaxLength.usage)
	pflag.Int(nameMaxLength.flagKey, nameMaxLength.defaultValue, nameMaxLength.usage)
	pflag.Bool(strictAccessControl.flagKey, strictAccessControl.defaultValue, strictAccessControl.usage)
	pflag.String(roomCodeStore.flagKey, roomCodeStore.defaultValue, roomCodeStore.usage)
	pflag.Duration(roomCodeTTL.flagKey, roomCodeTTL.defaultValue, roomCodeTTL.usage)
	pflag.Int(redisPort.flagKey, redisPort.defaultValue, redisPort.usage)
	pflag.String(redisHost.flagKey, redisHost.defaultValue, redisHost.usage)
	pflag.String(redisPassword.flagKey, redisPassword.defaultValue, redisPassword.usage)
	pflag.Int(wsSendBuffer.flagKey, wsSendBuffer.defaultValue, wsSendBuffer.usage)
	pflag.Int64(wsReadLimit.flagKey, wsReadLimit.defaultValue, wsReadLimit.usage)
	pflag.Parse()

	viper.BindPFlags(pflag.CommandLine)

	bind(port)
	bind(host)
	bind(logLevel)
	bind(membersLimit)
	bind(chatMessageMaxLength)
	bind(nameMaxLength)
	bind(strictAccessControl)
	bind(roomCodeStore)
	bind(roomCodeTTL)
	bind(redisPort)
	bind(redisHost)
	bind(redisPassword)
	bind(wsSendBuffer)
	bind(wsReadLimit)

	config := &app.AppConfig{
		Host:                 viper.GetString(host.flagKey),
		Port:                 viper.GetInt(port.flagKey),
		LogLevel:             viper.GetString(logLevel.flagKey),
		MembersLimit:         viper.GetInt(membersLimit.flagKey),
		ChatMessageMaxLength: viper.GetInt(chatMessageMaxLength.flagKey),
		NameMaxLength:        viper.GetInt(nameMaxLength.flagKey),
		StrictAccessControl:  viper.GetBool(strictAccessControl.flagKey),
		RoomCodeStore:        viper.GetString(roomCodeStore.flagKey),
		RoomCodeTTL:          viper.GetDuration(roomCodeTTL.flagKey),
		RedisPort:            viper.GetInt(redisPort.flagKey),
		RedisHost:            viper.GetString(redisHost.flagKey),
		RedisPassword:        viper.GetString(redisPassword.flagKey),
		WSSendBuffer:         viper.GetInt(wsSendBuffer.flagKey),
		WSReadLimit:          viper.GetInt64(wsReadLimit.flagKey),
	}

	return config
}

func main() {
	ctx := context.Background()

	appConfig := loadAppConfig()

	jsonConfig, _ := json.MarshalIndent(appConfig, "", "  ")
	fmt.Printf("starting app with config: %s\n", jsonConfig)

	if err := app.Run(ctx, appConfig); err != nil {
		log.Fatal(err)
	}
}
