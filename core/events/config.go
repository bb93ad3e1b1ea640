package events

// Bus drivers.
const (
	DriverMemory = "memory"
	DriverRedis  = "redis"
)

// Config selects and configures the event bus.
type Config struct {
	// Driver is either "memory" (in-process) or "redis".
	Driver string `mapstructure:"driver" default:"memory"`
	// RedisAddr is the host:port of the redis server.
	RedisAddr string `mapstructure:"redis_addr" default:"localhost:6379"`
	// RedisPassword authenticates against redis when set.
	RedisPassword string `mapstructure:"redis_password" default:""`
	// RedisChannel is the pub/sub channel all envelopes travel on.
	RedisChannel string `mapstructure:"redis_channel" default:"game-catalog.events"`
	// DialTimeoutSeconds bounds the initial redis connection.
	DialTimeoutSeconds int `mapstructure:"dial_timeout_seconds" default:"5"`
}
