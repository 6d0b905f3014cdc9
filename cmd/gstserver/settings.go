package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
)

var settings Settings

var LogLevelMap = map[string]int{
	"DEBUG":  LevelDebug,
	"INFO":   LevelInfo,
	"NOTICE": LevelNotice,
	"WARN":   LevelWarn,
	"ERROR":  LevelError,
}

// Settings is the top-level TOML config, decoded once at startup the
// same way the teacher decodes its own godns.conf.
type Settings struct {
	Version    string
	Debug      bool
	Server     ServerSettings     `toml:"server"`
	GST        GSTSettings        `toml:"gst"`
	Redis      RedisSettings      `toml:"redis"`
	Postgresql PostgresqlSettings `toml:"postgresql"`
	Log        LogSettings        `toml:"log"`
	Cache      CacheSettings      `toml:"cache"`
	Audit      AuditSettings      `toml:"audit"`
}

type ServerSettings struct {
	Host string
	Port int
}

// GSTSettings configures the core tree: the sentinel byte and the
// set of namespaces the router will dispatch requests to, each with
// its own seed sources.
type GSTSettings struct {
	Sentinel   string `toml:"sentinel"`
	Namespaces []NamespaceSettings
}

type NamespaceSettings struct {
	Name      string
	SeedFile  string `toml:"seed-file"`
	RedisKey  string `toml:"redis-key"`
	RedisSeed bool   `toml:"redis-seed"`
}

type RedisSettings struct {
	Host     string
	Port     int
	DB       int
	Password string
}

func (s RedisSettings) Addr() string {
	return s.Host + ":" + strconv.Itoa(s.Port)
}

type PostgresqlSettings struct {
	Host        string
	Port        int
	User        string
	Password    string
	DB          string
	Sslmode     string
	Sslcert     string
	Sslkey      string
	Sslrootcert string
}

type LogSettings struct {
	Stdout bool
	File   string
	Level  string
}

func (ls LogSettings) LogLevel() int {
	l, ok := LogLevelMap[ls.Level]
	if !ok {
		panic("config error: invalid log level: " + ls.Level)
	}
	return l
}

type CacheSettings struct {
	Backend  string
	Expire   int
	Maxcount int
}

type AuditSettings struct {
	Enable  bool
	Backend string
	Expire  int64
}

func init() {
	var configFile string

	flag.StringVar(&configFile, "c", "gstserver.conf", "Look for gstserver toml-formatted config file at this path")
	flag.Parse()

	if _, err := toml.DecodeFile(configFile, &settings); err != nil {
		fmt.Printf("%s is not a valid toml config file\n", configFile)
		fmt.Println(err)
		os.Exit(1)
	}
}
