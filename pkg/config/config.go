// Copyright 2023 LiveKit, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/livekit/protocol/logger"
)

const (
	generatedCLIFlagUsage = "generated"
	envPrefix             = "LIVEKIT_STAGE_"
)

var (
	ErrKeyFileIncorrectPermission = errors.New("key file others permissions must be set to 0")
	ErrKeysNotSet                 = errors.New("one of key-file or keys must be provided")
	ErrInvalidSeatCount           = errors.New("seats.count must be at least 1")
)

type Config struct {
	Session     SessionConfig     `yaml:"session,omitempty"`
	Seats       SeatsConfig       `yaml:"seats,omitempty"`
	Credentials CredentialsConfig `yaml:"credentials,omitempty"`
	Redis       RedisConfig       `yaml:"redis,omitempty"`
	Media       MediaConfig       `yaml:"media,omitempty"`
	Server      ServerConfig      `yaml:"server,omitempty"`
	Prometheus  PrometheusConfig  `yaml:"prometheus,omitempty"`
	Logging     LoggingConfig     `yaml:"logging,omitempty"`
	KeyFile     string            `yaml:"key_file,omitempty"`
	Keys        map[string]string `yaml:"keys,omitempty"`

	Development bool `yaml:"development,omitempty"`
}

type SessionConfig struct {
	// signal URL used when the credential does not carry one
	ServerURL      string        `yaml:"server_url,omitempty"`
	ConnectTimeout time.Duration `yaml:"connect_timeout,omitempty"`
	// pause between the video and the audio publish
	AudioPublishDelay time.Duration `yaml:"audio_publish_delay,omitempty"`
	// how long to wait for the server to acknowledge a published track
	PublishTimeout time.Duration `yaml:"publish_timeout,omitempty"`
	ICEServers     []string      `yaml:"ice_servers,omitempty"`
}

type SeatsConfig struct {
	Count        int           `yaml:"count,omitempty"`
	ClaimTimeout time.Duration `yaml:"claim_timeout,omitempty"`
	// refreshes that drop a freshly claimed seat inside this window are treated as stale
	ClaimGrace      time.Duration `yaml:"claim_grace,omitempty"`
	RefreshDebounce time.Duration `yaml:"refresh_debounce,omitempty"`
}

type CredentialsConfig struct {
	GatewayURL     string        `yaml:"gateway_url,omitempty"`
	APIKey         string        `yaml:"api_key,omitempty"`
	APISecret      string        `yaml:"api_secret,omitempty"`
	TokenTTL       time.Duration `yaml:"token_ttl,omitempty"`
	CacheSize      int           `yaml:"cache_size,omitempty"`
	ExpiryBuffer   time.Duration `yaml:"expiry_buffer,omitempty"`
	RequestTimeout time.Duration `yaml:"request_timeout,omitempty"`
}

type RedisConfig struct {
	Address  string `yaml:"address,omitempty"`
	Username string `yaml:"username,omitempty"`
	Password string `yaml:"password,omitempty"`
	DB       int    `yaml:"db,omitempty"`
	UseTLS   bool   `yaml:"use_tls,omitempty"`
}

func (r RedisConfig) IsConfigured() bool {
	return r.Address != ""
}

type MediaConfig struct {
	// ivf file published as the camera track, synthetic frames when empty
	VideoFile string `yaml:"video_file,omitempty"`
	// ogg file published as the microphone track, synthetic frames when empty
	AudioFile string `yaml:"audio_file,omitempty"`
}

type ServerConfig struct {
	Port          uint32   `yaml:"port,omitempty"`
	BindAddresses []string `yaml:"bind_addresses,omitempty"`
	CORSOrigins   []string `yaml:"cors_origins,omitempty"`
}

type PrometheusConfig struct {
	Port uint32 `yaml:"port,omitempty"`
}

type LoggingConfig struct {
	logger.Config `yaml:",inline"`
	PionLevel     string `yaml:"pion_level,omitempty"`
}

var DefaultConfig = Config{
	Session: SessionConfig{
		ServerURL:         "ws://localhost:7880",
		ConnectTimeout:    20 * time.Second,
		AudioPublishDelay: 150 * time.Millisecond,
		PublishTimeout:    5 * time.Second,
		ICEServers:        []string{"stun:stun.l.google.com:19302"},
	},
	Seats: SeatsConfig{
		Count:           9,
		ClaimTimeout:    10 * time.Second,
		ClaimGrace:      2500 * time.Millisecond,
		RefreshDebounce: 100 * time.Millisecond,
	},
	Credentials: CredentialsConfig{
		TokenTTL:       time.Hour,
		CacheSize:      64,
		ExpiryBuffer:   time.Minute,
		RequestTimeout: 20 * time.Second,
	},
	Server: ServerConfig{
		Port: 7890,
	},
	Logging: LoggingConfig{
		PionLevel: "error",
	},
}

func NewConfig(confString string, strictMode bool, c *cli.Context, baseFlags []cli.Flag) (*Config, error) {
	// start with defaults
	marshalled, err := yaml.Marshal(&DefaultConfig)
	if err != nil {
		return nil, err
	}

	var conf Config
	if err = yaml.Unmarshal(marshalled, &conf); err != nil {
		return nil, err
	}

	if confString != "" {
		decoder := yaml.NewDecoder(strings.NewReader(confString))
		decoder.KnownFields(strictMode)
		if err := decoder.Decode(&conf); err != nil {
			return nil, fmt.Errorf("could not parse config: %v", err)
		}
	}

	if c != nil {
		if err := conf.updateFromCLI(c, baseFlags); err != nil {
			return nil, err
		}
	}

	if conf.Seats.Count < 1 {
		return nil, ErrInvalidSeatCount
	}

	// expand env vars in filenames
	for _, p := range []*string{&conf.KeyFile, &conf.Media.VideoFile, &conf.Media.AudioFile} {
		if *p == "" {
			continue
		}
		expanded, err := homedir.Expand(os.ExpandEnv(*p))
		if err != nil {
			return nil, err
		}
		*p = expanded
	}

	if conf.Logging.Level == "" && conf.Development {
		conf.Logging.Level = "debug"
	}
	if conf.Logging.PionLevel != "" {
		if conf.Logging.ComponentLevels == nil {
			conf.Logging.ComponentLevels = map[string]string{}
		}
		conf.Logging.ComponentLevels["transport.pion"] = conf.Logging.PionLevel
	}

	return &conf, nil
}

// ValidateKeys loads the API key file if set and ensures at least one key pair is available.
func (conf *Config) ValidateKeys() error {
	if conf.KeyFile != "" {
		var otherFilter os.FileMode = 0o007
		if st, err := os.Stat(conf.KeyFile); err != nil {
			return err
		} else if st.Mode().Perm()&otherFilter != 0o000 {
			return ErrKeyFileIncorrectPermission
		}
		f, err := os.Open(conf.KeyFile)
		if err != nil {
			return err
		}
		defer func() {
			_ = f.Close()
		}()
		conf.Keys = map[string]string{}
		if err = yaml.NewDecoder(f).Decode(conf.Keys); err != nil {
			return err
		}
	}

	if len(conf.Keys) == 0 && conf.Credentials.APIKey != "" {
		conf.Keys = map[string]string{conf.Credentials.APIKey: conf.Credentials.APISecret}
	}
	if len(conf.Keys) == 0 {
		return ErrKeysNotSet
	}

	if !conf.Development {
		for key, secret := range conf.Keys {
			if len(secret) < 32 {
				logger.Errorw("secret is too short, should be at least 32 characters for security", nil, "apiKey", key)
			}
		}
	}
	return nil
}

// ToCLIFlagNames maps dotted yaml paths (session.connect_timeout) to the settable config fields.
func (conf *Config) ToCLIFlagNames(existingFlags []cli.Flag) map[string]reflect.Value {
	existing := map[string]bool{}
	for _, flag := range existingFlags {
		for _, name := range flag.Names() {
			existing[name] = true
		}
	}

	flagNames := map[string]reflect.Value{}
	var walk func(v reflect.Value, prefix string)
	walk = func(v reflect.Value, prefix string) {
		for i := 0; i < v.NumField(); i++ {
			field := v.Type().Field(i)
			parts := strings.SplitN(field.Tag.Get("yaml"), ",", 2)
			tag := parts[0]
			inline := len(parts) > 1 && parts[1] == "inline"
			if tag == "-" || (tag == "" && (!inline || prefix == "")) {
				continue
			}

			path := tag
			switch {
			case inline:
				path = prefix
			case prefix != "":
				path = prefix + "." + tag
			}
			if existing[path] {
				continue
			}

			value := v.Field(i)
			if value.Kind() == reflect.Struct {
				walk(value, path)
			} else {
				flagNames[path] = value
			}
		}
	}
	walk(reflect.ValueOf(conf).Elem(), "")
	return flagNames
}

// GenerateCLIFlags exposes every scalar config field as a flag, with a LIVEKIT_STAGE_ env var.
func GenerateCLIFlags(existingFlags []cli.Flag, hidden bool) ([]cli.Flag, error) {
	blank := &Config{}
	flags := make([]cli.Flag, 0)
	for name, value := range blank.ToCLIFlagNames(existingFlags) {
		envVars := []string{envPrefix + strings.ToUpper(strings.ReplaceAll(name, ".", "_"))}

		var flag cli.Flag
		switch value.Kind() {
		case reflect.Bool:
			flag = &cli.BoolFlag{Name: name, Usage: generatedCLIFlagUsage, Hidden: hidden}
		case reflect.String:
			flag = &cli.StringFlag{Name: name, EnvVars: envVars, Usage: generatedCLIFlagUsage, Hidden: hidden}
		case reflect.Int, reflect.Int32:
			flag = &cli.IntFlag{Name: name, EnvVars: envVars, Usage: generatedCLIFlagUsage, Hidden: hidden}
		case reflect.Int64:
			if value.Type() == reflect.TypeOf(time.Duration(0)) {
				flag = &cli.DurationFlag{Name: name, EnvVars: envVars, Usage: generatedCLIFlagUsage, Hidden: hidden}
			} else {
				flag = &cli.Int64Flag{Name: name, EnvVars: envVars, Usage: generatedCLIFlagUsage, Hidden: hidden}
			}
		case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			flag = &cli.Uint64Flag{Name: name, EnvVars: envVars, Usage: generatedCLIFlagUsage, Hidden: hidden}
		case reflect.Float32, reflect.Float64:
			flag = &cli.Float64Flag{Name: name, EnvVars: envVars, Usage: generatedCLIFlagUsage, Hidden: hidden}
		case reflect.Slice, reflect.Map, reflect.Struct, reflect.Pointer, reflect.Interface:
			continue
		default:
			return flags, fmt.Errorf("cli flag generation unsupported for config type: %s is a %s", name, value.Kind())
		}
		flags = append(flags, flag)
	}
	return flags, nil
}

func (conf *Config) updateFromCLI(c *cli.Context, baseFlags []cli.Flag) error {
	generated := conf.ToCLIFlagNames(baseFlags)
	for _, flag := range c.App.Flags {
		name := flag.Names()[0]
		// c.IsSet is always false in unit tests
		if !c.IsSet(name) && c.App.Name != "test" {
			continue
		}
		value, ok := generated[name]
		if !ok {
			continue
		}

		switch value.Kind() {
		case reflect.Bool:
			value.SetBool(c.Bool(name))
		case reflect.String:
			value.SetString(c.String(name))
		case reflect.Int64:
			if value.Type() == reflect.TypeOf(time.Duration(0)) {
				value.SetInt(int64(c.Duration(name)))
			} else {
				value.SetInt(c.Int64(name))
			}
		case reflect.Int, reflect.Int32:
			value.SetInt(c.Int64(name))
		case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			value.SetUint(c.Uint64(name))
		case reflect.Float32, reflect.Float64:
			value.SetFloat(c.Float64(name))
		default:
			return fmt.Errorf("unsupported generated cli flag type for config: %s is a %s", name, value.Kind())
		}
	}

	if c.IsSet("dev") {
		conf.Development = c.Bool("dev")
	}
	if c.IsSet("url") {
		conf.Session.ServerURL = c.String("url")
	}
	if c.IsSet("api-key") {
		conf.Credentials.APIKey = c.String("api-key")
	}
	if c.IsSet("api-secret") {
		conf.Credentials.APISecret = c.String("api-secret")
	}
	if c.IsSet("key-file") {
		conf.KeyFile = c.String("key-file")
	}
	if c.IsSet("keys") {
		if err := conf.unmarshalKeys(c.String("keys")); err != nil {
			return errors.New("Could not parse keys, it needs to be exactly, \"key: secret\", including the space")
		}
	}
	if c.IsSet("redis-host") {
		conf.Redis.Address = c.String("redis-host")
	}
	if c.IsSet("redis-password") {
		conf.Redis.Password = c.String("redis-password")
	}
	if c.IsSet("bind") {
		conf.Server.BindAddresses = c.StringSlice("bind")
	}
	return nil
}

func (conf *Config) unmarshalKeys(keys string) error {
	temp := make(map[string]interface{})
	if err := yaml.Unmarshal([]byte(keys), temp); err != nil {
		return err
	}

	conf.Keys = make(map[string]string, len(temp))
	for key, val := range temp {
		if secret, ok := val.(string); ok {
			conf.Keys[key] = secret
		}
	}
	return nil
}

// Note: only pass in logr.Logger with default depth
func SetLogger(l logger.Logger) {
	logger.SetLogger(l, "livekit-stage")
}

func InitLoggerFromConfig(config *LoggingConfig) {
	logger.InitFromConfig(&config.Config, "livekit-stage")
}
