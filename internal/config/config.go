/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package config loads process configuration from the environment, after
// merging an optional .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is the guardctl configuration.
type Config struct {
	LogLevel  string `env:"GUARD_LOG_LEVEL" default:"info"`
	LogFormat string `env:"GUARD_LOG_FORMAT" default:"text"`

	ListenAddr string `env:"GUARD_LISTEN_ADDR" default:":8080"`
	// Root is the directory served by the filesystem routes.
	Root string `env:"GUARD_ROOT" default:"."`

	SessionBackend string        `env:"GUARD_SESSION_BACKEND" default:"memory"`
	SessionTTL     time.Duration `env:"GUARD_SESSION_TTL" default:"24m"`

	RedisAddr     string `env:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD" default:""`
	RedisDB       int    `env:"REDIS_DB" default:"0"`

	// StatusOverrides is parsed by mapper.ParseOverrides.
	StatusOverrides string `env:"GUARD_STATUS_OVERRIDES" default:""`
}

// Load reads envFile (or ".env" when omitted) if it exists, then fills a T
// from its `env` and `default` struct tags. A missing file is not an error;
// a value that does not parse into its field is.
func Load[T any](envFile ...string) (T, error) {
	var cfg T

	files := envFile
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return cfg, fmt.Errorf("config: load %s: %w", f, err)
		}
	}

	v := reflect.ValueOf(&cfg).Elem()
	if v.Kind() != reflect.Struct {
		return cfg, fmt.Errorf("config: %T is not a struct", cfg)
	}
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		ft := t.Field(i)
		key := ft.Tag.Get("env")
		if key == "" {
			continue
		}
		raw, ok := os.LookupEnv(key)
		if !ok || raw == "" {
			raw = ft.Tag.Get("default")
		}
		if raw == "" {
			continue
		}
		if err := setField(v.Field(i), raw); err != nil {
			return cfg, fmt.Errorf("config: %s: %w", key, err)
		}
	}
	return cfg, nil
}

var durationType = reflect.TypeOf(time.Duration(0))

func setField(f reflect.Value, raw string) error {
	if !f.CanSet() {
		return nil
	}
	if f.Type() == durationType {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return err
		}
		f.SetInt(int64(d))
		return nil
	}
	switch f.Kind() {
	case reflect.String:
		f.SetString(raw)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, f.Type().Bits())
		if err != nil {
			return err
		}
		f.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(raw, 10, f.Type().Bits())
		if err != nil {
			return err
		}
		f.SetUint(n)
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return err
		}
		f.SetBool(b)
	default:
		return fmt.Errorf("unsupported field kind %s", f.Kind())
	}
	return nil
}
