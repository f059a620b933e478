package main

import (
	"log"
	"time"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
)

type Config struct {
	HTTPAddr     string        `koanf:"http_address"`
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
	DBFile       string        `koanf:"dbfile"`

	IconDir  string `koanf:"icon_dir"`
	FontPath string `koanf:"font_path"`

	Fetch CfgFetch `koanf:"fetch"`

	Auth CfgAuth `koanf:"auth"`
}

type CfgFetch struct {
	Timeout   time.Duration `koanf:"timeout"`
	UserAgent string        `koanf:"user_agent"`
}

type CfgAuth struct {
	Username string `koanf:"username"`
	Password string `koanf:"password"`
}

func initConfig(configFile string) Config {
	var (
		config Config
		k      = koanf.New(".")
	)

	if err := k.Load(file.Provider(configFile), toml.Parser()); err != nil {
		log.Fatalf("error loading file: %v", err)
	}

	if err := k.Unmarshal("", &config); err != nil {
		log.Fatalf("error while unmarshalling config: %v", err)
	}

	return config
}
