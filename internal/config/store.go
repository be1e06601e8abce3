package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

const (
	DefaultPath       = "/etc/lusu/lusu.yaml"
	DefaultPolicyPath = "/etc/lusu/policy.yaml"
	DefaultSecurePath = "/usr/local/sbin:/usr/local/bin:/usr/sbin:/usr/bin:/sbin:/bin"
)

type Config struct {
	// HostRoot is the directory holding etc/passwd, etc/group and etc/shadow.
	HostRoot   string   `yaml:"host_root,omitempty"`
	PolicyPath string   `yaml:"policy,omitempty"`
	LogDir     string   `yaml:"log_dir,omitempty"`
	SecurePath string   `yaml:"secure_path,omitempty"`
	UsePTY     bool     `yaml:"use_pty,omitempty"`
	EnvKeep    []string `yaml:"env_keep,omitempty"`
}

func Default() Config {
	return Config{
		HostRoot:   "/",
		PolicyPath: DefaultPolicyPath,
		SecurePath: DefaultSecurePath,
	}
}

func (c Config) withDefaults() Config {
	d := Default()
	if c.HostRoot == "" {
		c.HostRoot = d.HostRoot
	}
	if c.PolicyPath == "" {
		c.PolicyPath = d.PolicyPath
	}
	if c.SecurePath == "" {
		c.SecurePath = d.SecurePath
	}
	return c
}

type Store struct {
	mu   sync.Mutex
	path string
}

func NewStore(path string) *Store {
	if path == "" {
		path = DefaultPath
	}
	return &Store{path: path}
}

func (s *Store) Path() string { return s.path }

// Get reads the config file. A missing or empty file yields Default().
func (s *Store) Get() (Config, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, err
	}
	var cfg Config
	if len(b) > 0 {
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", s.path, err)
		}
	}
	cfg = cfg.withDefaults()
	if !filepath.IsAbs(cfg.HostRoot) {
		return Config{}, fmt.Errorf("%s: host_root must be absolute: %q", s.path, cfg.HostRoot)
	}
	return cfg, nil
}
