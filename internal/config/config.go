package config

import (
	"errors"
	"net"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var (
	ErrInvalidPort = errors.New("error getting LP_PORT: value must be between 1 and 65535")
	ErrEmptyEntry  = errors.New("error getting LP_APP_ENTRY: variable contains an empty string")
)

const maxPort = 65535

type Config struct {
	Env     string // Env is the current environment: local, development, production.
	RootDir string // RootDir is the launcher's own directory; every relative path hangs off it.

	Python   Python
	Server   Server
	Ready    Readiness
	Storage  Storage
	Behavior Behavior
}

type Python struct {
	Bootstrap    string // Bootstrap is the system interpreter used to create the venv.
	VenvDir      string
	Requirements string
}

type Server struct {
	AppEntry string
	Host     string
	Port     int
	LogPath  string // LogPath receives the detached server's stdout and stderr.
}

type Readiness struct {
	Delay    time.Duration // Delay is the fixed pause before the first probe.
	Timeout  time.Duration
	Interval time.Duration
	Attempts int
}

type Storage struct {
	StatePath   string
	SessionsDir string
}

type Behavior struct {
	PauseOnError bool
	OpenBrowser  bool
}

// URL returns the local address the browser is pointed at.
func (s Server) URL() string {
	return "http://" + net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// MustLoad loads the configuration from <root>/.env and LP_* environment variables.
func MustLoad() *Config {
	root := resolveRoot()

	// A missing .env is the normal case.
	_ = godotenv.Load(filepath.Join(root, ".env"))

	viper.SetEnvPrefix("LP")
	viper.AutomaticEnv()

	viper.SetDefault("ENV", "local")
	viper.SetDefault("VENV_DIR", "venv")
	viper.SetDefault("REQUIREMENTS", "requirements.txt")
	viper.SetDefault("APP_ENTRY", "app.py")
	viper.SetDefault("PYTHON", defaultPython())
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8501)
	viper.SetDefault("LAUNCH_DELAY", "3s")
	viper.SetDefault("READY_TIMEOUT", "30s")
	viper.SetDefault("READY_INTERVAL", "500ms")
	viper.SetDefault("READY_ATTEMPTS", 40)
	viper.SetDefault("STATE_PATH", filepath.Join(".launcher", "state.db"))
	viper.SetDefault("SERVER_LOG", filepath.Join(".launcher", "server.log"))
	viper.SetDefault("SESSIONS_DIR", "saved_searches")
	viper.SetDefault("PAUSE_ON_ERROR", true)
	viper.SetDefault("OPEN_BROWSER", true)

	port := viper.GetInt("PORT")
	if port < 1 || port > maxPort {
		panic(ErrInvalidPort)
	}

	entry := strings.TrimSpace(viper.GetString("APP_ENTRY"))
	if entry == "" {
		panic(ErrEmptyEntry)
	}

	return &Config{
		Env:     viper.GetString("ENV"),
		RootDir: root,
		Python: Python{
			Bootstrap:    viper.GetString("PYTHON"),
			VenvDir:      resolve(root, viper.GetString("VENV_DIR")),
			Requirements: resolve(root, viper.GetString("REQUIREMENTS")),
		},
		Server: Server{
			AppEntry: entry,
			Host:     viper.GetString("HOST"),
			Port:     port,
			LogPath:  resolve(root, viper.GetString("SERVER_LOG")),
		},
		Ready: Readiness{
			Delay:    viper.GetDuration("LAUNCH_DELAY"),
			Timeout:  viper.GetDuration("READY_TIMEOUT"),
			Interval: viper.GetDuration("READY_INTERVAL"),
			Attempts: viper.GetInt("READY_ATTEMPTS"),
		},
		Storage: Storage{
			StatePath:   resolve(root, viper.GetString("STATE_PATH")),
			SessionsDir: resolve(root, viper.GetString("SESSIONS_DIR")),
		},
		Behavior: Behavior{
			PauseOnError: viper.GetBool("PAUSE_ON_ERROR"),
			OpenBrowser:  viper.GetBool("OPEN_BROWSER"),
		},
	}
}

// resolveRoot returns LP_ROOT_DIR when set, otherwise the executable's directory.
func resolveRoot() string {
	if dir := os.Getenv("LP_ROOT_DIR"); dir != "" {
		if abs, err := filepath.Abs(dir); err == nil {
			return abs
		}
		return dir
	}

	exe, err := os.Executable()
	if err != nil {
		wd, _ := os.Getwd()
		return wd
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}

	return filepath.Dir(exe)
}

func resolve(root, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

func defaultPython() string {
	if runtime.GOOS == "windows" {
		return "python"
	}
	return "python3"
}
