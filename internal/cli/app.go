// Package cli implements the schoolctl command tree.
package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"

	"github.com/jrsteele09/go-school-client/apiclient"
	"github.com/jrsteele09/go-school-client/auth"
	"github.com/jrsteele09/go-school-client/internal/config"
	"github.com/jrsteele09/go-school-client/sessions"
	"github.com/jrsteele09/go-school-client/sessions/filestore"
	"github.com/jrsteele09/go-school-client/sessions/redisstore"
	fakesessionstore "github.com/jrsteele09/go-school-client/sessions/repofakes"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

const (
	outputYAML = "yaml"
	outputJSON = "json"
)

// App carries everything a command needs. Fields left nil are filled from
// the environment by NewApp; tests set them directly.
type App struct {
	Config  config.Config
	Version string

	In  io.Reader
	Out io.Writer
	Err io.Writer

	Logger zerolog.Logger

	// Store overrides the store selected by SCHOOL_SESSION_STORE.
	Store sessions.Store
	// HTTPClient overrides the transport built from SCHOOL_HTTP_TIMEOUT.
	HTTPClient *http.Client
	// ReadPassword reads a secret without echo. Nil reads a plain line from In.
	ReadPassword func(fd int) ([]byte, error)

	output     string
	configFile string

	once     sync.Once
	client   *apiclient.Client
	location *apiclient.Location
	initErr  error
	reader   *bufio.Reader
}

// NewApp wires an App to the process's standard streams.
func NewApp(version string) *App {
	a := &App{
		Config:  config.New(),
		Version: version,
		In:      os.Stdin,
		Out:     os.Stdout,
		Err:     os.Stderr,
	}
	if term.IsTerminal(int(os.Stdin.Fd())) {
		a.ReadPassword = term.ReadPassword
	}
	a.Logger = NewLogger(a.Err, a.Config.GetLogLevel())
	return a
}

// NewLogger writes human-readable logs to w at the named level.
func NewLogger(w io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true}).Level(lvl).With().Timestamp().Logger()
}

func (a *App) sessionStore() (sessions.Store, error) {
	if a.Store != nil {
		return a.Store, nil
	}
	switch a.Config.GetSessionStore() {
	case config.StoreMemory:
		// Lives only as long as the process.
		return fakesessionstore.NewFakeSessionStore(), nil
	case config.StoreRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     a.Config.GetRedisAddr(),
			Password: a.Config.GetRedisPassword(),
			DB:       a.Config.GetRedisDB(),
		})
		return redisstore.New(rdb,
			redisstore.WithPrefix(a.Config.GetRedisPrefix()),
			redisstore.WithTTL(a.Config.GetRedisTTL()),
		), nil
	default:
		return filestore.New(a.Config.GetSessionFile(), filestore.WithPassphrase(a.Config.GetSessionKey())), nil
	}
}

// APIClient returns the client shared by every command of this invocation.
func (a *App) APIClient() (*apiclient.Client, error) {
	a.once.Do(func() {
		store, err := a.sessionStore()
		if err != nil {
			a.initErr = err
			return
		}
		httpClient := a.HTTPClient
		if httpClient == nil {
			httpClient = &http.Client{Timeout: a.Config.GetHTTPTimeout()}
		}
		a.location = apiclient.NewLocation("/", apiclient.OnNavigate(func(path string) {
			a.Logger.Debug().Str("path", path).Msg("navigate")
		}))
		a.client, a.initErr = apiclient.New(a.Config.GetBaseURL(),
			sessions.NewManager(store, sessions.WithLogger(a.Logger)),
			apiclient.WithHTTPClient(httpClient),
			apiclient.WithNavigator(a.location),
			apiclient.WithLoginPath(a.Config.GetLoginPath()),
			apiclient.WithLogger(a.Logger),
		)
	})
	return a.client, a.initErr
}

func (a *App) authService() (*auth.Service, error) {
	client, err := a.APIClient()
	if err != nil {
		return nil, err
	}
	return auth.NewService(client,
		auth.WithDashboardPath(a.Config.GetDashboardPath()),
		auth.WithLogger(a.Logger),
	)
}

// render writes v to Out in the selected output format.
func (a *App) render(v any) error {
	if a.output == outputJSON {
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return errors.Wrap(err, "[render] encode")
		}
		_, err = fmt.Fprintf(a.Out, "%s\n", data)
		return err
	}

	data, err := json.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "[render] encode")
	}
	out, err := jsonToYAML(data)
	if err != nil {
		return err
	}
	_, err = a.Out.Write(out)
	return err
}

// jsonToYAML re-encodes a JSON document as block-style YAML, keeping the
// JSON field names and their order.
func jsonToYAML(data []byte) ([]byte, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, errors.Wrap(err, "[render] parse")
	}
	blockStyle(&node)
	out, err := yaml.Marshal(&node)
	if err != nil {
		return nil, errors.Wrap(err, "[render] yaml")
	}
	return out, nil
}

func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		blockStyle(c)
	}
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.Out, format, args...)
}

func (a *App) line() (string, error) {
	if a.reader == nil {
		a.reader = bufio.NewReader(a.In)
	}
	s, err := a.reader.ReadString('\n')
	if err != nil && (err != io.EOF || s == "") {
		return "", errors.Wrap(err, "[prompt] read")
	}
	return strings.TrimRight(s, "\r\n"), nil
}

// prompt asks for a visible value on Err and reads it from In.
func (a *App) prompt(label string) (string, error) {
	fmt.Fprint(a.Err, label)
	return a.line()
}

// secret asks for a hidden value. Without a terminal it reads a plain line.
func (a *App) secret(label string) (string, error) {
	fmt.Fprint(a.Err, label)
	if a.ReadPassword == nil {
		return a.line()
	}
	b, err := a.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(a.Err)
	if err != nil {
		return "", errors.Wrap(err, "[prompt] read password")
	}
	return string(b), nil
}
