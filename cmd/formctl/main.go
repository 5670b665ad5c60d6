// Command formctl builds a form from a YAML definition and submits it to the
// form builder service.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/SAP-F-2025/form-builder-service/internal/avatar"
	"github.com/SAP-F-2025/form-builder-service/internal/builder"
	"github.com/SAP-F-2025/form-builder-service/internal/client"
	apperrors "github.com/SAP-F-2025/form-builder-service/internal/errors"
	"github.com/SAP-F-2025/form-builder-service/internal/utils"
	"github.com/caarlos0/env/v11"
)

type Config struct {
	Server    string        `env:"FORMCTL_SERVER" envDefault:"http://localhost:8080"`
	Path      string        `env:"FORMCTL_SUBMIT_PATH" envDefault:"/formController"`
	User      string        `env:"FORMCTL_USER"`
	Timeout   time.Duration `env:"FORMCTL_TIMEOUT" envDefault:"30s"`
	StateFile string        `env:"FORMCTL_STATE_FILE"`
	AvatarURL string        `env:"AVATAR_BASE_URL" envDefault:"https://api.dicebear.com/6.x/bottts/svg"`
	LogLevel  string        `env:"LOG_LEVEL" envDefault:"warn"`
	MaxBanner int64         `env:"MAX_BANNER_BYTES" envDefault:"5242880"`

	File   string
	DryRun bool
}

// ParseConfig reads the environment first; flags override it.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.StateFile == "" {
		if dir, err := os.UserConfigDir(); err == nil {
			cfg.StateFile = filepath.Join(dir, "formctl", "state.yaml")
		}
	}

	fs.StringVar(&cfg.File, "f", "", "form definition (YAML); - reads stdin")
	fs.StringVar(&cfg.Server, "server", cfg.Server, "form builder service base URL")
	fs.StringVar(&cfg.Path, "path", cfg.Path, "submission endpoint path")
	fs.StringVar(&cfg.User, "user", cfg.User, "caller id sent as X-User-ID")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "request timeout")
	fs.BoolVar(&cfg.DryRun, "dry-run", false, "print the payload instead of submitting")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if cfg.File == "" {
		return Config{}, errors.New("-f is required")
	}
	return cfg, nil
}

func main() {
	cfg, err := ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, cfg, os.Stdin, os.Stdout, os.Stderr))
}

// run returns the process exit code: 1 for a blocked or invalid form,
// 2 for a failed submission that may be retried.
func run(ctx context.Context, cfg Config, stdin io.Reader, stdout, stderr io.Writer) int {
	level := cfg.LogLevel
	if level == "" {
		level = "warn"
	}
	logger := utils.NewLogger(utils.LogConfig{Level: level, Format: "text"})

	if cfg.StateFile != "" {
		avatars := avatar.NewService(avatar.NewFileStore(cfg.StateFile), avatar.WithBaseURL(cfg.AvatarURL))
		if url, err := avatars.URL(ctx, ""); err == nil {
			fmt.Fprintf(stdout, "avatar: %s\n", url)
		} else {
			logger.Warn("Avatar unavailable", "error", err)
		}
	}

	def, baseDir, err := readDefinition(cfg.File, stdin)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	formClient := client.New(cfg.Server)
	formClient.Path = cfg.Path
	formClient.Timeout = cfg.Timeout
	formClient.UserID = cfg.User
	formClient.Logger = logger

	b := builder.New(formClient, builder.WithLogger(logger), builder.WithMaxBannerBytes(cfg.MaxBanner))
	if err := def.Apply(b, baseDir); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	if cfg.DryRun {
		if errs := b.Validate(); len(errs) > 0 {
			printValidation(stderr, errs)
			return 1
		}
		return printPayload(stdout, stderr, b.Submission())
	}

	ack, err := b.Submit(ctx)
	if err != nil {
		var errs apperrors.ValidationErrors
		var submitErr *builder.SubmitError
		switch {
		case errors.As(err, &errs):
			printValidation(stderr, errs)
			return 1
		case errors.As(err, &submitErr):
			fmt.Fprintf(stderr, "Form submission failed, please try again: %v\n", submitErr.Err)
			return 2
		default:
			fmt.Fprintf(stderr, "error: %v\n", err)
			return 1
		}
	}

	fmt.Fprintln(stdout, ack.Message)
	return 0
}

func readDefinition(path string, stdin io.Reader) (*Definition, string, error) {
	if path == "-" {
		def, err := LoadDefinition(stdin)
		return def, ".", err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()
	def, err := LoadDefinition(f)
	return def, filepath.Dir(path), err
}

func printValidation(w io.Writer, errs apperrors.ValidationErrors) {
	for _, msg := range errs.UserMessages() {
		fmt.Fprintln(w, msg)
	}
}

func printPayload(stdout, stderr io.Writer, submission builder.Submission) int {
	payload := struct {
		FormName  string      `json:"formName"`
		FormDes   string      `json:"formDes"`
		Questions interface{} `json:"questions"`
		Banner    string      `json:"banner,omitempty"`
	}{
		FormName:  submission.FormName,
		FormDes:   submission.FormDes,
		Questions: submission.Questions,
	}
	if submission.Banner != nil {
		payload.Banner = fmt.Sprintf("%s (%s, %d bytes)", submission.Banner.FileName, submission.Banner.ContentType, len(submission.Banner.Data))
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(payload); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return 0
}
