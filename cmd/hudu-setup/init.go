// cmd/hudu-setup/init.go
package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/jonboulle/clockwork"
	"github.com/pankajbeniwal/hudu-setup/internal/answers"
	"github.com/pankajbeniwal/hudu-setup/internal/compose"
	"github.com/pankajbeniwal/hudu-setup/internal/config"
	"github.com/pankajbeniwal/hudu-setup/internal/docker"
	"github.com/pankajbeniwal/hudu-setup/internal/envfile"
	"github.com/pankajbeniwal/hudu-setup/internal/executor"
	"github.com/pankajbeniwal/hudu-setup/internal/hudu"
	"github.com/pankajbeniwal/hudu-setup/internal/logging"
	"github.com/pankajbeniwal/hudu-setup/internal/prompt"
	"github.com/pankajbeniwal/hudu-setup/internal/secret"
	"github.com/pankajbeniwal/hudu-setup/internal/storage"
	"github.com/pankajbeniwal/hudu-setup/internal/ui"
	"github.com/pankajbeniwal/hudu-setup/internal/wizard"
	"github.com/spf13/cobra"
)

type initOptions struct {
	Output        string
	Force         bool
	Answers       string
	Compose       bool
	VerifyStorage bool
	Start         bool
	RotateSecrets bool
}

var initOpts initOptions

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Interactively create the Hudu .env file",
	Long: `Walk through the Hudu deployment questions and write the .env file.

Secrets (SECRET_KEY_BASE, PASSWORD_KEY, TWO_FACTOR_KEY) are generated from the
operating system's secure random source. When the file already exists its
secrets are kept unless --rotate-secrets is given, since Hudu cannot decrypt
stored passwords with new keys.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := initOpts
		opts.Output = outputPath(opts.Output)

		s := &setup{
			exec:    executor.NewLocalExecutor(),
			prompt:  prompt.NewStdio(),
			secrets: secret.NewGenerator(),
			verify:  storage.VerifyConfig,
			clock:   clockwork.NewRealClock(),
		}
		return s.run(cmd.Context(), opts)
	},
}

func init() {
	f := initCmd.Flags()
	f.StringVarP(&initOpts.Output, "output", "o", "", "env file to write (default $HUDU_SETUP_OUTPUT or .env)")
	f.BoolVarP(&initOpts.Force, "force", "f", false, "overwrite an existing env file without asking")
	f.StringVar(&initOpts.Answers, "answers", "", "read answers from a YAML or dotenv file instead of prompting")
	f.BoolVar(&initOpts.Compose, "compose", false, "also write docker-compose.yml next to the env file")
	f.BoolVar(&initOpts.VerifyStorage, "verify-storage", false, "check that the S3 bucket is reachable with the given credentials")
	f.BoolVar(&initOpts.Start, "start", false, "run docker compose up -d after writing")
	f.BoolVar(&initOpts.RotateSecrets, "rotate-secrets", false, "generate new secrets even if the env file already has them")
	rootCmd.AddCommand(initCmd)
}

type setup struct {
	exec    executor.Executor
	prompt  *prompt.Prompter
	secrets hudu.SecretSource
	verify  func(ctx context.Context, c config.S3) error
	clock   clockwork.Clock
}

func (s *setup) run(ctx context.Context, opts initOptions) error {
	out := opts.Output
	log := logging.Logger.With("output", out)

	ui.Header("Hudu setup")

	exists, err := s.exec.Exists(ctx, out)
	if err != nil {
		return fmt.Errorf("failed to check %s: %w", out, err)
	}

	var prev config.Config
	var prevSecrets hudu.Secrets
	var havePrevSecrets bool
	if exists {
		prev, prevSecrets, havePrevSecrets = s.loadExisting(ctx, out)
		if !opts.Force {
			if opts.Answers != "" {
				return fmt.Errorf("%s already exists; pass --force to overwrite it", out)
			}
			ok, err := s.prompt.Confirm(fmt.Sprintf("%s already exists. Overwrite?", out), false)
			if err != nil {
				return cancelled(err, out)
			}
			if !ok {
				ui.Info("Nothing written.")
				return nil
			}
		}
	}

	var cfg config.Config
	if opts.Answers != "" {
		data, err := s.exec.ReadFile(ctx, opts.Answers)
		if err != nil {
			return fmt.Errorf("failed to read answers: %w", err)
		}
		if cfg, err = answers.Parse(opts.Answers, data); err != nil {
			return err
		}
		ui.Success("Loaded answers from " + opts.Answers)
	} else {
		if !s.prompt.Interactive() {
			log.Debug("stdin is not a terminal; secret answers are read as plain lines")
		}
		if cfg, err = wizard.Run(s.prompt, prev); err != nil {
			return cancelled(err, out)
		}
	}
	log.Debug("configuration collected", "host", cfg.Hostname(), "storage", cfg.Storage)

	secrets, err := s.chooseSecrets(opts, prevSecrets, havePrevSecrets)
	if err != nil {
		return cancelled(err, out)
	}

	if opts.VerifyStorage && cfg.Storage == config.StorageS3 {
		ui.Info("Checking S3 bucket...")
		if err := s.verify(ctx, cfg.S3); err != nil {
			ui.Warn(err.Error())
		} else {
			ui.Success("Bucket " + cfg.S3.Bucket + " is reachable")
		}
	}

	if err := envfile.Save(ctx, s.exec, out, hudu.Document(cfg, secrets), s.clock.Now()); err != nil {
		return err
	}
	log.Info("env file written", "storage", cfg.Storage)
	ui.Success("Wrote " + out)

	composePath := filepath.Join(filepath.Dir(out), compose.FileName)
	if opts.Compose {
		data, err := compose.Generate(cfg, filepath.Base(out))
		if err != nil {
			return err
		}
		if err := s.exec.WriteFile(ctx, composePath, data, 0644); err != nil {
			return fmt.Errorf("write %s: %w", composePath, err)
		}
		ui.Success("Wrote " + composePath)
	}

	if opts.Start {
		if err := s.start(ctx, composePath, out); err != nil {
			return err
		}
	}

	ui.Result(fmt.Sprintf("Hudu will be served at https://%s", cfg.Hostname()))
	if !opts.Start {
		ui.Info("Next: docker compose up -d")
	}
	return nil
}

func (s *setup) loadExisting(ctx context.Context, path string) (config.Config, hudu.Secrets, bool) {
	data, err := s.exec.ReadFile(ctx, path)
	if err != nil {
		ui.Warn("Could not read existing " + path + "; starting fresh")
		return config.Config{}, hudu.Secrets{}, false
	}
	entries, err := envfile.Parse(data)
	if err != nil {
		logging.Logger.Debug("existing env file unreadable", "path", path, "error", err)
		ui.Warn("Existing " + path + " could not be parsed; its values are ignored")
		return config.Config{}, hudu.Secrets{}, false
	}
	secrets, ok := hudu.SecretsFromEntries(entries)
	return hudu.ConfigFromEntries(entries), secrets, ok
}

func (s *setup) chooseSecrets(opts initOptions, prev hudu.Secrets, havePrev bool) (hudu.Secrets, error) {
	if havePrev && !opts.RotateSecrets {
		keep := true
		if opts.Answers == "" {
			ui.Help("New keys make passwords stored by the current install unreadable.")
			var err error
			if keep, err = s.prompt.Confirm("Keep the existing application secrets?", true); err != nil {
				return hudu.Secrets{}, err
			}
		}
		if keep {
			ui.Skip("Kept existing secrets")
			return prev, nil
		}
	}

	secrets, err := hudu.NewSecrets(s.secrets)
	if err != nil {
		return hudu.Secrets{}, err
	}
	ui.Success("Generated SECRET_KEY_BASE, PASSWORD_KEY and TWO_FACTOR_KEY")
	return secrets, nil
}

func (s *setup) start(ctx context.Context, composePath, envPath string) error {
	ok, err := s.exec.Exists(ctx, composePath)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%s not found; pass --compose to generate it", composePath)
	}

	ui.Info("Checking Docker...")
	v, err := docker.Check(ctx, s.exec)
	if err != nil {
		return err
	}
	ui.Success(v.Docker)

	ui.Info("Pulling images and starting containers...")
	if err := docker.ComposeUp(ctx, s.exec, v, composePath, envPath); err != nil {
		ui.Error("Failed to start containers")
		return err
	}
	ui.Success("Containers started")
	return nil
}

func cancelled(err error, out string) error {
	if errors.Is(err, prompt.ErrInputCancelled) {
		return fmt.Errorf("setup cancelled, %s was not written: %w", out, err)
	}
	return err
}
