package command

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/student-spending/spendboard/internal/backend"
	"github.com/student-spending/spendboard/internal/config"
	"github.com/student-spending/spendboard/internal/importer"
	"github.com/student-spending/spendboard/internal/logger"
	"github.com/student-spending/spendboard/internal/session"
	"github.com/student-spending/spendboard/internal/transaction"
)

var errSessionExpired = errors.New("session expired, run `spend login` again")

type app struct {
	cfg      *config.Config
	importer *importer.Service
	now      func() time.Time
}

// NewRoot builds the spend command tree.
func NewRoot() *cobra.Command {
	a := &app{now: time.Now}

	root := &cobra.Command{
		Use:           "spend",
		Short:         "Validate, upload and analyse student spending batches",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	root.AddCommand(
		newValidateCmd(a),
		newUploadCmd(a),
		newClassifyCmd(a),
		newStatsCmd(a),
		newLoginCmd(a),
		newSignupCmd(a),
		newLogoutCmd(a),
		newHealthCmd(a),
	)

	return root
}

func (a *app) init(cmd *cobra.Command) error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger.Init(cmd.ErrOrStderr(), cfg.App.LogLevel)

	a.cfg = cfg
	a.importer = importer.NewService()

	return nil
}

func (a *app) anonymousClient() *backend.Client {
	return backend.New(a.cfg.API.URL, backend.WithHTTPClient(&http.Client{Timeout: a.cfg.API.Timeout}))
}

// client returns a backend client carrying the saved token, if any.
func (a *app) client() (*backend.Client, string, error) {
	s, err := session.Load(a.cfg.SessionPath)
	switch {
	case errors.Is(err, session.ErrNoSession):
		return a.anonymousClient(), "", nil
	case err != nil:
		return nil, "", err
	case s.Expired(a.now()):
		return nil, "", errSessionExpired
	}

	return a.anonymousClient().ForToken(s.Token), s.Token, nil
}

func (a *app) ingest(path string) (*transaction.ValidationResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	return a.importer.Ingest(filepath.Base(path), f)
}
