package view

import (
	"context"
	"sync"

	"github.com/student-spending/spendboard/internal/backend"
	"github.com/student-spending/spendboard/internal/importer"
	"github.com/student-spending/spendboard/internal/session"
	"github.com/student-spending/spendboard/internal/stats"
	"github.com/student-spending/spendboard/internal/transaction"
	"github.com/student-spending/spendboard/internal/upload"
)

// Env holds the services and session shared by every screen.
type Env struct {
	Importer    *importer.Service
	Pending     *transaction.Pending
	Stats       *stats.Service
	Uploader    *upload.Uploader
	SessionPath string

	base *backend.Client

	mu      sync.RWMutex
	session *session.Session
}

func NewEnv(base *backend.Client, statsSvc *stats.Service, sessionPath string, s *session.Session) *Env {
	env := &Env{
		Importer:    importer.NewService(),
		Pending:     transaction.NewPending(),
		Stats:       statsSvc,
		SessionPath: sessionPath,
		base:        base,
		session:     s,
	}

	env.Uploader = upload.NewUploader(sessionClient{env: env})

	return env
}

func (e *Env) Session() *session.Session {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.session
}

func (e *Env) SetSession(s *session.Session) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.session = s
}

func (e *Env) Token() string {
	if s := e.Session(); s != nil {
		return s.Token
	}

	return ""
}

// Client acts for the logged-in user, or anonymously.
func (e *Env) Client() *backend.Client {
	return e.base.ForToken(e.Token())
}

// sessionClient resolves the token at call time so a login takes effect
// without rebuilding the uploader.
type sessionClient struct {
	env *Env
}

func (c sessionClient) UploadTransactions(ctx context.Context, txs []transaction.Transaction) (*backend.UploadResult, error) {
	result, err := c.env.Client().UploadTransactions(ctx, txs)
	if err == nil && result.Accepted > 0 {
		c.env.Stats.Invalidate(c.env.Token())
	}

	return result, err
}
