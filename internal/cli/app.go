package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/lexazver/teamboard/internal/accounts"
	"github.com/lexazver/teamboard/internal/config"
	"github.com/lexazver/teamboard/internal/logging"
	"github.com/lexazver/teamboard/internal/services"
	"github.com/lexazver/teamboard/internal/session"
	"github.com/lexazver/teamboard/internal/storage"

	_ "modernc.org/sqlite"
)

type App struct {
	config      *config.Config
	authService services.AuthService
	log         logging.Logger
	reader      *bufio.Reader

	vaultDB   *sql.DB
	sessionDB *sql.DB
}

func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	vaultDB, err := storage.Open(ctx, c.VaultPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open vault store: %w", err)
	}

	sessionDB, err := storage.Open(ctx, c.SessionPath)
	if err != nil {
		_ = vaultDB.Close()
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}

	repo := accounts.NewKVRepository(vaultDB)
	mgr := session.NewManager(storage.NewSQLiteStore(sessionDB), log)
	as := services.NewAuthService(repo, mgr, log)

	return &App{
		config:      c,
		authService: as,
		log:         log,
		reader:      bufio.NewReader(os.Stdin),
		vaultDB:     vaultDB,
		sessionDB:   sessionDB,
	}, nil
}

// Run restores any surviving session and starts the REPL. It blocks until
// the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	a.log.Debug(ctx, "stores opened", "vault", a.config.VaultPath, "session", a.config.SessionPath)
	a.authService.Restore(ctx)
	a.Root(ctx)
}

func (a *App) Close() {
	_ = a.sessionDB.Close()
	_ = a.vaultDB.Close()
}

func (a *App) isLoggedIn() bool {
	return a.authService.CurrentUser() != nil
}
