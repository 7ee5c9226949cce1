package app

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/Rorical/RoriSend/internal/config"
	"github.com/Rorical/RoriSend/internal/core"
	"github.com/Rorical/RoriSend/internal/dispatcher"
	"github.com/Rorical/RoriSend/internal/eventbus"
	"github.com/Rorical/RoriSend/internal/logging"
	"github.com/Rorical/RoriSend/internal/node"
	"github.com/Rorical/RoriSend/internal/wallet"
)

// Application manages the complete application lifecycle
type Application struct {
	config    *config.Config
	logger    *logrus.Logger
	logCloser io.Closer
	eventBus  *eventbus.EventBus
	service   *core.SendService
	model     *AppModel
	cancel    context.CancelFunc
}

// NewApplication wires the send form for the active account. password is
// handed to the credential provider when a transfer is confirmed.
func NewApplication(cfg *config.Config, password []byte) (*Application, error) {
	logger, logCloser, err := logging.New(cfg.HomeDir(), cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	account, err := cfg.ActiveAccountContext()
	if err != nil {
		logCloser.Close()
		return nil, err
	}

	// Create event bus
	eb := eventbus.NewEventBus()
	eb.SetErrorCallback(func(e eventbus.EventBusError) {
		logger.WithError(e.Err).WithField("operation", e.Operation).Warn("event bus error")
	})

	backend := node.New(node.Options{
		URL:     cfg.Node.URL,
		Timeout: cfg.Node.Timeout,
		Home:    cfg.HomeDir(),
	})

	// Hardware signing goes through the node; offline there is no device.
	var device wallet.Device
	if client, ok := backend.(*node.HTTPClient); ok {
		device = client
	}
	providers := wallet.NewProviders(wallet.NewVault(cfg.VaultDir()), device)

	provider, err := providers.ForMeta(account.AccountMeta)
	if err != nil {
		logCloser.Close()
		return nil, fmt.Errorf("account %s: %w", account.AccountName, err)
	}

	disp := dispatcher.NewTransferDispatcher(providers, eb, logger.WithField("component", "dispatcher"))
	service := core.NewSendService(backend, account, eb, logger)

	ctx, cancel := context.WithCancel(context.Background())
	model := newAppModel(ctx, modelDeps{
		account:    account,
		capability: provider,
		password:   password,
		settings:   cfg.DisplaySettings(),
		dispatcher: disp,
		eventBus:   eb,
		logger:     logger.WithField("component", "ui"),
	})

	logger.WithFields(logrus.Fields{
		"account": account.AccountName,
		"type":    account.AccountMeta.Type,
		"online":  cfg.Node.URL != "",
	}).Info("send form ready")

	return &Application{
		config:    cfg,
		logger:    logger,
		logCloser: logCloser,
		eventBus:  eb,
		service:   service,
		model:     model,
		cancel:    cancel,
	}, nil
}

func (app *Application) Start() error {
	// Start background services
	app.service.Start()

	// Run UI
	p := tea.NewProgram(app.model, tea.WithAltScreen())
	_, err := p.Run()

	return err
}

func (app *Application) Stop() {
	app.cancel()
	app.service.Stop()
	app.eventBus.Close()
	app.logger.Info("shutdown")
	app.logCloser.Close()
}
