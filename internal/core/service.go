package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/Rorical/RoriSend/internal/dispatcher"
	"github.com/Rorical/RoriSend/internal/eventbus"
	"github.com/Rorical/RoriSend/internal/models"
	"github.com/Rorical/RoriSend/internal/node"
)

// Progress titles reported while a transfer moves through the pipeline.
const (
	TitlePreparing    = "Preparing transfer"
	TitleBroadcasting = "Broadcasting transfer"
	TitleComplete     = "Transfer complete"
)

// SendService is the send pipeline. It owns isSending and progress and is
// the one place transfer failures are reported from.
type SendService struct {
	backend  node.Backend
	account  models.AccountContext
	state    *SendState
	eventBus *eventbus.EventBus
	logger   logrus.FieldLogger
	ctx      context.Context
	cancel   context.CancelFunc
	done     chan struct{}
}

func NewSendService(backend node.Backend, account models.AccountContext, eb *eventbus.EventBus, logger logrus.FieldLogger) *SendService {
	ctx, cancel := context.WithCancel(context.Background())
	return &SendService{
		backend:  backend,
		account:  account,
		state:    NewSendState(),
		eventBus: eb,
		logger:   logger.WithField("component", "send_service"),
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
}

// Start loads the balance and then runs the core logic in a goroutine
func (s *SendService) Start() {
	go func() {
		defer close(s.done)
		s.refreshBalance()
		s.eventLoop()
	}()
}

// Stop cancels the pipeline and waits for the event loop to exit.
func (s *SendService) Stop() {
	s.cancel()
	<-s.done
}

func (s *SendService) State() *SendState {
	return s.state
}

func (s *SendService) eventLoop() {
	for {
		select {
		case <-s.ctx.Done():
			return
		case event, ok := <-s.eventBus.UIToCore():
			if !ok {
				return
			}
			s.handleUIEvent(event)
		}
	}
}

func (s *SendService) handleUIEvent(event eventbus.UIEvent) {
	switch e := event.(type) {
	case eventbus.SubmitTransferEvent:
		s.processTransfer(e.Request)
	case eventbus.TransferAbortedEvent:
		s.logger.WithField("transfer_id", e.ID).WithError(e.Err).Warn("transfer aborted before submission")
		s.state.FinishWithError(e.ID, e.Err)
		s.pushStateToUI()
	case eventbus.RefreshBalanceEvent:
		s.refreshBalance()
	}
}

func (s *SendService) processTransfer(req dispatcher.TransferRequest) {
	log := s.logger.WithField("transfer_id", req.ID)

	s.state.StartTransfer(req.ID, TitlePreparing)
	s.pushStateToUI()

	transfer := node.Transfer{
		ID:          req.ID,
		AccountName: req.Credential.AccountName(),
		AccountType: string(req.Credential.Type()),
		KeyID:       req.Credential.KeyID(),
		Address:     req.Address,
		Value:       req.AmountUnits,
		Message:     req.Message,
	}

	s.state.SetProgress(0.5, TitleBroadcasting)
	s.pushStateToUI()

	hash, err := s.backend.Broadcast(s.ctx, transfer)
	if err != nil {
		log.WithError(err).Error("broadcast failed")
		s.state.FinishWithError(req.ID, fmt.Errorf("broadcast transfer: %w", err))
		s.pushStateToUI()
		return
	}

	log.WithField("hash", hash).Info("transfer broadcast")
	s.state.FinishWithHash(hash, TitleComplete)
	s.pushStateToUI()
	s.refreshBalance()
}

func (s *SendService) refreshBalance() {
	balance, err := s.backend.Balance(s.ctx, s.account)
	switch {
	case errors.Is(err, node.ErrBalanceUnavailable):
		s.state.SetBalance(0, false)
	case err != nil:
		s.logger.WithError(err).Warn("balance lookup failed")
		s.state.SetBalance(0, false)
	default:
		s.state.SetBalance(balance, true)
	}

	balance, known := s.state.Balance()
	if err := s.eventBus.SendToUI(eventbus.BalanceEvent{Balance: balance, Known: known}); err != nil {
		s.logger.WithError(err).Warn("could not push balance to UI")
	}
}

// pushStateToUI drops progress updates the UI cannot take, but waits to
// deliver a settlement: the form stays locked in Sending until it sees one.
func (s *SendService) pushStateToUI() {
	snapshot := s.state.Snapshot()
	if !snapshot.Settled {
		if err := s.eventBus.SendToUI(snapshot); err != nil {
			s.logger.WithError(err).Warn("could not push send state to UI")
		}
		return
	}
	if err := s.eventBus.DeliverToUI(s.ctx, snapshot); err != nil {
		s.logger.WithError(err).WithField("transfer_id", snapshot.TransferID).Error("could not deliver settlement to UI")
	}
}
