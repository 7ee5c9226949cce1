package dispatcher

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/Rorical/RoriSend/internal/models"
	"github.com/Rorical/RoriSend/internal/send"
	"github.com/Rorical/RoriSend/internal/wallet"
)

// TransferRequest is built once per confirmed transfer and handed to the
// submitter. It is not retained afterwards.
type TransferRequest struct {
	ID          string
	Credential  wallet.Credential
	Address     string
	AmountUnits int64
	Message     string
}

// Submitter issues a transfer to the send pipeline.
type Submitter interface {
	SubmitTransfer(ctx context.Context, req TransferRequest) error
}

// ProviderResolver selects the credential provider of an account.
type ProviderResolver interface {
	ForMeta(meta models.AccountMeta) (wallet.CredentialProvider, error)
}

// Task is a snapshot of one confirmed send: the fields as they were at
// confirmation time plus the account to send from.
type Task struct {
	ID       string
	Account  models.AccountContext
	Password []byte
	Fields   models.Fields
}

// TransferDispatcher runs a confirmed transfer in two steps: unlock the
// credential, then submit. The second step never starts unless the first
// succeeded.
type TransferDispatcher struct {
	providers ProviderResolver
	submitter Submitter
	logger    logrus.FieldLogger
}

func NewTransferDispatcher(providers ProviderResolver, submitter Submitter, logger logrus.FieldLogger) *TransferDispatcher {
	return &TransferDispatcher{
		providers: providers,
		submitter: submitter,
		logger:    logger,
	}
}

// Dispatch unlocks the account credential and submits the transfer. Errors
// from either collaborator are returned as is, wrapped; nothing is retried.
func (d *TransferDispatcher) Dispatch(ctx context.Context, task Task) error {
	log := d.logger.WithFields(logrus.Fields{
		"transfer_id": task.ID,
		"account":     task.Account.AccountName,
	})

	provider, err := d.providers.ForMeta(task.Account.AccountMeta)
	if err != nil {
		return fmt.Errorf("resolve credential provider: %w", err)
	}

	log.WithField("step", "unlock").Debug("acquiring credential")
	cred, err := provider.Unlock(ctx, task.Password, task.Account.AccountName, task.Account.AccountMeta)
	if err != nil {
		log.WithError(err).Warn("credential unlock failed")
		return err
	}

	req := TransferRequest{
		ID:          task.ID,
		Credential:  cred,
		Address:     task.Fields.Address,
		AmountUnits: send.ParseAmount(task.Fields.Amount),
		Message:     send.EligibleMessage(provider, task.Fields),
	}

	log.WithFields(logrus.Fields{
		"step":        "submit",
		"amount":      req.AmountUnits,
		"has_message": req.Message != "",
	}).Info("submitting transfer")
	if err := d.submitter.SubmitTransfer(ctx, req); err != nil {
		return fmt.Errorf("submit transfer: %w", err)
	}
	return nil
}
