package app

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/Rorical/RoriSend/internal/dispatcher"
	"github.com/Rorical/RoriSend/internal/eventbus"
	"github.com/Rorical/RoriSend/internal/models"
	"github.com/Rorical/RoriSend/internal/send"
	"github.com/Rorical/RoriSend/internal/update"
	"github.com/Rorical/RoriSend/internal/validate"
	"github.com/Rorical/RoriSend/ui/components"
)

const defaultWidth = 80

type modelDeps struct {
	account    models.AccountContext
	capability send.Capability
	password   []byte
	settings   models.Settings
	dispatcher update.Dispatcher
	eventBus   *eventbus.EventBus
	logger     logrus.FieldLogger
}

// AppModel is the send form. It owns the field store and the confirmation
// workflow; sending state comes from the pipeline.
type AppModel struct {
	appModel  models.AppModel
	inputs    [3]textinput.Model
	progress  progress.Model
	help      help.Model
	keys      update.KeyMap
	store     *send.Store
	workflow  *send.Workflow
	validator *validate.Validator
	deps      modelDeps
	ctx       context.Context
}

var fieldNames = [3]string{
	models.FocusAddress: validate.FieldAddress,
	models.FocusAmount:  validate.FieldAmount,
	models.FocusMessage: validate.FieldMessage,
}

func newAppModel(ctx context.Context, deps modelDeps) *AppModel {
	m := &AppModel{
		appModel: models.AppModel{
			Status: update.StatusReady,
			Width:  defaultWidth,
		},
		progress: progress.New(progress.WithDefaultGradient()),
		help:     help.New(),
		keys:     update.DefaultKeyMap(),
		store:    send.NewStore(models.Fields{}),
		workflow: send.NewWorkflow(),
		deps:     deps,
		ctx:      ctx,
	}
	m.validator = validate.New(m.store.Fields, func() (int64, bool) {
		return m.appModel.Balance, m.appModel.BalanceKnown
	})

	placeholders := [3]string{"recipient address", "amount in i", "optional message"}
	for i := range m.inputs {
		in := textinput.New()
		in.Placeholder = placeholders[i]
		in.Prompt = ""
		m.inputs[i] = in
	}
	m.inputs[models.FocusAddress].CharLimit = validate.AddressWithChecksumLength
	m.inputs[models.FocusMessage].CharLimit = send.MaxMessageLength
	m.inputs[models.FocusAddress].Focus()
	m.resize()
	return m
}

func (m *AppModel) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		update.TickCmd(),
		update.ListenForCoreEvents(m.deps.eventBus),
	)
}

func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case update.CoreEventMsg:
		// Handle core events and continue listening
		if settlement, ok := update.HandleCoreEvent(&m.appModel, msg); ok {
			m.settle(settlement)
		}
		return m, update.ListenForCoreEvents(m.deps.eventBus)
	case update.DispatchResultMsg:
		m.handleDispatchResult(msg)
		return m, nil
	case update.RefreshFailedMsg:
		m.setStatus("Balance refresh failed: "+msg.Err.Error(), true)
		return m, nil
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	case tea.WindowSizeMsg:
		update.HandleWindowSizeMsg(&m.appModel, msg)
		m.resize()
		return m, nil
	}

	if cmd, ok := update.HandleUpdate(&m.appModel, msg); ok {
		return m, cmd
	}

	// Cursor blink and other widget messages
	var cmd tea.Cmd
	focus := m.appModel.Focus
	m.inputs[focus], cmd = m.inputs[focus].Update(msg)
	return m, cmd
}

func (m *AppModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.Quit) {
		return tea.Quit
	}
	if m.appModel.UnitsVisible {
		m.appModel.UnitsVisible = false
		return nil
	}

	switch m.workflow.State() {
	case send.PendingConfirmation:
		return m.handleConfirmKey(msg)
	case send.Sending:
		return nil
	}
	return m.handleFormKey(msg)
}

func (m *AppModel) handleConfirmKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		return m.confirm()
	case key.Matches(msg, m.keys.Cancel):
		if m.workflow.Cancel() {
			m.setStatus(update.StatusCancelled, false)
		}
	}
	return nil
}

func (m *AppModel) handleFormKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case msg.Type == tea.KeyEsc:
		return tea.Quit
	case key.Matches(msg, m.keys.Submit):
		if m.workflow.Submit(m.validator.Validate) {
			m.setStatus("Review the transfer", false)
		} else {
			m.setStatus("Fix the highlighted fields", true)
		}
		m.appModel.FieldErrors = m.validator.Errors()
		return nil
	case key.Matches(msg, m.keys.Next):
		m.moveFocus(1)
		return nil
	case key.Matches(msg, m.keys.Prev):
		m.moveFocus(-1)
		return nil
	case key.Matches(msg, m.keys.Refresh):
		m.setStatus(update.StatusRefreshing, false)
		return update.RefreshBalanceCmd(m.deps.eventBus)
	case key.Matches(msg, m.keys.Units):
		m.appModel.UnitsVisible = true
		return nil
	case key.Matches(msg, m.keys.Max):
		if amount, ok := update.MaxAmount(&m.appModel); ok {
			m.store.SetAmount(amount)
			m.syncInputs()
			m.clearFieldError(validate.FieldAmount)
		}
		return nil
	}
	return m.updateFocusedInput(msg)
}

func (m *AppModel) updateFocusedInput(msg tea.KeyMsg) tea.Cmd {
	focus := m.appModel.Focus

	if focus == models.FocusAddress && msg.Paste {
		if payload, err := send.ParsePayload(string(msg.Runes)); err == nil {
			payload.Apply(m.store)
			m.syncInputs()
			m.clearFieldError(validate.FieldAddress)
			m.clearFieldError(validate.FieldAmount)
			m.clearFieldError(validate.FieldMessage)
			m.ensureFocusEnabled()
			return nil
		}
	}

	var cmd tea.Cmd
	m.inputs[focus], cmd = m.inputs[focus].Update(msg)
	value := m.inputs[focus].Value()
	switch focus {
	case models.FocusAddress:
		m.store.SetAddress(value)
	case models.FocusAmount:
		m.store.SetAmount(value)
	case models.FocusMessage:
		m.store.SetMessage(value)
	}
	m.clearFieldError(fieldNames[focus])
	m.ensureFocusEnabled()
	return cmd
}

// confirm enters Sending before the credential is touched, then runs the
// unlock and submit hand-off off the UI loop.
func (m *AppModel) confirm() tea.Cmd {
	id, err := m.workflow.Confirm()
	if err != nil {
		return nil
	}
	task := dispatcher.Task{
		ID:       id,
		Account:  m.deps.account,
		Password: m.deps.password,
		Fields:   m.store.Fields(),
	}
	m.appModel.Unlocking = true
	m.setStatus(update.StatusUnlocking, false)
	return update.DispatchCmd(m.ctx, m.deps.dispatcher, task)
}

// handleDispatchResult forwards a failed hand-off to the pipeline so it is
// reported like any other transfer failure.
func (m *AppModel) handleDispatchResult(msg update.DispatchResultMsg) {
	m.appModel.Unlocking = false
	if msg.Err == nil {
		return
	}
	m.deps.logger.WithError(msg.Err).WithField("transfer_id", msg.ID).Warn("transfer not submitted")

	if err := m.deps.eventBus.SendToCore(eventbus.TransferAbortedEvent{ID: msg.ID, Err: msg.Err}); err != nil {
		m.setStatus("Error: "+msg.Err.Error(), true)
		_ = m.workflow.Finish(msg.ID)
	}
}

func (m *AppModel) settle(s update.Settlement) {
	if err := m.workflow.Finish(s.TransferID); err != nil {
		m.deps.logger.WithField("transfer_id", s.TransferID).Debug("settlement for unknown transfer")
		return
	}
	m.appModel.Unlocking = false
	if s.Err != nil {
		return
	}
	m.store.Reset()
	m.syncInputs()
	m.appModel.FieldErrors = nil
	m.ensureFocusEnabled()
}

func (m *AppModel) messageAllowed() bool {
	return send.MessageAllowed(m.deps.capability, m.store.Fields().Amount)
}

func (m *AppModel) moveFocus(delta int) {
	focus := int(m.appModel.Focus)
	for {
		focus = (focus + delta + len(m.inputs)) % len(m.inputs)
		if models.FieldFocus(focus) != models.FocusMessage || m.messageAllowed() {
			break
		}
	}
	m.setFocus(models.FieldFocus(focus))
}

// ensureFocusEnabled moves focus off the message input once it turns
// ineligible.
func (m *AppModel) ensureFocusEnabled() {
	if m.appModel.Focus == models.FocusMessage && !m.messageAllowed() {
		m.setFocus(models.FocusAmount)
	}
}

func (m *AppModel) setFocus(focus models.FieldFocus) {
	m.appModel.Focus = focus
	for i := range m.inputs {
		if models.FieldFocus(i) == focus {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
}

func (m *AppModel) syncInputs() {
	f := m.store.Fields()
	m.inputs[models.FocusAddress].SetValue(f.Address)
	m.inputs[models.FocusAmount].SetValue(f.Amount)
	m.inputs[models.FocusMessage].SetValue(f.Message)
}

func (m *AppModel) clearFieldError(field string) {
	m.validator.Clear(field)
	m.appModel.FieldErrors = m.validator.Errors()
}

func (m *AppModel) setStatus(status string, isError bool) {
	m.appModel.Status = status
	m.appModel.StatusIsError = isError
}

func (m *AppModel) resize() {
	width := max(m.appModel.Width-8, 10)
	for i := range m.inputs {
		m.inputs[i].Width = width
	}
	m.progress.Width = width
	m.help.Width = m.appModel.Width
}

func (m *AppModel) View() string {
	if m.appModel.UnitsVisible {
		return components.RenderUnits()
	}

	var b strings.Builder
	width := m.appModel.Width
	labels := [3]string{"Address", "Amount (i)", "Message"}

	b.WriteString(components.RenderTitle(m.deps.account.AccountName, m.deps.account.AccountMeta.Type))
	b.WriteString("\n")
	b.WriteString(components.RenderBalance(m.appModel.Balance, m.appModel.BalanceKnown))
	b.WriteString("\n\n")

	messageAllowed := m.messageAllowed()
	for i := range m.inputs {
		focus := models.FieldFocus(i)
		b.WriteString(components.RenderField(components.Field{
			Label:    labels[i],
			Input:    m.inputs[i].View(),
			Error:    m.appModel.FieldErrors[fieldNames[i]],
			Focused:  focus == m.appModel.Focus && m.workflow.State() == send.Idle,
			Disabled: focus == models.FocusMessage && !messageAllowed,
		}, width))
	}

	if m.workflow.ConfirmVisible() {
		summary := send.Summarize(m.store.Fields(), m.deps.settings, send.DefaultFormatters())
		b.WriteString("\n")
		b.WriteString(components.RenderConfirm(summary, width))
		b.WriteString("\n")
	}

	if m.appModel.IsSending {
		b.WriteString("\n")
		b.WriteString(components.RenderProgress(m.progress.ViewAs(m.appModel.Progress.Progress), m.appModel.Progress.Title))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.workflow.ConfirmVisible() {
		b.WriteString(components.RenderHelp(m.help, m.keys.ConfirmHelp()))
	} else {
		b.WriteString(components.RenderHelp(m.help, m.keys.FormHelp()))
	}
	b.WriteString("\n")
	loading := m.appModel.Unlocking || m.appModel.IsSending
	b.WriteString(components.RenderStatus(m.appModel.Status, m.appModel.StatusIsError, loading, m.appModel.LoadingDots, width))

	return b.String()
}
