package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/meutreino/backend/internal/model"
	q "github.com/meutreino/backend/internal/queue"
	"github.com/meutreino/backend/internal/repository"
	"github.com/meutreino/backend/internal/utils"
)

// Notifier delivers secondary notifications after a primary mutation has
// already succeeded. Every failure is logged and swallowed: the caller's
// response must not depend on notification delivery, and nothing is
// retried.
type Notifier struct {
	Mensagens *repository.MensagemRepo
	Log       zerolog.Logger

	// publish is swappable in tests; defaults to PublishDomainEvent.
	publish func(context.Context, q.DomainEvent) error
}

// NewNotifier builds a Notifier over the message repository.
func NewNotifier(mensagens *repository.MensagemRepo, log zerolog.Logger) *Notifier {
	return &Notifier{Mensagens: mensagens, Log: log, publish: PublishDomainEvent}
}

// WithPublisher replaces the event publisher. Tests use it to capture
// events instead of reaching a broker.
func (n *Notifier) WithPublisher(fn func(context.Context, q.DomainEvent) error) *Notifier {
	n.publish = fn
	return n
}

// Send inserts a message row addressed to para. skipIf names the party
// already notified by the primary flow: when the computed recipient is
// that same party the duplicate is skipped.
func (n *Notifier) Send(ctx context.Context, de, para, texto, skipIf string) {
	para = utils.NormalizeEmail(para)
	if para == "" {
		return
	}
	if skipIf != "" && para == utils.NormalizeEmail(skipIf) {
		return
	}
	_, err := n.Mensagens.Create(ctx, model.Mensagem{De: utils.NormalizeEmail(de), Para: para, Texto: texto})
	if err != nil {
		n.Log.Warn().Err(err).Str("para", para).Msg("notificação não entregue")
	}
}

// Publish emits a domain event to the broker, best-effort.
func (n *Notifier) Publish(ctx context.Context, ev q.DomainEvent) {
	if ev.OccurredAt == "" {
		ev.OccurredAt = utils.NowISO()
	}
	if err := n.publish(ctx, ev); err != nil {
		n.Log.Warn().Err(err).Str("type", ev.Type).Msg("evento não publicado")
	}
}
