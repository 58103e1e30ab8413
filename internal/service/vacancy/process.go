package vacancy

import (
	"context"
	"errors"
	"log/slog"

	"github.com/heartmarshall/vacancy-normalizer/internal/domain"
	"github.com/heartmarshall/vacancy-normalizer/pkg/ctxutil"
)

// Process takes one message through every stage. Skips and duplicates are
// outcomes, not errors. A failure is a *domain.StageError; when it is
// retryable the message must be replayed, otherwise it is dropped.
func (p *Pipeline) Process(ctx context.Context, msg domain.InboundMessage) (domain.Outcome, error) {
	traceID, ok := ctxutil.TraceIDFromCtx(ctx)
	if !ok {
		ctx, traceID = ctxutil.NewTraceID(ctx)
	}
	ctx = ctxutil.WithMessage(ctx, msg.Source, msg.ExternalID)

	if p.cfg.ProcessTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.cfg.ProcessTimeout)
		defer cancel()
	}

	log := p.log.With(
		slog.String("trace_id", traceID.String()),
		slog.String("source", msg.Source),
		slog.String("message_id", msg.ExternalID),
	)

	v, stage, outcome, err := p.run(ctx, log, msg)

	switch {
	case err != nil:
		retryable := domain.IsRetryable(err)
		outcome = domain.OutcomeFailed
		if retryable {
			outcome = domain.OutcomeRetried
		}
		log.WarnContext(ctx, "message failed",
			slog.String("stage", string(stage)),
			slog.String("outcome", outcome.String()),
			slog.Bool("retryable", retryable),
			slog.String("error", err.Error()),
		)
	case outcome == domain.OutcomeCommitted:
		log.InfoContext(ctx, "message processed",
			slog.String("stage", string(stage)),
			slog.String("outcome", outcome.String()),
			slog.Int64("vacancy_id", v.ID),
			slog.String("position", v.Position),
			slog.String("category", v.Category),
		)
	default:
		log.InfoContext(ctx, "message processed",
			slog.String("stage", string(stage)),
			slog.String("outcome", outcome.String()),
		)
	}
	return outcome, err
}

// run returns the stage it stopped at along with the outcome.
func (p *Pipeline) run(
	ctx context.Context,
	log *slog.Logger,
	msg domain.InboundMessage,
) (*domain.CanonicalVacancy, domain.Stage, domain.Outcome, error) {
	if err := p.checkStruct(msg); err != nil {
		return nil, domain.StageValidate, "", stageErr(domain.StageValidate, err)
	}

	seen, err := p.dedup.Seen(ctx, msg.Source, msg.ExternalID)
	if err != nil {
		return nil, domain.StageSeen, "", stageErr(domain.StageSeen, err)
	}
	if seen {
		return nil, domain.StageSeen, domain.OutcomeDuplicate, nil
	}

	text := p.sanitizer.Sanitize(msg.Text, msg.Source)
	if text == "" {
		return nil, domain.StageSanitize, domain.OutcomeSkipped, nil
	}
	if !p.sanitizer.Admit(text, msg.Source) {
		return nil, domain.StageGate, domain.OutcomeSkipped, nil
	}

	if !p.cfg.SkipClassify {
		isVacancy, err := p.extractor.Classify(ctx, text)
		if err != nil {
			return nil, domain.StageClassify, "", stageErr(domain.StageClassify, err)
		}
		if !isVacancy {
			return nil, domain.StageClassify, domain.OutcomeSkipped, nil
		}
	}

	rec, err := p.extractor.Extract(ctx, text)
	if err != nil {
		return nil, domain.StageExtract, "", stageErr(domain.StageExtract, err)
	}
	rec.Source = msg.Source
	rec.ExternalID = msg.ExternalID
	rec.Text = text
	rec.Date = domain.DateOnly(msg.Timestamp)
	if err := p.checkStruct(rec); err != nil {
		return nil, domain.StageExtract, "", stageErr(domain.StageExtract, err)
	}
	log.DebugContext(ctx, "attributes extracted",
		slog.String("position", rec.Position),
		slog.String("category", rec.Category),
		slog.String("salary", rec.Salary),
	)

	dup, err := p.dedup.IsDuplicate(ctx, rec.Source, rec.Date, rec.Text)
	if err != nil {
		return nil, domain.StageDedup, "", stageErr(domain.StageDedup, err)
	}
	if dup {
		return nil, domain.StageDedup, domain.OutcomeDuplicate, nil
	}

	usd, err := p.salary.ToUSD(ctx, rec.Salary, rec.Date)
	if err != nil {
		return nil, domain.StageSalary, "", stageErr(domain.StageSalary, err)
	}

	position := p.canonicalPosition(rec.Position)

	v, err := p.resolve(ctx, rec, position)
	if err != nil {
		return nil, domain.StageResolve, "", stageErr(domain.StageResolve, err)
	}
	v.SalaryUSD = usd

	if err := p.commit(ctx, v); err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, domain.StageCommit, domain.OutcomeDuplicate, nil
		}
		return nil, domain.StageCommit, "", stageErr(domain.StageCommit, err)
	}
	return v, domain.StageCommit, domain.OutcomeCommitted, nil
}

// stageErr classifies err: contract violations are dropped, everything
// else (store, rate source, extraction service) is replayed.
func stageErr(stage domain.Stage, err error) *domain.StageError {
	return &domain.StageError{
		Stage:     stage,
		Retryable: !errors.Is(err, domain.ErrValidation),
		Err:       err,
	}
}
