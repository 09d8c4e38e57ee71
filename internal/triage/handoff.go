package triage

import (
	"context"
	"errors"
)

// ErrTriageIncomplete is returned by Submit when the attached wizard is
// blocked or still has unanswered questions.
var ErrTriageIncomplete = errors.New("triage: wizard is not complete")

// ConsultationFiler is the persistence collaborator that files a consultation.
// It stores snapshot verbatim next to the record; snapshot is nil when the
// agent skipped the wizard. F is the collaborator's consultation field type.
type ConsultationFiler[F any] interface {
	FileConsultation(ctx context.Context, fields F, snapshot *Snapshot) (string, error)
}

// SnapshotLoader reads back the snapshot stored with a consultation. It
// returns nil when the consultation was filed without one.
type SnapshotLoader interface {
	LoadTriageSnapshot(ctx context.Context, consultationID string) (*Snapshot, error)
}

// Submit files a consultation with the wizard's snapshot attached and clears
// the wizard once the collaborator accepts it. On failure the wizard is left
// untouched so the agent can retry. A nil wizard files without triage; an
// incomplete one is refused with ErrTriageIncomplete.
func Submit[F any](ctx context.Context, filer ConsultationFiler[F], fields F, w *Wizard) (string, error) {
	var snap *Snapshot
	if w != nil {
		if !w.Complete() {
			return "", ErrTriageIncomplete
		}
		s := TakeSnapshot(w.State())
		snap = &s
	}

	id, err := filer.FileConsultation(ctx, fields, snap)
	if err != nil {
		return "", err
	}
	if w != nil {
		w.Clear()
	}
	return id, nil
}

// Redisplay loads the snapshot for a consultation and evaluates it for
// read-only display. ok is false when no triage was recorded.
func Redisplay(ctx context.Context, loader SnapshotLoader, c Catalog, consultationID string) (ev Evaluation, snap *Snapshot, ok bool, err error) {
	snap, err = loader.LoadTriageSnapshot(ctx, consultationID)
	if err != nil || snap == nil {
		return Evaluation{}, nil, false, err
	}
	return RestoreWizard(c, *snap).Evaluate(), snap, true, nil
}
