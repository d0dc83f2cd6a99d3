package workers

import (
	"context"
	"time"

	postPort "xclone/internal/ports/post"

	"go.uber.org/zap"
)

// LikeReconciler repairs the liked_posts index from post_likes. Each pass
// inserts missing mirror rows and deletes orphaned ones.
type LikeReconciler struct {
	Repo      postPort.LikeIndexRepository
	Interval  time.Duration
	BatchSize int // تعداد رکوردهای هر batch
	Logger    *zap.Logger
}

func NewLikeReconciler(repo postPort.LikeIndexRepository, interval time.Duration, batchSize int, logger *zap.Logger) *LikeReconciler {
	return &LikeReconciler{
		Repo:      repo,
		Interval:  interval,
		BatchSize: batchSize,
		Logger:    logger,
	}
}

// Run اجرای دوره‌ای اصلاح ایندکس لایک‌ها تا لغو context
func (w *LikeReconciler) Run(ctx context.Context) {
	w.Logger.Info("LikeReconciler started", zap.Duration("interval", w.Interval), zap.Int("batchSize", w.BatchSize))
	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()

	for {
		if _, err := w.Reconcile(ctx); err != nil && ctx.Err() == nil {
			w.Logger.Error("Like index reconcile failed", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			w.Logger.Info("LikeReconciler stopped")
			return
		case <-ticker.C:
		}
	}
}

// ReconcileResult counts the rows a pass repaired.
type ReconcileResult struct {
	Inserted int
	Deleted  int
}

// Reconcile runs one full pass, batch by batch, until no drift is left.
func (w *LikeReconciler) Reconcile(ctx context.Context) (ReconcileResult, error) {
	var res ReconcileResult

	for ctx.Err() == nil {
		missing, err := w.Repo.FindMissingLikedPosts(ctx, w.BatchSize)
		if err != nil {
			return res, err
		}
		if len(missing) == 0 {
			break
		}
		if err := w.Repo.InsertLikedPosts(ctx, missing); err != nil {
			return res, err
		}
		res.Inserted += len(missing)
		if len(missing) < w.BatchSize {
			break
		}
	}

	for ctx.Err() == nil {
		orphans, err := w.Repo.FindOrphanLikedPosts(ctx, w.BatchSize)
		if err != nil {
			return res, err
		}
		if len(orphans) == 0 {
			break
		}
		if err := w.Repo.DeleteLikedPosts(ctx, orphans); err != nil {
			return res, err
		}
		res.Deleted += len(orphans)
		if len(orphans) < w.BatchSize {
			break
		}
	}

	if res.Inserted > 0 || res.Deleted > 0 {
		w.Logger.Info("Repaired like index", zap.Int("inserted", res.Inserted), zap.Int("deleted", res.Deleted))
	}
	return res, ctx.Err()
}
