package eventlog

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/freshtiffin/mealbox/internal/models"
	"github.com/freshtiffin/mealbox/pkg/logctx"
	"github.com/freshtiffin/mealbox/pkg/tool"
)

type Service struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func New(db *gorm.DB, log *zap.SugaredLogger) *Service { return &Service{db: db, log: log} }

// Save asynchronously persists a gateway event log. Nil input is ignored.
// Audit writes never block or fail webhook processing. The entry is
// snapshotted before the goroutine starts, so the caller may reuse or
// mutate its struct afterwards without racing the write.
func (s *Service) Save(ctx context.Context, entry *models.GatewayEventLog) {
	rec, ok := snapshot(entry)
	if !ok {
		return
	}
	go func() {
		if err := s.db.Save(rec).Error; err != nil {
			logctx.FromCtx(ctx, s.log).Errorf("failed to save gateway event log: %v", err)
		}
	}()
}

// snapshot copies the entry and assigns an id when missing.
func snapshot(entry *models.GatewayEventLog) (*models.GatewayEventLog, bool) {
	if entry == nil {
		return nil, false
	}
	rec := *entry
	if rec.ID == "" {
		rec.ID = tool.GenerateUUIDV7()
	}
	return &rec, true
}
