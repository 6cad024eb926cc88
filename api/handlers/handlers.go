package handlers

import (
	"github.com/relokit/vault/internal/service/document"
	"github.com/relokit/vault/internal/service/export"
	"github.com/relokit/vault/internal/service/municipality"
	"github.com/relokit/vault/internal/service/reminder"
	"github.com/relokit/vault/internal/store"
	"github.com/relokit/vault/pkg/logger"
)

type Handlers struct {
	Document     *DocumentHandler
	Export       *ExportHandler
	Reminder     *ReminderHandler
	Profile      *ProfileHandler
	Municipality *MunicipalityHandler
}

func NewHandlers(
	docService document.Service,
	exportService *export.Service,
	scheduler *reminder.Scheduler,
	actions *reminder.Actions,
	profiles store.ProfileStore,
	municipalities *municipality.Service,
	log logger.Logger,
) *Handlers {
	return &Handlers{
		Document:     NewDocumentHandler(docService, scheduler, log),
		Export:       NewExportHandler(exportService, log),
		Reminder:     NewReminderHandler(actions, log),
		Profile:      NewProfileHandler(profiles, log),
		Municipality: NewMunicipalityHandler(municipalities, log),
	}
}
