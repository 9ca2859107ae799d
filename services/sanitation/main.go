package sanitation

import (
	"time"

	"note/api/models"
	"note/api/services"

	"github.com/go-co-op/gocron"
	log "github.com/sirupsen/logrus"
)

type (
	SanitationService struct {
		Initialized       bool
		ConversionService *services.ConversionService
		Config            *models.Config
		scheduler         *gocron.Scheduler
	}
)

func NewSanitationService(cs *services.ConversionService, cfg *models.Config) *SanitationService {
	ss := &SanitationService{
		Initialized:       false,
		ConversionService: cs,
		Config:            cfg,
	}

	ss.Init()

	return ss
}

func (ss *SanitationService) Init() {
	// initialization if necessary
	if ss.Initialized {
		return
	}

	// - periodically forget about conversion requests that
	//   finished (Done or Error) longer ago than the retention period
	s := gocron.NewScheduler(time.UTC)
	if _, err := s.Every(1).Days().At(ss.Config.Sanitation.At).Do(ss.PruneConversionRequests); err != nil {
		log.Errorf("Unable to schedule the conversion request cleanup at %q: %s", ss.Config.Sanitation.At, err)
		return
	}

	// runs in its own goroutine
	s.StartAsync()
	ss.scheduler = s

	ss.Initialized = true
	log.Info("Sanitation Service Initialized ..")
}

// PruneConversionRequests runs one cleanup pass and returns how many
// requests were removed.
func (ss *SanitationService) PruneConversionRequests() int {
	log.Info("Running conversion request cleanup..")

	retention := time.Duration(ss.Config.Sanitation.RetentionHours) * time.Hour
	removed := ss.ConversionService.PruneFinishedRequests(time.Now().Add(-retention))

	log.WithField("removed", removed).Info("Conversion request cleanup complete")
	return removed
}

func (ss *SanitationService) Stop() {
	if ss.scheduler != nil {
		ss.scheduler.Stop()
	}
}
