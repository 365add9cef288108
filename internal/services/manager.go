package services

import (
	"log/slog"

	"github.com/campus-hq/portal-service/internal/cache"
	"github.com/campus-hq/portal-service/internal/config"
	"github.com/campus-hq/portal-service/internal/events"
	"github.com/campus-hq/portal-service/internal/mailer"
	"github.com/campus-hq/portal-service/internal/push"
	"github.com/campus-hq/portal-service/internal/repositories"
	"github.com/campus-hq/portal-service/internal/utils"
)

// ServiceManager bundles every domain service behind one constructor so
// the handler layer wires against a single dependency.
type ServiceManager interface {
	Auth() AuthService
	Academic() AcademicService
	Question() QuestionService
	Exam() ExamService
	Result() ResultService
	Notification() NotificationService
	Settings() SettingsService
}

type serviceManager struct {
	auth         AuthService
	academic     AcademicService
	question     QuestionService
	exam         ExamService
	result       ResultService
	notification NotificationService
	settings     SettingsService
}

func NewServiceManager(
	repo repositories.Repository,
	cfg *config.Config,
	logger *slog.Logger,
	validator *utils.Validator,
	mail mailer.Mailer,
	sender push.Sender,
	examCache cache.ExamCache,
	publisher events.EventPublisher,
) ServiceManager {
	return &serviceManager{
		auth:         NewAuthService(repo, logger, validator, mail, publisher, cfg.JWTSecret, cfg.JWTIssuer),
		academic:     NewAcademicService(repo, logger, validator),
		question:     NewQuestionService(repo, logger, validator),
		exam:         NewExamService(repo, logger, validator, examCache, publisher),
		result:       NewResultService(repo, logger, validator, publisher),
		notification: NewNotificationService(repo, logger, validator, sender, publisher),
		settings:     NewSettingsService(repo, logger),
	}
}

func (m *serviceManager) Auth() AuthService                 { return m.auth }
func (m *serviceManager) Academic() AcademicService         { return m.academic }
func (m *serviceManager) Question() QuestionService         { return m.question }
func (m *serviceManager) Exam() ExamService                 { return m.exam }
func (m *serviceManager) Result() ResultService             { return m.result }
func (m *serviceManager) Notification() NotificationService { return m.notification }
func (m *serviceManager) Settings() SettingsService         { return m.settings }
