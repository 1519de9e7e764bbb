package worker

import (
	"github.com/Beyond-Company/Ticketing-backend/internal/mailer"
	"github.com/Beyond-Company/Ticketing-backend/internal/service"
)

// StartNotificationWorker wires event handlers to the dispatcher and starts
// the mail delivery worker. Returns a stop function for shutdown.
func StartNotificationWorker(notifications *service.NotificationService, mail *mailer.Mailer) func() {
	if notifications != nil {
		notifications.RegisterHandlers()
	}
	if mail == nil {
		return func() {}
	}
	mail.Start()
	return mail.Stop
}
