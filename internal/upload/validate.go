package upload

import (
	"fmt"

	"github.com/Vishwa-247/light-and-lovely-space/internal/services"
	"github.com/Vishwa-247/light-and-lovely-space/internal/session"
)

// ValidateFile is the gate in front of every upload. A rejected file is
// reported through the notifier and nothing else happens.
func ValidateFile(name string, size int64, contentType string, notifier session.Notifier) error {
	err := services.ValidateResumeFile(size, contentType, services.MaxResumeSize)
	if err == nil {
		return nil
	}

	switch {
	case size > services.MaxResumeSize:
		notifier.Notify(session.Destructive("File too large", "Please select a file smaller than 10MB"))
	case size <= 0:
		notifier.Notify(session.Destructive("Empty file", fmt.Sprintf("%s has no content", name)))
	default:
		notifier.Notify(session.Destructive("Invalid file type", "Please upload a PDF or Word document"))
	}

	return err
}
