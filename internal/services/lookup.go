package services

import (
	"errors"
	"fmt"

	apierrors "github.com/yukikurage/workmatch-api/internal/errors"
	"github.com/yukikurage/workmatch-api/internal/repository"
)

var (
	ErrUserNotFound        = apierrors.NotFoundError("user not found")
	ErrJobNotFound         = apierrors.NotFoundError("job not found")
	ErrApplicationNotFound = apierrors.NotFoundError("application not found")
	ErrMessageNotFound     = apierrors.NotFoundError("message not found")
	ErrNotificationMissing = apierrors.NotFoundError("notification not found")
)

// notFoundOr maps repository.ErrNotFound to notFound and wraps anything else
func notFoundOr(err error, notFound error, action string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return notFound
	}
	return fmt.Errorf("failed to %s: %w", action, err)
}
