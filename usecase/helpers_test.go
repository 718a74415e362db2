package usecase_test

import (
	"testing"
	"time"

	"transcript-app/infrastructure/utils"
)

func startWithID(t *testing.T, sessionID string) (string, error) {
	t.Helper()
	return utils.GenerateSessionToken(sessionID, time.Now().Add(time.Hour), testSecret)
}
