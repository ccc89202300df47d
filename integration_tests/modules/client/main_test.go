package client_integration_tests

import (
	"os"
	"testing"

	"github.com/Black-And-White-Club/party-bracket/integration_tests/testutils"
)

func TestMain(m *testing.M) {
	code := m.Run()
	testutils.CloseShared()
	os.Exit(code)
}
