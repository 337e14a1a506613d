package app

import (
	"errors"
	"testing"

	"github.com/matheus3301/tgrab/internal/media"
	"go.uber.org/fx"
)

// Configuration mistakes fail the fx graph during construction, so they must
// surface through App.Err for the CLI to print; a bare non-zero exit would
// leave the user with nothing to act on.
func TestModuleSurfacesFilterErrorAtConstruction(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("TELEGRAM_API_ID", "12345")
	t.Setenv("TELEGRAM_API_HASH", "abcdef")
	t.Setenv("TELEGRAM_PHONE", "+15550000000")

	a := fx.New(
		fx.NopLogger,
		Module(Params{SessionName: "main", ChatRef: "1", MediaType: "bogus"}),
	)

	err := a.Err()
	if err == nil {
		t.Fatal("bad --media-type must fail app construction")
	}
	var fe *media.FilterError
	if !errors.As(err, &fe) {
		t.Errorf("err = %v, want a FilterError in the chain", err)
	}
}

func TestModuleSurfacesMissingCredentials(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("TELEGRAM_API_ID", "")
	t.Setenv("TELEGRAM_API_HASH", "")
	t.Setenv("TELEGRAM_PHONE", "")

	a := fx.New(
		fx.NopLogger,
		Module(Params{SessionName: "main", ChatRef: "1", MediaType: "photo"}),
	)

	err := a.Err()
	if err == nil {
		t.Fatal("missing credentials must fail app construction")
	}
	if !errors.Is(err, errMissingCredentials) {
		t.Errorf("err = %v, want errMissingCredentials in the chain", err)
	}
}
