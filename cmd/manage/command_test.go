package main

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestNewApp(t *testing.T) {
	app := newApp()

	for _, name := range []string{"migrate", "seed", "createsuperuser", "creategroup", "clearcache"} {
		require.NotNil(t, app.Command(name), name)
	}
}

func TestCreateSuperuserRequiresFlags(t *testing.T) {
	app := newApp()
	app.ExitErrHandler = func(*cli.Context, error) {}
	require.Error(t, app.Run([]string{"manage", "createsuperuser"}))
}
