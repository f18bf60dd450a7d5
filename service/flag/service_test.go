package flag

import (
	"flag"
	"io"
	"testing"

	"github.com/elC0mpa/ecs-chargeback/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("ecs-chargeback", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func TestParse(t *testing.T) {
	flags, err := NewService().parse(newFlagSet(), []string{"-region", "eu-west-1", "-cluster", "prod,staging", "-chart", "-instances", "-emit"})
	require.NoError(t, err)

	assert.Equal(t, model.Flags{
		Region:    "eu-west-1",
		Clusters:  "prod,staging",
		Chart:     true,
		Instances: true,
		Emit:      true,
	}, flags)
}

func TestParseDefaults(t *testing.T) {
	flags, err := NewService().parse(newFlagSet(), []string{})
	require.NoError(t, err)

	assert.Equal(t, model.Flags{}, flags)
}

func TestParseUnknownFlag(t *testing.T) {
	_, err := NewService().parse(newFlagSet(), []string{"-trend"})
	assert.Error(t, err)
}
