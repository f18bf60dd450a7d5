package flag

import (
	"flag"
	"os"

	"github.com/elC0mpa/ecs-chargeback/model"
)

func NewService() *service {
	return &service{}
}

// GetParsedFlags parses the command line. Region and profile default to
// empty so the config file and environment keep precedence.
func (s *service) GetParsedFlags() (model.Flags, error) {
	return s.parse(flag.CommandLine, os.Args[1:])
}

func (s *service) parse(fs *flag.FlagSet, args []string) (model.Flags, error) {
	region := fs.String("region", "", "AWS region (default us-east-1)")
	profile := fs.String("profile", "", "AWS profile configuration")
	config := fs.String("config", "", "Path to a YAML configuration file")
	clusters := fs.String("cluster", "", "Comma separated clusters to report on, all clusters when empty")
	chart := fs.Bool("chart", false, "Display a bar chart of hourly cost per service")
	instances := fs.Bool("instances", false, "Display the instance types the rates were derived from")
	jsonOut := fs.Bool("json", false, "Print the reports as JSON instead of tables")
	emit := fs.Bool("emit", false, "Send the reports to the configured metric sink")

	if err := fs.Parse(args); err != nil {
		return model.Flags{}, err
	}

	return model.Flags{
		Region:    *region,
		Profile:   *profile,
		Config:    *config,
		Clusters:  *clusters,
		Chart:     *chart,
		Instances: *instances,
		JSON:      *jsonOut,
		Emit:      *emit,
	}, nil
}
