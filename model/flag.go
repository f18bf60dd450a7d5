package model

type Flags struct {
	Region  string
	Profile string
	Config  string

	// Comma separated list, empty means every cluster in the region
	Clusters string

	Chart     bool
	Instances bool
	JSON      bool
	Emit      bool
}
