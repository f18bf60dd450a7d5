package flag

import "github.com/elC0mpa/ecs-chargeback/model"

type service struct{}

type FlagService interface {
	GetParsedFlags() (model.Flags, error)
}
